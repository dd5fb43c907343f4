package sdk

import "net/http"

const (
	MessageAudioProcessed = "Audio processed successfully"
	MessageNoTranscripts  = "No transcripts found"
)

// Response is the body of every transcript endpoint. ID is only set by /process-audio.
type Response struct {
	Response string `json:"response"`     // Human-readable message, model answer, or error text
	ID       string `json:"id,omitempty"` // Generated session id

	Code int `json:"-"` // HTTP status code
}

// AsGinResponse converts the Response to a format suitable for the Gin framework
func (r Response) AsGinResponse() (int, any) {
	return r.Code, r
}

// NewResponse creates a response with a status code and message
func NewResponse(code int, message string) Response {
	return Response{
		Code:     code,
		Response: message,
	}
}

// NewErrorResponse creates a response carrying the error's message
func NewErrorResponse(code int, err error) Response {
	return NewResponse(code, err.Error())
}

// NewProcessedResponse creates the success response for an ingested recording
func NewProcessedResponse(id string) Response {
	return Response{
		Code:     http.StatusOK,
		Response: MessageAudioProcessed,
		ID:       id,
	}
}

/** Requests */

// QueryRequest represents the request body for asking a question.
// Query must be present but may be empty.
type QueryRequest struct {
	Query *string `json:"query" binding:"required"`
}
