package transcript_module

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akasharts888/audio-transcriptor/internal/query"
	"github.com/akasharts888/audio-transcriptor/pkg/sdk"
	"github.com/akasharts888/audio-transcriptor/pkg/transcript"
	"github.com/gin-gonic/gin"
)

// Controller handles the HTTP surface of the transcript service
type Controller struct {
	service *TranscriptService
}

// NewController creates a controller for the given service
func NewController(service *TranscriptService) *Controller {
	return &Controller{service: service}
}

// ProcessAudio handles POST requests carrying an audio recording and its transcript
func (ctl *Controller) ProcessAudio(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(formErrorResponse("audio", err).AsGinResponse())
		return
	}

	rawTranscript, ok := c.GetPostForm("transcript")
	if !ok {
		c.JSON(sdk.NewResponse(http.StatusBadRequest, "transcript field is required").AsGinResponse())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, fmt.Errorf("failed to read audio: %w", err)).AsGinResponse())
		return
	}
	defer file.Close()

	session, err := ctl.service.ProcessAudio(file, rawTranscript)
	switch {
	case errors.Is(err, transcript.ErrInvalidPayload):
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, err).AsGinResponse())
		return
	case err != nil:
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewProcessedResponse(session.ID).AsGinResponse())
}

// Query handles POST requests asking a question against the stored transcripts
func (ctl *Controller) Query(c *gin.Context) {
	var req sdk.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewResponse(http.StatusBadRequest, "Could not parse request body: "+err.Error()).AsGinResponse())
		return
	}

	// A started query runs to completion even if the client goes away
	ctx := context.WithoutCancel(c.Request.Context())

	answer, err := ctl.service.Answer(ctx, *req.Query)
	switch {
	case errors.Is(err, query.ErrNoTranscripts):
		c.JSON(sdk.NewResponse(http.StatusNotFound, sdk.MessageNoTranscripts).AsGinResponse())
		return
	case err != nil:
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewResponse(http.StatusOK, answer).AsGinResponse())
}

// formErrorResponse maps multipart form failures to client errors
func formErrorResponse(field string, err error) sdk.Response {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return sdk.NewResponse(http.StatusRequestEntityTooLarge, "upload exceeds the maximum allowed size")
	}

	if errors.Is(err, http.ErrMissingFile) {
		return sdk.NewResponse(http.StatusBadRequest, field+" file is required")
	}

	return sdk.NewResponse(http.StatusBadRequest, fmt.Sprintf("could not parse %s upload: %v", field, err))
}
