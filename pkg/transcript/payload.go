package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is the validated form of the transcript sent alongside an audio recording
type Payload struct {
	FullText string            `json:"fullText"`
	Segments []json.RawMessage `json:"segments"`
}

// payloadWire mirrors the client JSON, with pointers so absent keys can be told apart
type payloadWire struct {
	FullText *string            `json:"fullText"`
	Segments *[]json.RawMessage `json:"segments"`
}

// ParsePayload decodes a transcript payload and applies the defaults for absent keys.
// The payload must be a JSON object; fullText must be a string and segments an array.
func ParsePayload(raw []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Payload{}, fmt.Errorf("%w: expected a JSON object", ErrInvalidPayload)
	}

	var wire payloadWire
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	payload := Payload{Segments: []json.RawMessage{}}
	if wire.FullText != nil {
		payload.FullText = *wire.FullText
	}
	if wire.Segments != nil {
		payload.Segments = *wire.Segments
	}

	return payload, nil
}
