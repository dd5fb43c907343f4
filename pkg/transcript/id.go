package transcript

import (
	"fmt"

	"github.com/google/uuid"
)

// NewSessionID generates a time-ordered session id. Version 7 UUIDs carry a
// millisecond wall-clock prefix and increase monotonically within a process.
func NewSessionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return id.String(), nil
}
