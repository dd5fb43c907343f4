package transcript

import (
	"encoding/json"
	"iter"
	"time"
)

// TimestampLayout renders CreatedAt when sessions are aggregated into a prompt context
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Session represents one ingested audio recording and its transcript
type Session struct {
	ID         string            `json:"id"`         // Unique, time-ordered identifier
	Transcript string            `json:"transcript"` // Full text of the session (may be empty)
	Segments   []json.RawMessage `json:"segments"`   // Opaque segment records, passed through unchanged
	AudioPath  string            `json:"audio_path"` // Location of the persisted audio blob
	CreatedAt  time.Time         `json:"created_at"` // Captured at registration
}

// Clone returns a copy of the session that shares no slices with the original
func (s Session) Clone() Session {
	out := s
	out.Segments = make([]json.RawMessage, len(s.Segments))
	for i, seg := range s.Segments {
		out.Segments[i] = append(json.RawMessage(nil), seg...)
	}
	return out
}

// Timestamp returns CreatedAt formatted with TimestampLayout
func (s Session) Timestamp() string {
	return s.CreatedAt.Format(TimestampLayout)
}

// SessionSource is anything that can enumerate sessions in creation order
type SessionSource interface {
	Sessions() iter.Seq[Session]
}
