package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log"
	"sync"
	"time"

	"github.com/akasharts888/audio-transcriptor/pkg/transcript"
)

// Option customizes a Store
type Option func(*Store)

// WithClock sets the clock used to stamp CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the session id generator
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// Store keeps transcript sessions for the lifetime of the process, in creation order.
// Audio blobs are written outside the lock; only the registration step is serialized.
type Store struct {
	audio *AudioStore
	now   func() time.Time
	newID func() (string, error)

	mu       sync.RWMutex
	sessions []transcript.Session
	index    map[string]int // id -> position in sessions
}

// NewStore creates an empty store that persists audio through the given blob store
func NewStore(audio *AudioStore, opts ...Option) *Store {
	s := &Store{
		audio:    audio,
		now:      time.Now,
		newID:    transcript.NewSessionID,
		sessions: []transcript.Session{},
		index:    make(map[string]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Ingest writes the audio blob and registers a new session for it.
// A generated id that is already registered is refused rather than overwritten.
func (s *Store) Ingest(audio io.Reader, payload transcript.Payload) (transcript.Session, error) {
	id, err := s.newID()
	if err != nil {
		return transcript.Session{}, err
	}

	if s.has(id) {
		return transcript.Session{}, fmt.Errorf("%w: %s", transcript.ErrSessionExists, id)
	}

	path, err := s.audio.Write(id, audio)
	if err != nil {
		return transcript.Session{}, err
	}

	session := transcript.Session{
		ID:         id,
		Transcript: payload.FullText,
		Segments:   cloneSegments(payload.Segments),
		AudioPath:  path,
	}

	if err := s.register(&session); err != nil {
		if rmErr := s.audio.Remove(id); rmErr != nil {
			log.Printf("[TRANSCRIPT]: Failed to clean up blob for %s: %v", id, rmErr)
		}
		return transcript.Session{}, err
	}

	return session.Clone(), nil
}

// register appends the session, stamping CreatedAt under the lock so that
// creation order and timestamps agree
func (s *Store) register(session *transcript.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[session.ID]; exists {
		return fmt.Errorf("%w: %s", transcript.ErrSessionExists, session.ID)
	}

	session.CreatedAt = s.now()
	s.index[session.ID] = len(s.sessions)
	s.sessions = append(s.sessions, *session)

	return nil
}

// Sessions returns a lazy sequence over every session in creation order.
// The sequence reads a snapshot taken when iteration starts.
func (s *Store) Sessions() iter.Seq[transcript.Session] {
	return func(yield func(transcript.Session) bool) {
		s.mu.RLock()
		snapshot := s.sessions[:len(s.sessions):len(s.sessions)]
		s.mu.RUnlock()

		for _, session := range snapshot {
			if !yield(session.Clone()) {
				return
			}
		}
	}
}

// Get retrieves a session by id
func (s *Store) Get(id string) (transcript.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, exists := s.index[id]
	if !exists {
		return transcript.Session{}, fmt.Errorf("%w: %s", transcript.ErrSessionNotFound, id)
	}

	return s.sessions[i].Clone(), nil
}

// Len returns the number of registered sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.index[id]
	return exists
}

func cloneSegments(segments []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(segments))
	for i, seg := range segments {
		out[i] = append(json.RawMessage(nil), seg...)
	}
	return out
}
