package transcript_module

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/akasharts888/audio-transcriptor/internal/query"
	transcript_store "github.com/akasharts888/audio-transcriptor/internal/stores/transcript"
	"github.com/akasharts888/audio-transcriptor/pkg/completion"
	"github.com/akasharts888/audio-transcriptor/pkg/transcript"
	"github.com/akasharts888/audio-transcriptor/pkg/utils"
)

// TranscriptService ties the transcript store to the query pipeline
type TranscriptService struct {
	store    *transcript_store.Store
	pipeline *query.Pipeline
}

// NewTranscriptService creates a service over an existing store and completer
func NewTranscriptService(store *transcript_store.Store, completer completion.Completer) *TranscriptService {
	return &TranscriptService{
		store:    store,
		pipeline: query.New(store, completer),
	}
}

// Init creates the service from configuration. The completion provider settings
// are validated here so that a misconfiguration fails at startup.
func Init(cfg *utils.Config) (*TranscriptService, error) {
	completer, err := completion.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure completion provider: %w", err)
	}

	audio := transcript_store.NewAudioStore(
		cfg.GetWithDefault("STORAGE_DIR", transcript_store.DefaultAudioDir),
		cfg.GetWithDefault("AUDIO_EXTENSION", transcript_store.DefaultAudioExtension),
	)
	log.Printf("[TRANSCRIPT]: Storing audio under %s", audio.Dir())

	return NewTranscriptService(transcript_store.NewStore(audio), completer), nil
}

// Store returns the underlying transcript store
func (s *TranscriptService) Store() *transcript_store.Store {
	return s.store
}

// ProcessAudio validates the transcript payload, then persists the audio and registers the session
func (s *TranscriptService) ProcessAudio(audio io.Reader, rawTranscript string) (transcript.Session, error) {
	payload, err := transcript.ParsePayload([]byte(rawTranscript))
	if err != nil {
		return transcript.Session{}, err
	}

	session, err := s.store.Ingest(audio, payload)
	if err != nil {
		return transcript.Session{}, err
	}

	log.Printf("[TRANSCRIPT]: Stored transcription with ID: %s", session.ID)
	log.Printf("[TRANSCRIPT]: Transcript length: %d", len(session.Transcript))

	return session, nil
}

// Answer asks a question against every stored transcript
func (s *TranscriptService) Answer(ctx context.Context, question string) (string, error) {
	return s.pipeline.Answer(ctx, question)
}
