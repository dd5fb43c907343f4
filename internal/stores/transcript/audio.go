package transcript

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akasharts888/audio-transcriptor/pkg/transcript"
)

const (
	DefaultAudioDir       = "stored_audio"
	DefaultAudioExtension = ".webm"
)

// AudioStore writes audio blobs to one file per session under a fixed root
type AudioStore struct {
	dir string
	ext string
}

// NewAudioStore creates a blob store rooted at dir, naming files <id><ext>
func NewAudioStore(dir, ext string) *AudioStore {
	if dir == "" {
		dir = DefaultAudioDir
	}
	if ext == "" {
		ext = DefaultAudioExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return &AudioStore{dir: dir, ext: ext}
}

// Dir returns the storage root
func (a *AudioStore) Dir() string {
	return a.dir
}

// Path returns the location of the blob for a session id
func (a *AudioStore) Path(id string) string {
	return filepath.Join(a.dir, id+a.ext)
}

// Write copies r verbatim into the blob addressed by id and returns its path.
// An existing blob is never overwritten, and a partial file is removed on failure.
func (a *AudioStore) Write(id string, r io.Reader) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%w: invalid blob id %q", transcript.ErrStorage, id)
	}

	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create directory %s: %v", transcript.ErrStorage, a.dir, err)
	}

	path := a.Path(id)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: blob %s", transcript.ErrSessionExists, path)
		}
		return "", fmt.Errorf("%w: failed to create %s: %v", transcript.ErrStorage, path, err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: failed to write %s: %v", transcript.ErrStorage, path, err)
	}

	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: failed to close %s: %v", transcript.ErrStorage, path, err)
	}

	return path, nil
}

// Remove deletes the blob for a session id. A missing blob is not an error.
func (a *AudioStore) Remove(id string) error {
	if err := os.Remove(a.Path(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: failed to remove %s: %v", transcript.ErrStorage, a.Path(id), err)
	}
	return nil
}
