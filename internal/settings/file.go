package settings

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/conneroisu/patterns/internal/errors"
)

// SaveToFile writes every pair to path as key=value lines, keys in ascending
// order. Keys or values containing '=' or newlines are written verbatim and
// will not survive a LoadFromFile.
//
// Concurrent SaveToFile/LoadFromFile calls on the same path are not
// serialized; callers that share a path must do that themselves.
func (s *Store) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileOpen, "cannot create settings file", err).
			WithFile(path)
	}

	w := bufio.NewWriter(f)
	for _, key := range s.Keys() {
		value, err := s.Get(key)
		if err != nil {
			// Deleted between Keys and Get.
			continue
		}
		if _, err := w.WriteString(key + "=" + value + "\n"); err != nil {
			_ = f.Close()
			return errors.NewIOError(errors.ErrCodeFileWrite, "cannot write settings file", err).
				WithFile(path)
		}
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return errors.NewIOError(errors.ErrCodeFileWrite, "cannot write settings file", err).
			WithFile(path)
	}
	if err := f.Close(); err != nil {
		return errors.NewIOError(errors.ErrCodeFileWrite, "cannot close settings file", err).
			WithFile(path)
	}
	return nil
}

// LoadFromFile reads key=value lines from path into the store, overwriting
// existing keys. A line that does not split on '=' into exactly two parts is
// skipped without error.
func (s *Store) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileOpen, "cannot open settings file", err).
			WithFile(path)
	}
	defer f.Close()

	loaded := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "=")
		if len(parts) != 2 {
			continue
		}
		s.values.Store(parts[0], parts[1])
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return errors.NewIOError(errors.ErrCodeFileRead, "cannot read settings file", err).
			WithFile(path)
	}

	s.notify(Event{Type: EventTypeLoaded, Key: path, Value: strconv.Itoa(loaded), Timestamp: time.Now()})
	return nil
}
