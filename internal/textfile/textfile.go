// Package textfile reads and writes whole text files under a named encoding.
package textfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/luismascotto/vtt2srt/internal/logging"
)

// DecodeError reports file contents that are not valid in the requested encoding.
type DecodeError struct {
	Path     string
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s as %s: %v", e.Path, e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports text that cannot be represented in the target encoding.
type EncodeError struct {
	Path     string
	Encoding string
	Err      error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s as %s: %v", e.Path, e.Encoding, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Read loads path and decodes it with codec.
func Read(path string, codec *Codec) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	text, err := codec.Decode(raw)
	if err != nil {
		return "", &DecodeError{Path: path, Encoding: codec.Name(), Err: err}
	}
	return text, nil
}

// Writer encodes text and writes it out. When the target cannot be written
// and Fallback is set, it retries once with the base name in the current
// working directory.
type Writer struct {
	Codec    *Codec
	Fallback bool
	Logger   *slog.Logger
}

// Write stores text at path and returns the path actually written.
func (w *Writer) Write(path, text string) (string, error) {
	data, err := w.Codec.Encode(text)
	if err != nil {
		return "", &EncodeError{Path: path, Encoding: w.Codec.Name(), Err: err}
	}

	err = os.WriteFile(path, data, 0644)
	if err == nil {
		return path, nil
	}

	fallback := filepath.Base(path)
	if !w.Fallback || fallback == filepath.Clean(path) {
		return "", fmt.Errorf("write output: %w", err)
	}

	w.logger().Warn("output not writable, retrying in working directory",
		logging.String("path", path),
		logging.String("fallback", fallback),
		logging.Error(err),
	)
	if ferr := os.WriteFile(fallback, data, 0644); ferr != nil {
		return "", fmt.Errorf("write output: %w", errors.Join(err, ferr))
	}
	return fallback, nil
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return logging.NewNop()
	}
	return w.Logger
}
