// Package convert drives conversion of a single file or a directory of VTT
// files: it reads each file, runs the transform pipeline, optionally asks a
// Reviewer, and writes the .srt next to the input.
package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/luismascotto/vtt2srt/internal/logging"
	"github.com/luismascotto/vtt2srt/internal/model"
	"github.com/luismascotto/vtt2srt/internal/subtitle"
	"github.com/luismascotto/vtt2srt/internal/textfile"
	"github.com/luismascotto/vtt2srt/internal/transform"
	"github.com/luismascotto/vtt2srt/internal/walk"
)

// ErrInvalidPath is returned by Run when pathname is neither a regular file
// nor a directory.
var ErrInvalidPath = errors.New("pathname is not a file or directory")

// errAborted stops a batch when the reviewer asks to quit.
var errAborted = errors.New("conversion aborted")

// Options configures a Converter.
type Options struct {
	Mode      model.Mode
	Codec     *textfile.Codec
	Recursive bool
	// Fallback retries unwritable outputs in the working directory.
	Fallback bool
}

// Converter converts VTT files to SRT files.
type Converter struct {
	opts     Options
	writer   *textfile.Writer
	reviewer Reviewer
	logger   *slog.Logger
}

// New builds a Converter. reviewer may be nil, in which case every converted
// document is written without asking.
func New(opts Options, reviewer Reviewer, logger *slog.Logger) *Converter {
	logger = logging.NewComponentLogger(logger, "convert")
	return &Converter{
		opts:     opts,
		writer:   &textfile.Writer{Codec: opts.Codec, Fallback: opts.Fallback, Logger: logger},
		reviewer: reviewer,
		logger:   logger,
	}
}

// IsVTT reports whether the file name marks a WebVTT file.
func IsVTT(path string) bool {
	return strings.Contains(filepath.Base(path), ".vtt")
}

// OutputPath replaces .vtt with .srt in the file name, keeping the directory.
func OutputPath(path string) string {
	dir, base := filepath.Split(path)
	return dir + strings.ReplaceAll(base, ".vtt", ".srt")
}

// Run converts pathname, which may be a file or a directory.
func (c *Converter) Run(pathname string) (Report, error) {
	info, err := os.Stat(pathname)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s", ErrInvalidPath, pathname)
	}
	switch {
	case info.Mode().IsRegular():
		c.logger.Info("file being converted", logging.String("path", pathname))
		return c.runFile(pathname)
	case info.IsDir():
		c.logger.Info("directory being converted",
			logging.String("path", pathname),
			logging.Bool("recursive", c.opts.Recursive),
		)
		return c.runDir(pathname)
	default:
		return Report{}, fmt.Errorf("%w: %s", ErrInvalidPath, pathname)
	}
}

func (c *Converter) runFile(path string) (Report, error) {
	var report Report
	if !IsVTT(path) {
		c.logger.Info("not a .vtt file, nothing to convert", logging.String("path", path))
		report.add(Result{Input: path, Status: StatusIgnored})
		return report, nil
	}
	res, err := c.ConvertFile(path)
	report.add(res)
	if errors.Is(err, errAborted) {
		report.Aborted = true
		return report, nil
	}
	return report, err
}

func (c *Converter) runDir(dir string) (Report, error) {
	var report Report
	files, err := walk.Files(dir, c.opts.Recursive, c.logger)
	if err != nil {
		return report, err
	}

	for _, path := range files {
		if !IsVTT(path) {
			continue
		}
		res, err := c.ConvertFile(path)
		report.add(res)
		if err == nil {
			continue
		}

		var decodeErr *textfile.DecodeError
		switch {
		case errors.As(err, &decodeErr):
			c.logger.Warn("skipping file that does not decode",
				logging.String("path", path),
				logging.String("encoding", decodeErr.Encoding),
				logging.Error(decodeErr.Err),
			)
		case errors.Is(err, errAborted):
			report.Aborted = true
			return report, nil
		default:
			return report, err
		}
	}
	return report, nil
}

// ConvertFile reads path, converts it and writes the .srt output. The
// returned Result is filled in even when an error is returned.
func (c *Converter) ConvertFile(path string) (Result, error) {
	res := Result{Input: path, Output: OutputPath(path)}

	text, err := textfile.Read(path, c.opts.Codec)
	if err != nil {
		res.Status = StatusFailed
		var decodeErr *textfile.DecodeError
		if errors.As(err, &decodeErr) {
			res.Status = StatusSkipped
		}
		res.Err = err
		return res, err
	}
	c.logger.Debug("file read", logging.String("path", path), logging.Int("bytes", len(text)))

	converted := transform.Convert(text, c.opts.Mode)
	res.Stats = subtitle.Inspect(converted)

	if c.reviewer != nil {
		decision, err := c.reviewer.Review(Preview{
			Input:  path,
			Output: res.Output,
			Mode:   c.opts.Mode,
			Text:   converted,
			Stats:  res.Stats,
		})
		if err != nil {
			res.Status = StatusFailed
			res.Err = err
			return res, fmt.Errorf("review %s: %w", path, err)
		}
		switch decision {
		case DecisionSkip:
			c.logger.Info("skipped by reviewer", logging.String("path", path))
			res.Status = StatusDeclined
			return res, nil
		case DecisionQuit:
			res.Status = StatusDeclined
			return res, errAborted
		}
	}

	written, err := c.writer.Write(res.Output, converted)
	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res, err
	}
	res.Output = written
	res.Status = StatusConverted
	c.logger.Info("file created",
		logging.String("path", written),
		logging.Int("cues", res.Stats.Cues),
	)
	return res, nil
}
