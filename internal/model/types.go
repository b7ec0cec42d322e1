package model

import (
	"fmt"
	"strings"
	"time"
)

type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Lines []string
}

// Document is the text of one subtitle file held as newline-delimited lines.
// A trailing newline in the source shows up as a trailing empty line.
type Document struct {
	Lines []string
}

// NewDocument splits text into lines. CRLF line endings are folded to LF.
func NewDocument(text string) Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return Document{Lines: strings.Split(text, "\n")}
}

// Render writes every line followed by a newline.
func (d Document) Render() string {
	var sb strings.Builder
	for _, line := range d.Lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if len(d.Lines) == 0 {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Mode selects which pipeline variant runs.
type Mode int

const (
	// ModeClean removes superfluous blank lines and stale cue identifiers
	// before numbering.
	ModeClean Mode = iota
	// ModeLegacy numbers cues without touching blank lines or identifiers.
	ModeLegacy
)

func (m Mode) String() string {
	switch m {
	case ModeLegacy:
		return "legacy"
	default:
		return "clean"
	}
}

// ParseMode accepts "clean" or "legacy" (case-insensitive). Empty means clean.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clean":
		return ModeClean, nil
	case "legacy":
		return ModeLegacy, nil
	default:
		return ModeClean, fmt.Errorf("unknown mode %q (expected clean or legacy)", s)
	}
}
