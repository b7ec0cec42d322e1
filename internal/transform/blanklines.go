package transform

import (
	"strings"

	"github.com/luismascotto/vtt2srt/internal/model"
)

// RemoveBlankLines drops every blank line and puts a single empty line back
// in front of each cue block except one that opens the document. A cue block
// starts either at a bare numeric identifier followed by a timing line or at
// the timing line itself.
func RemoveBlankLines(doc model.Document) model.Document {
	lines := make([]string, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	out := make([]string, 0, len(lines)+len(lines)/2)
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case isIdentifier(line) && i+1 < len(lines) && isCueTimestamp(lines[i+1]):
			if len(out) > 0 {
				out = append(out, "")
			}
			out = append(out, line, lines[i+1])
			i++
		case isCueTimestamp(line):
			if len(out) > 0 {
				out = append(out, "")
			}
			out = append(out, line)
		default:
			out = append(out, line)
		}
	}
	return model.Document{Lines: out}
}

// RemoveStaleIdentifiers drops a bare numeric line sitting right above a
// timing line; AddSequenceNumbers writes a fresh one in its place.
func RemoveStaleIdentifiers(doc model.Document) model.Document {
	out := make([]string, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		if isCueTimestamp(line) && len(out) > 0 && isIdentifier(out[len(out)-1]) {
			out = out[:len(out)-1]
		}
		out = append(out, line)
	}
	return model.Document{Lines: out}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
