package transform

import (
	"regexp"
	"strings"

	"github.com/luismascotto/vtt2srt/internal/model"
)

var (
	// [[HH:]MM:]SS.mmm --> [[HH:]MM:]SS.mmm, optionally followed by cue settings.
	// A comma separator is accepted too so converted output normalizes to itself.
	reTimestampLine = regexp.MustCompile(`^((?:\d\d:){0,2}\d\d)[.,](\d{3})[ \t]+-->[ \t]+((?:\d\d:){0,2}\d\d)[.,](\d{3})(?:[ \t].*)?$`)
	// Fully normalized SRT timing, matched as a line prefix.
	reSRTTimestamp = regexp.MustCompile(`^(?:\d\d:){2}\d\d,\d{3} --> (?:\d\d:){2}\d\d,\d{3}`)
)

// NormalizeTimestamps rewrites every VTT timing line to HH:MM:SS,mmm --> HH:MM:SS,mmm.
// Omitted hour and minute fields are zero padded per side and cue settings
// are dropped. Other lines are left untouched.
func NormalizeTimestamps(doc model.Document) model.Document {
	out := make([]string, len(doc.Lines))
	for i, line := range doc.Lines {
		out[i] = normalizeTimestampLine(line)
	}
	return model.Document{Lines: out}
}

func normalizeTimestampLine(line string) string {
	m := reTimestampLine.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	return padClock(m[1]) + "," + m[2] + " --> " + padClock(m[3]) + "," + m[4]
}

// padClock completes SS or MM:SS to HH:MM:SS.
func padClock(clock string) string {
	fields := strings.Split(clock, ":")
	for len(fields) < 3 {
		fields = append([]string{"00"}, fields...)
	}
	return strings.Join(fields, ":")
}

func isCueTimestamp(line string) bool {
	return reSRTTimestamp.MatchString(line)
}
