package subtitle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/luismascotto/vtt2srt/internal/model"
)

// Stats summarizes converted SRT output.
type Stats struct {
	Cues  int
	Start time.Duration
	End   time.Duration
}

// Span is the time covered from the first cue start to the last cue end.
func (s Stats) Span() string {
	if s.Cues == 0 {
		return "-"
	}
	return FormatTime(s.Start) + " - " + FormatTime(s.End)
}

// Inspect parses SRT text best-effort and reports cue count and time span.
func Inspect(text string) Stats {
	cues, _ := ParseSRT([]byte(text), true)
	stats := Stats{Cues: len(cues)}
	for i, cue := range cues {
		if i == 0 || cue.Start < stats.Start {
			stats.Start = cue.Start
		}
		if cue.End > stats.End {
			stats.End = cue.End
		}
	}
	return stats
}

// ParseSRT parses minimal, common SRT. Best-effort if ignoreMinorErrors is true.
func ParseSRT(data []byte, ignoreMinorErrors bool) ([]*model.Cue, error) {
	blocks := splitSRTBlocks(data)
	cues := make([]*model.Cue, 0, len(blocks))
	for _, blk := range blocks {
		cue, err := parseSRTBlock(blk)
		if err != nil {
			if ignoreMinorErrors {
				continue
			}
			return nil, err
		}
		cues = append(cues, cue)
	}
	return cues, nil
}

func splitSRTBlocks(data []byte) [][]string {
	// Normalize newlines
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	parts := strings.Split(s, "\n\n")
	out := make([][]string, 0, len(parts))
	for _, p := range parts {
		lines := strings.Split(p, "\n")
		trimmed := make([]string, 0, len(lines))
		for _, l := range lines {
			trimmed = append(trimmed, strings.TrimRight(l, " \t"))
		}
		// Drop leading/trailing empty lines in each block
		for len(trimmed) > 0 && strings.TrimSpace(trimmed[0]) == "" {
			trimmed = trimmed[1:]
		}
		for len(trimmed) > 0 && strings.TrimSpace(trimmed[len(trimmed)-1]) == "" {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if len(trimmed) > 0 {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseSRTBlock(lines []string) (*model.Cue, error) {
	// Timing is usually the second line; legacy output may carry a stale
	// identifier above the fresh one, so look for it.
	timing := -1
	for i, l := range lines {
		if strings.Contains(l, "-->") {
			timing = i
			break
		}
	}
	if timing < 0 {
		return nil, errors.New("srt block has no timing line")
	}
	start, end, err := parseSRTTimingLine(lines[timing])
	if err != nil {
		return nil, fmt.Errorf("parse timing: %w", err)
	}
	index := 0
	if timing > 0 {
		index, _ = strconv.Atoi(strings.TrimSpace(lines[timing-1])) // ignore parsing errors; some files omit or duplicate
	}
	return &model.Cue{
		Index: index,
		Start: start,
		End:   end,
		Lines: append([]string{}, lines[timing+1:]...),
	}, nil
}

func parseSRTTimingLine(line string) (time.Duration, time.Duration, error) {
	// Example: 00:00:01,234 --> 00:00:04,567
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, errors.New("invalid timing separator")
	}
	start, err := parseSRTTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	end, err := parseSRTTime(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	return start, end, nil
}

func parseSRTTime(s string) (time.Duration, error) {
	// HH:MM:SS,mmm
	hmsMillis := strings.Split(s, ",")
	if len(hmsMillis) != 2 {
		return 0, errors.New("missing millis")
	}
	hms := strings.Split(hmsMillis[0], ":")
	if len(hms) != 3 {
		return 0, errors.New("invalid h:m:s")
	}
	h, err := strconv.Atoi(hms[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(hms[1])
	if err != nil {
		return 0, err
	}
	si, err := strconv.Atoi(hms[2])
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(hmsMillis[1])
	if err != nil {
		return 0, err
	}
	total := time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(si)*time.Second +
		time.Duration(ms)*time.Millisecond
	return total, nil
}

// FormatTime renders d as HH:MM:SS,mmm.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	ms := int(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
