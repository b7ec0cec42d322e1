package convert

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luismascotto/vtt2srt/internal/model"
	"github.com/luismascotto/vtt2srt/internal/textfile"
)

const sampleVTT = "WEBVTT\n\n00:00.000 --> 00:02.500\nHello\n\n00:03.000 --> 00:04.000\nWorld\n"

func newTestConverter(t *testing.T, recursive bool, reviewer Reviewer) *Converter {
	t.Helper()
	codec, err := textfile.LookupCodec("utf-8")
	if err != nil {
		t.Fatal(err)
	}
	return New(Options{Mode: model.ModeClean, Codec: codec, Recursive: recursive, Fallback: true}, reviewer, nil)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"movie.vtt", "movie.srt"},
		{filepath.Join("dir.vtt", "movie.en.vtt"), filepath.Join("dir.vtt", "movie.en.srt")},
		{"a.vtt.bak", "a.srt.bak"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.in); got != tt.want {
			t.Errorf("OutputPath(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsVTT(t *testing.T) {
	if !IsVTT(filepath.Join("x", "movie.vtt")) || IsVTT(filepath.Join("dir.vtt", "notes.txt")) || IsVTT("movie.VTT") {
		t.Fatal("IsVTT matched the wrong names")
	}
}

func TestRunSingleFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "movie.vtt")
	writeFile(t, in, sampleVTT)

	report, err := newTestConverter(t, false, nil).Run(in)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if report.Count(StatusConverted) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	got, err := os.ReadFile(filepath.Join(dir, "movie.srt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "1\n00:00:00,000 --> 00:00:02,500\nHello\n\n2\n00:00:03,000 --> 00:00:04,000\nWorld\n"
	if string(got) != want {
		t.Fatalf("movie.srt = %q, want %q", got, want)
	}
	if report.Results[0].Stats.Cues != 2 {
		t.Fatalf("Stats.Cues = %d, want 2", report.Results[0].Stats.Cues)
	}
}

func TestRunSingleFileNotVTT(t *testing.T) {
	in := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, in, "hello")

	report, err := newTestConverter(t, false, nil).Run(in)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if report.Count(StatusIgnored) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestRunSingleFileDecodeErrorIsFatal(t *testing.T) {
	in := filepath.Join(t.TempDir(), "bad.vtt")
	writeFile(t, in, "WEBVTT\n\xff\n")

	_, err := newTestConverter(t, false, nil).Run(in)
	var decodeErr *textfile.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Run() error = %v, want *textfile.DecodeError", err)
	}
}

func TestRunInvalidPath(t *testing.T) {
	_, err := newTestConverter(t, false, nil).Run(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("Run() error = %v, want ErrInvalidPath", err)
	}
}

// Only a.vtt is converted; b.txt is left alone.
func TestRunDirectoryNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.vtt"), sampleVTT)
	writeFile(t, filepath.Join(dir, "b.txt"), "untouched")
	writeFile(t, filepath.Join(dir, "sub", "c.vtt"), sampleVTT)

	report, err := newTestConverter(t, false, nil).Run(dir)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(report.Results) != 1 || report.Results[0].Output != filepath.Join(dir, "a.srt") {
		t.Fatalf("unexpected report: %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.srt")); err != nil {
		t.Fatalf("a.srt not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.srt")); !os.IsNotExist(err) {
		t.Fatal("b.txt should not be converted")
	}
	if data, _ := os.ReadFile(filepath.Join(dir, "b.txt")); string(data) != "untouched" {
		t.Fatalf("b.txt modified: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "sub", "c.srt")); !os.IsNotExist(err) {
		t.Fatal("subdirectory converted without recursive")
	}
}

func TestRunDirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.vtt"), sampleVTT)
	writeFile(t, filepath.Join(dir, "sub", "deeper", "c.vtt"), sampleVTT)

	report, err := newTestConverter(t, true, nil).Run(dir)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if report.Count(StatusConverted) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dir, "sub", "deeper", "c.srt")); err != nil {
		t.Fatalf("nested output missing: %v", err)
	}
}

// A file that does not decode is reported and the batch carries on.
func TestRunDirectorySkipsUndecodableFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.vtt"), sampleVTT)
	writeFile(t, filepath.Join(dir, "broken.vtt"), "WEBVTT\n\n00:01.000 --> 00:02.000\n\xc3\x28\n")
	writeFile(t, filepath.Join(dir, "z.vtt"), sampleVTT)

	report, err := newTestConverter(t, false, nil).Run(dir)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if report.Count(StatusConverted) != 2 || report.Count(StatusSkipped) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	skipped := report.Results[1]
	if skipped.Input != filepath.Join(dir, "broken.vtt") || !strings.Contains(skipped.Err.Error(), "broken.vtt") {
		t.Fatalf("skipped result does not name the file: %+v", skipped)
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.srt")); !os.IsNotExist(err) {
		t.Fatal("broken.srt should not exist")
	}
}

type scriptedReviewer struct {
	decisions []Decision
	seen      []Preview
}

func (r *scriptedReviewer) Review(p Preview) (Decision, error) {
	r.seen = append(r.seen, p)
	d := r.decisions[0]
	r.decisions = r.decisions[1:]
	return d, nil
}

func TestRunWithReviewer(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.vtt", "b.vtt", "c.vtt", "d.vtt"} {
		writeFile(t, filepath.Join(dir, name), sampleVTT)
	}
	reviewer := &scriptedReviewer{decisions: []Decision{DecisionApply, DecisionSkip, DecisionQuit}}

	report, err := newTestConverter(t, false, reviewer).Run(dir)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if !report.Aborted {
		t.Fatal("expected report to be marked aborted")
	}
	if len(reviewer.seen) != 3 || reviewer.seen[0].Stats.Cues != 2 || !strings.HasPrefix(reviewer.seen[0].Text, "1\n") {
		t.Fatalf("unexpected previews: %+v", reviewer.seen)
	}
	if report.Count(StatusConverted) != 1 || report.Count(StatusDeclined) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	for name, want := range map[string]bool{"a.srt": true, "b.srt": false, "c.srt": false, "d.srt": false} {
		_, err := os.Stat(filepath.Join(dir, name))
		if got := err == nil; got != want {
			t.Errorf("%s exists = %v, want %v", name, got, want)
		}
	}
}
