package walk

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/luismascotto/vtt2srt/internal/logging"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b.vtt", "a.vtt", "notes.txt", "sub/c.vtt", "sub/deeper/d.vtt")

	tests := []struct {
		name      string
		recursive bool
		want      []string
	}{
		{
			name:      "immediate children",
			recursive: false,
			want:      []string{"a.vtt", "b.vtt", "notes.txt"},
		},
		{
			name:      "full tree",
			recursive: true,
			want:      []string{"a.vtt", "b.vtt", "notes.txt", "sub/c.vtt", "sub/deeper/d.vtt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Files(root, tt.recursive, nil)
			if err != nil {
				t.Fatalf("Files() unexpected error: %v", err)
			}
			want := make([]string, len(tt.want))
			for i, name := range tt.want {
				want[i] = filepath.Join(root, filepath.FromSlash(name))
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("Files() = %v, want %v", got, want)
			}
		})
	}
}

func TestFilesSymlinks(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "real.vtt", "dir/inner.vtt")
	if err := os.Symlink(filepath.Join(root, "real.vtt"), filepath.Join(root, "link.vtt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "dir"), filepath.Join(root, "loop")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "gone.vtt"), filepath.Join(root, "dangling.vtt")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	got, err := Files(root, true, logger)
	if err != nil {
		t.Fatalf("Files() unexpected error: %v", err)
	}
	want := []string{
		filepath.Join(root, "dir", "inner.vtt"),
		filepath.Join(root, "link.vtt"),
		filepath.Join(root, "real.vtt"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Files() = %v, want %v", got, want)
	}

	warned := warnedPaths(t, &buf)
	for _, name := range []string{"dangling.vtt", "loop"} {
		path := filepath.Join(root, name)
		if warned[path] == "" {
			t.Errorf("no warning logged for %s; got %v", path, warned)
		}
	}
	if len(warned) != 2 {
		t.Errorf("warned about %d entries, want 2: %v", len(warned), warned)
	}
}

// warnedPaths maps the path attribute of each warn record to its message.
func warnedPaths(t *testing.T, buf *bytes.Buffer) map[string]string {
	t.Helper()
	warned := make(map[string]string)
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("invalid log line %q: %v", scanner.Text(), err)
		}
		if rec["level"] != "warn" {
			continue
		}
		path, _ := rec["path"].(string)
		msg, _ := rec["msg"].(string)
		warned[path] = msg
	}
	return warned
}

func TestFilesSymlinkedRoot(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, "real/a.vtt", "real/sub/b.vtt")
	link := filepath.Join(base, "link")
	if err := os.Symlink(filepath.Join(base, "real"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	tests := []struct {
		recursive bool
		want      []string
	}{
		{recursive: false, want: []string{filepath.Join(link, "a.vtt")}},
		{recursive: true, want: []string{filepath.Join(link, "a.vtt"), filepath.Join(link, "sub", "b.vtt")}},
	}
	for _, tt := range tests {
		got, err := Files(link, tt.recursive, nil)
		if err != nil {
			t.Fatalf("Files(recursive=%v) unexpected error: %v", tt.recursive, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Files(recursive=%v) = %v, want %v", tt.recursive, got, tt.want)
		}
	}
}

func TestFilesMissingRoot(t *testing.T) {
	if _, err := Files(filepath.Join(t.TempDir(), "nope"), true, nil); err == nil {
		t.Fatal("Files() expected error for missing root")
	}
	if _, err := Files(filepath.Join(t.TempDir(), "nope"), false, nil); err == nil {
		t.Fatal("Files() expected error for missing root")
	}
}
