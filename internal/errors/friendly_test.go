package errors

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileError_Classifies(t *testing.T) {
	dir := t.TempDir()
	_, notExist := os.ReadFile(filepath.Join(dir, "missing"))
	_, isDir := os.ReadFile(dir)
	perm := &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"missing", notExist, "File not found"},
		{"dir", isDir, "is a directory"},
		{"perm", perm, "Permission denied"},
		{"other", stderrors.New("boom"), "Cannot read file"},
	}
	for _, c := range cases {
		fe := FileError("/x", c.err)
		if !strings.Contains(fe.Message, c.want) {
			t.Errorf("%s: message %q want containing %q", c.name, fe.Message, c.want)
		}
		if !stderrors.Is(fe, c.err) {
			t.Errorf("%s: Unwrap chain lost the original error", c.name)
		}
		if !strings.Contains(fe.Error(), "How to fix:") {
			t.Errorf("%s: missing suggestion in %q", c.name, fe.Error())
		}
	}
}

func TestSummary(t *testing.T) {
	if Summary(nil) != "" {
		t.Fatalf("nil summary should be empty")
	}
	fe := FileError("/a", fs.ErrNotExist)
	if got := Summary(fe); got != "File not found: /a" {
		t.Fatalf("Summary=%q", got)
	}
	if got := Summary(stderrors.New("plain")); got != "plain" {
		t.Fatalf("Summary=%q", got)
	}
}

func TestConfigError_Docs(t *testing.T) {
	e := ConfigError("logging.level", "bad")
	if !strings.Contains(e.Error(), "Documentation: ") {
		t.Fatalf("expected docs link in %q", e.Error())
	}
}
