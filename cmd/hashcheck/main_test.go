package main

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxwalker/hashcheck/internal/config"
)

const (
	emptySHA = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	abcSHA   = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
)

type harness struct {
	cli    *cli
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newHarness isolates the test from any real user config.
func newHarness(t *testing.T, stdin string) *harness {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	t.Setenv("HOME", t.TempDir())
	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.cli = &cli{stdin: strings.NewReader(stdin), stdout: h.stdout, stderr: h.stderr}
	return h
}

func (h *harness) run(args ...string) error {
	return h.cli.run(context.Background(), args)
}

func writeTemp(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func TestText_argument(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run("text", "abc"))
	assert.Equal(t, abcSHA+"\n", h.stdout.String())
}

func TestText_stdin(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run("text"))
	assert.Equal(t, emptySHA+"\n", h.stdout.String())

	h = newHarness(t, "abc\n")
	require.NoError(t, h.run("text", "-n"))
	assert.Equal(t, abcSHA+"\n", h.stdout.String())
}

func TestText_json(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run("text", "--json", ""))
	var out map[string]string
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &out))
	assert.Equal(t, emptySHA, out["digest"])
}

func TestText_tooManyArgs(t *testing.T) {
	h := newHarness(t, "")
	assert.Error(t, h.run("text", "a", "b"))
}

func TestFile_sha256sumLayout(t *testing.T) {
	h := newHarness(t, "")
	p := writeTemp(t, "abc.txt", "abc")
	require.NoError(t, h.run("file", p))
	assert.Equal(t, abcSHA+"  "+p+"\n", h.stdout.String())
}

func TestFile_partialFailure(t *testing.T) {
	h := newHarness(t, "")
	good := writeTemp(t, "abc.txt", "abc")
	missing := filepath.Join(t.TempDir(), "missing.bin")

	err := h.run("file", missing, good)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Equal(t, abcSHA+"  "+good+"\n", h.stdout.String())
	assert.Contains(t, h.stderr.String(), "File not found: "+missing)
}

func TestFile_emptyPathIsUsageError(t *testing.T) {
	h := newHarness(t, "")
	good := writeTemp(t, "abc.txt", "abc")

	err := h.run("file", good, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PATH must not be empty")
	assert.NotContains(t, err.Error(), "no file selected")
	assert.Empty(t, h.stdout.String(), "nothing is hashed when an argument is invalid")
}

func TestFile_json(t *testing.T) {
	h := newHarness(t, "")
	good := writeTemp(t, "abc.txt", "abc")
	missing := filepath.Join(t.TempDir(), "missing.bin")

	require.Error(t, h.run("file", "--json", good, missing))

	var out []fileResult
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, abcSHA, string(out[0].Digest))
	assert.Equal(t, int64(3), out[0].Size)
	assert.Equal(t, "3 B", out[0].SizeHuman)
	assert.Empty(t, out[1].Digest)
	assert.NotEmpty(t, out[1].Error)
}

func TestCompare_match(t *testing.T) {
	h := newHarness(t, "")
	p := writeTemp(t, "abc.txt", "abc")
	require.NoError(t, h.run("compare", abcSHA, p))
	assert.Equal(t, "Hashes match!\n", h.stdout.String())

	h = newHarness(t, "")
	require.NoError(t, h.run("compare", "--hash", abcSHA, p))
	assert.Equal(t, "Hashes match!\n", h.stdout.String())
}

func TestCompare_mismatchExitCode(t *testing.T) {
	h := newHarness(t, "")
	p := writeTemp(t, "abc.txt", "abc")

	err := h.run("compare", strings.ToUpper(abcSHA), p)

	require.Error(t, err)
	var coder interface{ ExitCode() int }
	require.True(t, errors.As(err, &coder))
	assert.Equal(t, 1, coder.ExitCode())
	assert.Equal(t, "Hashes do not match!\n", h.stdout.String())
}

func TestCompare_warnsOnMalformedReference(t *testing.T) {
	h := newHarness(t, "")
	p := writeTemp(t, "abc.txt", "abc")

	require.Error(t, h.run("compare", "--json", "not-a-hash", p))

	assert.Contains(t, h.stderr.String(), "not a 64-character hex digest")
	var out map[string]string
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &out))
	assert.Equal(t, "mismatch", out["outcome"])
}

func TestCompare_readError(t *testing.T) {
	h := newHarness(t, "")
	missing := filepath.Join(t.TempDir(), "missing")

	err := h.run("compare", abcSHA, missing)

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	var coder interface{ ExitCode() int }
	assert.False(t, errors.As(err, &coder), "read errors are not mismatches")
	assert.Empty(t, h.stdout.String())
}

func TestCompare_usage(t *testing.T) {
	h := newHarness(t, "")
	assert.Error(t, h.run("compare", abcSHA))
	assert.Error(t, h.run("compare", "--hash", abcSHA, "a", "b"))
}

func TestCompare_emptyPathIsUsageError(t *testing.T) {
	h := newHarness(t, "")
	for _, args := range [][]string{
		{"compare", abcSHA, ""},
		{"compare", "--hash", abcSHA, ""},
	} {
		err := h.run(args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "PATH must not be empty")
		var coder interface{ ExitCode() int }
		assert.False(t, errors.As(err, &coder), "usage errors are not mismatches")
	}
}

func TestMetricsTextfileWritten(t *testing.T) {
	h := newHarness(t, "")
	prom := filepath.Join(t.TempDir(), "hashcheck.prom")
	cfgPath := writeTemp(t, "config.yml", strings.Join([]string{
		"version: 1",
		"metrics:",
		"  prometheus_textfile:",
		"    enabled: true",
		"    path: " + prom,
	}, "\n"))

	require.NoError(t, h.run("text", "--config", cfgPath, "abc"))

	b, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(b), `hashcheck_hashes_total{kind="text"} 1`)
}

func TestConfigPrintAndValidate(t *testing.T) {
	h := newHarness(t, "")
	cfgPath := writeTemp(t, "config.yml", "version: 1\nui:\n  default_text: hello\n")

	require.NoError(t, h.run("config", "validate", "--config", cfgPath))
	assert.Contains(t, h.stdout.String(), "config: valid")

	h.stdout.Reset()
	require.NoError(t, h.run("config", "print", "--config", cfgPath))
	assert.Contains(t, h.stdout.String(), "default_text: hello")

	bad := writeTemp(t, "bad.yml", "version: 7\n")
	err := h.run("config", "validate", "--config", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "How to fix:")

	assert.Error(t, h.run("config"))
	assert.Error(t, h.run("config", "frobnicate"))
}

func TestUnknownCommandSuggests(t *testing.T) {
	h := newHarness(t, "")
	err := h.run("cmp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "compare"?`)

	err = h.run("fiel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "file"?`)
}

func TestVersionAndHelp(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run("version"))
	assert.Equal(t, version+"\n", h.stdout.String())

	h.stdout.Reset()
	require.NoError(t, h.run("help"))
	assert.Contains(t, h.stdout.String(), "compare HASH PATH")
}
