package session

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxwalker/hashcheck/internal/config"
	"github.com/jxwalker/hashcheck/internal/hasher"
	"github.com/jxwalker/hashcheck/internal/logging"
	"github.com/jxwalker/hashcheck/internal/metrics"
)

const abcSHA = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

func newFile(t *testing.T, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func TestGenerateTextHash(t *testing.T) {
	s := New("abc", nil, nil)
	s.GenerateTextHash()
	assert.Equal(t, hasher.Digest(abcSHA), s.TextDigest)
	assert.Equal(t, hasher.Digest(abcSHA), s.LastDigest())
}

func TestFileOpsRequireSelection(t *testing.T) {
	s := New("", nil, nil)
	assert.ErrorIs(t, s.GenerateFileHash(), ErrNoFile)
	assert.ErrorIs(t, s.CompareFile(), ErrNoFile)
	assert.Equal(t, StatusNone, s.Status)
}

func TestSelectFileClearsDigest(t *testing.T) {
	p := newFile(t, "abc")
	s := New("", nil, nil)
	s.SelectFile(p)
	require.NoError(t, s.GenerateFileHash())
	assert.Equal(t, hasher.Digest(abcSHA), s.FileDigest)
	assert.Equal(t, int64(3), s.FileSize)

	s.Reference = abcSHA
	require.NoError(t, s.CompareFile())
	require.Equal(t, StatusMatch, s.Status)

	s.SelectFile(newFile(t, "other"))
	assert.Empty(t, s.FileDigest)
	assert.Equal(t, StatusMatch, s.Status, "status survives a new pick")
}

func TestSizeCountedAtHashTime(t *testing.T) {
	prom := filepath.Join(t.TempDir(), "hashcheck.prom")
	cfg := config.Default()
	cfg.Metrics.PrometheusTextfile.Enabled = true
	cfg.Metrics.PrometheusTextfile.Path = prom
	m := metrics.New(cfg)
	require.NotNil(t, m)

	p := filepath.Join(t.TempDir(), "grows.txt")
	s := New("", nil, m)
	// Picked before it exists, so the pick-time size is unknown.
	s.SelectFile(p)
	assert.Equal(t, int64(0), s.FileSize)

	require.NoError(t, os.WriteFile(p, []byte("abc"), 0o600))
	require.NoError(t, s.GenerateFileHash())
	assert.Equal(t, int64(3), s.FileSize)

	require.NoError(t, os.WriteFile(p, []byte("abcdefgh"), 0o600))
	s.Reference = abcSHA
	require.NoError(t, s.CompareFile())
	assert.Equal(t, StatusMismatch, s.Status)
	assert.Equal(t, int64(8), s.FileSize)

	require.NoError(t, m.Write())
	b, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hashcheck_bytes_hashed_total 11\n")
}

func TestCompareFile(t *testing.T) {
	p := newFile(t, "abc")
	s := New("", nil, nil)
	s.SelectFile(p)

	s.Reference = strings.ToUpper(abcSHA)
	require.NoError(t, s.CompareFile())
	assert.Equal(t, StatusMismatch, s.Status)
	assert.Equal(t, "Hashes do not match!", s.Status.Message())

	s.Reference = abcSHA
	require.NoError(t, s.CompareFile())
	assert.Equal(t, StatusMatch, s.Status)
	assert.Equal(t, "Hashes match!", s.Status.Message())
}

func TestFailuresAreReportedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	s := New("", logging.NewWriter(&buf, "info", false), nil)
	p := newFile(t, "abc")
	s.SelectFile(p)
	require.NoError(t, s.GenerateFileHash())
	require.NoError(t, os.Remove(p))

	err := s.GenerateFileHash()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Empty(t, s.FileDigest)
	assert.Equal(t, err, s.Err)

	err = s.CompareFile()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, "Error comparing hashes", s.Status.Message())
	assert.Contains(t, buf.String(), "ERROR\tcompare")
}
