// Package session holds the display state of an interactive hashing session
// and the event handlers that update it. Handlers call into package hasher
// directly and block until the digest is computed.
package session

import (
	"errors"
	"os"

	friendlyerrors "github.com/jxwalker/hashcheck/internal/errors"
	"github.com/jxwalker/hashcheck/internal/hasher"
	"github.com/jxwalker/hashcheck/internal/logging"
	"github.com/jxwalker/hashcheck/internal/metrics"
)

// ErrNoFile is returned by file operations before a file has been selected.
var ErrNoFile = errors.New("no file selected")

// Status is the last comparison result shown to the user.
type Status int

const (
	StatusNone Status = iota
	StatusMatch
	StatusMismatch
	StatusFailed
)

func (s Status) Message() string {
	switch s {
	case StatusMatch:
		return "Hashes match!"
	case StatusMismatch:
		return "Hashes do not match!"
	case StatusFailed:
		return "Error comparing hashes"
	default:
		return ""
	}
}

type State struct {
	Text       string
	TextDigest hasher.Digest

	FilePath   string
	FileDigest hasher.Digest
	FileSize   int64

	Reference string
	Status    Status

	// Err is the most recent failure, already wrapped for display.
	Err error

	log     *logging.Logger
	metrics *metrics.Manager
}

// New returns a State whose text field starts as defaultText. log and m may
// be nil.
func New(defaultText string, log *logging.Logger, m *metrics.Manager) *State {
	if log == nil {
		log = logging.Discard()
	}
	return &State{Text: defaultText, log: log, metrics: m}
}

func (s *State) GenerateTextHash() {
	s.TextDigest = hasher.HashText(s.Text)
	s.metrics.ObserveHash(metrics.KindText, int64(len(s.Text)))
	s.log.Debugf("text hash: len=%d digest=%s", len(s.Text), s.TextDigest)
}

// SelectFile records a newly picked file and clears its stale digest. The
// previous comparison status is left as is.
func (s *State) SelectFile(path string) {
	s.FilePath = path
	s.FileDigest = ""
	s.FileSize = 0
	s.Err = nil
	if fi, err := os.Stat(path); err == nil {
		s.FileSize = fi.Size()
	}
	s.log.Debugf("file selected: %s", path)
}

func (s *State) GenerateFileHash() error {
	if s.FilePath == "" {
		return ErrNoFile
	}
	d, err := hasher.HashFile(s.FilePath)
	if err != nil {
		s.FileDigest = ""
		return s.fail("hash_file", err)
	}
	s.FileDigest = d
	s.Err = nil
	s.metrics.ObserveHash(metrics.KindFile, s.statSize())
	s.log.Infof("file hash: %s %s", d, s.FilePath)
	return nil
}

// CompareFile compares Reference against the selected file's digest.
func (s *State) CompareFile() error {
	if s.FilePath == "" {
		return ErrNoFile
	}
	o, err := hasher.Compare(s.Reference, s.FilePath)
	if err != nil {
		s.Status = StatusFailed
		return s.fail("compare", err)
	}
	s.Err = nil
	s.metrics.ObserveHash(metrics.KindFile, s.statSize())
	s.metrics.ObserveComparison(o)
	if o == hasher.Match {
		s.Status = StatusMatch
	} else {
		s.Status = StatusMismatch
	}
	s.log.Infof("compare: %s %s", o, s.FilePath)
	return nil
}

// statSize refreshes FileSize after a successful read, so the size shown and
// counted is that of the bytes just hashed rather than of the file at pick time.
func (s *State) statSize() int64 {
	if fi, err := os.Stat(s.FilePath); err == nil {
		s.FileSize = fi.Size()
	}
	return s.FileSize
}

func (s *State) fail(op string, err error) error {
	s.metrics.IncErrors(op)
	s.log.Errorf("%s %s: %v", op, s.FilePath, err)
	s.Err = friendlyerrors.FileError(s.FilePath, err)
	return s.Err
}

// LastDigest returns the most recently relevant digest: the file digest when
// one exists, else the text digest.
func (s *State) LastDigest() hasher.Digest {
	if s.FileDigest != "" {
		return s.FileDigest
	}
	return s.TextDigest
}
