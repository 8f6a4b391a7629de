package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	friendlyerrors "github.com/jxwalker/hashcheck/internal/errors"
	"github.com/jxwalker/hashcheck/internal/hasher"
	"github.com/jxwalker/hashcheck/internal/session"
)

func (c *cli) handleText(ctx context.Context, args []string) error {
	fs := c.newFlagSet("text")
	common := addCommonFlags(fs)
	strip := fs.BoolP("strip-newline", "n", false, "drop one trailing newline from stdin input")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return errors.New("text takes at most one argument; quote text containing spaces")
	}
	_, log, m, err := common.setup(c)
	if err != nil {
		return err
	}
	defer writeMetrics(m, log)

	var text string
	if fs.NArg() == 1 {
		text = fs.Arg(0)
	} else {
		b, err := io.ReadAll(c.stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
		if *strip {
			text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
		}
	}

	st := session.New(text, log, m)
	st.GenerateTextHash()
	if common.json {
		return json.NewEncoder(c.stdout).Encode(map[string]any{"digest": st.TextDigest})
	}
	fmt.Fprintln(c.stdout, st.TextDigest)
	return nil
}

type fileResult struct {
	Path      string        `json:"path"`
	Digest    hasher.Digest `json:"digest,omitempty"`
	Size      int64         `json:"size"`
	SizeHuman string        `json:"size_human,omitempty"`
	Error     string        `json:"error,omitempty"`
}

func (c *cli) handleFile(ctx context.Context, args []string) error {
	fs := c.newFlagSet("file")
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("file requires at least one PATH")
	}
	if slices.Contains(fs.Args(), "") {
		return errors.New("file: PATH must not be empty")
	}
	_, log, m, err := common.setup(c)
	if err != nil {
		return err
	}
	defer writeMetrics(m, log)

	st := session.New("", log, m)
	results := make([]fileResult, 0, fs.NArg())
	failed := 0
	for _, p := range fs.Args() {
		st.SelectFile(p)
		r := fileResult{Path: p}
		if err := st.GenerateFileHash(); err != nil {
			failed++
			r.Error = friendlyerrors.Summary(err)
			if !common.json {
				fmt.Fprintf(c.stderr, "hashcheck: %s\n", r.Error)
			}
		} else {
			r.Digest = st.FileDigest
			r.Size = st.FileSize
			r.SizeHuman = humanize.Bytes(uint64(st.FileSize))
			if !common.json {
				// sha256sum layout so output can be fed to `sha256sum -c`.
				fmt.Fprintf(c.stdout, "%s  %s\n", r.Digest, r.Path)
			}
		}
		results = append(results, r)
	}
	if common.json {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(results))
	}
	return nil
}

func (c *cli) handleCompare(ctx context.Context, args []string) error {
	fs := c.newFlagSet("compare")
	common := addCommonFlags(fs)
	ref := fs.String("hash", "", "reference SHA-256 (alternative to the HASH argument)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var path string
	switch {
	case fs.Changed("hash") && fs.NArg() == 1:
		path = fs.Arg(0)
	case !fs.Changed("hash") && fs.NArg() == 2:
		*ref, path = fs.Arg(0), fs.Arg(1)
	default:
		return errors.New("usage: hashcheck compare HASH PATH (or --hash HASH PATH)")
	}
	if path == "" {
		return errors.New("compare: PATH must not be empty")
	}
	_, log, m, err := common.setup(c)
	if err != nil {
		return err
	}
	defer writeMetrics(m, log)

	if !hasher.LooksLikeDigest(*ref) {
		log.Warnf("reference %q is not a 64-character hex digest; comparing anyway", *ref)
	}
	st := session.New("", log, m)
	st.SelectFile(path)
	st.Reference = *ref
	if err := st.CompareFile(); err != nil {
		return err
	}
	if common.json {
		outcome := hasher.Match
		if st.Status != session.StatusMatch {
			outcome = hasher.Mismatch
		}
		if err := json.NewEncoder(c.stdout).Encode(map[string]any{
			"path":      path,
			"reference": st.Reference,
			"outcome":   outcome.String(),
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(c.stdout, st.Status.Message())
	}
	if st.Status != session.StatusMatch {
		return &exitError{code: 1, msg: st.Status.Message()}
	}
	return nil
}
