package main

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jxwalker/hashcheck/internal/logging"
	"github.com/jxwalker/hashcheck/internal/metrics"
	"github.com/jxwalker/hashcheck/internal/session"
	"github.com/jxwalker/hashcheck/internal/tui"
)

func (c *cli) handleTUI(ctx context.Context, args []string) error {
	fs := c.newFlagSet("tui")
	common := addCommonFlags(fs)
	startDir := fs.String("dir", "", "directory the file picker opens in (overrides ui.start_dir)")
	noAlt := fs.Bool("no-alt-screen", false, "render inline instead of in the alternate screen")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, _, _, err := common.setup(c)
	if err != nil {
		return err
	}
	if *startDir != "" {
		cfg.UI.StartDir = *startDir
	}
	if *noAlt {
		cfg.UI.AltScreen = false
	}

	// The terminal belongs to the UI; logs go to logging.file or nowhere.
	log := logging.Discard()
	if cfg.Logging.File != "" {
		level := common.logLevel
		if level == "" {
			level = cfg.Logging.Level
		}
		var closer io.Closer
		log, closer, err = logging.OpenFile(cfg.Logging.File, level, common.json || cfg.JSONLogs())
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()
	}
	m := metrics.New(cfg)
	defer writeMetrics(m, log)

	st := session.New(cfg.UI.DefaultText, log, m)
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	log.Infof("tui: start dir=%q", cfg.UI.StartDir)
	_, err = tea.NewProgram(tui.New(cfg, st), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
