package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/jxwalker/hashcheck/internal/config"
	friendlyerrors "github.com/jxwalker/hashcheck/internal/errors"
	cw "github.com/jxwalker/hashcheck/internal/tui/configwizard"
)

func (c *cli) handleConfig(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("config subcommand required: validate | print | wizard")
	}
	sub := args[0]
	switch sub {
	case "validate":
		return c.configOp("config validate", args[1:], func(cfg *config.Config) error {
			if err := cfg.ValidateWithFriendlyErrors(); err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, "config: valid")
			return nil
		})
	case "print":
		return c.configOp("config print", args[1:], func(cfg *config.Config) error {
			enc := yaml.NewEncoder(c.stdout)
			enc.SetIndent(2)
			defer func() { _ = enc.Close() }()
			return enc.Encode(cfg)
		})
	case "wizard":
		return c.handleConfigWizard(ctx, args[1:])
	default:
		return fmt.Errorf("unknown config subcommand: %s", sub)
	}
}

func (c *cli) configOp(name string, args []string, fn func(*config.Config) error) error {
	fs := c.newFlagSet(name)
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Resolve(common.cfgPath)
	if err != nil {
		return friendlyerrors.ConfigError("config", err.Error()).WithDetails(err)
	}
	return fn(cfg)
}

func (c *cli) handleConfigWizard(ctx context.Context, args []string) error {
	fs := c.newFlagSet("config wizard")
	out := fs.String("out", "", "write YAML to this path instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := cw.New(config.Default())
	m, err := tea.NewProgram(w, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	wiz, ok := m.(*cw.Wizard)
	if !ok {
		return errors.New("unexpected model type from wizard")
	}
	cfg := wiz.Config()
	if cfg == nil {
		return errors.New("config wizard was cancelled")
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = c.stdout.Write(b)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "wrote config to %s\n", *out)
	return nil
}
