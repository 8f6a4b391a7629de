package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/pflag"

	"github.com/jxwalker/hashcheck/internal/config"
	"github.com/jxwalker/hashcheck/internal/logging"
	"github.com/jxwalker/hashcheck/internal/metrics"
)

var version = "dev"

var commandNames = []string{"text", "file", "compare", "tui", "config", "version", "help"}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// exitError carries a process exit status without printing an error line.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) ExitCode() int { return e.code }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := c.run(ctx, os.Args[1:]); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		// No subcommand: open the interactive checker.
		return c.handleTUI(ctx, nil)
	}

	cmd := args[0]
	switch cmd {
	case "text":
		return c.handleText(ctx, args[1:])
	case "file":
		return c.handleFile(ctx, args[1:])
	case "compare":
		return c.handleCompare(ctx, args[1:])
	case "tui":
		return c.handleTUI(ctx, args[1:])
	case "config":
		return c.handleConfig(ctx, args[1:])
	case "version":
		fmt.Fprintln(c.stdout, version)
		return nil
	case "help", "-h", "--help":
		c.usage()
		return nil
	default:
		c.usage()
		if s := suggestCommand(cmd); s != "" {
			return fmt.Errorf("unknown command: %s (did you mean %q?)", cmd, s)
		}
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (c *cli) usage() {
	fmt.Fprintln(c.stdout, strings.TrimSpace(`hashcheck - SHA-256 hash checker

Usage:
  hashcheck [command] [flags]

Commands:
  text [TEXT]       Print the SHA-256 of TEXT (or of stdin when TEXT is omitted)
  file PATH...      Print the SHA-256 of each file
  compare HASH PATH Compare HASH with the SHA-256 of PATH (exit 1 on mismatch)
  tui               Open the interactive checker (default when no command is given)
  config validate   Validate the YAML config file
  config print      Print the effective config as YAML
  config wizard     Interactive form that generates a YAML config
  version           Print version
  help              Show this help

Flags:
  --config PATH     Path to YAML config file (or HASHCHECK_CONFIG env var; default: ~/.config/hashcheck/config.yml)
  --log-level L     Log level: debug|info|warn|error (overrides logging.level)
  --json            JSON output and JSON log lines
`))
}

// suggestCommand returns the known command closest to cmd, or "".
func suggestCommand(cmd string) string {
	cmd = strings.ToLower(strings.TrimSpace(cmd))
	if cmd == "" {
		return ""
	}
	if ranks := fuzzy.RankFindFold(cmd, commandNames); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := fuzzy.LevenshteinDistance(cmd, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

type commonFlags struct {
	cfgPath  string
	logLevel string
	json     bool
}

func addCommonFlags(fs *pflag.FlagSet) *commonFlags {
	f := &commonFlags{}
	fs.StringVar(&f.cfgPath, "config", "", "Path to YAML config file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	fs.BoolVar(&f.json, "json", false, "JSON output")
	return f
}

func (c *cli) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// setup loads the config and builds the logger and metrics manager shared by
// the hashing commands. Logs always go to stderr.
func (f *commonFlags) setup(c *cli) (*config.Config, *logging.Logger, *metrics.Manager, error) {
	cfg, err := config.Resolve(f.cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}
	level := f.logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	log := logging.NewWriter(c.stderr, level, f.json || cfg.JSONLogs())
	return cfg, log, metrics.New(cfg), nil
}

func writeMetrics(m *metrics.Manager, log *logging.Logger) {
	if err := m.Write(); err != nil {
		log.Warnf("metrics: %v", err)
	}
}
