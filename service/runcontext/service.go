package runcontext

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/elC0mpa/cost-advisor/model"
)

// New builds a run context from the environment and parsed flags.
func New(flags model.Flags, logOut io.Writer) (*Context, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment configuration: %w", err)
	}

	if flags.CurDatabase != "" {
		cfg.CurDatabase = flags.CurDatabase
	}
	if flags.CurTable != "" {
		cfg.CurTable = flags.CurTable
	}
	if flags.CurRegion != "" {
		cfg.CurRegion = flags.CurRegion
	}
	if flags.Region != "" {
		cfg.AWSRegion = flags.Region
	}
	if flags.Profile != "" {
		cfg.AWSProfile = flags.Profile
	}

	mode := model.ExecutionSync
	if flags.ExecutionMode != "" {
		mode = model.ExecutionMode(flags.ExecutionMode)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q (only %q is supported)", model.ErrInvalidExecutionType, mode, model.ExecutionSync)
	}

	return &Context{
		Config: cfg,
		Flags:  flags,
		Mode:   mode,
		Logger: newLogger(cfg.LogLevel, cfg.LogFormat, logOut),
		facts:  model.DefaultFacts(),
	}, nil
}

func newLogger(levelStr, formatStr string, out io.Writer) *slog.Logger {
	if out == nil {
		out = os.Stderr
	}

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// AddAlert appends a structured run event. Safe for concurrent use.
func (c *Context) AddAlert(level model.AlertLevel, provider, report, message string) {
	c.alertsMu.Lock()
	defer c.alertsMu.Unlock()
	c.alerts = append(c.alerts, model.Alert{
		Level:    level,
		Provider: provider,
		Report:   report,
		Message:  message,
		Time:     time.Now(),
	})
}

// Alerts returns a copy of the accumulated alerts.
func (c *Context) Alerts() []model.Alert {
	c.alertsMu.Lock()
	defer c.alertsMu.Unlock()
	out := make([]model.Alert, len(c.alerts))
	copy(out, c.alerts)
	return out
}

// SetDerivedFacts records the precondition resolver's outputs. Only the
// resolver calls this; providers read through Facts.
func (c *Context) SetDerivedFacts(facts model.DerivedFacts) {
	c.factsMu.Lock()
	defer c.factsMu.Unlock()
	c.facts = facts
}

// Facts returns the precondition-derived facts for query construction.
func (c *Context) Facts() model.DerivedFacts {
	c.factsMu.RLock()
	defer c.factsMu.RUnlock()
	return c.facts
}
