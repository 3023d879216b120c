package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/roach88/lexweb/internal/clock"
	"github.com/roach88/lexweb/internal/core"
	"github.com/roach88/lexweb/internal/ids"
	"github.com/roach88/lexweb/internal/model"
	"github.com/roach88/lexweb/internal/store"
)

// session is one command's view of the database.
type session struct {
	svc      *core.Service
	store    *store.Store
	out      *OutputFormatter
	owner    model.Owner
	registry *prometheus.Registry
	opts     *RootOptions
	errOut   io.Writer
}

// openSession opens the configured database and builds the service.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := opts.formatter(cmd)
	st, err := store.Open(opts.cfg.Database)
	if err != nil {
		_ = out.Error(ErrCodeDatabase, err.Error(), map[string]string{"path": opts.cfg.Database})
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	if err := st.Ping(cmd.Context()); err != nil {
		st.Close()
		_ = out.Error(ErrCodeDatabase, err.Error(), map[string]string{"path": opts.cfg.Database})
		return nil, WrapExitError(ExitCommandError, "database not reachable", err)
	}
	opts.logger.Debug("database ready", "path", opts.cfg.Database)

	clk := opts.Clock
	if clk == nil {
		clk = clock.NewWall()
	}
	var gen ids.Generator = ids.UUIDv7Generator{}
	if opts.IDs != nil {
		gen = opts.IDs
	}

	reg := prometheus.NewRegistry()
	svc := core.New(st, clk,
		core.WithLogger(opts.logger),
		core.WithMetrics(core.NewMetrics(reg)),
		core.WithIDs(gen),
	)

	return &session{
		svc:      svc,
		store:    st,
		out:      out,
		owner:    model.Owner(opts.cfg.Owner),
		registry: reg,
		opts:     opts,
		errOut:   cmd.ErrOrStderr(),
	}, nil
}

// requireOwner fails unless an owner is configured.
func (s *session) requireOwner() error {
	if s.owner != "" {
		return nil
	}
	err := fmt.Errorf("owner is required (--owner, LEXWEB_OWNER or owner: in --config)")
	_ = s.out.Error(ErrCodeConfig, err.Error(), nil)
	return WrapExitError(ExitCommandError, "invalid configuration", err)
}

// close releases the database and, with --metrics, prints the counters.
func (s *session) close() {
	if s.opts.Metrics {
		if err := writeMetrics(s.errOut, s.registry); err != nil {
			s.opts.logger.Error("failed to write metrics", "error", err)
		}
	}
	if err := s.store.Close(); err != nil {
		s.opts.logger.Error("error closing database", "error", err)
	}
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// run opens a session, runs fn, and closes the session. Errors from fn are
// reported through the formatter.
func run(opts *RootOptions, cmd *cobra.Command, needOwner bool, fn func(*session) error) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if needOwner {
		if err := s.requireOwner(); err != nil {
			return err
		}
	}
	if err := fn(s); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return err
		}
		return s.out.Fail(err)
	}
	return nil
}
