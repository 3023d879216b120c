package core

import (
	"context"
	"io"
	"log/slog"

	"github.com/roach88/lexweb/internal/clock"
	"github.com/roach88/lexweb/internal/ids"
	"github.com/roach88/lexweb/internal/model"
)

// Service exposes the lexweb operations.
//
// Thread-safety: Service holds no mutable state of its own; concurrent calls
// are serialised by the repository's transactions. The *model.Lexicon and
// *model.Web arguments are updated in place on success and must not be
// shared between goroutines without external synchronisation.
type Service struct {
	repo    Repository
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics enables operation counters.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithIDs overrides the entity ID generator (UUIDv7 by default).
func WithIDs(g ids.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.ids = g
		}
	}
}

// New creates a Service over repo using clk for every timestamp.
func New(repo Repository, clk clock.Clock, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		clock:  clk,
		ids:    ids.UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// done records metrics and logs the outcome of a mutation.
func (s *Service) done(ctx context.Context, op string, err error, attrs ...any) {
	s.metrics.observe(op, err)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, op, attrs...)
	case model.CodeOf(err) != "":
		s.logger.WarnContext(ctx, op+" rejected", append(attrs, "error", err)...)
	default:
		s.logger.ErrorContext(ctx, op+" failed", append(attrs, "error", err)...)
	}
}
