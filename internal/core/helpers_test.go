package core

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/lexweb/internal/clock"
	"github.com/roach88/lexweb/internal/ids"
	"github.com/roach88/lexweb/internal/store"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// fixture bundles a Service with the store and clock behind it.
type fixture struct {
	svc   *Service
	store *store.Store
	clock *clock.Step
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clk := clock.NewStep(t0, time.Second)
	opts = append([]Option{WithIDs(ids.NewSequential("id"))}, opts...)
	return &fixture{
		svc:   New(st, clk, opts...),
		store: st,
		clock: clk,
	}
}
