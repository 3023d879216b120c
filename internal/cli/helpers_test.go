package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/lexweb/internal/clock"
	"github.com/roach88/lexweb/internal/config"
	"github.com/roach88/lexweb/internal/ids"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// harness runs root commands against one database with a shared
// deterministic clock, the way separate invocations would share a file.
type harness struct {
	t     *testing.T
	db    string
	clock *clock.Step
	ids   *ids.Sequential
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, k := range []string{config.EnvDatabase, config.EnvOwner, config.EnvLogLevel, config.EnvLogFormat} {
		t.Setenv(k, "")
	}
	return &harness{
		t:     t,
		db:    filepath.Join(t.TempDir(), "lexweb.db"),
		clock: clock.NewStep(t0, time.Second),
		ids:   ids.NewSequential("id"),
	}
}

// run executes lexweb with --db and --owner alice prepended.
func (h *harness) run(args ...string) (stdout, stderr string, err error) {
	h.t.Helper()
	return h.runRaw(append([]string{"--db", h.db, "--owner", "alice"}, args...)...)
}

// runRaw executes lexweb with exactly args.
func (h *harness) runRaw(args ...string) (stdout, stderr string, err error) {
	h.t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCommand(&RootOptions{Clock: h.clock, IDs: h.ids})
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// must runs args and fails the test on error.
func (h *harness) must(args ...string) string {
	h.t.Helper()
	out, errOut, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("lexweb %v: %v\nstdout: %s\nstderr: %s", args, err, out, errOut)
	}
	return out
}
