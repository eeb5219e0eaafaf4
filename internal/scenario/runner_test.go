package scenario

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/ecommerce-e2e/internal/fakestore"
	"github.com/adyen/ecommerce-e2e/internal/fixtures"
	"github.com/adyen/ecommerce-e2e/internal/models"
	"github.com/adyen/ecommerce-e2e/internal/pages"
	"github.com/adyen/ecommerce-e2e/internal/repository"
	"github.com/adyen/ecommerce-e2e/internal/services"
)

type harness struct {
	store   *fakestore.Store
	service services.RunService
	runner  *Runner
	dir     string
}

func newHarness(t *testing.T, concurrency int, repo services.RunRepository) *harness {
	t.Helper()
	store, err := fakestore.New(fakestore.Options{Layout: fakestore.LayoutStandard})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if repo == nil {
		repo = repository.NewMemoryRunRepository()
	}
	service := services.NewRunService(repo)
	dir := t.TempDir()
	runner := NewRunner(store, service, Config{
		BaseURL:        store.BaseURL(),
		Driver:         "html",
		Concurrency:    concurrency,
		ArtifactDir:    dir,
		ProbeTimeout:   20 * time.Millisecond,
		ElementTimeout: 40 * time.Millisecond,
	}, nil)
	return &harness{store: store, service: service, runner: runner, dir: dir}
}

func TestRunner_SmokeAgainstFakeStore(t *testing.T) {
	fx, err := fixtures.Defaults()
	require.NoError(t, err)
	h := newHarness(t, 3, nil)

	journeys := Smoke(fx)
	report, err := h.runner.Run(context.Background(), journeys)
	require.NoError(t, err)

	for _, res := range report.Failed() {
		t.Errorf("journey %s failed (%s): %s\n%s", res.Name, res.FailureKind, res.Message, strings.Join(res.Diagnostics, "\n"))
	}
	assert.Equal(t, models.RunStatusPassed, report.Run.Status)
	assert.Equal(t, len(journeys), report.Run.Total)
	assert.Equal(t, names(journeys), resultNames(report.Results))

	stored, err := h.service.ListScenarios(report.Run.ID)
	require.NoError(t, err)
	assert.Len(t, stored, len(journeys))
}

func resultNames(rs []*models.ScenarioResult) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestRunner_FailureIsClassifiedWithScreenshot(t *testing.T) {
	h := newHarness(t, 1, nil)

	journeys := []Journey{
		{
			Name: "cart-never-filled",
			Tags: []string{TagCart},
			Run: func(ctx context.Context, pc *pages.Context) error {
				if err := pc.Navigate(ctx, "cart"); err != nil {
					return err
				}
				count, err := pages.NewCartPage(pc).CartItemCount(ctx)
				if err != nil {
					return err
				}
				return AtLeast("cart items", 1, count)
			},
		},
		{
			Name: "page-closed",
			Run: func(ctx context.Context, pc *pages.Context) error {
				pc.Page().Close()
				return pc.Navigate(ctx, "")
			},
		},
		{
			Name: "panics",
			Run: func(ctx context.Context, pc *pages.Context) error {
				panic("boom")
			},
		},
	}

	report, err := h.runner.Run(context.Background(), journeys)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusFailed, report.Run.Status)
	assert.Equal(t, 3, report.Run.Failed)
	require.Len(t, report.Results, 3)

	cart := report.Results[0]
	assert.Equal(t, models.FailureAssertion, cart.FailureKind)
	assert.Equal(t, "cart items: expected at least 1, got 0", cart.Message)
	assert.Equal(t, []string{TagCart}, cart.Tags)
	require.NotEmpty(t, cart.Screenshot)
	assert.True(t, strings.HasPrefix(cart.Screenshot, h.dir))
	_, statErr := os.Stat(cart.Screenshot)
	assert.NoError(t, statErr)

	closed := report.Results[1]
	assert.Equal(t, models.FailureDriverFault, closed.FailureKind)
	assert.Empty(t, closed.Screenshot)
	assert.True(t, containsLine(closed.Diagnostics, "screenshot"), "expected a screenshot warning in %v", closed.Diagnostics)

	panicked := report.Results[2]
	assert.Equal(t, models.FailureUnknown, panicked.FailureKind)
	assert.Contains(t, panicked.Message, "panicked: boom")
	assert.NotEmpty(t, panicked.Screenshot)
}

func TestRunner_DiagnosticsAreAttached(t *testing.T) {
	h := newHarness(t, 1, nil)

	report, err := h.runner.Run(context.Background(), []Journey{{
		Name: "degraded-but-passing",
		Run: func(ctx context.Context, pc *pages.Context) error {
			if err := pc.Navigate(ctx, ""); err != nil {
				return err
			}
			// Nothing to remove on an empty cart: degrades, never errors
			return pages.NewCartPage(pc).RemoveItem(ctx, 0)
		},
	}})
	require.NoError(t, err)

	res := report.Results[0]
	assert.True(t, res.IsPassed(), res.Message)
	assert.Empty(t, res.Screenshot)
	assert.True(t, containsLine(res.Diagnostics, "[warning]"), "expected warnings in %v", res.Diagnostics)
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestRunner_CancelledContextAbortsRun(t *testing.T) {
	h := newHarness(t, 2, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	report, err := h.runner.Run(ctx, []Journey{{
		Name: "never-runs",
		Run: func(context.Context, *pages.Context) error {
			ran.Store(true)
			return nil
		},
	}})
	require.NoError(t, err)

	assert.False(t, ran.Load())
	assert.Equal(t, models.RunStatusAborted, report.Run.Status)
	assert.Equal(t, models.FailureCancelled, report.Results[0].FailureKind)
}

func TestRunner_RespectsConcurrencyLimit(t *testing.T) {
	const limit = 2
	h := newHarness(t, limit, nil)

	var inFlight, peak atomic.Int32
	journey := func(ctx context.Context, pc *pages.Context) error {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		return nil
	}

	var journeys []Journey
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		journeys = append(journeys, Journey{Name: name, Run: journey})
	}

	report, err := h.runner.Run(context.Background(), journeys)
	require.NoError(t, err)
	assert.Equal(t, 6, report.Run.Passed)
	assert.LessOrEqual(t, peak.Load(), int32(limit))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, resultNames(report.Results))
}

type failingRepo struct {
	*repository.MemoryRunRepository
}

func (failingRepo) CreateScenarioResult(*models.ScenarioResult) error {
	return errors.New("disk full")
}

func TestRunner_RecordingErrorAbortsRun(t *testing.T) {
	repo := failingRepo{repository.NewMemoryRunRepository()}
	h := newHarness(t, 1, repo)

	_, err := h.runner.Run(context.Background(), []Journey{{
		Name: "ok",
		Run:  func(context.Context, *pages.Context) error { return nil },
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	runs, err := h.service.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunStatusAborted, runs[0].Status)
}

func TestRunner_RejectsInvalidJourneys(t *testing.T) {
	h := newHarness(t, 1, nil)

	_, err := h.runner.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoJourneys)

	_, err = h.runner.Run(context.Background(), []Journey{{Name: "no-run"}})
	assert.Error(t, err)

	runs, err := h.service.ListRuns(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
