package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/logging"
	"github.com/adyen/ecommerce-e2e/internal/models"
	"github.com/adyen/ecommerce-e2e/internal/pages"
	"github.com/adyen/ecommerce-e2e/internal/services"
)

// screenshotTimeout bounds the failure screenshot, which is taken even
// when the journey context is already done
const screenshotTimeout = 10 * time.Second

// Config holds what every journey of a run shares
type Config struct {
	BaseURL string
	// Driver and Browser are recorded with the run
	Driver         string
	Browser        string
	Concurrency    int
	ArtifactDir    string
	ProbeTimeout   time.Duration
	ElementTimeout time.Duration
	Catalog        *locator.Catalog
	// JourneyTimeout bounds a single journey. Zero means no limit.
	JourneyTimeout time.Duration
}

// Report is a finished run and its results in journey order
type Report struct {
	Run     *models.Run
	Results []*models.ScenarioResult
}

// Failed returns the results that did not pass
func (r *Report) Failed() []*models.ScenarioResult {
	var out []*models.ScenarioResult
	for _, res := range r.Results {
		if !res.IsPassed() {
			out = append(out, res)
		}
	}
	return out
}

// Runner executes journeys, each on its own page of session
type Runner struct {
	session driver.Session
	results services.RunService
	cfg     Config
	log     logrus.FieldLogger
}

// NewRunner creates a runner. log may be nil.
func NewRunner(session driver.Session, results services.RunService, cfg Config, log logrus.FieldLogger) *Runner {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = pages.DefaultBaseURL
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{session: session, results: results, cfg: cfg, log: log}
}

// Run records a new run, executes journeys and closes the run. A journey
// failing does not stop the others; an error is returned only when results
// cannot be recorded. A cancelled ctx aborts the run.
func (r *Runner) Run(ctx context.Context, journeys []Journey) (*Report, error) {
	if len(journeys) == 0 {
		return nil, ErrNoJourneys
	}
	for _, j := range journeys {
		if j.Name == "" || j.Run == nil {
			return nil, fmt.Errorf("invalid journey %q: name and Run are required", j.Name)
		}
	}

	run, err := r.results.StartRun(r.cfg.BaseURL, r.cfg.Driver, r.cfg.Browser)
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}
	log := r.log.WithField("run", run.ID)
	log.WithFields(logrus.Fields{
		"journeys":    len(journeys),
		"concurrency": r.cfg.Concurrency,
		"base_url":    r.cfg.BaseURL,
	}).Info("run started")

	results := make([]*models.ScenarioResult, len(journeys))
	var g errgroup.Group
	g.SetLimit(r.cfg.Concurrency)
	for i, j := range journeys {
		g.Go(func() error {
			result, err := r.execute(ctx, run.ID, j, log)
			if err != nil {
				return err
			}
			results[i] = result
			if err := r.results.RecordScenario(result); err != nil {
				return fmt.Errorf("failed to record %s: %w", j.Name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if _, abortErr := r.results.AbortRun(run.ID); abortErr != nil {
			log.WithError(abortErr).Warn("failed to abort run")
		}
		return nil, err
	}

	var final *models.Run
	if ctx.Err() != nil {
		final, err = r.results.AbortRun(run.ID)
	} else {
		final, err = r.results.FinishRun(run.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to close run: %w", err)
	}

	log.WithFields(logrus.Fields{
		"status":   final.Status,
		"passed":   final.Passed,
		"failed":   final.Failed,
		"duration": final.Duration().Round(time.Millisecond),
	}).Info("run finished")
	return &Report{Run: final, Results: results}, nil
}

func (r *Runner) execute(ctx context.Context, runID string, j Journey, log logrus.FieldLogger) (*models.ScenarioResult, error) {
	log = log.WithField("journey", j.Name)
	log.Debug("journey started")

	started := time.Now()
	journal := action.NewJournal()
	shot, runErr := r.play(ctx, j, journal, log)

	result, err := models.NewScenarioResult(runID, j.Name, j.Tags, started, time.Since(started))
	if err != nil {
		return nil, fmt.Errorf("invalid result for %s: %w", j.Name, err)
	}
	for _, d := range journal.Entries() {
		result.Diagnostics = append(result.Diagnostics, d.String())
	}

	if runErr != nil {
		result.Fail(Classify(runErr), runErr.Error())
		result.Screenshot = shot
		log.WithError(runErr).WithFields(logrus.Fields{
			"kind":       result.FailureKind,
			"screenshot": shot,
			"warnings":   len(journal.Warnings()),
		}).Error("journey failed")
		return result, nil
	}

	log.WithFields(logrus.Fields{
		"duration": result.Duration.Round(time.Millisecond),
		"warnings": len(journal.Warnings()),
	}).Info("journey passed")
	return result, nil
}

// play runs j on a fresh page and returns the failure screenshot path
func (r *Runner) play(ctx context.Context, j Journey, journal *action.Journal, log logrus.FieldLogger) (shot string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.cfg.JourneyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.JourneyTimeout)
		defer cancel()
	}

	page, err := r.session.NewPage(ctx)
	if err != nil {
		return "", &action.DriverFault{Action: "newPage", Target: j.Name, Err: err}
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close page")
		}
	}()

	pc := pages.NewContext(page, r.cfg.BaseURL,
		pages.WithCatalog(r.cfg.Catalog),
		pages.WithArtifactDir(r.cfg.ArtifactDir),
		pages.WithProbeTimeout(r.cfg.ProbeTimeout),
		pages.WithElementTimeout(r.cfg.ElementTimeout),
		pages.WithJournal(journal),
		pages.WithLogger(log),
	)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("journey %s panicked: %v", j.Name, p)
			shot = r.screenshot(ctx, pc, j.Name, journal)
		}
	}()

	if err := j.Run(ctx, pc); err != nil {
		return r.screenshot(ctx, pc, j.Name, journal), err
	}
	return "", nil
}

func (r *Runner) screenshot(ctx context.Context, pc *pages.Context, label string, journal *action.Journal) string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), screenshotTimeout)
	defer cancel()

	path, err := pc.TakeScreenshot(ctx, label)
	if err != nil {
		journal.Warn("screenshot", label, "%v", err)
		return ""
	}
	return path
}
