package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/adyen/ecommerce-e2e/internal/config"
	"github.com/adyen/ecommerce-e2e/internal/fakestore"
	"github.com/adyen/ecommerce-e2e/internal/fixtures"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/logging"
	"github.com/adyen/ecommerce-e2e/internal/models"
	"github.com/adyen/ecommerce-e2e/internal/scenario"
)

// SmokeCommand returns the smoke command
func SmokeCommand() *cli.Command {
	return &cli.Command{
		Name:  "smoke",
		Usage: "Run the storefront journeys and record their results",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "storefront origin (BASE_URL)"},
			&cli.StringFlag{Name: "driver", Usage: "playwright, rod or html (DRIVER)"},
			&cli.StringFlag{Name: "browser", Usage: "chromium, firefox or webkit (BROWSER)"},
			&cli.BoolFlag{Name: "headless", Usage: "run the browser without a window (HEADLESS)"},
			&cli.BoolFlag{Name: "stealth", Usage: "hide automation markers, rod only (STEALTH)"},
			&cli.IntFlag{Name: "concurrency", Usage: "journeys run at once (CONCURRENCY)"},
			&cli.StringSliceFlag{Name: "journey", Aliases: []string{"j"}, Usage: "run only the named journey, repeatable"},
			&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "run only journeys with the tag, repeatable"},
			&cli.StringFlag{Name: "artifact-dir", Usage: "where failure screenshots go (ARTIFACT_DIR)"},
			&cli.StringFlag{Name: "catalog", Usage: "YAML locator overrides (LOCATOR_CATALOG)"},
			&cli.StringFlag{Name: "fixtures", Usage: "directory of fixture JSON files (FIXTURE_DIR)"},
			&cli.DurationFlag{Name: "probe-timeout", Usage: "bound of a single locator probe (PROBE_TIMEOUT)"},
			&cli.DurationFlag{Name: "element-timeout", Usage: "bound of an assertive wait (ELEMENT_TIMEOUT)"},
			&cli.DurationFlag{Name: "journey-timeout", Usage: "bound of a whole journey, 0 for none"},
			&cli.StringFlag{Name: "layout", Value: string(fakestore.LayoutStandard), Usage: "footer layout of the html driver store"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (LOG_LEVEL)"},
			&cli.BoolFlag{Name: "serve", Usage: "serve the report after the run until interrupted"},
		},
		Action: runSmoke,
	}
}

func runSmoke(c *cli.Context) error {
	cfg, err := config.LoadSuiteConfig(os.Getenv)
	if err != nil {
		return err
	}
	applySuiteFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(errWriter(c), cfg.LogLevel)
	if err != nil {
		return err
	}

	layout := fakestore.Layout(c.String("layout"))
	switch layout {
	case fakestore.LayoutStandard, fakestore.LayoutAlternate, fakestore.LayoutMinimal:
	default:
		return fmt.Errorf("unknown layout %q", layout)
	}

	var catalog *locator.Catalog
	if cfg.LocatorCatalog != "" {
		if catalog, err = locator.LoadCatalogFile(cfg.LocatorCatalog); err != nil {
			return err
		}
		log.WithField("overrides", len(catalog.Names())).Info("locator catalog loaded")
	}

	fx, err := loadFixtures(cfg.FixtureDir)
	if err != nil {
		return err
	}

	journeys, err := scenario.Select(scenario.Smoke(fx), c.StringSlice("journey"), c.StringSlice("tag"))
	if err != nil {
		return err
	}

	runService, closeStore, err := OpenRunService(os.Getenv, log)
	if err != nil {
		return err
	}
	defer closeStore()

	session, baseURL, err := OpenSession(c.Context, cfg, string(layout), fx)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.WithError(err).Warn("failed to close browser session")
		}
	}()

	runner := scenario.NewRunner(session, runService, scenario.Config{
		BaseURL:        baseURL,
		Driver:         cfg.Driver,
		Browser:        browserLabel(cfg),
		Concurrency:    cfg.Concurrency,
		ArtifactDir:    cfg.ArtifactDir,
		ProbeTimeout:   cfg.ProbeTimeout,
		ElementTimeout: cfg.ElementTimeout,
		Catalog:        catalog,
		JourneyTimeout: c.Duration("journey-timeout"),
	}, log)

	report, err := runner.Run(c.Context, journeys)
	if err != nil {
		return err
	}
	PrintSummary(c.App.Writer, report)

	if c.Bool("serve") {
		deps, err := BuildServerDependencies(runService, config.LoadServerConfig(), cfg.ArtifactDir, log)
		if err != nil {
			return err
		}
		if err := RunServe(deps); err != nil {
			return err
		}
	}

	if report.Run.Status == models.RunStatusAborted {
		return cli.Exit("run aborted", 2)
	}
	if failed := len(report.Failed()); failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d journeys failed", failed, len(report.Results)), 1)
	}
	return nil
}

func applySuiteFlags(c *cli.Context, cfg *config.SuiteConfig) {
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("driver") {
		cfg.Driver = strings.ToLower(c.String("driver"))
	}
	if c.IsSet("browser") {
		cfg.Browser = strings.ToLower(c.String("browser"))
	}
	if c.IsSet("headless") {
		cfg.Headless = c.Bool("headless")
	}
	if c.IsSet("stealth") {
		cfg.Stealth = c.Bool("stealth")
	}
	if c.IsSet("concurrency") {
		cfg.Concurrency = c.Int("concurrency")
	}
	if c.IsSet("artifact-dir") {
		cfg.ArtifactDir = c.String("artifact-dir")
	}
	if c.IsSet("catalog") {
		cfg.LocatorCatalog = c.String("catalog")
	}
	if c.IsSet("fixtures") {
		cfg.FixtureDir = c.String("fixtures")
	}
	if c.IsSet("probe-timeout") {
		cfg.ProbeTimeout = c.Duration("probe-timeout")
	}
	if c.IsSet("element-timeout") {
		cfg.ElementTimeout = c.Duration("element-timeout")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
}

func loadFixtures(dir string) (fixtures.Set, error) {
	var set fixtures.Set
	var err error
	if dir == "" {
		set, err = fixtures.Defaults()
	} else {
		set, err = fixtures.LoadDir(dir)
	}
	if err != nil {
		return set, fmt.Errorf("failed to load fixtures: %w", err)
	}
	if err := set.Validate(); err != nil {
		return set, err
	}
	return set, nil
}

// browserLabel is what the run records as its browser
func browserLabel(cfg *config.SuiteConfig) string {
	switch cfg.Driver {
	case config.DriverRod:
		return "chrome"
	case config.DriverHTML:
		return ""
	}
	return cfg.Browser
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// PrintSummary writes one line per journey followed by the run totals
func PrintSummary(w io.Writer, report *scenario.Report) {
	if w == nil {
		w = os.Stdout
	}
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	for _, res := range report.Results {
		if res == nil {
			continue
		}
		elapsed := res.Duration.Round(time.Millisecond)
		if res.IsPassed() {
			fmt.Fprintf(w, "%s %s %s\n", pass.Sprint("PASS"), res.Name, dim.Sprintf("(%s)", elapsed))
		} else {
			fmt.Fprintf(w, "%s %s %s [%s] %s\n", fail.Sprint("FAIL"), res.Name, dim.Sprintf("(%s)", elapsed), res.FailureKind, res.Message)
			if res.Screenshot != "" {
				fmt.Fprintf(w, "     screenshot: %s\n", res.Screenshot)
			}
		}
		for _, d := range res.Diagnostics {
			fmt.Fprintf(w, "     %s\n", dim.Sprint(d))
		}
	}

	run := report.Run
	status := pass
	if !run.IsPassed() {
		status = fail
	}
	fmt.Fprintf(w, "\nrun %s %s: %d/%d journeys passed in %s\n",
		run.ID, status.Sprint(strings.ToUpper(string(run.Status))), run.Passed, run.Total, run.Duration().Round(time.Millisecond))
}
