package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adyen/ecommerce-e2e/internal/models"
	"github.com/adyen/ecommerce-e2e/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// ReportHandler renders the HTML overview of recent runs
type ReportHandler struct {
	template   *template.Template
	runService services.RunService
	limit      int
	log        logrus.FieldLogger
}

// ReportRun is one run with its results, as rendered by the report
type ReportRun struct {
	Run       *models.Run
	Scenarios []*models.ScenarioResult
}

// NewReportHandler parses the report template
func NewReportHandler(runService services.RunService, limit int, log logrus.FieldLogger) (*ReportHandler, error) {
	funcMap := template.FuncMap{
		"duration": func(d time.Duration) string {
			return d.Round(time.Millisecond).String()
		},
		"artifact": func(p string) string {
			return "/artifacts/" + path.Base(p)
		},
		"stamp": func(t time.Time) string {
			return t.UTC().Format("2006-01-02 15:04:05 UTC")
		},
	}

	tmpl, err := template.New("report.html").Funcs(funcMap).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &ReportHandler{
		template:   tmpl,
		runService: runService,
		limit:      limit,
		log:        log,
	}, nil
}

// ServeHTTP handles the GET / request
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	runs, err := h.runService.ListRuns(h.limit)
	if err != nil {
		h.log.WithError(err).Error("failed to list runs")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := make([]ReportRun, 0, len(runs))
	for _, run := range runs {
		scenarios, err := h.runService.ListScenarios(run.ID)
		if err != nil {
			h.log.WithField("run", run.ID).WithError(err).Error("failed to list scenarios")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		data = append(data, ReportRun{Run: run, Scenarios: scenarios})
	}

	if err := h.template.Execute(w, data); err != nil {
		h.log.WithError(err).Error("failed to render report")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
