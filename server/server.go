// Package server serves the dashboard over HTTP.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"repodash/analytics"
	"repodash/dashboard"
	"repodash/logger"
	"repodash/models"
	"repodash/render"
)

// NoDataMessage is drawn in place of a chart whose table is empty.
const NoDataMessage = "No data for the current selection."

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// DatasetLoader provides the dataset for a location.
type DatasetLoader interface {
	Load(ctx context.Context, location string) (*models.Dataset, error)
}

// Server holds the HTTP handlers of the dashboard.
type Server struct {
	loader   DatasetLoader
	location string
	opts     render.Options
	mux      *http.ServeMux
}

// New creates a Server that reads the dataset at location through loader.
func New(loader DatasetLoader, location string, opts render.Options) *Server {
	s := &Server{
		loader:   loader,
		location: location,
		opts:     opts,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /charts/{file}", s.handleChart)
	s.mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the routes wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

// Selection returns the languages a request selects. Without the filtered
// parameter every language of ds is selected; with it, exactly the
// repeated language values are, possibly none.
func Selection(r *http.Request, ds *models.Dataset) []string {
	q := r.URL.Query()
	if !q.Has("filtered") {
		return analytics.DistinctLanguages(ds)
	}
	selected := q["language"]
	if selected == nil {
		return []string{}
	}
	return selected
}

func selectionQuery(selected []string) string {
	return url.Values{"filtered": {"1"}, "language": selected}.Encode()
}

type option struct {
	Name    string
	Checked bool
}

type panelView struct {
	ID       string
	Subtitle string
	Src      string
}

type page struct {
	*dashboard.Dashboard
	Options []option
	Panels  []panelView
	Width   int
	Height  int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ds, err := s.loader.Load(r.Context(), s.location)
	if err != nil {
		s.fail(w, "Failed to load dataset", err)
		return
	}
	selected := Selection(r, ds)
	d, err := dashboard.Build(ds, selected)
	if err != nil {
		s.fail(w, "Failed to build dashboard", err)
		return
	}

	checked := make(map[string]bool, len(selected))
	for _, lang := range selected {
		checked[lang] = true
	}
	p := page{Dashboard: d, Width: s.opts.Width, Height: s.opts.Height}
	for _, lang := range d.Languages {
		p.Options = append(p.Options, option{Name: lang, Checked: checked[lang]})
	}
	query := selectionQuery(selected)
	for _, panel := range d.Panels {
		p.Panels = append(p.Panels, panelView{
			ID:       panel.Spec.ID,
			Subtitle: panel.Spec.Subtitle,
			Src:      "/charts/" + panel.Spec.ID + ".png?" + query,
		})
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, p); err != nil {
		s.fail(w, "Failed to render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	c, ok := dashboard.Lookup(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ds, err := s.loader.Load(r.Context(), s.location)
	if err != nil {
		s.fail(w, "Failed to load dataset", err)
		return
	}
	d, err := dashboard.BuildCharts(ds, Selection(r, ds), []dashboard.Chart{c})
	if err != nil {
		s.fail(w, "Failed to build chart", err)
		return
	}
	panel, ok := d.Panel(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	err = render.PNG(&buf, panel, s.opts)
	if errors.Is(err, render.ErrNoData) {
		buf.Reset()
		err = render.Placeholder(&buf, panel.Spec, NoDataMessage, s.opts)
	}
	if err != nil {
		s.fail(w, "Failed to render chart", err, zap.String("chart", id))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ds, err := s.loader.Load(r.Context(), s.location)
	if err != nil {
		s.fail(w, "Failed to load dataset", err)
		return
	}
	d, err := dashboard.Build(ds, Selection(r, ds))
	if err != nil {
		s.fail(w, "Failed to build dashboard", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d); err != nil {
		logger.Warn("Failed to write dashboard", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	logger.Error(msg, append(fields, zap.Error(err))...)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("Request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
