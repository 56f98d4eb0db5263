package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/client"
	"github.com/cosmo-clinic/billing-atlas/pkg/export"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/observability"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/aggregate"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/history"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/interval"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/notification"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/procedurebill"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/report"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/session"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	client   client.Client
	registry report.Registry
	session  session.Context
	renderer export.PDFRenderer
	metrics  *observability.Metrics
	now      func() time.Time
}

type Options struct {
	Client   client.Client
	Session  session.Context
	Renderer export.PDFRenderer
	Metrics  *observability.Metrics
	Now      func() time.Time
}

func NewHandler(opts Options) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{
		client:   opts.Client,
		registry: report.NewDefaultRegistry(),
		session:  opts.Session,
		renderer: opts.Renderer,
		metrics:  opts.Metrics,
		now:      opts.Now,
	}
}

func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	ref, err := h.date(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	resp := api.WeeksResponse{Month: ref.Format("2006-01"), Weeks: []string{}}
	for _, wk := range interval.WeeksInMonth(ref) {
		resp.Weeks = append(resp.Weeks, interval.Format(wk))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	sel, state, tables, ok := h.load(w, r)
	if !ok {
		return
	}

	resp := api.ReportResponse{
		Kind:     string(state.Kind),
		Interval: string(state.Interval),
		Date:     state.Date,
		Heading:  sel.Heading(),
		Status:   string(state.Status),
		Message:  state.Message,
		Tables:   make(map[string]api.Table, len(tables)),
	}
	for _, t := range tables {
		resp.Tables[t.Name] = adapters.MapTableDomainToApi(t)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// ExportCSV streams one table of the report. The table query parameter picks
// it by name and defaults to the first tab.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sel, state, tables, ok := h.load(w, r)
	if !ok {
		return
	}
	if state.Status == report.StatusError {
		writeError(w, r, http.StatusBadGateway, errors.New(state.Message))
		return
	}

	table := tables[0]
	if name := r.URL.Query().Get("table"); name != "" {
		found := false
		for _, t := range tables {
			if t.Name == name {
				table, found = t, true
				break
			}
		}
		if !found {
			writeError(w, r, http.StatusNotFound, fmt.Errorf("unknown table %q", name))
			return
		}
	}

	data, err := export.EncodeCSV(table)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	h.metrics.ObserveExport("csv")
	writeFile(w, r, export.Filename(table, sel.Heading()), export.CSVContentType, data)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*interval.Selection, report.State, []domain.Table, bool) {
	ctx := r.Context()
	kind := domain.ReportKind(chi.URLParam(r, "kind"))

	g, err := interval.ParseGranularity(chi.URLParam(r, "interval"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return nil, report.State{}, nil, false
	}
	ref, err := h.date(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return nil, report.State{}, nil, false
	}
	sel := interval.NewSelection(g, ref)
	if week := r.URL.Query().Get("week"); week != "" && g == domain.Week {
		n, err := strconv.Atoi(week)
		if err == nil {
			err = sel.SelectWeekIndex(n)
		}
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return nil, report.State{}, nil, false
		}
	}
	date, err := sel.CanonicalDate()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return nil, report.State{}, nil, false
	}

	fetcher := report.NewFetcher(h.client, h.registry, report.WithObserver(h.metrics))
	state, err := fetcher.Fetch(ctx, report.Request{Kind: kind, Interval: g, Date: date})
	switch {
	case errors.Is(err, domain.ErrUnknownReport):
		writeError(w, r, http.StatusNotFound, err)
		return nil, report.State{}, nil, false
	case err != nil:
		writeError(w, r, http.StatusBadRequest, err)
		return nil, report.State{}, nil, false
	}

	if kind == domain.SummaryReport {
		return sel, state, []domain.Table{aggregate.SummaryTable(state.Summaries)}, true
	}
	return sel, state, aggregate.BuildTables(kind, state.Records), true
}

// GetProcedureBillPDF renders the stored procedures of a patient as a bill.
func (h *Handler) GetProcedureBillPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "patientUID")
	q := r.URL.Query()

	ref, err := h.date(q.Get("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	comp := procedurebill.NewComposer(h.client)
	if err := comp.Load(ctx, interval.Format(ref)); err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}
	if err := comp.Select(uid); err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}
	if payment := q.Get("payment"); payment != "" {
		if err := comp.SetPaymentType(domain.PaymentType(payment)); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
	}

	doc, err := comp.Document(h.now())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, doc); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	h.metrics.ObserveExport("pdf")
	writeFile(w, r, export.ProcedureBillPDF, export.PDFContentType, buf.Bytes())
}

func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	n, err := notification.NewPanel(h.client, h.session).Load(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNotLoggedIn) {
			status = http.StatusUnauthorized
		}
		writeError(w, r, status, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapNotificationsDomainToApi(n))
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "patientUID")
	hist, err := history.NewViewer(h.client).Load(r.Context(), uid)
	if err != nil {
		status := http.StatusBadGateway
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			status = http.StatusNotFound
		}
		writeError(w, r, status, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapHistoryDomainToApi(hist))
}

func (h *Handler) date(s string) (time.Time, error) {
	if s == "" {
		return interval.ParseDate(interval.Format(h.now()))
	}
	return interval.ParseDate(s)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	zerolog.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("request failed")
	writeJSON(w, r, status, api.ErrorResponse{Error: err.Error()})
}

func writeFile(w http.ResponseWriter, r *http.Request, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("file", name).Msg("failed to write file")
	}
}
