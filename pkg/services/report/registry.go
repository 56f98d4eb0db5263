package report

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Source is the part of the clinic API that serves reports.
type Source interface {
	GetBillingReport(ctx context.Context, interval, date string) ([]api.BillingRecord, error)
	GetProcedureReport(ctx context.Context, interval, date string) ([]api.ProcedureBillRecord, error)
	GetSummaryReport(ctx context.Context, interval, date string) ([]api.SummaryRecord, error)
}

// Result is the decoded body of one report request.
type Result struct {
	Records   []domain.ReportRecord
	Summaries []domain.SummaryEntry
}

func (r Result) Len() int {
	return len(r.Records) + len(r.Summaries)
}

// LoadFunc performs the request for one endpoint kind and unwraps its
// response shape.
type LoadFunc func(ctx context.Context, src Source, interval domain.Granularity, date string) (Result, error)

// Endpoint describes a report family on the clinic API.
type Endpoint struct {
	Kind domain.ReportKind
	// Path is informational; the Source knows the URL.
	Path string
	// Envelope names the field wrapping the records, empty for bare arrays.
	Envelope  string
	Intervals []domain.Granularity
	Load      LoadFunc
}

func (e Endpoint) Supports(g domain.Granularity) bool {
	return slices.Contains(e.Intervals, g)
}

// Registry manages the report endpoints known to the fetcher
type Registry interface {
	// Register adds a new endpoint kind
	Register(endpoint Endpoint) error
	// Lookup returns the endpoint for kind
	Lookup(kind domain.ReportKind) (Endpoint, error)
	// ListKinds returns the registered kinds in name order
	ListKinds() []domain.ReportKind
}

type registry struct {
	mu        sync.RWMutex
	endpoints map[domain.ReportKind]Endpoint
}

func NewRegistry() Registry {
	return &registry{
		endpoints: make(map[domain.ReportKind]Endpoint),
	}
}

// NewDefaultRegistry registers the billing, procedure billing and summary
// reports.
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	for _, e := range defaultEndpoints() {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *registry) Register(endpoint Endpoint) error {
	if endpoint.Kind == "" {
		return fmt.Errorf("report kind cannot be empty")
	}
	if endpoint.Load == nil {
		return fmt.Errorf("load func cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.endpoints[endpoint.Kind]; exists {
		return fmt.Errorf("report %q is already registered", endpoint.Kind)
	}

	r.endpoints[endpoint.Kind] = endpoint
	return nil
}

func (r *registry) Lookup(kind domain.ReportKind) (Endpoint, error) {
	r.mu.RLock()
	endpoint, exists := r.endpoints[kind]
	r.mu.RUnlock()

	if !exists {
		return Endpoint{}, fmt.Errorf("%w: %q", domain.ErrUnknownReport, kind)
	}
	return endpoint, nil
}

func (r *registry) ListKinds() []domain.ReportKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.ReportKind, 0, len(r.endpoints))
	for kind := range r.endpoints {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func defaultEndpoints() []Endpoint {
	all := []domain.Granularity{domain.Day, domain.Week, domain.Month}
	return []Endpoint{
		{
			Kind:      domain.BillingReport,
			Path:      "/billing/{interval}/",
			Envelope:  "billing_data",
			Intervals: all,
			Load:      loadBilling,
		},
		{
			Kind:      domain.ProcedureReport,
			Path:      "/procedurebilling/{interval}/",
			Intervals: all,
			Load:      loadProcedures,
		},
		{
			Kind:      domain.SummaryReport,
			Path:      "/summary/{interval}/",
			Intervals: []domain.Granularity{domain.Day, domain.Month},
			Load:      loadSummaries,
		},
	}
}

func loadBilling(ctx context.Context, src Source, g domain.Granularity, date string) (Result, error) {
	rows, err := src.GetBillingReport(ctx, string(g), date)
	if err != nil {
		return Result{}, err
	}
	records := make([]domain.ReportRecord, 0, len(rows))
	for _, row := range rows {
		logInvalid(ctx, row.PatientUID, "table_data", row.TableData.Err)
		records = append(records, adapters.MapBillingRecordToDomain(row))
	}
	return Result{Records: records}, nil
}

func loadProcedures(ctx context.Context, src Source, g domain.Granularity, date string) (Result, error) {
	rows, err := src.GetProcedureReport(ctx, string(g), date)
	if err != nil {
		return Result{}, err
	}
	records := make([]domain.ReportRecord, 0, len(rows))
	for _, row := range rows {
		logInvalid(ctx, row.PatientUID, "procedures", row.Procedures.Err)
		logInvalid(ctx, row.PatientUID, "consumer", row.Consumer.Err)
		records = append(records, adapters.MapProcedureBillRecordToDomain(row))
	}
	return Result{Records: records}, nil
}

func loadSummaries(ctx context.Context, src Source, g domain.Granularity, date string) (Result, error) {
	rows, err := src.GetSummaryReport(ctx, string(g), date)
	if err != nil {
		return Result{}, err
	}
	entries := make([]domain.SummaryEntry, 0, len(rows))
	for _, row := range rows {
		logInvalid(ctx, row.PatientUID, "complaints", row.Complaints.Err)
		entries = append(entries, adapters.MapSummaryRecordToDomain(row))
	}
	return Result{Summaries: entries}, nil
}

func logInvalid(ctx context.Context, patientUID, field string, err error) {
	if err == nil {
		return
	}
	zerolog.Ctx(ctx).Warn().
		Err(err).
		Str("patient_uid", patientUID).
		Str("field", field).
		Msg("undecodable nested collection")
}
