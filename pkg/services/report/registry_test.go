package report

import (
	"context"
	"testing"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t,
		[]domain.ReportKind{domain.BillingReport, domain.ProcedureReport, domain.SummaryReport},
		r.ListKinds())

	billing, err := r.Lookup(domain.BillingReport)
	require.NoError(t, err)
	assert.Equal(t, "billing_data", billing.Envelope)
	assert.True(t, billing.Supports(domain.Week))

	summary, err := r.Lookup(domain.SummaryReport)
	require.NoError(t, err)
	assert.False(t, summary.Supports(domain.Week))
	assert.Empty(t, summary.Envelope)

	noop := func(context.Context, Source, domain.Granularity, string) (Result, error) { return Result{}, nil }
	assert.Error(t, r.Register(Endpoint{Kind: domain.BillingReport, Load: noop}))
	assert.Error(t, r.Register(Endpoint{Load: noop}))
	assert.Error(t, r.Register(Endpoint{Kind: "stock"}))
	require.NoError(t, r.Register(Endpoint{Kind: "stock", Load: noop}))
	assert.Len(t, r.ListKinds(), 4)
}
