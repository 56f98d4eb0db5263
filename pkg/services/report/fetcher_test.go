package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) GetBillingReport(ctx context.Context, interval, date string) ([]api.BillingRecord, error) {
	args := m.Called(ctx, interval, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.BillingRecord), args.Error(1)
}

func (m *mockSource) GetProcedureReport(ctx context.Context, interval, date string) ([]api.ProcedureBillRecord, error) {
	args := m.Called(ctx, interval, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.ProcedureBillRecord), args.Error(1)
}

func (m *mockSource) GetSummaryReport(ctx context.Context, interval, date string) ([]api.SummaryRecord, error) {
	args := m.Called(ctx, interval, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.SummaryRecord), args.Error(1)
}

type recordingObserver struct {
	mu       sync.Mutex
	statuses []string
}

func (o *recordingObserver) ObserveFetch(_ string, status string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, status)
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func procedureRecord(uid string, totals ...string) api.ProcedureBillRecord {
	items := make([]api.ProcedureItem, 0, len(totals))
	for _, total := range totals {
		items = append(items, api.ProcedureItem{Procedure: "Peel", Total: api.FlexString(total)})
	}
	return api.ProcedureBillRecord{PatientUID: uid, Procedures: api.EmbeddedOf(items...)}
}

func TestFetcher_Fetch(t *testing.T) {
	ctx := testContext(t)

	t.Run("data", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetProcedureReport", mock.Anything, "day", "2024-03-01").
			Return([]api.ProcedureBillRecord{procedureRecord("A", "500.00", "300.00"), procedureRecord("B", "200.00")}, nil)

		observer := &recordingObserver{}
		f := NewFetcher(src, NewDefaultRegistry(), WithObserver(observer))
		state, err := f.Fetch(ctx, Request{Kind: domain.ProcedureReport, Interval: domain.Day, Date: "2024-03-01"})
		require.NoError(t, err)

		assert.Equal(t, StatusData, state.Status)
		assert.Empty(t, state.Message)
		require.Len(t, state.Records, 2)
		assert.Len(t, state.Records[0].Items(domain.SectionProcedure).Items, 2)
		assert.Equal(t, []string{"data"}, observer.statuses)
		src.AssertExpectations(t)
	})

	t.Run("empty", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetBillingReport", mock.Anything, "month", "2024-03-01").Return([]api.BillingRecord{}, nil)

		state, err := NewFetcher(src, NewDefaultRegistry()).
			Fetch(ctx, Request{Kind: domain.BillingReport, Interval: domain.Month, Date: "2024-03-01"})
		require.NoError(t, err)
		assert.Equal(t, StatusEmpty, state.Status)
	})

	t.Run("network error clears records", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetProcedureReport", mock.Anything, "day", "2024-03-01").
			Return([]api.ProcedureBillRecord{procedureRecord("A", "10")}, nil).Once()
		src.On("GetProcedureReport", mock.Anything, "day", "2024-03-02").
			Return(nil, errors.New("connection refused")).Once()

		f := NewFetcher(src, NewDefaultRegistry())
		state, err := f.Fetch(ctx, Request{Kind: domain.ProcedureReport, Interval: domain.Day, Date: "2024-03-01"})
		require.NoError(t, err)
		require.Equal(t, StatusData, state.Status)

		state, err = f.Fetch(ctx, Request{Kind: domain.ProcedureReport, Interval: domain.Day, Date: "2024-03-02"})
		require.NoError(t, err)
		assert.Equal(t, StatusError, state.Status)
		assert.Equal(t, "Error fetching data.", state.Message)
		assert.Empty(t, state.Records)
		assert.Equal(t, state, f.State())
	})

	t.Run("summary rejects week", func(t *testing.T) {
		src := new(mockSource)
		_, err := NewFetcher(src, NewDefaultRegistry()).
			Fetch(ctx, Request{Kind: domain.SummaryReport, Interval: domain.Week, Date: "2024-03-04"})
		assert.ErrorIs(t, err, domain.ErrInvalidInterval)
		src.AssertNotCalled(t, "GetSummaryReport", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := NewFetcher(new(mockSource), NewDefaultRegistry()).
			Fetch(ctx, Request{Kind: "inventory", Interval: domain.Day, Date: "2024-03-04"})
		assert.ErrorIs(t, err, domain.ErrUnknownReport)
	})
}

func TestFetcher_InvalidEmbeddedCollection(t *testing.T) {
	src := new(mockSource)
	bad := api.BillingRecord{PatientUID: "A", TableData: api.Embedded[api.BillingItem]{Invalid: true, Err: errors.New("bad json")}}
	src.On("GetBillingReport", mock.Anything, "day", "2024-03-01").Return([]api.BillingRecord{bad}, nil)

	state, err := NewFetcher(src, NewDefaultRegistry()).
		Fetch(testContext(t), Request{Kind: domain.BillingReport, Interval: domain.Day, Date: "2024-03-01"})
	require.NoError(t, err)
	require.Equal(t, StatusData, state.Status)
	assert.True(t, state.Records[0].Items(domain.SectionPharmacy).Invalid)
}

// blockingSource holds each procedure report request until released.
type blockingSource struct {
	mockSource
	release map[string]chan struct{}
	started chan string
}

func (b *blockingSource) GetProcedureReport(ctx context.Context, interval, date string) ([]api.ProcedureBillRecord, error) {
	b.started <- date
	<-b.release[date]
	return []api.ProcedureBillRecord{procedureRecord(date, "1")}, nil
}

func TestFetcher_StaleResponseDropped(t *testing.T) {
	ctx := testContext(t)
	src := &blockingSource{
		release: map[string]chan struct{}{
			"2024-03-01": make(chan struct{}),
			"2024-03-02": make(chan struct{}),
		},
		started: make(chan string, 2),
	}
	observer := &recordingObserver{}
	f := NewFetcher(src, NewDefaultRegistry(), WithObserver(observer))

	older := make(chan State, 1)
	go func() {
		state, _ := f.Fetch(ctx, Request{Kind: domain.ProcedureReport, Interval: domain.Day, Date: "2024-03-01"})
		older <- state
	}()
	require.Equal(t, "2024-03-01", <-src.started)

	newer := make(chan State, 1)
	go func() {
		state, _ := f.Fetch(ctx, Request{Kind: domain.ProcedureReport, Interval: domain.Day, Date: "2024-03-02"})
		newer <- state
	}()
	require.Equal(t, "2024-03-02", <-src.started)

	close(src.release["2024-03-02"])
	latest := <-newer
	assert.Equal(t, "2024-03-02", latest.Date)
	assert.Equal(t, uint64(2), latest.Generation)

	close(src.release["2024-03-01"])
	stale := <-older
	assert.Equal(t, "2024-03-02", stale.Date)

	final := f.State()
	assert.Equal(t, "2024-03-02", final.Date)
	require.Len(t, final.Records, 1)
	assert.Equal(t, "2024-03-02", final.Records[0].PatientUID)
	assert.Len(t, observer.statuses, 2)
}
