package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/client"
	handlers "github.com/cosmo-clinic/billing-atlas/pkg/handlers/report"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/observability"
	"github.com/cosmo-clinic/billing-atlas/pkg/server/middleware"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebAPI_Routes(t *testing.T) {
	clinic := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/billing/day/":
			_, _ = io.WriteString(w, `{"billing_data":[{"id":1,"patientUID":"P1","patientName":"Asha","appointmentDate":"2024-03-04",
				"table_data":[{"particulars":"Dolo","billNumber":"B-1","qty":2,"price":"10","total":"20"}]}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer clinic.Close()

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	h := handlers.NewHandler(handlers.Options{
		Client:  client.NewClient(clinic.URL),
		Session: session.Static{Session: domain.Session{Role: domain.RolePharmacist, LoggedInAs: domain.PharmacistLogin}},
		Metrics: metrics,
		Now:     func() time.Time { return time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local) },
	})
	web := NewWebAPI(zerolog.New(zerolog.NewTestWriter(t)), Config{
		Addr:         ":0",
		Dependencies: Dependencies{Handler: h, Metrics: metrics},
	})
	srv := httptest.NewServer(web.router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/reports/billing/day")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	var report reportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "data", report.Status)
	billing := report.Tables["billing"]
	require.Len(t, billing.Columns, 10)
	assert.Equal(t, "20.00", *billing.GrandTotal)

	csvResp, err := http.Get(srv.URL + "/api/v1/reports/billing/day/export.csv")
	require.NoError(t, err)
	defer csvResp.Body.Close()
	body, err := io.ReadAll(csvResp.Body)
	require.NoError(t, err)
	assert.Equal(t, `attachment; filename="Daily Report.csv"`, csvResp.Header.Get("Content-Disposition"))
	assert.True(t, strings.HasSuffix(string(body), ",,,,,,,Grand Total,20.00\n"))

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	scraped, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(scraped), `atlas_report_fetch_total{kind="billing",status="data"} 2`)
	assert.Contains(t, string(scraped), `atlas_export_total{format="csv"} 1`)

	notFound, err := http.Get(srv.URL + "/api/v1/unknown")
	require.NoError(t, err)
	defer notFound.Body.Close()
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
}

type reportResponse struct {
	Status string               `json:"status"`
	Tables map[string]api.Table `json:"tables"`
}
