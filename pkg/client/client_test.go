package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_GetBillingReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/billing/week/", r.URL.Path)
		assert.Equal(t, "2024-03-04", r.URL.Query().Get("appointmentDate"))
		_, _ = io.WriteString(w, `{"billing_data":[{"id":7,"patientUID":"P1","patientName":"Asha",
			"appointmentDate":"2024-03-05","table_data":"[{\"particulars\":\"Dolo\",\"qty\":\"2\",\"price\":10,\"total\":\"20\"}]"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	records, err := c.GetBillingReport(context.Background(), "week", "2024-03-04")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "7", records[0].ID.Raw)
	require.Len(t, records[0].TableData.Items, 1)
	assert.Equal(t, "Dolo", records[0].TableData.Items[0].Particulars)
	assert.Equal(t, "20", records[0].TableData.Items[0].Total.Raw)
}

func TestHTTPClient_GetProcedureReport_InvalidEmbedded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/procedurebilling/month/", r.URL.Path)
		_, _ = io.WriteString(w, `[{"patientUID":"P1","procedures":"not json","consumer":[{"item":"Gauze","qty":1,"total":5}]}]`)
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL).GetProcedureReport(context.Background(), "month", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Procedures.Invalid)
	assert.Error(t, records[0].Procedures.Err)
	require.Len(t, records[0].Consumer.Items, 1)
	assert.Equal(t, "Gauze", records[0].Consumer.Items[0].Item)
}

func TestHTTPClient_StatusError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "json error", body: `{"error":"Invalid credentials"}`, message: "Invalid credentials"},
		{name: "plain text", body: "user not found\n", message: "user not found"},
		{name: "json without message", body: `{}`, message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Login(context.Background(), api.LoginRequest{Username: "u"})
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
			assert.Equal(t, tt.message, statusErr.Message())
		})
	}
}

func TestHTTPClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, api.LoginRequest{Username: "meera", Password: "pw", Endpoint: "PharmacistLogin"}, req)

		_, _ = io.WriteString(w, `{"role":"Pharmacist","id":12,"name":"Meera","email":"m@clinic.test"}`)
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Login(context.Background(), api.LoginRequest{
		Username: "meera",
		Password: "pw",
		Endpoint: "PharmacistLogin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pharmacist", resp.Role)
	assert.Equal(t, "12", resp.ID.Raw)
}

func TestHTTPClient_DeleteBilling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/delete/billing/data/", r.URL.Path)
		var req api.BillingDeleteRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "42", req.RecordID)
		_, _ = io.WriteString(w, `{"message":"deleted"}`)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).DeleteBilling(context.Background(), "42"))
}

func TestHTTPClient_GetMedicinePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pharmacy/medicine/Dolo 650/price/", r.URL.Path)
		_, _ = io.WriteString(w, `{"price":"32.5"}`)
	}))
	defer srv.Close()

	price, err := NewClient(srv.URL).GetMedicinePrice(context.Background(), "Dolo 650")
	require.NoError(t, err)
	assert.Equal(t, "32.5", price.Raw)

	_, err = NewClient(srv.URL).GetMedicinePrice(context.Background(), " ")
	assert.Error(t, err)
}

func TestHTTPClient_GetFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filename") != "Asha_P1_2024-03-05_0.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xff, 0xd8})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	blob, err := c.GetFile(context.Background(), "Asha_P1_2024-03-05_0.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", blob.ContentType)
	assert.Equal(t, []byte{0xff, 0xd8}, blob.Data)

	_, err = c.GetFile(context.Background(), "Asha_P1_2024-03-05_1.jpg")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestHTTPClient_GetUpcomingVisits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"upcoming_visits":[{"patientUID":"P9","patientName":"Ravi","nextVisit":"2024-03-09"}]}`)
	}))
	defer srv.Close()

	visits, err := NewClient(srv.URL).GetUpcomingVisits(context.Background())
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "Ravi", visits[0].PatientName)
}

func TestHTTPClient_CreatePatient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Patients_data/", r.URL.Path)
		var req api.PatientRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Asha", req.PatientName)
		assert.Equal(t, "9876543210", req.MobileNumber)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"patientUID":"CH0042","patientName":"Asha","mobileNumber":"9876543210"}`)
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).CreatePatient(context.Background(), api.PatientRequest{
		PatientName:  "Asha",
		MobileNumber: "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "CH0042", resp.PatientUID)
}

func TestHTTPClient_Complaints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/complaints/", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":1,"complaints":"Acne"},{"id":2,"complaints":"Hair fall"}]`)
		case http.MethodPost:
			var req api.ComplaintRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":3,"complaints":"`+req.Complaints+`"}`)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	list, err := c.ListComplaints(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Hair fall", list[1].Complaints)

	added, err := c.AddComplaint(context.Background(), api.ComplaintRequest{Complaints: "Itching"})
	require.NoError(t, err)
	assert.Equal(t, "3", added.ID.Raw)
	assert.Equal(t, "Itching", added.Complaints)
}
