package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
)

const DefaultTimeout = 10 * time.Second

// Client is the clinic REST API as used by the reporting pipeline and the
// supporting screens.
type Client interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)

	GetBillingReport(ctx context.Context, interval, date string) ([]api.BillingRecord, error)
	GetProcedureReport(ctx context.Context, interval, date string) ([]api.ProcedureBillRecord, error)
	GetSummaryReport(ctx context.Context, interval, date string) ([]api.SummaryRecord, error)

	UpdateBilling(ctx context.Context, req api.BillingUpdateRequest) error
	DeleteBilling(ctx context.Context, recordID string) error

	GetMedicinePrice(ctx context.Context, name string) (api.Flex, error)
	ListMedicines(ctx context.Context) ([]api.Medicine, error)

	GetProcedureBillDetails(ctx context.Context, date string) ([]api.BillPatient, error)
	PostProcedureBill(ctx context.Context, req api.ProcedureBillRequest) (*api.ProcedureBillResponse, error)

	GetMedicineStatus(ctx context.Context) (*api.MedicineStatus, error)
	GetUpcomingVisits(ctx context.Context) ([]api.UpcomingVisit, error)

	CreatePatient(ctx context.Context, req api.PatientRequest) (*api.PatientResponse, error)
	ListComplaints(ctx context.Context) ([]api.Complaint, error)
	AddComplaint(ctx context.Context, req api.ComplaintRequest) (*api.Complaint, error)

	GetPatientDetails(ctx context.Context, patientUID string) ([]api.SummaryRecord, error)
	GetFile(ctx context.Context, filename string) (*Blob, error)
	GetPDFFile(ctx context.Context, filename string) (*Blob, error)
}

// Blob is a binary file served by the clinic API.
type Blob struct {
	ContentType string
	Data        []byte
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("clinic api returned status %d", e.Code)
}

// Message extracts the server's explanation from the response body. JSON
// bodies are searched for error, message and detail; anything else is returned
// as plain text.
func (e *StatusError) Message() string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(e.Body), &body); err == nil {
		for _, s := range []string{body.Error, body.Message, body.Detail} {
			if s != "" {
				return s
			}
		}
		return ""
	}
	return strings.TrimSpace(e.Body)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*HTTPClient)

func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	out := &api.LoginResponse{}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("/login/", nil), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetBillingReport(ctx context.Context, interval, date string) ([]api.BillingRecord, error) {
	var out api.BillingEnvelope
	if err := c.doJSON(ctx, http.MethodGet, c.reportEndpoint("billing", interval, date), nil, &out); err != nil {
		return nil, err
	}
	return out.BillingData, nil
}

func (c *HTTPClient) GetProcedureReport(ctx context.Context, interval, date string) ([]api.ProcedureBillRecord, error) {
	var out []api.ProcedureBillRecord
	if err := c.doJSON(ctx, http.MethodGet, c.reportEndpoint("procedurebilling", interval, date), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetSummaryReport(ctx context.Context, interval, date string) ([]api.SummaryRecord, error) {
	var out []api.SummaryRecord
	if err := c.doJSON(ctx, http.MethodGet, c.reportEndpoint("summary", interval, date), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateBilling(ctx context.Context, req api.BillingUpdateRequest) error {
	return c.doJSON(ctx, http.MethodPut, c.endpoint("/update/billing/data/", nil), req, nil)
}

func (c *HTTPClient) DeleteBilling(ctx context.Context, recordID string) error {
	req := api.BillingDeleteRequest{RecordID: recordID}
	return c.doJSON(ctx, http.MethodDelete, c.endpoint("/delete/billing/data/", nil), req, nil)
}

func (c *HTTPClient) GetMedicinePrice(ctx context.Context, name string) (api.Flex, error) {
	if strings.TrimSpace(name) == "" {
		return api.Flex{}, fmt.Errorf("medicine name is required")
	}
	var out struct {
		Price api.Flex `json:"price"`
	}
	path := fmt.Sprintf("/pharmacy/medicine/%s/price/", url.PathEscape(name))
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(path, nil), nil, &out); err != nil {
		return api.Flex{}, err
	}
	return out.Price, nil
}

func (c *HTTPClient) ListMedicines(ctx context.Context) ([]api.Medicine, error) {
	var out []api.Medicine
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/pharmacy/data/", nil), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetProcedureBillDetails(ctx context.Context, date string) ([]api.BillPatient, error) {
	var out api.ProcedureBillDetails
	query := url.Values{"appointmentDate": []string{date}}
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/get_procedures_bill/", query), nil, &out); err != nil {
		return nil, err
	}
	return out.DetailedRecords, nil
}

func (c *HTTPClient) PostProcedureBill(ctx context.Context, req api.ProcedureBillRequest) (*api.ProcedureBillResponse, error) {
	out := &api.ProcedureBillResponse{}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("/Post_Procedure_Bill/", nil), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetMedicineStatus(ctx context.Context) (*api.MedicineStatus, error) {
	out := &api.MedicineStatus{}
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/check_medicine_status/", nil), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetUpcomingVisits(ctx context.Context) ([]api.UpcomingVisit, error) {
	var out api.UpcomingVisits
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/check_upcoming_visits/", nil), nil, &out); err != nil {
		return nil, err
	}
	return out.UpcomingVisits, nil
}

func (c *HTTPClient) CreatePatient(ctx context.Context, req api.PatientRequest) (*api.PatientResponse, error) {
	out := &api.PatientResponse{}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("/Patients_data/", nil), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListComplaints(ctx context.Context) ([]api.Complaint, error) {
	var out []api.Complaint
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/complaints/", nil), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AddComplaint(ctx context.Context, req api.ComplaintRequest) (*api.Complaint, error) {
	out := &api.Complaint{}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("/complaints/", nil), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetPatientDetails(ctx context.Context, patientUID string) ([]api.SummaryRecord, error) {
	var out []api.SummaryRecord
	req := api.PatientDetailsRequest{PatientUID: patientUID}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("/get_patient_details/", nil), req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetFile(ctx context.Context, filename string) (*Blob, error) {
	return c.getBlob(ctx, "/get_file/", filename)
}

func (c *HTTPClient) GetPDFFile(ctx context.Context, filename string) (*Blob, error) {
	return c.getBlob(ctx, "/get_pdf_file/", filename)
}

func (c *HTTPClient) reportEndpoint(kind, interval, date string) string {
	path := fmt.Sprintf("/%s/%s/", kind, url.PathEscape(interval))
	return c.endpoint(path, url.Values{"appointmentDate": []string{date}})
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

func (c *HTTPClient) getBlob(ctx context.Context, path, filename string) (*Blob, error) {
	endpoint := c.endpoint(path, url.Values{"filename": []string{filename}})
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return &Blob{ContentType: resp.Header.Get("Content-Type"), Data: data}, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, body, out interface{}) error {
	resp, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, endpoint, err)
	}
	return nil
}

// do sends the request and returns the response only for 2xx statuses; the
// caller closes the body.
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}
	return resp, nil
}
