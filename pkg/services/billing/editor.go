package billing

import (
	"context"
	"fmt"
	"sync"

	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/aggregate"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/report"
	"github.com/cosmo-clinic/billing-atlas/pkg/store/pricing"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	MessageUpdated      = "Data updated successfully"
	MessageUpdateFailed = "Error updating data."
	MessageDeleted      = "Data deleted successfully"
	MessageDeleteFailed = "Error deleting data."
)

type Mode string

const (
	ModeViewing Mode = "viewing"
	ModeEditing Mode = "editing"
)

// Field names an editable line item field, using the wire names.
type Field string

const (
	FieldParticulars Field = "particulars"
	FieldBillNumber  Field = "billNumber"
	FieldQuantity    Field = "qty"
	FieldPrice       Field = "price"
	FieldCGSTRate    Field = "CGST_percentage"
	FieldCGST        Field = "CGST_value"
	FieldSGSTRate    Field = "SGST_percentage"
	FieldSGST        Field = "SGST_value"
	FieldTotal       Field = "total"
)

func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldParticulars, FieldBillNumber, FieldQuantity, FieldPrice,
		FieldCGSTRate, FieldCGST, FieldSGSTRate, FieldSGST, FieldTotal:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownField, s)
	}
}

// RecordKey addresses one billing record. Weekly and monthly reports carry
// one record per patient and appointment date.
type RecordKey struct {
	PatientUID      string
	AppointmentDate string
}

func KeyOf(r domain.ReportRecord) RecordKey {
	return RecordKey{PatientUID: r.PatientUID, AppointmentDate: r.AppointmentDate}
}

func (k RecordKey) String() string {
	if k.AppointmentDate == "" {
		return k.PatientUID
	}
	return k.PatientUID + "@" + k.AppointmentDate
}

// Backend persists billing edits.
type Backend interface {
	UpdateBilling(ctx context.Context, req api.BillingUpdateRequest) error
	DeleteBilling(ctx context.Context, recordID string) error
}

// Editor is the editable pharmacy billing screen. Edits apply to a snapshot
// taken by Begin and reach the server only through Save.
type Editor struct {
	backend Backend
	prices  pricing.Store
	fetcher *report.Fetcher

	mu       sync.Mutex
	request  report.Request
	mode     Mode
	records  []domain.ReportRecord
	editable map[RecordKey][]domain.LineItem
	message  string
}

func NewEditor(backend Backend, prices pricing.Store, fetcher *report.Fetcher) *Editor {
	return &Editor{
		backend:  backend,
		prices:   prices,
		fetcher:  fetcher,
		mode:     ModeViewing,
		editable: map[RecordKey][]domain.LineItem{},
	}
}

// Load fetches the billing report for interval and date.
func (e *Editor) Load(ctx context.Context, interval domain.Granularity, date string) (report.State, error) {
	req := report.Request{Kind: domain.BillingReport, Interval: interval, Date: date}
	state, err := e.fetcher.Fetch(ctx, req)
	if err != nil {
		return state, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.request = req
	e.apply(state)
	return state, nil
}

func (e *Editor) refresh(ctx context.Context) {
	e.mu.Lock()
	req := e.request
	e.mu.Unlock()

	state, err := e.fetcher.Fetch(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to refresh billing report")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(state)
}

// apply replaces the fetched records. Must hold e.mu.
func (e *Editor) apply(state report.State) {
	e.records = state.Records
	if e.mode == ModeViewing {
		e.editable = snapshot(e.records)
	}
}

func snapshot(records []domain.ReportRecord) map[RecordKey][]domain.LineItem {
	out := make(map[RecordKey][]domain.LineItem, len(records))
	for _, r := range records {
		items := r.Items(domain.SectionPharmacy).Items
		out[KeyOf(r)] = append([]domain.LineItem(nil), items...)
	}
	return out
}

// Begin enters edit mode with a fresh copy of the fetched items.
func (e *Editor) Begin() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = ModeEditing
	e.editable = snapshot(e.records)
}

// Cancel leaves edit mode and drops unsaved edits.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = ModeViewing
	e.editable = snapshot(e.records)
}

func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Editor) Message() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}

// Items returns a copy of the record's current line items.
func (e *Editor) Items(key RecordKey) []domain.LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.LineItem(nil), e.editable[key]...)
}

// Record returns a fetched record of a patient. An empty appointmentDate
// matches any date as long as the patient has a single record.
func (e *Editor) Record(patientUID, appointmentDate string) (domain.ReportRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var found []domain.ReportRecord
	for _, r := range e.records {
		if r.PatientUID != patientUID {
			continue
		}
		if appointmentDate != "" && r.AppointmentDate != appointmentDate {
			continue
		}
		found = append(found, r)
	}
	switch len(found) {
	case 0:
		return domain.ReportRecord{}, fmt.Errorf("%w: patient %s", domain.ErrRecordNotFound, patientUID)
	case 1:
		return found[0], nil
	default:
		return domain.ReportRecord{}, fmt.Errorf("%w: patient %s has %d records", domain.ErrAmbiguousRecord, patientUID, len(found))
	}
}

// Edit changes one field of a line item. A new description triggers exactly
// one price lookup and reprices the row; a new quantity recomputes the total
// from the current price. Other fields are stored as given.
func (e *Editor) Edit(ctx context.Context, key RecordKey, index int, field Field, value string) (domain.LineItem, error) {
	if _, err := ParseField(string(field)); err != nil {
		return domain.LineItem{}, err
	}
	if _, err := e.item(key, index); err != nil {
		return domain.LineItem{}, err
	}

	var price pricing.Price
	if field == FieldParticulars {
		price = e.prices.GetMedicinePrice(ctx, value)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	it, err := e.itemLocked(key, index)
	if err != nil {
		return domain.LineItem{}, err
	}

	switch field {
	case FieldParticulars:
		it.Description = value
		it.Price = price.Amount
		it.Total = domain.AmountOf(price.Amount.Decimal().Mul(it.Quantity.Decimal()))
	case FieldQuantity:
		it.Quantity = domain.ParseAmount(value)
		it.Total = domain.AmountOf(it.Quantity.Decimal().Mul(it.Price.Decimal()))
	case FieldBillNumber:
		it.BillNumber = value
	case FieldPrice:
		it.Price = domain.ParseAmount(value)
	case FieldCGSTRate:
		it.CGSTRate = domain.ParseAmount(value)
	case FieldCGST:
		it.CGST = domain.ParseAmount(value)
	case FieldSGSTRate:
		it.SGSTRate = domain.ParseAmount(value)
	case FieldSGST:
		it.SGST = domain.ParseAmount(value)
	case FieldTotal:
		it.Total = domain.ParseAmount(value)
	}

	items := append([]domain.LineItem(nil), e.editable[key]...)
	items[index] = it
	e.editable[key] = items
	return it, nil
}

func (e *Editor) item(key RecordKey, index int) (domain.LineItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.itemLocked(key, index)
}

func (e *Editor) itemLocked(key RecordKey, index int) (domain.LineItem, error) {
	if e.mode != ModeEditing {
		return domain.LineItem{}, domain.ErrNotEditing
	}
	items, ok := e.editable[key]
	if !ok || index < 0 || index >= len(items) {
		return domain.LineItem{}, fmt.Errorf("%w: record %s item %d", domain.ErrItemNotFound, key, index)
	}
	return items[index], nil
}

// Save sends the record's edited items. On success the report is fetched
// again and the editor returns to viewing; on failure the edits are kept.
func (e *Editor) Save(ctx context.Context, key RecordKey) error {
	e.mu.Lock()
	if e.mode != ModeEditing {
		e.mu.Unlock()
		return domain.ErrNotEditing
	}
	items, ok := e.editable[key]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: record %s", domain.ErrRecordNotFound, key)
	}
	tableData := make([]api.BillingItem, 0, len(items))
	for _, it := range items {
		tableData = append(tableData, adapters.MapLineItemToBillingItem(it))
	}
	e.mu.Unlock()

	err := e.backend.UpdateBilling(ctx, api.BillingUpdateRequest{
		PatientUID:      key.PatientUID,
		AppointmentDate: key.AppointmentDate,
		TableData:       tableData,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("patient_uid", key.PatientUID).
			Str("appointment_date", key.AppointmentDate).
			Msg("failed to update billing data")
		e.setMessage(MessageUpdateFailed)
		return fmt.Errorf("update billing for %s: %w", key, err)
	}

	e.mu.Lock()
	e.mode = ModeViewing
	e.message = MessageUpdated
	e.mu.Unlock()

	e.refresh(ctx)
	return nil
}

// Delete removes a billing record and fetches the report again.
func (e *Editor) Delete(ctx context.Context, recordID string) error {
	if err := e.backend.DeleteBilling(ctx, recordID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("record_id", recordID).Msg("failed to delete billing data")
		e.setMessage(MessageDeleteFailed)
		return fmt.Errorf("delete billing record %s: %w", recordID, err)
	}
	e.setMessage(MessageDeleted)
	e.refresh(ctx)
	return nil
}

func (e *Editor) setMessage(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.message = msg
}

// Records returns the fetched records with the current items in place, so
// that tables reflect unsaved edits.
func (e *Editor) Records() []domain.ReportRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.ReportRecord, 0, len(e.records))
	for _, r := range e.records {
		section := r.Items(domain.SectionPharmacy)
		if items, ok := e.editable[KeyOf(r)]; ok {
			section.Items = items
		}
		r.Sections = map[domain.Section]domain.LineItems{domain.SectionPharmacy: section}
		out = append(out, r)
	}
	return out
}

func (e *Editor) GrandTotal() decimal.Decimal {
	return aggregate.GrandTotal(e.Records(), domain.SectionPharmacy)
}

func (e *Editor) Table() domain.Table {
	return aggregate.BuildTable(e.Records(), aggregate.BillingView)
}
