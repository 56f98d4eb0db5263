package procedurebill

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/export"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	MessageNoPatient  = "No patient selected"
	MessageSaveFailed = "Error generating procedure bill"

	DefaultProcedureSection  = "Procedure"
	DefaultConsumableSection = "Consumer"
)

var (
	ProcedureHead  = []string{"Procedure", "Procedure Date", "Price", "GST Rate (%)", "GST", "Total"}
	ConsumableHead = []string{"Item", "Qty", "Price", "Total"}
)

type ConsumableField string

const (
	ConsumableItem     ConsumableField = "item"
	ConsumableQuantity ConsumableField = "qty"
	ConsumablePrice    ConsumableField = "price"
)

// Backend is the procedure bill part of the clinic API.
type Backend interface {
	GetProcedureBillDetails(ctx context.Context, date string) ([]api.BillPatient, error)
	PostProcedureBill(ctx context.Context, req api.ProcedureBillRequest) (*api.ProcedureBillResponse, error)
}

// Composer builds the procedure bill of one patient for an appointment date.
type Composer struct {
	backend Backend

	mu                sync.Mutex
	date              string
	patients          []domain.BillPatient
	selected          *domain.BillPatient
	procedures        []domain.LineItem
	consumables       []domain.LineItem
	payment           domain.PaymentType
	procedureSection  string
	consumableSection string
	message           string
}

func NewComposer(backend Backend) *Composer {
	return &Composer{
		backend:           backend,
		payment:           domain.PaymentCard,
		procedureSection:  DefaultProcedureSection,
		consumableSection: DefaultConsumableSection,
	}
}

// Load lists the patients with procedures on date. A failed request leaves
// the list empty.
func (c *Composer) Load(ctx context.Context, date string) error {
	rows, err := c.backend.GetProcedureBillDetails(ctx, date)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.date = date
	c.patients = nil
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("date", date).Msg("failed to fetch procedure list")
		c.clearSelection()
		return fmt.Errorf("fetch procedure list: %w", err)
	}
	for _, row := range rows {
		if row.Procedures.Invalid {
			zerolog.Ctx(ctx).Warn().Err(row.Procedures.Err).Str("patient_uid", row.PatientUID).Msg("undecodable procedures")
		}
		c.patients = append(c.patients, adapters.MapBillPatientToDomain(row))
	}
	if c.selected != nil {
		if p, ok := c.find(c.selected.PatientUID); ok {
			c.selectPatient(p)
		} else {
			c.clearSelection()
		}
	}
	return nil
}

func (c *Composer) Patients() []domain.BillPatient {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.BillPatient(nil), c.patients...)
}

func (c *Composer) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Select starts a bill for the patient with one blank consumable row.
func (c *Composer) Select(patientUID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.find(patientUID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNoPatientSelected, patientUID)
	}
	c.selectPatient(p)
	return nil
}

func (c *Composer) Deselect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearSelection()
}

func (c *Composer) find(patientUID string) (domain.BillPatient, bool) {
	for _, p := range c.patients {
		if p.PatientUID == patientUID {
			return p, true
		}
	}
	return domain.BillPatient{}, false
}

func (c *Composer) selectPatient(p domain.BillPatient) {
	c.selected = &p
	c.procedures = append([]domain.LineItem(nil), p.Procedures...)
	c.consumables = []domain.LineItem{{}}
}

func (c *Composer) clearSelection() {
	c.selected = nil
	c.procedures = nil
	c.consumables = nil
}

func (c *Composer) SetPaymentType(t domain.PaymentType) error {
	if t != domain.PaymentCard && t != domain.PaymentCash {
		return fmt.Errorf("unknown payment type %q", t)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payment = t
	return nil
}

// SetSections overrides the section labels sent with the bill; empty values
// keep the current label.
func (c *Composer) SetSections(procedure, consumable string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if procedure != "" {
		c.procedureSection = procedure
	}
	if consumable != "" {
		c.consumableSection = consumable
	}
}

func (c *Composer) procedure(index int) (*domain.LineItem, error) {
	if c.selected == nil {
		return nil, domain.ErrNoPatientSelected
	}
	if index < 0 || index >= len(c.procedures) {
		return nil, fmt.Errorf("%w: procedure %d", domain.ErrItemNotFound, index)
	}
	return &c.procedures[index], nil
}

// SetPrice rounds the entered price and recomputes GST and total.
func (c *Composer) SetPrice(index int, value string) (domain.LineItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, err := c.procedure(index)
	if err != nil {
		return domain.LineItem{}, err
	}
	price := domain.ParseAmount(value)
	if !price.Valid {
		it.Price, it.Tax, it.Total = price, domain.AmountOf(decimal.Zero), domain.AmountOf(decimal.Zero)
		return *it, nil
	}
	p, gst, total := FromPrice(price.Value, it.TaxRate.Decimal())
	it.Price, it.Tax, it.Total = domain.AmountOf(p), domain.AmountOf(gst), domain.AmountOf(total)
	return *it, nil
}

// SetTotal takes a GST-inclusive total and splits it into price and GST.
func (c *Composer) SetTotal(index int, value string) (domain.LineItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, err := c.procedure(index)
	if err != nil {
		return domain.LineItem{}, err
	}
	total := domain.ParseAmount(value)
	if !total.Valid {
		it.Price, it.Tax, it.Total = domain.Amount{}, domain.Amount{}, total
		return *it, nil
	}
	price, gst := FromTotal(total.Value, it.TaxRate.Decimal())
	it.Price, it.Tax, it.Total = domain.AmountOf(price), domain.AmountOf(gst), total
	return *it, nil
}

// SetRate changes the GST rate and recomputes GST from the current price. A
// non-numeric rate counts as zero.
func (c *Composer) SetRate(index int, value string) (domain.LineItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, err := c.procedure(index)
	if err != nil {
		return domain.LineItem{}, err
	}
	rate := domain.ParseAmount(value)
	if !rate.Valid {
		rate = domain.AmountOf(decimal.Zero)
	}
	it.TaxRate = rate
	price := it.Price.Decimal()
	gst := GST(price, rate.Value)
	it.Tax, it.Total = domain.AmountOf(gst), domain.AmountOf(price.Add(gst))
	return *it, nil
}

// AddConsumable appends a blank consumable row and returns its index.
func (c *Composer) AddConsumable() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return 0, domain.ErrNoPatientSelected
	}
	c.consumables = append(c.consumables, domain.LineItem{})
	return len(c.consumables) - 1, nil
}

// SetConsumable updates a consumable row. Quantity and price changes
// recompute the total with two decimals, or zero if either is not numeric.
func (c *Composer) SetConsumable(index int, field ConsumableField, value string) (domain.LineItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return domain.LineItem{}, domain.ErrNoPatientSelected
	}
	if index < 0 || index >= len(c.consumables) {
		return domain.LineItem{}, fmt.Errorf("%w: consumable %d", domain.ErrItemNotFound, index)
	}
	it := &c.consumables[index]

	switch field {
	case ConsumableItem:
		it.Description = value
		return *it, nil
	case ConsumableQuantity:
		it.Quantity = domain.ParseAmount(value)
	case ConsumablePrice:
		it.Price = domain.ParseAmount(value)
	default:
		return domain.LineItem{}, fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}

	total := decimal.Zero
	if it.Quantity.Valid && it.Price.Valid {
		total = it.Quantity.Value.Mul(it.Price.Value).Round(2)
	}
	it.Total = domain.ParseAmount(total.StringFixed(2))
	return *it, nil
}

// Bill returns the current bill with net amounts.
func (c *Composer) Bill() (domain.ProcedureBill, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bill()
}

func (c *Composer) bill() (domain.ProcedureBill, error) {
	if c.selected == nil {
		return domain.ProcedureBill{}, domain.ErrNoPatientSelected
	}

	patient := *c.selected
	if patient.AppointmentDate == "" {
		patient.AppointmentDate = c.date
	}
	b := domain.ProcedureBill{
		Patient:           patient,
		Procedures:        make([]domain.LineItem, 0, len(c.procedures)),
		Consumables:       append([]domain.LineItem(nil), c.consumables...),
		PaymentType:       c.payment,
		ProcedureNet:      decimal.Zero,
		ConsumerNet:       decimal.Zero,
		ProcedureSection:  c.procedureSection,
		ConsumableSection: c.consumableSection,
	}
	for _, it := range c.procedures {
		line := it.Price.Decimal().Add(it.Tax.Decimal())
		it.Total = domain.ParseAmount(line.StringFixed(2))
		b.Procedures = append(b.Procedures, it)
		b.ProcedureNet = b.ProcedureNet.Add(line)
	}
	for _, it := range c.consumables {
		b.ConsumerNet = b.ConsumerNet.Add(it.Total.Decimal())
	}
	b.TotalAmount = b.ProcedureNet.Add(b.ConsumerNet)
	return b, nil
}

// Save posts the bill. Without a selected patient nothing is sent.
func (c *Composer) Save(ctx context.Context) (domain.BillNumbers, error) {
	c.mu.Lock()
	b, err := c.bill()
	if err != nil {
		c.message = MessageNoPatient
		c.mu.Unlock()
		return domain.BillNumbers{}, err
	}
	c.mu.Unlock()

	resp, err := c.backend.PostProcedureBill(ctx, adapters.MapProcedureBillToRequest(b))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("patient_uid", b.Patient.PatientUID).Msg("failed to save procedure bill")
		c.setMessage(MessageSaveFailed)
		return domain.BillNumbers{}, fmt.Errorf("save procedure bill: %w", err)
	}

	numbers := adapters.MapProcedureBillResponseToDomain(*resp)
	c.setMessage(fmt.Sprintf("Procedure bill generated successfully for %s", b.Patient.PatientName))
	zerolog.Ctx(ctx).Info().
		Str("patient_uid", b.Patient.PatientUID).
		Str("procedure_bill", numbers.Procedure).
		Str("consumer_bill", numbers.Consumable).
		Msg("procedure bill saved")
	return numbers, nil
}

func (c *Composer) setMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = msg
}

// Document lays out the printable bill as of issued.
func (c *Composer) Document(issued time.Time) (export.BillDocument, error) {
	b, err := c.Bill()
	if err != nil {
		return export.BillDocument{}, err
	}

	doc := export.BillDocument{
		PatientName:    b.Patient.PatientName,
		PatientUID:     b.Patient.PatientUID,
		Issued:         issued,
		ProcedureHead:  ProcedureHead,
		ConsumableHead: ConsumableHead,
		TotalAmount:    b.TotalAmount.StringFixed(2),
	}
	for _, it := range b.Procedures {
		price := it.Price.Decimal()
		gst := GST(price, it.TaxRate.Decimal())
		doc.ProcedureRows = append(doc.ProcedureRows, []string{
			it.Description,
			it.Date,
			it.Price.String(),
			it.TaxRate.String(),
			gst.String(),
			price.Add(gst).Round(0).String(),
		})
	}
	for _, it := range b.Consumables {
		if it.Description == "" && it.Quantity.Raw == "" && it.Price.Raw == "" {
			continue
		}
		doc.ConsumableRows = append(doc.ConsumableRows, []string{
			it.Description,
			it.Quantity.String(),
			it.Price.String(),
			it.Total.String(),
		})
	}
	return doc, nil
}
