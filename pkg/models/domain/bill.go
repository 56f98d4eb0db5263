package domain

import "github.com/shopspring/decimal"

// PaymentType decides the bill number prefix on the server.
type PaymentType string

const (
	PaymentCard PaymentType = "Card"
	PaymentCash PaymentType = "Cash"
)

// BillPatient is a patient listed on the procedure-bill screen.
type BillPatient struct {
	PatientName     string
	PatientUID      string
	AppointmentDate string
	Procedures      []LineItem
}

// ProcedureBill is the composed bill posted for one patient.
type ProcedureBill struct {
	Patient           BillPatient
	Procedures        []LineItem
	Consumables       []LineItem
	PaymentType       PaymentType
	ProcedureNet      decimal.Decimal
	ConsumerNet       decimal.Decimal
	TotalAmount       decimal.Decimal
	ProcedureSection  string
	ConsumableSection string
}

// BillNumbers are assigned by the server when a procedure bill is saved.
type BillNumbers struct {
	Procedure  string
	Consumable string
}
