package adapters

import (
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

func MapBillPatientToDomain(p api.BillPatient) domain.BillPatient {
	procedures := make([]domain.LineItem, 0, len(p.Procedures.Items))
	for _, it := range p.Procedures.Items {
		procedures = append(procedures, MapProcedureItemToDomain(it))
	}
	return domain.BillPatient{
		PatientName:     p.PatientName,
		PatientUID:      p.PatientUID,
		AppointmentDate: p.AppointmentDate,
		Procedures:      procedures,
	}
}

func MapProcedureBillToRequest(b domain.ProcedureBill) api.ProcedureBillRequest {
	procedures := make([]api.ProcedureItem, 0, len(b.Procedures))
	for _, it := range b.Procedures {
		procedures = append(procedures, MapLineItemToProcedureItem(it))
	}
	consumer := make([]api.ConsumerItem, 0, len(b.Consumables))
	for _, it := range b.Consumables {
		consumer = append(consumer, MapLineItemToConsumerItem(it))
	}
	return api.ProcedureBillRequest{
		PatientName:        b.Patient.PatientName,
		PatientUID:         b.Patient.PatientUID,
		AppointmentDate:    b.Patient.AppointmentDate,
		Procedures:         procedures,
		Consumer:           consumer,
		ProcedureNetAmount: b.ProcedureNet.StringFixed(2),
		ConsumerNetAmount:  b.ConsumerNet.StringFixed(2),
		TotalAmount:        b.TotalAmount.StringFixed(2),
		PaymentType:        string(b.PaymentType),
		ConsumerSection:    b.ConsumableSection,
		ProcedureSection:   b.ProcedureSection,
	}
}

func MapProcedureBillResponseToDomain(r api.ProcedureBillResponse) domain.BillNumbers {
	return domain.BillNumbers{
		Procedure:  r.ProcedureBillNumber,
		Consumable: r.ConsumerBillNumber,
	}
}
