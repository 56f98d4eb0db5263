package adapters

import (
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

func MapFlexToAmount(f api.Flex) domain.Amount {
	return domain.ParseAmount(f.Raw)
}

func MapAmountToFlex(a domain.Amount) api.Flex {
	switch {
	case a.Valid:
		return api.FlexNumber(a.Value.String())
	case a.Raw == "":
		return api.Flex{Null: true}
	default:
		return api.FlexString(a.Raw)
	}
}

func MapBillingRecordToDomain(r api.BillingRecord) domain.ReportRecord {
	items := make([]domain.LineItem, 0, len(r.TableData.Items))
	for _, it := range r.TableData.Items {
		items = append(items, MapBillingItemToDomain(it))
	}
	return domain.ReportRecord{
		RecordID:        r.ID.Raw,
		PatientName:     r.PatientName,
		PatientUID:      r.PatientUID,
		AppointmentDate: r.AppointmentDate,
		Sections: map[domain.Section]domain.LineItems{
			domain.SectionPharmacy: {Items: items, Invalid: r.TableData.Invalid},
		},
	}
}

func MapBillingItemToDomain(it api.BillingItem) domain.LineItem {
	return domain.LineItem{
		Description: it.Particulars,
		BillNumber:  it.BillNumber,
		Quantity:    MapFlexToAmount(it.Qty),
		Price:       MapFlexToAmount(it.Price),
		CGSTRate:    MapFlexToAmount(it.CGSTPercentage),
		CGST:        MapFlexToAmount(it.CGSTValue),
		SGSTRate:    MapFlexToAmount(it.SGSTPercentage),
		SGST:        MapFlexToAmount(it.SGSTValue),
		Total:       MapFlexToAmount(it.Total),
	}
}

func MapLineItemToBillingItem(it domain.LineItem) api.BillingItem {
	return api.BillingItem{
		Particulars:    it.Description,
		BillNumber:     it.BillNumber,
		Qty:            MapAmountToFlex(it.Quantity),
		Price:          MapAmountToFlex(it.Price),
		CGSTPercentage: MapAmountToFlex(it.CGSTRate),
		CGSTValue:      MapAmountToFlex(it.CGST),
		SGSTPercentage: MapAmountToFlex(it.SGSTRate),
		SGSTValue:      MapAmountToFlex(it.SGST),
		Total:          MapAmountToFlex(it.Total),
	}
}

func MapProcedureBillRecordToDomain(r api.ProcedureBillRecord) domain.ReportRecord {
	procedures := make([]domain.LineItem, 0, len(r.Procedures.Items))
	for _, p := range r.Procedures.Items {
		procedures = append(procedures, MapProcedureItemToDomain(p))
	}
	consumables := make([]domain.LineItem, 0, len(r.Consumer.Items))
	for _, c := range r.Consumer.Items {
		consumables = append(consumables, MapConsumerItemToDomain(c))
	}
	return domain.ReportRecord{
		RecordID:        r.ID.Raw,
		PatientName:     r.PatientName,
		PatientUID:      r.PatientUID,
		AppointmentDate: r.AppointmentDate,
		Sections: map[domain.Section]domain.LineItems{
			domain.SectionProcedure:  {Items: procedures, Invalid: r.Procedures.Invalid},
			domain.SectionConsumable: {Items: consumables, Invalid: r.Consumer.Invalid},
		},
	}
}

func MapProcedureItemToDomain(p api.ProcedureItem) domain.LineItem {
	return domain.LineItem{
		Description: p.Procedure,
		Date:        p.ProcedureDate,
		Price:       MapFlexToAmount(p.Price),
		Tax:         MapFlexToAmount(p.GST),
		TaxRate:     MapFlexToAmount(p.GSTRate),
		Total:       MapFlexToAmount(p.Total),
	}
}

func MapConsumerItemToDomain(c api.ConsumerItem) domain.LineItem {
	return domain.LineItem{
		Description: c.Item,
		Quantity:    MapFlexToAmount(c.Qty),
		Price:       MapFlexToAmount(c.Price),
		Total:       MapFlexToAmount(c.Total),
	}
}

func MapLineItemToProcedureItem(it domain.LineItem) api.ProcedureItem {
	return api.ProcedureItem{
		Procedure:     it.Description,
		ProcedureDate: it.Date,
		Price:         MapAmountToFlex(it.Price),
		GST:           MapAmountToFlex(it.Tax),
		GSTRate:       MapAmountToFlex(it.TaxRate),
		Total:         MapAmountToFlex(it.Total),
	}
}

func MapLineItemToConsumerItem(it domain.LineItem) api.ConsumerItem {
	return api.ConsumerItem{
		Item:  it.Description,
		Qty:   MapAmountToFlex(it.Quantity),
		Price: MapAmountToFlex(it.Price),
		Total: MapAmountToFlex(it.Total),
	}
}
