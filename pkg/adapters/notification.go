package adapters

import (
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

func MapMedicineToAlert(m api.Medicine) domain.MedicineAlert {
	return domain.MedicineAlert{
		MedicineName: m.MedicineName,
		Stock:        m.OldStock.Raw,
		ExpiryDate:   m.ExpiryDate,
	}
}

func MapUpcomingVisitToDomain(v api.UpcomingVisit) domain.UpcomingVisit {
	return domain.UpcomingVisit{
		PatientUID:  v.PatientUID,
		PatientName: v.PatientName,
		NextVisit:   v.NextVisit,
	}
}

func MapNotificationsDomainToApi(n domain.Notifications) api.NotificationsResponse {
	resp := api.NotificationsResponse{HasNotifications: n.HasAny()}
	if n.ShowMedicines {
		resp.LowStock = mapAlerts(n.LowStock)
		resp.NearExpiry = mapAlerts(n.NearExpiry)
	}
	if n.ShowVisits {
		for _, v := range n.Visits {
			resp.Visits = append(resp.Visits, api.UpcomingVisit{
				PatientUID:  v.PatientUID,
				PatientName: v.PatientName,
				NextVisit:   v.NextVisit,
			})
		}
	}
	return resp
}

func mapAlerts(alerts []domain.MedicineAlert) []api.MedicineAlert {
	out := make([]api.MedicineAlert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, api.MedicineAlert{
			MedicineName: a.MedicineName,
			Stock:        a.Stock,
			ExpiryDate:   a.ExpiryDate,
		})
	}
	return out
}
