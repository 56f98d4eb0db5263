package adapters

import (
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

func MapHistoryDomainToApi(h domain.History) api.HistoryResponse {
	resp := api.HistoryResponse{
		PatientUID: h.PatientUID,
		Visits:     make([]api.Visit, 0, len(h.Visits)),
		Files:      make([]api.VisitFiles, 0, len(h.Files)),
	}
	for _, v := range h.Visits {
		resp.Visits = append(resp.Visits, MapSummaryDomainToVisit(v))
	}
	for _, f := range h.Files {
		resp.Files = append(resp.Files, api.VisitFiles{
			AppointmentDate: f.AppointmentDate,
			Images:          mapFiles(f.Images),
			PDFs:            mapFiles(f.PDFs),
		})
	}
	return resp
}

func mapFiles(files []domain.HistoryFile) []api.HistoryFile {
	out := make([]api.HistoryFile, 0, len(files))
	for _, f := range files {
		out = append(out, api.HistoryFile{
			Filename:    f.Filename,
			ContentType: f.ContentType,
			Size:        len(f.Data),
		})
	}
	return out
}
