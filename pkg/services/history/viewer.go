package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/client"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	MaxImages = 6
	MaxPDFs   = 3

	// visits fetched concurrently
	fetchLimit = 4
)

type Backend interface {
	GetPatientDetails(ctx context.Context, patientUID string) ([]api.SummaryRecord, error)
	GetFile(ctx context.Context, filename string) (*client.Blob, error)
	GetPDFFile(ctx context.Context, filename string) (*client.Blob, error)
}

type Viewer struct {
	backend Backend
}

func NewViewer(backend Backend) *Viewer {
	return &Viewer{backend: backend}
}

// FileDate renders an appointment date as yyyy-MM-dd for attachment names.
func FileDate(appointmentDate string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, appointmentDate); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if len(appointmentDate) >= 10 {
		return appointmentDate[:10]
	}
	return appointmentDate
}

// Filename is the attachment name the clinic server stores visit files under.
func Filename(patientName, patientUID, appointmentDate string, index int, ext string) string {
	return fmt.Sprintf("%s_%s_%s_%d.%s", patientName, patientUID, FileDate(appointmentDate), index, ext)
}

func (v *Viewer) Load(ctx context.Context, patientUID string) (domain.History, error) {
	logger := zerolog.Ctx(ctx).With().Str("patient_uid", patientUID).Logger()

	records, err := v.backend.GetPatientDetails(ctx, patientUID)
	if err != nil {
		return domain.History{}, fmt.Errorf("failed to get patient details: %w", err)
	}

	h := domain.History{PatientUID: patientUID}
	for _, r := range records {
		h.Visits = append(h.Visits, adapters.MapSummaryRecordToDomain(r))
	}

	found := make([]domain.VisitFiles, len(h.Visits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i, visit := range h.Visits {
		g.Go(func() error {
			found[i] = v.visitFiles(gctx, visit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.History{}, err
	}

	h.Files = groupByDate(found)
	logger.Debug().Int("visits", len(h.Visits)).Int("dates", len(h.Files)).Msg("history loaded")
	return h, nil
}

func (v *Viewer) visitFiles(ctx context.Context, visit domain.SummaryEntry) domain.VisitFiles {
	files := domain.VisitFiles{AppointmentDate: visit.AppointmentDate}
	for i := 0; i < MaxImages; i++ {
		name := Filename(visit.PatientName, visit.PatientUID, visit.AppointmentDate, i, "jpg")
		if f, ok := v.fetch(ctx, name, v.backend.GetFile); ok {
			files.Images = append(files.Images, f)
		}
	}
	for i := 0; i < MaxPDFs; i++ {
		name := Filename(visit.PatientName, visit.PatientUID, visit.AppointmentDate, i, "pdf")
		if f, ok := v.fetch(ctx, name, v.backend.GetPDFFile); ok {
			files.PDFs = append(files.PDFs, f)
		}
	}
	return files
}

func (v *Viewer) fetch(ctx context.Context, name string, get func(context.Context, string) (*client.Blob, error)) (domain.HistoryFile, bool) {
	blob, err := get(ctx, name)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("filename", name).Msg("attachment not available")
		return domain.HistoryFile{}, false
	}
	return domain.HistoryFile{Filename: name, ContentType: blob.ContentType, Data: blob.Data}, true
}

// groupByDate merges files of visits sharing an appointment date, keeping
// first-seen date order.
func groupByDate(visits []domain.VisitFiles) []domain.VisitFiles {
	var out []domain.VisitFiles
	index := make(map[string]int)
	for _, v := range visits {
		key := strings.TrimSpace(v.AppointmentDate)
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, domain.VisitFiles{AppointmentDate: v.AppointmentDate})
			i = len(out) - 1
		}
		out[i].Images = append(out[i].Images, v.Images...)
		out[i].PDFs = append(out[i].PDFs, v.PDFs...)
	}
	return out
}
