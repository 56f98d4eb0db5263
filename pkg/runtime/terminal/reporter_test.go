package terminal

import (
	"bytes"
	"testing"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Notifications(t *testing.T) {
	var buf bytes.Buffer
	err := NewReporter(&buf).Notifications(domain.Notifications{
		LowStock:      []domain.MedicineAlert{{MedicineName: "Cetirizine", Stock: "3"}},
		Visits:        []domain.UpcomingVisit{{PatientUID: "P1", PatientName: "Asha", NextVisit: "2024-03-12"}},
		ShowMedicines: true,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "- Cetirizine: 3 left")
	assert.NotContains(t, out, "Near expiry")
	assert.NotContains(t, out, "Asha")
}

func TestReporter_NoNotifications(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Notifications(domain.Notifications{ShowMedicines: true, ShowVisits: true}))
	assert.Equal(t, "No notifications\n", buf.String())
}

func TestReporter_History(t *testing.T) {
	var buf bytes.Buffer
	err := NewReporter(&buf).History(domain.History{
		PatientUID: "P1",
		Visits: []domain.SummaryEntry{{
			AppointmentDate: "2024-03-04",
			FormType:        "Follow-up",
			Diagnosis:       "Acne",
			Complaints:      []domain.Complaint{{Complaint: "Itching", Duration: "2", DurationUnit: "weeks"}},
		}},
		Files: []domain.VisitFiles{{
			AppointmentDate: "2024-03-04",
			Images:          []domain.HistoryFile{{Filename: "Asha_P1_2024-03-04_0.jpg", Data: make([]byte, 2048)}},
		}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "=== 2024-03-04 (Follow-up) ===")
	assert.Contains(t, out, "Diagnosis: Acne")
	assert.Contains(t, out, "Itching")
	assert.Contains(t, out, "image Asha_P1_2024-03-04_0.jpg (2.0 KB)")
}
