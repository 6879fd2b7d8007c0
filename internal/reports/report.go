package reports

import (
	"encoding/json"
	"errors"
	"time"
)

const StatusGenerated = "generated"

var ErrReportNotFound = errors.New("report not found")

type Report struct {
	ID            int64           `json:"id"`
	PatientID     string          `json:"patient_id"`
	ReportData    json.RawMessage `json:"report_data"`
	PDFPath       string          `json:"pdf_path"`
	DashboardPath string          `json:"dashboard_path"`
	// TablePath is a legacy column; it is never set.
	TablePath    *string   `json:"table_path"`
	CreatedAt    time.Time `json:"created_at"`
	CoachEmail   *string   `json:"coach_email"`
	PatientEmail *string   `json:"patient_email"`
	Status       string    `json:"status"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
