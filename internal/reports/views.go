package reports

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/2beens/gymreports/internal/healthdata"
)

const (
	viewTimeLayout    = time.DateTime
	historyTimeLayout = "2006-01-02 15:04"
	placeholder       = "N/A"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type MetricCard struct {
	Title string
	Value string
	Unit  string
}

type ViewPage struct {
	PatientID    string
	CreatedAt    string
	Cards        []MetricCard
	DashboardSrc template.URL
	DownloadURL  string
	HistoryURL   string
}

type HistoryItem struct {
	CreatedAt   string
	ViewURL     string
	DownloadURL string
}

type HistoryPage struct {
	PatientID string
	Items     []HistoryItem
}

func ViewURL(id int64) string {
	return fmt.Sprintf("/view_report/%d", id)
}

func DownloadURL(id int64) string {
	return fmt.Sprintf("/download_report/%d", id)
}

func HistoryURL(patientID string) string {
	return "/reports/" + url.PathEscape(patientID)
}

func newViewPage(report *Report, rec healthdata.Record, dashboardBase64 string) ViewPage {
	page := ViewPage{
		PatientID: report.PatientID,
		CreatedAt: report.CreatedAt.Format(viewTimeLayout),
		Cards: []MetricCard{
			{Title: "❤️ 心率", Value: formatMetric(rec.HeartRate), Unit: "次/分"},
			{Title: "⚖️ 體重", Value: formatMetric(rec.Weight), Unit: "公斤"},
			{Title: "📏 身高", Value: formatMetric(rec.Height), Unit: "公分"},
			{Title: "📊 BMI", Value: formatMetric(rec.BMI)},
			{Title: "🩸 血壓", Value: formatText(rec.BloodPressure), Unit: "mmHg"},
			{Title: "🏃‍♀️ 運動時間", Value: formatMetric(rec.ExerciseDuration), Unit: "分鐘"},
		},
		DownloadURL: DownloadURL(report.ID),
		HistoryURL:  HistoryURL(report.PatientID),
	}
	if dashboardBase64 != "" {
		page.DashboardSrc = template.URL("data:image/png;base64," + dashboardBase64)
	}
	return page
}

func newHistoryPage(patientID string, reports []Report) HistoryPage {
	items := make([]HistoryItem, 0, len(reports))
	for _, r := range reports {
		items = append(items, HistoryItem{
			CreatedAt:   r.CreatedAt.Format(historyTimeLayout),
			ViewURL:     ViewURL(r.ID),
			DownloadURL: DownloadURL(r.ID),
		})
	}
	return HistoryPage{
		PatientID: patientID,
		Items:     items,
	}
}

func formatMetric(v *float64) string {
	if v == nil {
		return placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatText(s *string) string {
	if s == nil || *s == "" {
		return placeholder
	}
	return *s
}

func renderPage(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
