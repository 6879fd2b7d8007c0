package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/2beens/gymreports/internal/healthdata"
	"github.com/2beens/gymreports/internal/notifier"
	"github.com/2beens/gymreports/internal/pdfreport"
	"github.com/2beens/gymreports/internal/telemetry/tracing"
	"github.com/2beens/gymreports/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	MsgGenerated          = "報告生成成功"
	MsgSenderRequired     = "需提供寄件Email和密碼"
	MsgInvalidBody        = "請求內容必須是 JSON 物件"
	MsgReportNotFound     = "報告不存在"
	MsgReportFileNotFound = "報告檔案不存在或路徑已失效"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=reports_test

type reportGenerator interface {
	Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error)
}

type GenerateResponse struct {
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	ReportID     int64             `json:"report_id"`
	PatientName  string            `json:"patient_name"`
	ViewURL      string            `json:"view_url"`
	DownloadURL  string            `json:"download_url"`
	EmailResults []notifier.Result `json:"email_results,omitempty"`
}

type ErrorResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Traceback string `json:"traceback,omitempty"`
}

type HandlerParams struct {
	Generator reportGenerator
	Repo      reportsRepo
	Images    *DashboardImages
	FontPath  string
}

type Handler struct {
	generator reportGenerator
	repo      reportsRepo
	images    *DashboardImages
	fontPath  string
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		generator: params.Generator,
		repo:      params.Repo,
		images:    params.Images,
		fontPath:  params.FontPath,
	}
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reports.generate")
	defer span.End()

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil || raw == nil {
		log.Errorf("generate report, unmarshal json body: %v", err)
		writeError(w, http.StatusBadRequest, MsgInvalidBody, "")
		return
	}

	params := GenerateParams{
		CoachEmail:     stringField(raw, "coach_email"),
		PatientEmail:   stringField(raw, "patient_email"),
		SendEmail:      truthy(raw["send_email"]),
		SenderEmail:    stringField(raw, "sender_email"),
		SenderPassword: stringField(raw, "sender_password"),
	}
	if params.SendEmail && (params.SenderEmail == "" || params.SenderPassword == "") {
		writeError(w, http.StatusBadRequest, MsgSenderRequired, "")
		return
	}

	rec, err := healthdata.Normalize(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	params.Record = rec

	res, err := h.generator.Generate(ctx, params)
	if err != nil {
		if errors.Is(err, pdfreport.ErrFontUnavailable) {
			log.Errorf("generate report for [%s]: %s", rec.PatientID, err)
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("字體檔案 '%s' 不存在", h.fontPath), "")
			return
		}
		traceback := fmt.Sprintf("%+v", err)
		log.Errorf("generate report for [%s]: %s", rec.PatientID, traceback)
		writeError(w, http.StatusInternalServerError, err.Error(), traceback)
		return
	}

	pkg.WriteJSON(w, GenerateResponse{
		Status:       "success",
		Message:      MsgGenerated,
		ReportID:     res.Report.ID,
		PatientName:  rec.PatientID,
		ViewURL:      ViewURL(res.Report.ID),
		DownloadURL:  DownloadURL(res.Report.ID),
		EmailResults: res.EmailResults,
	}, http.StatusOK)
}

func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reports.view")
	defer span.End()

	id, ok := reportID(r)
	if !ok {
		http.Error(w, MsgReportNotFound, http.StatusNotFound)
		return
	}

	report, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			http.Error(w, MsgReportNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("view report %d: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var rec healthdata.Record
	if err := json.Unmarshal(report.ReportData, &rec); err != nil {
		log.Errorf("view report %d, unmarshal report data: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	html, err := renderPage("view.html", newViewPage(report, rec, h.images.Base64(report.DashboardPath)))
	if err != nil {
		log.Errorf("view report %d: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteHTMLResponseOK(w, html)
}

func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reports.download")
	defer span.End()

	id, ok := reportID(r)
	if !ok {
		http.Error(w, MsgReportFileNotFound, http.StatusNotFound)
		return
	}

	report, err := h.repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrReportNotFound) {
			log.Errorf("download report %d: %s", id, err)
		}
		http.Error(w, MsgReportFileNotFound, http.StatusNotFound)
		return
	}

	if report.PDFPath == "" {
		http.Error(w, MsgReportFileNotFound, http.StatusNotFound)
		return
	}
	file, err := os.Open(report.PDFPath)
	if err != nil {
		log.Warnf("download report %d, open [%s]: %s", id, report.PDFPath, err)
		http.Error(w, MsgReportFileNotFound, http.StatusNotFound)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil || stat.IsDir() {
		http.Error(w, MsgReportFileNotFound, http.StatusNotFound)
		return
	}

	name := filepath.Base(report.PDFPath)
	w.Header().Set("Content-Type", pkg.ContentType.PDF)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, stat.ModTime(), file)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reports.history")
	defer span.End()

	patientID := mux.Vars(r)["patient_id"]
	reports, err := h.repo.ListByPatient(ctx, patientID)
	if err != nil {
		log.Errorf("list reports for [%s]: %s", patientID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	html, err := renderPage("history.html", newHistoryPage(patientID, reports))
	if err != nil {
		log.Errorf("history for [%s]: %s", patientID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteHTMLResponseOK(w, html)
}

func reportID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, status int, message, traceback string) {
	pkg.WriteJSON(w, ErrorResponse{
		Status:    "error",
		Message:   message,
		Traceback: traceback,
	}, status)
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

// truthy follows loose JSON truthiness: false, 0, "", null and empty collections are false
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
