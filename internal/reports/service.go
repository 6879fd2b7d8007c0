package reports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/2beens/gymreports/internal/advice"
	"github.com/2beens/gymreports/internal/healthdata"
	"github.com/2beens/gymreports/internal/notifier"
	"github.com/2beens/gymreports/internal/pdfreport"
	"github.com/2beens/gymreports/internal/telemetry/metrics"
	"github.com/2beens/gymreports/internal/telemetry/tracing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=reports_test

type reportsRepo interface {
	Add(ctx context.Context, report Report) (*Report, error)
	Get(ctx context.Context, id int64) (*Report, error)
	ListByPatient(ctx context.Context, patientID string) ([]Report, error)
}

type dashboardComposer interface {
	Compose(ctx context.Context, rec healthdata.Record) (string, error)
}

type pdfComposer interface {
	Compose(ctx context.Context, params pdfreport.ComposeParams) (string, error)
}

type mailer interface {
	Send(ctx context.Context, params notifier.SendParams) notifier.Result
}

type GenerateParams struct {
	Record         healthdata.Record
	CoachEmail     string
	PatientEmail   string
	SendEmail      bool
	SenderEmail    string
	SenderPassword string
}

type GenerateResult struct {
	Report *Report
	// EmailResults is nil unless delivery was requested.
	EmailResults []notifier.Result
}

type ServiceParams struct {
	Repo           reportsRepo
	Dashboard      dashboardComposer
	PDF            pdfComposer
	Mailer         mailer
	MetricsManager *metrics.Manager
}

type Service struct {
	repo           reportsRepo
	dashboard      dashboardComposer
	pdf            pdfComposer
	mailer         mailer
	metricsManager *metrics.Manager
}

func NewService(params ServiceParams) *Service {
	return &Service{
		repo:           params.Repo,
		dashboard:      params.Dashboard,
		pdf:            params.PDF,
		mailer:         params.Mailer,
		metricsManager: params.MetricsManager,
	}
}

// Generate runs the whole pipeline: dashboard, advice, PDF, store, then the
// optional emails. Errors carry the stack of the failing step.
func (s *Service) Generate(ctx context.Context, params GenerateParams) (_ *GenerateResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.reports.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		if err != nil {
			s.metricsManager.CounterReportsFailed.Inc()
		}
	}()
	rec := params.Record
	span.SetAttributes(attribute.String("patient_id", rec.PatientID))

	var dashboardPath string
	err = s.timeStep("dashboard", func() (stepErr error) {
		dashboardPath, stepErr = s.dashboard.Compose(ctx, rec)
		return errors.Wrap(stepErr, "render dashboard")
	})
	if err != nil {
		return nil, err
	}

	recommendations := advice.Recommendations(rec)

	var pdfPath string
	err = s.timeStep("pdf", func() (stepErr error) {
		pdfPath, stepErr = s.pdf.Compose(ctx, pdfreport.ComposeParams{
			PatientID:       rec.PatientID,
			Recommendations: recommendations,
			DashboardPath:   dashboardPath,
		})
		return errors.Wrap(stepErr, "compose pdf report")
	})
	if err != nil {
		return nil, err
	}

	reportData, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "marshal report data")
	}

	var report *Report
	err = s.timeStep("store", func() (stepErr error) {
		report, stepErr = s.repo.Add(ctx, Report{
			PatientID:     rec.PatientID,
			ReportData:    reportData,
			PDFPath:       pdfPath,
			DashboardPath: dashboardPath,
			CoachEmail:    nullable(params.CoachEmail),
			PatientEmail:  nullable(params.PatientEmail),
			Status:        StatusGenerated,
		})
		return errors.Wrap(stepErr, "save report")
	})
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterReportsGenerated.Inc()
	log.Printf("report %d generated for [%s]", report.ID, rec.PatientID)

	result := &GenerateResult{Report: report}
	if params.SendEmail {
		result.EmailResults = s.notify(ctx, params, pdfPath)
	}
	return result, nil
}

// notify mails the coach first, then the member; one failing does not stop the other
func (s *Service) notify(ctx context.Context, params GenerateParams, pdfPath string) []notifier.Result {
	recipients := []struct {
		role  notifier.Role
		email string
	}{
		{notifier.RoleCoach, params.CoachEmail},
		{notifier.RolePatient, params.PatientEmail},
	}

	results := make([]notifier.Result, 0, len(recipients))
	for _, rcpt := range recipients {
		if rcpt.email == "" {
			continue
		}
		var res notifier.Result
		_ = s.timeStep("email", func() error {
			res = s.mailer.Send(ctx, notifier.SendParams{
				SenderEmail:    params.SenderEmail,
				SenderPassword: params.SenderPassword,
				RecipientEmail: rcpt.email,
				PatientID:      params.Record.PatientID,
				PDFPath:        pdfPath,
				Role:           rcpt.role,
			})
			return nil
		})
		outcome := "sent"
		if !res.Status {
			outcome = "failed"
		}
		s.metricsManager.CounterEmails.WithLabelValues(string(rcpt.role), outcome).Inc()
		results = append(results, res)
	}
	return results
}

func (s *Service) timeStep(step string, f func() error) error {
	start := time.Now()
	err := f()
	s.metricsManager.HistogramGenerationDuration.WithLabelValues(step).Observe(time.Since(start).Seconds())
	return err
}
