package reports_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/2beens/gymreports/internal/healthdata"
	"github.com/2beens/gymreports/internal/notifier"
	"github.com/2beens/gymreports/internal/pdfreport"
	"github.com/2beens/gymreports/internal/reports"
	"github.com/2beens/gymreports/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	repo      *MockreportsRepo
	dashboard *MockdashboardComposer
	pdf       *MockpdfComposer
	mailer    *Mockmailer
	metrics   *metrics.Manager
}

func newTestService(t *testing.T) (*reports.Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		repo:      NewMockreportsRepo(ctrl),
		dashboard: NewMockdashboardComposer(ctrl),
		pdf:       NewMockpdfComposer(ctrl),
		mailer:    NewMockmailer(ctrl),
		metrics:   metrics.NewTestManager(),
	}
	svc := reports.NewService(reports.ServiceParams{
		Repo:           m.repo,
		Dashboard:      m.dashboard,
		PDF:            m.pdf,
		Mailer:         m.mailer,
		MetricsManager: m.metrics,
	})
	return svc, m
}

func fp(v float64) *float64 { return &v }
func sp(v string) *string   { return &v }

func testRecord() healthdata.Record {
	return healthdata.Record{
		PatientID:        "M001",
		HeartRate:        fp(72),
		BMI:              fp(22.5),
		BloodPressure:    sp("118/76"),
		ExerciseDuration: fp(200),
	}
}

func TestService_Generate(t *testing.T) {
	svc, m := newTestService(t)
	rec := testRecord()

	gomock.InOrder(
		m.dashboard.EXPECT().Compose(gomock.Any(), rec).Return("output/dashboard_M001.png", nil),
		m.pdf.EXPECT().
			Compose(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params pdfreport.ComposeParams) (string, error) {
				assert.Equal(t, "M001", params.PatientID)
				assert.Equal(t, "output/dashboard_M001.png", params.DashboardPath)
				assert.Len(t, params.Recommendations, 5)
				return "output/health_report_M001.pdf", nil
			}),
		m.repo.EXPECT().
			Add(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r reports.Report) (*reports.Report, error) {
				assert.Equal(t, "M001", r.PatientID)
				assert.Equal(t, "output/health_report_M001.pdf", r.PDFPath)
				assert.Equal(t, "output/dashboard_M001.png", r.DashboardPath)
				assert.Nil(t, r.TablePath)
				require.NotNil(t, r.CoachEmail)
				assert.Equal(t, "coach@example.com", *r.CoachEmail)
				assert.Nil(t, r.PatientEmail)
				assert.Equal(t, reports.StatusGenerated, r.Status)

				var stored healthdata.Record
				require.NoError(t, json.Unmarshal(r.ReportData, &stored))
				assert.Equal(t, rec, stored)

				r.ID = 7
				r.CreatedAt = time.Now()
				return &r, nil
			}),
	)

	res, err := svc.Generate(context.Background(), reports.GenerateParams{
		Record:     rec,
		CoachEmail: "coach@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Report.ID)
	assert.Nil(t, res.EmailResults)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.CounterReportsGenerated))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.metrics.CounterReportsFailed))
}

func TestService_Generate_SendsCoachThenPatient(t *testing.T) {
	svc, m := newTestService(t)
	rec := testRecord()

	m.dashboard.EXPECT().Compose(gomock.Any(), gomock.Any()).Return("d.png", nil)
	m.pdf.EXPECT().Compose(gomock.Any(), gomock.Any()).Return("r.pdf", nil)
	m.repo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(&reports.Report{ID: 3}, nil)

	gomock.InOrder(
		m.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p notifier.SendParams) notifier.Result {
				assert.Equal(t, notifier.RoleCoach, p.Role)
				assert.Equal(t, "coach@example.com", p.RecipientEmail)
				assert.Equal(t, "r.pdf", p.PDFPath)
				assert.Equal(t, "gym@example.com", p.SenderEmail)
				assert.Equal(t, "pass", p.SenderPassword)
				return notifier.Result{Recipient: notifier.RoleCoach, Status: false, Message: notifier.MsgAuthFailed}
			}),
		m.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p notifier.SendParams) notifier.Result {
				assert.Equal(t, notifier.RolePatient, p.Role)
				assert.Equal(t, "member@example.com", p.RecipientEmail)
				return notifier.Result{Recipient: notifier.RolePatient, Status: true, Message: notifier.MsgSent}
			}),
	)

	res, err := svc.Generate(context.Background(), reports.GenerateParams{
		Record:         rec,
		CoachEmail:     "coach@example.com",
		PatientEmail:   "member@example.com",
		SendEmail:      true,
		SenderEmail:    "gym@example.com",
		SenderPassword: "pass",
	})
	require.NoError(t, err)
	require.Len(t, res.EmailResults, 2)
	assert.False(t, res.EmailResults[0].Status)
	assert.True(t, res.EmailResults[1].Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.CounterEmails.WithLabelValues("coach", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.CounterEmails.WithLabelValues("patient", "sent")))
}

func TestService_Generate_SendWithoutRecipients(t *testing.T) {
	svc, m := newTestService(t)

	m.dashboard.EXPECT().Compose(gomock.Any(), gomock.Any()).Return("d.png", nil)
	m.pdf.EXPECT().Compose(gomock.Any(), gomock.Any()).Return("r.pdf", nil)
	m.repo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(&reports.Report{ID: 4}, nil)
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

	res, err := svc.Generate(context.Background(), reports.GenerateParams{
		Record:         testRecord(),
		SendEmail:      true,
		SenderEmail:    "gym@example.com",
		SenderPassword: "pass",
	})
	require.NoError(t, err)
	assert.NotNil(t, res.EmailResults)
	assert.Empty(t, res.EmailResults)
}

func TestService_Generate_DashboardFails(t *testing.T) {
	svc, m := newTestService(t)

	m.dashboard.EXPECT().Compose(gomock.Any(), gomock.Any()).Return("", errors.New("disk full"))
	m.pdf.EXPECT().Compose(gomock.Any(), gomock.Any()).Times(0)
	m.repo.EXPECT().Add(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Generate(context.Background(), reports.GenerateParams{Record: testRecord()})
	require.Error(t, err)
	assert.Equal(t, "render dashboard: disk full", err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "reports.(*Service).Generate")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.CounterReportsFailed))
}

func TestService_Generate_FontMissing(t *testing.T) {
	svc, m := newTestService(t)

	m.dashboard.EXPECT().Compose(gomock.Any(), gomock.Any()).Return("d.png", nil)
	m.pdf.EXPECT().Compose(gomock.Any(), gomock.Any()).Return("", fmt.Errorf("%w: fonts/x.ttf", pdfreport.ErrFontUnavailable))
	m.repo.EXPECT().Add(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Generate(context.Background(), reports.GenerateParams{Record: testRecord()})
	require.ErrorIs(t, err, pdfreport.ErrFontUnavailable)
}

func TestService_Generate_StoreFails(t *testing.T) {
	svc, m := newTestService(t)

	m.dashboard.EXPECT().Compose(gomock.Any(), gomock.Any()).Return("d.png", nil)
	m.pdf.EXPECT().Compose(gomock.Any(), gomock.Any()).Return("r.pdf", nil)
	m.repo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil, errors.New("database is locked"))
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Generate(context.Background(), reports.GenerateParams{
		Record:         testRecord(),
		CoachEmail:     "coach@example.com",
		SendEmail:      true,
		SenderEmail:    "gym@example.com",
		SenderPassword: "pass",
	})
	require.Error(t, err)
	assert.Equal(t, "save report: database is locked", err.Error())
}
