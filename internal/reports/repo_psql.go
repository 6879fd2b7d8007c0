package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymreports/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

func (r *PsqlRepo) Add(ctx context.Context, report Report) (_ *Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.psql.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("patient_id", report.PatientID))

	if report.Status == "" {
		report.Status = StatusGenerated
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO health_reports (patient_id, report_data, pdf_path, dashboard_path, table_path, coach_email, patient_email, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`,
		report.PatientID,
		string(report.ReportData),
		report.PDFPath,
		report.DashboardPath,
		report.TablePath,
		report.CoachEmail,
		report.PatientEmail,
		report.Status,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	return &report, nil
}

const psqlReportColumns = `id, patient_id, report_data, COALESCE(pdf_path, ''), COALESCE(dashboard_path, ''),
	table_path, created_at, coach_email, patient_email, COALESCE(status, '')`

func (r *PsqlRepo) Get(ctx context.Context, id int64) (_ *Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.psql.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(ctx, `SELECT `+psqlReportColumns+` FROM health_reports WHERE id = $1`, id)
	report, err := scanPsqlReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	return report, nil
}

func (r *PsqlRepo) ListByPatient(ctx context.Context, patientID string) (_ []Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.psql.listbypatient")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("patient_id", patientID))

	rows, err := r.db.Query(ctx, `
		SELECT `+psqlReportColumns+`
		FROM health_reports
		WHERE patient_id = $1
		ORDER BY created_at DESC, id DESC
	`, patientID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]Report, 0)
	for rows.Next() {
		report, err := scanPsqlReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func scanPsqlReport(row pgx.Row) (*Report, error) {
	var (
		report Report
		data   string
	)
	if err := row.Scan(
		&report.ID,
		&report.PatientID,
		&data,
		&report.PDFPath,
		&report.DashboardPath,
		&report.TablePath,
		&report.CreatedAt,
		&report.CoachEmail,
		&report.PatientEmail,
		&report.Status,
	); err != nil {
		return nil, err
	}
	report.ReportData = []byte(data)
	return &report, nil
}
