package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/2beens/gymreports/internal/db"
	"github.com/2beens/gymreports/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{
		db: db,
	}
}

func (r *SQLiteRepo) Add(ctx context.Context, report Report) (_ *Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.sqlite.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("patient_id", report.PatientID))

	if report.Status == "" {
		report.Status = StatusGenerated
	}

	var createdAt any
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO health_reports (patient_id, report_data, pdf_path, dashboard_path, table_path, coach_email, patient_email, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
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
	).Scan(&report.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	if report.CreatedAt, err = db.ParseSQLiteTime(createdAt); err != nil {
		return nil, err
	}

	return &report, nil
}

const sqliteReportColumns = `id, patient_id, report_data, COALESCE(pdf_path, ''), COALESCE(dashboard_path, ''),
	table_path, created_at, coach_email, patient_email, COALESCE(status, '')`

func (r *SQLiteRepo) Get(ctx context.Context, id int64) (_ *Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.sqlite.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteReportColumns+` FROM health_reports WHERE id = ?`, id)
	report, err := scanSQLiteReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	return report, nil
}

func (r *SQLiteRepo) ListByPatient(ctx context.Context, patientID string) (_ []Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.sqlite.listbypatient")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("patient_id", patientID))

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sqliteReportColumns+`
		FROM health_reports
		WHERE patient_id = ?
		ORDER BY created_at DESC, id DESC
	`, patientID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]Report, 0)
	for rows.Next() {
		report, err := scanSQLiteReport(rows)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteReport(row scanner) (*Report, error) {
	var (
		report       Report
		data         string
		tablePath    sql.NullString
		createdAt    any
		coachEmail   sql.NullString
		patientEmail sql.NullString
	)
	if err := row.Scan(
		&report.ID,
		&report.PatientID,
		&data,
		&report.PDFPath,
		&report.DashboardPath,
		&tablePath,
		&createdAt,
		&coachEmail,
		&patientEmail,
		&report.Status,
	); err != nil {
		return nil, err
	}

	createdAtTime, err := db.ParseSQLiteTime(createdAt)
	if err != nil {
		return nil, err
	}
	report.CreatedAt = createdAtTime
	report.ReportData = []byte(data)
	report.TablePath = nullString(tablePath)
	report.CoachEmail = nullString(coachEmail)
	report.PatientEmail = nullString(patientEmail)
	return &report, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
