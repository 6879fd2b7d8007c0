package coaches

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/2beens/gymreports/internal/db"
	"github.com/2beens/gymreports/internal/telemetry/tracing"
	"github.com/2beens/gymreports/pkg"
)

type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{
		db: db,
	}
}

func (r *SQLiteRepo) Add(ctx context.Context, coach Coach) (_ *Coach, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coaches.sqlite.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var createdAt any
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO coaches (name, email, phone)
		VALUES (?, ?, ?)
		RETURNING id, created_at
	`, coach.Name, coach.Email, coach.Phone).Scan(&coach.ID, &createdAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrCoachEmailTaken
		}
		return nil, fmt.Errorf("insert coach: %w", err)
	}
	if coach.CreatedAt, err = db.ParseSQLiteTime(createdAt); err != nil {
		return nil, err
	}

	return &coach, nil
}

func (r *SQLiteRepo) List(ctx context.Context) (_ []Coach, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coaches.sqlite.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, phone, created_at FROM coaches ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	defer rows.Close()

	coaches := make([]Coach, 0)
	for rows.Next() {
		var (
			c         Coach
			phone     sql.NullString
			createdAt any
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &phone, &createdAt); err != nil {
			return nil, err
		}
		if phone.Valid {
			c.Phone = &phone.String
		}
		if c.CreatedAt, err = db.ParseSQLiteTime(createdAt); err != nil {
			return nil, err
		}
		coaches = append(coaches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coaches, nil
}
