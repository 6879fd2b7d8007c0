package coaches

import (
	"context"
	"fmt"

	"github.com/2beens/gymreports/internal/telemetry/tracing"
	"github.com/2beens/gymreports/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

func (r *PsqlRepo) Add(ctx context.Context, coach Coach) (_ *Coach, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coaches.psql.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx, `
		INSERT INTO coaches (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, coach.Name, coach.Email, coach.Phone).Scan(&coach.ID, &coach.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrCoachEmailTaken
		}
		return nil, fmt.Errorf("insert coach: %w", err)
	}

	return &coach, nil
}

func (r *PsqlRepo) List(ctx context.Context) (_ []Coach, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coaches.psql.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name, email, phone, created_at FROM coaches ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	defer rows.Close()

	coaches := make([]Coach, 0)
	for rows.Next() {
		var c Coach
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, err
		}
		coaches = append(coaches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coaches, nil
}
