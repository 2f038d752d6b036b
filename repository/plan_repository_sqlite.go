package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"mortgage-planner/domain"
)

// SQLitePlanRepository keeps calculated plans in a SQLite file. The full
// result is stored as JSON next to the summary columns.
type SQLitePlanRepository struct {
	db *sql.DB
}

func NewSQLitePlanRepository(dbPath string) (*SQLitePlanRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLitePlanRepository{db: db}, nil
}

func (r *SQLitePlanRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLitePlanRepository) Save(ctx context.Context, result domain.PlanResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode plan %s: %w", result.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO plans (
			id, kind, interest_rate, interval, period, amount, start_date,
			periods, first_payment, total_paid, total_interest, result, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID,
		string(result.Summary.Kind),
		result.Request.InterestRate,
		result.Request.Interval,
		result.Request.Period,
		result.Request.Amount,
		result.Request.StartDate,
		result.Summary.Periods,
		result.Summary.FirstPayment,
		result.Summary.TotalPaid,
		result.Summary.TotalInterest,
		string(raw),
		result.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert plan %s: %w", result.ID, err)
	}
	return nil
}

func (r *SQLitePlanRepository) FindByID(ctx context.Context, id string) (domain.PlanResult, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT result FROM plans WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PlanResult{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return domain.PlanResult{}, fmt.Errorf("select plan %s: %w", id, err)
	}

	var result domain.PlanResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return domain.PlanResult{}, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return result, nil
}

// Count returns the number of stored plans.
func (r *SQLitePlanRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count plans: %w", err)
	}
	return n, nil
}
