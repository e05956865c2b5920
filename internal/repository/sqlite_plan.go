package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/neuralplan/internal/db"
	"github.com/alexanderramin/neuralplan/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, history, goals, streak, result_json, created_at`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.PlanRecord) error {
	resultJSON, err := json.Marshal(p.Result)
	if err != nil {
		return fmt.Errorf("encoding plan result: %w", err)
	}
	var burnout string
	if p.Result.BurnoutAlert != nil {
		burnout = string(p.Result.BurnoutAlert.Level)
	}

	query := `INSERT INTO plans (id, history, goals, streak, result_json, created_at, burnout_level)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.History,
		p.Goals,
		p.Streak,
		string(resultJSON),
		formatTimestamp(p.CreatedAt),
		burnout,
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.PlanRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	return r.scanPlan(row)
}

func (r *SQLitePlanRepo) Latest(ctx context.Context) (*domain.PlanRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM plans ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	return r.scanPlan(row)
}

func (r *SQLitePlanRepo) ListRecent(ctx context.Context, limit int) ([]*domain.PlanRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM plans ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.PlanRecord
	for rows.Next() {
		p, err := r.scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

// PruneKeepingLatest deletes all but the newest keep plans and returns how
// many rows were removed.
func (r *SQLitePlanRepo) PruneKeepingLatest(ctx context.Context, keep int) (int, error) {
	query := `DELETE FROM plans WHERE id NOT IN (
		SELECT id FROM plans ORDER BY created_at DESC, rowid DESC LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, max(keep, 0))
	if err != nil {
		return 0, fmt.Errorf("pruning plans: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned plans: %w", err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLitePlanRepo) scanPlan(row rowScanner) (*domain.PlanRecord, error) {
	var p domain.PlanRecord
	var resultJSON, createdAt string

	err := row.Scan(&p.ID, &p.History, &p.Goals, &p.Streak, &resultJSON, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &p.Result); err != nil {
		return nil, fmt.Errorf("decoding plan result: %w", err)
	}
	p.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}
