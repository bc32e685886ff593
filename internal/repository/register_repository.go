package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
)

// RegisterRepository stores the income and expense registers. Both are
// append-only.
type RegisterRepository interface {
	GetAll(ctx context.Context, kind model.RegisterKind) ([]*model.RegisterEntry, error)
	Create(ctx context.Context, e *model.RegisterEntry) error
}

type registerRepository struct {
	pool *pgxpool.Pool
}

func NewRegisterRepository(pool *pgxpool.Pool) RegisterRepository {
	return &registerRepository{pool: pool}
}

func registerTable(kind model.RegisterKind) (string, error) {
	switch kind {
	case model.RegisterIncome:
		return "income_register", nil
	case model.RegisterExpense:
		return "expense_register", nil
	default:
		return "", fmt.Errorf("unknown register kind %q", kind)
	}
}

func (r *registerRepository) GetAll(ctx context.Context, kind model.RegisterKind) ([]*model.RegisterEntry, error) {
	table, err := registerTable(kind)
	if err != nil {
		return nil, err
	}

	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		`SELECT id, date, amount, institute_id, class_id, section_id, created_at
		 FROM `+table+` ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*model.RegisterEntry{}
	for rows.Next() {
		e := &model.RegisterEntry{Kind: kind}
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.InstituteID, &e.ClassID, &e.SectionID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *registerRepository) Create(ctx context.Context, e *model.RegisterEntry) error {
	table, err := registerTable(e.Kind)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO ` + table + ` (date, amount, institute_id, class_id, section_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err = database.Conn(ctx, r.pool).QueryRow(ctx, query,
		e.Date, e.Amount, e.InstituteID, e.ClassID, e.SectionID,
	).Scan(&e.ID, &e.CreatedAt)
	return translate(err)
}
