package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
)

// LetterRepository stores the dispatch and receive registers. Both are
// append-only.
type LetterRepository interface {
	GetAll(ctx context.Context, direction model.LetterDirection) ([]*model.Letter, error)
	Create(ctx context.Context, l *model.Letter) error
}

type letterRepository struct {
	pool *pgxpool.Pool
}

func NewLetterRepository(pool *pgxpool.Pool) LetterRepository {
	return &letterRepository{pool: pool}
}

// letterTable returns the table and counterparty column of a register.
func letterTable(direction model.LetterDirection) (table, column string, err error) {
	switch direction {
	case model.LetterDispatch:
		return "letters_dispatch", "recipient", nil
	case model.LetterReceive:
		return "letters_receive", "sender", nil
	default:
		return "", "", fmt.Errorf("unknown letter direction %q", direction)
	}
}

func (r *letterRepository) GetAll(ctx context.Context, direction model.LetterDirection) ([]*model.Letter, error) {
	table, column, err := letterTable(direction)
	if err != nil {
		return nil, err
	}

	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		fmt.Sprintf(`SELECT id, date, reference, %s, created_at FROM %s ORDER BY date DESC, id DESC`, column, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	letters := []*model.Letter{}
	for rows.Next() {
		l := &model.Letter{Direction: direction}
		if err := rows.Scan(&l.ID, &l.Date, &l.Reference, &l.Counterparty, &l.CreatedAt); err != nil {
			return nil, err
		}
		letters = append(letters, l)
	}
	return letters, rows.Err()
}

func (r *letterRepository) Create(ctx context.Context, l *model.Letter) error {
	table, column, err := letterTable(l.Direction)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (date, reference, %s)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, table, column)
	err = database.Conn(ctx, r.pool).QueryRow(ctx, query, l.Date, l.Reference, l.Counterparty).Scan(&l.ID, &l.CreatedAt)
	return translate(err)
}
