package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
)

// ReportRepository runs the read-only aggregate queries behind the reports.
// Both groupings are by name: two classes or institutes with the same name
// are summed together.
type ReportRepository interface {
	// SumByClass totals a register per class name. Classes without rows and
	// rows without a class are left out.
	SumByClass(ctx context.Context, kind model.RegisterKind) ([]model.ClassTotal, error)
	// SumByInstitute totals a register per institute name. Every institute
	// appears, with 0 when it has no rows.
	SumByInstitute(ctx context.Context, kind model.RegisterKind) ([]model.InstituteTotal, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) SumByClass(ctx context.Context, kind model.RegisterKind) ([]model.ClassTotal, error) {
	table, err := registerTable(kind)
	if err != nil {
		return nil, err
	}

	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		`SELECT c.name, SUM(reg.amount)
		 FROM `+table+` reg
		 JOIN classes c ON c.id = reg.class_id
		 GROUP BY c.name
		 ORDER BY c.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []model.ClassTotal{}
	for rows.Next() {
		var t model.ClassTotal
		if err := rows.Scan(&t.ClassName, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *reportRepository) SumByInstitute(ctx context.Context, kind model.RegisterKind) ([]model.InstituteTotal, error) {
	table, err := registerTable(kind)
	if err != nil {
		return nil, err
	}

	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		`SELECT i.name, COALESCE(SUM(reg.amount), 0)
		 FROM institutes i
		 LEFT JOIN `+table+` reg ON reg.institute_id = i.id
		 GROUP BY i.name
		 ORDER BY i.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []model.InstituteTotal{}
	for rows.Next() {
		var t model.InstituteTotal
		if err := rows.Scan(&t.InstituteName, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
