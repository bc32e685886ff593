package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/institute-backend/internal/database"
)

// Store groups every repository together with the Transactor that scopes
// them. The postgres and memory backends both produce one.
type Store struct {
	Institutes  InstituteRepository
	Classes     ClassRepository
	Sections    SectionRepository
	Assignments AssignmentRepository
	Letters     LetterRepository
	Registers   RegisterRepository
	Shares      ShareRepository
	Admins      AdminRepository
	Reports     ReportRepository
	Tx          database.Transactor
}

// NewPostgresStore wires every repository to the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Institutes:  NewInstituteRepository(pool),
		Classes:     NewClassRepository(pool),
		Sections:    NewSectionRepository(pool),
		Assignments: NewAssignmentRepository(pool),
		Letters:     NewLetterRepository(pool),
		Registers:   NewRegisterRepository(pool),
		Shares:      NewShareRepository(pool),
		Admins:      NewAdminRepository(pool),
		Reports:     NewReportRepository(pool),
		Tx:          database.NewPgxTransactor(pool),
	}
}
