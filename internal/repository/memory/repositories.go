package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

// sortedValues returns the map values ordered by less.
func sortedValues[T any](m map[int]T, less func(a, b T) bool) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return less(*out[i], *out[j]) })
	return out
}

// ─── Institutes ──────────────────────────────────────────────────────────

type instituteRepo struct{ db *DB }

func (r *instituteRepo) GetAll(_ context.Context) ([]*model.Institute, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return sortedValues(r.db.t.institutes, func(a, b model.Institute) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	}), nil
}

func (r *instituteRepo) GetByID(_ context.Context, id int) (*model.Institute, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	inst, ok := r.db.t.institutes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &inst, nil
}

func (r *instituteRepo) Create(_ context.Context, inst *model.Institute) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inst.ID = r.db.nextID()
	inst.CreatedAt, inst.UpdatedAt = now(), now()
	r.db.t.institutes[inst.ID] = *inst
	return nil
}

func (r *instituteRepo) Update(_ context.Context, inst *model.Institute) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.t.institutes[inst.ID]
	if !ok {
		return repository.ErrNotFound
	}
	inst.CreatedAt, inst.UpdatedAt = current.CreatedAt, now()
	r.db.t.institutes[inst.ID] = *inst
	return nil
}

// ─── Classes ─────────────────────────────────────────────────────────────

type classRepo struct{ db *DB }

func classLess(a, b model.Class) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

func (r *classRepo) GetAll(_ context.Context) ([]*model.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return sortedValues(r.db.t.classes, classLess), nil
}

func (r *classRepo) GetWithSections(_ context.Context) ([]*model.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	withSections := map[int]model.Class{}
	for _, s := range r.db.t.sections {
		if c, ok := r.db.t.classes[s.ClassID]; ok {
			withSections[c.ID] = c
		}
	}
	return sortedValues(withSections, classLess), nil
}

func (r *classRepo) GetByID(_ context.Context, id int) (*model.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.t.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *classRepo) Create(_ context.Context, c *model.Class) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID = r.db.nextID()
	c.CreatedAt, c.UpdatedAt = now(), now()
	r.db.t.classes[c.ID] = *c
	return nil
}

func (r *classRepo) Update(_ context.Context, c *model.Class) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.t.classes[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	c.CreatedAt, c.UpdatedAt = current.CreatedAt, now()
	r.db.t.classes[c.ID] = *c
	return nil
}

// ─── Sections ────────────────────────────────────────────────────────────

type sectionRepo struct{ db *DB }

func sectionLess(a, b model.Section) bool {
	if !a.StartDate.Equal(b.StartDate.Time) {
		return a.StartDate.Before(b.StartDate)
	}
	return a.ID < b.ID
}

func (r *sectionRepo) GetAll(_ context.Context) ([]*model.Section, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return sortedValues(r.db.t.sections, sectionLess), nil
}

func (r *sectionRepo) GetByClass(_ context.Context, classID int) ([]*model.Section, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	matching := map[int]model.Section{}
	for id, s := range r.db.t.sections {
		if s.ClassID == classID {
			matching[id] = s
		}
	}
	return sortedValues(matching, sectionLess), nil
}

func (r *sectionRepo) GetByID(_ context.Context, id int) (*model.Section, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.t.sections[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *sectionRepo) Create(_ context.Context, s *model.Section) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s.ID = r.db.nextID()
	s.CreatedAt, s.UpdatedAt = now(), now()
	r.db.t.sections[s.ID] = *s
	return nil
}

func (r *sectionRepo) Update(_ context.Context, s *model.Section) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.t.sections[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	s.CreatedAt, s.UpdatedAt = current.CreatedAt, now()
	r.db.t.sections[s.ID] = *s
	return nil
}

func (r *sectionRepo) CountReferences(_ context.Context, id int) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	n := 0
	for _, a := range r.db.t.assignments {
		if a.SectionID == id {
			n++
		}
	}
	for _, e := range r.db.t.registers {
		if e.SectionID != nil && *e.SectionID == id {
			n++
		}
	}
	for _, sh := range r.db.t.shares {
		if sh.SectionID == id {
			n++
		}
	}
	return n, nil
}

// ─── Assignments ─────────────────────────────────────────────────────────

type assignmentRepo struct{ db *DB }

func (r *assignmentRepo) GetAll(_ context.Context) ([]*model.Assignment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return sortedValues(r.db.t.assignments, func(a, b model.Assignment) bool { return a.ID < b.ID }), nil
}

func (r *assignmentRepo) GetByID(_ context.Context, id int) (*model.Assignment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.db.t.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *assignmentRepo) FindByTriple(_ context.Context, instituteID, classID, sectionID int) (*model.Assignment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, a := range r.db.t.assignments {
		if a.InstituteID == instituteID && a.ClassID == classID && a.SectionID == sectionID {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

// tripleTaken mirrors the unique constraint on (institute_id, class_id, section_id).
func (r *assignmentRepo) tripleTaken(a *model.Assignment) bool {
	for id, other := range r.db.t.assignments {
		if id != a.ID && other.InstituteID == a.InstituteID && other.ClassID == a.ClassID && other.SectionID == a.SectionID {
			return true
		}
	}
	return false
}

func (r *assignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.tripleTaken(a) {
		return repository.ErrConflict
	}
	a.ID = r.db.nextID()
	a.CreatedAt, a.UpdatedAt = now(), now()
	r.db.t.assignments[a.ID] = *a
	return nil
}

func (r *assignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.t.assignments[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.tripleTaken(a) {
		return repository.ErrConflict
	}
	a.CreatedAt, a.UpdatedAt = current.CreatedAt, now()
	r.db.t.assignments[a.ID] = *a
	return nil
}

// ─── Letters ─────────────────────────────────────────────────────────────

type letterRepo struct{ db *DB }

func (r *letterRepo) GetAll(_ context.Context, direction model.LetterDirection) ([]*model.Letter, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("unknown letter direction %q", direction)
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	matching := map[int]model.Letter{}
	for id, l := range r.db.t.letters {
		if l.Direction == direction {
			matching[id] = l
		}
	}
	return sortedValues(matching, func(a, b model.Letter) bool {
		if !a.Date.Equal(b.Date.Time) {
			return b.Date.Before(a.Date)
		}
		return a.ID > b.ID
	}), nil
}

func (r *letterRepo) Create(_ context.Context, l *model.Letter) error {
	if !l.Direction.Valid() {
		return fmt.Errorf("unknown letter direction %q", l.Direction)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	l.ID = r.db.nextID()
	l.CreatedAt = now()
	r.db.t.letters[l.ID] = *l
	return nil
}

// ─── Registers ───────────────────────────────────────────────────────────

type registerRepo struct{ db *DB }

func (r *registerRepo) GetAll(_ context.Context, kind model.RegisterKind) ([]*model.RegisterEntry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown register kind %q", kind)
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	matching := map[int]model.RegisterEntry{}
	for id, e := range r.db.t.registers {
		if e.Kind == kind {
			matching[id] = e
		}
	}
	return sortedValues(matching, func(a, b model.RegisterEntry) bool {
		if !a.Date.Equal(b.Date.Time) {
			return b.Date.Before(a.Date)
		}
		return a.ID > b.ID
	}), nil
}

func (r *registerRepo) Create(_ context.Context, e *model.RegisterEntry) error {
	if !e.Kind.Valid() {
		return fmt.Errorf("unknown register kind %q", e.Kind)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e.ID = r.db.nextID()
	e.CreatedAt = now()
	r.db.t.registers[e.ID] = *e
	return nil
}

// ─── Shares ──────────────────────────────────────────────────────────────

type shareRepo struct{ db *DB }

func (r *shareRepo) GetAll(_ context.Context) ([]*model.InstituteShare, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return sortedValues(r.db.t.shares, func(a, b model.InstituteShare) bool { return a.ID > b.ID }), nil
}

func (r *shareRepo) Create(_ context.Context, s *model.InstituteShare) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s.ID = r.db.nextID()
	s.CreatedAt = now()
	r.db.t.shares[s.ID] = *s
	return nil
}

// ─── Admins ──────────────────────────────────────────────────────────────

type adminRepo struct{ db *DB }

func (r *adminRepo) GetAll(_ context.Context) ([]*model.Admin, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return sortedValues(r.db.t.admins, func(a, b model.Admin) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	}), nil
}

func (r *adminRepo) GetByID(_ context.Context, id int) (*model.Admin, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.db.t.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *adminRepo) GetByUserID(_ context.Context, userID string) (*model.Admin, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, a := range r.db.t.admins {
		if a.UserID == userID {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *adminRepo) userIDTaken(a *model.Admin) bool {
	for id, other := range r.db.t.admins {
		if id != a.ID && other.UserID == a.UserID {
			return true
		}
	}
	return false
}

func (r *adminRepo) Create(_ context.Context, a *model.Admin) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.userIDTaken(a) {
		return repository.ErrConflict
	}
	a.ID = r.db.nextID()
	a.CreatedAt, a.UpdatedAt = now(), now()
	r.db.t.admins[a.ID] = *a
	return nil
}

func (r *adminRepo) Update(_ context.Context, a *model.Admin) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.t.admins[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.userIDTaken(a) {
		return repository.ErrConflict
	}
	a.CreatedAt, a.UpdatedAt = current.CreatedAt, now()
	r.db.t.admins[a.ID] = *a
	return nil
}

// ─── Reports ─────────────────────────────────────────────────────────────

type reportRepo struct{ db *DB }

func (r *reportRepo) SumByClass(_ context.Context, kind model.RegisterKind) ([]model.ClassTotal, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown register kind %q", kind)
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	sums := map[string]decimal.Decimal{}
	for _, e := range r.db.t.registers {
		if e.Kind != kind || e.ClassID == nil {
			continue
		}
		c, ok := r.db.t.classes[*e.ClassID]
		if !ok {
			continue
		}
		sums[c.Name] = sums[c.Name].Add(e.Amount)
	}

	totals := make([]model.ClassTotal, 0, len(sums))
	for name, total := range sums {
		totals = append(totals, model.ClassTotal{ClassName: name, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].ClassName < totals[j].ClassName })
	return totals, nil
}

func (r *reportRepo) SumByInstitute(_ context.Context, kind model.RegisterKind) ([]model.InstituteTotal, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown register kind %q", kind)
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	sums := map[string]decimal.Decimal{}
	for _, inst := range r.db.t.institutes {
		if _, ok := sums[inst.Name]; !ok {
			sums[inst.Name] = decimal.Zero
		}
	}
	for _, e := range r.db.t.registers {
		if e.Kind != kind || e.InstituteID == nil {
			continue
		}
		inst, ok := r.db.t.institutes[*e.InstituteID]
		if !ok {
			continue
		}
		sums[inst.Name] = sums[inst.Name].Add(e.Amount)
	}

	totals := make([]model.InstituteTotal, 0, len(sums))
	for name, total := range sums {
		totals = append(totals, model.InstituteTotal{InstituteName: name, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].InstituteName < totals[j].InstituteName })
	return totals, nil
}
