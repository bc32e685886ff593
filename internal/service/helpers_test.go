package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/institute-backend/internal/config"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
	"github.com/stemsi/institute-backend/internal/repository/memory"
)

// pdfHeader is enough for content sniffing to report application/pdf.
const pdfHeader = "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n"

type fakeDocumentStore struct {
	stored map[string][]byte
	err    error
}

func (f *fakeDocumentStore) Store(_ context.Context, name string, r io.Reader, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.stored == nil {
		f.stored = map[string][]byte{}
	}
	f.stored[name] = data
	return "/documents/" + name, nil
}

type testEnv struct {
	store       *repository.Store
	docs        *fakeDocumentStore
	eligibility *EligibilityService
	shares      *ShareService
	reports     *ReportService
	institutes  *InstituteService
	classes     ClassService
	sections    SectionService
	assignments AssignmentService
	registers   RegisterService
	letters     LetterService
	admins      *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, &fakeDocumentStore{}, false)
}

func newTestEnvWith(t *testing.T, docs *fakeDocumentStore, strict bool) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	cfg := &config.Config{MaxDocumentBytes: 1024}

	eligibility := NewEligibilityService(store)
	reports := NewReportService(store.Reports, nil, log)
	return &testEnv{
		store:       store,
		docs:        docs,
		eligibility: eligibility,
		shares:      NewShareService(store, eligibility, log),
		reports:     reports,
		institutes:  NewInstituteService(store.Institutes, NewDocumentService(cfg, docs), reports, strict, log),
		classes:     NewClassService(store.Classes, reports),
		sections:    NewSectionService(store),
		assignments: NewAssignmentService(store, eligibility, log),
		registers:   NewRegisterService(store, eligibility, reports),
		letters:     NewLetterService(store.Letters),
		admins:      NewAdminService(store, 4, log),
	}
}

func (e *testEnv) institute(t *testing.T, name string, rate int64) *model.Institute {
	t.Helper()
	res, err := e.institutes.Create(context.Background(), &model.InstituteRequest{
		Name:           name,
		RatePerStudent: decimal.NewFromInt(rate),
	}, nil)
	require.NoError(t, err)
	return res.Institute
}

func (e *testEnv) class(t *testing.T, name string) *model.Class {
	t.Helper()
	c, err := e.classes.CreateClass(context.Background(), &model.ClassRequest{Name: name, Agency: "Agency"})
	require.NoError(t, err)
	return c
}

func (e *testEnv) section(t *testing.T, classID int, start, end model.Date) *model.Section {
	t.Helper()
	s, err := e.sections.CreateSection(context.Background(), &model.SectionRequest{
		ClassID:   classID,
		Name:      "Batch",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return s
}

func (e *testEnv) assign(t *testing.T, instituteID, classID, sectionID, students int) *model.Assignment {
	t.Helper()
	a, err := e.assignments.CreateAssignment(context.Background(), &model.AssignmentRequest{
		InstituteID:   instituteID,
		ClassID:       classID,
		SectionID:     sectionID,
		TotalStudents: students,
	})
	require.NoError(t, err)
	return a
}

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(y, m, d)
}

func intPtr(v int) *int { return &v }

var errBackendDown = errors.New("backend down")
