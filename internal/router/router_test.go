package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/institute-backend/internal/config"
	"github.com/stemsi/institute-backend/internal/handler"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository/memory"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/service"
	"github.com/stemsi/institute-backend/internal/storage"
	"github.com/stemsi/institute-backend/internal/validator"
)

const pdfBody = "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n"

type envelope struct {
	Data       json.RawMessage      `json:"data"`
	Error      *response.ErrorBody  `json:"error"`
	Warnings   []string             `json:"warnings"`
	Pagination *response.Pagination `json:"pagination"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	return newTestRouterWith(t, nil)
}

// newTestRouterWith lets a test adjust the config before wiring.
func newTestRouterWith(t *testing.T, adjust func(*config.Config)) (*gin.Engine, *config.Config) {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{
		GinMode:          gin.TestMode,
		DocumentBackend:  config.DocumentBackendLocal,
		DocumentDir:      t.TempDir(),
		MaxDocumentBytes: 1 << 20,
	}
	if adjust != nil {
		adjust(cfg)
	}
	log := zerolog.Nop()
	store := memory.NewStore()

	eligibility := service.NewEligibilityService(store)
	reports := service.NewReportService(store.Reports, nil, log)
	documents := service.NewDocumentService(cfg, storage.NewLocalStore(cfg.DocumentDir))
	classes := service.NewClassService(store.Classes, reports)
	letters := service.NewLetterService(store.Letters)
	registers := service.NewRegisterService(store, eligibility, reports)

	handlers := &Handlers{
		Institute:  handler.NewInstituteHandler(service.NewInstituteService(store.Institutes, documents, reports, false, log)),
		Class:      handler.NewClassHandler(classes, eligibility),
		Section:    handler.NewSectionHandler(service.NewSectionService(store)),
		Assignment: handler.NewAssignmentHandler(service.NewAssignmentService(store, eligibility, log)),
		Dispatch:   handler.NewLetterHandler(model.LetterDispatch, letters),
		Receive:    handler.NewLetterHandler(model.LetterReceive, letters),
		Income:     handler.NewRegisterHandler(model.RegisterIncome, registers),
		Expense:    handler.NewRegisterHandler(model.RegisterExpense, registers),
		Share:      handler.NewShareHandler(service.NewShareService(store, eligibility, log)),
		Report:     handler.NewReportHandler(reports),
		Admin:      handler.NewAdminHandler(service.NewAdminService(store, 4, log)),
	}
	return SetupRouter(handlers, cfg, log), cfg
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

// mustCreate posts body and returns the id of the object stored under key.
func mustCreate(t *testing.T, r *gin.Engine, path, key string, body any) int {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data map[string]struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data[key].ID
}

// seedTriple creates institute Alpha (rate 500), class "Web Dev" with a
// three month section and a 40 student assignment.
func seedTriple(t *testing.T, r *gin.Engine) (instituteID, classID, sectionID int) {
	t.Helper()
	instituteID = mustCreate(t, r, "/api/v1/institutes", "institute", map[string]any{
		"name": "Alpha", "rate_per_student": 500,
	})
	classID = mustCreate(t, r, "/api/v1/classes", "class", map[string]any{"name": "Web Dev", "agency": "PSDA"})
	sectionID = mustCreate(t, r, "/api/v1/sections", "section", map[string]any{
		"class_id": classID, "name": "Morning", "start_date": "2024-01-01", "end_date": "2024-04-01",
	})
	mustCreate(t, r, "/api/v1/assignments", "assignment", map[string]any{
		"institute_id": instituteID, "class_id": classID, "section_id": sectionID, "total_students": 40,
	})
	return instituteID, classID, sectionID
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w, env := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestComputeAndSaveShare(t *testing.T) {
	r, _ := newTestRouter(t)
	instituteID, classID, sectionID := seedTriple(t, r)
	triple := map[string]any{"institute_id": instituteID, "class_id": classID, "section_id": sectionID}

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/shares/compute", triple)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var computed struct {
		Share struct {
			TotalStudents  int    `json:"total_students"`
			DurationMonths int    `json:"duration_months"`
			TotalAmount    string `json:"total_amount"`
		} `json:"share"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &computed))
	assert.Equal(t, 40, computed.Share.TotalStudents)
	assert.Equal(t, 3, computed.Share.DurationMonths)
	assert.Equal(t, "60000", computed.Share.TotalAmount)

	save := map[string]any{"institute_id": instituteID, "class_id": classID, "section_id": sectionID, "paid_date": "2024-05-01"}
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/shares", save)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/shares", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Shares []struct {
			TotalAmount string `json:"total_amount"`
			PaidDate    string `json:"paid_date"`
		} `json:"shares"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed.Shares, 1)
	assert.Equal(t, "60000", listed.Shares[0].TotalAmount)
	assert.Equal(t, "2024-05-01", listed.Shares[0].PaidDate)
}

func TestComputeShareWithoutAssignment(t *testing.T) {
	r, _ := newTestRouter(t)
	instituteID, classID, _ := seedTriple(t, r)

	otherSection := mustCreate(t, r, "/api/v1/sections", "section", map[string]any{
		"class_id": classID, "name": "Evening", "start_date": "2024-01-01", "end_date": "2024-02-01",
	})

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/shares/compute", map[string]any{
		"institute_id": instituteID, "class_id": classID, "section_id": otherSection,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrNoAssignment, env.Error.Code)
}

func TestAssignmentRejectsForeignSection(t *testing.T) {
	r, _ := newTestRouter(t)
	instituteID, _, sectionID := seedTriple(t, r)
	otherClass := mustCreate(t, r, "/api/v1/classes", "class", map[string]any{"name": "Graphics"})

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/assignments", map[string]any{
		"institute_id": instituteID, "class_id": otherClass, "section_id": sectionID, "total_students": 10,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrSectionClassMismatch, env.Error.Code)
}

func TestDuplicateAssignmentConflicts(t *testing.T) {
	r, _ := newTestRouter(t)
	instituteID, classID, sectionID := seedTriple(t, r)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/assignments", map[string]any{
		"institute_id": instituteID, "class_id": classID, "section_id": sectionID, "total_students": 5,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrConflict, env.Error.Code)
}

func TestReports(t *testing.T) {
	r, _ := newTestRouter(t)
	instituteID, classID, sectionID := seedTriple(t, r)
	betaID := mustCreate(t, r, "/api/v1/institutes", "institute", map[string]any{"name": "Beta", "rate_per_student": 100})

	entries := []struct {
		path string
		body map[string]any
	}{
		{"/api/v1/registers/income", map[string]any{"date": "2024-02-01", "amount": "1000", "institute_id": instituteID, "class_id": classID, "section_id": sectionID}},
		{"/api/v1/registers/income", map[string]any{"date": "2024-02-02", "amount": "250.50", "class_id": classID}},
		{"/api/v1/registers/expense", map[string]any{"date": "2024-02-03", "amount": "400", "institute_id": instituteID}},
		{"/api/v1/registers/expense", map[string]any{"date": "2024-02-04", "amount": "75", "institute_id": betaID}},
		{"/api/v1/registers/expense", map[string]any{"date": "2024-02-05", "amount": "30"}},
	}
	for _, e := range entries {
		w, _ := doJSON(t, r, http.MethodPost, e.path, e.body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/reports/income-by-class", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rows":[{"class_name":"Web Dev","total":"1250.5"}]}`, string(env.Data))

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/reports/profit-loss", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rows":[
		{"institute_name":"Alpha","income":"1000","expense":"400","profit_loss":"600"},
		{"institute_name":"Beta","income":"0","expense":"75","profit_loss":"-75"}
	]}`, string(env.Data))

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/reports/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		NetProfitLoss string `json:"net_profit_loss"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, "525", summary.NetProfitLoss)
}

func TestRegisterEntryRejectsMismatchedSection(t *testing.T) {
	r, _ := newTestRouter(t)
	_, _, sectionID := seedTriple(t, r)
	otherClass := mustCreate(t, r, "/api/v1/classes", "class", map[string]any{"name": "Graphics"})

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/registers/expense", map[string]any{
		"date": "2024-02-01", "amount": "10", "class_id": otherClass, "section_id": sectionID,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrSectionClassMismatch, env.Error.Code)
}

func TestLettersByDirection(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/letters/dispatch", map[string]any{
		"date": "2024-03-01", "reference": "OUT-1", "counterparty": "Ministry",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/letters/dispatch", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var letters struct {
		Letters []model.Letter `json:"letters"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &letters))
	require.Len(t, letters.Letters, 1)
	assert.Equal(t, "OUT-1", letters.Letters[0].Reference)

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/letters/receive", nil)
	require.NoError(t, json.Unmarshal(env.Data, &letters))
	assert.Empty(t, letters.Letters)
}

func TestClassSections(t *testing.T) {
	r, _ := newTestRouter(t)
	_, classID, sectionID := seedTriple(t, r)
	mustCreate(t, r, "/api/v1/classes", "class", map[string]any{"name": "Empty"})

	w, env := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/classes/%d/sections", classID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sections struct {
		Sections []model.Section `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sections))
	require.Len(t, sections.Sections, 1)
	assert.Equal(t, sectionID, sections.Sections[0].ID)

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/classes?with_sections=true", nil)
	var classes struct {
		Classes []model.Class `json:"classes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &classes))
	require.Len(t, classes.Classes, 1)
	assert.Equal(t, "Web Dev", classes.Classes[0].Name)

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/classes", nil)
	require.NoError(t, json.Unmarshal(env.Data, &classes))
	assert.Len(t, classes.Classes, 2)
}

func TestSectionDateRange(t *testing.T) {
	r, _ := newTestRouter(t)
	classID := mustCreate(t, r, "/api/v1/classes", "class", map[string]any{"name": "Web Dev"})

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/sections", map[string]any{
		"class_id": classID, "name": "Bad", "start_date": "2024-05-01", "end_date": "2024-01-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "end_date")
}

func TestValidationAndNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/classes", map[string]any{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrValidation, env.Error.Code)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/institutes/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrNotFound, env.Error.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/sections/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminsNeverExposePasswordHash(t *testing.T) {
	r, _ := newTestRouter(t)
	instituteID := mustCreate(t, r, "/api/v1/institutes", "institute", map[string]any{"name": "Alpha"})

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/admins", map[string]any{
		"name": "Rina", "user_id": "rina", "password": "secret123",
		"institute_permission": fmt.Sprintf("%d", instituteID),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, string(env.Data), "password")
	assert.Contains(t, string(env.Data), fmt.Sprintf(`"institute_permission":"%d"`, instituteID))

	w, env = doJSON(t, r, http.MethodPost, "/api/v1/admins", map[string]any{
		"name": "Other", "user_id": "rina", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "user_id")
}

func TestListsArePaginated(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, ref := range []string{"OUT-1", "OUT-2", "OUT-3"} {
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/letters/dispatch", map[string]any{
			"date": "2024-02-01", "reference": ref, "counterparty": "Ministry",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/letters/dispatch?page=2&per_page=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, env.Pagination)
	assert.Equal(t, response.Pagination{Page: 2, PerPage: 2, TotalItems: 3, TotalPages: 2}, *env.Pagination)
	var page struct {
		Letters []model.Letter `json:"letters"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Letters, 1)

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/letters/dispatch?page=9", nil)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Empty(t, page.Letters)
	assert.NotNil(t, page.Letters)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/institutes?per_page=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "per_page")
}

func TestAgreementStorageFailureIsAWarning(t *testing.T) {
	r, _ := newTestRouterWith(t, func(cfg *config.Config) {
		// A regular file where the document directory should be.
		blocker := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))
		cfg.DocumentDir = blocker
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Alpha"))
	fw, err := mw.CreateFormFile("agreement", "mou.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte(pdfBody))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/institutes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Warnings, 1)
	var data struct {
		Institute model.Institute `json:"institute"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Alpha", data.Institute.Name)
	assert.Nil(t, data.Institute.AgreementPath)
}

func TestAssignedSectionCannotChangeClass(t *testing.T) {
	r, _ := newTestRouter(t)
	_, _, sectionID := seedTriple(t, r)
	otherClass := mustCreate(t, r, "/api/v1/classes", "class", map[string]any{"name": "Design", "agency": "PSDA"})

	w, env := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/sections/%d", sectionID), map[string]any{
		"class_id": otherClass, "name": "Morning", "start_date": "2024-01-01", "end_date": "2024-04-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "class_id")
}

func TestInputLimitsAreValidationErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	instituteID, classID, sectionID := seedTriple(t, r)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/admins", map[string]any{
		"name": "Rina", "user_id": "rina", "password": strings.Repeat("é", 72),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields["password"], "72 bytes")

	w, env = doJSON(t, r, http.MethodPut, "/api/v1/assignments/1", map[string]any{
		"institute_id": instituteID, "class_id": classID, "section_id": sectionID,
		"total_students": int64(math.MaxInt32) + 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "total_students")

	w, env = doJSON(t, r, http.MethodPost, "/api/v1/institutes", map[string]any{
		"name": "Gamma", "rate_per_student": "0.125",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "rate_per_student")
}

func TestInstituteMultipartUpload(t *testing.T) {
	r, cfg := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Alpha Institute"))
	require.NoError(t, mw.WriteField("rate_per_student", "500"))
	require.NoError(t, mw.WriteField("agreement_date", "2024-01-15"))
	fw, err := mw.CreateFormFile("agreement", "mou.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte(pdfBody))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/institutes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var result struct {
		Institute struct {
			AgreementDate string `json:"agreement_date"`
			AgreementPath string `json:"agreement_path"`
		} `json:"institute"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "2024-01-15", result.Institute.AgreementDate)
	assert.Equal(t, "/documents/agreements/Alpha_Institute_mou.pdf", result.Institute.AgreementPath)

	stored, err := os.ReadFile(filepath.Join(cfg.DocumentDir, "agreements", "Alpha_Institute_mou.pdf"))
	require.NoError(t, err)
	assert.Equal(t, pdfBody, string(stored))

	get := httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, result.Institute.AgreementPath, nil))
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, "public, max-age=300", get.Header().Get("Cache-Control"))
}

func TestInstituteUploadRejectsNonPDF(t *testing.T) {
	r, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Alpha"))
	fw, err := mw.CreateFormFile("agreement", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("just some text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/institutes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrUnsupportedFile, env.Error.Code)

	_, list := doJSON(t, r, http.MethodGet, "/api/v1/institutes", nil)
	assert.JSONEq(t, `{"institutes":[]}`, string(list.Data))
}
