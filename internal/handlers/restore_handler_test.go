package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expenses/internal/errors"
	"expenses/internal/services"
)

// --- mock restore service ---

type mockRestoreService struct {
	startImportFn func(path string) (*services.RestoreJob, error)
	getJobFn      func(id string) (*services.RestoreJob, error)
	fixFn         func() error
}

func (m *mockRestoreService) StartImport(path string) (*services.RestoreJob, error) {
	if m.startImportFn != nil {
		return m.startImportFn(path)
	}
	return &services.RestoreJob{ID: "job", FilePath: path, Status: services.RestoreJobRunning, StartedAt: time.Now()}, nil
}

func (m *mockRestoreService) GetJob(id string) (*services.RestoreJob, error) {
	if m.getJobFn != nil {
		return m.getJobFn(id)
	}
	return &services.RestoreJob{ID: id, Status: services.RestoreJobSucceeded}, nil
}

func (m *mockRestoreService) RunImport(string) error { return nil }

func (m *mockRestoreService) FixIntegrity() error {
	if m.fixFn != nil {
		return m.fixFn()
	}
	return nil
}

var _ services.RestoreServicer = (*mockRestoreService)(nil)

func setupRestoreRouter(handler *RestoreHandler) *gin.Engine {
	r := gin.New()
	r.POST("/restore/financisto", handler.StartFinancistoImport)
	r.GET("/restore/jobs/:id", handler.GetJob)
	r.POST("/integrity/fix", handler.FixIntegrity)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRestoreHandler_StartFinancistoImport(t *testing.T) {
	t.Run("returns 202 with running job", func(t *testing.T) {
		handler := NewRestoreHandler(&mockRestoreService{})

		rec := postJSON(setupRestoreRouter(handler), "/restore/financisto", `{"file_path":"/backups/daily.backup"}`)
		if rec.Code != http.StatusAccepted {
			t.Errorf("expected 202, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 without file_path", func(t *testing.T) {
		handler := NewRestoreHandler(&mockRestoreService{})

		rec := postJSON(setupRestoreRouter(handler), "/restore/financisto", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 when an import is running", func(t *testing.T) {
		handler := NewRestoreHandler(&mockRestoreService{
			startImportFn: func(string) (*services.RestoreJob, error) {
				return nil, apperrors.ErrImportInProgress
			},
		})

		rec := postJSON(setupRestoreRouter(handler), "/restore/financisto", `{"file_path":"/backups/daily.backup"}`)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})
}

func TestRestoreHandler_GetJob(t *testing.T) {
	t.Run("returns 404 for unknown job", func(t *testing.T) {
		handler := NewRestoreHandler(&mockRestoreService{
			getJobFn: func(string) (*services.RestoreJob, error) {
				return nil, apperrors.ErrJobNotFound
			},
		})

		rec := serve(setupRestoreRouter(handler), "GET", "/restore/jobs/00000000-0000-7000-8000-000000000000")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestRestoreHandler_FixIntegrity(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewRestoreHandler(&mockRestoreService{})

		rec := postJSON(setupRestoreRouter(handler), "/integrity/fix", "")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("propagates service failure", func(t *testing.T) {
		handler := NewRestoreHandler(&mockRestoreService{
			fixFn: func() error { return apperrors.ErrInternalServer },
		})

		rec := postJSON(setupRestoreRouter(handler), "/integrity/fix", "")
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}
