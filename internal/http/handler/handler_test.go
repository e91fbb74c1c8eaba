package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartsuite/internal/auth"
	"smartsuite/internal/http/middleware"
	"smartsuite/internal/model"
	"smartsuite/internal/service"
	serviceMocks "smartsuite/internal/service/mocks"
)

const testUserID = "9f8e7d6c-5b4a-3c2d-1e0f-a1b2c3d4e5f6"

// withClaims injects a fixed principal, standing in for the bearer-token
// middleware in route-level tests.
func withClaims(c *fiber.Ctx) error {
	c.Locals(middleware.UserClaimsKey, &auth.UserClaims{
		UserID: testUserID,
		Name:   "Pat",
		Email:  "pat@example.com",
	})
	return c.Next()
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateRecord(t *testing.T) {
	mockSvc := new(serviceMocks.MockRegisterService)
	app := fiber.New()
	app.Post("/api/registers/:module", withClaims, CreateRecord(mockSvc))

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, "supplier", service.RecordInput{
			Title:  "Acme Ltd",
			Status: "approved",
		}, testUserID).Return(&model.RegisterRecord{ID: "rec-1", Title: "Acme Ltd"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/registers/supplier",
			strings.NewReader(`{"title":"Acme Ltd","status":"approved"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var rec model.RegisterRecord
		json.NewDecoder(resp.Body).Decode(&rec)
		assert.Equal(t, "rec-1", rec.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown module", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, "payroll", mock.Anything, testUserID).
			Return(nil, service.ErrInvalidModule).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/registers/payroll",
			strings.NewReader(`{"title":"x"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	})
}

func TestListRecords(t *testing.T) {
	mockSvc := new(serviceMocks.MockRegisterService)
	app := fiber.New()
	app.Get("/api/registers/:module", withClaims, ListRecords(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "legal", true, 5, 0).
			Return(&service.RecordListResult{
				Items: []model.RegisterRecord{{ID: "rec-1"}},
				Total: 1,
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/registers/legal?limit=5&include_archived=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.RecordListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/registers/legal?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteRecord(t *testing.T) {
	mockSvc := new(serviceMocks.MockRegisterService)
	app := fiber.New()
	app.Delete("/api/registers/:module/:id", withClaims, DeleteRecord(mockSvc))

	id := uuid.New().String()

	t.Run("deleted", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "employee", id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/registers/employee/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/registers/employee/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing record", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "employee", id).
			Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/registers/employee/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestArchiveRecord(t *testing.T) {
	mockSvc := new(serviceMocks.MockRegisterService)
	app := fiber.New()
	app.Post("/api/registers/:module/:id/archive", withClaims, ArchiveRecord(mockSvc))
	app.Post("/api/registers/:module/:id/restore", withClaims, RestoreRecord(mockSvc))

	id := uuid.New().String()

	mockSvc.On("Archive", mock.Anything, "supplier", id, testUserID).Return(nil).Once()
	req := httptest.NewRequest(http.MethodPost, "/api/registers/supplier/"+id+"/archive", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	mockSvc.On("Restore", mock.Anything, "supplier", id, testUserID).Return(nil).Once()
	req = httptest.NewRequest(http.MethodPost, "/api/registers/supplier/"+id+"/restore", nil)
	resp, _ = app.Test(req)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	mockSvc.AssertExpectations(t)
}

func multipartUpload(t *testing.T, fields map[string]string, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/registers/:module/:id/documents", withClaims, UploadDocument(mockSvc))

	parentID := uuid.New().String()

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
			return in.Module == "supplier" && in.ParentID == parentID &&
				in.Title == "Insurance certificate" && in.Filename == "cert.pdf" &&
				in.UserID == testUserID && in.ExpiryDate != nil
		})).Return(&model.Document{ID: "doc-1"}, nil).Once()

		buf, ct := multipartUpload(t, map[string]string{
			"title":       "Insurance certificate",
			"expiry_date": "2026-09-30",
		}, "cert.pdf", "pdf bytes")

		req := httptest.NewRequest(http.MethodPost, "/api/registers/supplier/"+parentID+"/documents", buf)
		req.Header.Set(fiber.HeaderContentType, ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		buf := new(bytes.Buffer)
		w := multipart.NewWriter(buf)
		require.NoError(t, w.WriteField("title", "x"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/registers/supplier/"+parentID+"/documents", buf)
		req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "FILE_REQUIRED", body.Error.Code)
	})

	t.Run("oversized file maps to 413", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, mock.Anything).
			Return(nil, service.ErrFileTooLarge).Once()

		buf, ct := multipartUpload(t, map[string]string{"title": "big"}, "big.bin", "x")

		req := httptest.NewRequest(http.MethodPost, "/api/registers/supplier/"+parentID+"/documents", buf)
		req.Header.Set(fiber.HeaderContentType, ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "FILE_TOO_LARGE", body.Error.Code)
	})

	t.Run("bad expiry date", func(t *testing.T) {
		buf, ct := multipartUpload(t, map[string]string{
			"title":       "x",
			"expiry_date": "next month",
		}, "f.txt", "x")

		req := httptest.NewRequest(http.MethodPost, "/api/registers/supplier/"+parentID+"/documents", buf)
		req.Header.Set(fiber.HeaderContentType, ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_DATE", body.Error.Code)
	})
}

func TestUploadDocumentBodyLimitHeadroom(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
		BodyLimit:    2 * model.MaxUploadSize,
	})
	app.Post("/api/registers/:module/:id/documents", withClaims, UploadDocument(mockSvc))

	parentID := uuid.New().String()

	// A file one megabyte over the cap must reach the service and come
	// back as a structured size-limit error, not a transport abort.
	mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		return in.Size > model.MaxUploadSize
	})).Return(nil, service.ErrFileTooLarge).Once()

	buf, ct := multipartUpload(t, map[string]string{"title": "big"},
		"big.bin", strings.Repeat("a", model.MaxUploadSize+1<<20))

	req := httptest.NewRequest(http.MethodPost, "/api/registers/supplier/"+parentID+"/documents", buf)
	req.Header.Set(fiber.HeaderContentType, ct)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	var body errorPayload
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "FILE_TOO_LARGE", body.Error.Code)
	mockSvc.AssertExpectations(t)
}

func TestErrorHandlerEntityTooLarge(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Post("/upload", func(c *fiber.Ctx) error {
		return fiber.ErrRequestEntityTooLarge
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	var body errorPayload
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "FILE_TOO_LARGE", body.Error.Code)
}

func TestAssignDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Put("/api/documents/:id/assignee", withClaims, AssignDocument(mockSvc))

	docID := uuid.New().String()
	assigneeID := uuid.New().String()

	t.Run("assigned", func(t *testing.T) {
		mockSvc.On("Assign", mock.Anything, docID, assigneeID).
			Return(&model.Document{ID: docID, AssignedTo: &assigneeID}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/documents/"+docID+"/assignee",
			strings.NewReader(`{"user_id":"`+assigneeID+`"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unassigned with empty user id", func(t *testing.T) {
		mockSvc.On("Assign", mock.Anything, docID, "").
			Return(&model.Document{ID: docID}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/documents/"+docID+"/assignee",
			strings.NewReader(`{"user_id":""}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown assignee", func(t *testing.T) {
		mockSvc.On("Assign", mock.Anything, docID, assigneeID).
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/documents/"+docID+"/assignee",
			strings.NewReader(`{"user_id":"`+assigneeID+`"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/:id", withClaims, GetDocument(mockSvc))

	docID := uuid.New().String()

	mockSvc.On("Get", mock.Anything, docID).Return(&service.DocumentWithVersions{
		Document: model.Document{ID: docID},
		Versions: []model.DocumentVersion{{Label: "2"}, {Label: "1"}},
		Latest:   &model.DocumentVersion{Label: "2"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/documents/"+docID, nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result service.DocumentWithVersions
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result.Versions, 2)
	assert.Equal(t, "2", result.Latest.Label)
	mockSvc.AssertExpectations(t)
}

func TestDownloadDocumentPresign(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/:id/download", withClaims, DownloadDocument(mockSvc))

	docID := uuid.New().String()
	mockSvc.On("DownloadURL", mock.Anything, docID).
		Return("https://minio.local/signed", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/documents/"+docID+"/download?presign=true", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]string
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "https://minio.local/signed", result["url"])
	mockSvc.AssertExpectations(t)
}

func TestSettingsEndpoints(t *testing.T) {
	mockSvc := new(serviceMocks.MockSettingsService)
	app := fiber.New()
	app.Get("/api/settings/notifications", withClaims, GetSettings(mockSvc))
	app.Put("/api/settings/notifications", withClaims, UpdateSettings(mockSvc))

	t.Run("get resolves defaults", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, testUserID).
			Return(model.DefaultNotificationSettings(testUserID), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/settings/notifications", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var s model.NotificationSettings
		json.NewDecoder(resp.Body).Decode(&s)
		assert.True(t, s.Enabled)
		assert.True(t, s.Notify30)
	})

	t.Run("update", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, testUserID, service.SettingsUpdate{
			Enabled: true, Notify30: false, Notify14: true, Notify7: true, Notify1: true,
		}).Return(model.NotificationSettings{UserID: testUserID, Enabled: true}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/settings/notifications",
			strings.NewReader(`{"enabled":true,"notify_30":false,"notify_14":true,"notify_7":true,"notify_1":true}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRunSweep(t *testing.T) {
	mockSw := new(serviceMocks.MockSweeper)
	app := fiber.New()
	app.Post("/api/notifications/sweep", withClaims, RunSweep(mockSw))

	mockSw.On("Run", mock.Anything).
		Return(service.SweepResult{Scanned: 3, Sent: 1, Skipped: 2}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/notifications/sweep", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res service.SweepResult
	json.NewDecoder(resp.Body).Decode(&res)
	assert.Equal(t, 1, res.Sent)
	mockSw.AssertExpectations(t)
}

func TestExportRegister(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Get("/api/registers/:module/export", withClaims, ExportRegister(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("ExportRegister", mock.Anything, "skill").
			Return([]byte("xlsx bytes"), "skill_register_20260310_090000.xlsx", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/registers/skill/export", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "skill_register_")
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown module", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/registers/payroll/export", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	auth.SetSecret("test-secret")

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	user := &model.User{
		ID:           testUserID,
		Name:         "Pat",
		Email:        "pat@example.com",
		PasswordHash: hash,
		Active:       true,
	}

	newApp := func(users *mockUsers) *fiber.App {
		app := fiber.New()
		app.Post("/api/login", Login(users))
		return app
	}

	t.Run("valid credentials", func(t *testing.T) {
		users := &mockUsers{byEmail: map[string]*model.User{"pat@example.com": user}}
		app := newApp(users)

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"pat@example.com","password":"s3cret"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		require.NotEmpty(t, body.Token)

		claims, err := auth.ValidateToken(body.Token)
		require.NoError(t, err)
		assert.Equal(t, testUserID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &mockUsers{byEmail: map[string]*model.User{"pat@example.com": user}}
		app := newApp(users)

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"pat@example.com","password":"nope"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		app := newApp(&mockUsers{byEmail: map[string]*model.User{}})

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"ghost@example.com","password":"s3cret"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

type mockUsers struct {
	byEmail map[string]*model.User
}

func (m *mockUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}
