package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eduqg/eduqg-backend/config"
	"github.com/eduqg/eduqg-backend/models"
	"github.com/eduqg/eduqg-backend/routes"
	"github.com/eduqg/eduqg-backend/services"
)

const testJWTSecret = "test-secret"

// stubLLM cans the model response so handler tests never hit the network.
type stubLLM struct {
	resp string
	err  error
}

func (s *stubLLM) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	return s.resp, s.err
}

func newTestServer(t *testing.T, llm services.TextGenerator) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.EBook{}, &models.GeneratedQuestion{}))

	cfg := &config.Config{
		JWTSecret: testJWTSecret,
		UploadDir: t.TempDir(),
	}
	r := routes.SetupRouter(gin.New(), db, cfg, services.NewQuestionGenerator(llm))
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "secret123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func uploadFile(t *testing.T, r *gin.Engine, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/ebooks/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func uploadTXT(t *testing.T, r *gin.Engine, token, filename, content string) string {
	t.Helper()
	w := uploadFile(t, r, token, filename, []byte(content))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ebook struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &ebook)
	require.NotEmpty(t, ebook.ID)
	return ebook.ID
}

func generateQuestions(t *testing.T, r *gin.Engine, token, ebookID string, count int) []map[string]any {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/questions/generate", token, gin.H{
		"ebook_id":       ebookID,
		"question_types": []string{"Short Answer"},
		"difficulty":     "Medium",
		"num_questions":  count,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var questions []map[string]any
	decodeBody(t, w, &questions)
	return questions
}
