package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apikeydomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/apikey/domain"
	apikeyrepository "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/apikey/repository"
	apikeyservice "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/apikey/service"
	clientdomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client/domain"
	clientrepository "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client/repository"
	clientservice "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client/service"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/config"
	mailtemplatedomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/domain"
	mailtemplaterepository "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/repository"
	mailtemplateservice "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/service"
	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	modulerepository "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/repository"
	moduleservice "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/service"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
	recordrepository "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/repository"
	recordservice "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/service"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&clientdomain.Client{},
		&moduledomain.ModuleSchema{},
		&recorddomain.Record{},
		&apikeydomain.APIKey{},
		&mailtemplatedomain.MailTemplate{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	clientSvc := clientservice.New(clientservice.Params{
		DB: conn, Log: log, GenID: node, Repo: clientrepository.Provide(),
	})
	moduleSvc := moduleservice.New(moduleservice.Params{
		DB: conn, Log: log, GenID: node, Repo: modulerepository.Provide(),
	})
	recordSvc := recordservice.New(recordservice.Params{
		DB: conn, Log: log, GenID: node,
		Repo:       recordrepository.Provide(),
		ModuleRepo: modulerepository.Provide(),
	})
	apiKeySvc := apikeyservice.New(apikeyservice.Params{
		DB: conn, Log: log, GenID: node, Repo: apikeyrepository.Provide(),
	})
	mailTemplateSvc := mailtemplateservice.New(mailtemplateservice.Params{
		DB: conn, Log: log, GenID: node, Repo: mailtemplaterepository.Provide(),
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:             engine,
		Cfg:             config.Config{HTTPAddr: ":0"},
		DB:              conn,
		GenID:           node,
		ClientSvc:       clientSvc,
		ClientRepo:      clientrepository.Provide(),
		ModuleSvc:       moduleSvc,
		RecordSvc:       recordSvc,
		APIKeySvc:       apiKeySvc,
		MailTemplateSvc: mailTemplateSvc,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	s.Engine().ServeHTTP(recorder, req)

	var decoded map[string]any
	if len(recorder.Body.Bytes()) > 0 {
		_ = json.Unmarshal(recorder.Body.Bytes(), &decoded)
	}
	return recorder, decoded
}

func seedClient(t *testing.T, s *Server, name string) (clientID, clientSlug string) {
	t.Helper()
	rec, body := doJSON(t, s, http.MethodPost, "/api/clients", gin.H{
		"name":          name,
		"contact_email": "ops@example.com",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return body["id"].(string), body["slug"].(string)
}

func seedModule(t *testing.T, s *Server, clientID string) (moduleID, moduleSlug string) {
	t.Helper()
	rec, body := doJSON(t, s, http.MethodPost, "/api/clients/"+clientID+"/modules", gin.H{
		"name": "Contact Requests",
		"fields": []gin.H{
			{"label": "Name", "type": "text", "required": true},
			{"label": "Email", "type": "email"},
			{"label": "Status", "type": "select", "options": []string{"New", "Won"}},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return body["id"].(string), body["slug"].(string)
}

func generateKey(t *testing.T, s *Server, clientID string) string {
	t.Helper()
	rec, body := doJSON(t, s, http.MethodPost, "/api/clients/"+clientID+"/api-key/generate", nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return body["api_key"].(string)
}

func TestModuleLifecycle(t *testing.T) {
	s := newTestServer(t)
	clientID, _ := seedClient(t, s, "Acme")
	moduleID, moduleSlug := seedModule(t, s, clientID)

	assert.Equal(t, "contact-requests", moduleSlug)

	rec, body := doJSON(t, s, http.MethodGet, "/api/clients/"+clientID+"/modules", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["modules"].([]any), 1)

	rec, _ = doJSON(t, s, http.MethodDelete, "/api/clients/"+clientID+"/modules/"+moduleID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doJSON(t, s, http.MethodGet, "/api/clients/"+clientID+"/modules/"+moduleID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadsModuleProtectedFromDeletion(t *testing.T) {
	s := newTestServer(t)
	clientID, _ := seedClient(t, s, "Acme")

	rec, body := doJSON(t, s, http.MethodPost, "/api/clients/"+clientID+"/leads", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	leadsID := body["id"].(string)

	rec, _ = doJSON(t, s, http.MethodDelete, "/api/clients/"+clientID+"/modules/"+leadsID, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublicRecordFlow(t *testing.T) {
	s := newTestServer(t)
	clientID, clientSlug := seedClient(t, s, "Acme")
	_, moduleSlug := seedModule(t, s, clientID)
	apiKey := generateKey(t, s, clientID)

	publicPath := fmt.Sprintf("/api/v1/public/%s/%s/records", clientSlug, moduleSlug)
	keyHeader := map[string]string{HeaderAPIKey: apiKey}

	// No key.
	rec, _ := doJSON(t, s, http.MethodPost, publicPath, gin.H{"name": "Ada"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid create.
	rec, body := doJSON(t, s, http.MethodPost, publicPath, gin.H{
		"name":   "Ada",
		"email":  "ada@example.com",
		"status": "New",
	}, keyHeader)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Ada", body["data"].(map[string]any)["name"])

	// Validation errors come back per field.
	rec, body = doJSON(t, s, http.MethodPost, publicPath, gin.H{
		"email":  "nope",
		"status": "Maybe",
	}, keyHeader)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "validation_error", errObj["type"])
	assert.GreaterOrEqual(t, len(errObj["errors"].([]any)), 3)

	// List sees the created record.
	rec, body = doJSON(t, s, http.MethodGet, publicPath, nil, keyHeader)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["page_info"].(map[string]any)["total"])
}

func TestPublicKeyScopedToClient(t *testing.T) {
	s := newTestServer(t)
	clientID, _ := seedClient(t, s, "Acme")
	_, moduleSlug := seedModule(t, s, clientID)
	apiKey := generateKey(t, s, clientID)

	_, otherSlug := seedClient(t, s, "Rival")

	path := fmt.Sprintf("/api/v1/public/%s/%s/records", otherSlug, moduleSlug)
	rec, _ := doJSON(t, s, http.MethodGet, path, nil, map[string]string{HeaderAPIKey: apiKey})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRevokedKeyRejected(t *testing.T) {
	s := newTestServer(t)
	clientID, clientSlug := seedClient(t, s, "Acme")
	_, moduleSlug := seedModule(t, s, clientID)
	apiKey := generateKey(t, s, clientID)

	rec, _ := doJSON(t, s, http.MethodDelete, "/api/clients/"+clientID+"/api-key", nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	path := fmt.Sprintf("/api/v1/public/%s/%s/records", clientSlug, moduleSlug)
	rec, _ = doJSON(t, s, http.MethodGet, path, nil, map[string]string{HeaderAPIKey: apiKey})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecordsView(t *testing.T) {
	s := newTestServer(t)
	clientID, clientSlug := seedClient(t, s, "Acme")
	moduleID, moduleSlug := seedModule(t, s, clientID)
	apiKey := generateKey(t, s, clientID)

	path := fmt.Sprintf("/api/v1/public/%s/%s/records", clientSlug, moduleSlug)
	rec, _ := doJSON(t, s, http.MethodPost, path, gin.H{
		"name":   "Ada",
		"status": "Won",
	}, map[string]string{HeaderAPIKey: apiKey})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := doJSON(t, s, http.MethodGet, "/api/clients/"+clientID+"/modules/"+moduleID+"/records-view", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Len(t, body["columns"].([]any), 3)
	rows := body["rows"].([]any)
	require.Len(t, rows, 1)

	cells := rows[0].(map[string]any)["cells"].([]any)
	status := cells[2].(map[string]any)
	assert.Equal(t, "Won", status["value"])
	assert.Equal(t, "green", status["variant"])

	email := cells[1].(map[string]any)
	assert.Equal(t, "—", email["value"])
}

func TestAPITester(t *testing.T) {
	s := newTestServer(t)
	clientID, clientSlug := seedClient(t, s, "Acme")
	moduleID, moduleSlug := seedModule(t, s, clientID)
	apiKey := generateKey(t, s, clientID)

	rec, body := doJSON(t, s, http.MethodGet, "/api/clients/"+clientID+"/api-tester/"+moduleID+"/sample", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, fmt.Sprintf("/api/v1/public/%s/%s/records", clientSlug, moduleSlug), body["url"])

	payload := body["payload"].(map[string]any)
	assert.Equal(t, "New", payload["status"])
	assert.Equal(t, "Test Name", payload["name"])

	rec, body = doJSON(t, s, http.MethodPost, "/api/clients/"+clientID+"/api-tester/"+moduleID+"/run", gin.H{
		"api_key": apiKey,
		"payload": payload,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(http.StatusCreated), body["status_code"])

	// The tester hits the real public endpoint, so a bad key is a 401.
	rec, body = doJSON(t, s, http.MethodPost, "/api/clients/"+clientID+"/api-tester/"+moduleID+"/run", gin.H{
		"api_key": "ak_live_wrong",
		"payload": payload,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(http.StatusUnauthorized), body["status_code"])
}

func TestClientCRUD(t *testing.T) {
	s := newTestServer(t)
	clientID, clientSlug := seedClient(t, s, "Acme Corp")

	assert.Equal(t, "acme-corp", clientSlug)

	// Duplicate name conflicts on slug.
	rec, _ := doJSON(t, s, http.MethodPost, "/api/clients", gin.H{"name": "Acme Corp"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	newName := "Acme Corporation"
	rec, body := doJSON(t, s, http.MethodPatch, "/api/clients/"+clientID, gin.H{"name": newName}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, newName, body["name"])
	assert.Equal(t, clientSlug, body["slug"])

	rec, _ = doJSON(t, s, http.MethodDelete, "/api/clients/"+clientID, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doJSON(t, s, http.MethodGet, "/api/clients/"+clientID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIKeyGenerateRateLimited(t *testing.T) {
	s := newTestServer(t)
	s.apiKeyLimiter = newRateLimiter(2, time.Minute)
	clientID, _ := seedClient(t, s, "Acme")

	for i := 0; i < 2; i++ {
		rec, _ := doJSON(t, s, http.MethodPost, "/api/clients/"+clientID+"/api-key/generate", nil, nil)
		require.Equal(t, http.StatusCreated, rec.Code, "generate %d", i)
	}
	rec, _ := doJSON(t, s, http.MethodPost, "/api/clients/"+clientID+"/api-key/generate", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
