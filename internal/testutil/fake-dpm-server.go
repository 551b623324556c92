package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"dpm-integrator/internal/core/domain"
)

// Upload is one file received by the fake schedule endpoint.
type Upload struct {
	FileName    string
	Content     []byte
	DataModelID string
}

// StatusQuery is one call received by the fake task status endpoint.
type StatusQuery struct {
	TaskID             string
	DataModelVersionID string
}

// FakeDPMServer emulates the auth, catalog and import endpoints of a DPM tool
// on a single httptest server.
type FakeDPMServer struct {
	*httptest.Server

	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	AccessToken  string
	TaskID       string

	// Models is served by the catalog endpoint.
	Models []domain.DataModelInfo
	// Statuses is consumed one per status poll; the last value repeats.
	Statuses []domain.TaskStatus
	// ScheduleFailure, when non-zero, is returned by the schedule endpoint.
	ScheduleFailure int

	mu            sync.Mutex
	uploads       []Upload
	statusQueries []StatusQuery
	requestIDs    []string
}

func NewFakeDPMServer() *FakeDPMServer {
	gin.SetMode(gin.TestMode)

	s := &FakeDPMServer{
		ClientID:     "integrator-client",
		ClientSecret: "integrator-secret",
		Username:     "modeler",
		Password:     "modeler-password",
		AccessToken:  "token-123",
		TaskID:       "task-1",
		Statuses:     []domain.TaskStatus{domain.TaskStatusFinished},
	}

	r := gin.New()
	r.Use(s.recordRequestID, accessLog())
	r.POST("/oauth/token", s.token)

	authorized := r.Group("/", s.requireBearer)
	authorized.GET("/model/data/", s.listModels)
	authorized.POST("/api/import/db/schedule", s.schedule)
	authorized.GET("/api/task/:taskId/import", s.taskStatus)

	s.Server = httptest.NewServer(r)
	return s
}

// ToolConfig points every service address at the fake server.
func (s *FakeDPMServer) ToolConfig() *domain.ToolConfig {
	return &domain.ToolConfig{
		DPMToolName: "Fake DPM Tool",
		ClientAuthBasic: domain.ClientAuthBasic{
			Username: s.ClientID,
			Password: s.ClientSecret,
		},
		ServiceAddress: domain.ServiceAddress{
			AuthServiceHost:         s.URL,
			HMRServiceHost:          s.URL,
			ExportImportServiceHost: s.URL,
		},
	}
}

// WriteToolConfig stores ToolConfig as a JSON document in dir.
func (s *FakeDPMServer) WriteToolConfig(t *testing.T, dir string) string {
	t.Helper()
	doc := map[string]any{
		"dpmToolName": "Fake DPM Tool",
		"clientAuthBasic": map[string]string{
			"username": s.ClientID,
			"password": s.ClientSecret,
		},
		"serviceAddress": map[string]string{
			"authServiceHost":         s.URL,
			"hmrServiceHost":          s.URL,
			"exportImportServiceHost": s.URL,
		},
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)

	path := filepath.Join(dir, "dpm-tool-config.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func (s *FakeDPMServer) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

func (s *FakeDPMServer) StatusQueries() []StatusQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StatusQuery(nil), s.statusQueries...)
}

func (s *FakeDPMServer) token(c *gin.Context) {
	id, secret, ok := c.Request.BasicAuth()
	if !ok || id != s.ClientID || secret != s.ClientSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_client"})
		return
	}

	var body struct {
		GrantType string `json:"grant_type"`
		Username  string `json:"username"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if body.GrantType != "password" || body.Username != s.Username || body.Password != s.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_grant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": s.AccessToken, "token_type": "bearer"})
}

func (s *FakeDPMServer) requireBearer(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+s.AccessToken {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (s *FakeDPMServer) listModels(c *gin.Context) {
	models := s.Models
	if models == nil {
		models = []domain.DataModelInfo{}
	}
	c.JSON(http.StatusOK, models)
}

func (s *FakeDPMServer) schedule(c *gin.Context) {
	if s.ScheduleFailure != 0 {
		c.String(s.ScheduleFailure, "schedule rejected")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, "missing file part")
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	s.uploads = append(s.uploads, Upload{
		FileName:    fh.Filename,
		Content:     content,
		DataModelID: c.GetHeader("dataModelId"),
	})
	s.mu.Unlock()

	c.String(http.StatusOK, s.TaskID)
}

func (s *FakeDPMServer) taskStatus(c *gin.Context) {
	taskID := c.Param("taskId")

	s.mu.Lock()
	s.statusQueries = append(s.statusQueries, StatusQuery{
		TaskID:             taskID,
		DataModelVersionID: c.GetHeader("dataModelVersionId"),
	})
	status := s.Statuses[0]
	if len(s.Statuses) > 1 {
		s.Statuses = s.Statuses[1:]
	}
	s.mu.Unlock()

	if !strings.EqualFold(taskID, s.TaskID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	c.JSON(http.StatusOK, domain.TaskStatusInfo{
		Type:       "TaskStatus",
		TaskID:     taskID,
		TaskStatus: status,
		TaskType:   "IMPORT_DB",
	})
}
