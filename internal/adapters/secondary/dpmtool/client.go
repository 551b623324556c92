package dpmtool

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"dpm-integrator/internal/adapters/secondary/transport"
	"dpm-integrator/internal/core/domain"
	ports "dpm-integrator/internal/core/ports/output"
)

const (
	opAuthenticate    = "Authentication"
	opListDataModels  = "Listing data models"
	opDatabaseUpload  = "Database upload"
	opFetchTaskStatus = "Fetch task status"
)

type dpmToolClient struct {
	cfg       *domain.ToolConfig
	transport *transport.Transport
	logger    log.FieldLogger
	token     *oauth2.Token
}

// NewDPMToolClient creates a client for one DPM tool deployment. It holds the
// access token obtained by Authenticate for the rest of the process.
func NewDPMToolClient(cfg *domain.ToolConfig, t *transport.Transport, logger log.FieldLogger) ports.DPMToolClient {
	return &dpmToolClient{
		cfg:       cfg,
		transport: t,
		logger:    logger.WithField("dpm_tool", cfg.DPMToolName),
	}
}

type loginPayload struct {
	GrantType string `json:"grant_type"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (c *dpmToolClient) Authenticate(ctx context.Context, username, password string) error {
	payload, err := json.Marshal(loginPayload{
		GrantType: "password",
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ServiceAddress.AuthServiceHost+"/oauth/token", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create authentication request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+basicCredentials(c.cfg.ClientAuthBasic))

	body, err := c.transport.Execute(req, opAuthenticate)
	if err != nil {
		return err
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return fmt.Errorf("decode authentication response: %w", err)
	}
	if tok.AccessToken == "" {
		return domain.ErrMissingToken
	}

	// The service is always addressed with Bearer, whatever token_type says.
	c.token = &oauth2.Token{AccessToken: tok.AccessToken, TokenType: "Bearer"}
	c.logger.WithField("username", username).Info("authenticated")
	return nil
}

func (c *dpmToolClient) ListDataModels(ctx context.Context) ([]domain.DataModelInfo, error) {
	req, err := c.authorizedRequest(ctx, http.MethodGet, c.cfg.ServiceAddress.HMRServiceHost+"/model/data/", nil)
	if err != nil {
		return nil, err
	}

	body, err := c.transport.Execute(req, opListDataModels)
	if err != nil {
		return nil, err
	}

	var models []domain.DataModelInfo
	if err := json.Unmarshal(body, &models); err != nil {
		return nil, fmt.Errorf("decode data models: %w", err)
	}
	return models, nil
}

func (c *dpmToolClient) ScheduleImport(ctx context.Context, databasePath, dataModelID string) (ports.PendingUpload, error) {
	if c.token == nil {
		return nil, domain.ErrNotAuthenticated
	}

	payload, err := newMultipartFile(databasePath)
	if err != nil {
		return nil, err
	}
	body, err := payload.Open()
	if err != nil {
		return nil, err
	}

	req, err := c.authorizedRequest(ctx, http.MethodPost, c.cfg.ServiceAddress.ExportImportServiceHost+"/api/import/db/schedule", nil)
	if err != nil {
		body.Close()
		return nil, err
	}
	req.Body = body
	req.GetBody = payload.Open
	req.ContentLength = payload.Size()
	req.Header.Set("Content-Type", payload.ContentType())
	req.Header.Set("dataModelId", dataModelID)

	c.logger.WithFields(log.Fields{
		"file":          databasePath,
		"data_model_id": dataModelID,
		"bytes":         payload.Size(),
	}).Info("scheduling database import")

	return c.transport.Enqueue(req, opDatabaseUpload), nil
}

func (c *dpmToolClient) FetchTaskStatus(ctx context.Context, taskID, dataModelVersionID string) (*domain.TaskStatusInfo, error) {
	endpoint := fmt.Sprintf("%s/api/task/%s/import", c.cfg.ServiceAddress.ExportImportServiceHost, url.PathEscape(taskID))
	req, err := c.authorizedRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("dataModelVersionId", dataModelVersionID)

	body, err := c.transport.Execute(req, opFetchTaskStatus)
	if err != nil {
		return nil, err
	}

	var status domain.TaskStatusInfo
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("decode task status: %w", err)
	}
	return &status, nil
}

// authorizedRequest fails with ErrNotAuthenticated before any request is
// built when Authenticate has not succeeded.
func (c *dpmToolClient) authorizedRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	if c.token == nil {
		return nil, domain.ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.token.SetAuthHeader(req)
	return req, nil
}

func basicCredentials(cred domain.ClientAuthBasic) string {
	return base64.StdEncoding.EncodeToString([]byte(cred.Username + ":" + cred.Password))
}
