package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/config"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/schemas"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrLanguageRequired is the one command rejection the kiosk handles as a
// flow correction instead of an error message: redirect to language
// selection first.
var ErrLanguageRequired = errors.New("language selection required")

// CommandError is a decoded 4xx rejection from a command endpoint. Its
// detail is for logs only; the customer-facing surface always shows a
// generic message instead.
type CommandError struct {
	StatusCode int
	Code       string
	Detail     string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("backend rejected command (%d %s): %s", e.StatusCode, e.Code, e.Detail)
}

// Client talks to the backend's lane-scoped kiosk endpoints. Every request
// carries the shared kiosk secret, the lane id and a fresh request id.
type Client struct {
	baseURL    string
	laneID     string
	secret     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg config.GlobalConfig, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.BackendBaseURL,
		laneID:  cfg.LaneID,
		secret:  cfg.KioskSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log,
	}
}

// --- Command endpoints ---

func (c *Client) ProposeSelection(ctx context.Context, req schemas.ProposeSelectionRequest) error {
	return c.post(ctx, "propose-selection", req)
}

func (c *Client) ConfirmSelection(ctx context.Context, req schemas.ConfirmSelectionRequest) error {
	return c.post(ctx, "confirm-selection", req)
}

func (c *Client) SetLanguage(ctx context.Context, req schemas.SetLanguageRequest) error {
	return c.post(ctx, "set-language", req)
}

func (c *Client) SetMembershipChoice(ctx context.Context, req schemas.MembershipChoiceRequest) error {
	return c.post(ctx, "membership-choice", req)
}

func (c *Client) SetPurchaseIntent(ctx context.Context, req schemas.PurchaseIntentRequest) error {
	return c.post(ctx, "membership-purchase-intent", req)
}

func (c *Client) CustomerConfirm(ctx context.Context) error {
	return c.post(ctx, "customer-confirm", struct{}{})
}

func (c *Client) SignAgreement(ctx context.Context) error {
	return c.post(ctx, "sign-agreement", struct{}{})
}

func (c *Client) KioskAck(ctx context.Context) error {
	return c.post(ctx, "kiosk-ack", struct{}{})
}

func (c *Client) Reset(ctx context.Context) error {
	return c.post(ctx, "reset", struct{}{})
}

func (c *Client) SetWaitlistDesired(ctx context.Context, req schemas.WaitlistDesiredRequest) error {
	return c.post(ctx, "waitlist-desired", req)
}

// --- Read endpoints ---

// FetchSnapshot retrieves the lane's current session. The second return is
// false when the backend reports no active session, which is the
// authoritative destruction signal for the polling fallback.
func (c *Client) FetchSnapshot(ctx context.Context) (*schemas.SessionSnapshot, bool, error) {
	var out schemas.SnapshotResponse
	if err := c.get(ctx, "session-snapshot", &out); err != nil {
		return nil, false, err
	}
	if out.Session == nil {
		return nil, false, nil
	}
	return out.Session, true, nil
}

func (c *Client) WaitlistInfo(ctx context.Context) (*schemas.WaitlistInfo, error) {
	var out schemas.WaitlistInfo
	if err := c.get(ctx, "waitlist-info", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- transport plumbing ---

func (c *Client) laneURL(path string) string {
	return fmt.Sprintf("%s/lanes/%s/%s", c.baseURL, c.laneID, path)
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.laneURL(path), bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setKioskHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.NewServiceError(http.StatusBadGateway, "", fmt.Sprintf("failed to reach backend for %s: %v", path, err))
	}
	defer resp.Body.Close()

	return c.handleCommandStatus(path, resp)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.laneURL(path), nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", path, err)
	}
	c.setKioskHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.NewServiceError(http.StatusBadGateway, "", fmt.Sprintf("failed to reach backend for %s: %v", path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.NewServiceError(resp.StatusCode, string(body), fmt.Sprintf("backend returned status %d for %s", resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", path, err)
	}
	return nil
}

func (c *Client) setKioskHeaders(req *http.Request) {
	req.Header.Set("X-Kiosk-Secret", c.secret)
	req.Header.Set("X-Lane-ID", c.laneID)
	req.Header.Set("X-Request-ID", uuid.New().String())
}

// handleCommandStatus implements the client side of the error contract:
// 2xx ok; 409 with code LANGUAGE_REQUIRED is the recognized flow
// correction; other 4xx decode into CommandError; 5xx and undecodable
// bodies become upstream ServiceErrors.
func (c *Client) handleCommandStatus(path string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return models.NewServiceError(resp.StatusCode, "", fmt.Sprintf("failed to read backend error for %s", path))
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		var apiErr models.APIError
		if err := json.Unmarshal(body, &apiErr); err == nil {
			if resp.StatusCode == http.StatusConflict && apiErr.Code == schemas.CodeLanguageRequired {
				c.logger.WithField("path", path).Info("Backend requires language selection first")
				return ErrLanguageRequired
			}
			return &CommandError{StatusCode: resp.StatusCode, Code: apiErr.Code, Detail: apiErr.Detail}
		}
		return &CommandError{StatusCode: resp.StatusCode, Detail: string(body)}
	}

	c.logger.WithFields(logrus.Fields{
		"path":   path,
		"status": resp.StatusCode,
	}).Warn("Backend command failed server-side")
	return models.NewServiceError(resp.StatusCode, string(body), fmt.Sprintf("backend returned status %d for %s", resp.StatusCode, path))
}
