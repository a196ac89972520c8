// ABOUTME: HTTP client for the estimator API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/engestimate/estimator/backend/models"
)

// Client is the API client for the estimator backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the backend URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status       string `json:"status"`
	Store        string `json:"store"`
	StoreStatus  string `json:"store_status"`
	CacheEntries int    `json:"cache_entries"`
}

// ConfidenceLevel is one entry of the confidence level catalogue
type ConfidenceLevel struct {
	Level       models.ConfidenceLevel `json:"level"`
	Description string                 `json:"description"`
}

// FactorsResponse represents the complexity factor catalogue
type FactorsResponse struct {
	Factors          []models.FactorInfo `json:"factors"`
	ConfidenceLevels []ConfidenceLevel   `json:"confidence_levels"`
}

// EstimateResponse represents a quick estimate
type EstimateResponse struct {
	models.EstimationResult
	DeliverableTemplate models.DeliverableHours `json:"deliverable_template"`
	RecommendedTeamSize int                     `json:"recommended_team_size"`
}

// FTEResponse represents weekly staffing requirements
type FTEResponse struct {
	DurationWeeks int                          `json:"duration_weeks"`
	Requirements  []models.ResourceRequirement `json:"requirements"`
}

// RealityCheckResponse represents a staffing plan with its warnings
type RealityCheckResponse struct {
	Requirements []models.ResourceRequirement `json:"requirements"`
	Team         []models.TeamRecommendation  `json:"team"`
	Metadata     models.TeamMetadata          `json:"metadata"`
	Warnings     []models.Warning             `json:"warnings"`
}

// APIError is a non-success response from the backend
type APIError struct {
	StatusCode int
	Message    string
	Details    map[string]any
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return "backend error: " + e.Message
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, e.Details[k]))
	}
	return fmt.Sprintf("backend error: %s (%s)", e.Message, strings.Join(parts, ", "))
}

// Health calls GET /api/v1/health. A degraded backend answers 503 with a
// normal body, which is returned without error.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health, http.StatusServiceUnavailable); err != nil {
		return nil, err
	}
	return &health, nil
}

// ComplexityFactors calls GET /api/v1/estimation/complexity-factors
func (c *Client) ComplexityFactors(ctx context.Context) (*FactorsResponse, error) {
	var factors FactorsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/estimation/complexity-factors", nil, &factors); err != nil {
		return nil, err
	}
	return &factors, nil
}

// QuickEstimate calls POST /api/v1/estimation/quick-estimate
func (c *Client) QuickEstimate(ctx context.Context, req *models.EstimateRequest) (*EstimateResponse, error) {
	var estimate EstimateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/estimation/quick-estimate", req, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

// Schedule calls POST /api/v1/estimation/schedule
func (c *Client) Schedule(ctx context.Context, req *models.ScheduleRequest) (*models.ScheduleReport, error) {
	var report models.ScheduleReport
	if err := c.do(ctx, http.MethodPost, "/api/v1/estimation/schedule", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// CalculateCosts calls POST /api/v1/estimation/calculate-costs
func (c *Client) CalculateCosts(ctx context.Context, req *models.CostRequest) (*models.ProjectCost, error) {
	var cost models.ProjectCost
	if err := c.do(ctx, http.MethodPost, "/api/v1/estimation/calculate-costs", req, &cost); err != nil {
		return nil, err
	}
	return &cost, nil
}

// CalculateFTE calls POST /api/v1/resource-planning/calculate-fte
func (c *Client) CalculateFTE(ctx context.Context, req *models.FTERequest) (*FTEResponse, error) {
	var fte FTEResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/resource-planning/calculate-fte", req, &fte); err != nil {
		return nil, err
	}
	return &fte, nil
}

// RealityCheck calls POST /api/v1/resource-planning/reality-check
func (c *Client) RealityCheck(ctx context.Context, req *models.RealityCheckRequest) (*RealityCheckResponse, error) {
	var check RealityCheckResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/resource-planning/reality-check", req, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// do sends in as JSON (when non-nil) and decodes the response into out.
// Statuses in accept are decoded like 200.
func (c *Client) do(ctx context.Context, method, path string, in, out any, accept ...int) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && !accepted(resp.StatusCode, accept) {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

func accepted(code int, accept []int) bool {
	for _, a := range accept {
		if code == a {
			return true
		}
	}
	return false
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error, Details: errResp.Details}
}
