package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jpalves/smartnurse"
)

// Interface compliance check.
var _ smartnurse.TriageClient = (*Client)(nil)

// Client implements [smartnurse.TriageClient] over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the service base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a triage [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Triage sends one request to the triage endpoint and returns the structured
// result or a typed failure. History defaults to the "Não informado"
// sentinel and Age to zero (unknown) when unset. Symptoms must be non-empty;
// the session controller enforces that before calling.
func (c *Client) Triage(ctx context.Context, req smartnurse.TriageRequest) (smartnurse.TriageResult, error) {
	history := req.History
	if history == "" {
		history = defaultHistory
	}

	body, err := json.Marshal(apiRequest{
		Symptoms: req.Symptoms,
		History:  history,
		Age:      req.Age,
	})
	if err != nil {
		return smartnurse.TriageResult{}, fmt.Errorf("triage: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+triagePath, bytes.NewReader(body))
	if err != nil {
		return smartnurse.TriageResult{}, fmt.Errorf("triage: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return smartnurse.TriageResult{}, fmt.Errorf("triage: %v: %w", err, smartnurse.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return smartnurse.TriageResult{}, parseHTTPError(resp)
	}

	return parseResult(resp.Body)
}

// TestConnection probes the connectivity endpoint once at session start.
func (c *Client) TestConnection(ctx context.Context) (bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+probePath, nil)
	if err != nil {
		return false, fmt.Errorf("triage: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("triage: %v: %w", err, smartnurse.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, parseHTTPError(resp)
	}

	var probe apiProbeResponse
	if err := json.NewDecoder(resp.Body).Decode(&probe); err != nil {
		return false, fmt.Errorf("triage: decode probe: %w", smartnurse.ErrMalformedResponse)
	}
	return probe.Connected, nil
}

// parseHTTPError maps a non-success response to an APIError, propagating the
// server-supplied detail verbatim when present.
func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &smartnurse.APIError{StatusCode: resp.StatusCode}
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return &smartnurse.APIError{StatusCode: resp.StatusCode}
	}
	return &smartnurse.APIError{StatusCode: resp.StatusCode, Detail: apiErr.Detail}
}

// parseResult decodes a success body. A body missing the diagnosis object
// entirely is malformed; missing optional fields degrade to empty values so
// a partial result never crashes rendering.
func parseResult(body io.Reader) (smartnurse.TriageResult, error) {
	var api apiResponse
	if err := json.NewDecoder(body).Decode(&api); err != nil {
		return smartnurse.TriageResult{}, fmt.Errorf("triage: decode response: %w", smartnurse.ErrMalformedResponse)
	}
	if api.Diagnosis == nil || (api.Diagnosis.Category == "" && api.Diagnosis.Urgency == "") {
		return smartnurse.TriageResult{}, fmt.Errorf("triage: response has no diagnosis: %w", smartnurse.ErrMalformedResponse)
	}

	result := smartnurse.TriageResult{
		Category:     api.Diagnosis.Category,
		UrgencyLevel: api.Diagnosis.Urgency,
		Alerts:       api.Diagnosis.Alerts,
		Explanation:  api.AIExplanation,
	}
	if api.MedicalInfo != nil {
		result.Sources = api.MedicalInfo.Sources
		result.Recommendation = api.MedicalInfo.Recommendation
	}
	return result, nil
}
