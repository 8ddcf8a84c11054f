// Intelligent Insure API implementation of [Service]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/insure/internal/models"
	"github.com/desertthunder/insure/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	registerPath  = "/api/auth/register/"
	tokenPath     = "/api/auth/token/"
	recommendPath = "/api/recommendations/"
)

// InsureService talks JSON over HTTP to the recommendation backend.
//
// Two clients are held: a bare one for the unauthenticated auth endpoints and
// an [oauth2.Transport]-wrapped one for protected endpoints, so the bearer
// token is attached uniformly rather than per call site.
type InsureService struct {
	baseURL    string
	httpClient *http.Client
	authClient *http.Client
	limiter    *rate.Limiter
}

var _ Service = (*InsureService)(nil)

// credentialsRequest is the wire shape of the register and token calls.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the wire shape of a successful token call.
type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// recommendationRequest is the wire shape of a recommendation call.
type recommendationRequest struct {
	Age           int    `json:"age"`
	Income        int    `json:"income"`
	Dependents    int    `json:"dependents"`
	RiskTolerance string `json:"risk_tolerance"`
}

// recommendationResponse is the wire shape of a successful recommendation.
type recommendationResponse struct {
	RecommendedPolicy   string `json:"recommended_policy"`
	RecommendedCoverage int    `json:"recommended_coverage"`
	RecommendedTerm     *int   `json:"recommended_term"`
	Explanation         string `json:"explanation"`
}

// NewInsureService creates a service client for the given base URL.
//
// The source supplies bearer tokens for protected endpoints; pass nil for a
// client that can only reach the auth endpoints. A requestsPerSecond of zero
// disables client-side rate limiting.
func NewInsureService(baseURL string, client *http.Client, source oauth2.TokenSource, requestsPerSecond float64) *InsureService {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if client == nil {
		client = http.DefaultClient
	}

	authClient := client
	if source != nil {
		authClient = &http.Client{
			Transport: &oauth2.Transport{Source: source, Base: client.Transport},
			Timeout:   client.Timeout,
		}
	}

	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &InsureService{
		baseURL:    baseURL,
		httpClient: client,
		authClient: authClient,
		limiter:    limiter,
	}
}

// Register creates an account. A 2xx response body is ignored.
func (s *InsureService) Register(ctx context.Context, creds models.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	payload := credentialsRequest{Email: creds.Email, Password: creds.Password}
	return s.post(ctx, s.httpClient, registerPath, payload, nil)
}

// Authenticate exchanges credentials for a token pair.
func (s *InsureService) Authenticate(ctx context.Context, creds models.Credentials) (*models.TokenPair, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	payload := credentialsRequest{Email: creds.Email, Password: creds.Password}

	var tokens tokenResponse
	if err := s.post(ctx, s.httpClient, tokenPath, payload, &tokens); err != nil {
		return nil, err
	}

	pair := models.TokenPair{AccessToken: tokens.Access, RefreshToken: tokens.Refresh}
	if !pair.Complete() {
		return nil, fmt.Errorf("%w: token response missing access or refresh token", shared.ErrAuthFailed)
	}

	return &pair, nil
}

// Recommend submits a profile through the authenticated client.
func (s *InsureService) Recommend(ctx context.Context, profile models.ProfileInput) (*models.Recommendation, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	payload := recommendationRequest{
		Age:           profile.Age,
		Income:        profile.Income,
		Dependents:    profile.Dependents,
		RiskTolerance: profile.RiskTolerance.String(),
	}

	var result recommendationResponse
	if err := s.post(ctx, s.authClient, recommendPath, payload, &result); err != nil {
		return nil, err
	}

	return &models.Recommendation{
		Policy:      result.RecommendedPolicy,
		Coverage:    result.RecommendedCoverage,
		Term:        result.RecommendedTerm,
		Explanation: result.Explanation,
	}, nil
}

// post performs one JSON POST and decodes a 2xx body into out (when non-nil).
// Non-2xx responses are normalized into an [APIError].
func (s *InsureService) post(ctx context.Context, client *http.Client, path string, payload any, out any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: malformed response: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}
