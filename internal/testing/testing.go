// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/insure/internal/models"
)

// MockService is a scriptable test double for services.Service.
// Unset funcs succeed with zero values. Call counters record invocations so
// tests can assert how many network attempts a transition produced.
type MockService struct {
	RegisterFunc     func(ctx context.Context, creds models.Credentials) error
	AuthenticateFunc func(ctx context.Context, creds models.Credentials) (*models.TokenPair, error)
	RecommendFunc    func(ctx context.Context, profile models.ProfileInput) (*models.Recommendation, error)

	RegisterCalls     int
	AuthenticateCalls int
	RecommendCalls    int
}

func (m *MockService) Register(ctx context.Context, creds models.Credentials) error {
	m.RegisterCalls++
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, creds)
	}
	return nil
}

func (m *MockService) Authenticate(ctx context.Context, creds models.Credentials) (*models.TokenPair, error) {
	m.AuthenticateCalls++
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, creds)
	}
	return &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *MockService) Recommend(ctx context.Context, profile models.ProfileInput) (*models.Recommendation, error) {
	m.RecommendCalls++
	if m.RecommendFunc != nil {
		return m.RecommendFunc(ctx, profile)
	}
	return &models.Recommendation{Policy: "Term Life", Coverage: 500000, Explanation: "mock"}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FailingTokenStore errors on every operation; used to prove startup
// recovery when durable storage is unavailable.
type FailingTokenStore struct{}

func (f *FailingTokenStore) Load() (*models.TokenPair, error) {
	return nil, errors.New("storage unavailable")
}

func (f *FailingTokenStore) Save(pair models.TokenPair) error {
	return errors.New("storage unavailable")
}

func (f *FailingTokenStore) Clear() error {
	return errors.New("storage unavailable")
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if err == nil && !info.IsDir() {
		t.Errorf("Expected directory, found file: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}
