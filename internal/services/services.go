// package services defines interface Service for the recommendation API
package services

import (
	"context"

	"github.com/desertthunder/insure/internal/models"
)

// Service defines the client's view of the Intelligent Insure backend.
// One network attempt per call; retry policy belongs to the caller.
type Service interface {
	// Register creates an account for the given credentials.
	// Registration does not return a session; callers that want one must
	// follow up with Authenticate.
	Register(ctx context.Context, creds models.Credentials) error

	// Authenticate exchanges credentials for a token pair.
	Authenticate(ctx context.Context, creds models.Credentials) (*models.TokenPair, error)

	// Recommend submits a profile and returns the computed recommendation.
	// Requires an authenticated session.
	Recommend(ctx context.Context, profile models.ProfileInput) (*models.Recommendation, error)
}
