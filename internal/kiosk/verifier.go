package kiosk

import (
	"context"

	"github.com/tastyhub/ordering-service/internal/client"
)

// APIVerifier checks admin credentials against the backend's login endpoint.
// A successful login leaves the bearer token on the client, so subsequent
// admin requests are authenticated.
type APIVerifier struct {
	client *client.Client
}

// NewAPIVerifier creates a verifier bound to the given REST client.
func NewAPIVerifier(c *client.Client) *APIVerifier {
	return &APIVerifier{client: c}
}

// Verify logs in with the given credentials.
func (v *APIVerifier) Verify(ctx context.Context, username, password string) error {
	_, err := v.client.Login(ctx, username, password)
	return err
}
