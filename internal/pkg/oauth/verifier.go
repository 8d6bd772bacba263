package oauth

import "context"

// Identity is the normalized result of a successful provider verification.
type Identity struct {
	ExternalID string
	Name       string
	Email      string
}

// Verifier exchanges a provider authorization artifact (an authorization code
// for Google, an access token for Facebook) for a verified identity.
type Verifier interface {
	Verify(ctx context.Context, artifact string) (*Identity, error)
}
