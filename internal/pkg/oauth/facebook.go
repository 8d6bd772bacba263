package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const facebookMeURL = "https://graph.facebook.com/me"

// FacebookVerifier validates a client-obtained access token against the Graph
// API and resolves the user's profile.
type FacebookVerifier struct {
	HTTPClient *http.Client
}

type facebookUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewFacebookVerifier() *FacebookVerifier {
	return &FacebookVerifier{HTTPClient: &http.Client{}}
}

// Verify resolves the access token to a profile. A token Facebook does not
// recognize yields an error.
func (f *FacebookVerifier) Verify(ctx context.Context, accessToken string) (*Identity, error) {
	params := url.Values{}
	params.Set("fields", "id,name,email")
	params.Set("access_token", accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, facebookMeURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("facebook token verification failed: %s", string(body))
	}

	var user facebookUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("facebook profile contained no id")
	}

	return &Identity{ExternalID: user.ID, Name: user.Name, Email: user.Email}, nil
}
