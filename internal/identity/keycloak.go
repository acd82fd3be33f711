package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/S6-InstaClone/AccountService/internal/config"
)

// IIdentityProviderClient removes a user account from the identity provider.
// DeleteUser never fails the caller: every failure path collapses to false
// with a logged diagnostic, and a user that is already gone counts as
// deleted.
type IIdentityProviderClient interface {
	DeleteUser(ctx context.Context, externalID string) bool
}

type KeycloakClient struct {
	cfg        config.KeycloakConfig
	httpClient *http.Client
}

func NewKeycloakClient(cfg config.KeycloakConfig) IIdentityProviderClient {
	return &KeycloakClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// DeleteUser removes the account behind externalID from the admin realm.
// Returns true on confirmed deletion or when the provider no longer knows
// the user; false on any other outcome.
func (c *KeycloakClient) DeleteUser(ctx context.Context, externalID string) bool {
	token, err := c.adminToken(ctx)
	if err != nil {
		log.Printf("Error acquiring keycloak admin token: %v", err)
		return false
	}

	deleteURL := fmt.Sprintf("%s/admin/realms/%s/users/%s",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.Realm, externalID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		log.Printf("Error building keycloak delete request: %v", err)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Error calling keycloak delete for user %s: %v", externalID, err)
		return false
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true
	case resp.StatusCode == http.StatusNotFound:
		// Already gone counts as deleted, so a retried request stays green.
		log.Printf("Keycloak user %s not found, treating as already deleted", externalID)
		return true
	default:
		body, _ := io.ReadAll(resp.Body)
		log.Printf("Keycloak delete for user %s returned status %d, body: %s", externalID, resp.StatusCode, string(body))
		return false
	}
}

// adminToken performs a password-grant exchange against the admin realm's
// token endpoint. Tokens are short-lived and not cached; every deletion
// re-authenticates.
func (c *KeycloakClient) adminToken(ctx context.Context) (string, error) {
	tokenURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.Realm)

	form := url.Values{}
	form.Set("client_id", c.cfg.AdminClientID)
	form.Set("username", c.cfg.AdminUsername)
	form.Set("password", c.cfg.AdminPassword)
	form.Set("grant_type", "password")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d, body: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty access token")
	}

	return token.AccessToken, nil
}
