package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pay-chain.backend/internal/domain/entities"
	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/pkg/jwt"
)

// Client resolves canonical identities from the auth service over HTTP,
// authenticated with a signed service credential.
type Client struct {
	baseURL    string
	signer     *jwt.ServiceTokenSigner
	httpClient *http.Client
}

// NewClient creates a new identity service client
func NewClient(baseURL string, signer *jwt.ServiceTokenSigner, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		signer:     signer,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
}

// Resolve fetches the identity record for a user id. ErrNotFound is returned
// for unknown users; transport failures surface as-is.
func (c *Client) Resolve(ctx context.Context, userID uuid.UUID) (*entities.IdentityRecord, error) {
	url := fmt.Sprintf("%s/internal/users/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	token, err := c.signer.Sign()
	if err != nil {
		return nil, fmt.Errorf("failed to sign service token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domainerrors.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}

	return &entities.IdentityRecord{
		UserID:   body.ID,
		Email:    body.Email,
		Username: body.Username,
		FullName: body.FullName,
	}, nil
}
