package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tutorhub/models"
	"tutorhub/utils"

	"go.uber.org/zap"
)

// Client talks to the registration collaborator. Every failure is converted
// here: collaborator-reported errors surface verbatim, transport and decoding
// problems are normalized to the generic user message. Nothing throws past
// this boundary.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Register creates the account from the assembled payload.
func (c *Client) Register(ctx context.Context, payload models.RegistrationPayload) (*models.CreatedAccount, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		utils.GetLogger().Error("Register: failed to marshal payload", zap.Error(err))
		return nil, errors.New(utils.GenericUserError)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/accounts", bytes.NewReader(body))
	if err != nil {
		utils.GetLogger().Error("Register: failed to build request", zap.Error(err))
		return nil, errors.New(utils.GenericUserError)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		utils.GetLogger().Error("Register: request failed", zap.Error(err))
		return nil, errors.New(utils.GenericUserError)
	}
	defer resp.Body.Close()

	var env models.APIEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		utils.GetLogger().Error("Register: failed to decode response",
			zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, errors.New(utils.GenericUserError)
	}
	if !env.Success {
		if env.Error == "" {
			utils.GetLogger().Warn("Register: collaborator failed without a message", zap.Int("status", resp.StatusCode))
			return nil, errors.New(utils.GenericUserError)
		}
		// Surface the collaborator's message verbatim (duplicate email etc).
		return nil, errors.New(env.Error)
	}

	var account models.CreatedAccount
	if err := json.Unmarshal(env.Data, &account); err != nil {
		utils.GetLogger().Error("Register: failed to decode account data", zap.Error(err))
		return nil, errors.New(utils.GenericUserError)
	}
	if account.ID == "" {
		utils.GetLogger().Error("Register: collaborator returned no account id")
		return nil, errors.New(utils.GenericUserError)
	}
	utils.GetLogger().Info("Account registered",
		zap.String("accountID", account.ID), zap.String("accountType", account.AccountType))
	return &account, nil
}
