package registration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tutorhub/models"
	"tutorhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSuccess(t *testing.T) {
	var received models.RegistrationPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/accounts", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": "acc-9", "email": received.Email, "accountType": received.AccountType},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	account, err := client.Register(context.Background(), models.RegistrationPayload{
		Email:       "a@b.com",
		Password:    "Abcdef12",
		FirstName:   "Alice",
		LastName:    "Martin",
		AccountType: "student",
		Grade:       "terminale",
	})
	require.NoError(t, err)
	assert.Equal(t, "acc-9", account.ID)
	assert.Equal(t, "terminale", received.Grade)
}

func TestRegisterCollaboratorErrorIsVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "un compte existe déjà avec cet email",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Register(context.Background(), models.RegistrationPayload{Email: "a@b.com"})
	require.Error(t, err)
	assert.Equal(t, "un compte existe déjà avec cet email", err.Error())
}

func TestRegisterTransportErrorIsNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL)
	_, err := client.Register(context.Background(), models.RegistrationPayload{Email: "a@b.com"})
	require.Error(t, err)
	assert.Equal(t, utils.GenericUserError, err.Error())
}

func TestRegisterMalformedResponseIsNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Register(context.Background(), models.RegistrationPayload{Email: "a@b.com"})
	require.Error(t, err)
	assert.Equal(t, utils.GenericUserError, err.Error())
}

func TestRegisterMissingAccountIDIsNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Register(context.Background(), models.RegistrationPayload{Email: "a@b.com"})
	require.Error(t, err)
	assert.Equal(t, utils.GenericUserError, err.Error())
}
