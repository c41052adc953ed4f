package service_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	errorvalues "github.com/lucasfgaldinos/habitus-api/internal/error_values"
	"github.com/lucasfgaldinos/habitus-api/internal/service"
	jwtservice "github.com/lucasfgaldinos/habitus-api/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "test_client_id"
	testClientSecret = "test_client_secret"
)

func TestBeginAuth(t *testing.T) {
	serv := service.NewGithubAuthService(testClientID, testClientSecret, jwtservice.New("secret"))
	assert.Equal(t,
		"https://github.com/login/oauth/authorize?client_id=test_client_id",
		serv.BeginAuth(),
	)
}

func TestCompleteAuth(t *testing.T) {
	jwtServ := jwtservice.New("secret")

	t.Run("success", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			var exchangeReq map[string]string
			require.NoError(t, sonic.Unmarshal(body, &exchangeReq))
			assert.Equal(t, testClientID, exchangeReq["client_id"])
			assert.Equal(t, testClientSecret, exchangeReq["client_secret"])
			assert.Equal(t, "good_code", exchangeReq["code"])

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"gho_abc123","token_type":"bearer"}`))
		}))
		defer tokenServer.Close()

		userServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer gho_abc123", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"node_id":"MDQ6VXNlcjE2NjA0","avatar_url":"https://example.com/a.png","name":"Lucas"}`))
		}))
		defer userServer.Close()

		serv := service.NewGithubAuthServiceWithEndpoints(
			testClientID, testClientSecret, jwtServ,
			tokenServer.Client(), tokenServer.URL, userServer.URL,
		)
		result, err := serv.CompleteAuth(context.Background(), "good_code")
		require.NoError(t, err)
		assert.Equal(t, "MDQ6VXNlcjE2NjA0", result.ID)
		assert.Equal(t, "https://example.com/a.png", result.AvatarURL)
		assert.Equal(t, "Lucas", result.Name)

		claims, err := jwtServ.ParseToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "MDQ6VXNlcjE2NjA0", claims.ID)
	})

	t.Run("provider rejects the code with an error body", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error":"bad_verification_code"}`))
		}))
		defer tokenServer.Close()

		serv := service.NewGithubAuthServiceWithEndpoints(
			testClientID, testClientSecret, jwtServ,
			tokenServer.Client(), tokenServer.URL, "http://unused.invalid",
		)
		_, err := serv.CompleteAuth(context.Background(), "bad_code")
		var exchangeErr *service.ExchangeError
		require.ErrorAs(t, err, &exchangeErr)
		assert.Contains(t, string(exchangeErr.Payload), "bad_verification_code")
		assert.ErrorIs(t, err, errorvalues.ErrExchangeFailed)
	})

	t.Run("profile fetch fails with provider payload", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"access_token":"gho_abc123"}`))
		}))
		defer tokenServer.Close()

		userServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Bad credentials"}`))
		}))
		defer userServer.Close()

		serv := service.NewGithubAuthServiceWithEndpoints(
			testClientID, testClientSecret, jwtServ,
			tokenServer.Client(), tokenServer.URL, userServer.URL,
		)
		_, err := serv.CompleteAuth(context.Background(), "good_code")
		var exchangeErr *service.ExchangeError
		require.ErrorAs(t, err, &exchangeErr)
		assert.Contains(t, string(exchangeErr.Payload), "Bad credentials")
	})

	t.Run("unreachable provider is a generic failure", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		tokenServer.Close()

		serv := service.NewGithubAuthServiceWithEndpoints(
			testClientID, testClientSecret, jwtServ,
			&http.Client{}, tokenServer.URL, "http://unused.invalid",
		)
		_, err := serv.CompleteAuth(context.Background(), "good_code")
		require.ErrorIs(t, err, errorvalues.ErrExchangeFailed)
		var exchangeErr *service.ExchangeError
		assert.False(t, errors.As(err, &exchangeErr))
	})
}
