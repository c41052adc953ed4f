package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/lucasfgaldinos/habitus-api/internal/error_values"
	jwtservice "github.com/lucasfgaldinos/habitus-api/pkg/jwt_service"
)

const (
	githubAuthorizeURL = "https://github.com/login/oauth/authorize"
	githubTokenURL     = "https://github.com/login/oauth/access_token"
	githubUserURL      = "https://api.github.com/user"
)

// ExchangeError carries the external provider's error payload so the
// handler can pass it through untouched.
type ExchangeError struct {
	Payload []byte
}

func (ee *ExchangeError) Error() string {
	return errorvalues.ErrExchangeFailed.Error()
}

func (ee *ExchangeError) Unwrap() error {
	return errorvalues.ErrExchangeFailed
}

type GithubAuthService struct {
	clientID     string
	clientSecret string
	jwtService   *jwtservice.JWTService
	httpClient   *http.Client
	authorizeURL string
	tokenURL     string
	userURL      string
}

func NewGithubAuthService(clientID, clientSecret string, jwtService *jwtservice.JWTService) *GithubAuthService {
	if jwtService == nil {
		log.Fatal("provided nil jwtService")
	}
	return &GithubAuthService{
		clientID:     clientID,
		clientSecret: clientSecret,
		jwtService:   jwtService,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		authorizeURL: githubAuthorizeURL,
		tokenURL:     githubTokenURL,
		userURL:      githubUserURL,
	}
}

// NewGithubAuthServiceWithEndpoints points the exchange at custom
// provider endpoints. Used by tests.
func NewGithubAuthServiceWithEndpoints(clientID, clientSecret string, jwtService *jwtservice.JWTService, httpClient *http.Client, tokenURL, userURL string) *GithubAuthService {
	s := NewGithubAuthService(clientID, clientSecret, jwtService)
	s.httpClient = httpClient
	s.tokenURL = tokenURL
	s.userURL = userURL
	return s
}

func (as *GithubAuthService) BeginAuth() string {
	return as.authorizeURL + "?client_id=" + as.clientID
}

type accessTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type githubProfile struct {
	NodeID    string `json:"node_id"`
	AvatarURL string `json:"avatar_url"`
	Name      string `json:"name"`
}

// CompleteAuth performs the two provider calls in sequence, then mints
// the local credential. Both calls are single attempts; a non-2xx
// provider response surfaces its body through ExchangeError.
func (as *GithubAuthService) CompleteAuth(ctx context.Context, code string) (*AuthResult, error) {
	accessToken, err := as.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	profile, err := as.fetchProfile(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	token, err := as.jwtService.GenerateToken(profile.NodeID)
	if err != nil {
		return nil, errors.New("generating token error: " + err.Error())
	}
	return &AuthResult{
		Token:     token,
		ID:        profile.NodeID,
		AvatarURL: profile.AvatarURL,
		Name:      profile.Name,
	}, nil
}

func (as *GithubAuthService) exchangeCode(ctx context.Context, code string) (string, error) {
	body, err := sonic.Marshal(accessTokenRequest{
		ClientID:     as.clientID,
		ClientSecret: as.clientSecret,
		Code:         code,
	})
	if err != nil {
		return "", errors.New("encoding token request error: " + err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, as.tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.New("building token request error: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	payload, err := as.doProviderRequest(req)
	if err != nil {
		return "", err
	}
	var tokenResp accessTokenResponse
	if err := sonic.Unmarshal(payload, &tokenResp); err != nil {
		return "", errorvalues.ErrExchangeFailed
	}
	// The provider reports a bad code with a 200 and an error body
	if tokenResp.AccessToken == "" {
		return "", &ExchangeError{Payload: payload}
	}
	return tokenResp.AccessToken, nil
}

func (as *GithubAuthService) fetchProfile(ctx context.Context, accessToken string) (*githubProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, as.userURL, nil)
	if err != nil {
		return nil, errors.New("building profile request error: " + err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	payload, err := as.doProviderRequest(req)
	if err != nil {
		return nil, err
	}
	var profile githubProfile
	if err := sonic.Unmarshal(payload, &profile); err != nil {
		return nil, errorvalues.ErrExchangeFailed
	}
	return &profile, nil
}

func (as *GithubAuthService) doProviderRequest(req *http.Request) ([]byte, error) {
	resp, err := as.httpClient.Do(req)
	if err != nil {
		return nil, errorvalues.ErrExchangeFailed
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorvalues.ErrExchangeFailed
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ExchangeError{Payload: payload}
	}
	return payload, nil
}
