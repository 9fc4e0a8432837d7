package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"github.com/ujjwalpandey922/meeting-schedular/pkg/models"
)

const (
	userInfoURL  = "https://www.googleapis.com/oauth2/v3/userinfo"
	sessionTTL   = time.Hour
	userInfoWait = 10 * time.Second
)

var ErrNotConfigured = errors.New("oauth client is not configured")

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	JWTSecret    string
}

type Service struct {
	log    *logrus.Entry
	cfg    *oauth2.Config
	secret []byte
}

func New(log *logrus.Logger, config Config) *Service {
	cfg := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes: []string{
			calendar.CalendarEventsScope,
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}
	return &Service{
		log:    log.WithField("component", "auth"),
		cfg:    cfg,
		secret: []byte(config.JWTSecret),
	}
}

// Configured reports whether the OAuth client credentials are present. Without
// them every login attempt is unauthenticated.
func (s *Service) Configured() bool {
	return s.cfg.ClientID != "" && s.cfg.ClientSecret != ""
}

// LoginURL returns the Google consent URL and the state nonce to verify on
// callback.
func (s *Service) LoginURL() (string, string) {
	state := uuid.New().String()
	return s.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), state
}

// Exchange trades the authorization code for an access token and resolves the
// user's email via the userinfo endpoint.
func (s *Service) Exchange(ctx context.Context, code string) (string, string, error) {
	if !s.Configured() {
		return "", "", ErrNotConfigured
	}
	tok, err := s.cfg.Exchange(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("err exchanging code: %w", err)
	}
	email, err := s.fetchEmail(ctx, tok)
	if err != nil {
		return "", "", err
	}
	return email, tok.AccessToken, nil
}

func (s *Service) fetchEmail(ctx context.Context, tok *oauth2.Token) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, userInfoWait)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return "", fmt.Errorf("err creating userinfo request: %w", err)
	}
	resp, err := s.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return "", fmt.Errorf("err fetching userinfo: %w", err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			s.log.Warnf("err closing userinfo body: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo responded %d", resp.StatusCode)
	}
	var info struct {
		Email string `json:"email"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("err decoding userinfo: %w", err)
	}
	if info.Email == "" {
		return "", fmt.Errorf("userinfo returned no email")
	}
	return info.Email, nil
}

// IssueToken signs a session token carrying the user's email and calendar
// access credential.
func (s *Service) IssueToken(email, accessToken string) (string, error) {
	now := time.Now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		Email:       email,
		AccessToken: accessToken,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("err signing token: %w", err)
	}
	return signed, nil
}

func (s *Service) ParseToken(accessToken string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("err parsing token: %w", err)
	}
	claims, ok := token.Claims.(*models.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}
