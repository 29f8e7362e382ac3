// Package gcal exports time sheets to Google Calendar.
package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"github.com/runoshun/daytrack/internal/domain"
)

// authTimeout bounds the browser round trip of Authorize.
const authTimeout = 5 * time.Minute

var _ domain.CalendarAuthorizer = (*Authorizer)(nil)

// Authorizer handles the OAuth flow for the calendar API.
type Authorizer struct {
	CredentialsFile string // OAuth client credentials.json from the Google console
	TokenFile       string // Cached user token
}

// NewAuthorizer creates an Authorizer from the [google] config section.
func NewAuthorizer(cfg domain.GoogleConfig) *Authorizer {
	return &Authorizer{
		CredentialsFile: expandHome(cfg.CredentialsFile),
		TokenFile:       expandHome(cfg.TokenFile),
	}
}

func (a *Authorizer) config() (*oauth2.Config, error) {
	b, err := os.ReadFile(a.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("gcal: read credentials %s: %w", a.CredentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(b, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("gcal: parse credentials: %w", err)
	}
	return cfg, nil
}

// Client returns an HTTP client authorized with the cached token.
// Refreshed tokens are written back to the token file.
// Returns domain.ErrNoToken when Authorize has not been run yet.
func (a *Authorizer) Client(ctx context.Context) (*http.Client, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	tok, err := a.loadToken()
	if err != nil {
		return nil, err
	}
	src := &savingTokenSource{
		base: cfg.TokenSource(ctx, tok),
		last: tok,
		save: a.saveToken,
	}
	return oauth2.NewClient(ctx, src), nil
}

// Authorize runs the loopback authorization code flow. openURL is called with the
// consent page URL; the user completes it in a browser.
func (a *Authorizer) Authorize(ctx context.Context, openURL func(string)) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("gcal: start callback listener: %w", err)
	}
	defer listener.Close()
	cfg.RedirectURL = fmt.Sprintf("http://%s/oauth2callback", listener.Addr().String())

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "authorization code not found", http.StatusBadRequest)
				errCh <- errors.New("gcal: authorization code not found in redirect")
				return
			}
			_, _ = fmt.Fprint(w, "daytrack is authorized. You can close this window.")
			codeCh <- code
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("gcal: callback server: %w", err)
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	openURL(cfg.AuthCodeURL("daytrack", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent")))

	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	select {
	case code := <-codeCh:
		tok, err := cfg.Exchange(ctx, code)
		if err != nil {
			return fmt.Errorf("gcal: exchange code: %w", err)
		}
		return a.saveToken(tok)
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return fmt.Errorf("gcal: authorization: %w", ctx.Err())
	}
}

func (a *Authorizer) loadToken() (*oauth2.Token, error) {
	f, err := os.Open(a.TokenFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("gcal: open token: %w", err)
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("gcal: decode token %s: %w", a.TokenFile, err)
	}
	return tok, nil
}

func (a *Authorizer) saveToken(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(a.TokenFile), 0o700); err != nil {
		return fmt.Errorf("gcal: create token directory: %w", err)
	}
	content, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("gcal: encode token: %w", err)
	}
	if err := os.WriteFile(a.TokenFile, content, 0o600); err != nil {
		return fmt.Errorf("gcal: write token: %w", err)
	}
	return nil
}

// savingTokenSource persists the token whenever the underlying source refreshes it.
type savingTokenSource struct {
	base oauth2.TokenSource
	last *oauth2.Token
	save func(*oauth2.Token) error
	mu   sync.Mutex
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || tok.AccessToken != s.last.AccessToken || tok.RefreshToken != s.last.RefreshToken {
		if err := s.save(tok); err != nil {
			return nil, err
		}
		s.last = tok
	}
	return tok, nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
