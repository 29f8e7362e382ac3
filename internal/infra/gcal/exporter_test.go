package gcal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/runoshun/daytrack/internal/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *calendar.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	srv, err := calendar.NewService(context.Background(),
		option.WithHTTPClient(server.Client()),
		option.WithEndpoint(server.URL+"/"),
	)
	require.NoError(t, err)
	return srv
}

func TestExporter_Export(t *testing.T) {
	// Setup
	var mu sync.Mutex
	var paths []string
	var events []calendar.Event
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var ev calendar.Event
		_ = json.NewDecoder(r.Body).Decode(&ev)
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		events = append(events, ev)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ev1"}`))
	})
	start := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	rows := []domain.TimeSheetRow{
		{TaskID: 1, Title: "Ship release", Start: start, Duration: time.Hour},
		{TaskID: 2, Title: "Review PR", Start: start.Add(time.Hour), Duration: 30 * time.Minute},
	}

	// Execute
	err := NewExporterWithService(srv, "work").Export(context.Background(), rows)

	// Assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, strings.HasSuffix(paths[0], "calendars/work/events"), paths[0])
	assert.True(t, strings.HasPrefix(paths[0], http.MethodPost))
	assert.Equal(t, "Ship release", events[0].Summary)
	assert.Equal(t, "2026-10-14T09:00:00Z", events[0].Start.DateTime)
	assert.Equal(t, "2026-10-14T10:00:00Z", events[0].End.DateTime)
	assert.Equal(t, "2", events[1].ExtendedProperties.Private[taskIDProperty])
	assert.Equal(t, "2026-10-14T10:30:00Z", events[1].End.DateTime)
}

func TestExporter_Export_InsertError(t *testing.T) {
	calls := 0
	srv := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, `{"error":{"code":403,"message":"forbidden"}}`, http.StatusForbidden)
	})
	rows := []domain.TimeSheetRow{{TaskID: 1}, {TaskID: 2}}

	err := NewExporterWithService(srv, "primary").Export(context.Background(), rows)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "task #1")
	assert.Equal(t, 1, calls)
}

func TestExporter_Export_NotAuthorized(t *testing.T) {
	dir := t.TempDir()
	credentials := filepath.Join(dir, "credentials.json")
	writeCredentials(t, credentials)

	e := NewExporter(domain.GoogleConfig{
		CredentialsFile: credentials,
		TokenFile:       filepath.Join(dir, "token.json"),
	})
	err := e.Export(context.Background(), []domain.TimeSheetRow{{TaskID: 1}})

	assert.ErrorIs(t, err, domain.ErrNoToken)
	assert.Equal(t, domain.DefaultCalendar, e.calendarID)
}

func TestAuthorizer_MissingCredentials(t *testing.T) {
	a := &Authorizer{CredentialsFile: filepath.Join(t.TempDir(), "missing.json")}

	_, err := a.Client(context.Background())

	assert.Error(t, err)
}

func TestAuthorizer_TokenRoundTrip(t *testing.T) {
	a := &Authorizer{TokenFile: filepath.Join(t.TempDir(), "sub", "token.json")}
	tok := &oauth2.Token{AccessToken: "at", RefreshToken: "rt"}

	require.NoError(t, a.saveToken(tok))
	got, err := a.loadToken()

	require.NoError(t, err)
	assert.Equal(t, "at", got.AccessToken)
	assert.Equal(t, "rt", got.RefreshToken)
}

type staticSource struct {
	tok *oauth2.Token
}

func (s *staticSource) Token() (*oauth2.Token, error) { return s.tok, nil }

func TestSavingTokenSource_SavesOnRefresh(t *testing.T) {
	var saved []string
	base := &staticSource{tok: &oauth2.Token{AccessToken: "a"}}
	src := &savingTokenSource{
		base: base,
		last: &oauth2.Token{AccessToken: "a"},
		save: func(tok *oauth2.Token) error {
			saved = append(saved, tok.AccessToken)
			return nil
		},
	}

	_, err := src.Token()
	require.NoError(t, err)
	assert.Empty(t, saved)

	base.tok = &oauth2.Token{AccessToken: "b"}
	_, err = src.Token()
	require.NoError(t, err)
	_, err = src.Token()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, saved)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/me")

	assert.Equal(t, "/home/me/x/token.json", expandHome("~/x/token.json"))
	assert.Equal(t, "/abs/token.json", expandHome("/abs/token.json"))
	assert.Equal(t, "", expandHome(""))
}

func writeCredentials(t *testing.T, path string) {
	t.Helper()
	content := `{"installed":{"client_id":"id","client_secret":"secret",` +
		`"auth_uri":"https://accounts.google.com/o/oauth2/auth",` +
		`"token_uri":"https://oauth2.googleapis.com/token",` +
		`"redirect_uris":["http://localhost"]}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
