package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dash "github.com/nfrund/userdash/internal/dashboard"
	"github.com/nfrund/userdash/internal/domain"
	"github.com/nfrund/userdash/internal/handlers"
	"github.com/nfrund/userdash/internal/pubsub"
	"github.com/nfrund/userdash/internal/registry"
	"github.com/nfrund/userdash/internal/rendering"
	"github.com/nfrund/userdash/internal/testutils"
)

type testEnv struct {
	e       *echo.Echo
	module  *Module
	pages   *PageStore
	bridge  *pubsub.WatermillBridge
	fetcher *testutils.StubFetcher
}

func newTestEnv(t *testing.T, fetcher *testutils.StubFetcher) *testEnv {
	t.Helper()

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.NewComponentRenderer()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("dashboard-test-secret"))))

	bridge := pubsub.NewWatermillBridge()
	m := New(Dependencies{
		Fetcher:    fetcher,
		Publisher:  bridge,
		Subscriber: bridge,
		Renderer:   rendering.NewComponentRenderer(),
		MaxPages:   4,
	})

	reg := registry.New(nil)
	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Boot(context.Background(), e.Group(""), reg))

	t.Cleanup(func() {
		_ = m.Shutdown(context.Background())
		_ = bridge.Close()
	})

	return &testEnv{
		e:       e,
		module:  m,
		pages:   registry.MustGet(reg, PageStoreKey),
		bridge:  bridge,
		fetcher: fetcher,
	}
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func htmxRequest(method, target string, body *strings.Reader) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("HX-Request", "true")
	return req
}

var pageIDPattern = regexp.MustCompile(`id="dashboard-([0-9a-f-]{36})"`)

// openPage opens a dashboard for subject and waits for both fetches.
func (env *testEnv) openPage(t *testing.T, subject string) *Page {
	t.Helper()
	rec := env.do(httptest.NewRequest(http.MethodGet, "/users/"+subject, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	match := pageIDPattern.FindStringSubmatch(rec.Body.String())
	require.Len(t, match, 2, "page instance id not found in body")

	page, ok := env.pages.Get(match[1])
	require.True(t, ok)
	page.Controller.Wait()
	return page
}

func TestUserGet_RendersFullPage(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())

	rec := env.do(httptest.NewRequest(http.MethodGet, "/users/1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "User 1 - User Dashboard")
	assert.Contains(t, body, `hx-ext="ws"`)
	assert.Contains(t, body, `ws-connect="/pages/`)
	assert.Contains(t, body, `class="subject-form`)
	assert.Equal(t, 1, env.pages.Len())
}

func TestUserGet_InvalidSubject(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())

	rec := env.do(httptest.NewRequest(http.MethodGet, "/users/not-a-user", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, env.pages.Len())
	assert.Equal(t, 0, env.fetcher.ProfileCalls())
}

func TestPageGet_FragmentAfterLoad(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())
	page := env.openPage(t, "1")

	rec := env.do(htmxRequest(http.MethodGet, "/pages/"+page.ID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, `data-phase="loaded"`)
	assert.Contains(t, body, "Leanne Graham")
	assert.Contains(t, body, "first post")
	assert.NotContains(t, body, "hx-trigger", "terminal fragments stop polling")
}

func TestPageGet_FullDocumentWithoutHTMX(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())
	page := env.openPage(t, "1")

	rec := env.do(httptest.NewRequest(http.MethodGet, "/pages/"+page.ID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<!doctype html>")
}

func TestPageGet_UnknownPage(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())

	t.Run("htmx stops polling", func(t *testing.T) {
		rec := env.do(htmxRequest(http.MethodGet, "/pages/missing", nil))
		assert.Equal(t, htmxStopPolling, rec.Code)
	})

	t.Run("browser gets 404", func(t *testing.T) {
		rec := env.do(httptest.NewRequest(http.MethodGet, "/pages/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPageGet_FailureShowsOnlyAlert(t *testing.T) {
	fetcher := testutils.NewStubFetcher()
	fetcher.ProfileErr = &domain.FetchFailure{Resource: domain.ResourceProfile, StatusCode: http.StatusNotFound}
	env := newTestEnv(t, fetcher)
	page := env.openPage(t, "999")

	rec := env.do(htmxRequest(http.MethodGet, "/pages/"+page.ID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-phase="failed"`)
	assert.Contains(t, body, "Failed to load user profile")
	assert.NotContains(t, body, "User Activities")
}

func TestSubjectPost_HTMXSwitchesSubject(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())
	page := env.openPage(t, "1")

	form := url.Values{"id": {"2"}}
	rec := env.do(htmxRequest(http.MethodPost, "/pages/"+page.ID+"/subject", strings.NewReader(form.Encode())))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-subject="2"`)

	page.Controller.Wait()
	assert.Equal(t, "2", page.Controller.Subject())
	assert.Equal(t, 2, env.fetcher.ProfileCalls())
	assert.Equal(t, 2, env.fetcher.ActivitiesCalls())
}

func TestSubjectPost_BrowserRedirects(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())
	page := env.openPage(t, "1")

	form := url.Values{"id": {"3"}}
	req := httptest.NewRequest(http.MethodPost, "/pages/"+page.ID+"/subject", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := env.do(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pages/"+page.ID, rec.Header().Get(echo.HeaderLocation))
	page.Controller.Wait()
	assert.Equal(t, "3", page.Controller.Subject())
}

func TestSubjectPost_InvalidSetsFlash(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())
	page := env.openPage(t, "1")

	form := url.Values{"id": {"../etc"}}
	rec := env.do(htmxRequest(http.MethodPost, "/pages/"+page.ID+"/subject", strings.NewReader(form.Encode())))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/pages/"+page.ID, rec.Header().Get("HX-Redirect"))
	assert.Equal(t, "1", page.Controller.Subject(), "an invalid id must not reach the controller")

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "flash should be stored in the session cookie")

	req := httptest.NewRequest(http.MethodGet, "/pages/"+page.ID, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = env.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), invalidSubjectMessage)
	assert.Contains(t, rec.Body.String(), `id="flash-messages"`)
}

func TestSubjectPost_UnknownPage(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())

	form := url.Values{"id": {"2"}}
	rec := env.do(htmxRequest(http.MethodPost, "/pages/missing/subject", strings.NewReader(form.Encode())))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileAPI(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "ok", path: "/api/users/1/profile", wantStatus: http.StatusOK},
		{name: "invalid id", path: "/api/users/a.b/profile", wantStatus: http.StatusBadRequest, wantCode: "invalid_subject"},
		{
			name:       "upstream 404",
			path:       "/api/users/999/profile",
			err:        &domain.FetchFailure{Resource: domain.ResourceProfile, StatusCode: http.StatusNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "upstream 500",
			path:       "/api/users/1/profile",
			err:        &domain.FetchFailure{Resource: domain.ResourceProfile, StatusCode: http.StatusInternalServerError},
			wantStatus: http.StatusBadGateway,
			wantCode:   "upstream_status",
		},
		{
			name:       "malformed",
			path:       "/api/users/1/profile",
			err:        domain.ErrMalformedResponse,
			wantStatus: http.StatusBadGateway,
			wantCode:   "malformed_upstream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := testutils.NewStubFetcher()
			fetcher.ProfileErr = tt.err
			env := newTestEnv(t, fetcher)

			rec := env.do(httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var resp handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantCode, resp.Code)
				return
			}
			var profile domain.UserProfile
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
			assert.Equal(t, "Leanne Graham", profile.Name)
			assert.Equal(t, domain.AvatarPlaceholder, profile.Avatar)
		})
	}
}

func TestActivitiesAPI(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t, testutils.NewStubFetcher())

		rec := env.do(httptest.NewRequest(http.MethodGet, "/api/users/1/activities", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var activities []domain.UserActivity
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activities))
		assert.Equal(t, testutils.SampleActivities(), activities)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		fetcher := testutils.NewStubFetcher()
		fetcher.ActivitiesErr = domain.ErrDuplicateActivity
		env := newTestEnv(t, fetcher)

		rec := env.do(httptest.NewRequest(http.MethodGet, "/api/users/1/activities", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestPageStateAPI(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())
	page := env.openPage(t, "1")

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/pages/"+page.ID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var state dash.ViewState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, dash.PhaseLoaded, state.Phase)
	assert.Equal(t, "1", state.Subject)
	require.NotNil(t, state.Profile)
	assert.Len(t, state.Activities, 2)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/pages/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStateChangesArePublished(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())
	page := env.pages.Create(env.module.handler.publishState)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var phases []dash.Phase
	err := StateChangedEvent(page.ID).Subscribe(ctx, env.bridge, func(ctx context.Context, ev StateChanged) error {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, page.ID, ev.PageID)
		assert.Equal(t, "1", ev.Subject)
		phases = append(phases, ev.Phase)
		return nil
	})
	require.NoError(t, err)

	page.Controller.SetSubject("1")
	page.Controller.Wait()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(phases) == 4
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []dash.Phase{dash.PhaseResetting, dash.PhaseLoading, dash.PhasePartiallyLoaded, dash.PhaseLoaded}, phases)
}

func TestServeWS_StreamsFragments(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())
	srv := httptest.NewServer(env.e)
	defer srv.Close()

	page := env.openPage(t, "1")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/pages/" + page.ID + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `id="dashboard-`+page.ID+`"`)
	assert.Contains(t, string(data), `data-phase="loaded"`)

	page.Controller.SetSubject("2")

	for {
		_, data, err = conn.Read(ctx)
		require.NoError(t, err)
		if strings.Contains(string(data), `data-subject="2"`) && strings.Contains(string(data), `data-phase="loaded"`) {
			break
		}
	}
}

func TestServeWS_UnknownPage(t *testing.T) {
	env := newTestEnv(t, testutils.NewStubFetcher())

	rec := env.do(httptest.NewRequest(http.MethodGet, "/pages/missing/ws", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPageStore_EvictsOldest(t *testing.T) {
	store := NewPageStore(context.Background(), testutils.NewStubFetcher(), 2, nil)

	first := store.Create(nil)
	second := store.Create(nil)
	third := store.Create(nil)

	assert.Equal(t, 2, store.Len())
	_, ok := store.Get(first.ID)
	assert.False(t, ok)
	_, ok = store.Get(second.ID)
	assert.True(t, ok)
	_, ok = store.Get(third.ID)
	assert.True(t, ok)
}

func TestPageStore_LogsAgeOfEvictedPage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := NewPageStore(context.Background(), testutils.NewStubFetcher(), 1, logger)

	first := store.Create(nil)
	second := store.Create(nil)

	require.False(t, second.CreatedAt.Before(first.CreatedAt))
	out := buf.String()
	assert.Contains(t, out, "Evicted dashboard page")
	assert.Contains(t, out, "page_id="+first.ID)
	assert.Contains(t, out, "age=")
}

func TestPageStore_ObserverGetsPageID(t *testing.T) {
	store := NewPageStore(context.Background(), testutils.NewStubFetcher(), 4, nil)

	var mu sync.Mutex
	seen := map[string]int{}
	page := store.Create(func(pageID string, state dash.ViewState) {
		mu.Lock()
		defer mu.Unlock()
		seen[pageID]++
	})

	page.Controller.SetSubject("1")
	page.Controller.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 4, seen[page.ID])
}

func TestStateTopic(t *testing.T) {
	assert.Equal(t, "dashboard.abc.state", StateTopic("abc"))
	assert.Equal(t, "dashboard.abc.state", StateChangedEvent("abc").Topic)
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "dashboard", New(Dependencies{}).Name())
}
