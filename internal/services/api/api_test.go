package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"inkarena/internal/modkit/httpkit"
	"inkarena/internal/platform/config"
	phttp "inkarena/internal/platform/net/http"
	"inkarena/internal/platform/store"
	"inkarena/internal/services/api"
)

// mountAPI stands up the full API against an in-process redis.
// Dev tokens are "user" or "user@community".
func mountAPI(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	st, err := store.Open(context.Background(), store.Config{
		AppName: "inkarena-test",
		Redis:   store.RedisConfig{Enabled: true, Addr: mr.Addr()},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	auth := httpkit.NewPortFunc(func(token string) (string, string, error) {
		user, community, _ := strings.Cut(token, "@")
		return user, community, nil
	})

	srv := phttp.NewServer(config.New())
	r := srv.Router()
	api.Mount(r, api.Options{
		Config: config.New().Prefix("CORE_API_"),
		Store:  st,
		Auth:   auth,
	})
	return r.Mux()
}

func doJSON(t *testing.T, h http.Handler, method, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestModerationRoutesRequireBearer(t *testing.T) {
	h := mountAPI(t)

	ban := `{"community":"pics","word":"grenade"}`
	if rec := doJSON(t, h, http.MethodPost, "/api/v1/words/ban", "", ban); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated ban = %d, want 401: %s", rec.Code, rec.Body)
	}
	if rec := doJSON(t, h, http.MethodPost, "/api/v1/words/ban", "mod1", ban); rec.Code != http.StatusOK {
		t.Fatalf("authenticated ban = %d, want 200: %s", rec.Code, rec.Body)
	}

	// word suggestions stay open
	add := `{"community":"pics","word":"canoe"}`
	if rec := doJSON(t, h, http.MethodPost, "/api/v1/words/add", "", add); rec.Code != http.StatusOK {
		t.Fatalf("unauthenticated add = %d, want 200: %s", rec.Code, rec.Body)
	}
}

func TestBoostsUseCallerIdentity(t *testing.T) {
	h := mountAPI(t)

	if rec := doJSON(t, h, http.MethodGet, "/api/v1/boosts/inventory", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated inventory = %d, want 401: %s", rec.Code, rec.Body)
	}
	// no user_id param: the bearer subject is the inventory owner
	if rec := doJSON(t, h, http.MethodGet, "/api/v1/boosts/inventory", "u9", ""); rec.Code != http.StatusOK {
		t.Fatalf("inventory via bearer = %d, want 200: %s", rec.Code, rec.Body)
	}
}

func TestCommunityClaimValidated(t *testing.T) {
	h := mountAPI(t)

	if rec := doJSON(t, h, http.MethodGet, "/api/v1/boosts/inventory", "u9@nowhere", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("unknown community claim = %d, want 403: %s", rec.Code, rec.Body)
	}

	if rec := doJSON(t, h, http.MethodPost, "/api/v1/words/init?community=pics", "mod1", ""); rec.Code != http.StatusOK {
		t.Fatalf("init = %d, want 200: %s", rec.Code, rec.Body)
	}
	if rec := doJSON(t, h, http.MethodGet, "/api/v1/boosts/inventory", "u9@pics", ""); rec.Code != http.StatusOK {
		t.Fatalf("registered community claim = %d, want 200: %s", rec.Code, rec.Body)
	}
}
