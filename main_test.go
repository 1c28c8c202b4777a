package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/config"
	"shortlink/models"
	"shortlink/pkg/logger"
	"shortlink/shortener"
)

var errDuplicateCode = errors.New("duplicate short code")

type memStore struct {
	nextID int
	recs   map[int]*models.URL
}

func (m *memStore) FindByCode(code string) (*models.URL, error) {
	for _, r := range m.recs {
		if r.ShortCode == code {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindByURL(original string) (*models.URL, error) {
	for _, r := range m.recs {
		if r.Original == original && r.Unlimited() {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) Insert(u *models.URL) error {
	for _, r := range m.recs {
		if r.ShortCode == u.ShortCode {
			return errDuplicateCode
		}
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.recs[u.ID] = &cp
	return nil
}

func (m *memStore) DeleteByID(id int) error {
	delete(m.recs, id)
	return nil
}

func (m *memStore) DecrementUses(id int) (int, bool, error) {
	r, ok := m.recs[id]
	if !ok || r.RemainingUses <= 0 {
		return 0, false, nil
	}
	r.RemainingUses--
	return r.RemainingUses, true, nil
}

func (m *memStore) IsConflict(err error) bool {
	return errors.Is(err, errDuplicateCode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *memStore, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	store := &memStore{recs: map[int]*models.URL{}}
	cfg := &config.Config{Port: "0", BaseURL: "http://short.test"}
	cfg.Shortener.CodeLength = 8
	cfg.Shortener.MaxGenerateAttempts = 32
	cfg.Shortener.DedupByURL = true

	svc := shortener.NewService(store, shortener.Policy{
		CodeLength:          cfg.Shortener.CodeLength,
		MaxGenerateAttempts: cfg.Shortener.MaxGenerateAttempts,
		DedupByURL:          cfg.Shortener.DedupByURL,
	})
	return newRouter(&server{svc: svc, cfg: cfg}), store, cfg
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func soleCode(t *testing.T, store *memStore) string {
	t.Helper()
	require.Len(t, store.recs, 1)
	for _, r := range store.recs {
		return r.ShortCode
	}
	return ""
}

func TestCreateAndRedirect(t *testing.T) {
	r, store, cfg := newTestRouter(t)

	w := postForm(r, "/api", url.Values{"url": {"https://go.dev/doc/"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), cfg.BaseURL+"/api/")
	assert.Contains(t, w.Body.String(), "data:image/png;base64,")

	code := soleCode(t, store)
	w = get(r, "/api/"+code)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://go.dev/doc/", w.Header().Get("Location"))
}

func TestCreateViaShorturlAlias(t *testing.T) {
	r, store, _ := newTestRouter(t)

	w := postForm(r, "/api/shorturl", url.Values{"url": {"https://go.dev/"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.recs, 1)
}

func TestCreateInvalidURLRendersError(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := postForm(r, "/api", url.Values{"url": {"not a url"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid URL Input")
}

func TestCreateAliasConflictRendersError(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := postForm(r, "/api", url.Values{"url": {"https://go.dev/"}, "domain": {"my link"}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postForm(r, "/api", url.Values{"url": {"https://golang.org/"}, "domain": {" my link "}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alias is already taken")
}

func TestRedirectUnknownCode(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := get(r, "/api/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Short URL not found")
}

func TestRedirectExhaustedLink(t *testing.T) {
	r, store, _ := newTestRouter(t)

	w := postForm(r, "/api", url.Values{"url": {"https://go.dev/"}, "use": {"1"}})
	require.Equal(t, http.StatusOK, w.Code)
	code := soleCode(t, store)

	w = get(r, "/api/"+code)
	assert.Equal(t, http.StatusFound, w.Code)

	w = get(r, "/api/"+code)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckRemainingUses(t *testing.T) {
	r, store, cfg := newTestRouter(t)

	w := postForm(r, "/api", url.Values{"url": {"https://go.dev/"}, "use": {"3"}})
	require.Equal(t, http.StatusOK, w.Code)
	code := soleCode(t, store)

	w = postForm(r, "/use", url.Values{"shorturl": {cfg.BaseURL + "/api/" + code}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Remaining uses: 3")

	// Checking must not consume a use.
	w = postForm(r, "/use", url.Values{"shorturl": {cfg.BaseURL + "/api/" + code}})
	assert.Contains(t, w.Body.String(), "Remaining uses: 3")
}

func TestCheckForeignLinkRejected(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := postForm(r, "/use", url.Values{"shorturl": {"https://other.example/api/abc"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "not issued by this service")
}

func TestLandingAndNotFoundPages(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Shortlink")

	w = get(r, "/nope/nothing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}
