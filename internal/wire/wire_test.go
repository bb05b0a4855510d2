package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"book-review/internal/data/repository"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		App:      utils.AppConfig{Name: "book-review", Port: "0"},
		Database: utils.DatabaseConfig{URL: "memory://"},
		JWT:      utils.JWTConfig{Secret: "test-secret"},
		CORS:     utils.CORSConfig{Origins: []string{"*"}},
	}
}

func newTestApp(t *testing.T, repo *repository.Repository) *httptest.Server {
	t.Helper()
	config := testConfig()
	app, err := Wiring(repo, config, utils.NewJWTManager(config.JWT.Secret), prometheus.NewRegistry(), zap.NewNop())
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return srv
}

type gqlResult struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func post(t *testing.T, srv *httptest.Server, token, query string, vars map[string]any) gqlResult {
	t.Helper()
	body, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+GraphQLPath, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out gqlResult
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestEndToEnd(t *testing.T) {
	srv := newTestApp(t, repository.NewMemoryRepository(zap.NewNop()))

	reg := post(t, srv, "", `mutation { register(username: "a", email: "a@x.io", password: "pw") { token user { id username role } } }`, nil)
	require.Empty(t, reg.Errors)
	var auth struct {
		Token string
		User  struct{ ID, Username, Role string }
	}
	require.NoError(t, json.Unmarshal(reg.Data["register"], &auth))
	assert.Equal(t, "a", auth.User.Username)
	assert.Equal(t, "user", auth.User.Role)

	login := post(t, srv, "", `mutation { login(email: "a@x.io", password: "pw") { token user { id } } }`, nil)
	require.Empty(t, login.Errors)
	var session struct {
		Token string
		User  struct{ ID string }
	}
	require.NoError(t, json.Unmarshal(login.Data["login"], &session))
	assert.Equal(t, auth.User.ID, session.User.ID)

	anon := post(t, srv, "", `mutation { addBook(title: "t", author: "a", description: "d") { id } }`, nil)
	require.Len(t, anon.Errors, 1)
	assert.Equal(t, "UNAUTHENTICATED", anon.Errors[0].Extensions["code"])

	// an invalid token behaves like no token
	bad := post(t, srv, "not-a-token", `mutation { addBook(title: "t", author: "a", description: "d") { id } }`, nil)
	require.Len(t, bad.Errors, 1)
	assert.Equal(t, "UNAUTHENTICATED", bad.Errors[0].Extensions["code"])

	book := post(t, srv, session.Token, `mutation { addBook(title: "Dune", author: "Herbert", description: "Sand") { id addedBy { id } } }`, nil)
	require.Empty(t, book.Errors)
	var added struct {
		ID      string
		AddedBy struct{ ID string }
	}
	require.NoError(t, json.Unmarshal(book.Data["addBook"], &added))
	assert.Equal(t, auth.User.ID, added.AddedBy.ID)

	review := post(t, srv, session.Token, `mutation($b: ID!) { addReview(bookId: $b, rating: 5, comment: "yes") { id book { id } } }`,
		map[string]any{"b": added.ID})
	require.Empty(t, review.Errors)

	got := post(t, srv, "", `query($id: ID!) { getBook(id: $id) { title reviews { rating user { username } } } }`,
		map[string]any{"id": added.ID})
	require.Empty(t, got.Errors)
	assert.JSONEq(t, `{"title":"Dune","reviews":[{"rating":5,"user":{"username":"a"}}]}`, string(got.Data["getBook"]))
}

func TestHealth(t *testing.T) {
	srv := newTestApp(t, repository.NewMemoryRepository(zap.NewNop()))

	res, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "OK", string(body))
}

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthUnavailable(t *testing.T) {
	r := chi.NewRouter()
	wireOps(r, downStore{}, testConfig(), prometheus.NewRegistry(), zap.NewNop())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "UNAVAILABLE", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestApp(t, repository.NewMemoryRepository(zap.NewNop()))
	post(t, srv, "", `{ getBooks { id } }`, nil)

	res, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `graphql_operations_total{code="OK",operation="getBooks"} 1`)
	assert.Contains(t, string(body), `http_requests_total{method="POST",route="/graphql",status="200"} 1`)
}

func TestRootBanner(t *testing.T) {
	srv := newTestApp(t, repository.NewMemoryRepository(zap.NewNop()))

	res, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	assert.JSONEq(t, `{"name":"book-review","graphql":"/graphql"}`, string(body))
}
