package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"developer-directory/internal/config"
	"developer-directory/internal/database/seeder"
	"developer-directory/internal/delivery/http/dto"
	"developer-directory/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type envelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Data       json.RawMessage      `json:"data"`
	Errors     []string             `json:"errors"`
	Pagination *response.Pagination `json:"pagination"`
}

func testConfig() config.Config {
	return config.Config{
		App:      config.AppConfig{AppName: "developer-directory-test", Environment: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
		Admin:    config.AdminConfig{Addr: "127.0.0.1:0"},
		Security: config.SecurityConfig{PasswordHasher: "bcrypt", BcryptCost: 4},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	c, err := NewContainer(context.Background(), testConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return New(c)
}

func call(t *testing.T, a *App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.Fiber.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func signup(t *testing.T, a *App, name, email string) dto.AuthResponse {
	t.Helper()
	status, env := call(t, a, http.MethodPost, "/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	var out dto.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	return out
}

func validDeveloper() map[string]any {
	return map[string]any{
		"name":       "Jane Doe",
		"role":       "Backend",
		"techStack":  []string{"Go", "PostgreSQL"},
		"experience": 5,
	}
}

func decodeDevelopers(t *testing.T, env envelope) []dto.DeveloperResponse {
	t.Helper()
	var out []dto.DeveloperResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func seedDemo(t *testing.T, a *App, owner uuid.UUID) {
	t.Helper()
	for _, d := range seeder.DemoDevelopers() {
		d.UserID = owner
		_, err := a.Container.Developers.Create(context.Background(), d)
		require.NoError(t, err)
	}
}

func TestAPI_Health(t *testing.T) {
	a := newTestApp(t)

	status, env := call(t, a, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}

func TestAPI_SignupAndLogin(t *testing.T) {
	a := newTestApp(t)

	created := signup(t, a, "Jane", "jane@example.com")
	assert.Equal(t, "jane@example.com", created.User.Email)
	assert.NotEqual(t, uuid.Nil, created.User.ID)

	status, env := call(t, a, http.MethodPost, "/auth/signup", "", map[string]string{
		"name": "Jane Again", "email": "jane@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", env.Message)
	assert.False(t, env.Success)

	status, env = call(t, a, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Login successful", env.Message)

	var logged dto.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &logged))
	assert.Equal(t, created.User.ID, logged.User.ID)
	assert.NotContains(t, string(env.Data), "password")

	status, env = call(t, a, http.MethodGet, "/auth/me", logged.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), created.User.ID.String())
}

func TestAPI_LongPassword(t *testing.T) {
	a := newTestApp(t)
	pw := strings.Repeat("p", 255)

	status, env := call(t, a, http.MethodPost, "/auth/signup", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": pw,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	status, env = call(t, a, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": pw,
	})
	assert.Equal(t, http.StatusOK, status, env.Message)

	status, _ = call(t, a, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": pw[:254] + "q",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_LoginFailuresShareMessage(t *testing.T) {
	a := newTestApp(t)
	signup(t, a, "Jane", "jane@example.com")

	for _, body := range []map[string]string{
		{"email": "jane@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "secret123"},
	} {
		status, env := call(t, a, http.MethodPost, "/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid email or password", env.Message)
	}
}

func TestAPI_SignupValidation(t *testing.T) {
	a := newTestApp(t)

	status, env := call(t, a, http.MethodPost, "/auth/signup", "", map[string]string{
		"name": "J", "email": "not-an-email", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, response.MessageValidation, env.Message)
	assert.Len(t, env.Errors, 3)

	status, env = call(t, a, http.MethodPost, "/auth/signup", "", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, response.MessageInvalidPayload, env.Message)
}

func TestAPI_DevelopersRequireAuth(t *testing.T) {
	a := newTestApp(t)

	status, env := call(t, a, http.MethodGet, "/developers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, response.MessageUnauthorized, env.Message)

	status, env = call(t, a, http.MethodGet, "/developers", "not.a.jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", env.Message)

	status, _ = call(t, a, http.MethodGet, "/ws/developers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_DeveloperLifecycle(t *testing.T) {
	a := newTestApp(t)
	owner := signup(t, a, "Owner", "owner@example.com")
	other := signup(t, a, "Other", "other@example.com")

	status, env := call(t, a, http.MethodPost, "/developers", owner.Token, validDeveloper())
	require.Equal(t, http.StatusCreated, status, env.Errors)
	assert.Equal(t, "Developer added successfully", env.Message)

	var created dto.DeveloperResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, owner.User.ID, created.UserID)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, created.TechStack)
	assert.False(t, created.JoiningDate.IsZero())

	path := "/developers/" + created.ID.String()

	status, env = call(t, a, http.MethodGet, path, other.Token, nil)
	require.Equal(t, http.StatusOK, status)

	update := validDeveloper()
	update["name"] = "Jane Smith"
	update["experience"] = 6

	status, env = call(t, a, http.MethodPut, path, other.Token, update)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, response.MessageForbidden, env.Message)

	status, env = call(t, a, http.MethodDelete, path, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = call(t, a, http.MethodPut, path, "", update)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, response.MessageUnauthorized, env.Message)

	status, _ = call(t, a, http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	missing := "/developers/" + uuid.NewString()
	for _, tok := range []string{owner.Token, other.Token} {
		status, env = call(t, a, http.MethodPut, missing, tok, update)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Developer not found", env.Message)

		status, _ = call(t, a, http.MethodDelete, missing, tok, nil)
		assert.Equal(t, http.StatusNotFound, status)
	}

	status, env = call(t, a, http.MethodPut, path, owner.Token, update)
	require.Equal(t, http.StatusOK, status, env.Errors)
	assert.Equal(t, "Developer updated successfully", env.Message)

	var updated dto.DeveloperResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Jane Smith", updated.Name)
	assert.Equal(t, 6, updated.Experience)
	assert.Equal(t, created.JoiningDate.Unix(), updated.JoiningDate.Unix())

	status, env = call(t, a, http.MethodDelete, path, owner.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Developer deleted successfully", env.Message)

	status, env = call(t, a, http.MethodGet, path, owner.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Developer not found", env.Message)

	status, _ = call(t, a, http.MethodDelete, path, owner.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_DeveloperNotFoundForBadID(t *testing.T) {
	a := newTestApp(t)
	owner := signup(t, a, "Owner", "owner@example.com")

	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		status, env := call(t, a, http.MethodGet, "/developers/"+id, owner.Token, nil)
		assert.Equal(t, http.StatusNotFound, status, id)
		assert.Equal(t, "Developer not found", env.Message, id)
	}
}

func TestAPI_DeveloperValidation(t *testing.T) {
	a := newTestApp(t)
	owner := signup(t, a, "Owner", "owner@example.com")

	cases := map[string]func(map[string]any){
		"negative experience": func(m map[string]any) { m["experience"] = -1 },
		"experience above 50": func(m map[string]any) { m["experience"] = 51 },
		"missing experience":  func(m map[string]any) { delete(m, "experience") },
		"unknown role":        func(m map[string]any) { m["role"] = "frontend" },
		"empty tech stack":    func(m map[string]any) { m["techStack"] = []string{} },
		"short name":          func(m map[string]any) { m["name"] = "J" },
		"bad photo url":       func(m map[string]any) { m["photoUrl"] = "not a url" },
		"fractional years":    func(m map[string]any) { m["experience"] = 2.5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			body := validDeveloper()
			mutate(body)
			status, env := call(t, a, http.MethodPost, "/developers", owner.Token, body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, response.MessageValidation, env.Message)
			assert.NotEmpty(t, env.Errors)
		})
	}

	for _, years := range []int{0, 50} {
		body := validDeveloper()
		body["experience"] = years
		status, env := call(t, a, http.MethodPost, "/developers", owner.Token, body)
		assert.Equal(t, http.StatusCreated, status, env.Errors)
	}

	status, env := call(t, a, http.MethodPost, "/developers", owner.Token,
		`{"name":"Jane Doe","role":"Backend","techStack":["Go"],"experience":5.0}`)
	require.Equal(t, http.StatusCreated, status, env.Errors)
	var whole dto.DeveloperResponse
	require.NoError(t, json.Unmarshal(env.Data, &whole))
	assert.Equal(t, 5, whole.Experience)

	status, env = call(t, a, http.MethodPost, "/developers", owner.Token,
		`{"name":"J","role":"Backend","techStack":["Go"],"experience":5.5}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, response.MessageValidation, env.Message)
	assert.Equal(t, []string{
		"name length must be at least 2 characters long",
		"experience must be an integer",
	}, env.Errors)

	status, env = call(t, a, http.MethodPost, "/developers", owner.Token, `{"name": "Jane",`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, response.MessageInvalidPayload, env.Message)
}

func TestAPI_ListPagination(t *testing.T) {
	a := newTestApp(t)
	owner := signup(t, a, "Owner", "owner@example.com")
	seedDemo(t, a, owner.User.ID)

	wantLen := map[string]int{"1": 12, "2": 12, "3": 1, "4": 0}
	for page, n := range wantLen {
		status, env := call(t, a, http.MethodGet, "/developers?page="+page, owner.Token, nil)
		require.Equal(t, http.StatusOK, status, page)
		require.NotNil(t, env.Pagination, page)
		assert.Equal(t, int64(25), env.Pagination.Total, page)
		assert.Equal(t, 12, env.Pagination.Limit, page)
		assert.Equal(t, 3, env.Pagination.Pages, page)
		assert.Len(t, decodeDevelopers(t, env), n, page)
	}

	status, env := call(t, a, http.MethodGet, "/developers?page=abc", owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, response.MessageValidation, env.Message)

	status, env = call(t, a, http.MethodGet, "/developers?limit=1000", owner.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 100, env.Pagination.Limit)
	assert.Len(t, decodeDevelopers(t, env), 25)
}

func TestAPI_ListFilterAndSearch(t *testing.T) {
	a := newTestApp(t)
	owner := signup(t, a, "Owner", "owner@example.com")
	seedDemo(t, a, owner.User.ID)

	status, env := call(t, a, http.MethodGet, "/developers?role=Frontend&limit=100", owner.Token, nil)
	require.Equal(t, http.StatusOK, status)
	frontend := decodeDevelopers(t, env)
	assert.Len(t, frontend, 9)
	for _, d := range frontend {
		assert.Equal(t, "Frontend", d.Role)
	}

	status, env = call(t, a, http.MethodGet, "/developers?role=Designer", owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, response.MessageValidation, env.Message)

	status, env = call(t, a, http.MethodGet, "/developers?search=REACT&limit=100", owner.Token, nil)
	require.Equal(t, http.StatusOK, status)
	names := make([]string, 0)
	for _, d := range decodeDevelopers(t, env) {
		names = append(names, d.Name)
	}
	assert.ElementsMatch(t, []string{"Alan Turing", "Dan Abramov", "Kent C. Dodds", "Tanner Linsley"}, names)

	status, env = call(t, a, http.MethodGet, "/developers?search=go&role=Full-Stack&limit=100", owner.Token, nil)
	require.Equal(t, http.StatusOK, status)
	combined := decodeDevelopers(t, env)
	require.Len(t, combined, 1)
	assert.Equal(t, "Margaret Hamilton", combined[0].Name)

	status, env = call(t, a, http.MethodGet, "/developers?search=100%25", owner.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeDevelopers(t, env))
	assert.Equal(t, 0, env.Pagination.Pages)
}

func TestAPI_ListSorting(t *testing.T) {
	a := newTestApp(t)
	owner := signup(t, a, "Owner", "owner@example.com")
	seedDemo(t, a, owner.User.ID)

	first := func(query string) dto.DeveloperResponse {
		t.Helper()
		status, env := call(t, a, http.MethodGet, "/developers?"+query, owner.Token, nil)
		require.Equal(t, http.StatusOK, status, query)
		items := decodeDevelopers(t, env)
		require.NotEmpty(t, items, query)
		return items[0]
	}

	assert.Equal(t, "Junior Dev", first("sortBy=experience&sortOrder=asc").Name)
	assert.Equal(t, "Ken Thompson", first("sortBy=experience&sortOrder=desc").Name)
	assert.Equal(t, "Ada Lovelace", first("sortBy=name&sortOrder=asc").Name)
	assert.Equal(t, "Wes Bos", first("sortBy=name&sortOrder=desc").Name)
	assert.Equal(t, "Ken Thompson", first("sortBy=salary&sortOrder=DESC").Name)

	status, env := call(t, a, http.MethodGet, "/developers?sortBy=experience&sortOrder=asc&limit=100", owner.Token, nil)
	require.Equal(t, http.StatusOK, status)
	items := decodeDevelopers(t, env)
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].Experience, items[i].Experience)
	}
}

func TestAPI_RouteNotFound(t *testing.T) {
	a := newTestApp(t)

	status, env := call(t, a, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, response.MessageRouteNotFound, env.Message)
	assert.False(t, env.Success)
}

func TestAPI_MutationsReachMetrics(t *testing.T) {
	a := newTestApp(t)
	owner := signup(t, a, "Owner", "owner@example.com")

	status, _ := call(t, a, http.MethodPost, "/developers", owner.Token, validDeveloper())
	require.Equal(t, http.StatusCreated, status)

	rec := httptest.NewRecorder()
	a.Admin.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `op="created"`)
}
