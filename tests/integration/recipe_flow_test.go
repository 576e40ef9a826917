package integration

import (
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cookbook-backend/application/services"
	"cookbook-backend/infrastructure/persistence/memory"
	"cookbook-backend/infrastructure/storage"
	"cookbook-backend/interfaces/http/rest"
	"cookbook-backend/interfaces/http/rest/handlers"
	"cookbook-backend/interfaces/http/web"
	"cookbook-backend/pkg/auth"
)

// newTestServer wires the full HTTP stack against the in-memory stores
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	users := memory.NewUserRepository()
	recipes := memory.NewRecipeRepository()
	comments := memory.NewCommentRepository()
	sessions := auth.NewManager(memory.NewSessionStore(), "cookbook_session", false)

	imageDir := t.TempDir()
	images, err := storage.NewLocalImageStore(imageDir, logger)
	require.NoError(t, err)

	renderer, err := web.NewRenderer(logger)
	require.NoError(t, err)

	accountService := services.NewAccountService(users, logger)
	recipeService := services.NewRecipeService(users, recipes, logger)
	commentService := services.NewCommentService(comments, recipes, logger)

	authHandler := handlers.NewAuthHandler(accountService, sessions, renderer, logger)
	recipeHandler := handlers.NewRecipeHandler(recipeService, commentService, users, images, renderer, logger)

	router := rest.NewRouter(authHandler, recipeHandler, sessions, users, imageDir, logger)
	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server
}

// newClient returns a client with its own cookie jar that never follows
// redirects, so tests can assert on Location headers directly
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, serverURL, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(serverURL+path, form)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, client *http.Client, serverURL, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(serverURL + path)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func location(t *testing.T, resp *http.Response) string {
	t.Helper()
	resp.Body.Close()
	loc, err := resp.Location()
	require.NoError(t, err)
	return loc.Path
}

// signUp registers and signs in a user, returning their client
func signUp(t *testing.T, serverURL, username, password string) *http.Client {
	t.Helper()
	client := newClient(t)

	resp := postForm(t, client, serverURL, "/register", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, "/login", location(t, resp))

	resp = postForm(t, client, serverURL, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, "/browse", location(t, resp))
	return client
}

// createRecipe submits the multipart recipe form and returns the redirect
func createRecipe(t *testing.T, client *http.Client, serverURL, title string) *http.Response {
	t.Helper()

	var buf strings.Builder
	writer := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":           title,
		"estimatedTime":   "45",
		"numServings":     "4",
		"estimatedCost":   "12.50",
		"difficultyLevel": "medium",
		"cuisine":         "mexican",
		"description":     "A hearty bowl.",
		"ingredients":     "beans, beef, chili",
		"instructions":    "Simmer everything.",
	}
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	part, err := writer.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-jpeg"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, serverURL+"/recipe-add", strings.NewReader(buf.String()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func TestLoginFlashShownExactlyOnce(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	resp := postForm(t, client, server.URL, "/register", url.Values{
		"username": {"alice"},
		"password": {"hunter2"},
	})
	assert.Equal(t, "/login", location(t, resp))

	// Wrong password flags the session and bounces back to the form
	resp = postForm(t, client, server.URL, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	assert.Equal(t, "/login", location(t, resp))

	resp = get(t, client, server.URL, "/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Incorrect username or password")

	// Refresh renders the plain form again
	resp = get(t, client, server.URL, "/login")
	assert.NotContains(t, readBody(t, resp), "Incorrect username or password")
}

func TestRegisterDuplicateUsernameFlash(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	resp := postForm(t, client, server.URL, "/register", url.Values{
		"username": {"alice"},
		"password": {"hunter2"},
	})
	assert.Equal(t, "/login", location(t, resp))

	resp = postForm(t, client, server.URL, "/register", url.Values{
		"username": {"alice"},
		"password": {"other"},
	})
	assert.Equal(t, "/register", location(t, resp))

	resp = get(t, client, server.URL, "/register")
	assert.Contains(t, readBody(t, resp), "Username already in use")

	resp = get(t, client, server.URL, "/register")
	assert.NotContains(t, readBody(t, resp), "Username already in use")
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)

	for _, path := range []string{"/browse", "/recipe-add", "/my-recipes", "/saved-recipes"} {
		resp := get(t, client, server.URL, path)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", location(t, resp), path)
	}
}

func TestRecipeLifecycle(t *testing.T) {
	server := newTestServer(t)
	alice := signUp(t, server.URL, "alice", "hunter2")

	resp := createRecipe(t, alice, server.URL, "Chili")
	require.Equal(t, "/browse", location(t, resp))

	resp = get(t, alice, server.URL, "/browse")
	assert.Contains(t, readBody(t, resp), "Chili")

	resp = get(t, alice, server.URL, "/recipe/chili")
	body := readBody(t, resp)
	assert.Contains(t, body, "Chili")
	assert.Contains(t, body, "by alice")
	assert.Contains(t, body, "/recipe/chili/edit")

	// Edit without a new image keeps the old one
	form := url.Values{
		"title":           {"Five Alarm Chili"},
		"estimatedTime":   {"60"},
		"numServings":     {"6"},
		"estimatedCost":   {"15.00"},
		"difficultyLevel": {"hard"},
		"cuisine":         {"mexican"},
		"description":     {"Hotter."},
		"ingredients":     {"beans, beef, more chili"},
		"instructions":    {"Simmer longer."},
	}
	var buf strings.Builder
	writer := multipart.NewWriter(&buf)
	for name := range form {
		require.NoError(t, writer.WriteField(name, form.Get(name)))
	}
	require.NoError(t, writer.Close())
	req, err := http.NewRequest(http.MethodPost, server.URL+"/recipe/chili/edit", strings.NewReader(buf.String()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err = alice.Do(req)
	require.NoError(t, err)
	assert.Equal(t, "/my-recipes", location(t, resp))

	resp = get(t, alice, server.URL, "/recipe/chili")
	assert.Contains(t, readBody(t, resp), "Five Alarm Chili")

	resp = get(t, alice, server.URL, "/recipe/chili/delete")
	assert.Equal(t, "/my-recipes", location(t, resp))

	resp = get(t, alice, server.URL, "/recipe/chili")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestNonOwnerIsForbidden(t *testing.T) {
	server := newTestServer(t)
	alice := signUp(t, server.URL, "alice", "hunter2")
	bob := signUp(t, server.URL, "bob", "letmein")

	resp := createRecipe(t, alice, server.URL, "Chili")
	require.Equal(t, "/browse", location(t, resp))

	resp = get(t, bob, server.URL, "/recipe/chili/edit")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = get(t, bob, server.URL, "/recipe/chili/delete")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The recipe is untouched
	resp = get(t, alice, server.URL, "/recipe/chili")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestSaveToggle(t *testing.T) {
	server := newTestServer(t)
	alice := signUp(t, server.URL, "alice", "hunter2")
	bob := signUp(t, server.URL, "bob", "letmein")

	resp := createRecipe(t, alice, server.URL, "Chili")
	require.Equal(t, "/browse", location(t, resp))

	resp = get(t, bob, server.URL, "/recipe/chili/save")
	assert.Equal(t, "/recipe/chili", location(t, resp))

	resp = get(t, bob, server.URL, "/saved-recipes")
	assert.Contains(t, readBody(t, resp), "Chili")

	resp = get(t, bob, server.URL, "/recipe/chili/save")
	assert.Equal(t, "/recipe/chili", location(t, resp))

	resp = get(t, bob, server.URL, "/saved-recipes")
	assert.NotContains(t, readBody(t, resp), "Chili")
}

func TestComments(t *testing.T) {
	server := newTestServer(t)
	alice := signUp(t, server.URL, "alice", "hunter2")
	bob := signUp(t, server.URL, "bob", "letmein")

	resp := createRecipe(t, alice, server.URL, "Chili")
	require.Equal(t, "/browse", location(t, resp))

	resp = postForm(t, bob, server.URL, "/recipe/chili", url.Values{
		"description": {"Needs more chili."},
	})
	assert.Equal(t, "/recipe/chili", location(t, resp))

	resp = get(t, alice, server.URL, "/recipe/chili")
	body := readBody(t, resp)
	assert.Contains(t, body, "Needs more chili.")
	assert.Contains(t, body, "bob")
}

func TestBulkDelete(t *testing.T) {
	server := newTestServer(t)
	alice := signUp(t, server.URL, "alice", "hunter2")
	bob := signUp(t, server.URL, "bob", "letmein")

	resp := createRecipe(t, alice, server.URL, "Chili")
	require.Equal(t, "/browse", location(t, resp))
	resp = createRecipe(t, alice, server.URL, "Tomato Soup")
	require.Equal(t, "/browse", location(t, resp))
	resp = createRecipe(t, bob, server.URL, "Ramen")
	require.Equal(t, "/browse", location(t, resp))

	// Alice saves bob's recipe; the wipe must not touch her saved list
	resp = get(t, alice, server.URL, "/recipe/ramen/save")
	require.Equal(t, "/recipe/ramen", location(t, resp))

	// The wrong confirmation value deletes nothing
	resp = postForm(t, alice, server.URL, "/my-recipes", url.Values{
		"delete": {"yes please"},
	})
	assert.Equal(t, "/my-recipes", location(t, resp))
	resp = get(t, alice, server.URL, "/my-recipes")
	assert.Contains(t, readBody(t, resp), "Chili")

	resp = postForm(t, alice, server.URL, "/my-recipes", url.Values{
		"delete": {"Delete All My Recipes"},
	})
	assert.Equal(t, "/browse", location(t, resp))

	resp = get(t, alice, server.URL, "/my-recipes")
	body := readBody(t, resp)
	assert.NotContains(t, body, "Chili")
	assert.NotContains(t, body, "Tomato Soup")

	// Other users' recipes survive
	resp = get(t, alice, server.URL, "/browse")
	assert.Contains(t, readBody(t, resp), "Ramen")

	// The actor's own saved list is unaffected
	resp = get(t, alice, server.URL, "/saved-recipes")
	assert.Contains(t, readBody(t, resp), "Ramen")
}

func TestLogout(t *testing.T) {
	server := newTestServer(t)
	alice := signUp(t, server.URL, "alice", "hunter2")

	resp := get(t, alice, server.URL, "/logout")
	assert.Equal(t, "/", location(t, resp))

	resp = get(t, alice, server.URL, "/browse")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", location(t, resp))
}

func TestLandingRedirectsAuthenticatedUsers(t *testing.T) {
	server := newTestServer(t)

	client := newClient(t)
	resp := get(t, client, server.URL, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	alice := signUp(t, server.URL, "alice", "hunter2")
	resp = get(t, alice, server.URL, "/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/browse", location(t, resp))

	for _, path := range []string{"/login", "/register"} {
		resp = get(t, alice, server.URL, path)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/browse", location(t, resp), path)
	}
}
