package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"auth_portal/internal/feature/auth/adapters"
	"auth_portal/internal/feature/auth/domain/entity"
	"auth_portal/internal/feature/auth/transport/handler"
	"auth_portal/internal/feature/auth/usecase"
	"auth_portal/internal/platform/password"
	"auth_portal/internal/platform/session"
)

// newPortal assembles the real stack on an in-memory database:
// sqlite store, bcrypt hasher at minimum cost, signed session tokens.
func newPortal(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&entity.User{}), "failed to migrate table")

	userRepo := adapters.NewUserMySQL(db)
	hasher := password.New(bcrypt.MinCost, 2)
	authUC := usecase.NewAuthUsecase(userRepo, hasher)
	sessions := session.NewManager("test-secret", time.Hour)
	authH := handler.NewAuthHandler(authUC, sessions, 3600, false)

	return NewRouter(authH, "test-secret", false), db
}

// browser drives the portal the way a cookie-keeping client would,
// carrying cookies from one request into the next.
type browser struct {
	t       *testing.T
	engine  *gin.Engine
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, engine *gin.Engine) *browser {
	return &browser{t: t, engine: engine, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(method, path string, body io.Reader) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	b.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, strings.NewReader(form.Encode()))
}

func registerForm(username, password, confirm string) url.Values {
	return url.Values{
		"username":         {username},
		"password":         {password},
		"confirm_password": {confirm},
	}
}

func loginForm(username, password string) url.Values {
	return url.Values{
		"username": {username},
		"password": {password},
	}
}

func userCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	return count
}

func TestFullAuthenticationFlow(t *testing.T) {
	engine, db := newPortal(t)
	b := newBrowser(t, engine)

	// Register alice.
	w := b.post("/register", registerForm("alice", "secret1", "secret1"))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, int64(1), userCount(t, db))

	w = b.get("/login")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Registration successful! You can now log in.")

	// Wrong password first: generic message, still anonymous.
	w = b.post("/login", loginForm("alice", "wrong-password"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password!")

	w = b.get("/welcome")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// Correct login starts a session.
	w = b.post("/login", loginForm("alice", "secret1"))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/welcome", w.Header().Get("Location"))
	require.Contains(t, b.cookies, handler.TokenCookie, "login should set the session cookie")

	w = b.get("/welcome")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome, alice!")

	// The index now routes straight to the protected page.
	w = b.get("/")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/welcome", w.Header().Get("Location"))

	// Logout clears the session.
	w = b.get("/logout")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, b.cookies, handler.TokenCookie, "logout should clear the session cookie")

	w = b.get("/login")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have been logged out successfully.")

	// The protected page is gated again.
	w = b.get("/welcome")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = b.get("/login")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please log in to access this page.")
}

func TestRegistrationValidation(t *testing.T) {
	t.Run("username too short", func(t *testing.T) {
		engine, db := newPortal(t)
		b := newBrowser(t, engine)

		w := b.post("/register", registerForm("al", "secret1", "secret1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Username must be at least 3 characters long!")
		assert.Zero(t, userCount(t, db), "no user should be created")
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		engine, db := newPortal(t)
		b := newBrowser(t, engine)

		w := b.post("/register", registerForm("alice", "secret1", "secret2"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Passwords do not match!")
		assert.Zero(t, userCount(t, db), "no user should be created")
	})

	t.Run("password too weak", func(t *testing.T) {
		engine, db := newPortal(t)
		b := newBrowser(t, engine)

		w := b.post("/register", registerForm("alice", "12345", "12345"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Password must be at least 6 characters long!")
		assert.Zero(t, userCount(t, db), "no user should be created")
	})
}

func TestDuplicateRegistration(t *testing.T) {
	engine, db := newPortal(t)
	b := newBrowser(t, engine)

	w := b.post("/register", registerForm("alice", "secret1", "secret1"))
	require.Equal(t, http.StatusFound, w.Code)

	w = b.post("/register", registerForm("alice", "another6", "another6"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists! Please choose a different one.")
	assert.Equal(t, int64(1), userCount(t, db), "only one alice may exist")
}

func TestSessionTamperingIsRejected(t *testing.T) {
	engine, _ := newPortal(t)
	b := newBrowser(t, engine)

	require.Equal(t, http.StatusFound, b.post("/register", registerForm("alice", "secret1", "secret1")).Code)
	require.Equal(t, http.StatusFound, b.post("/login", loginForm("alice", "secret1")).Code)

	// Corrupt the session token; the welcome page must lock out again.
	token := b.cookies[handler.TokenCookie]
	require.NotNil(t, token)
	token.Value += "x"

	w := b.get("/welcome")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPanicFallsBackToLogin(t *testing.T) {
	engine, _ := newPortal(t)
	engine.GET("/boom", func(c *gin.Context) {
		panic("exploding handler")
	})
	b := newBrowser(t, engine)

	w := b.get("/boom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Login</h1>")
	assert.Contains(t, w.Body.String(), "An internal error occurred. Please try again.")
	assert.NotContains(t, w.Body.String(), "exploding handler", "panic detail must not leak")
}

func TestUnknownRouteFallsBackToLogin(t *testing.T) {
	engine, _ := newPortal(t)
	b := newBrowser(t, engine)

	w := b.get("/no-such-page")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Login</h1>")
}
