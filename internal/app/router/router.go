// Package router wires the HTTP routes of the portal.
package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"auth_portal/internal/feature/auth/transport/handler"
	"auth_portal/web"
)

// flashCookie names the signed cookie session used for flash messages.
const flashCookie = "auth_flash"

// NewRouter builds the Gin engine: flash cookie store, embedded
// templates, the public auth routes and the session-gated welcome page.
// Unknown routes and panics fall back to the login page with the
// matching status code.
func NewRouter(authH *handler.AuthHandler, secretKey string, secureCookies bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(authH.Recovered))

	store := cookie.NewStore([]byte(secretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   0, // browser-session cookie; flashes do not outlive the visit
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(flashCookie, store))

	r.SetHTMLTemplate(web.Templates())

	r.GET("/", authH.Index)
	r.GET("/register", authH.ShowRegister)
	r.POST("/register", authH.Register)
	r.GET("/login", authH.ShowLogin)
	r.POST("/login", authH.Login)
	r.GET("/logout", authH.Logout)

	protected := r.Group("/")
	protected.Use(authH.LoginRequired())
	{
		protected.GET("/welcome", authH.Welcome)
	}

	r.NoRoute(authH.NotFound)

	return r
}
