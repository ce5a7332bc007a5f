package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// sessionID returns the id carried by the request cookie, issuing a new
// UUID v4 cookie when it is absent or malformed. The cookie is refreshed on
// every request so it expires together with the stored session.
func (cc CookieConfig) sessionID(c echo.Context) string {
	id := ""
	if ck, err := c.Cookie(cc.Name); err == nil {
		if u, err := uuid.Parse(ck.Value); err == nil {
			id = u.String()
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	c.SetCookie(&http.Cookie{
		Name:     cc.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cc.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
