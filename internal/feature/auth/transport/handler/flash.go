package handler

import (
	"encoding/gob"
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash is one message queued in the cookie session for display on the
// next rendered page.
type Flash struct {
	Category string // error, success or info
	Message  string
}

func init() {
	// The cookie store serializes session values with gob.
	gob.Register(Flash{})
}

// addFlash queues a message for the next page render.
func addFlash(c *gin.Context, category, message string) {
	s := sessions.Default(c)
	s.AddFlash(Flash{Category: category, Message: message})
	if err := s.Save(); err != nil {
		slog.Warn("failed to save flash message", "error", err)
	}
}

// takeFlashes drains the queued messages. Saving after the read persists
// their removal, so each message is shown once.
func takeFlashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		slog.Warn("failed to clear flash messages", "error", err)
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
