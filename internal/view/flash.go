package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
)

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, _ := session.Get(flashSessionName, c)
	sess.AddFlash(message, key)
	_ = sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// Flashes holds the retrieved flash messages for rendering.
type Flashes struct {
	Success []string
	Error   []string
}

// GetFlashes retrieves and clears flash messages from the session.
func GetFlashes(c echo.Context) Flashes {
	var out Flashes

	sess, _ := session.Get(flashSessionName, c)

	// The Flashes() method retrieves and then clears the flashes from the session.
	successFlashes := sess.Flashes(flashKeySuccess)
	errorFlashes := sess.Flashes(flashKeyError)

	// If we have flashes, save the session to persist the clearing.
	if len(successFlashes) > 0 || len(errorFlashes) > 0 {
		for _, f := range successFlashes {
			if s, ok := f.(string); ok {
				out.Success = append(out.Success, s)
			}
		}
		for _, f := range errorFlashes {
			if s, ok := f.(string); ok {
				out.Error = append(out.Error, s)
			}
		}
		_ = sess.Save(c.Request(), c.Response())
	}
	return out
}
