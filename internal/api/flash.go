package api

import (
	"net/http" // Cookie attributes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

const flashCookie = "flash" // One-shot notice carried across a redirect

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a notice shown once on the next rendered page
type Flash struct {
	Kind    string
	Message string
}

// setFlash stores a notice for the next request
func setFlash(c *gin.Context, kind, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, kind+"|"+message, 60, "/", "", false, true)
}

// popFlash reads and clears the pending notice, nil when there is none
func popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true) // Expire it right away
	kind, message, ok := strings.Cut(raw, "|")
	if !ok || message == "" {
		return nil
	}
	if kind != FlashSuccess && kind != FlashError {
		kind = FlashError
	}
	return &Flash{Kind: kind, Message: message}
}
