package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"rewear/app"
	"rewear/db"
	"rewear/session"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB),
		AppSess:   a.AppSessions(),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	uid, _ := v.(string)
	return uid, uid != ""
}

func isAdmin(c *gin.Context) bool {
	v, ok := c.Get("isAdmin")
	return ok && v == true
}

// bindStrict decodes a closed request record: unknown fields are rejected
// at the boundary instead of silently dropped.
func bindStrict(c *gin.Context, out any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// writeRepoError maps the repo's sentinel errors to HTTP responses.
func writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
	case errors.Is(err, db.ErrInvalidProposal):
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid proposal"})
	case errors.Is(err, db.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid item"})
	case errors.Is(err, db.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid amount"})
	case errors.Is(err, db.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid transition"})
	case errors.Is(err, db.ErrConflict):
		c.JSON(http.StatusConflict, app.H{"error": "conflict"})
	case errors.Is(err, db.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, app.H{"error": "already completed"})
	case errors.Is(err, db.ErrForbidden):
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
