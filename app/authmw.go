package app

import (
	"net/http"
	"strings"

	"rewear/db"
	"rewear/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// 确认用户仍存在，并把 isAdmin 放进 Context（只查一次）
		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		c.Set("userID", u.ID)
		c.Set("isAdmin", isAdminUser(u.Email, u.IsAdmin, cfg))

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, ok := c.Get("isAdmin"); !ok || v != true {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// ADMIN_EMAILS 环境变量可以追加管理员，数据库标记优先
func isAdminUser(email string, dbFlag bool, cfg Config) bool {
	if dbFlag {
		return true
	}
	email = strings.ToLower(email)
	for _, admin := range cfg.AdminEmails {
		if email == admin {
			return true
		}
	}
	return false
}
