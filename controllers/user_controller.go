package controllers

import (
	"net/http"
	"strconv"

	"rewear/app"
	"rewear/db"
	"rewear/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserController struct {
	repo    *db.Repo
	appSess *session.AppSessionStore
	cfg     app.Config
}

func GetUserController(repo *db.Repo, appSess *session.AppSessionStore, cfg app.Config) *UserController {
	return &UserController{repo: repo, appSess: appSess, cfg: cfg}
}

// GET /api/users?q=alice&page=1&size=20
func (uc *UserController) ListUsers(c *gin.Context) {
	q := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := uc.repo.ListUsers(c.Request.Context(), q, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"total": res.Total,
		"users": res.Users,
	})
}

// GET /api/users/:id
func (uc *UserController) GetUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid uuid"})
		return
	}
	user, err := uc.repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": user})
}

// DELETE /api/users/:id
func (uc *UserController) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	// 不允许删除自己，避免锁死
	if uid, ok := currentUserID(c); ok && uid == id {
		c.JSON(http.StatusBadRequest, app.H{"error": "cannot delete yourself"})
		return
	}

	target, err := uc.repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if target.IsAdmin {
		c.JSON(http.StatusForbidden, app.H{"error": "cannot delete an admin"})
		return
	}

	if err := uc.repo.DeleteUserByID(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	// 撤销该用户的所有登录会话
	_ = uc.appSess.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
