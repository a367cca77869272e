package controllers

import (
	"net/http"
	"strings"

	"rewear/app"
	"rewear/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// POST /api/auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var in struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Password  string `json:"password"`
	}
	if err := bindStrict(c, &in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || strings.TrimSpace(in.FirstName) == "" || len(in.Password) < 8 {
		c.JSON(http.StatusBadRequest, app.H{"error": "email, firstName and a password of at least 8 characters are required"})
		return
	}

	if _, err := ac.Repo.FindUserByEmail(c.Request.Context(), in.Email); err == nil {
		c.JSON(http.StatusConflict, app.H{"error": "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
	}
	if err := ac.Repo.CreateUser(c.Request.Context(), u); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	if err := ac.issueSession(c, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// POST /api/auth/signin
func (ac *AuthController) Signin(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := bindStrict(c, &in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u, err := ac.Repo.FindUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	if err := ac.issueSession(c, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /api/auth/signout
func (ac *AuthController) Signout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	secure := strings.HasPrefix(ac.WebOrigin, "https://")
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/auth/user — current user incl. points balance
func (ac *AuthController) Me(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	u, err := ac.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ac *AuthController) issueSession(c *gin.Context, userID string) error {
	id := uuid.NewString()
	if err := ac.AppSess.Create(c.Request.Context(), id, userID); err != nil {
		return err
	}
	ac.setAppCookie(c.Writer, id, ac.Cfg.SessionTTL)
	return nil
}
