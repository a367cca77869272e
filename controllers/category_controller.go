package controllers

import (
	"net/http"

	"rewear/app"

	"github.com/gin-gonic/gin"
)

type CategoryController struct{ *Srv }

func NewCategoryController(s *Srv) *CategoryController { return &CategoryController{Srv: s} }

// GET /api/categories
func (cc *CategoryController) ListCategories(c *gin.Context) {
	cs, err := cc.Repo.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"categories": cs})
}

// POST /api/categories — admin
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var in struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := bindStrict(c, &in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	cat, err := cc.Repo.CreateCategory(c.Request.Context(), in.Name, in.Description)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}
