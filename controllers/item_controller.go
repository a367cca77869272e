package controllers

import (
	"net/http"

	"rewear/app"
	"rewear/db"

	"github.com/gin-gonic/gin"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

// POST /api/items
func (ic *ItemController) CreateItem(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Condition   string  `json:"condition"`
		CategoryID  *string `json:"categoryId"`
		Size        string  `json:"size"`
		Brand       string  `json:"brand"`
	}
	if err := bindStrict(c, &in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	it, err := ic.Repo.CreateItem(c.Request.Context(), db.CreateItemInput{
		OwnerID:     uid,
		Title:       in.Title,
		Description: in.Description,
		Condition:   in.Condition,
		CategoryID:  in.CategoryID,
		Size:        in.Size,
		Brand:       in.Brand,
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// GET /api/items?available=true&categoryId=&ownerId=
func (ic *ItemController) ListItems(c *gin.Context) {
	q := db.ListItemsQuery{
		OwnerID:       c.Query("ownerId"),
		CategoryID:    c.Query("categoryId"),
		AvailableOnly: c.Query("available") == "true",
	}
	items, err := ic.Repo.ListItems(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

// GET /api/items/:id
func (ic *ItemController) GetItem(c *gin.Context) {
	it, err := ic.Repo.FindItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// PATCH /api/items/:id/availability — owner or admin, idempotent
func (ic *ItemController) SetAvailability(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in struct {
		Available *bool `json:"available"`
	}
	if err := bindStrict(c, &in); err != nil || in.Available == nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "available is required"})
		return
	}

	it, err := ic.Repo.FindItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if it.OwnerID != uid && !isAdmin(c) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}

	it, err = ic.Repo.SetItemAvailability(c.Request.Context(), it.ID, *in.Available)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}
