package controllers

import (
	"net/http"

	"rewear/app"
	"rewear/db"
	"rewear/models"

	"github.com/gin-gonic/gin"
)

type ExchangeController struct{ *Srv }

func NewExchangeController(s *Srv) *ExchangeController { return &ExchangeController{Srv: s} }

// POST /api/exchanges
// offererId 来自会话身份，绝不从请求体读取
func (ec *ExchangeController) Propose(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in struct {
		ReceiverID      string `json:"receiverId"`
		OfferedItemID   string `json:"offeredItemId"`
		RequestedItemID string `json:"requestedItemId"`
		PointsAwarded   *int   `json:"pointsAwarded"`
	}
	if err := bindStrict(c, &in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.ReceiverID == "" || in.OfferedItemID == "" || in.RequestedItemID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "receiverId, offeredItemId and requestedItemId are required"})
		return
	}

	ex, err := ec.Repo.ProposeExchange(c.Request.Context(), db.ProposeExchangeInput{
		OffererID:       uid,
		ReceiverID:      in.ReceiverID,
		OfferedItemID:   in.OfferedItemID,
		RequestedItemID: in.RequestedItemID,
		PointsAwarded:   in.PointsAwarded,
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ex)
}

// GET /api/exchanges — mine; admins see everything with ?all=1
func (ec *ExchangeController) ListExchanges(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	q := db.ListExchangesQuery{UserID: uid, Status: c.Query("status")}
	if c.Query("all") == "1" && isAdmin(c) {
		q.UserID = ""
	}
	es, err := ec.Repo.ListExchanges(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"exchanges": es})
}

// GET /api/exchanges/:id — a party to the exchange, or an admin
func (ec *ExchangeController) GetExchange(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	ex, err := ec.Repo.FindExchangeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if ex.OffererID != uid && ex.ReceiverID != uid && !isAdmin(c) {
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, ex)
}

// PATCH /api/exchanges/:id {status}
// receiver: accept/reject while pending; offerer: cancel (reject) while
// pending; admin: any permitted transition, incl. the pending -> completed
// shortcut.
func (ec *ExchangeController) SetStatus(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := bindStrict(c, &in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if !models.ValidExchangeStatus(in.Status) {
		c.JSON(http.StatusBadRequest, app.H{"error": "unknown status"})
		return
	}

	ex, err := ec.Repo.SetExchangeStatus(c.Request.Context(), db.StatusChangeInput{
		ExchangeID: c.Param("id"),
		Status:     in.Status,
		ActorID:    uid,
		Admin:      isAdmin(c),
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, ex)
}
