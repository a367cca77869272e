package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"rewear/app"
	"rewear/db"
	"rewear/models"
	"rewear/routes"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := db.NewTestDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := app.Config{
		WebOrigin:  "http://localhost",
		SessionTTL: time.Hour,
	}
	a := app.New(gin.New(), database, rdb, cfg)
	routes.RegisterRoutes(a.Router, a)

	server := httptest.NewServer(a.Router)
	t.Cleanup(server.Close)
	return server, database
}

// newClientFor signs up a fresh user and returns a cookie-bearing client.
func newClientFor(t *testing.T, server *httptest.Server, email string) *http.Client {
	t.Helper()
	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	resp := doJSON(t, client, http.MethodPost, server.URL+"/api/auth/signup", map[string]any{
		"email":     email,
		"firstName": "Test",
		"password":  "correct horse",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup %s: status %d", email, resp.StatusCode)
	}
	return client
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createItem(t *testing.T, client *http.Client, server *httptest.Server, title string) models.Item {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, server.URL+"/api/items", map[string]any{
		"title":       title,
		"description": "a " + title,
		"condition":   "good",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item: status %d", resp.StatusCode)
	}
	var it models.Item
	decodeInto(t, resp, &it)
	return it
}

func currentUser(t *testing.T, client *http.Client, server *httptest.Server) models.User {
	t.Helper()
	resp := doJSON(t, client, http.MethodGet, server.URL+"/api/auth/user", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("auth/user: status %d", resp.StatusCode)
	}
	var u models.User
	decodeInto(t, resp, &u)
	return u
}

func TestExchangeLifecycleOverHTTP(t *testing.T) {
	server, database := setupTestServer(t)

	offerer := newClientFor(t, server, "offerer@example.com")
	receiver := newClientFor(t, server, "receiver@example.com")
	admin := newClientFor(t, server, "admin@example.com")

	// promote the third account to admin
	adminUser := currentUser(t, admin, server)
	if err := database.Model(&models.User{}).
		Where("id = ?", adminUser.ID).
		Update("is_admin", true).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}

	offererUser := currentUser(t, offerer, server)
	receiverUser := currentUser(t, receiver, server)

	offered := createItem(t, offerer, server, "jacket")
	requested := createItem(t, receiver, server, "sweater")

	// propose: offererId comes from the session, not the body
	resp := doJSON(t, offerer, http.MethodPost, server.URL+"/api/exchanges", map[string]any{
		"receiverId":      receiverUser.ID,
		"offeredItemId":   offered.ID,
		"requestedItemId": requested.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("propose: status %d", resp.StatusCode)
	}
	var ex models.Exchange
	decodeInto(t, resp, &ex)
	if ex.Status != models.ExchangePending {
		t.Fatalf("status = %q, want pending", ex.Status)
	}
	if ex.OffererID != offererUser.ID {
		t.Fatalf("offererId = %q, want session user %q", ex.OffererID, offererUser.ID)
	}

	// items still browsable while pending
	var it models.Item
	decodeInto(t, doJSON(t, offerer, http.MethodGet, server.URL+"/api/items/"+offered.ID, nil), &it)
	if !it.IsAvailable {
		t.Error("offered item should stay available while pending")
	}

	// offerer may not accept their own proposal
	resp = doJSON(t, offerer, http.MethodPatch, server.URL+"/api/exchanges/"+ex.ID, map[string]any{"status": "accepted"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("offerer accept: status %d, want 403", resp.StatusCode)
	}

	// receiver accepts: both items reserved
	resp = doJSON(t, receiver, http.MethodPatch, server.URL+"/api/exchanges/"+ex.ID, map[string]any{"status": "accepted"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("accept: status %d", resp.StatusCode)
	}
	decodeInto(t, resp, &ex)
	if ex.Status != models.ExchangeAccepted {
		t.Fatalf("status = %q, want accepted", ex.Status)
	}
	decodeInto(t, doJSON(t, offerer, http.MethodGet, server.URL+"/api/items/"+requested.ID, nil), &it)
	if it.IsAvailable {
		t.Error("requested item should be reserved after accept")
	}

	// receiver cannot complete; admin can
	resp = doJSON(t, receiver, http.MethodPatch, server.URL+"/api/exchanges/"+ex.ID, map[string]any{"status": "completed"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("receiver complete: status %d, want 403", resp.StatusCode)
	}
	resp = doJSON(t, admin, http.MethodPatch, server.URL+"/api/exchanges/"+ex.ID, map[string]any{"status": "completed"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin complete: status %d", resp.StatusCode)
	}
	resp.Body.Close()

	// offerer got paid exactly once
	if got := currentUser(t, offerer, server).Points; got != models.DefaultPointsAwarded {
		t.Errorf("offerer points = %d, want %d", got, models.DefaultPointsAwarded)
	}
	resp = doJSON(t, admin, http.MethodPatch, server.URL+"/api/exchanges/"+ex.ID, map[string]any{"status": "completed"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("repeat complete: status %d, want 409", resp.StatusCode)
	}
	if got := currentUser(t, offerer, server).Points; got != models.DefaultPointsAwarded {
		t.Errorf("offerer points after repeat complete = %d, want %d", got, models.DefaultPointsAwarded)
	}
}

func TestProposeRejectsUnknownFields(t *testing.T) {
	server, _ := setupTestServer(t)
	offerer := newClientFor(t, server, "offerer@example.com")

	resp := doJSON(t, offerer, http.MethodPost, server.URL+"/api/exchanges", map[string]any{
		"receiverId":      "x",
		"offeredItemId":   "y",
		"requestedItemId": "z",
		"offererId":       "spoofed", // closed record: unknown field
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExchangeVisibility(t *testing.T) {
	server, _ := setupTestServer(t)

	offerer := newClientFor(t, server, "offerer@example.com")
	receiver := newClientFor(t, server, "receiver@example.com")
	stranger := newClientFor(t, server, "stranger@example.com")

	receiverUser := currentUser(t, receiver, server)
	offered := createItem(t, offerer, server, "jacket")
	requested := createItem(t, receiver, server, "sweater")

	resp := doJSON(t, offerer, http.MethodPost, server.URL+"/api/exchanges", map[string]any{
		"receiverId":      receiverUser.ID,
		"offeredItemId":   offered.ID,
		"requestedItemId": requested.ID,
	})
	var ex models.Exchange
	decodeInto(t, resp, &ex)

	// a non-party cannot read or drive the exchange
	resp = doJSON(t, stranger, http.MethodGet, server.URL+"/api/exchanges/"+ex.ID, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("stranger read: status %d, want 404", resp.StatusCode)
	}
	resp = doJSON(t, stranger, http.MethodPatch, server.URL+"/api/exchanges/"+ex.ID, map[string]any{"status": "rejected"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("stranger reject: status %d, want 403", resp.StatusCode)
	}

	var listing struct {
		Exchanges []models.Exchange `json:"exchanges"`
	}
	decodeInto(t, doJSON(t, stranger, http.MethodGet, server.URL+"/api/exchanges", nil), &listing)
	if len(listing.Exchanges) != 0 {
		t.Errorf("stranger listing = %d exchanges, want 0", len(listing.Exchanges))
	}
	decodeInto(t, doJSON(t, receiver, http.MethodGet, server.URL+"/api/exchanges", nil), &listing)
	if len(listing.Exchanges) != 1 {
		t.Errorf("receiver listing = %d exchanges, want 1", len(listing.Exchanges))
	}
}
