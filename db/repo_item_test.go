package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCreateItemValidation(t *testing.T) {
	r := NewRepo(NewTestDB(t))
	ctx := context.Background()
	owner := seedUser(t, r, "owner@example.com")

	tests := []struct {
		name string
		in   CreateItemInput
		want error
	}{
		{"missing title", CreateItemInput{OwnerID: owner.ID, Description: "d", Condition: "good"}, ErrInvalidItem},
		{"missing description", CreateItemInput{OwnerID: owner.ID, Title: "t", Condition: "good"}, ErrInvalidItem},
		{"missing condition", CreateItemInput{OwnerID: owner.ID, Title: "t", Description: "d"}, ErrInvalidItem},
		{"blank condition", CreateItemInput{OwnerID: owner.ID, Title: "t", Description: "d", Condition: "  "}, ErrInvalidItem},
		{"unknown owner", CreateItemInput{OwnerID: uuid.NewString(), Title: "t", Description: "d", Condition: "good"}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.CreateItem(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	it, err := r.CreateItem(ctx, CreateItemInput{
		OwnerID: owner.ID, Title: "jacket", Description: "warm", Condition: "good",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if !it.IsAvailable {
		t.Error("new item should default to available")
	}
}

func TestFindItemNotFound(t *testing.T) {
	r := NewRepo(NewTestDB(t))
	if _, err := r.FindItemByID(context.Background(), uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSetItemAvailabilityIdempotent(t *testing.T) {
	r := NewRepo(NewTestDB(t))
	ctx := context.Background()
	owner := seedUser(t, r, "owner@example.com")
	it := seedItem(t, r, owner.ID, "jacket")

	// 设置为当前值是 no-op，不是错误
	out, err := r.SetItemAvailability(ctx, it.ID, true)
	if err != nil {
		t.Fatalf("same-value set: %v", err)
	}
	if !out.IsAvailable {
		t.Error("availability should remain true")
	}

	out, err = r.SetItemAvailability(ctx, it.ID, false)
	if err != nil {
		t.Fatalf("flip: %v", err)
	}
	if out.IsAvailable {
		t.Error("availability should be false")
	}
	mustAvailable(t, r, it.ID, false)

	if _, err := r.SetItemAvailability(ctx, uuid.NewString(), true); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown item: got %v, want ErrNotFound", err)
	}
}

func TestListItemsFilters(t *testing.T) {
	r := NewRepo(NewTestDB(t))
	ctx := context.Background()
	a := seedUser(t, r, "a@example.com")
	b := seedUser(t, r, "b@example.com")

	i1 := seedItem(t, r, a.ID, "jacket")
	seedItem(t, r, a.ID, "scarf")
	seedItem(t, r, b.ID, "sweater")

	if _, err := r.SetItemAvailability(ctx, i1.ID, false); err != nil {
		t.Fatalf("SetItemAvailability: %v", err)
	}

	all, err := r.ListItems(ctx, ListItemsQuery{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all items = %d, want 3", len(all))
	}

	mine, _ := r.ListItems(ctx, ListItemsQuery{OwnerID: a.ID})
	if len(mine) != 2 {
		t.Errorf("owner filter = %d, want 2", len(mine))
	}

	avail, _ := r.ListItems(ctx, ListItemsQuery{AvailableOnly: true})
	if len(avail) != 2 {
		t.Errorf("available filter = %d, want 2", len(avail))
	}
}
