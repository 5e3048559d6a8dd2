package memory_test

import (
	"context"
	"testing"

	"github.com/tventura/mibot/internal/adapters/storage/memory"
	"github.com/tventura/mibot/internal/domain"
)

func TestLoadUnknownUserReturnsFreshSession(t *testing.T) {
	store := memory.NewStore()

	sess, err := store.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess == nil {
		t.Fatal("Load returned nil session")
	}
	if !sess.FirstContact() {
		t.Error("fresh session should report first contact")
	}
	if sess.EmojiLastMessage {
		t.Error("fresh session should start with the emoji flag off")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	sess := domain.NewSession()
	sess.Append(domain.RoleUser, "hola")
	sess.Append(domain.RoleAgent, "holaa 😉")
	sess.EmojiLastMessage = true

	if err := store.Save(ctx, "u1", sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.History) != 2 {
		t.Fatalf("len(History) = %d, want 2", len(got.History))
	}
	if got.History[0].Role != domain.RoleUser || got.History[0].Text != "hola" {
		t.Errorf("first turn = %+v", got.History[0])
	}
	if got.History[1].Role != domain.RoleAgent || got.History[1].Text != "holaa 😉" {
		t.Errorf("second turn = %+v", got.History[1])
	}
	if !got.EmojiLastMessage {
		t.Error("emoji flag lost on round trip")
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	sess := domain.NewSession()
	sess.Append(domain.RoleUser, "hola")
	sess.Append(domain.RoleAgent, "dime")
	if err := store.Save(ctx, "u1", sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	first.Append(domain.RoleUser, "mutacion local")
	first.EmojiLastMessage = true

	second, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(second.History) != 2 {
		t.Errorf("store state mutated through a loaded copy: %d turns", len(second.History))
	}
	if second.EmojiLastMessage {
		t.Error("store flag mutated through a loaded copy")
	}
}

func TestSaveReplacesExistingState(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	a := domain.NewSession()
	a.Append(domain.RoleUser, "uno")
	a.Append(domain.RoleAgent, "dos")
	if err := store.Save(ctx, "u1", a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	b := domain.NewSession()
	b.Append(domain.RoleUser, "tres")
	b.Append(domain.RoleAgent, "cuatro")
	b.EmojiLastMessage = true
	if err := store.Save(ctx, "u1", b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.History) != 2 || got.History[0].Text != "tres" {
		t.Errorf("old state survived the overwrite: %+v", got.History)
	}
	if !got.EmojiLastMessage {
		t.Error("flag not replaced with the new state")
	}
}
