package destination_test

import (
	"context"
	"errors"
	"testing"

	"runeshot/internal/classify"
	"runeshot/internal/destination"
	"runeshot/internal/messenger"
)

func TestNameFor(t *testing.T) {
	tests := map[classify.Category]string{
		classify.LevelUp: "level-ups",
		classify.Quest:   "quests",
		classify.Barrows: "barrows",
		classify.Pet:     "pets",
		classify.Misc:    "misc",
	}
	for category, want := range tests {
		if got := destination.NameFor(category); got != want {
			t.Fatalf("NameFor(%s) = %q, want %q", category, got, want)
		}
	}
}

func TestEnsureAllCreatesMissingChannelsInOrder(t *testing.T) {
	fake := messenger.NewFake("quests", "general")
	resolver := destination.NewResolver(fake, nil)

	if err := resolver.EnsureAll(context.Background()); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	if fake.CreateCalls != 4 {
		t.Fatalf("expected 4 channels created, got %d", fake.CreateCalls)
	}
	var names []string
	for _, ch := range fake.Channels() {
		names = append(names, ch.Name)
	}
	want := []string{"quests", "general", "level-ups", "barrows", "pets", "misc"}
	if len(names) != len(want) {
		t.Fatalf("channels = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("channels = %v, want %v", names, want)
		}
	}

	quests, err := resolver.Resolve(context.Background(), classify.Quest)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if quests.ChannelID != "chan-1" {
		t.Fatalf("expected existing quests channel reused, got %s", quests.ChannelID)
	}
}

func TestEnsureAllIsIdempotent(t *testing.T) {
	fake := messenger.NewFake()
	ctx := context.Background()

	first := destination.NewResolver(fake, nil)
	if err := first.EnsureAll(ctx); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	if err := first.EnsureAll(ctx); err != nil {
		t.Fatalf("second EnsureAll: %v", err)
	}
	findCalls := fake.FindCalls

	// A fresh resolver models a restart: channels exist remotely already.
	second := destination.NewResolver(fake, nil)
	if err := second.EnsureAll(ctx); err != nil {
		t.Fatalf("EnsureAll after restart: %v", err)
	}
	if fake.CreateCalls != 5 {
		t.Fatalf("expected exactly 5 channels created overall, got %d", fake.CreateCalls)
	}
	if len(fake.Channels()) != 5 {
		t.Fatalf("expected 5 channels, got %d", len(fake.Channels()))
	}
	if findCalls != 5 {
		t.Fatalf("expected cached second EnsureAll to skip lookups, got %d finds", findCalls)
	}
	if len(second.Cached()) != 5 {
		t.Fatalf("expected 5 cached destinations, got %d", len(second.Cached()))
	}
}

func TestResolveLazilyOnMiss(t *testing.T) {
	fake := messenger.NewFake()
	resolver := destination.NewResolver(fake, nil)

	dest, err := resolver.Resolve(context.Background(), classify.Pet)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dest.Name != "pets" || dest.Category != classify.Pet || dest.ChannelID == "" {
		t.Fatalf("unexpected destination %+v", dest)
	}
	if _, err := resolver.Resolve(context.Background(), classify.Pet); err != nil {
		t.Fatalf("Resolve again: %v", err)
	}
	if fake.CreateCalls != 1 || fake.FindCalls != 1 {
		t.Fatalf("expected one find and one create, got %d/%d", fake.FindCalls, fake.CreateCalls)
	}
}

func TestResolvePropagatesMessengerErrors(t *testing.T) {
	fake := messenger.NewFake()
	fake.CreateErr = errors.New("missing permissions")
	resolver := destination.NewResolver(fake, nil)

	if err := resolver.EnsureAll(context.Background()); err == nil {
		t.Fatal("expected EnsureAll to fail")
	}
	if len(resolver.Cached()) != 0 {
		t.Fatal("expected nothing cached after failure")
	}
}
