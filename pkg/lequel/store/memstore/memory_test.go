package memstore

import (
	"context"
	"testing"

	"github.com/cognicore/lequel/pkg/lequel/profile"
	"github.com/cognicore/lequel/pkg/lequel/store"
)

func TestUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	if err := s.UpsertLanguage(ctx, store.Language{Code: "es", Name: "Español", Counts: profile.Profile{"que": 10}}); err != nil {
		t.Fatalf("UpsertLanguage: %v", err)
	}

	got, ok, err := s.GetLanguage(ctx, "es")
	if err != nil || !ok {
		t.Fatalf("GetLanguage: ok=%v err=%v", ok, err)
	}
	if got.Name != "Español" || got.Counts["que"] != 10 {
		t.Errorf("unexpected language %+v", got)
	}

	if _, ok, _ := s.GetLanguage(ctx, "xx"); ok {
		t.Error("expected xx to be missing")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	counts := profile.Profile{"the": 5}
	s.UpsertLanguage(ctx, store.Language{Code: "en", Counts: counts})

	counts["the"] = 99
	got, _, _ := s.GetLanguage(ctx, "en")
	if got.Counts["the"] != 5 {
		t.Fatalf("store aliased caller's map: the = %v", got.Counts["the"])
	}

	got.Counts["the"] = 77
	again, _, _ := s.GetLanguage(ctx, "en")
	if again.Counts["the"] != 5 {
		t.Fatalf("store aliased returned map: the = %v", again.Counts["the"])
	}
}

func TestListOrderedByPosition(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.UpsertLanguage(ctx, store.Language{Code: "fr", Position: 2})
	s.UpsertLanguage(ctx, store.Language{Code: "en", Position: 0})
	s.UpsertLanguage(ctx, store.Language{Code: "es", Position: 1})

	langs, err := s.ListLanguages(ctx)
	if err != nil {
		t.Fatalf("ListLanguages: %v", err)
	}
	var codes []string
	for _, l := range langs {
		codes = append(codes, l.Code)
	}
	if len(codes) != 3 || codes[0] != "en" || codes[1] != "es" || codes[2] != "fr" {
		t.Errorf("codes = %v, want [en es fr]", codes)
	}
}

func TestDeleteLanguage(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.UpsertLanguage(ctx, store.Language{Code: "en"})

	if err := s.DeleteLanguage(ctx, "en"); err != nil {
		t.Fatalf("DeleteLanguage: %v", err)
	}
	if _, ok, _ := s.GetLanguage(ctx, "en"); ok {
		t.Error("en still present after delete")
	}
	if err := s.DeleteLanguage(ctx, "missing"); err != nil {
		t.Errorf("DeleteLanguage(missing): %v", err)
	}
}
