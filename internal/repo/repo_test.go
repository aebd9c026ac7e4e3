package repo

import (
	"errors"
	"os"
	"testing"

	"github.com/dashkite/dashgen/internal/spec"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSpec(t *testing.T) *spec.Dashboard {
	t.Helper()
	d, err := spec.Parse([]byte(`{"title":"Sales","widgets":[
		{"type":"kpi","position":{"row":0,"col":0},"config":{"value":100}}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestSaveAndGet(t *testing.T) {
	s := testStore(t)

	saved, err := s.Save("sales-weekly", "weekly sales", []string{"sales"}, sampleSpec(t), "abc123", "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("missing id")
	}
	if saved.UsageCount != 0 || saved.LastUsedAt != nil {
		t.Errorf("fresh config has usage %d / last used %v", saved.UsageCount, saved.LastUsedAt)
	}
	if _, err := os.Stat(saved.SpecPath); err != nil {
		t.Errorf("spec file missing: %v", err)
	}

	meta, d, err := s.Get("sales-weekly")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if d.Title != "Sales" {
		t.Errorf("title = %q, want Sales", d.Title)
	}
	if meta.UsageCount != 1 || meta.LastUsedAt == nil {
		t.Errorf("get did not record usage: count=%d lastUsed=%v", meta.UsageCount, meta.LastUsedAt)
	}

	// Fetch by id works too and bumps usage again.
	meta2, _, err := s.Get(saved.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if meta2.UsageCount != 2 {
		t.Errorf("usage = %d, want 2", meta2.UsageCount)
	}
}

func TestSaveOverwriteKeepsIdentity(t *testing.T) {
	s := testStore(t)

	first, err := s.Save("dash", "v1", nil, sampleSpec(t), "fp1", "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, _, err := s.Get("dash"); err != nil {
		t.Fatalf("get: %v", err)
	}

	second, err := s.Save("dash", "v2", []string{"updated"}, sampleSpec(t), "fp2", "")
	if err != nil {
		t.Fatalf("resave: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("id changed on overwrite: %s -> %s", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed on overwrite")
	}
	if second.UsageCount != 1 {
		t.Errorf("usage = %d, want 1 preserved from before overwrite", second.UsageCount)
	}
	if second.Description != "v2" || second.SchemaFingerprint != "fp2" {
		t.Errorf("overwrite did not update fields: %+v", second)
	}
}

func TestSaveRequiresName(t *testing.T) {
	s := testStore(t)
	_, err := s.Save("", "", nil, sampleSpec(t), "", "")
	if !errors.Is(err, spec.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestListFilters(t *testing.T) {
	s := testStore(t)

	if _, err := s.Save("sales-weekly", "weekly sales numbers", []string{"sales"}, sampleSpec(t), "", ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Save("ops-health", "infrastructure overview", []string{"ops", "infra"}, sampleSpec(t), "", ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	all, err := s.List("", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("list all = %d, want 2", len(all))
	}

	byQuery, err := s.List("SALES", "")
	if err != nil {
		t.Fatalf("list query: %v", err)
	}
	if len(byQuery) != 1 || byQuery[0].Name != "sales-weekly" {
		t.Errorf("query result = %+v", byQuery)
	}

	byTag, err := s.List("", "INFRA")
	if err != nil {
		t.Fatalf("list tag: %v", err)
	}
	if len(byTag) != 1 || byTag[0].Name != "ops-health" {
		t.Errorf("tag result = %+v", byTag)
	}

	none, err := s.List("nomatch", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected empty result, got %+v", none)
	}
}

func TestFindByFingerprint(t *testing.T) {
	s := testStore(t)

	if _, err := s.Save("a", "", nil, sampleSpec(t), "fp-shared", ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Save("b", "", nil, sampleSpec(t), "fp-shared", ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Save("c", "", nil, sampleSpec(t), "fp-other", ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Using "b" bumps its usage so it sorts first.
	if _, _, err := s.Get("b"); err != nil {
		t.Fatalf("get: %v", err)
	}

	matches, err := s.FindByFingerprint("fp-shared")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].Name != "b" {
		t.Errorf("most used first: got %s", matches[0].Name)
	}

	empty, err := s.FindByFingerprint("")
	if err != nil || len(empty) != 0 {
		t.Errorf("empty fingerprint: %v, %v", empty, err)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)

	saved, err := s.Save("doomed", "", nil, sampleSpec(t), "", "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.Delete("doomed"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(saved.SpecPath); !os.IsNotExist(err) {
		t.Error("spec file survives delete")
	}
	if _, _, err := s.Get("doomed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete("doomed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete = %v, want ErrNotFound", err)
	}
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)
	_, _, err := s.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
