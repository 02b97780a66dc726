package sqlite_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jacentio/sheetstore/persist/sqlite"
	"github.com/jacentio/sheetstore/sheet"
)

func sample() sheet.Tree {
	return sheet.Tree{
		{ID: "t1", Title: "DP", SubTopics: []sheet.SubTopic{
			{ID: "s1", Title: "General", Questions: []sheet.Question{
				{ID: "q1", Title: "LIS", Link: "https://leetcode.com/problems/lis", Difficulty: sheet.Medium, Platform: "leetcode", Solved: true},
			}},
			{ID: "s2", Title: "Knapsack", Questions: []sheet.Question{}},
		}},
		{ID: "t2", Title: "Empty", SubTopics: []sheet.SubTopic{}},
	}
}

func open(t *testing.T, path string) *sqlite.Persister {
	t.Helper()
	p, err := sqlite.Open(context.Background(), sqlite.Config{Path: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestLoad_Empty(t *testing.T) {
	p := open(t, filepath.Join(t.TempDir(), "sheet.db"))

	tree, found, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found || tree != nil {
		t.Errorf("expected no snapshot, got found=%v tree=%v", found, tree)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := open(t, filepath.Join(t.TempDir(), "nested", "dir", "sheet.db"))

	if err := p.Save(ctx, sample()); err != nil {
		t.Fatalf("save: %v", err)
	}
	tree, found, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected snapshot to be found")
	}
	if !reflect.DeepEqual(tree, sample()) {
		t.Errorf("round trip mismatch:\nexpected %+v\ngot      %+v", sample(), tree)
	}
}

func TestSave_Overwrites(t *testing.T) {
	ctx := context.Background()
	p := open(t, filepath.Join(t.TempDir(), "sheet.db"))

	p.Save(ctx, sample())
	p.Save(ctx, sheet.Tree{})

	tree, found, err := p.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if len(tree) != 0 {
		t.Errorf("expected empty tree after overwrite, got %d topics", len(tree))
	}

	v, err := p.Version(ctx)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != 2 {
		t.Errorf("expected version 2, got %d", v)
	}
}

func TestSnapshotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sheet.db")

	first, err := sqlite.Open(ctx, sqlite.Config{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	first.Save(ctx, sample())
	first.Close()

	second := open(t, path)
	tree, found, err := second.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(tree, sample()) {
		t.Error("snapshot did not survive reopen")
	}
}

func TestKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sheet.db")

	a := open(t, path)
	a.Save(ctx, sample())

	b, err := sqlite.Open(ctx, sqlite.Config{Path: path, Key: "other-sheet"})
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	_, found, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected a different key to have no snapshot")
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := sqlite.Open(context.Background(), sqlite.Config{}); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestClose_Idempotent(t *testing.T) {
	p, err := sqlite.Open(context.Background(), sqlite.Config{Path: filepath.Join(t.TempDir(), "sheet.db")})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
