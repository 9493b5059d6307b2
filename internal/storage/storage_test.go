package storage

import (
	"testing"

	"sem/internal/hashutil"
	"sem/internal/model"
	"sem/internal/slogutil"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir(), slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

func sampleEntity(id, name, content, filePath string) model.Entity {
	return model.Entity{
		ID:          id,
		FilePath:    filePath,
		EntityType:  "function",
		Name:        name,
		Content:     content,
		ContentHash: hashutil.ContentHash(content),
		StartLine:   1,
		EndLine:     3,
	}
}

func TestEntityRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	entities := []model.Entity{
		sampleEntity("a.ts::function::foo", "foo", "function foo() {}", "a.ts"),
		sampleEntity("b.ts::function::bar", "bar", "function bar() {}", "b.ts"),
	}
	if err := db.SaveEntities(entities, "current", "abc123"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := db.GetEntities("current", "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(got))
	}

	byID := map[string]model.Entity{}
	for _, e := range got {
		byID[e.ID] = e
	}
	orig := entities[0]
	back := byID[orig.ID]
	if back.Name != orig.Name || back.Content != orig.Content ||
		back.ContentHash != orig.ContentHash || back.FilePath != orig.FilePath ||
		back.StartLine != orig.StartLine || back.EndLine != orig.EndLine {
		t.Errorf("round trip lost fields:\nsaved %+v\nread  %+v", orig, back)
	}
}

func TestGetEntitiesByFile(t *testing.T) {
	db := setupTestDB(t)

	entities := []model.Entity{
		sampleEntity("a.ts::function::foo", "foo", "c1", "a.ts"),
		sampleEntity("b.ts::function::bar", "bar", "c2", "b.ts"),
	}
	if err := db.SaveEntities(entities, "current", ""); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetEntities("current", "a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].FilePath != "a.ts" {
		t.Errorf("file filter broken: %+v", got)
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	db := setupTestDB(t)

	e := sampleEntity("a.ts::function::foo", "foo", "v1", "a.ts")
	if err := db.SaveEntities([]model.Entity{e}, "current", ""); err != nil {
		t.Fatal(err)
	}
	e2 := sampleEntity("a.ts::function::foo", "foo", "v2", "a.ts")
	if err := db.SaveEntities([]model.Entity{e2}, "abc123", ""); err != nil {
		t.Fatal(err)
	}

	current, err := db.GetEntities("current", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(current) != 1 || current[0].Content != "v1" {
		t.Errorf("snapshot isolation broken: %+v", current)
	}

	if err := db.ClearSnapshot("current"); err != nil {
		t.Fatal(err)
	}
	current, err = db.GetEntities("current", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(current) != 0 {
		t.Errorf("clear did not empty the snapshot: %+v", current)
	}

	other, err := db.GetEntities("abc123", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 1 {
		t.Error("clearing one snapshot must not touch another")
	}
}

func TestChangesFilter(t *testing.T) {
	db := setupTestDB(t)

	changes := []model.Change{
		{ID: "change::1", EntityID: "a.ts::function::f", ChangeType: model.ChangeAdded,
			EntityType: "function", EntityName: "f", FilePath: "a.ts", CommitSha: "sha1"},
		{ID: "change::2", EntityID: "a.ts::function::g", ChangeType: model.ChangeModified,
			EntityType: "function", EntityName: "g", FilePath: "a.ts", CommitSha: "sha2"},
		{ID: "change::3", EntityID: "b.md::heading::H", ChangeType: model.ChangeDeleted,
			EntityType: "heading", EntityName: "H", FilePath: "b.md", CommitSha: "sha1"},
	}
	if err := db.SaveChanges(changes); err != nil {
		t.Fatal(err)
	}

	all, err := db.GetChanges(ChangeFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(all))
	}
	if all[0].Timestamp == "" {
		t.Error("store must stamp timestamps")
	}

	byFile, _ := db.GetChanges(ChangeFilter{FilePath: "a.ts"})
	if len(byFile) != 2 {
		t.Errorf("file filter: expected 2, got %d", len(byFile))
	}
	byType, _ := db.GetChanges(ChangeFilter{ChangeType: "deleted"})
	if len(byType) != 1 || byType[0].EntityName != "H" {
		t.Errorf("change type filter broken: %+v", byType)
	}
	byEntityType, _ := db.GetChanges(ChangeFilter{EntityType: "function"})
	if len(byEntityType) != 2 {
		t.Errorf("entity type filter: expected 2, got %d", len(byEntityType))
	}
	bySha, _ := db.GetChanges(ChangeFilter{CommitSha: "sha1"})
	if len(bySha) != 2 {
		t.Errorf("commit filter: expected 2, got %d", len(bySha))
	}
	limited, _ := db.GetChanges(ChangeFilter{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d", len(limited))
	}
}

func TestQuerySelect(t *testing.T) {
	db := setupTestDB(t)

	e := sampleEntity("a.ts::function::foo", "foo", "body", "a.ts")
	if err := db.SaveEntities([]model.Entity{e}, "current", ""); err != nil {
		t.Fatal(err)
	}

	rows, err := db.Query("SELECT name, entity_type FROM entities")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["name"] != "foo" || rows[0]["entity_type"] != "function" {
		t.Errorf("unexpected row: %v", rows[0])
	}
}

func TestQueryRejectsWrites(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.Query("DELETE FROM entities"); err == nil {
		t.Fatal("write statements must be rejected")
	}
	if _, err := db.Query("  insert into metadata values ('k','v')"); err == nil {
		t.Fatal("case-insensitive rejection failed")
	}
	if _, err := db.Query("WITH x AS (SELECT 1 AS n) SELECT n FROM x"); err != nil {
		t.Errorf("WITH-prefixed reads must pass: %v", err)
	}
}

func TestQueryInvalidSQLForwardsError(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Query("SELECT nope FROM nothing")
	if err == nil {
		t.Fatal("invalid SQL must error")
	}
}

func TestMetadata(t *testing.T) {
	db := setupTestDB(t)

	if _, ok, err := db.GetMetadata("missing"); err != nil || ok {
		t.Errorf("missing key: ok=%v err=%v", ok, err)
	}
	if err := db.SetMetadata("head", "abc"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMetadata("head", "def"); err != nil {
		t.Fatal(err)
	}
	value, ok, err := db.GetMetadata("head")
	if err != nil || !ok || value != "def" {
		t.Errorf("metadata replace broken: %q ok=%v err=%v", value, ok, err)
	}
}

func TestSaveEntitiesUpsert(t *testing.T) {
	db := setupTestDB(t)

	// Within one batch, a later entity with the same id and snapshot
	// replaces the earlier one.
	entities := []model.Entity{
		sampleEntity("a.ts::function::foo", "foo", "body", "a.ts"),
		sampleEntity("a.ts::function::foo", "foo", "body2", "a.ts"),
	}
	if err := db.SaveEntities(entities, "current", ""); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetEntities("current", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Content != "body2" {
		t.Errorf("upsert semantics broken: %+v", got)
	}
}
