package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"prepnotes/prepnotes/sources/psql"
	"prepnotes/prepnotes/sources/psql/models"
)

// --- Helpers ---

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := psql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, ids ...string) {
	for _, id := range ids {
		if err := db.Create(&models.User{ID: id}).Error; err != nil {
			t.Fatalf("failed to create user %s: %v", id, err)
		}
	}
}

func seedCategory(t *testing.T, db *gorm.DB) int {
	dao := NewCategoryDAO(db)
	if err := dao.Seed(context.Background()); err != nil {
		t.Fatalf("failed to seed categories: %v", err)
	}
	var cat models.Category
	if err := db.Where("slug = ?", "technical").First(&cat).Error; err != nil {
		t.Fatalf("failed to load seeded category: %v", err)
	}
	return cat.ID
}

func mustCreateNote(t *testing.T, dao *NoteDAO, note *models.Note) *models.Note {
	if err := dao.CreateNote(context.Background(), note); err != nil {
		t.Fatalf("failed to create note: %v", err)
	}
	return note
}

// --- Tests ---

func TestGetNoteByIDScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice", "bob")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)
	ctx := context.Background()

	note := mustCreateNote(t, noteDAO, &models.Note{
		UserID: "alice", Title: "mine", Content: "secret", CategoryID: catID,
	})

	got, err := noteDAO.GetNoteByID(ctx, note.ID, "alice")
	if err != nil || got == nil {
		t.Fatalf("owner read failed: note=%v err=%v", got, err)
	}
	if got.Category.Slug != "technical" {
		t.Errorf("expected category preloaded, got %+v", got.Category)
	}

	// Another user's read is indistinguishable from a missing note.
	got, err = noteDAO.GetNoteByID(ctx, note.ID, "bob")
	if err != nil {
		t.Fatalf("cross-user read errored: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for cross-user read, got %+v", got)
	}
}

func TestUpdateDeleteScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice", "bob")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)
	ctx := context.Background()

	note := mustCreateNote(t, noteDAO, &models.Note{
		UserID: "alice", Title: "original", Content: "body", CategoryID: catID,
	})

	rows, err := noteDAO.UpdateNote(ctx, note.ID, "bob", map[string]interface{}{"title": "stolen"})
	if err != nil {
		t.Fatalf("cross-user update errored: %v", err)
	}
	if rows != 0 {
		t.Errorf("expected 0 rows updated by non-owner, got %d", rows)
	}

	rows, err = noteDAO.DeleteNote(ctx, note.ID, "bob")
	if err != nil {
		t.Fatalf("cross-user delete errored: %v", err)
	}
	if rows != 0 {
		t.Errorf("expected 0 rows deleted by non-owner, got %d", rows)
	}

	got, _ := noteDAO.GetNoteByID(ctx, note.ID, "alice")
	if got == nil || got.Title != "original" {
		t.Fatalf("note modified by non-owner: %+v", got)
	}

	rows, err = noteDAO.DeleteNote(ctx, note.ID, "alice")
	if err != nil || rows != 1 {
		t.Fatalf("owner delete failed: rows=%d err=%v", rows, err)
	}
}

func TestDeleteMissingNoteAffectsZeroRows(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice")
	seedCategory(t, db)
	noteDAO := NewNoteDAO(db)

	rows, err := noteDAO.DeleteNote(context.Background(), 9999, "alice")
	if err != nil {
		t.Fatalf("delete of missing note errored: %v", err)
	}
	if rows != 0 {
		t.Errorf("expected 0 rows, got %d", rows)
	}
}

func TestURLsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)
	ctx := context.Background()

	urls := models.URLList{"http://a", "http://b"}
	note := mustCreateNote(t, noteDAO, &models.Note{
		UserID: "alice", Title: "links", Content: "x", CategoryID: catID, URLs: urls,
	})

	got, err := noteDAO.GetNoteByID(ctx, note.ID, "alice")
	if err != nil || got == nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(got.URLs) != 2 || got.URLs[0] != "http://a" || got.URLs[1] != "http://b" {
		t.Errorf("urls not preserved in order: %v", got.URLs)
	}
}

func TestTogglePinTwiceRestoresState(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)
	ctx := context.Background()

	note := mustCreateNote(t, noteDAO, &models.Note{
		UserID: "alice", Title: "t", Content: "c", CategoryID: catID,
	})
	firstUpdated := note.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	pinned, err := noteDAO.TogglePin(ctx, note.ID, "alice")
	if err != nil || pinned == nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !pinned.IsPinned {
		t.Errorf("expected pinned after first toggle")
	}
	if !pinned.UpdatedAt.After(firstUpdated) {
		t.Errorf("updated_at did not advance: %v -> %v", firstUpdated, pinned.UpdatedAt)
	}

	time.Sleep(10 * time.Millisecond)
	unpinned, err := noteDAO.TogglePin(ctx, note.ID, "alice")
	if err != nil || unpinned == nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if unpinned.IsPinned {
		t.Errorf("expected unpinned after second toggle")
	}
	if !unpinned.UpdatedAt.After(pinned.UpdatedAt) {
		t.Errorf("updated_at did not advance on second toggle")
	}
}

func TestTogglePinCrossUser(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice", "bob")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)

	note := mustCreateNote(t, noteDAO, &models.Note{
		UserID: "alice", Title: "t", Content: "c", CategoryID: catID,
	})

	got, err := noteDAO.TogglePin(context.Background(), note.ID, "bob")
	if err != nil {
		t.Fatalf("cross-user toggle errored: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for cross-user toggle, got %+v", got)
	}
}

func TestListOrdering(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)
	ctx := context.Background()

	mustCreateNote(t, noteDAO, &models.Note{UserID: "alice", Title: "old", Content: "c", CategoryID: catID})
	time.Sleep(10 * time.Millisecond)
	mustCreateNote(t, noteDAO, &models.Note{UserID: "alice", Title: "new", Content: "c", CategoryID: catID})
	time.Sleep(10 * time.Millisecond)
	pinned := mustCreateNote(t, noteDAO, &models.Note{UserID: "alice", Title: "first", Content: "c", CategoryID: catID, IsPinned: true})

	notes, err := noteDAO.GetAllNotesByUser(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	if notes[0].ID != pinned.ID {
		t.Errorf("expected pinned note first, got %q", notes[0].Title)
	}
	if notes[1].Title != "new" || notes[2].Title != "old" {
		t.Errorf("expected updated-desc within group, got %q then %q", notes[1].Title, notes[2].Title)
	}
}

func TestReorderProducesDenseSequence(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)
	ctx := context.Background()

	var ids []int
	for i := 0; i < 4; i++ {
		n := mustCreateNote(t, noteDAO, &models.Note{
			UserID: "alice", Title: fmt.Sprintf("n%d", i), Content: "c",
			CategoryID: catID, SortOrder: i,
		})
		ids = append(ids, n.ID)
	}
	// A pinned note must not participate in the unpinned group's reorder.
	pinnedNote := mustCreateNote(t, noteDAO, &models.Note{
		UserID: "alice", Title: "pinned", Content: "c", CategoryID: catID, IsPinned: true, SortOrder: 7,
	})

	// Move the last unpinned note to the front.
	group, err := noteDAO.Reorder(ctx, "alice", ids[3], 0)
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if len(group) != 4 {
		t.Fatalf("expected group of 4, got %d", len(group))
	}
	if group[0].ID != ids[3] {
		t.Errorf("expected moved note first, got id %d", group[0].ID)
	}
	for i, n := range group {
		if n.SortOrder != i {
			t.Errorf("expected dense sort order at %d, got %d", i, n.SortOrder)
		}
		if n.IsPinned {
			t.Errorf("pinned note leaked into unpinned group")
		}
	}
	wantRest := []int{ids[0], ids[1], ids[2]}
	for i, want := range wantRest {
		if group[i+1].ID != want {
			t.Errorf("relative order broken at %d: want %d got %d", i+1, want, group[i+1].ID)
		}
	}

	// The pinned group's sort order is untouched.
	got, _ := noteDAO.GetNoteByID(ctx, pinnedNote.ID, "alice")
	if got.SortOrder != 7 {
		t.Errorf("pinned note sort order changed to %d", got.SortOrder)
	}
}

func TestReorderClampsPosition(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)
	ctx := context.Background()

	a := mustCreateNote(t, noteDAO, &models.Note{UserID: "alice", Title: "a", Content: "c", CategoryID: catID, SortOrder: 0})
	b := mustCreateNote(t, noteDAO, &models.Note{UserID: "alice", Title: "b", Content: "c", CategoryID: catID, SortOrder: 1})

	group, err := noteDAO.Reorder(ctx, "alice", a.ID, 50)
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if group[0].ID != b.ID || group[1].ID != a.ID {
		t.Errorf("expected clamp to end, got %v then %v", group[0].Title, group[1].Title)
	}
}

func TestReorderCrossUser(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice", "bob")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)

	note := mustCreateNote(t, noteDAO, &models.Note{UserID: "alice", Title: "t", Content: "c", CategoryID: catID})

	_, err := noteDAO.Reorder(context.Background(), "bob", note.ID, 0)
	if err != gorm.ErrRecordNotFound {
		t.Errorf("expected record-not-found for cross-user reorder, got %v", err)
	}
}

func TestSearchNotesPagination(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice", "bob")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreateNote(t, noteDAO, &models.Note{
			UserID: "alice", Title: fmt.Sprintf("Binary Trees %d", i), Content: "traversal", CategoryID: catID,
		})
	}
	mustCreateNote(t, noteDAO, &models.Note{UserID: "alice", Title: "Unrelated", Content: "nothing", CategoryID: catID})
	mustCreateNote(t, noteDAO, &models.Note{UserID: "bob", Title: "Binary Trees too", Content: "x", CategoryID: catID})

	notes, total, err := noteDAO.SearchNotes(ctx, "alice", "binary", 1, 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 5 {
		t.Errorf("expected 5 matches scoped to alice, got %d", total)
	}
	if len(notes) != 3 {
		t.Errorf("expected page of 3, got %d", len(notes))
	}

	notes, _, err = noteDAO.SearchNotes(ctx, "alice", "binary", 2, 3)
	if err != nil {
		t.Fatalf("search page 2 failed: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("expected 2 on last page, got %d", len(notes))
	}
}

func TestStatsByCategory(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, "alice")
	catID := seedCategory(t, db)
	noteDAO := NewNoteDAO(db)

	var tips models.Category
	if err := db.Where("slug = ?", "tips").First(&tips).Error; err != nil {
		t.Fatalf("failed to load tips category: %v", err)
	}

	mustCreateNote(t, noteDAO, &models.Note{UserID: "alice", Title: "a", Content: "c", CategoryID: catID})
	mustCreateNote(t, noteDAO, &models.Note{UserID: "alice", Title: "b", Content: "c", CategoryID: catID})
	mustCreateNote(t, noteDAO, &models.Note{UserID: "alice", Title: "d", Content: "c", CategoryID: tips.ID})

	stats, err := noteDAO.StatsByCategory(context.Background(), "alice")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	counts := map[string]int64{}
	for _, s := range stats {
		counts[s.CategorySlug] = s.Count
	}
	if counts["technical"] != 2 || counts["tips"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
