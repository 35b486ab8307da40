package notes

import (
	"testing"

	"github.com/cliqueapp/clique/pkg/clique/fault"
	"github.com/cliqueapp/clique/pkg/clique/groups"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"github.com/cliqueapp/clique/pkg/clique/posts"
	"github.com/cliqueapp/clique/pkg/clique/users"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	user := models.User{Username: username, Name: "Test User"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint) *models.Post {
	groupSvc := groups.NewService(db, users.NewService(db))
	if _, err := groupSvc.Create(authorID, "book club"); err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}
	post, err := posts.NewService(db, groupSvc).Create(authorID, "hello", "", nil)
	if err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return post
}

func setupService(db *gorm.DB) *Service {
	groupSvc := groups.NewService(db, users.NewService(db))
	return NewService(db, posts.NewService(db, groupSvc))
}

func TestCreateNote(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)
	svc := setupService(db)

	// Any user may note a post, not just its author
	note, err := svc.Create(bob.ID, "great read", post.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if note.AuthorID != bob.ID || note.TargetID != post.ID {
		t.Errorf("Unexpected note %+v", note)
	}
}

func TestCreateNoteMissingPost(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	svc := setupService(db)

	_, err := svc.Create(alice.ID, "orphan", 999)
	fe, ok := fault.As(err)
	if !ok || fe.Kind != fault.KindPostNotFound {
		t.Errorf("Expected PostNotFound, got %v", err)
	}
}

func TestCreateDuplicateNote(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)
	svc := setupService(db)

	if _, err := svc.Create(alice.ID, "first", post.ID); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The post already carries a note, even one by another user
	_, err := svc.Create(bob.ID, "second", post.ID)
	fe, ok := fault.As(err)
	if !ok || fe.Kind != fault.KindDuplicateNote {
		t.Errorf("Expected DuplicateNote, got %v", err)
	}
}

func TestUpdateNote(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID)
	svc := setupService(db)

	note, _ := svc.Create(alice.ID, "draft", post.ID)
	if err := svc.Update(note.ID, "final"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, _ := svc.Get(note.ID)
	if got.Body != "final" {
		t.Errorf("Expected body 'final', got %q", got.Body)
	}
}

func TestNoteRequireAuthor(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)
	svc := setupService(db)

	note, _ := svc.Create(alice.ID, "mine", post.ID)

	if err := svc.RequireAuthor(alice.ID, note.ID); err != nil {
		t.Errorf("Author check failed for the author: %v", err)
	}

	err := svc.RequireAuthor(bob.ID, note.ID)
	fe, ok := fault.As(err)
	if !ok || fe.Kind != fault.KindNotNoteAuthor {
		t.Errorf("Expected NotNoteAuthor, got %v", err)
	}

	err = svc.RequireAuthor(alice.ID, 999)
	fe, ok = fault.As(err)
	if !ok || fe.Kind != fault.KindNoteNotFound {
		t.Errorf("Expected NoteNotFound, got %v", err)
	}
}

func TestDeleteNote(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID)
	svc := setupService(db)

	note, _ := svc.Create(alice.ID, "ephemeral", post.ID)
	if err := svc.Delete(note.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := svc.Get(note.ID)
	fe, ok := fault.As(err)
	if !ok || fe.Kind != fault.KindNoteNotFound {
		t.Errorf("Expected NoteNotFound, got %v", err)
	}

	// The slot frees up for a new note
	if _, err := svc.Create(alice.ID, "replacement", post.ID); err != nil {
		t.Errorf("Create after delete failed: %v", err)
	}
}

func TestNotesByTarget(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID)
	svc := setupService(db)

	svc.Create(alice.ID, "on post", post.ID)

	notes, err := svc.ByTarget(post.ID)
	if err != nil {
		t.Fatalf("ByTarget failed: %v", err)
	}
	if len(notes) != 1 || notes[0].Body != "on post" {
		t.Errorf("Unexpected notes %+v", notes)
	}

	notes, _ = svc.ByTarget(999)
	if len(notes) != 0 {
		t.Errorf("Expected no notes for unknown target, got %d", len(notes))
	}
}
