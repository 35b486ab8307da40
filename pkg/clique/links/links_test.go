package links

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

func TestCreateLink(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID)
	svc := setupService(db)

	link, err := svc.Create(alice.ID, "https://example.com/story", "the story", post.ID, true)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if link.URL != "https://example.com/story" || !link.Paywall {
		t.Errorf("Unexpected link %+v", link)
	}

	// A post can carry several links
	if _, err := svc.Create(alice.ID, "https://example.com/other", "", post.ID, false); err != nil {
		t.Errorf("Second Create failed: %v", err)
	}

	found, _ := svc.ByTarget(post.ID)
	if len(found) != 2 {
		t.Errorf("Expected 2 links on post, got %d", len(found))
	}
}

func TestCreateLinkMissingPost(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	svc := setupService(db)

	_, err := svc.Create(alice.ID, "https://example.com", "", 999, false)
	fe, ok := fault.As(err)
	if !ok || fe.Kind != fault.KindPostNotFound {
		t.Errorf("Expected PostNotFound, got %v", err)
	}
}

func TestLinkRequireAuthor(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)
	svc := setupService(db)

	link, _ := svc.Create(alice.ID, "https://example.com", "", post.ID, false)

	if err := svc.RequireAuthor(alice.ID, link.ID); err != nil {
		t.Errorf("Author check failed for the author: %v", err)
	}

	err := svc.RequireAuthor(bob.ID, link.ID)
	fe, ok := fault.As(err)
	if !ok || fe.Kind != fault.KindNotLinkAuthor {
		t.Errorf("Expected NotLinkAuthor, got %v", err)
	}

	err = svc.RequireAuthor(alice.ID, 999)
	fe, ok = fault.As(err)
	if !ok || fe.Kind != fault.KindLinkNotFound {
		t.Errorf("Expected LinkNotFound, got %v", err)
	}
}

func TestDeleteLink(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID)
	svc := setupService(db)

	link, _ := svc.Create(alice.ID, "https://example.com", "", post.ID, false)
	if err := svc.Delete(link.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := svc.Get(link.ID)
	fe, ok := fault.As(err)
	if !ok || fe.Kind != fault.KindLinkNotFound {
		t.Errorf("Expected LinkNotFound, got %v", err)
	}
}

func TestLinksByAuthor(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)
	svc := setupService(db)

	svc.Create(alice.ID, "https://example.com/a", "", post.ID, false)
	svc.Create(bob.ID, "https://example.com/b", "", post.ID, false)

	mine, err := svc.ByAuthor(alice.ID)
	if err != nil {
		t.Fatalf("ByAuthor failed: %v", err)
	}
	if len(mine) != 1 || mine[0].URL != "https://example.com/a" {
		t.Errorf("Unexpected links %+v", mine)
	}
}
