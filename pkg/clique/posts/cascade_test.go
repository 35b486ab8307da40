package posts

import (
	"testing"

	"github.com/cliqueapp/clique/pkg/clique/fault"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"gorm.io/gorm"
)

func countWhere(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	return n
}

func TestCascadeDeleteRemovesDependents(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	groupSvc, svc := setupServices(db)
	cascade := NewCascade(db, svc)

	groupSvc.Create(alice.ID, "book club")
	post, _ := svc.Create(alice.ID, "hello", "book club", nil)
	keeper, _ := svc.Create(alice.ID, "unrelated", "book club", nil)

	db.Create(&models.Note{AuthorID: bob.ID, Body: "nice", TargetID: post.ID})
	db.Create(&models.Link{AuthorID: alice.ID, URL: "https://example.com", TargetID: post.ID})
	db.Create(&models.Note{AuthorID: bob.ID, Body: "other", TargetID: keeper.ID})

	if err := cascade.Delete(alice.ID, post.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if n := countWhere(t, db, &models.Note{}, "target_id = ?", post.ID); n != 0 {
		t.Errorf("Expected 0 notes after cascade, got %d", n)
	}
	if n := countWhere(t, db, &models.Link{}, "target_id = ?", post.ID); n != 0 {
		t.Errorf("Expected 0 links after cascade, got %d", n)
	}
	if n := countWhere(t, db, &models.PostPublication{}, "post_id = ?", post.ID); n != 0 {
		t.Errorf("Expected 0 publications after cascade, got %d", n)
	}
	_, err := svc.Get(post.ID)
	fe, ok := fault.As(err)
	if !ok || fe.Kind != fault.KindPostNotFound {
		t.Errorf("Expected PostNotFound after cascade, got %v", err)
	}

	// Dependents of other posts are untouched
	if n := countWhere(t, db, &models.Note{}, "target_id = ?", keeper.ID); n != 1 {
		t.Errorf("Expected keeper post's note to survive, got %d", n)
	}
}

func TestCascadeDeleteRequiresAuthor(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	groupSvc, svc := setupServices(db)
	cascade := NewCascade(db, svc)

	groupSvc.Create(alice.ID, "book club")
	post, _ := svc.Create(alice.ID, "hello", "book club", nil)

	err := cascade.Delete(bob.ID, post.ID)
	fe, ok := fault.As(err)
	if !ok || fe.Kind != fault.KindNotPostAuthor {
		t.Errorf("Expected NotPostAuthor, got %v", err)
	}
	if _, err := svc.Get(post.ID); err != nil {
		t.Errorf("Post should survive a rejected delete: %v", err)
	}
}

func TestCascadeDeleteScoped(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	groupSvc, svc := setupServices(db)
	cascade := NewCascade(db, svc)

	g1, _ := groupSvc.Create(alice.ID, "book club")
	g2, _ := groupSvc.Create(alice.ID, "chess club")
	post, _ := svc.Create(alice.ID, "hello", "", nil)
	db.Create(&models.Note{AuthorID: bob.ID, Body: "nice", TargetID: post.ID})

	if err := cascade.DeleteScoped(alice.ID, post.ID, g1.ID); err != nil {
		t.Fatalf("DeleteScoped failed: %v", err)
	}

	ids, _ := svc.GroupIDs(post.ID)
	if len(ids) != 1 || ids[0] != g2.ID {
		t.Errorf("Expected only %d to remain, got %v", g2.ID, ids)
	}
	if n := countWhere(t, db, &models.Note{}, "target_id = ?", post.ID); n != 1 {
		t.Errorf("Scoped delete must leave notes intact, got %d", n)
	}
	if _, err := svc.Get(post.ID); err != nil {
		t.Errorf("Scoped delete must leave the post intact: %v", err)
	}

	// Non-authors cannot detach either
	err := cascade.DeleteScoped(bob.ID, post.ID, g2.ID)
	fe, ok := fault.As(err)
	if !ok || fe.Kind != fault.KindNotPostAuthor {
		t.Errorf("Expected NotPostAuthor, got %v", err)
	}
}
