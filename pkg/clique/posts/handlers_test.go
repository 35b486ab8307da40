package posts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cliqueapp/clique/pkg/clique/auth"
	"github.com/cliqueapp/clique/pkg/clique/groups"
	"github.com/cliqueapp/clique/pkg/clique/links"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"github.com/cliqueapp/clique/pkg/clique/render"
	"github.com/cliqueapp/clique/pkg/clique/users"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var testTokens = auth.NewTokenService("test-secret", time.Hour)

func setupTestRouter(db *gorm.DB) (*gin.Engine, *groups.Service, *Service) {
	gin.SetMode(gin.TestMode)

	userSvc := users.NewService(db)
	groupSvc := groups.NewService(db, userSvc)
	postSvc := NewService(db, groupSvc)
	cascade := NewCascade(db, postSvc)
	linkSvc := links.NewService(db, postSvc)
	resolver := render.NewResolver(userSvc, groupSvc)
	handler := NewHandler(postSvc, cascade, groupSvc, userSvc, linkSvc, resolver)

	r := gin.New()
	rg := r.Group("/posts", auth.Middleware(testTokens))
	handler.RegisterRoutes(rg)
	return r, groupSvc, postSvc
}

func getAuthHeader(t *testing.T, user models.User) string {
	token, err := testTokens.Generate(user.ID, user.Username)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, url, authHeader string, body any) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		buf = bytes.NewBuffer(jsonBody)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreatePostHTTP(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	router, groupSvc, _ := setupTestRouter(db)

	groupSvc.Create(alice.ID, "bookclub")

	resp := doJSON(t, router, "POST", "/posts", getAuthHeader(t, alice), CreatePostRequest{
		Content: "hello",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var post PostResponse
	json.Unmarshal(resp.Body.Bytes(), &post)
	if post.Author != "alice" {
		t.Errorf("Expected author alice, got %s", post.Author)
	}
	if len(post.Groups) != 1 || post.Groups[0] != "bookclub" {
		t.Errorf("Expected groups [bookclub], got %v", post.Groups)
	}
}

func TestPublishTwiceHTTP(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	router, groupSvc, postSvc := setupTestRouter(db)

	groupSvc.Create(alice.ID, "bookclub")
	groupSvc.Create(alice.ID, "chessclub")
	post, _ := postSvc.Create(alice.ID, "hello", "bookclub", nil)

	url := fmt.Sprintf("/posts/%d/publish", post.ID)
	resp := doJSON(t, router, "POST", url, getAuthHeader(t, alice), PublishRequest{Group: "chessclub"})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, "POST", url, getAuthHeader(t, alice), PublishRequest{Group: "chessclub"})
	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUpdatePostNotAuthorHTTP(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	router, groupSvc, postSvc := setupTestRouter(db)

	groupSvc.Create(alice.ID, "bookclub")
	post, _ := postSvc.Create(alice.ID, "hello", "bookclub", nil)

	url := fmt.Sprintf("/posts/%d", post.ID)
	resp := doJSON(t, router, "PATCH", url, getAuthHeader(t, bob), map[string]any{"content": "hijacked"})
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d: %s", resp.Code, resp.Body.String())
	}

	got, _ := postSvc.Get(post.ID)
	if got.Content != "hello" {
		t.Errorf("Content changed by non-author: %q", got.Content)
	}
}

func TestListVisiblePostsHTTP(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	router, groupSvc, postSvc := setupTestRouter(db)

	groupSvc.Create(alice.ID, "bookclub")
	postSvc.Create(alice.ID, "for the club", "bookclub", nil)

	// Outside the group bob sees nothing
	resp := doJSON(t, router, "GET", "/posts", getAuthHeader(t, bob), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var visible []PostResponse
	json.Unmarshal(resp.Body.Bytes(), &visible)
	if len(visible) != 0 {
		t.Errorf("Expected no visible posts, got %d", len(visible))
	}

	groupSvc.AddMember("bookclub", "bob")
	resp = doJSON(t, router, "GET", "/posts", getAuthHeader(t, bob), nil)
	json.Unmarshal(resp.Body.Bytes(), &visible)
	if len(visible) != 1 || visible[0].Content != "for the club" {
		t.Errorf("Expected the club post, got %+v", visible)
	}
}

func TestDeletePostScopedHTTP(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	router, groupSvc, postSvc := setupTestRouter(db)

	groupSvc.Create(alice.ID, "bookclub")
	groupSvc.Create(alice.ID, "chessclub")
	post, _ := postSvc.Create(alice.ID, "hello", "", nil)

	url := fmt.Sprintf("/posts/%d?group=bookclub", post.ID)
	resp := doJSON(t, router, "DELETE", url, getAuthHeader(t, alice), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	if _, err := postSvc.Get(post.ID); err != nil {
		t.Errorf("Scoped delete removed the post: %v", err)
	}
	ids, _ := postSvc.GroupIDs(post.ID)
	if len(ids) != 1 {
		t.Errorf("Expected one remaining publication, got %v", ids)
	}

	// Full delete
	resp = doJSON(t, router, "DELETE", fmt.Sprintf("/posts/%d", post.ID), getAuthHeader(t, alice), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if _, err := postSvc.Get(post.ID); err == nil {
		t.Error("Expected the post to be gone after full delete")
	}
}
