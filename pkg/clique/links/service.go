package links

import (
	"errors"

	"github.com/cliqueapp/clique/pkg/clique/fault"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"gorm.io/gorm"
)

// PostChecker guards link creation against nonexistent targets.
type PostChecker interface {
	Exists(postID uint) error
}

// Service owns link records attached to posts.
type Service struct {
	db    *gorm.DB
	posts PostChecker
}

// NewService creates the links service
func NewService(db *gorm.DB, posts PostChecker) *Service {
	return &Service{db: db, posts: posts}
}

// Create attaches a link to an existing post
func (s *Service) Create(authorID uint, url, displayText string, targetID uint, paywall bool) (*models.Link, error) {
	if err := s.posts.Exists(targetID); err != nil {
		return nil, err
	}

	link := models.Link{
		AuthorID:    authorID,
		URL:         url,
		DisplayText: displayText,
		TargetID:    targetID,
		Paywall:     paywall,
	}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// Get returns a link by id
func (s *Service) Get(id uint) (*models.Link, error) {
	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.LinkNotFound(id)
		}
		return nil, err
	}
	return &link, nil
}

// All returns every link, most recently updated first
func (s *Service) All() ([]models.Link, error) {
	var found []models.Link
	if err := s.db.Order("updated_at DESC").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// ByAuthor returns the author's links
func (s *Service) ByAuthor(authorID uint) ([]models.Link, error) {
	var found []models.Link
	if err := s.db.Where("author_id = ?", authorID).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// ByTarget returns the links on a post
func (s *Service) ByTarget(targetID uint) ([]models.Link, error) {
	var found []models.Link
	if err := s.db.Where("target_id = ?", targetID).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// RequireAuthor fails unless userID created the link
func (s *Service) RequireAuthor(userID, linkID uint) error {
	link, err := s.Get(linkID)
	if err != nil {
		return err
	}
	if link.AuthorID != userID {
		return fault.NotLinkAuthor(userID, linkID)
	}
	return nil
}

// Delete removes one link
func (s *Service) Delete(id uint) error {
	result := s.db.Delete(&models.Link{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fault.LinkNotFound(id)
	}
	return nil
}
