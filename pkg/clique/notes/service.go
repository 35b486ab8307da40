package notes

import (
	"errors"

	"github.com/cliqueapp/clique/pkg/clique/fault"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"gorm.io/gorm"
)

// PostChecker guards note creation against nonexistent targets.
type PostChecker interface {
	Exists(postID uint) error
}

// Service owns note records. At most one note may exist per target post.
type Service struct {
	db    *gorm.DB
	posts PostChecker
}

// NewService creates the notes service
func NewService(db *gorm.DB, posts PostChecker) *Service {
	return &Service{db: db, posts: posts}
}

// Create attaches a note to an existing post. A post that already carries
// a note rejects a second one.
func (s *Service) Create(authorID uint, body string, targetID uint) (*models.Note, error) {
	if err := s.posts.Exists(targetID); err != nil {
		return nil, err
	}

	note := models.Note{AuthorID: authorID, Body: body, TargetID: targetID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Note{}).Where("target_id = ?", targetID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fault.DuplicateNote(targetID)
		}
		return tx.Create(&note).Error
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Get returns a note by id
func (s *Service) Get(id uint) (*models.Note, error) {
	var note models.Note
	if err := s.db.First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NoteNotFound(id)
		}
		return nil, err
	}
	return &note, nil
}

// All returns every note, most recently updated first
func (s *Service) All() ([]models.Note, error) {
	var found []models.Note
	if err := s.db.Order("updated_at DESC").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// ByAuthor returns the author's notes
func (s *Service) ByAuthor(authorID uint) ([]models.Note, error) {
	var found []models.Note
	if err := s.db.Where("author_id = ?", authorID).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// ByTarget returns the notes on a post
func (s *Service) ByTarget(targetID uint) ([]models.Note, error) {
	var found []models.Note
	if err := s.db.Where("target_id = ?", targetID).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// RequireAuthor fails unless userID authored the note
func (s *Service) RequireAuthor(userID, noteID uint) error {
	note, err := s.Get(noteID)
	if err != nil {
		return err
	}
	if note.AuthorID != userID {
		return fault.NotNoteAuthor(userID, noteID)
	}
	return nil
}

// Update replaces a note's body
func (s *Service) Update(id uint, body string) error {
	note, err := s.Get(id)
	if err != nil {
		return err
	}
	note.Body = body
	return s.db.Save(note).Error
}

// Delete removes one note
func (s *Service) Delete(id uint) error {
	result := s.db.Delete(&models.Note{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fault.NoteNotFound(id)
	}
	return nil
}
