package posts

import (
	"encoding/json"
	"errors"

	"github.com/cliqueapp/clique/pkg/clique/fault"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"gorm.io/gorm"
)

// GroupDirectory is the slice of Membership that Visibility depends on.
type GroupDirectory interface {
	GetByName(name string) (*models.Group, error)
	GetByNameForAdmin(name string, adminID uint) (*models.Group, error)
	AdministeredBy(adminID uint) ([]models.Group, error)
	RequireAdmin(userID, groupID uint) error
	MemberGroupIDs(userID uint) ([]uint, error)
}

// Query is the typed filter for post reads. No access control is applied
// here: Visibility answers "what posts match", callers intersect with
// membership and authorship before returning to a user.
type Query struct {
	ByAuthor     uint   // only posts by this author
	InAnyGroup   []uint // posts published to at least one of these groups
	OrAuthoredBy uint   // widen InAnyGroup with this user's own posts
}

// Service owns which groups a post is published to.
type Service struct {
	db     *gorm.DB
	groups GroupDirectory
}

// NewService creates the Visibility service with its Membership dependency.
func NewService(db *gorm.DB, groups GroupDirectory) *Service {
	return &Service{db: db, groups: groups}
}

// Create makes a post. With no group name it publishes to every group the
// author administers; with one it publishes to that group only, after an
// admin re-check.
func (s *Service) Create(authorID uint, content string, groupName string, options *models.PostOptions) (*models.Post, error) {
	var targets []uint
	if groupName == "" {
		administered, err := s.groups.AdministeredBy(authorID)
		if err != nil {
			return nil, err
		}
		for _, g := range administered {
			targets = append(targets, g.ID)
		}
	} else {
		group, err := s.groups.GetByNameForAdmin(groupName, authorID)
		if err != nil {
			return nil, err
		}
		targets = []uint{group.ID}
	}

	post := models.Post{AuthorID: authorID, Content: content, Options: options}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		for _, groupID := range targets {
			pub := models.PostPublication{PostID: post.ID, GroupID: groupID}
			if err := tx.Create(&pub).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Get returns a post by id
func (s *Service) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.PostNotFound(id)
		}
		return nil, err
	}
	return &post, nil
}

// Exists fails with PostNotFound unless the post resolves
func (s *Service) Exists(id uint) error {
	_, err := s.Get(id)
	return err
}

// RequireAuthor fails unless userID authored the post
func (s *Service) RequireAuthor(userID, postID uint) error {
	post, err := s.Get(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return fault.NotPostAuthor(userID, postID)
	}
	return nil
}

// GroupIDs returns the post's current group set
func (s *Service) GroupIDs(postID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.PostPublication{}).
		Where("post_id = ?", postID).
		Order("id").
		Pluck("group_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// PublishTo appends a group to the post's group set. A second call with the
// same arguments is an error, not a no-op.
func (s *Service) PublishTo(postID, groupID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.PostNotFound(postID)
			}
			return err
		}

		var existing models.PostPublication
		err := tx.Where("post_id = ? AND group_id = ?", postID, groupID).First(&existing).Error
		if err == nil {
			return fault.PostAlreadyPublished(postID, groupID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&models.PostPublication{PostID: postID, GroupID: groupID}).Error
	})
}

// RemoveGroup detaches a group from the post's group set. A group id that is
// on no post at all is a distinct error from one that is just not on this
// post.
func (s *Service) RemoveGroup(postID, groupID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var anywhere int64
		if err := tx.Model(&models.PostPublication{}).Where("group_id = ?", groupID).Count(&anywhere).Error; err != nil {
			return err
		}
		if anywhere == 0 {
			return fault.GroupNotFound(groupID)
		}

		result := tx.Where("post_id = ? AND group_id = ?", postID, groupID).
			Delete(&models.PostPublication{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fault.PostNotPublished(postID, groupID)
		}
		return nil
	})
}

// Find returns posts matching the query, most recently updated first
func (s *Service) Find(q Query) ([]models.Post, error) {
	tx := s.db.Model(&models.Post{})

	if len(q.InAnyGroup) > 0 {
		sub := s.db.Model(&models.PostPublication{}).
			Select("post_id").
			Where("group_id IN ?", q.InAnyGroup)
		if q.OrAuthoredBy != 0 {
			tx = tx.Where("posts.id IN (?) OR posts.author_id = ?", sub, q.OrAuthoredBy)
		} else {
			tx = tx.Where("posts.id IN (?)", sub)
		}
	} else if q.OrAuthoredBy != 0 {
		tx = tx.Where("posts.author_id = ?", q.OrAuthoredBy)
	}
	if q.ByAuthor != 0 {
		tx = tx.Where("posts.author_id = ?", q.ByAuthor)
	}

	var found []models.Post
	if err := tx.Order("posts.updated_at DESC").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Update applies a partial update. Only content and options may change;
// this is the one place author/group tampering via generic update is
// blocked.
func (s *Service) Update(postID uint, fields map[string]any) error {
	for key := range fields {
		if key != "content" && key != "options" {
			return fault.FieldNotUpdatable(key)
		}
	}

	post, err := s.Get(postID)
	if err != nil {
		return err
	}

	if content, ok := fields["content"]; ok {
		str, ok := content.(string)
		if !ok {
			return fault.FieldNotUpdatable("content")
		}
		post.Content = str
	}
	if raw, ok := fields["options"]; ok {
		buf, err := json.Marshal(raw)
		if err != nil {
			return fault.FieldNotUpdatable("options")
		}
		var options models.PostOptions
		if err := json.Unmarshal(buf, &options); err != nil {
			return fault.FieldNotUpdatable("options")
		}
		post.Options = &options
	}

	return s.db.Save(post).Error
}
