package posts

import (
	"github.com/cliqueapp/clique/pkg/clique/models"
	"gorm.io/gorm"
)

// Cascade coordinates removal of dependent records (links, notes) when a
// post is deleted or detached from a group.
type Cascade struct {
	db    *gorm.DB
	posts *Service
}

// NewCascade creates the cascade coordinator
func NewCascade(db *gorm.DB, posts *Service) *Cascade {
	return &Cascade{db: db, posts: posts}
}

// Delete fully removes a post: every link and note targeting it, its
// publications, and finally the post itself. Dependents go first so a
// failure mid-way cannot leave them referencing a vanished post.
func (c *Cascade) Delete(userID, postID uint) error {
	if err := c.posts.RequireAuthor(userID, postID); err != nil {
		return err
	}

	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_id = ?", postID).Delete(&models.Link{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_id = ?", postID).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostPublication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
}

// DeleteScoped detaches one group from the post's group set. Notes and
// links stay intact: a post still published elsewhere keeps its
// annotations. The caller admin-checks the target group.
func (c *Cascade) DeleteScoped(userID, postID, groupID uint) error {
	if err := c.posts.RequireAuthor(userID, postID); err != nil {
		return err
	}
	return c.posts.RemoveGroup(postID, groupID)
}
