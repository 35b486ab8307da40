package users

import (
	"errors"

	"github.com/cliqueapp/clique/pkg/clique/fault"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"gorm.io/gorm"
)

// DeletedUserName is the sentinel returned by batch username lookups for
// ids with no matching user, so positional alignment with the input is
// preserved.
const DeletedUserName = "DELETED_USER"

// Service is the user directory consumed by Membership and the response
// boundary.
type Service struct {
	db *gorm.DB
}

// NewService creates a user directory service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns a user by id
func (s *Service) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.UserNotFound("")
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns a user by username
func (s *Service) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.UserNotFound(username)
		}
		return nil, err
	}
	return &user, nil
}

// List returns all users
func (s *Service) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// IDsToUsernames projects ids to usernames, preserving the caller's input
// order and length. Ids with no matching user map to DeletedUserName.
func (s *Service) IDsToUsernames(ids []uint) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]string, len(users))
	for _, u := range users {
		byID[u.ID] = u.Username
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := byID[id]; ok {
			names[i] = name
		} else {
			names[i] = DeletedUserName
		}
	}
	return names, nil
}
