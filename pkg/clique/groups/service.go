package groups

import (
	"errors"

	"github.com/cliqueapp/clique/pkg/clique/fault"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"gorm.io/gorm"
)

// DeletedGroupName is the sentinel used in batch name lookups for group ids
// that no longer resolve, preserving positional alignment with the input.
const DeletedGroupName = "DELETED_GROUP"

// UserDirectory resolves member identity for roster operations.
type UserDirectory interface {
	GetByUsername(username string) (*models.User, error)
}

// Query is the typed filter for group reads.
type Query struct {
	ByAdmin    uint
	ByName     string
	ByMemberID uint
}

// Service owns group identity, the admin/member roster and name uniqueness.
type Service struct {
	db    *gorm.DB
	users UserDirectory
}

// NewService creates the Membership service. The user directory is injected
// so roster operations can resolve usernames.
func NewService(db *gorm.DB, users UserDirectory) *Service {
	return &Service{db: db, users: users}
}

// Create makes a new group administered by adminID. The admin is seeded as
// the first member. The name must be non-empty and unique.
func (s *Service) Create(adminID uint, name string) (*models.Group, error) {
	if name == "" {
		return nil, fault.EmptyGroupName()
	}

	var group models.Group
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Group
		err := tx.Where("name = ?", name).First(&existing).Error
		if err == nil {
			return fault.DuplicateGroupName(name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		group = models.Group{Name: name, AdminID: adminID}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		membership := models.GroupMembership{UserID: adminID, GroupID: group.ID}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Get returns a group by id
func (s *Service) Get(id uint) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.GroupNotFound(id)
		}
		return nil, err
	}
	return &group, nil
}

// GetByName returns a group by its unique name
func (s *Service) GetByName(name string) (*models.Group, error) {
	var group models.Group
	if err := s.db.Where("name = ?", name).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.GroupNotFoundByName(name)
		}
		return nil, err
	}
	return &group, nil
}

// RequireAdmin fails unless userID is the stored admin of the group
func (s *Service) RequireAdmin(userID, groupID uint) error {
	group, err := s.Get(groupID)
	if err != nil {
		return err
	}
	if group.AdminID != userID {
		return fault.NotGroupAdmin(userID, groupID)
	}
	return nil
}

// GetByNameForAdmin resolves a group by name and verifies adminID is its admin
func (s *Service) GetByNameForAdmin(name string, adminID uint) (*models.Group, error) {
	group, err := s.GetByName(name)
	if err != nil {
		return nil, err
	}
	if err := s.RequireAdmin(adminID, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

// Find returns groups matching the query, most recently updated first
func (s *Service) Find(q Query) ([]models.Group, error) {
	tx := s.db.Model(&models.Group{})
	if q.ByAdmin != 0 {
		tx = tx.Where("groups.admin_id = ?", q.ByAdmin)
	}
	if q.ByName != "" {
		tx = tx.Where("groups.name = ?", q.ByName)
	}
	if q.ByMemberID != 0 {
		tx = tx.Joins("JOIN group_memberships ON group_memberships.group_id = groups.id").
			Where("group_memberships.user_id = ?", q.ByMemberID)
	}

	var found []models.Group
	if err := tx.Order("groups.updated_at DESC").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// AdministeredBy returns every group the user is the admin of
func (s *Service) AdministeredBy(adminID uint) ([]models.Group, error) {
	return s.Find(Query{ByAdmin: adminID})
}

// MemberGroupIDs returns the ids of every group the user belongs to
func (s *Service) MemberGroupIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.GroupMembership{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Members returns the roster of a group with users preloaded
func (s *Service) Members(groupID uint) ([]models.GroupMembership, error) {
	var memberships []models.GroupMembership
	err := s.db.Preload("User").Where("group_id = ?", groupID).Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// AddMember adds the named user to the named group's roster. Fails if the
// user is already present.
func (s *Service) AddMember(groupName, username string) error {
	group, err := s.GetByName(groupName)
	if err != nil {
		return err
	}
	member, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.GroupMembership
		err := tx.Where("user_id = ? AND group_id = ?", member.ID, group.ID).First(&existing).Error
		if err == nil {
			return fault.DuplicateMember(username, groupName)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.GroupMembership{UserID: member.ID, GroupID: group.ID}).Error
	})
}

// RemoveMember removes the named user from the named group's roster. Fails
// if the user is not present.
func (s *Service) RemoveMember(groupName, username string) error {
	group, err := s.GetByName(groupName)
	if err != nil {
		return err
	}
	member, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND group_id = ?", member.ID, group.ID).
		Delete(&models.GroupMembership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fault.MemberNotFound(username)
	}
	return nil
}

// Rename changes a group's name. Both names must be non-empty and the new
// name must not collide with an existing group.
func (s *Service) Rename(name, newName string) error {
	if name == "" || newName == "" {
		return fault.EmptyGroupName()
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.Where("name = ?", name).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.GroupNotFoundByName(name)
			}
			return err
		}

		var existing models.Group
		err := tx.Where("name = ? AND id != ?", newName, group.ID).First(&existing).Error
		if err == nil {
			return fault.DuplicateGroupName(newName)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Model(&group).Update("name", newName).Error
	})
}

// Delete removes the group and its roster. Posts still publishing to the
// group keep their dangling reference; it renders as DeletedGroupName.
func (s *Service) Delete(groupID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.GroupNotFound(groupID)
			}
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
}

// IDsToGroupNames projects ids to names, preserving the caller's input order
// and length. Ids with no matching group map to DeletedGroupName.
func (s *Service) IDsToGroupNames(ids []uint) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	var found []models.Group
	if err := s.db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]string, len(found))
	for _, g := range found {
		byID[g.ID] = g.Name
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := byID[id]; ok {
			names[i] = name
		} else {
			names[i] = DeletedGroupName
		}
	}
	return names, nil
}
