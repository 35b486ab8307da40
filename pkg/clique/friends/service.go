package friends

import (
	"errors"

	"github.com/cliqueapp/clique/pkg/clique/fault"
	"github.com/cliqueapp/clique/pkg/clique/models"
	"gorm.io/gorm"
)

// Service owns the pairwise relationship state machine between users:
// none, pending(from→to), friends. One edge row exists per unordered pair,
// so a pending request can never coexist with a friendship.
type Service struct {
	db *gorm.DB
}

// NewService creates the friend graph service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SendRequest transitions none → pending(from→to). An accepted edge in
// either direction fails with AlreadyFriends; a pending edge in either
// direction fails with FriendRequestExists.
func (s *Service) SendRequest(from, to uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var edge models.Friendship
		err := tx.Where(
			"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			from, to, to, from,
		).First(&edge).Error
		if err == nil {
			if edge.Status == models.FriendshipStatusAccepted {
				return fault.AlreadyFriends(from, to)
			}
			return fault.FriendRequestExists(from, to)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&models.Friendship{
			RequesterID: from,
			AddresseeID: to,
			Status:      models.FriendshipStatusPending,
		}).Error
	})
}

// RemoveRequest transitions pending(from→to) → none. Only the matching
// direction counts.
func (s *Service) RemoveRequest(from, to uint) error {
	result := s.db.Where(
		"requester_id = ? AND addressee_id = ? AND status = ?",
		from, to, models.FriendshipStatusPending,
	).Delete(&models.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fault.FriendRequestNotFound(from, to)
	}
	return nil
}

// AcceptRequest transitions pending(from→to) → friends. The original
// requester comes first; acceptance is recipient-initiated but keeps the
// original direction.
func (s *Service) AcceptRequest(from, to uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var edge models.Friendship
		err := tx.Where(
			"requester_id = ? AND addressee_id = ? AND status = ?",
			from, to, models.FriendshipStatusPending,
		).First(&edge).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.FriendRequestNotFound(from, to)
			}
			return err
		}
		return tx.Model(&edge).Update("status", models.FriendshipStatusAccepted).Error
	})
}

// RejectRequest transitions pending(from→to) → none without creating a
// friendship. A rejected pair may request again later.
func (s *Service) RejectRequest(from, to uint) error {
	result := s.db.Where(
		"requester_id = ? AND addressee_id = ? AND status = ?",
		from, to, models.FriendshipStatusPending,
	).Delete(&models.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fault.FriendRequestNotFound(from, to)
	}
	return nil
}

// RemoveFriend transitions friends → none, in either direction.
func (s *Service) RemoveFriend(user, other uint) error {
	result := s.db.Where(
		"((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)) AND status = ?",
		user, other, other, user, models.FriendshipStatusAccepted,
	).Delete(&models.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fault.FriendNotFound(user, other)
	}
	return nil
}

// Friends returns the ids of every user holding an accepted edge with
// userID, regardless of who requested.
func (s *Service) Friends(userID uint) ([]uint, error) {
	var edges []models.Friendship
	err := s.db.Where(
		"(requester_id = ? OR addressee_id = ?) AND status = ?",
		userID, userID, models.FriendshipStatusAccepted,
	).Find(&edges).Error
	if err != nil {
		return nil, err
	}

	friendIDs := make([]uint, 0, len(edges))
	for _, e := range edges {
		if e.RequesterID == userID {
			friendIDs = append(friendIDs, e.AddresseeID)
		} else {
			friendIDs = append(friendIDs, e.RequesterID)
		}
	}
	return friendIDs, nil
}

// Requests returns every pending edge where userID is on either side.
func (s *Service) Requests(userID uint) ([]models.Friendship, error) {
	var edges []models.Friendship
	err := s.db.Where(
		"(requester_id = ? OR addressee_id = ?) AND status = ?",
		userID, userID, models.FriendshipStatusPending,
	).Find(&edges).Error
	if err != nil {
		return nil, err
	}
	return edges, nil
}
