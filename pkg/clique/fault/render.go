package fault

import (
	"fmt"
	"net/http"
)

// NameResolver resolves raw ids to display names. Implementations may be
// backed by the user directory and Membership; missing ids resolve to a
// sentinel, never an error.
type NameResolver interface {
	Username(id uint) string
	GroupName(id uint) string
}

// IsNotFound reports whether the kind belongs to the not-found family
// (referenced entity does not exist) as opposed to the not-allowed family
// (invariant violation).
func IsNotFound(k Kind) bool {
	switch k {
	case KindUserNotFound, KindGroupNotFound, KindMemberNotFound,
		KindPostNotFound, KindNoteNotFound, KindLinkNotFound,
		KindFriendRequestNotFound, KindFriendNotFound:
		return true
	}
	return false
}

// HTTPStatus maps a kind to the response status code.
func HTTPStatus(k Kind) int {
	switch {
	case IsNotFound(k):
		return http.StatusNotFound
	case k == KindDuplicateGroupName || k == KindDuplicateMember ||
		k == KindPostAlreadyPublished || k == KindDuplicateNote ||
		k == KindAlreadyFriends || k == KindFriendRequestExists:
		return http.StatusConflict
	case k == KindEmptyGroupName || k == KindFieldNotUpdatable:
		return http.StatusBadRequest
	case k == KindNotGroupAdmin || k == KindNotPostAuthor ||
		k == KindNotNoteAuthor || k == KindNotLinkAuthor ||
		k == KindPostNotPublished:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Message renders the human-readable error text for e, resolving raw ids
// through r. Pure except for the resolver lookups.
func (e *Error) Message(r NameResolver) string {
	switch e.Kind {
	case KindUserNotFound:
		return fmt.Sprintf("A user named '%s' does not exist!", e.Name)
	case KindEmptyGroupName:
		return "Group name must be non-empty!"
	case KindDuplicateGroupName:
		return fmt.Sprintf("A group named '%s' already exists!", e.Name)
	case KindGroupNotFound:
		name := e.Name
		if name == "" {
			name = r.GroupName(e.GroupID)
		}
		return fmt.Sprintf("A group named '%s' does not exist!", name)
	case KindNotGroupAdmin:
		return fmt.Sprintf("%s is not the admin of group '%s'!", r.Username(e.UserID), r.GroupName(e.GroupID))
	case KindDuplicateMember:
		return fmt.Sprintf("%s is already in %s!", e.Name, e.Field)
	case KindMemberNotFound:
		return fmt.Sprintf("A member named '%s' does not exist!", e.Name)
	case KindPostNotFound:
		return "A post with this ID does not exist!"
	case KindNotPostAuthor:
		return fmt.Sprintf("%s is not the author of post %d!", r.Username(e.UserID), e.PostID)
	case KindPostAlreadyPublished:
		return fmt.Sprintf("Post is already published to %s!", r.GroupName(e.GroupID))
	case KindPostNotPublished:
		return fmt.Sprintf("Post is not published to %s!", r.GroupName(e.GroupID))
	case KindFieldNotUpdatable:
		return fmt.Sprintf("Cannot update '%s' field!", e.Field)
	case KindNoteNotFound:
		return "A note with this ID does not exist!"
	case KindDuplicateNote:
		return "A note on this post already exists!"
	case KindNotNoteAuthor:
		return fmt.Sprintf("%s is not the author of note %d!", r.Username(e.UserID), e.EntityID)
	case KindLinkNotFound:
		return "A link with this ID does not exist!"
	case KindNotLinkAuthor:
		return fmt.Sprintf("%s is not the author of link %d!", r.Username(e.UserID), e.EntityID)
	case KindAlreadyFriends:
		return fmt.Sprintf("%s and %s are already friends!", r.Username(e.UserID), r.Username(e.OtherID))
	case KindFriendRequestExists:
		return fmt.Sprintf("Friend request between %s and %s already exists!", r.Username(e.UserID), r.Username(e.OtherID))
	case KindFriendRequestNotFound:
		return fmt.Sprintf("Friend request from %s to %s does not exist!", r.Username(e.UserID), r.Username(e.OtherID))
	case KindFriendNotFound:
		return fmt.Sprintf("%s and %s are not friends!", r.Username(e.UserID), r.Username(e.OtherID))
	}
	return "Something went wrong."
}
