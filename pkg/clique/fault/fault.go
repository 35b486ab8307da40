// Package fault defines the domain error taxonomy. Each failure is a Kind
// plus the raw identifiers needed to render a message later; core services
// never look up names for error text. Rendering happens at the presentation
// boundary via a NameResolver.
package fault

import (
	"errors"
	"fmt"
)

// Kind enumerates every domain failure.
type Kind int

const (
	KindUnknown Kind = iota

	KindUserNotFound
	KindEmptyGroupName
	KindDuplicateGroupName
	KindGroupNotFound
	KindNotGroupAdmin
	KindDuplicateMember
	KindMemberNotFound

	KindPostNotFound
	KindNotPostAuthor
	KindPostAlreadyPublished
	KindPostNotPublished
	KindFieldNotUpdatable

	KindNoteNotFound
	KindDuplicateNote
	KindNotNoteAuthor
	KindLinkNotFound
	KindNotLinkAuthor

	KindAlreadyFriends
	KindFriendRequestExists
	KindFriendRequestNotFound
	KindFriendNotFound
)

// Error carries a Kind and the raw ids identifying the failure. Which
// fields are set depends on the kind; unused fields are zero.
type Error struct {
	Kind     Kind
	UserID   uint   // acting or first referenced user
	OtherID  uint   // second user for friend errors
	GroupID  uint
	PostID   uint
	EntityID uint   // note or link id
	Name     string // name payload when the operation is name-addressed
	Field    string // offending field for update rejections
}

func (e *Error) Error() string {
	return fmt.Sprintf("fault: kind=%d user=%d other=%d group=%d post=%d entity=%d name=%q field=%q",
		e.Kind, e.UserID, e.OtherID, e.GroupID, e.PostID, e.EntityID, e.Name, e.Field)
}

// As unwraps err into a *Error if it is one.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func UserNotFound(username string) *Error {
	return &Error{Kind: KindUserNotFound, Name: username}
}

func EmptyGroupName() *Error {
	return &Error{Kind: KindEmptyGroupName}
}

func DuplicateGroupName(name string) *Error {
	return &Error{Kind: KindDuplicateGroupName, Name: name}
}

func GroupNotFound(id uint) *Error {
	return &Error{Kind: KindGroupNotFound, GroupID: id}
}

func GroupNotFoundByName(name string) *Error {
	return &Error{Kind: KindGroupNotFound, Name: name}
}

func NotGroupAdmin(userID, groupID uint) *Error {
	return &Error{Kind: KindNotGroupAdmin, UserID: userID, GroupID: groupID}
}

func DuplicateMember(username, group string) *Error {
	return &Error{Kind: KindDuplicateMember, Name: username, Field: group}
}

func MemberNotFound(username string) *Error {
	return &Error{Kind: KindMemberNotFound, Name: username}
}

func PostNotFound(id uint) *Error {
	return &Error{Kind: KindPostNotFound, PostID: id}
}

func NotPostAuthor(userID, postID uint) *Error {
	return &Error{Kind: KindNotPostAuthor, UserID: userID, PostID: postID}
}

func PostAlreadyPublished(postID, groupID uint) *Error {
	return &Error{Kind: KindPostAlreadyPublished, PostID: postID, GroupID: groupID}
}

func PostNotPublished(postID, groupID uint) *Error {
	return &Error{Kind: KindPostNotPublished, PostID: postID, GroupID: groupID}
}

func FieldNotUpdatable(field string) *Error {
	return &Error{Kind: KindFieldNotUpdatable, Field: field}
}

func NoteNotFound(id uint) *Error {
	return &Error{Kind: KindNoteNotFound, EntityID: id}
}

func DuplicateNote(postID uint) *Error {
	return &Error{Kind: KindDuplicateNote, PostID: postID}
}

func NotNoteAuthor(userID, noteID uint) *Error {
	return &Error{Kind: KindNotNoteAuthor, UserID: userID, EntityID: noteID}
}

func LinkNotFound(id uint) *Error {
	return &Error{Kind: KindLinkNotFound, EntityID: id}
}

func NotLinkAuthor(userID, linkID uint) *Error {
	return &Error{Kind: KindNotLinkAuthor, UserID: userID, EntityID: linkID}
}

func AlreadyFriends(user, other uint) *Error {
	return &Error{Kind: KindAlreadyFriends, UserID: user, OtherID: other}
}

func FriendRequestExists(from, to uint) *Error {
	return &Error{Kind: KindFriendRequestExists, UserID: from, OtherID: to}
}

func FriendRequestNotFound(from, to uint) *Error {
	return &Error{Kind: KindFriendRequestNotFound, UserID: from, OtherID: to}
}

func FriendNotFound(user, other uint) *Error {
	return &Error{Kind: KindFriendNotFound, UserID: user, OtherID: other}
}
