// Package render is the presentation boundary: it resolves raw ids to
// usernames and group names for responses and error messages. Core services
// never perform lookups purely for display.
package render

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/cliqueapp/clique/pkg/clique/fault"
)

// UserNamer batch-resolves user ids to usernames.
type UserNamer interface {
	IDsToUsernames(ids []uint) ([]string, error)
}

// GroupNamer batch-resolves group ids to group names.
type GroupNamer interface {
	IDsToGroupNames(ids []uint) ([]string, error)
}

// Resolver implements fault.NameResolver on top of the user directory and
// Membership.
type Resolver struct {
	users  UserNamer
	groups GroupNamer
}

// NewResolver creates a Resolver
func NewResolver(users UserNamer, groups GroupNamer) *Resolver {
	return &Resolver{users: users, groups: groups}
}

// Username resolves one user id. Missing users resolve to the sentinel the
// directory uses for dangling ids.
func (r *Resolver) Username(id uint) string {
	names, err := r.users.IDsToUsernames([]uint{id})
	if err != nil || len(names) != 1 {
		return "DELETED_USER"
	}
	return names[0]
}

// GroupName resolves one group id
func (r *Resolver) GroupName(id uint) string {
	names, err := r.groups.IDsToGroupNames([]uint{id})
	if err != nil || len(names) != 1 {
		return "DELETED_GROUP"
	}
	return names[0]
}

// Usernames resolves a batch of user ids, order and length preserving
func (r *Resolver) Usernames(ids []uint) []string {
	names, err := r.users.IDsToUsernames(ids)
	if err != nil {
		names = make([]string, len(ids))
		for i := range names {
			names[i] = "DELETED_USER"
		}
	}
	return names
}

// GroupNames resolves a batch of group ids, order and length preserving
func (r *Resolver) GroupNames(ids []uint) []string {
	names, err := r.groups.IDsToGroupNames(ids)
	if err != nil {
		names = make([]string, len(ids))
		for i := range names {
			names[i] = "DELETED_GROUP"
		}
	}
	return names
}

// Error writes a domain failure as a JSON error response. Faults get their
// status from the kind and their message from boundary name resolution;
// anything else is a 500.
func Error(c *gin.Context, r *Resolver, err error) {
	if fe, ok := fault.As(err); ok {
		c.JSON(fault.HTTPStatus(fe.Kind), gin.H{"error": fe.Message(r)})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong."})
}
