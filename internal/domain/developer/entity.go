package developer

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleFrontend  Role = "Frontend"
	RoleBackend   Role = "Backend"
	RoleFullStack Role = "Full-Stack"
)

var Roles = []Role{RoleFrontend, RoleBackend, RoleFullStack}

// ParseRole matches exactly; role names are case-sensitive.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

const (
	MinExperience = 0
	MaxExperience = 50
)

type Developer struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Role        Role
	TechStack   []string
	Experience  int
	Description *string
	PhotoURL    *string
	JoiningDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d Developer) OwnedBy(userID uuid.UUID) bool {
	return d.UserID == userID
}
