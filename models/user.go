package models

import (
	"time"
)

type Role string

const (
	RoleTeamLeader Role = "TL"
	RoleMember     Role = "Member"
)

// DefaultProfilePhoto is shown until a user uploads their own photo.
const DefaultProfilePhoto = "https://img.freepik.com/premium-vector/man-character_665280-46970.jpg"

const DefaultPosition = "Team Member"

func (r Role) Valid() bool {
	return r == RoleTeamLeader || r == RoleMember
}

// Label is the human readable role name used in messages.
func (r Role) Label() string {
	if r == RoleTeamLeader {
		return "Team Leader"
	}
	return string(r)
}

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Name         string     `gorm:"not null;size:200" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string     `gorm:"column:password;not null" json:"-"`
	Role         Role       `gorm:"not null;size:20;default:Member" json:"role"`
	ProfilePhoto string     `gorm:"size:512" json:"profilePhoto"`
	Bio          string     `gorm:"type:text" json:"bio"`
	Skills       StringList `gorm:"type:text" json:"skills"`
	Position     string     `gorm:"size:200" json:"position"`
}

// Owned is implemented by records that remember which user created them.
type Owned interface {
	OwnerID() uint
}

func (u *User) IsTeamLeader() bool {
	return u != nil && u.Role == RoleTeamLeader
}

// CanModify reports whether u may update or delete the owned record: its
// creator may, and so may any team leader.
func (u *User) CanModify(o Owned) bool {
	if u == nil || o == nil {
		return false
	}
	if u.IsTeamLeader() {
		return true
	}
	return o.OwnerID() == u.ID
}

// Leads reports whether u is the leader of team t.
func (u *User) Leads(t *Team) bool {
	return u != nil && t != nil && t.CreatedBy == u.ID
}

// ApplyDefaults fills the profile fields a freshly registered user starts with.
func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleMember
	}
	if u.ProfilePhoto == "" {
		u.ProfilePhoto = DefaultProfilePhoto
	}
	if u.Position == "" {
		u.Position = DefaultPosition
	}
	if u.Skills == nil {
		u.Skills = StringList{}
	}
}
