package models

import (
	"time"
)

type Team struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Name        string       `gorm:"not null;size:100" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	CreatedBy   uint         `gorm:"not null;index" json:"createdBy"`
	Leader      *User        `gorm:"foreignKey:CreatedBy" json:"teamLeader,omitempty"`
	Memberships []TeamMember `gorm:"foreignKey:TeamID" json:"memberships,omitempty"`
}

func (t *Team) OwnerID() uint {
	return t.CreatedBy
}

// DefaultMemberRole is the label given to a membership when none is supplied.
const DefaultMemberRole = "Member"

// TeamMember links one user to one team. The (team, user) pair is unique.
type TeamMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	TeamID    uint      `gorm:"not null;uniqueIndex:idx_team_user" json:"teamId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_team_user" json:"userId"`
	Role      string    `gorm:"size:100;default:Member" json:"role"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Team      *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
