package models

import (
	"time"
)

type ProjectType string

const (
	ProjectIndividual ProjectType = "individual"
	ProjectTeam       ProjectType = "team"
)

func (t ProjectType) Valid() bool {
	return t == ProjectIndividual || t == ProjectTeam
}

// DefaultThumbnail is stored when a project is created without an image.
const DefaultThumbnail = "default-project.png"

type Project struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Name        string      `gorm:"not null;size:200" json:"name"`
	Category    string      `gorm:"not null;size:100;index" json:"category"`
	Thumbnail   string      `gorm:"size:512;default:default-project.png" json:"thumbnail"`
	Description string      `gorm:"type:text;not null" json:"description"`
	LiveURL     string      `gorm:"size:512" json:"liveUrl"`
	GithubURL   string      `gorm:"size:512" json:"githubUrl"`
	Developers  StringList  `gorm:"type:text;not null" json:"developers"`
	ProjectType ProjectType `gorm:"size:20;not null;default:individual" json:"projectType"`
	TeamID      *uint       `gorm:"index" json:"teamId"`
	CreatedBy   uint        `gorm:"not null;index" json:"createdBy"`
	IsVisible   bool        `gorm:"not null;default:true;index" json:"isVisible"`
	Creator     *User       `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Team        *Team       `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL" json:"team,omitempty"`
}

func (p *Project) OwnerID() uint {
	return p.CreatedBy
}

func (p *Project) IsTeamProject() bool {
	return p.ProjectType == ProjectTeam
}
