package models

import "time"

// Project roles. Admin satisfies every check that participant satisfies; the
// reverse does not hold.
const (
	RoleAdmin       = "admin"
	RoleParticipant = "participant"
)

// ProjectMember records a user's role on a project. At most one row may exist
// per (project, user) pair.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
