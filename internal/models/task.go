package models

import "time"

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Assignee    string     `gorm:"type:varchar(100)" json:"assignee"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'to_do'" json:"status"`
	Priority    Priority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	// ProjectID is a nullable reference. Deleting a project leaves its
	// tasks in place with a dangling project_id (no cascade in the schema).
	ProjectID *uint64   `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
