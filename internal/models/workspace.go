// internal/models/workspace.go
package models

import "time"

type Project struct {
	ID          string     `db:"id" json:"id" yaml:"id"`
	Name        string     `db:"name" json:"name" yaml:"name"`
	Status      string     `db:"status" json:"status" yaml:"status"`
	Progress    float64    `db:"progress" json:"progress" yaml:"progress"`
	StartDate   *time.Time `db:"start_date" json:"startDate,omitempty" yaml:"start_date,omitempty"`
	EndDate     *time.Time `db:"end_date" json:"endDate,omitempty" yaml:"end_date,omitempty"`
	WorkspaceID string     `db:"workspace_id" json:"workspaceId" yaml:"workspace_id"`
	DeletedAt   *time.Time `db:"deleted_at" json:"-" yaml:"deleted_at,omitempty"`
}

type Task struct {
	ID        string     `db:"id" json:"id" yaml:"id"`
	Name      string     `db:"name" json:"name" yaml:"name"`
	Status    string     `db:"status" json:"status" yaml:"status"`
	Priority  string     `db:"priority" json:"priority" yaml:"priority"`
	Progress  float64    `db:"progress" json:"progress" yaml:"progress"`
	EndDate   *time.Time `db:"end_date" json:"endDate,omitempty" yaml:"end_date,omitempty"`
	ProjectID string     `db:"project_id" json:"projectId" yaml:"project_id"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt" yaml:"updated_at"`
}

type Resource struct {
	ID           string  `db:"id" json:"id" yaml:"id"`
	Name         string  `db:"name" json:"name" yaml:"name"`
	Role         string  `db:"role" json:"role" yaml:"role"`
	Availability float64 `db:"availability" json:"availability" yaml:"availability"`
	WorkspaceID  string  `db:"workspace_id" json:"workspaceId" yaml:"workspace_id"`
}
