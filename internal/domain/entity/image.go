// Package entity contains the core business objects of the project.
package entity

import "time"

// Image is a reference to an externally hosted media file. Each image belongs
// to exactly one parent, either a property or a project, and lives and dies
// with it.
type Image struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	PropertyID *int64    `json:"propiedadId,omitempty"`
	ProjectID  *int64    `json:"proyectoId,omitempty"`
	CreatedAt  time.Time `json:"-"`
}
