// Package entity contains the core business objects of the project.
package entity

import "time"

// FavoriteItemType discriminates what kind of item a favorite points at.
type FavoriteItemType string

const (
	// FavoriteProperty marks a favorite of an individual listing.
	FavoriteProperty FavoriteItemType = "propiedad"
	// FavoriteProject marks a favorite of a development.
	FavoriteProject FavoriteItemType = "proyecto"
)

// IsValid checks if the FavoriteItemType is a known value.
func (t FavoriteItemType) IsValid() bool {
	switch t {
	case FavoriteProperty, FavoriteProject:
		return true
	default:
		return false
	}
}

// Favorite is a user's bookmark of a single property or project. Exactly one
// of PropertyID/ProjectID is set; the pair (user, item) is unique.
type Favorite struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"usuarioId"`
	PropertyID *int64    `json:"propiedadId,omitempty"`
	ProjectID  *int64    `json:"proyectoId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`

	Property *Property `json:"-"`
	Project  *Project  `json:"-"`
}

// ItemType derives the discriminant tag from whichever foreign key is
// populated.
func (f *Favorite) ItemType() FavoriteItemType {
	if f.PropertyID != nil {
		return FavoriteProperty
	}

	return FavoriteProject
}
