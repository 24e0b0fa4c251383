// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the root account entity. Sellers (VENDEDOR) own projects and
// properties; buyers (COMPRADOR) keep favorites. A user registered through
// Google Sign-In only has no password hash.
type User struct {
	ID              int64     `json:"id"`
	Name            string    `json:"nombre"`
	Email           string    `json:"email"`
	PasswordHash    *string   `json:"-"` // nil for federated-identity-only accounts
	Role            Role      `json:"rol"`
	Phone           *string   `json:"telefono,omitempty"`
	Whatsapp        *string   `json:"whatsapp,omitempty"`
	GoogleID        *string   `json:"-"`
	ProfileImageURL *string   `json:"imagenPerfilUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// IsSeller reports whether the user may own projects and properties.
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

// ContactSummary is the public subset of a seller's account embedded in
// listing responses so buyers can reach out.
type ContactSummary struct {
	ID              int64   `json:"id"`
	Name            string  `json:"nombre"`
	Email           string  `json:"email"`
	Phone           *string `json:"telefono,omitempty"`
	Whatsapp        *string `json:"whatsapp,omitempty"`
	ProfileImageURL *string `json:"imagenPerfilUrl,omitempty"`
}

// Contact projects the user down to its public contact summary.
func (u *User) Contact() *ContactSummary {
	if u == nil {
		return nil
	}

	return &ContactSummary{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		Whatsapp:        u.Whatsapp,
		ProfileImageURL: u.ProfileImageURL,
	}
}
