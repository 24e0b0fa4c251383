// Package entity contains the core business objects of the project.
package entity

import "time"

// Project is a real-estate development grouping zero or more properties.
// The owning seller is fixed at creation time; deleting a project removes its
// child properties with it.
type Project struct {
	ID            int64   `json:"id"`
	Name          string  `json:"nombre"`
	Slug          string  `json:"slug"`
	Description   string  `json:"descripcion"`
	Location      string  `json:"ubicacion"`
	Status        string  `json:"estado"`
	FeaturedImage string  `json:"imagenDestacada"`
	VideoURL      *string `json:"videoUrl,omitempty"`
	SellerID      int64   `json:"usuarioVendedorId"`

	Images     []Image         `json:"imagenes,omitempty"`
	Properties []Property      `json:"propiedades,omitempty"`
	Seller     *ContactSummary `json:"usuarioVendedor,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the given user owns this project.
func (p *Project) OwnedBy(userID int64) bool {
	return p.SellerID == userID
}

// Summary projects the entity down to the subset embedded in property
// responses.
func (p *Project) Summary() *ProjectSummary {
	if p == nil {
		return nil
	}

	return &ProjectSummary{
		ID:     p.ID,
		Name:   p.Name,
		Slug:   p.Slug,
		Status: p.Status,
	}
}

// ProjectSummary is the compact representation of a project attached to the
// properties that belong to it.
type ProjectSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"nombre"`
	Slug   string `json:"slug"`
	Status string `json:"estado"`
}
