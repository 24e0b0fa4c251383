// Package entity contains the core business objects of the project.
package entity

import "time"

// Property is an individual listing. It is "independent" when ProjectID is
// nil, otherwise it is grouped under a project owned by the same seller.
// Optional attributes are pointers: nil means the seller never provided them.
type Property struct {
	ID                int64      `json:"id"`
	Name              string     `json:"nombre"`
	Slug              string     `json:"slug"`
	Type              string     `json:"tipo"`
	Price             float64    `json:"precio"`
	Bedrooms          *int64     `json:"habitaciones,omitempty"`
	Bathrooms         *int64     `json:"baños,omitempty"`
	Parking           *int64     `json:"parqueos,omitempty"`
	Area              *float64   `json:"metros2,omitempty"`
	Status            string     `json:"estado"`
	Description       string     `json:"descripcion"`
	Location          string     `json:"ubicacion"`
	Floor             *int64     `json:"nivel,omitempty"`
	Elevator          *bool      `json:"ascensor,omitempty"`
	Furnished         *bool      `json:"amueblado,omitempty"`
	Maintenance       *float64   `json:"mantenimiento,omitempty"`
	YearBuilt         *int64     `json:"anoConstruccion,omitempty"`
	LegalFeesIncluded *bool      `json:"gastosLegalesIncluidos,omitempty"`
	AvailableFrom     *time.Time `json:"disponibleDesde,omitempty"`
	VideoURL          *string    `json:"videoUrl,omitempty"`
	PropertyType      *string    `json:"tipoPropiedad,omitempty"`
	SellerID          int64      `json:"usuarioVendedorId"`
	ProjectID         *int64     `json:"proyectoId,omitempty"`

	Images  []Image          `json:"imagenes,omitempty"`
	Seller  *ContactSummary  `json:"usuarioVendedor,omitempty"`
	Project *ProjectSummary  `json:"proyecto,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the given user owns this property.
func (p *Property) OwnedBy(userID int64) bool {
	return p.SellerID == userID
}

// Independent reports whether the property is not grouped under any project.
func (p *Property) Independent() bool {
	return p.ProjectID == nil
}
