package model

import "time"

// PropertyModel mirrors the 'propiedades' table.
type PropertyModel struct {
	ID                int64      `gorm:"primaryKey;autoIncrement"`
	Name              string     `gorm:"column:nombre;type:varchar(200);not null"`
	Slug              string     `gorm:"type:varchar(200);uniqueIndex;not null"`
	Type              string     `gorm:"column:tipo;type:varchar(50);not null"`
	Price             float64    `gorm:"column:precio;not null"`
	Bedrooms          *int64     `gorm:"column:habitaciones"`
	Bathrooms         *int64     `gorm:"column:banos"`
	Parking           *int64     `gorm:"column:parqueos"`
	Area              *float64   `gorm:"column:metros2"`
	Status            string     `gorm:"column:estado;type:varchar(50);not null"`
	Description       string     `gorm:"column:descripcion;type:text;not null"`
	Location          string     `gorm:"column:ubicacion;type:varchar(255);not null"`
	Floor             *int64     `gorm:"column:nivel"`
	Elevator          *bool      `gorm:"column:ascensor"`
	Furnished         *bool      `gorm:"column:amueblado"`
	Maintenance       *float64   `gorm:"column:mantenimiento"`
	YearBuilt         *int64     `gorm:"column:ano_construccion"`
	LegalFeesIncluded *bool      `gorm:"column:gastos_legales_incluidos"`
	AvailableFrom     *time.Time `gorm:"column:disponible_desde"`
	VideoURL          *string    `gorm:"column:video_url;type:text"`
	PropertyType      *string    `gorm:"column:tipo_propiedad;type:varchar(50)"`
	SellerID          int64      `gorm:"column:usuario_vendedor_id;not null;index"`
	ProjectID         *int64     `gorm:"column:proyecto_id;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Images  []ImageModel  `gorm:"foreignKey:PropertyID"`
	Seller  *UserModel    `gorm:"foreignKey:SellerID"`
	Project *ProjectModel `gorm:"foreignKey:ProjectID"`
}

// TableName explicitly sets the table name for GORM.
func (PropertyModel) TableName() string {
	return "propiedades"
}
