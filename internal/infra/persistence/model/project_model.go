package model

import "time"

// ProjectModel mirrors the 'proyectos' table.
type ProjectModel struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	Name          string  `gorm:"column:nombre;type:varchar(200);not null"`
	Slug          string  `gorm:"type:varchar(200);uniqueIndex;not null"`
	Description   string  `gorm:"column:descripcion;type:text;not null"`
	Location      string  `gorm:"column:ubicacion;type:varchar(255);not null"`
	Status        string  `gorm:"column:estado;type:varchar(50);not null"`
	FeaturedImage string  `gorm:"column:imagen_destacada;type:text;not null"`
	VideoURL      *string `gorm:"column:video_url;type:text"`
	SellerID      int64   `gorm:"column:usuario_vendedor_id;not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Images     []ImageModel    `gorm:"foreignKey:ProjectID"`
	Properties []PropertyModel `gorm:"foreignKey:ProjectID"`
	Seller     *UserModel      `gorm:"foreignKey:SellerID"`
}

// TableName explicitly sets the table name for GORM.
func (ProjectModel) TableName() string {
	return "proyectos"
}
