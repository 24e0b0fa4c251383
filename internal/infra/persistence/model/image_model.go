package model

import "time"

// ImageModel mirrors the 'imagenes' table. Exactly one of PropertyID and
// ProjectID is set.
type ImageModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	URL        string `gorm:"column:url;type:text;not null"`
	PropertyID *int64 `gorm:"column:propiedad_id;index"`
	ProjectID  *int64 `gorm:"column:proyecto_id;index"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ImageModel) TableName() string {
	return "imagenes"
}
