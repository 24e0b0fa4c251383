package model

import "time"

// FavoriteModel mirrors the 'favoritos' table. The composite unique indexes
// enforce one favorite per user per item at the database level.
type FavoriteModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	UserID     int64  `gorm:"column:usuario_id;not null;uniqueIndex:idx_favoritos_usuario_propiedad;uniqueIndex:idx_favoritos_usuario_proyecto"`
	PropertyID *int64 `gorm:"column:propiedad_id;uniqueIndex:idx_favoritos_usuario_propiedad"`
	ProjectID  *int64 `gorm:"column:proyecto_id;uniqueIndex:idx_favoritos_usuario_proyecto"`
	CreatedAt  time.Time

	Property *PropertyModel `gorm:"foreignKey:PropertyID"`
	Project  *ProjectModel  `gorm:"foreignKey:ProjectID"`
}

// TableName explicitly sets the table name for GORM.
func (FavoriteModel) TableName() string {
	return "favoritos"
}
