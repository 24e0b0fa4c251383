// Package model holds the GORM persistence models mirroring the database
// tables. Domain entities never carry GORM tags; mapping happens in the
// postgres repositories.
package model

import "time"

// UserModel mirrors the 'usuarios' table.
type UserModel struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	Name            string  `gorm:"column:nombre;type:varchar(100);not null"`
	Email           string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash    *string `gorm:"column:password_hash;type:varchar(255)"`
	Role            string  `gorm:"column:rol;type:varchar(20);not null"`
	Phone           *string `gorm:"column:telefono;type:varchar(30)"`
	Whatsapp        *string `gorm:"type:varchar(30)"`
	GoogleID        *string `gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	ProfileImageURL *string `gorm:"column:imagen_perfil_url;type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Properties []PropertyModel `gorm:"foreignKey:SellerID"`
	Projects   []ProjectModel  `gorm:"foreignKey:SellerID"`
	Favorites  []FavoriteModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "usuarios"
}
