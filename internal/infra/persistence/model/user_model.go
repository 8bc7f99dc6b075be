// Package model holds the GORM table mappings for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
type UserModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email             string    `gorm:"type:varchar(255);unique;not null"`
	Name              string    `gorm:"type:varchar(100)"`
	Address           string    `gorm:"type:varchar(255)"`
	Phone             string    `gorm:"type:varchar(30)"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	Provider          string    `gorm:"type:varchar(50)"`
	ProviderID        string    `gorm:"type:varchar(255)"`
	EmailVerified     bool      `gorm:"not null;default:false"`
	ConfirmationToken string    `gorm:"type:varchar(255)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Roles []RoleModel `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// RoleModel mirrors the 'roles' table.
type RoleModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(50);unique;not null"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}
