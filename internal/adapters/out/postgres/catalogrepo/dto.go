package catalogrepo

import (
	"time"

	"github.com/google/uuid"
)

// ClientDTO and CatalogItemDTO map reference data owned by the back office.
// The ordering service only reads them.
type ClientDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	MobileNumber string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Address      string    `gorm:"type:text;not null"`
	CreatedAt    time.Time
}

func (ClientDTO) TableName() string {
	return "clients"
}

type CatalogItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemName    string    `gorm:"type:varchar(255);not null"`
	Description *string
	Unit        string `gorm:"type:varchar(32);not null"`
	IsActive    bool   `gorm:"not null;default:true"`
}

func (CatalogItemDTO) TableName() string {
	return "catalog_items"
}
