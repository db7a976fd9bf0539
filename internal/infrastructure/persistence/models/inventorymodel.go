package models

import (
	"github.com/shopspring/decimal"

	"github.com/garagehq/repairshop/internal/shared/constants"
)

type InventoryModel struct {
	ID              uint            `gorm:"primaryKey"`
	Name            string          `gorm:"size:100;not null"`
	InventoryNumber string          `gorm:"size:50;uniqueIndex;not null"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description     string          `gorm:"type:text"`
	QuantityInStock int             `gorm:"not null;default:0"`
	IsDeleted       bool            `gorm:"not null;default:false;index"`
	CreatedAt       int64           `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt       int64           `gorm:"autoUpdateTime:milli;not null"`
}

func (InventoryModel) TableName() string {
	return constants.TableInventories
}

type SerializedPartModel struct {
	ID           uint   `gorm:"primaryKey"`
	SerialNumber string `gorm:"size:50;uniqueIndex;not null"`
	Status       string `gorm:"size:20;not null;default:available;index"`
	InventoryID  uint   `gorm:"not null;index"`
	IsDeleted    bool   `gorm:"not null;default:false;index"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (SerializedPartModel) TableName() string {
	return constants.TableSerializedParts
}

// SerializedPartRow is a part joined with its inventory and ticket link.
type SerializedPartRow struct {
	SerializedPartModel
	InventoryName  string
	InventoryPrice decimal.Decimal
	TicketID       *uint
}
