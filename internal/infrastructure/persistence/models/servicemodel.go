package models

import (
	"github.com/shopspring/decimal"

	"github.com/garagehq/repairshop/internal/shared/constants"
)

// ServiceModel is a catalog service. (service_type, description) is unique.
type ServiceModel struct {
	ID          uint            `gorm:"primaryKey"`
	ServiceType string          `gorm:"size:100;not null;uniqueIndex:uk_service_type_description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"size:200;not null;default:'';uniqueIndex:uk_service_type_description"`
	CreatedAt   int64           `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64           `gorm:"autoUpdateTime:milli;not null"`
}

func (ServiceModel) TableName() string {
	return constants.TableServices
}
