package models

import (
	"github.com/shopspring/decimal"

	"github.com/garagehq/repairshop/internal/shared/constants"
)

type EmployeeModel struct {
	ID           uint            `gorm:"primaryKey"`
	Name         string          `gorm:"size:100;not null"`
	Email        string          `gorm:"size:255;uniqueIndex;not null"`
	Phone        string          `gorm:"size:20"`
	PasswordHash string          `gorm:"size:255;not null"`
	Salary       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Role         string          `gorm:"size:20;not null;default:mechanic"`
	CreatedAt    int64           `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64           `gorm:"autoUpdateTime:milli;not null"`
}

func (EmployeeModel) TableName() string {
	return constants.TableEmployees
}
