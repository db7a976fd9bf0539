package models

import "github.com/garagehq/repairshop/internal/shared/constants"

type CustomerModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	Phone        string `gorm:"size:20"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (CustomerModel) TableName() string {
	return constants.TableCustomers
}
