package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/garagehq/repairshop/internal/shared/constants"
)

type ServiceTicketModel struct {
	ID          uint            `gorm:"primaryKey"`
	VIN         string          `gorm:"column:vin;size:17;not null;index"`
	CustomerID  uint            `gorm:"not null;index"`
	WorkSummary string          `gorm:"type:text;not null"`
	Status      string          `gorm:"size:20;not null;index"`
	Cost        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	IsDeleted   bool            `gorm:"not null;default:false;index"`
	Version     int             `gorm:"not null;default:1"`
	CreatedAt   int64           `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt   int64           `gorm:"autoUpdateTime:milli;not null"`
	ClosedAt    *int64

	// No foreign key constraints or associations; links live in the
	// ticket_* tables and are managed by the repository.
}

func (ServiceTicketModel) TableName() string {
	return constants.TableServiceTickets
}

type TicketMechanicModel struct {
	TicketID   uint `gorm:"primaryKey;autoIncrement:false"`
	EmployeeID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (TicketMechanicModel) TableName() string {
	return constants.TableTicketMechanics
}

type TicketServiceModel struct {
	TicketID  uint `gorm:"primaryKey;autoIncrement:false"`
	ServiceID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (TicketServiceModel) TableName() string {
	return constants.TableTicketServices
}

// TicketPartModel links a part to at most one ticket: part_id is the key.
// Consumed records that the part was marked used and its stock decremented.
type TicketPartModel struct {
	PartID     uint  `gorm:"primaryKey;autoIncrement:false"`
	TicketID   uint  `gorm:"not null;index"`
	Consumed   bool  `gorm:"not null;default:false"`
	AttachedAt int64 `gorm:"autoCreateTime:milli;not null"`
}

func (TicketPartModel) TableName() string {
	return constants.TableTicketParts
}

type TicketHistoryModel struct {
	ID        uint           `gorm:"primaryKey"`
	TicketID  uint           `gorm:"not null;index"`
	Action    string         `gorm:"size:32;not null"`
	ActorID   uint           `gorm:"not null;default:0"`
	Changes   datatypes.JSON `gorm:"type:json"`
	CreatedAt int64          `gorm:"autoCreateTime:milli;not null;index"`
}

func (TicketHistoryModel) TableName() string {
	return constants.TableTicketHistory
}

// AllModels lists every table AutoMigrate manages.
func AllModels() []any {
	return []any{
		&CustomerModel{},
		&EmployeeModel{},
		&ServiceModel{},
		&InventoryModel{},
		&SerializedPartModel{},
		&ServiceTicketModel{},
		&TicketMechanicModel{},
		&TicketServiceModel{},
		&TicketPartModel{},
		&TicketHistoryModel{},
	}
}
