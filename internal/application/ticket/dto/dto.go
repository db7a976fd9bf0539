package dto

import (
	"time"

	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/mapper"
	"github.com/garagehq/repairshop/internal/shared/services/markdown"
)

type TicketDTO struct {
	ID              uint                 `json:"id"`
	VIN             string               `json:"vin"`
	Status          string               `json:"status"`
	Cost            string               `json:"cost"`
	WorkSummary     string               `json:"work_summary"`
	WorkSummaryHTML string               `json:"work_summary_html,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	ClosedAt        *time.Time           `json:"closed_at"`
	Customer        CustomerSummaryDTO   `json:"customer"`
	Employees       []EmployeeSummaryDTO `json:"employees"`
	Services        []ServiceSummaryDTO  `json:"services"`
	Parts           []PartSummaryDTO     `json:"serialized_parts"`
}

type CustomerSummaryDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EmployeeSummaryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type ServiceSummaryDTO struct {
	ID          uint   `json:"id"`
	ServiceType string `json:"service_type"`
	BasePrice   string `json:"base_price"`
}

type PartSummaryDTO struct {
	ID           uint                `json:"id"`
	SerialNumber string              `json:"serial_number"`
	Status       string              `json:"status"`
	Inventory    InventorySummaryDTO `json:"inventory"`
}

type InventorySummaryDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// MechanicWorkloadDTO is one row of the busiest-mechanic ranking.
type MechanicWorkloadDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	TicketCount int64  `json:"ticket_count"`
}

func ToMechanicWorkloadDTOs(rows []ticket.MechanicWorkload) []MechanicWorkloadDTO {
	return nonNil(mapper.MapSlice(rows, func(w ticket.MechanicWorkload) MechanicWorkloadDTO {
		return MechanicWorkloadDTO{
			ID:          w.Mechanic.ID,
			Name:        w.Mechanic.Name,
			Role:        w.Mechanic.Role,
			TicketCount: w.TicketCount,
		}
	}))
}

type HistoryEntryDTO struct {
	ID        uint           `json:"id"`
	Action    string         `json:"action"`
	ActorID   uint           `json:"actor_id"`
	Changes   map[string]any `json:"changes"`
	CreatedAt time.Time      `json:"created_at"`
}

// Assembler projects tickets for the API. A nil markdown service leaves
// work_summary_html empty.
type Assembler struct {
	markdown markdown.MarkdownService
}

func NewAssembler(md markdown.MarkdownService) *Assembler {
	return &Assembler{markdown: md}
}

func (a *Assembler) ToTicketDTO(t *ticket.ServiceTicket) *TicketDTO {
	if t == nil {
		return nil
	}
	customer := t.Customer()

	return &TicketDTO{
		ID:              t.ID(),
		VIN:             t.VIN(),
		Status:          t.Status().String(),
		Cost:            t.Cost().StringFixed(2),
		WorkSummary:     t.WorkSummary(),
		WorkSummaryHTML: a.renderSummary(t.WorkSummary()),
		CreatedAt:       t.CreatedAt(),
		ClosedAt:        t.ClosedAt(),
		Customer: CustomerSummaryDTO{
			ID:    customer.ID,
			Name:  customer.Name,
			Email: customer.Email,
		},
		Employees: nonNil(mapper.MapSlice(t.Mechanics(), func(m ticket.MechanicRef) EmployeeSummaryDTO {
			return EmployeeSummaryDTO{ID: m.ID, Name: m.Name, Role: m.Role}
		})),
		Services: nonNil(mapper.MapSlice(t.Services(), func(s ticket.ServiceLine) ServiceSummaryDTO {
			return ServiceSummaryDTO{ID: s.ServiceID, ServiceType: s.ServiceType, BasePrice: s.BasePrice.StringFixed(2)}
		})),
		Parts: nonNil(mapper.MapSlice(t.Parts(), func(p ticket.PartLine) PartSummaryDTO {
			return PartSummaryDTO{
				ID:           p.PartID,
				SerialNumber: p.SerialNumber,
				Status:       p.Status.String(),
				Inventory: InventorySummaryDTO{
					ID:    p.InventoryID,
					Name:  p.InventoryName,
					Price: p.UnitPrice.StringFixed(2),
				},
			}
		})),
	}
}

func (a *Assembler) ToTicketDTOs(tickets []*ticket.ServiceTicket) []*TicketDTO {
	return nonNil(mapper.MapSlice(tickets, a.ToTicketDTO))
}

func ToHistoryDTOs(entries []*ticket.HistoryEntry) []HistoryEntryDTO {
	return nonNil(mapper.MapSlice(entries, func(e *ticket.HistoryEntry) HistoryEntryDTO {
		return HistoryEntryDTO{
			ID:        e.ID,
			Action:    e.Action,
			ActorID:   e.ActorID,
			Changes:   e.Changes,
			CreatedAt: e.CreatedAt,
		}
	}))
}

func (a *Assembler) renderSummary(summary string) string {
	if a == nil || a.markdown == nil || summary == "" {
		return ""
	}
	html, err := a.markdown.ToHTMLSanitized(summary)
	if err != nil {
		return ""
	}
	return html
}

// nonNil keeps empty collections as [] rather than null in JSON.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
