// Package catalog holds the billable repair services offered by the shop.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Service struct {
	id          uint
	serviceType string
	basePrice   decimal.Decimal
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NormalizeServiceType collapses whitespace and title-cases the type, so
// "oil  CHANGE" and "Oil Change" name the same service.
func NormalizeServiceType(s string) string {
	// Casers keep state between calls and must not be shared across goroutines.
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}

// Patch names the service fields an update may change. Nil fields are kept.
type Patch struct {
	ServiceType *string
	BasePrice   *decimal.Decimal
	Description *string
}

func NewService(serviceType string, basePrice decimal.Decimal, description string) (*Service, error) {
	serviceType, basePrice, description, err := normalizeOffer(serviceType, basePrice, description)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Service{
		serviceType: serviceType,
		basePrice:   basePrice,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructService(id uint, serviceType string, basePrice decimal.Decimal, description string, createdAt, updatedAt time.Time) (*Service, error) {
	if id == 0 {
		return nil, fmt.Errorf("service ID cannot be zero")
	}
	return &Service{
		id:          id,
		serviceType: serviceType,
		basePrice:   basePrice,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func normalizeOffer(serviceType string, basePrice decimal.Decimal, description string) (string, decimal.Decimal, string, error) {
	serviceType = NormalizeServiceType(serviceType)
	description = strings.TrimSpace(description)

	if serviceType == "" {
		return "", basePrice, "", fmt.Errorf("service type is required")
	}
	if len(serviceType) > 100 {
		return "", basePrice, "", fmt.Errorf("service type exceeds maximum length of 100 characters")
	}
	if basePrice.IsNegative() {
		return "", basePrice, "", fmt.Errorf("base price must not be negative")
	}
	if len(description) > 200 {
		return "", basePrice, "", fmt.Errorf("description exceeds maximum length of 200 characters")
	}
	return serviceType, basePrice.Round(2), description, nil
}

// Apply validates the patched offer as a whole and changes nothing when any
// field is invalid. A new base price affects only tickets priced afterwards.
func (s *Service) Apply(p Patch) error {
	serviceType, basePrice, description := s.serviceType, s.basePrice, s.description
	if p.ServiceType != nil {
		serviceType = *p.ServiceType
	}
	if p.BasePrice != nil {
		basePrice = *p.BasePrice
	}
	if p.Description != nil {
		description = *p.Description
	}

	serviceType, basePrice, description, err := normalizeOffer(serviceType, basePrice, description)
	if err != nil {
		return err
	}
	s.serviceType, s.basePrice, s.description = serviceType, basePrice, description
	s.updatedAt = time.Now()
	return nil
}

func (s *Service) ID() uint                   { return s.id }
func (s *Service) ServiceType() string        { return s.serviceType }
func (s *Service) BasePrice() decimal.Decimal { return s.basePrice }
func (s *Service) Description() string        { return s.description }
func (s *Service) CreatedAt() time.Time       { return s.createdAt }
func (s *Service) UpdatedAt() time.Time       { return s.updatedAt }

func (s *Service) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("service ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("service ID cannot be zero")
	}
	s.id = id
	return nil
}
