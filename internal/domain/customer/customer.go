package customer

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

type Customer struct {
	id           uint
	name         string
	email        string
	phone        string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// Patch names the customer fields an update may change. Nil fields are kept.
type Patch struct {
	Name  *string
	Email *string
	Phone *string
}

// NewCustomer lowercases the email so uniqueness is case-insensitive.
func NewCustomer(name, email, phone, passwordHash string) (*Customer, error) {
	name, email, phone, err := normalizeContact(name, email, phone)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Customer{
		name:         name,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructCustomer(id uint, name, email, phone, passwordHash string, createdAt, updatedAt time.Time) (*Customer, error) {
	if id == 0 {
		return nil, fmt.Errorf("customer ID cannot be zero")
	}
	return &Customer{
		id:           id,
		name:         name,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func normalizeContact(name, email, phone string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return "", "", "", fmt.Errorf("customer name is required")
	}
	if len(name) > 50 {
		return "", "", "", fmt.Errorf("customer name exceeds maximum length of 50 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil || len(email) > 100 {
		return "", "", "", fmt.Errorf("invalid email address")
	}
	if len(phone) > 20 {
		return "", "", "", fmt.Errorf("phone exceeds maximum length of 20 characters")
	}
	return name, email, phone, nil
}

// Apply validates the patched contact details as a whole and changes
// nothing when any of them is invalid.
func (c *Customer) Apply(p Patch) error {
	name, email, phone := c.name, c.email, c.phone
	if p.Name != nil {
		name = *p.Name
	}
	if p.Email != nil {
		email = *p.Email
	}
	if p.Phone != nil {
		phone = *p.Phone
	}

	name, email, phone, err := normalizeContact(name, email, phone)
	if err != nil {
		return err
	}
	c.name, c.email, c.phone = name, email, phone
	c.updatedAt = time.Now()
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (c *Customer) ID() uint             { return c.id }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Email() string        { return c.email }
func (c *Customer) Phone() string        { return c.phone }
func (c *Customer) PasswordHash() string { return c.passwordHash }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time { return c.updatedAt }

func (c *Customer) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("customer ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("customer ID cannot be zero")
	}
	c.id = id
	return nil
}
