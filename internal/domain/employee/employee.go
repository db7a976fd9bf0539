package employee

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/garagehq/repairshop/internal/shared/authorization"
)

type Employee struct {
	id           uint
	name         string
	email        string
	phone        string
	passwordHash string
	salary       decimal.Decimal
	role         authorization.EmployeeRole
	createdAt    time.Time
	updatedAt    time.Time
}

// Patch names the employee fields an update may change. Role and password
// have their own flows and are deliberately absent.
type Patch struct {
	Name   *string
	Email  *string
	Phone  *string
	Salary *decimal.Decimal
}

func NewEmployee(name, email, phone, passwordHash string, salary decimal.Decimal, role authorization.EmployeeRole) (*Employee, error) {
	p, err := normalizeProfile(profile{name: name, email: email, phone: phone, salary: salary})
	if err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now()
	return &Employee{
		name:         p.name,
		email:        p.email,
		phone:        p.phone,
		passwordHash: passwordHash,
		salary:       p.salary,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructEmployee(
	id uint,
	name, email, phone, passwordHash string,
	salary decimal.Decimal,
	role authorization.EmployeeRole,
	createdAt, updatedAt time.Time,
) (*Employee, error) {
	if id == 0 {
		return nil, fmt.Errorf("employee ID cannot be zero")
	}
	return &Employee{
		id:           id,
		name:         name,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		salary:       salary,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

type profile struct {
	name, email, phone string
	salary             decimal.Decimal
}

func normalizeProfile(p profile) (profile, error) {
	p.name = strings.TrimSpace(p.name)
	p.email = strings.ToLower(strings.TrimSpace(p.email))
	p.phone = strings.TrimSpace(p.phone)

	if p.name == "" {
		return p, fmt.Errorf("employee name is required")
	}
	if len(p.name) > 100 {
		return p, fmt.Errorf("employee name exceeds maximum length of 100 characters")
	}
	if _, err := mail.ParseAddress(p.email); err != nil {
		return p, fmt.Errorf("invalid email address")
	}
	if len(p.phone) > 20 {
		return p, fmt.Errorf("phone exceeds maximum length of 20 characters")
	}
	if p.salary.IsNegative() {
		return p, fmt.Errorf("salary must not be negative")
	}
	p.salary = p.salary.Round(2)
	return p, nil
}

// Apply validates the patched profile as a whole and changes nothing when
// any field is invalid.
func (e *Employee) Apply(patch Patch) error {
	p := profile{name: e.name, email: e.email, phone: e.phone, salary: e.salary}
	if patch.Name != nil {
		p.name = *patch.Name
	}
	if patch.Email != nil {
		p.email = *patch.Email
	}
	if patch.Phone != nil {
		p.phone = *patch.Phone
	}
	if patch.Salary != nil {
		p.salary = *patch.Salary
	}

	p, err := normalizeProfile(p)
	if err != nil {
		return err
	}
	e.name, e.email, e.phone, e.salary = p.name, p.email, p.phone, p.salary
	e.updatedAt = time.Now()
	return nil
}

func (e *Employee) ID() uint                         { return e.id }
func (e *Employee) Name() string                     { return e.name }
func (e *Employee) Email() string                    { return e.email }
func (e *Employee) Phone() string                    { return e.phone }
func (e *Employee) PasswordHash() string             { return e.passwordHash }
func (e *Employee) Salary() decimal.Decimal          { return e.salary }
func (e *Employee) Role() authorization.EmployeeRole { return e.role }
func (e *Employee) CreatedAt() time.Time             { return e.createdAt }
func (e *Employee) UpdatedAt() time.Time             { return e.updatedAt }

func (e *Employee) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("employee ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("employee ID cannot be zero")
	}
	e.id = id
	return nil
}

// ValidatePasswordStrength requires at least 8 characters with a letter and a digit.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}
