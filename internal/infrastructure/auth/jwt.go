package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/garagehq/repairshop/internal/shared/authorization"
)

// ErrTokenExpired lets the auth middleware tell an expired token apart from
// a forged or malformed one.
var ErrTokenExpired = errors.New("token expired")

// Claims identify either an employee or a customer principal, never both.
// Customer tokens carry no role.
type Claims struct {
	EmployeeID uint                       `json:"employee_id,omitempty"`
	CustomerID uint                       `json:"customer_id,omitempty"`
	Role       authorization.EmployeeRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) IsEmployee() bool { return c.EmployeeID != 0 && c.CustomerID == 0 }
func (c *Claims) IsCustomer() bool { return c.CustomerID != 0 && c.EmployeeID == 0 }

// JWTService issues and verifies HS256 access tokens.
type JWTService struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

func NewJWTService(secret, issuer string, accessTTL time.Duration) *JWTService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &JWTService{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Issue signs an employee access token and returns it with its lifetime in
// seconds.
func (s *JWTService) Issue(employeeID uint, role authorization.EmployeeRole) (string, int64, error) {
	return s.sign(&Claims{
		EmployeeID:       employeeID,
		Role:             role,
		RegisteredClaims: s.registered(fmt.Sprintf("employee:%d", employeeID)),
	})
}

// IssueCustomer signs a customer access token.
func (s *JWTService) IssueCustomer(customerID uint) (string, int64, error) {
	return s.sign(&Claims{
		CustomerID:       customerID,
		RegisteredClaims: s.registered(fmt.Sprintf("customer:%d", customerID)),
	})
}

func (s *JWTService) registered(subject string) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}

func (s *JWTService) sign(claims *Claims) (string, int64, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, int64(s.accessTTL / time.Second), nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || (!claims.IsEmployee() && !claims.IsCustomer()) {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
