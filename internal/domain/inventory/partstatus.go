package inventory

import "fmt"

// PartStatus is the physical state of a serialized part.
type PartStatus string

const (
	PartStatusAvailable PartStatus = "available"
	PartStatusUsed      PartStatus = "used"
	PartStatusDefective PartStatus = "defective"
)

func (s PartStatus) String() string {
	return string(s)
}

func (s PartStatus) IsValid() bool {
	switch s {
	case PartStatusAvailable, PartStatusUsed, PartStatusDefective:
		return true
	}
	return false
}

func (s PartStatus) IsAvailable() bool {
	return s == PartStatusAvailable
}

func NewPartStatus(s string) (PartStatus, error) {
	ps := PartStatus(s)
	if !ps.IsValid() {
		return "", fmt.Errorf("invalid part status: %q (allowed: available, used, defective)", s)
	}
	return ps, nil
}
