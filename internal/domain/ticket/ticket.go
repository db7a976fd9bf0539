package ticket

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/garagehq/repairshop/internal/domain/inventory"
	vo "github.com/garagehq/repairshop/internal/domain/ticket/valueobjects"
)

const (
	maxVINLength         = 17
	maxWorkSummaryLength = 5000
)

// ServiceTicket is the unit of repair work for one vehicle. It owns its
// mechanic, service and part links; the application layer persists the
// ticket and its links together.
type ServiceTicket struct {
	id          uint
	vin         string
	customer    CustomerRef
	workSummary string
	status      vo.TicketStatus
	cost        decimal.Decimal
	isDeleted   bool
	version     int
	createdAt   time.Time
	updatedAt   time.Time
	closedAt    *time.Time

	mechanics []MechanicRef
	services  []ServiceLine
	parts     []PartLine
}

func NewServiceTicket(customer CustomerRef, vin, workSummary string, status vo.TicketStatus) (*ServiceTicket, error) {
	if customer.ID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	vin, err := normalizeVIN(vin)
	if err != nil {
		return nil, err
	}
	if err := validateWorkSummary(workSummary); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid ticket status: %s", status)
	}

	now := stampNow()
	t := &ServiceTicket{
		vin:         vin,
		customer:    customer,
		workSummary: workSummary,
		status:      status,
		cost:        decimal.Zero,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}
	if status.IsClosed() {
		t.closedAt = &now
	}
	return t, nil
}

func ReconstructServiceTicket(
	id uint,
	vin string,
	customer CustomerRef,
	workSummary string,
	status vo.TicketStatus,
	cost decimal.Decimal,
	isDeleted bool,
	version int,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*ServiceTicket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid ticket status: %s", status)
	}

	return &ServiceTicket{
		id:          id,
		vin:         vin,
		customer:    customer,
		workSummary: workSummary,
		status:      status,
		cost:        cost,
		isDeleted:   isDeleted,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		closedAt:    closedAt,
	}, nil
}

// RestoreLinks replaces the association sets with persisted rows.
func (t *ServiceTicket) RestoreLinks(mechanics []MechanicRef, services []ServiceLine, parts []PartLine) {
	t.mechanics = append([]MechanicRef(nil), mechanics...)
	t.services = append([]ServiceLine(nil), services...)
	t.parts = append([]PartLine(nil), parts...)
}

func normalizeVIN(vin string) (string, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if vin == "" {
		return "", fmt.Errorf("vin is required")
	}
	if len(vin) > maxVINLength {
		return "", fmt.Errorf("vin exceeds maximum length of %d characters", maxVINLength)
	}
	return vin, nil
}

func validateWorkSummary(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("work summary is required")
	}
	if len(s) > maxWorkSummaryLength {
		return fmt.Errorf("work summary exceeds maximum length of %d characters", maxWorkSummaryLength)
	}
	return nil
}

func (t *ServiceTicket) ID() uint                { return t.id }
func (t *ServiceTicket) VIN() string             { return t.vin }
func (t *ServiceTicket) Customer() CustomerRef   { return t.customer }
func (t *ServiceTicket) CustomerID() uint        { return t.customer.ID }
func (t *ServiceTicket) WorkSummary() string     { return t.workSummary }
func (t *ServiceTicket) Status() vo.TicketStatus { return t.status }
func (t *ServiceTicket) Cost() decimal.Decimal   { return t.cost }
func (t *ServiceTicket) IsDeleted() bool         { return t.isDeleted }
func (t *ServiceTicket) Version() int            { return t.version }
func (t *ServiceTicket) CreatedAt() time.Time    { return t.createdAt }
func (t *ServiceTicket) UpdatedAt() time.Time    { return t.updatedAt }
func (t *ServiceTicket) ClosedAt() *time.Time    { return t.closedAt }
func (t *ServiceTicket) IsClosed() bool          { return t.status.IsClosed() }

func (t *ServiceTicket) Mechanics() []MechanicRef {
	return append([]MechanicRef(nil), t.mechanics...)
}

func (t *ServiceTicket) Services() []ServiceLine {
	return append([]ServiceLine(nil), t.services...)
}

func (t *ServiceTicket) Parts() []PartLine {
	return append([]PartLine(nil), t.parts...)
}

func (t *ServiceTicket) MechanicIDs() []uint {
	ids := make([]uint, 0, len(t.mechanics))
	for _, m := range t.mechanics {
		ids = append(ids, m.ID)
	}
	return ids
}

func (t *ServiceTicket) ServiceIDs() []uint {
	ids := make([]uint, 0, len(t.services))
	for _, s := range t.services {
		ids = append(ids, s.ServiceID)
	}
	return ids
}

func (t *ServiceTicket) PartIDs() []uint {
	ids := make([]uint, 0, len(t.parts))
	for _, p := range t.parts {
		ids = append(ids, p.PartID)
	}
	return ids
}

func (t *ServiceTicket) HasPart(partID uint) bool {
	return t.partIndex(partID) >= 0
}

func (t *ServiceTicket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// SetVersion records the version the repository persisted.
func (t *ServiceTicket) SetVersion(version int) {
	t.version = version
}

// stampNow matches the millisecond precision timestamps are stored with, so
// a freshly stamped ticket reads back unchanged.
func stampNow() time.Time {
	return time.Now().Truncate(time.Millisecond)
}

func (t *ServiceTicket) touch() {
	t.updatedAt = stampNow()
}

// ChangeStatus moves the ticket to status. Every transition is permitted.
// closed_at is stamped the first time the ticket closes and never cleared.
func (t *ServiceTicket) ChangeStatus(status vo.TicketStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid ticket status: %s", status)
	}
	if t.status == status {
		return nil
	}

	t.status = status
	t.touch()
	if status.IsClosed() && t.closedAt == nil {
		now := t.updatedAt
		t.closedAt = &now
	}
	return nil
}

func (t *ServiceTicket) UpdateWorkSummary(summary string) error {
	if err := validateWorkSummary(summary); err != nil {
		return err
	}
	t.workSummary = summary
	t.touch()
	return nil
}

// AddMechanics is a set union; already assigned mechanics are ignored.
func (t *ServiceTicket) AddMechanics(refs ...MechanicRef) int {
	added := 0
	for _, ref := range refs {
		if t.mechanicIndex(ref.ID) >= 0 {
			continue
		}
		t.mechanics = append(t.mechanics, ref)
		added++
	}
	if added > 0 {
		sort.Slice(t.mechanics, func(i, j int) bool { return t.mechanics[i].ID < t.mechanics[j].ID })
		t.touch()
	}
	return added
}

// RemoveMechanics is a set difference; ids that are not assigned are ignored.
func (t *ServiceTicket) RemoveMechanics(ids ...uint) int {
	removed := 0
	for _, id := range ids {
		if i := t.mechanicIndex(id); i >= 0 {
			t.mechanics = append(t.mechanics[:i], t.mechanics[i+1:]...)
			removed++
		}
	}
	if removed > 0 {
		t.touch()
	}
	return removed
}

func (t *ServiceTicket) AddServices(lines ...ServiceLine) int {
	added := 0
	for _, line := range lines {
		if t.serviceIndex(line.ServiceID) >= 0 {
			continue
		}
		t.services = append(t.services, line)
		added++
	}
	if added > 0 {
		sort.Slice(t.services, func(i, j int) bool { return t.services[i].ServiceID < t.services[j].ServiceID })
		t.touch()
	}
	return added
}

func (t *ServiceTicket) RemoveServices(ids ...uint) int {
	removed := 0
	for _, id := range ids {
		if i := t.serviceIndex(id); i >= 0 {
			t.services = append(t.services[:i], t.services[i+1:]...)
			removed++
		}
	}
	if removed > 0 {
		t.touch()
	}
	return removed
}

// AttachParts links parts as a unit: if any line is not available or is
// already on this ticket nothing is attached.
func (t *ServiceTicket) AttachParts(lines ...PartLine) error {
	var rejected []string
	seen := make(map[uint]bool, len(lines))
	for _, line := range lines {
		if !line.Status.IsAvailable() || t.HasPart(line.PartID) || seen[line.PartID] {
			rejected = append(rejected, fmt.Sprintf("%d", line.PartID))
		}
		seen[line.PartID] = true
	}
	if len(rejected) > 0 {
		return fmt.Errorf("%w: %s", ErrPartNotAttachable, strings.Join(rejected, ", "))
	}

	for _, line := range lines {
		line.Consumed = false
		t.parts = append(t.parts, line)
	}
	if len(lines) > 0 {
		sort.Slice(t.parts, func(i, j int) bool { return t.parts[i].PartID < t.parts[j].PartID })
		t.touch()
	}
	return nil
}

// DetachParts unlinks parts and returns the removed lines. Part status is
// left alone: an unconsumed part is still available, a consumed one stays used.
func (t *ServiceTicket) DetachParts(ids ...uint) []PartLine {
	var removed []PartLine
	for _, id := range ids {
		if i := t.partIndex(id); i >= 0 {
			removed = append(removed, t.parts[i])
			t.parts = append(t.parts[:i], t.parts[i+1:]...)
		}
	}
	if len(removed) > 0 {
		t.touch()
	}
	return removed
}

// PendingConsumption lists linked parts that have not yet been marked used.
func (t *ServiceTicket) PendingConsumption() []PartLine {
	var pending []PartLine
	for _, p := range t.parts {
		if !p.Consumed {
			pending = append(pending, p)
		}
	}
	return pending
}

// MarkPartConsumed records that the part was flipped to used and its stock decremented.
func (t *ServiceTicket) MarkPartConsumed(partID uint) error {
	i := t.partIndex(partID)
	if i < 0 {
		return fmt.Errorf("part %d is not linked to ticket %d", partID, t.id)
	}
	t.parts[i].Consumed = true
	t.parts[i].Status = inventory.PartStatusUsed
	return nil
}

// ServicePrices returns the base price of every attached service.
func (t *ServiceTicket) ServicePrices() []decimal.Decimal {
	prices := make([]decimal.Decimal, 0, len(t.services))
	for _, s := range t.services {
		prices = append(prices, s.BasePrice)
	}
	return prices
}

// PartPrices returns the owning inventory price of every attached part.
func (t *ServiceTicket) PartPrices() []decimal.Decimal {
	prices := make([]decimal.Decimal, 0, len(t.parts))
	for _, p := range t.parts {
		prices = append(prices, p.UnitPrice)
	}
	return prices
}

// ApplyCost stores the computed total. Cost is only authoritative while
// closed, so an open ticket refuses it.
func (t *ServiceTicket) ApplyCost(cost decimal.Decimal) error {
	if !t.status.IsClosed() {
		return ErrTicketNotClosed
	}
	if cost.IsNegative() {
		return fmt.Errorf("cost must not be negative")
	}
	t.cost = cost
	t.touch()
	return nil
}

// SoftDelete hides the ticket and detaches the parts it never consumed, so
// they can be attached elsewhere. Consumed links stay for the record. The
// detached lines are returned.
func (t *ServiceTicket) SoftDelete() ([]PartLine, error) {
	if t.isDeleted {
		return nil, ErrTicketNotFound
	}
	var released []PartLine
	kept := make([]PartLine, 0, len(t.parts))
	for _, p := range t.parts {
		if p.Consumed {
			kept = append(kept, p)
		} else {
			released = append(released, p)
		}
	}
	t.parts = kept
	t.isDeleted = true
	t.touch()
	return released, nil
}

func (t *ServiceTicket) mechanicIndex(id uint) int {
	for i, m := range t.mechanics {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (t *ServiceTicket) serviceIndex(id uint) int {
	for i, s := range t.services {
		if s.ServiceID == id {
			return i
		}
	}
	return -1
}

func (t *ServiceTicket) partIndex(id uint) int {
	for i, p := range t.parts {
		if p.PartID == id {
			return i
		}
	}
	return -1
}
