package claim

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a claim.
type Status string

// Claim lifecycle states.
const (
	StatusDraft       Status = "DRAFT"
	StatusSubmitted   Status = "SUBMITTED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusPaid        Status = "PAID"
	StatusClosed      Status = "CLOSED"
)

// IsValid reports whether s is a known claim status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview,
		StatusApproved, StatusRejected, StatusPaid, StatusClosed:
		return true
	}
	return false
}

// Claim is an insurance claim record (immutable value object).
type Claim struct {
	id           string
	userID       string
	policyID     string
	number       string
	status       Status
	description  string
	amount       float64
	incidentDate time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// New validates and creates a Claim. Both timestamps are set to now.
func New(
	id, userID, policyID, number string,
	status Status, description string, amount float64,
	incidentDate time.Time, now time.Time,
) (Claim, error) {
	if id == "" {
		return Claim{}, fmt.Errorf("claim ID is required")
	}
	if userID == "" {
		return Claim{}, fmt.Errorf("user ID is required")
	}
	if policyID == "" {
		return Claim{}, fmt.Errorf("policy ID is required")
	}
	if number == "" {
		return Claim{}, fmt.Errorf("claim number is required")
	}
	if !status.IsValid() {
		return Claim{}, fmt.Errorf("unknown claim status %q", status)
	}
	if amount < 0 {
		return Claim{}, fmt.Errorf("claim amount must not be negative")
	}

	return Claim{
		id:           id,
		userID:       userID,
		policyID:     policyID,
		number:       number,
		status:       status,
		description:  description,
		amount:       amount,
		incidentDate: incidentDate,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct creates a Claim without validation (storage hydration).
func Reconstruct(
	id, userID, policyID, number string,
	status Status, description string, amount float64,
	incidentDate, createdAt, updatedAt time.Time,
) Claim {
	return Claim{
		id: id, userID: userID, policyID: policyID, number: number,
		status: status, description: description, amount: amount,
		incidentDate: incidentDate, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the claim identifier.
func (c *Claim) ID() string { return c.id }

// UserID returns the owning user.
func (c *Claim) UserID() string { return c.userID }

// PolicyID returns the parent policy identifier.
func (c *Claim) PolicyID() string { return c.policyID }

// Number returns the claim number.
func (c *Claim) Number() string { return c.number }

// Status returns the lifecycle state.
func (c *Claim) Status() Status { return c.status }

// Description returns the free-form description.
func (c *Claim) Description() string { return c.description }

// Amount returns the claimed amount.
func (c *Claim) Amount() float64 { return c.amount }

// IncidentDate returns when the insured incident happened.
func (c *Claim) IncidentDate() time.Time { return c.incidentDate }

// CreatedAt returns the record creation time.
func (c *Claim) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the record last-update time.
func (c *Claim) UpdatedAt() time.Time { return c.updatedAt }

// Filter holds the optional faceted-filter constraints for claims.
// Absent fields impose no constraint; all present fields are AND-combined.
type Filter struct {
	Statuses      []Status
	PolicyID      string
	MinAmount     *float64 // inclusive
	MaxAmount     *float64 // inclusive
	IncidentAfter *time.Time
	IncidentUntil *time.Time
}
