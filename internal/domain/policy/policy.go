package policy

import (
	"fmt"
	"time"
)

// InsuranceType classifies a policy.
type InsuranceType string

// Supported insurance types.
const (
	TypeAuto   InsuranceType = "AUTO"
	TypeHome   InsuranceType = "HOME"
	TypeLife   InsuranceType = "LIFE"
	TypeHealth InsuranceType = "HEALTH"
	TypeTravel InsuranceType = "TRAVEL"
)

// IsValid reports whether t is a known insurance type.
func (t InsuranceType) IsValid() bool {
	switch t {
	case TypeAuto, TypeHome, TypeLife, TypeHealth, TypeTravel:
		return true
	}
	return false
}

// Policy is an insurance policy record (immutable value object).
type Policy struct {
	id             string
	userID         string
	number         string
	provider       string
	insuranceType  InsuranceType
	description    string
	coverageAmount float64
	premium        float64
	active         bool
	startDate      time.Time
	endDate        time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// New validates and creates a Policy. Both timestamps are set to now.
func New(
	id, userID, number, provider string,
	insuranceType InsuranceType, description string,
	coverageAmount, premium float64, active bool,
	startDate, endDate time.Time, now time.Time,
) (Policy, error) {
	if id == "" {
		return Policy{}, fmt.Errorf("policy ID is required")
	}
	if userID == "" {
		return Policy{}, fmt.Errorf("user ID is required")
	}
	if number == "" {
		return Policy{}, fmt.Errorf("policy number is required")
	}
	if provider == "" {
		return Policy{}, fmt.Errorf("provider is required")
	}
	if !insuranceType.IsValid() {
		return Policy{}, fmt.Errorf("unknown insurance type %q", insuranceType)
	}
	if coverageAmount < 0 {
		return Policy{}, fmt.Errorf("coverage amount must not be negative")
	}
	if premium < 0 {
		return Policy{}, fmt.Errorf("premium must not be negative")
	}
	if !endDate.IsZero() && !startDate.IsZero() && endDate.Before(startDate) {
		return Policy{}, fmt.Errorf("end date precedes start date")
	}

	return Policy{
		id:             id,
		userID:         userID,
		number:         number,
		provider:       provider,
		insuranceType:  insuranceType,
		description:    description,
		coverageAmount: coverageAmount,
		premium:        premium,
		active:         active,
		startDate:      startDate,
		endDate:        endDate,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct creates a Policy without validation (storage hydration).
func Reconstruct(
	id, userID, number, provider string,
	insuranceType InsuranceType, description string,
	coverageAmount, premium float64, active bool,
	startDate, endDate, createdAt, updatedAt time.Time,
) Policy {
	return Policy{
		id: id, userID: userID, number: number, provider: provider,
		insuranceType: insuranceType, description: description,
		coverageAmount: coverageAmount, premium: premium, active: active,
		startDate: startDate, endDate: endDate,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the policy identifier.
func (p *Policy) ID() string { return p.id }

// UserID returns the owning user.
func (p *Policy) UserID() string { return p.userID }

// Number returns the policy number.
func (p *Policy) Number() string { return p.number }

// Provider returns the issuing provider name.
func (p *Policy) Provider() string { return p.provider }

// InsuranceType returns the policy classification.
func (p *Policy) InsuranceType() InsuranceType { return p.insuranceType }

// Description returns the free-form description.
func (p *Policy) Description() string { return p.description }

// CoverageAmount returns the covered amount.
func (p *Policy) CoverageAmount() float64 { return p.coverageAmount }

// Premium returns the recurring premium.
func (p *Policy) Premium() float64 { return p.premium }

// Active reports whether the policy is currently active.
func (p *Policy) Active() bool { return p.active }

// StartDate returns the coverage start date.
func (p *Policy) StartDate() time.Time { return p.startDate }

// EndDate returns the coverage end date.
func (p *Policy) EndDate() time.Time { return p.endDate }

// CreatedAt returns the record creation time.
func (p *Policy) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the record last-update time.
func (p *Policy) UpdatedAt() time.Time { return p.updatedAt }

// Filter holds the optional faceted-filter constraints for policies.
// Absent fields impose no constraint; all present fields are AND-combined.
type Filter struct {
	InsuranceTypes []InsuranceType
	Providers      []string
	Active         *bool
	MinAmount      *float64 // coverage amount, inclusive
	MaxAmount      *float64 // coverage amount, inclusive
	StartAfter     *time.Time
	EndBefore      *time.Time
}

// Facets holds the distinct facet values available to one user.
type Facets struct {
	Providers      []string
	InsuranceTypes []string
}
