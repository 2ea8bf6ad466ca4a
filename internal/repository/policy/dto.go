package policy

import (
	"strconv"
	"time"

	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
)

// Hash field names, shared by the schema and the DTO mapping.
const (
	fieldID             = "id"
	fieldUserID         = "user_id"
	fieldNumber         = "number"
	fieldProvider       = "provider"
	fieldProviderText   = "provider_text"
	fieldInsuranceType  = "insurance_type"
	fieldDescription    = "description"
	fieldCoverageAmount = "coverage_amount"
	fieldPremium        = "premium"
	fieldActive         = "active"
	fieldStartDate      = "start_date"
	fieldEndDate        = "end_date"
	fieldCreatedAt      = "created_at"
	fieldUpdatedAt      = "updated_at"
)

// buildHashFields converts a domain Policy into a flat map[string]string for HSET.
func buildHashFields(p *dompolicy.Policy) map[string]string {
	return map[string]string{
		fieldID:             p.ID(),
		fieldUserID:         p.UserID(),
		fieldNumber:         p.Number(),
		fieldProvider:       p.Provider(),
		fieldInsuranceType:  string(p.InsuranceType()),
		fieldDescription:    p.Description(),
		fieldCoverageAmount: formatFloat(p.CoverageAmount()),
		fieldPremium:        formatFloat(p.Premium()),
		fieldActive:         strconv.FormatBool(p.Active()),
		fieldStartDate:      formatTime(p.StartDate()),
		fieldEndDate:        formatTime(p.EndDate()),
		fieldCreatedAt:      formatTime(p.CreatedAt()),
		fieldUpdatedAt:      formatTime(p.UpdatedAt()),
	}
}

// parseHashFields converts a flat hash map back into a domain Policy.
func parseHashFields(id string, m map[string]string) dompolicy.Policy {
	return dompolicy.Reconstruct(
		id,
		m[fieldUserID],
		m[fieldNumber],
		m[fieldProvider],
		dompolicy.InsuranceType(m[fieldInsuranceType]),
		m[fieldDescription],
		parseFloat(m[fieldCoverageAmount]),
		parseFloat(m[fieldPremium]),
		m[fieldActive] == "true",
		parseTime(m[fieldStartDate]),
		parseTime(m[fieldEndDate]),
		parseTime(m[fieldCreatedAt]),
		parseTime(m[fieldUpdatedAt]),
	)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// formatTime encodes a time as unix milliseconds so NUMERIC index fields can
// range over it. The zero time is stored as 0.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "0"
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func parseTime(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
