package claim

import (
	"strconv"
	"time"

	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
)

// Hash field names, shared by the schema and the DTO mapping.
const (
	fieldID           = "id"
	fieldUserID       = "user_id"
	fieldPolicyID     = "policy_id"
	fieldNumber       = "number"
	fieldStatus       = "status"
	fieldDescription  = "description"
	fieldAmount       = "amount"
	fieldIncidentDate = "incident_date"
	fieldCreatedAt    = "created_at"
	fieldUpdatedAt    = "updated_at"
)

// buildHashFields converts a domain Claim into a flat map[string]string for HSET.
func buildHashFields(c *domclaim.Claim) map[string]string {
	return map[string]string{
		fieldID:           c.ID(),
		fieldUserID:       c.UserID(),
		fieldPolicyID:     c.PolicyID(),
		fieldNumber:       c.Number(),
		fieldStatus:       string(c.Status()),
		fieldDescription:  c.Description(),
		fieldAmount:       strconv.FormatFloat(c.Amount(), 'f', -1, 64),
		fieldIncidentDate: formatTime(c.IncidentDate()),
		fieldCreatedAt:    formatTime(c.CreatedAt()),
		fieldUpdatedAt:    formatTime(c.UpdatedAt()),
	}
}

// parseHashFields converts a flat hash map back into a domain Claim.
func parseHashFields(id string, m map[string]string) domclaim.Claim {
	amount, _ := strconv.ParseFloat(m[fieldAmount], 64)
	return domclaim.Reconstruct(
		id,
		m[fieldUserID],
		m[fieldPolicyID],
		m[fieldNumber],
		domclaim.Status(m[fieldStatus]),
		m[fieldDescription],
		amount,
		parseTime(m[fieldIncidentDate]),
		parseTime(m[fieldCreatedAt]),
		parseTime(m[fieldUpdatedAt]),
	)
}

// formatTime encodes a time as unix milliseconds for NUMERIC index fields.
// The zero time is stored as 0.
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
