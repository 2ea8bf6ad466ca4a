package document

import (
	"strconv"
	"time"

	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
)

// Hash field names, shared by the schema and the DTO mapping.
const (
	fieldID          = "id"
	fieldUserID      = "user_id"
	fieldPolicyID    = "policy_id"
	fieldClaimID     = "claim_id"
	fieldFilename    = "filename"
	fieldCategory    = "category"
	fieldDescription = "description"
	fieldIsAnalyzed  = "is_analyzed"
	fieldUploadDate  = "upload_date"
	fieldSizeBytes   = "size_bytes"
	fieldCreatedAt   = "created_at"
	fieldUpdatedAt   = "updated_at"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(d *domdoc.Document) map[string]string {
	return map[string]string{
		fieldID:          d.ID(),
		fieldUserID:      d.UserID(),
		fieldPolicyID:    d.PolicyID(),
		fieldClaimID:     d.ClaimID(),
		fieldFilename:    d.Filename(),
		fieldCategory:    string(d.Category()),
		fieldDescription: d.Description(),
		fieldIsAnalyzed:  strconv.FormatBool(d.IsAnalyzed()),
		fieldUploadDate:  formatTime(d.UploadDate()),
		fieldSizeBytes:   strconv.FormatInt(d.SizeBytes(), 10),
		fieldCreatedAt:   formatTime(d.CreatedAt()),
		fieldUpdatedAt:   formatTime(d.UpdatedAt()),
	}
}

// parseHashFields converts a flat hash map back into a domain Document.
func parseHashFields(id string, m map[string]string) domdoc.Document {
	size, _ := strconv.ParseInt(m[fieldSizeBytes], 10, 64)
	return domdoc.Reconstruct(
		id,
		m[fieldUserID],
		m[fieldPolicyID],
		m[fieldClaimID],
		m[fieldFilename],
		domdoc.Category(m[fieldCategory]),
		m[fieldDescription],
		m[fieldIsAnalyzed] == "true",
		parseTime(m[fieldUploadDate]),
		size,
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
