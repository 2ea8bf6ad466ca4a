package result

import (
	"time"

	"github.com/kailas-cloud/claimdex/internal/domain/kind"
)

// Result is a single cross-entity search hit.
type Result struct {
	id           string
	kind         kind.Kind
	title        string
	description  string
	lastModified time.Time
	link         string
}

// New creates a search result.
func New(
	id string, k kind.Kind, title, description string,
	lastModified time.Time, link string,
) Result {
	return Result{
		id: id, kind: k, title: title, description: description,
		lastModified: lastModified, link: link,
	}
}

// ID returns the record identifier.
func (r *Result) ID() string { return r.id }

// Kind returns the record kind.
func (r *Result) Kind() kind.Kind { return r.kind }

// Title returns the display title (policy number, claim number or filename).
func (r *Result) Title() string { return r.title }

// Description returns the record description.
func (r *Result) Description() string { return r.description }

// LastModified returns the record's last-update time.
func (r *Result) LastModified() time.Time { return r.lastModified }

// Link returns the relative API path to the full record.
func (r *Result) Link() string { return r.link }
