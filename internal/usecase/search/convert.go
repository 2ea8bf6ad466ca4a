package search

import (
	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	"github.com/kailas-cloud/claimdex/internal/domain/kind"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
	"github.com/kailas-cloud/claimdex/internal/domain/search/result"
)

func policyResult(p *dompolicy.Policy) result.Result {
	return result.New(
		p.ID(), kind.Policy, p.Number(), p.Description(),
		p.UpdatedAt(), "/api/v1/policies/"+p.ID(),
	)
}

func claimResult(c *domclaim.Claim) result.Result {
	return result.New(
		c.ID(), kind.Claim, c.Number(), c.Description(),
		c.UpdatedAt(), "/api/v1/claims/"+c.ID(),
	)
}

func documentResult(d *domdoc.Document) result.Result {
	return result.New(
		d.ID(), kind.Document, d.Filename(), d.Description(),
		d.UpdatedAt(), "/api/v1/documents/"+d.ID(),
	)
}
