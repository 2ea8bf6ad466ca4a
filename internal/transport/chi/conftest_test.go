package chi

import (
	"context"
	"net/http"
	"time"

	chiv5 "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
	claimuc "github.com/kailas-cloud/claimdex/internal/usecase/claim"
	documentuc "github.com/kailas-cloud/claimdex/internal/usecase/document"
	healthuc "github.com/kailas-cloud/claimdex/internal/usecase/health"
	policyuc "github.com/kailas-cloud/claimdex/internal/usecase/policy"
	searchuc "github.com/kailas-cloud/claimdex/internal/usecase/search"
)

const testAPIKey = "test-key"

type stubPolicyRepo struct {
	policy    dompolicy.Policy
	getErr    error
	deleteErr error
	upserted  *dompolicy.Policy
	filterRes []dompolicy.Policy
	countRes  int
	facets    dompolicy.Facets
	called    bool
	searchRes []dompolicy.Policy
	searchCnt int
}

func (m *stubPolicyRepo) Upsert(_ context.Context, p *dompolicy.Policy) error {
	m.called = true
	m.upserted = p
	return nil
}

func (m *stubPolicyRepo) Get(_ context.Context, _, _ string) (dompolicy.Policy, error) {
	m.called = true
	return m.policy, m.getErr
}

func (m *stubPolicyRepo) Delete(_ context.Context, _, _ string) error {
	m.called = true
	return m.deleteErr
}

func (m *stubPolicyRepo) Filter(_ context.Context, _ string, _ dompolicy.Filter, _, _ int) ([]dompolicy.Policy, error) {
	m.called = true
	return m.filterRes, nil
}

func (m *stubPolicyRepo) FilterCount(_ context.Context, _ string, _ dompolicy.Filter) (int, error) {
	m.called = true
	return m.countRes, nil
}

func (m *stubPolicyRepo) Facets(_ context.Context, _ string, _ int) (dompolicy.Facets, error) {
	m.called = true
	return m.facets, nil
}

func (m *stubPolicyRepo) Search(_ context.Context, _ string, _ []string, _, _ int) ([]dompolicy.Policy, error) {
	m.called = true
	return m.searchRes, nil
}

func (m *stubPolicyRepo) SearchCount(_ context.Context, _ string, _ []string) (int, error) {
	m.called = true
	return m.searchCnt, nil
}

type stubClaimRepo struct {
	claim     domclaim.Claim
	getErr    error
	deleteErr error
	upserted  *domclaim.Claim
	filterRes []domclaim.Claim
	countRes  int
	called    bool
	searchRes []domclaim.Claim
	searchCnt int
}

func (m *stubClaimRepo) Upsert(_ context.Context, c *domclaim.Claim) error {
	m.called = true
	m.upserted = c
	return nil
}

func (m *stubClaimRepo) Get(_ context.Context, _, _ string) (domclaim.Claim, error) {
	m.called = true
	return m.claim, m.getErr
}

func (m *stubClaimRepo) Delete(_ context.Context, _, _ string) error {
	m.called = true
	return m.deleteErr
}

func (m *stubClaimRepo) Filter(_ context.Context, _ string, _ domclaim.Filter, _, _ int) ([]domclaim.Claim, error) {
	m.called = true
	return m.filterRes, nil
}

func (m *stubClaimRepo) FilterCount(_ context.Context, _ string, _ domclaim.Filter) (int, error) {
	m.called = true
	return m.countRes, nil
}

func (m *stubClaimRepo) Search(_ context.Context, _ string, _, _ []string, _, _ int) ([]domclaim.Claim, error) {
	m.called = true
	return m.searchRes, nil
}

func (m *stubClaimRepo) SearchCount(_ context.Context, _ string, _, _ []string) (int, error) {
	m.called = true
	return m.searchCnt, nil
}

type stubDocumentRepo struct {
	doc       domdoc.Document
	getErr    error
	deleteErr error
	upserted  *domdoc.Document
	filterRes []domdoc.Document
	countRes  int
	called    bool
	searchRes []domdoc.Document
	searchCnt int
}

func (m *stubDocumentRepo) Upsert(_ context.Context, d *domdoc.Document) error {
	m.called = true
	m.upserted = d
	return nil
}

func (m *stubDocumentRepo) Get(_ context.Context, _, _ string) (domdoc.Document, error) {
	m.called = true
	return m.doc, m.getErr
}

func (m *stubDocumentRepo) Delete(_ context.Context, _, _ string) error {
	m.called = true
	return m.deleteErr
}

func (m *stubDocumentRepo) Filter(_ context.Context, _ string, _ domdoc.Filter, _, _ int) ([]domdoc.Document, error) {
	m.called = true
	return m.filterRes, nil
}

func (m *stubDocumentRepo) FilterCount(_ context.Context, _ string, _ domdoc.Filter) (int, error) {
	m.called = true
	return m.countRes, nil
}

func (m *stubDocumentRepo) Search(_ context.Context, _ string, _, _ []string, _, _ int) ([]domdoc.Document, error) {
	m.called = true
	return m.searchRes, nil
}

func (m *stubDocumentRepo) SearchCount(_ context.Context, _ string, _, _ []string) (int, error) {
	m.called = true
	return m.searchCnt, nil
}

type stubPinger struct{ err error }

func (m *stubPinger) Ping(_ context.Context) error { return m.err }

type testEnv struct {
	handler   http.Handler
	policies  *stubPolicyRepo
	claims    *stubClaimRepo
	documents *stubDocumentRepo
	pinger    *stubPinger
}

func newTestEnv() *testEnv {
	env := &testEnv{
		policies:  &stubPolicyRepo{},
		claims:    &stubClaimRepo{},
		documents: &stubDocumentRepo{},
		pinger:    &stubPinger{},
	}

	policySvc := policyuc.New(env.policies)
	claimSvc := claimuc.New(env.claims, env.policies)
	documentSvc := documentuc.New(env.documents, env.policies, env.claims)
	searchSvc := searchuc.New(env.policies, env.claims, env.documents)
	healthSvc := healthuc.New(env.pinger)

	server := NewServer(policySvc, claimSvc, documentSvc, searchSvc, healthSvc, zap.NewNop())

	r := chiv5.NewRouter()
	r.Use(BearerAuthMiddleware(map[string]string{testAPIKey: "user-1"}))
	server.RegisterRoutes(r)
	env.handler = r

	return env
}

func testWirePolicy(id string) dompolicy.Policy {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return dompolicy.Reconstruct(
		id, "user-1", "POL-2024-001", "Acme Insurance",
		dompolicy.TypeHome, "homeowner coverage",
		250000, 120, true,
		now.AddDate(-1, 0, 0), now.AddDate(0, 6, 0),
		now, now,
	)
}

func testWireClaim(id string) domclaim.Claim {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	return domclaim.Reconstruct(
		id, "user-1", "pol-1", "CLM-2024-001",
		domclaim.StatusSubmitted, "kitchen water damage", 4800,
		now.AddDate(0, 0, -3), now, now,
	)
}

func testWireDocument(id string) domdoc.Document {
	now := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	return domdoc.Reconstruct(
		id, "user-1", "pol-1", "clm-1", "kitchen-photo.jpg",
		domdoc.CategoryPhoto, "photos of the damage", true,
		now.AddDate(0, 0, -2), 204800, now, now,
	)
}
