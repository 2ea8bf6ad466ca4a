package claimdex

import (
	"context"

	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
	"github.com/kailas-cloud/claimdex/internal/domain/search/query"
	claimuc "github.com/kailas-cloud/claimdex/internal/usecase/claim"
	documentuc "github.com/kailas-cloud/claimdex/internal/usecase/document"
	healthuc "github.com/kailas-cloud/claimdex/internal/usecase/health"
	policyuc "github.com/kailas-cloud/claimdex/internal/usecase/policy"
	searchuc "github.com/kailas-cloud/claimdex/internal/usecase/search"
)

// --- policyUseCase mock ---

type mockPolicyUC struct {
	createFn func(ctx context.Context, userID string, in policyuc.CreateInput) (dompolicy.Policy, error)
	getFn    func(ctx context.Context, userID, id string) (dompolicy.Policy, error)
	deleteFn func(ctx context.Context, userID, id string) error
	filterFn func(ctx context.Context, userID string, f dompolicy.Filter, page, pageSize int) (*policyuc.FilterPage, error)
}

func (m *mockPolicyUC) Create(
	ctx context.Context, userID string, in policyuc.CreateInput,
) (dompolicy.Policy, error) {
	return m.createFn(ctx, userID, in)
}

func (m *mockPolicyUC) Get(ctx context.Context, userID, id string) (dompolicy.Policy, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockPolicyUC) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFn(ctx, userID, id)
}

func (m *mockPolicyUC) Filter(
	ctx context.Context, userID string, f dompolicy.Filter, page, pageSize int,
) (*policyuc.FilterPage, error) {
	return m.filterFn(ctx, userID, f, page, pageSize)
}

// --- claimUseCase mock ---

type mockClaimUC struct {
	createFn func(ctx context.Context, userID string, in claimuc.CreateInput) (domclaim.Claim, error)
	getFn    func(ctx context.Context, userID, id string) (domclaim.Claim, error)
	deleteFn func(ctx context.Context, userID, id string) error
	filterFn func(ctx context.Context, userID string, f domclaim.Filter, page, pageSize int) (*claimuc.FilterPage, error)
}

func (m *mockClaimUC) Create(
	ctx context.Context, userID string, in claimuc.CreateInput,
) (domclaim.Claim, error) {
	return m.createFn(ctx, userID, in)
}

func (m *mockClaimUC) Get(ctx context.Context, userID, id string) (domclaim.Claim, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockClaimUC) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFn(ctx, userID, id)
}

func (m *mockClaimUC) Filter(
	ctx context.Context, userID string, f domclaim.Filter, page, pageSize int,
) (*claimuc.FilterPage, error) {
	return m.filterFn(ctx, userID, f, page, pageSize)
}

// --- documentUseCase mock ---

type mockDocumentUC struct {
	createFn func(ctx context.Context, userID string, in documentuc.CreateInput) (domdoc.Document, error)
	getFn    func(ctx context.Context, userID, id string) (domdoc.Document, error)
	deleteFn func(ctx context.Context, userID, id string) error
	filterFn func(ctx context.Context, userID string, f domdoc.Filter, page, pageSize int) (*documentuc.FilterPage, error)
}

func (m *mockDocumentUC) Create(
	ctx context.Context, userID string, in documentuc.CreateInput,
) (domdoc.Document, error) {
	return m.createFn(ctx, userID, in)
}

func (m *mockDocumentUC) Get(ctx context.Context, userID, id string) (domdoc.Document, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockDocumentUC) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFn(ctx, userID, id)
}

func (m *mockDocumentUC) Filter(
	ctx context.Context, userID string, f domdoc.Filter, page, pageSize int,
) (*documentuc.FilterPage, error) {
	return m.filterFn(ctx, userID, f, page, pageSize)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, userID string, q *query.Query) (*searchuc.Page, error)
}

func (m *mockSearchUC) Search(
	ctx context.Context, userID string, q *query.Query,
) (*searchuc.Page, error) {
	return m.searchFn(ctx, userID, q)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}
