package claim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/claimdex/internal/domain"
	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
)

type mockRepo struct {
	upsertErr error
	upserted  *domclaim.Claim
	getResult domclaim.Claim
	getErr    error
	deleteErr error
	filterRes []domclaim.Claim
	filterErr error
	gotOffset int
	gotLimit  int
	countRes  int
	countErr  error
}

func (m *mockRepo) Upsert(_ context.Context, c *domclaim.Claim) error {
	m.upserted = c
	return m.upsertErr
}

func (m *mockRepo) Get(_ context.Context, _, _ string) (domclaim.Claim, error) {
	return m.getResult, m.getErr
}

func (m *mockRepo) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

func (m *mockRepo) Filter(_ context.Context, _ string, _ domclaim.Filter, offset, limit int) ([]domclaim.Claim, error) {
	m.gotOffset = offset
	m.gotLimit = limit
	return m.filterRes, m.filterErr
}

func (m *mockRepo) FilterCount(_ context.Context, _ string, _ domclaim.Filter) (int, error) {
	return m.countRes, m.countErr
}

type mockPolicyReader struct {
	err       error
	gotUserID string
	gotID     string
}

func (m *mockPolicyReader) Get(_ context.Context, userID, id string) (dompolicy.Policy, error) {
	m.gotUserID = userID
	m.gotID = id
	return dompolicy.Policy{}, m.err
}

func validInput() CreateInput {
	return CreateInput{
		PolicyID:     "pol-1",
		Number:       "CLM-2024-001",
		Status:       domclaim.StatusSubmitted,
		Description:  "kitchen water damage",
		Amount:       4800,
		IncidentDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate_VerifiesParentPolicy(t *testing.T) {
	repo := &mockRepo{}
	policies := &mockPolicyReader{}
	svc := New(repo, policies)

	c, err := svc.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policies.gotUserID != "user-1" || policies.gotID != "pol-1" {
		t.Errorf("parent lookup = (%q, %q)", policies.gotUserID, policies.gotID)
	}
	if c.ID() == "" {
		t.Error("expected server-assigned id")
	}
	if c.PolicyID() != "pol-1" {
		t.Errorf("PolicyID() = %q", c.PolicyID())
	}
}

func TestCreate_ParentPolicyMissing(t *testing.T) {
	repo := &mockRepo{}
	policies := &mockPolicyReader{err: domain.ErrPolicyNotFound}
	svc := New(repo, policies)

	_, err := svc.Create(context.Background(), "user-1", validInput())
	if !errors.Is(err, domain.ErrPolicyNotFound) {
		t.Errorf("expected ErrPolicyNotFound, got %v", err)
	}
	if repo.upserted != nil {
		t.Error("claim must not be stored without its parent policy")
	}
}

func TestCreate_ValidationError(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, &mockPolicyReader{})

	in := validInput()
	in.Status = "BOGUS"

	_, err := svc.Create(context.Background(), "user-1", in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if repo.upserted != nil {
		t.Error("invalid claim must not reach storage")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockRepo{getErr: domain.ErrClaimNotFound}
	svc := New(repo, &mockPolicyReader{})

	_, err := svc.Get(context.Background(), "user-1", "missing")
	if !errors.Is(err, domain.ErrClaimNotFound) {
		t.Errorf("expected ErrClaimNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, &mockPolicyReader{})

	if err := svc.Delete(context.Background(), "user-1", "clm-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFilter_ReturnsPageAndTotal(t *testing.T) {
	repo := &mockRepo{countRes: 9}
	svc := New(repo, &mockPolicyReader{})

	page, err := svc.Filter(context.Background(), "user-1", domclaim.Filter{}, 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotOffset != 5 || repo.gotLimit != 5 {
		t.Errorf("offset/limit = %d/%d, want 5/5", repo.gotOffset, repo.gotLimit)
	}
	if page.Total != 9 {
		t.Errorf("Total = %d, want 9", page.Total)
	}
	if page.Claims == nil {
		t.Error("Claims must never be nil")
	}
}

func TestFilter_StoreError(t *testing.T) {
	filterErr := errors.New("index unavailable")
	repo := &mockRepo{filterErr: filterErr}
	svc := New(repo, &mockPolicyReader{})

	_, err := svc.Filter(context.Background(), "user-1", domclaim.Filter{}, 1, 20)
	if !errors.Is(err, filterErr) {
		t.Errorf("expected store error wrapped, got %v", err)
	}
}
