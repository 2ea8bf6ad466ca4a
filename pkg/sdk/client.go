package claimdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/claimdex/internal/db"
	dbRedis "github.com/kailas-cloud/claimdex/internal/db/redis"
	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
	"github.com/kailas-cloud/claimdex/internal/domain/search/query"
	claimrepo "github.com/kailas-cloud/claimdex/internal/repository/claim"
	documentrepo "github.com/kailas-cloud/claimdex/internal/repository/document"
	policyrepo "github.com/kailas-cloud/claimdex/internal/repository/policy"
	claimuc "github.com/kailas-cloud/claimdex/internal/usecase/claim"
	documentuc "github.com/kailas-cloud/claimdex/internal/usecase/document"
	healthuc "github.com/kailas-cloud/claimdex/internal/usecase/health"
	policyuc "github.com/kailas-cloud/claimdex/internal/usecase/policy"
	searchuc "github.com/kailas-cloud/claimdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal service interfaces, narrowed for test substitution.
type policyUseCase interface {
	Create(ctx context.Context, userID string, in policyuc.CreateInput) (dompolicy.Policy, error)
	Get(ctx context.Context, userID, id string) (dompolicy.Policy, error)
	Delete(ctx context.Context, userID, id string) error
	Filter(ctx context.Context, userID string, f dompolicy.Filter, page, pageSize int) (*policyuc.FilterPage, error)
}

type claimUseCase interface {
	Create(ctx context.Context, userID string, in claimuc.CreateInput) (domclaim.Claim, error)
	Get(ctx context.Context, userID, id string) (domclaim.Claim, error)
	Delete(ctx context.Context, userID, id string) error
	Filter(ctx context.Context, userID string, f domclaim.Filter, page, pageSize int) (*claimuc.FilterPage, error)
}

type documentUseCase interface {
	Create(ctx context.Context, userID string, in documentuc.CreateInput) (domdoc.Document, error)
	Get(ctx context.Context, userID, id string) (domdoc.Document, error)
	Delete(ctx context.Context, userID, id string) error
	Filter(ctx context.Context, userID string, f domdoc.Filter, page, pageSize int) (*documentuc.FilterPage, error)
}

type searchUseCase interface {
	Search(ctx context.Context, userID string, q *query.Query) (*searchuc.Page, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the claimdex SDK entry point.
type Client struct {
	store     db.Store
	user      string
	policySvc policyUseCase
	claimSvc  claimUseCase
	docSvc    documentUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a claimdex Client, connects to the database and ensures the
// search indexes exist. The provided context is used for the initial
// readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("claimdex: database address required (use WithRedis)")
	}
	if cfg.user == "" {
		return nil, errors.New("claimdex: acting user required (use WithUser)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("claimdex: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("claimdex: database not ready: %w", err)
	}

	if err := ensureIndexes(ctx, store); err != nil {
		store.Close()
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func ensureIndexes(ctx context.Context, store db.Store) error {
	defs := []*db.IndexDefinition{
		policyrepo.IndexDefinition(),
		claimrepo.IndexDefinition(),
		documentrepo.IndexDefinition(),
	}
	for _, def := range defs {
		if err := store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
			return fmt.Errorf("claimdex: create index %s: %w", def.Name, err)
		}
	}
	return nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	policyRepo := policyrepo.New(store)
	claimRepo := claimrepo.New(store)
	documentRepo := documentrepo.New(store)

	policySvc := policyuc.New(policyRepo)
	claimSvc := claimuc.New(claimRepo, policyRepo)
	docSvc := documentuc.New(documentRepo, policyRepo, claimRepo)
	if cfg.defaultPageSize > 0 || cfg.maxPageSize > 0 {
		policySvc = policySvc.WithPagination(cfg.defaultPageSize, cfg.maxPageSize)
		claimSvc = claimSvc.WithPagination(cfg.defaultPageSize, cfg.maxPageSize)
		docSvc = docSvc.WithPagination(cfg.defaultPageSize, cfg.maxPageSize)
	}

	return &Client{
		store:     store,
		user:      cfg.user,
		policySvc: policySvc,
		claimSvc:  claimSvc,
		docSvc:    docSvc,
		searchSvc: searchuc.New(policyRepo, claimRepo, documentRepo),
		healthSvc: healthuc.New(store),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Policies returns the policy management service.
func (c *Client) Policies() *PolicyService {
	return &PolicyService{user: c.user, svc: c.policySvc, obs: c.obs}
}

// Claims returns the claim management service.
func (c *Client) Claims() *ClaimService {
	return &ClaimService{user: c.user, svc: c.claimSvc, obs: c.obs}
}

// Documents returns the document metadata service.
func (c *Client) Documents() *DocumentService {
	return &DocumentService{user: c.user, svc: c.docSvc, obs: c.obs}
}

// Search returns the cross-entity search service.
func (c *Client) Search() *SearchService {
	return &SearchService{user: c.user, svc: c.searchSvc, obs: c.obs}
}
