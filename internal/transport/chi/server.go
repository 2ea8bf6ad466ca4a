package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	chiv5 "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/claimdex/internal/domain"
	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	"github.com/kailas-cloud/claimdex/internal/domain/kind"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
	"github.com/kailas-cloud/claimdex/internal/domain/search/query"
	claimuc "github.com/kailas-cloud/claimdex/internal/usecase/claim"
	documentuc "github.com/kailas-cloud/claimdex/internal/usecase/document"
	healthuc "github.com/kailas-cloud/claimdex/internal/usecase/health"
	policyuc "github.com/kailas-cloud/claimdex/internal/usecase/policy"
	searchuc "github.com/kailas-cloud/claimdex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API surface over the record and search services.
type Server struct {
	policies      *policyuc.Service
	claims        *claimuc.Service
	documents     *documentuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	policies *policyuc.Service,
	claims *claimuc.Service,
	documents *documentuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		policies:  policies,
		claims:    claims,
		documents: documents,
		search:    search,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrPolicyNotFound, http.StatusNotFound, codePolicyNotFound),
		sentinelHandler(domain.ErrClaimNotFound, http.StatusNotFound, codeClaimNotFound),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
	}
	return s
}

// RegisterRoutes mounts every API route on the router.
func (s *Server) RegisterRoutes(r chiv5.Router) {
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chiv5.Router) {
		r.Get("/search", s.SearchRecords)

		r.Route("/policies", func(r chiv5.Router) {
			r.Post("/", s.CreatePolicy)
			r.Get("/filter", s.FilterPolicies)
			r.Get("/{id}", s.GetPolicy)
			r.Delete("/{id}", s.DeletePolicy)
		})
		r.Route("/claims", func(r chiv5.Router) {
			r.Post("/", s.CreateClaim)
			r.Get("/filter", s.FilterClaims)
			r.Get("/{id}", s.GetClaim)
			r.Delete("/{id}", s.DeleteClaim)
		})
		r.Route("/documents", func(r chiv5.Router) {
			r.Post("/", s.CreateDocument)
			r.Get("/filter", s.FilterDocuments)
			r.Get("/{id}", s.GetDocument)
			r.Delete("/{id}", s.DeleteDocument)
		})
	})
}

// SearchRecords handles GET /api/v1/search.
func (s *Server) SearchRecords(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	page, err := intParam(params, "page", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	limit, err := intParam(params, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	q, err := query.New(params.Get("q"), kind.ParseList(params.Get("types")), page, limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	res, err := s.search.Search(r.Context(), UserFromContext(r.Context()), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(res.Results))
	for i := range res.Results {
		items[i] = searchResultToWire(&res.Results[i])
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results: items,
		Pagination: paginationMeta{
			Total:      res.TotalMatches,
			Page:       q.Page(),
			Limit:      q.PageSize(),
			TotalPages: totalPages(res.TotalMatches, q.PageSize()),
		},
	})
}

// CreatePolicy handles POST /api/v1/policies.
func (s *Server) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req createPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := s.policies.Create(r.Context(), UserFromContext(r.Context()), policyuc.CreateInput{
		Number:         req.Number,
		Provider:       req.Provider,
		InsuranceType:  dompolicy.InsuranceType(req.InsuranceType),
		Description:    req.Description,
		CoverageAmount: req.CoverageAmount,
		Premium:        req.Premium,
		Active:         req.IsActive,
		StartDate:      derefTime(req.StartDate),
		EndDate:        derefTime(req.EndDate),
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/policies/"+p.ID())
	writeJSON(w, http.StatusCreated, policyToWire(&p))
}

// GetPolicy handles GET /api/v1/policies/{id}.
func (s *Server) GetPolicy(w http.ResponseWriter, r *http.Request) {
	p, err := s.policies.Get(r.Context(), UserFromContext(r.Context()), chiv5.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policyToWire(&p))
}

// DeletePolicy handles DELETE /api/v1/policies/{id}.
func (s *Server) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	if err := s.policies.Delete(r.Context(), UserFromContext(r.Context()), chiv5.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FilterPolicies handles GET /api/v1/policies/filter.
func (s *Server) FilterPolicies(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	f := dompolicy.Filter{Providers: listParam(params, "provider")}
	for _, raw := range listParam(params, "insuranceType") {
		t := dompolicy.InsuranceType(raw)
		if !t.IsValid() {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				fmt.Sprintf("unknown insurance type %q", raw))
			return
		}
		f.InsuranceTypes = append(f.InsuranceTypes, t)
	}

	var err error
	if f.Active, err = boolParam(params, "isActive"); err == nil {
		if f.MinAmount, err = floatParam(params, "minAmount"); err == nil {
			if f.MaxAmount, err = floatParam(params, "maxAmount"); err == nil {
				if f.StartAfter, err = timeParam(params, "startAfter"); err == nil {
					f.EndBefore, err = timeParam(params, "endBefore")
				}
			}
		}
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	page, pageSize, err := pageParams(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	out, err := s.policies.Filter(r.Context(), UserFromContext(r.Context()), f, page, pageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]policyResponse, len(out.Policies))
	for i := range out.Policies {
		items[i] = policyToWire(&out.Policies[i])
	}

	writeJSON(w, http.StatusOK, policyFilterResponse{
		Policies: items,
		Total:    out.Total,
		Facets: policyFacetsResponse{
			Providers:      emptyIfNil(out.Facets.Providers),
			InsuranceTypes: emptyIfNil(out.Facets.InsuranceTypes),
		},
	})
}

// CreateClaim handles POST /api/v1/claims.
func (s *Server) CreateClaim(w http.ResponseWriter, r *http.Request) {
	var req createClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	c, err := s.claims.Create(r.Context(), UserFromContext(r.Context()), claimuc.CreateInput{
		PolicyID:     req.PolicyID,
		Number:       req.Number,
		Status:       domclaim.Status(req.Status),
		Description:  req.Description,
		Amount:       req.Amount,
		IncidentDate: derefTime(req.IncidentDate),
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/claims/"+c.ID())
	writeJSON(w, http.StatusCreated, claimToWire(&c))
}

// GetClaim handles GET /api/v1/claims/{id}.
func (s *Server) GetClaim(w http.ResponseWriter, r *http.Request) {
	c, err := s.claims.Get(r.Context(), UserFromContext(r.Context()), chiv5.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claimToWire(&c))
}

// DeleteClaim handles DELETE /api/v1/claims/{id}.
func (s *Server) DeleteClaim(w http.ResponseWriter, r *http.Request) {
	if err := s.claims.Delete(r.Context(), UserFromContext(r.Context()), chiv5.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FilterClaims handles GET /api/v1/claims/filter.
func (s *Server) FilterClaims(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	f := domclaim.Filter{PolicyID: params.Get("policyId")}
	for _, raw := range listParam(params, "status") {
		st := domclaim.Status(raw)
		if !st.IsValid() {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				fmt.Sprintf("unknown claim status %q", raw))
			return
		}
		f.Statuses = append(f.Statuses, st)
	}

	var err error
	if f.MinAmount, err = floatParam(params, "minAmount"); err == nil {
		if f.MaxAmount, err = floatParam(params, "maxAmount"); err == nil {
			if f.IncidentAfter, err = timeParam(params, "incidentDateFrom"); err == nil {
				f.IncidentUntil, err = timeParam(params, "incidentDateTo")
			}
		}
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	page, pageSize, err := pageParams(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	out, err := s.claims.Filter(r.Context(), UserFromContext(r.Context()), f, page, pageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]claimResponse, len(out.Claims))
	for i := range out.Claims {
		items[i] = claimToWire(&out.Claims[i])
	}

	writeJSON(w, http.StatusOK, claimFilterResponse{Claims: items, Total: out.Total})
}

// CreateDocument handles POST /api/v1/documents.
func (s *Server) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	d, err := s.documents.Create(r.Context(), UserFromContext(r.Context()), documentuc.CreateInput{
		PolicyID:    req.PolicyID,
		ClaimID:     req.ClaimID,
		Filename:    req.Filename,
		Category:    domdoc.Category(req.DocumentType),
		Description: req.Description,
		IsAnalyzed:  req.IsAnalyzed,
		UploadDate:  derefTime(req.UploadDate),
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/documents/"+d.ID())
	writeJSON(w, http.StatusCreated, documentToWire(&d))
}

// GetDocument handles GET /api/v1/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	d, err := s.documents.Get(r.Context(), UserFromContext(r.Context()), chiv5.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToWire(&d))
}

// DeleteDocument handles DELETE /api/v1/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.Delete(r.Context(), UserFromContext(r.Context()), chiv5.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FilterDocuments handles GET /api/v1/documents/filter.
func (s *Server) FilterDocuments(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	f := domdoc.Filter{
		PolicyID: params.Get("policyId"),
		ClaimID:  params.Get("claimId"),
	}
	for _, raw := range listParam(params, "documentType") {
		c := domdoc.Category(raw)
		if !c.IsValid() {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				fmt.Sprintf("unknown document type %q", raw))
			return
		}
		f.Categories = append(f.Categories, c)
	}

	var err error
	if f.IsAnalyzed, err = boolParam(params, "isAnalyzed"); err == nil {
		if f.UploadedAfter, err = timeParam(params, "uploadDateFrom"); err == nil {
			f.UploadedBefore, err = timeParam(params, "uploadDateTo")
		}
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	page, pageSize, err := pageParams(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	out, err := s.documents.Filter(r.Context(), UserFromContext(r.Context()), f, page, pageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]documentResponse, len(out.Documents))
	for i := range out.Documents {
		items[i] = documentToWire(&out.Documents[i])
	}

	writeJSON(w, http.StatusOK, documentFilterResponse{Documents: items, Total: out.Total})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrValidation) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrPolicyNotFound,
		domain.ErrClaimNotFound,
		domain.ErrDocumentNotFound,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func pageParams(params url.Values) (page, pageSize int, err error) {
	if page, err = intParam(params, "page", 0); err != nil {
		return 0, 0, err
	}
	if pageSize, err = intParam(params, "pageSize", 0); err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func derefTime(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
