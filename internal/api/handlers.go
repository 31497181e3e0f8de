package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dshills/qfscore/internal/cache"
	"github.com/dshills/qfscore/internal/matching"
	"github.com/dshills/qfscore/internal/profile"
	"github.com/dshills/qfscore/internal/redact"
	"github.com/dshills/qfscore/internal/report"
	"github.com/dshills/qfscore/internal/schema"
	"github.com/dshills/qfscore/internal/store"
	"github.com/dshills/qfscore/internal/trust"
)

// Version is reported in match reports served by the API.
const Version = "1.0"

// Handler holds the dependencies of every endpoint. Donors and Projects may
// be nil, in which case the lookups they back answer 503.
type Handler struct {
	logger   *zap.Logger
	profile  *profile.Profile
	donors   store.ActivitySource
	projects store.ProjectSource
	cache    cache.ResultCache
	cacheTTL time.Duration
	pool     float64
}

// Options configures a Handler.
type Options struct {
	Profile  *profile.Profile
	Donors   store.ActivitySource
	Projects store.ProjectSource
	Cache    cache.ResultCache
	CacheTTL time.Duration
	// Pool is the matching pool used when a request does not name one.
	Pool float64
}

func NewHandler(logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := opts.Profile
	if p == nil {
		p = &profile.Profile{Name: profile.DefaultName, Trust: trust.DefaultParams, Matching: matching.DefaultParams}
	}
	c := opts.Cache
	if c == nil {
		c = cache.Nop{}
	}
	return &Handler{
		logger:   logger,
		profile:  p,
		donors:   opts.Donors,
		projects: opts.Projects,
		cache:    c,
		cacheTTL: opts.CacheTTL,
		pool:     opts.Pool,
	}
}

type tierInfo struct {
	Tier     trust.Tier `json:"tier"`
	Icon     string     `json:"icon"`
	Color    string     `json:"color"`
	MinScore int        `json:"minScore"`
}

type donorScoreResponse struct {
	DonorID string `json:"donorId"`
	Cached  bool   `json:"cached"`
	trust.Result
}

func validationFailed(c *gin.Context, errs []schema.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": errs})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "profile": h.profile.Name})
}

// Tiers handles GET /v1/tiers.
func (h *Handler) Tiers(c *gin.Context) {
	out := make([]tierInfo, 0, len(trust.Tiers))
	for _, t := range trust.Tiers {
		out = append(out, tierInfo{
			Tier:     t,
			Icon:     t.Icon(),
			Color:    t.Color(),
			MinScore: h.profile.Trust.MinScoreFor(t),
		})
	}
	c.JSON(http.StatusOK, gin.H{"profile": h.profile.Name, "tiers": out})
}

// TrustScore handles POST /v1/trust-score.
func (h *Handler) TrustScore(c *gin.Context) {
	var a trust.Activity
	if err := c.ShouldBindJSON(&a); err != nil {
		h.logger.Warn("invalid trust score request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if errs := schema.ValidateActivity(a, ""); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}
	c.JSON(http.StatusOK, h.profile.Trust.Compute(a))
}

// DonorTrustScore handles GET /v1/donors/:id/trust-score.
func (h *Handler) DonorTrustScore(c *gin.Context) {
	if h.donors == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "donor data unavailable"})
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "donor id required"})
		return
	}
	ctx := c.Request.Context()
	key := cache.DonorKey(h.profile.Name, id)

	if r, ok, err := h.cache.Get(ctx, key); err != nil {
		h.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		c.JSON(http.StatusOK, donorScoreResponse{DonorID: id, Cached: true, Result: r})
		return
	}

	a, err := h.donors.Activity(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "donor not found"})
			return
		}
		h.logger.Error("load donor activity failed", zap.String("donor", id), zap.String("error", redact.Redact(err.Error())))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load donor"})
		return
	}

	r := h.profile.Trust.Compute(a)
	if err := h.cache.Set(ctx, key, r, h.cacheTTL); err != nil {
		h.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	c.JSON(http.StatusOK, donorScoreResponse{DonorID: id, Result: r})
}

// EstimateMatching handles POST /v1/matching/estimate.
func (h *Handler) EstimateMatching(c *gin.Context) {
	var req matching.ContributionSet
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid matching request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if errs := schema.ValidateContribution(req, ""); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}
	mp := h.profile.Matching
	c.JSON(http.StatusOK, gin.H{
		"matching":   mp.EstimateMatching(req.Raised, req.Contributors),
		"closedForm": mp.ClosedForm(req.Raised, req.Contributors),
	})
}

// PendingMatch handles POST /v1/matching/pending.
func (h *Handler) PendingMatch(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid pending match request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if errs := schema.ValidateAmount(req.Amount, "amount"); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimatedMatch": h.profile.Matching.EstimatePendingMatch(req.Amount)})
}

// ProjectMatching handles GET /v1/projects/matching.
func (h *Handler) ProjectMatching(c *gin.Context) {
	if h.projects == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "project data unavailable"})
		return
	}
	pool := h.pool
	if q := c.Query("pool"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			validationFailed(c, []schema.ValidationError{{Path: "pool", Message: "must be a number"}})
			return
		}
		if errs := schema.ValidatePool(v, "pool"); len(errs) > 0 {
			validationFailed(c, errs)
			return
		}
		pool = v
	}

	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list projects failed", zap.String("error", redact.Redact(err.Error())))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list projects"})
		return
	}

	matches := report.MatchProjects(h.profile.Matching, pool, projects)
	report.SortProjects(matches)
	c.JSON(http.StatusOK, report.MatchReport{
		Tool:     "qfscore",
		Version:  Version,
		Input:    report.Input{Profile: h.profile.Name},
		Summary:  report.ComputeMatchSummary(matches, pool),
		Projects: matches,
	})
}
