package http

import (
	"context"
	"net/http"

	"github.com/ekzyis/haraka-tld/repository"
	"github.com/ekzyis/haraka-tld/tld"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Reloader rebuilds the table snapshot on demand. Implemented by
// refresh.Service; the handler swaps the result into the registry.
type Reloader interface {
	FetchSnapshot(ctx context.Context) (*tld.Snapshot, error)
}

// Handler defines the structure of a handler.
type Handler struct {
	logger     *zap.SugaredLogger
	registry   *tld.Registry
	repository repository.Interactor
	reloader   Reloader
}

// Config defines the structure of a handler config.
type Config struct {
	Logger     *zap.SugaredLogger
	Registry   *tld.Registry
	Repository repository.Interactor
	Reloader   Reloader
}

// New returns a new instance of a handler
// based on a given configuration.
func New(cfg Config) *Handler {
	return &Handler{
		logger:     cfg.Logger,
		registry:   cfg.Registry,
		repository: cfg.Repository,
		reloader:   cfg.Reloader,
	}
}

// Register wires all handler routes into the given router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	v1.GET("/public-suffix", h.IsPublicSuffix)
	v1.GET("/organizational-domain", h.OrganizationalDomain)
	v1.GET("/split-hostname", h.SplitHostname)
	v1.GET("/lookups", h.RecentLookups)
	v1.POST("/reload", h.Reload)
}

// Health reports the size of the live table snapshot.
func (h *Handler) Health(g *gin.Context) {
	g.JSON(http.StatusOK, h.registry.Snapshot().Stats())
}

// Reload rebuilds the tables synchronously and swaps them in, without
// waiting for the background refresh schedule.
func (h *Handler) Reload(g *gin.Context) {
	if h.reloader == nil {
		g.Status(http.StatusNotImplemented)
		return
	}

	snap, err := h.reloader.FetchSnapshot(g.Request.Context())
	if err != nil {
		h.logger.Errorf("could not rebuild tables: %v", err)
		g.Status(http.StatusBadGateway)
		return
	}

	h.registry.Reload(snap)
	g.JSON(http.StatusOK, snap.Stats())
}

// record persists a lookup audit entry. Best-effort: the lookup response
// does not depend on it.
func (h *Handler) record(l *repository.Lookup) {
	if h.repository == nil {
		return
	}

	if err := h.repository.Create(l); err != nil {
		h.logger.Errorf("could not persist lookup entry: %v", err)
	}
}
