package api

import (
	"net/http"
	"time"

	"github.com/chixitown/site/internal/analytics"
	"github.com/chixitown/site/internal/config"
	"github.com/chixitown/site/internal/content"
	apperrors "github.com/chixitown/site/internal/errors"
	"github.com/chixitown/site/internal/feed"
	"github.com/chixitown/site/internal/monitoring"
	"github.com/gin-gonic/gin"

	// swagger spec registration
	_ "github.com/chixitown/site/docs"
)

// Version is reported by the health endpoint
var Version = "dev"

const feedCacheControl = "public, max-age=900"

// Handlers serves the HTTP routes
type Handlers struct {
	service *analytics.Service
	env     func() (analytics.Env, error)
	store   *content.Store
	site    config.Site
	metrics *monitoring.Metrics
}

// NewHandlers creates handlers from deps; a nil Env reads the process environment
func NewHandlers(deps Dependencies) *Handlers {
	env := deps.Env
	if env == nil {
		env = analytics.EnvFromOS
	}
	return &Handlers{
		service: deps.Service,
		env:     env,
		store:   deps.Store,
		site:    deps.Site,
		metrics: deps.Metrics,
	}
}

// Summary godoc
// @Summary      Web analytics summary
// @Description  Last 7 days of visits, pageviews and top pages for the project
// @Tags         analytics
// @Produce      json
// @Param        projectId  query     string  false  "Project ID, used when VERCEL_PROJECT_ID is unset"
// @Param        teamId     query     string  false  "Team ID, used when VERCEL_ORG_ID and VERCEL_TEAM_ID are unset"
// @Success      200  {object}  types.SummaryResponse
// @Failure      500  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse
// @Router       /api/va-summary [get]
func (h *Handlers) Summary(c *gin.Context) {
	env, err := h.env()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	cfg, err := analytics.Resolve(env, c.Request.URL.Query())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	resp, err := h.service.Summary(c.Request.Context(), cfg)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header("Cache-Control", analytics.CacheControl)
	c.JSON(http.StatusOK, resp)
}

// RSS godoc
// @Summary  RSS feed of all published articles
// @Tags     feeds
// @Produce  xml
// @Success  200
// @Router   /rss.xml [get]
func (h *Handlers) RSS(c *gin.Context) {
	out, err := feed.RSS(h.site, h.store.Published())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Header("Cache-Control", feedCacheControl)
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", out)
}

// Atom godoc
// @Summary  Atom feed of all published articles
// @Tags     feeds
// @Produce  xml
// @Success  200
// @Router   /atom.xml [get]
func (h *Handlers) Atom(c *gin.Context) {
	h.writeAtom(c, h.site.Title, "/atom.xml", h.store.Published())
}

// CollectionAtom godoc
// @Summary  Atom feed of one collection
// @Tags     feeds
// @Produce  xml
// @Param    collection  path  string  true  "Collection name"
// @Success  200
// @Failure  404  {object}  types.ErrorResponse
// @Router   /{collection}/atom.xml [get]
func (h *Handlers) CollectionAtom(c *gin.Context) {
	name := c.Param("collection")
	if !h.site.HasCollection(name) {
		apperrors.Respond(c, apperrors.NewNotFoundError("unknown collection: "+name))
		return
	}
	h.writeAtom(c, feed.CollectionTitle(h.site, name), "/"+name+"/atom.xml", h.store.Collection(name))
}

func (h *Handlers) writeAtom(c *gin.Context, title, relURL string, articles []*content.Article) {
	out, err := feed.Atom(h.site, title, relURL, articles)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Header("Cache-Control", feedCacheControl)
	c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", out)
}

// Health godoc
// @Summary  Liveness and content statistics
// @Tags     ops
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Router   /health [get]
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
	}
	if h.store != nil {
		body["content"] = h.store.Stats()
	}
	c.JSON(http.StatusOK, body)
}

// Metrics godoc
// @Summary  Request and upstream metrics
// @Tags     ops
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Router   /metrics [get]
func (h *Handlers) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetStats())
}

// NotFound answers unmatched routes when no static site is mounted
func (h *Handlers) NotFound(c *gin.Context) {
	apperrors.Respond(c, apperrors.NewNotFoundError("no route for "+c.Request.Method+" "+c.Request.URL.Path))
}
