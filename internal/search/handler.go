package search

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bravemath-backend/internal/catalog"
	"bravemath-backend/internal/shared/server/respond"
)

const (
	defaultListLimit    = 20
	maxListLimit        = 100
	defaultSuggestLimit = 5
	maxSuggestLimit     = 20
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog read routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.list)
	rg.GET("/documents/suggestions", h.suggestions)
	rg.GET("/documents/filters", h.filters)
	rg.GET("/documents/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	q := Query{
		Text: c.Query("q"),
		Filters: Filters{
			Level:    c.Query("level"),
			Subject:  c.Query("subject"),
			Category: c.Query("category"),
		},
		Sort:   c.Query("sort"),
		Limit:  clampQueryInt(c, "limit", defaultListLimit, maxListLimit),
		Offset: clampQueryInt(c, "offset", 0, 0),
	}

	if q.Filters.Level != "" && !catalog.ValidLevel(q.Filters.Level) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown level", nil)
		return
	}
	if q.Filters.Category != "" && !catalog.ValidCategory(q.Filters.Category) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown category", nil)
		return
	}

	res, err := h.Svc.Search(c.Request.Context(), q)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search documents", nil)
		return
	}

	respond.JSON(c, http.StatusOK, ListResponse{
		Documents: res.Documents,
		Total:     res.Total,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, doc)
}

func (h *Handler) suggestions(c *gin.Context) {
	limit := clampQueryInt(c, "limit", defaultSuggestLimit, maxSuggestLimit)

	suggestions, err := h.Svc.Suggestions(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build suggestions", nil)
		return
	}
	if suggestions == nil {
		suggestions = []Suggestion{}
	}

	respond.JSON(c, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

func (h *Handler) filters(c *gin.Context) {
	opts, err := h.Svc.Filters(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list filters", nil)
		return
	}

	respond.JSON(c, http.StatusOK, FilterOptionsResponse{
		Levels:     opts.Levels,
		Categories: opts.Categories,
		Subjects:   opts.Subjects,
		Tags:       opts.Tags,
	})
}

// clampQueryInt parses an integer query parameter, falling back to def and
// clamping negatives to zero and, when max > 0, values above max down to it.
func clampQueryInt(c *gin.Context, name string, def, max int) int {
	v := def
	if raw := c.Query(name); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			v = parsed
		}
	}
	if v < 0 {
		v = 0
	}
	if max > 0 && v > max {
		v = max
	}
	return v
}
