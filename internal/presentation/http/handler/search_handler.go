package handler

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwinzi/freshmart-api/internal/application/search"
	"github.com/mwinzi/freshmart-api/internal/application/service"
	"github.com/mwinzi/freshmart-api/internal/domain/repository"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/dto/request"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/dto/response"
	"github.com/mwinzi/freshmart-api/pkg/pagination"
)

// SearchHandler handles live order search sessions. A session receives
// keystrokes over PUT and streams debounced results back over SSE.
type SearchHandler struct {
	manager      *search.Manager
	orderService *service.OrderService
	debounce     time.Duration
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(manager *search.Manager, orderService *service.OrderService, debounce time.Duration) *SearchHandler {
	return &SearchHandler{
		manager:      manager,
		orderService: orderService,
		debounce:     debounce,
	}
}

// fetchOrders adapts the order list to the search session's fetcher.
func (h *SearchHandler) fetchOrders(ctx context.Context, query string, limit, offset int) (interface{}, error) {
	params := &pagination.Params{Limit: limit, Offset: offset}
	params.Validate()

	return h.orderService.ListOrders(ctx, &repository.OrderFilterParams{
		Pagination: params,
		Query:      query,
	})
}

// Create handles POST /api/v1/search/sessions
func (h *SearchHandler) Create(c *gin.Context) {
	session := h.manager.Create(h.fetchOrders, h.debounce, pagination.DefaultLimit)
	response.Created(c, "Search session created", gin.H{"id": session.ID})
}

// Keystroke handles PUT /api/v1/search/sessions/:id/query
func (h *SearchHandler) Keystroke(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	session, found := h.manager.Get(id)
	if !found {
		response.NotFound(c, "Search session not found")
		return
	}

	var req request.SearchKeystrokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session.Keystroke(req.Q)
	response.NoContent(c)
}

// SetWindow handles PUT /api/v1/search/sessions/:id/window
func (h *SearchHandler) SetWindow(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	session, found := h.manager.Get(id)
	if !found {
		response.NotFound(c, "Search session not found")
		return
	}

	var req request.SearchWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session.SetWindow(req.Limit, req.Offset)
	response.NoContent(c)
}

// Stream handles GET /api/v1/search/sessions/:id/stream. Results are
// pushed as server-sent events until the session is deleted or the
// client disconnects.
func (h *SearchHandler) Stream(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	session, found := h.manager.Get(id)
	if !found {
		response.NotFound(c, "Search session not found")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case result, open := <-session.Results():
			if !open {
				return false
			}
			if result.Err != nil {
				c.SSEvent("error", gin.H{
					"seq":     result.Seq,
					"query":   result.Query,
					"message": result.Err.Error(),
				})
				return true
			}
			c.SSEvent("results", result)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Delete handles DELETE /api/v1/search/sessions/:id
func (h *SearchHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if !h.manager.Delete(id) {
		response.NotFound(c, "Search session not found")
		return
	}
	response.NoContent(c)
}
