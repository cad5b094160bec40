package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwinzi/freshmart-api/internal/application/service"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/dto/request"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/dto/response"
)

// DraftHandler handles order draft session endpoints
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Create handles POST /api/v1/drafts
func (h *DraftHandler) Create(c *gin.Context) {
	draft := h.draftService.CreateDraft(c.Request.Context())
	response.Created(c, "Draft created", draft)
}

// Get handles GET /api/v1/drafts/:id
func (h *DraftHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft retrieved", draft)
}

// Delete handles DELETE /api/v1/drafts/:id
func (h *DraftHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.draftService.DeleteDraft(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateCustomer handles PUT /api/v1/drafts/:id/customer
func (h *DraftHandler) UpdateCustomer(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request.DraftCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	draft, err := h.draftService.UpdateCustomer(c.Request.Context(), id, &service.CustomerInput{
		CustomerName:   req.CustomerName,
		CustomerMobile: req.CustomerMobile,
		OrderDate:      req.OrderDate,
		TaxPercent:     req.TaxPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft updated", draft)
}

// UpdateEntry handles PUT /api/v1/drafts/:id/entry
func (h *DraftHandler) UpdateEntry(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request.DraftEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.EntryInput{Quantity: req.Quantity}
	if req.ProductID != nil {
		if *req.ProductID == "" {
			// Empty string clears the selection.
			nilID := uuid.Nil
			input.ProductID = &nilID
		} else {
			productID, err := uuid.Parse(*req.ProductID)
			if err != nil {
				response.BadRequest(c, "Invalid product_id")
				return
			}
			input.ProductID = &productID
		}
	}

	draft, err := h.draftService.UpdateEntry(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Entry updated", draft)
}

// Weigh handles POST /api/v1/drafts/:id/entry/weigh
func (h *DraftHandler) Weigh(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.draftService.SyncEntryWeight(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Weight synced", gin.H{
		"applied": result.Applied,
		"weight":  result.Weight,
		"draft":   result.Draft,
	})
}

// AddItem handles POST /api/v1/drafts/:id/items
func (h *DraftHandler) AddItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	draft, err := h.draftService.AddEntryItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", draft)
}

// RemoveItem handles DELETE /api/v1/drafts/:id/items/:index
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid index parameter")
		return
	}

	draft, err := h.draftService.RemoveItem(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", draft)
}

// Submit handles POST /api/v1/drafts/:id/submit
func (h *DraftHandler) Submit(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.draftService.Submit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Order created", order)
}

// InvoicePDF handles GET /api/v1/drafts/:id/invoice.pdf
func (h *DraftHandler) InvoicePDF(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	handle, err := h.draftService.Artifact(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="preview-`+id.String()+`.pdf"`)
	c.Data(200, handle.ContentType, handle.Data)
}
