package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwinzi/freshmart-api/internal/application/service"
	"github.com/mwinzi/freshmart-api/internal/domain/repository"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/dto/request"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/dto/response"
	"github.com/mwinzi/freshmart-api/pkg/pagination"
)

// OrderHandler handles persisted order endpoints
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &pagination.Params{Limit: req.Limit, Offset: req.Offset}
	if req.Limit == 0 {
		params = pagination.Default()
		params.Offset = req.Offset
	}
	params.Validate()

	result, err := h.orderService.ListOrders(c.Request.Context(), &repository.OrderFilterParams{
		Pagination: params,
		Query:      req.Q,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Orders retrieved", result)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved", order)
}

// Delete handles DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// InvoicePDF handles GET /api/v1/orders/:id/invoice.pdf
func (h *OrderHandler) InvoicePDF(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	data, err := h.orderService.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="invoice-`+id.String()+`.pdf"`)
	c.Data(200, "application/pdf", data)
}

// Export handles GET /api/v1/orders/export
func (h *OrderHandler) Export(c *gin.Context) {
	data, err := h.orderService.ExportOrders(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
