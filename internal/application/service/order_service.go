package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mwinzi/freshmart-api/internal/config"
	"github.com/mwinzi/freshmart-api/internal/domain/entity"
	"github.com/mwinzi/freshmart-api/internal/domain/repository"
	"github.com/mwinzi/freshmart-api/pkg/apperror"
	"github.com/mwinzi/freshmart-api/pkg/invoice"
	"github.com/mwinzi/freshmart-api/pkg/pagination"
	"github.com/mwinzi/freshmart-api/pkg/utils"
)

// OrderService handles persisted order operations
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	branding    invoice.Branding
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	invoiceCfg config.InvoiceConfig,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		branding: invoice.Branding{
			StoreName: invoiceCfg.StoreName,
			Address:   invoiceCfg.Address,
			Phone:     invoiceCfg.Phone,
			Footer:    invoiceCfg.Footer,
		},
	}
}

// OrderListResult is one page of orders keyed by id, plus the window
// needed to render the pager.
type OrderListResult struct {
	Count  int64                      `json:"count"`
	Rows   map[uuid.UUID]entity.Order `json:"rows"`
	Window *pagination.Window         `json:"window"`
}

// ListOrders lists orders matching the free-text query, newest first
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*OrderListResult, error) {
	orders, count, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	rows := make(map[uuid.UUID]entity.Order, len(orders))
	for _, o := range orders {
		rows[o.ID] = o
	}

	return &OrderListResult{
		Count:  count,
		Rows:   rows,
		Window: pagination.NewWindow(count, params.Pagination.Limit, params.Pagination.Offset),
	}, nil
}

// GetOrder retrieves an order with its line items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// DeleteOrder removes an order and its line items
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	return s.orderRepo.Delete(ctx, id)
}

// CreateFromDraft persists a draft as a real order. Totals are
// recomputed server-side from the line items rather than trusted from
// the draft, and a real order number replaces the placeholder.
func (s *OrderService) CreateFromDraft(ctx context.Context, draft *entity.OrderDraft) (*entity.Order, error) {
	if len(draft.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cannot submit an order with no items")
	}
	if draft.CustomerName == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	orderDate, err := time.Parse(entity.OrderDateLayout, draft.OrderDate)
	if err != nil {
		orderDate = time.Now()
	}

	items := make([]entity.OrderItem, 0, len(draft.Items))
	var subTotal int64
	for _, it := range draft.Items {
		lineTotal := entity.ItemTotal(it.UnitPrice, it.Quantity)
		subTotal += lineTotal
		items = append(items, entity.OrderItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Type:       it.Type,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
			TotalPrice: lineTotal,
		})
	}

	tax := entity.TaxAmount(subTotal, draft.TaxPercent)

	order := &entity.Order{
		OrderNumber:    utils.GenerateOrderNumber(),
		OrderDate:      orderDate,
		CustomerName:   draft.CustomerName,
		CustomerMobile: draft.CustomerMobile,
		SubTotal:       subTotal,
		Tax:            tax,
		TaxPercent:     draft.TaxPercent,
		Total:          subTotal + tax,
		Items:          items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// InvoicePDF builds and renders the invoice for a persisted order.
// Line items are resolved against the current catalog, falling back to
// the denormalized copies stored on the items.
func (s *OrderService) InvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	snapshot := invoice.Snapshot{
		OrderNumber:    order.OrderNumber,
		OrderDate:      order.OrderDate.Format(entity.OrderDateLayout),
		CustomerName:   order.CustomerName,
		CustomerMobile: order.CustomerMobile,
		SubTotal:       order.SubTotal,
		Tax:            order.Tax,
		TaxPercent:     order.TaxPercent,
		Total:          order.Total,
	}
	for _, it := range order.Items {
		snapshot.Items = append(snapshot.Items, invoice.SnapshotItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Type:       it.Type,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
		})
	}

	catalog, err := catalogFor(ctx, s.productRepo, snapshot.Items)
	if err != nil {
		return nil, err
	}

	doc := invoice.Build(snapshot, catalog)
	return invoice.RenderPDF(doc, s.branding)
}

// catalogFor batch fetches the products referenced by the given items
// and shapes them for invoice resolution. Products deleted since the
// order was placed are simply absent from the map.
func catalogFor(ctx context.Context, productRepo repository.ProductRepository, items []invoice.SnapshotItem) (map[uuid.UUID]invoice.CatalogEntry, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	products, err := productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	catalog := make(map[uuid.UUID]invoice.CatalogEntry, len(products))
	for _, p := range products {
		catalog[p.ID] = invoice.CatalogEntry{
			Name:       p.Name,
			Type:       p.Type,
			PricePerKg: p.PricePerKg,
		}
	}
	return catalog, nil
}

// ExportOrders writes all orders matching the query to an xlsx
// workbook, one row per order.
func (s *OrderService) ExportOrders(ctx context.Context, query string) ([]byte, error) {
	params := &repository.OrderFilterParams{
		Pagination: &pagination.Params{Limit: pagination.MaxLimit, Offset: 0},
		Query:      query,
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order Number", "Order Date", "Customer", "Mobile", "Items", "Sub Total", "Tax %", "Tax", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for {
		orders, count, err := s.orderRepo.List(ctx, params)
		if err != nil {
			return nil, err
		}

		for _, o := range orders {
			values := []interface{}{
				o.OrderNumber,
				o.OrderDate.Format(entity.OrderDateLayout),
				o.CustomerName,
				o.CustomerMobile,
				len(o.Items),
				float64(o.SubTotal) / 100,
				o.TaxPercent,
				float64(o.Tax) / 100,
				float64(o.Total) / 100,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}

		params.Pagination.Offset += params.Pagination.Limit
		if int64(params.Pagination.Offset) >= count || len(orders) == 0 {
			break
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write export workbook: %w", err)
	}
	return buf.Bytes(), nil
}
