package service

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/mwinzi/freshmart-api/internal/config"
	"github.com/mwinzi/freshmart-api/internal/domain/entity"
	"github.com/mwinzi/freshmart-api/internal/domain/repository"
	"github.com/mwinzi/freshmart-api/pkg/apperror"
	"github.com/mwinzi/freshmart-api/pkg/artifact"
	"github.com/mwinzi/freshmart-api/pkg/invoice"
	"github.com/mwinzi/freshmart-api/pkg/scale"
)

// DraftService manages order drafts: transient, in-memory order state
// that lives only until submission. Each draft is a session; on
// successful submission the session is reset to a fresh empty draft,
// and on failure it is left intact for the operator to retry.
type DraftService struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]*entity.OrderDraft

	productRepo repository.ProductRepository
	orderSvc    *OrderService
	scale       scale.Scale
	artifacts   *artifact.Store
	branding    invoice.Branding
}

// NewDraftService creates a new draft service
func NewDraftService(
	productRepo repository.ProductRepository,
	orderSvc *OrderService,
	sc scale.Scale,
	artifacts *artifact.Store,
	invoiceCfg config.InvoiceConfig,
) *DraftService {
	return &DraftService{
		drafts:      make(map[uuid.UUID]*entity.OrderDraft),
		productRepo: productRepo,
		orderSvc:    orderSvc,
		scale:       sc,
		artifacts:   artifacts,
		branding: invoice.Branding{
			StoreName: invoiceCfg.StoreName,
			Address:   invoiceCfg.Address,
			Phone:     invoiceCfg.Phone,
			Footer:    invoiceCfg.Footer,
		},
	}
}

// CreateDraft starts a new draft session
func (s *DraftService) CreateDraft(ctx context.Context) *entity.OrderDraft {
	draft := entity.NewOrderDraft()

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()

	return draft.Clone()
}

// GetDraft returns a snapshot of the draft session
func (s *DraftService) GetDraft(ctx context.Context, id uuid.UUID) (*entity.OrderDraft, error) {
	s.mu.RLock()
	draft, ok := s.drafts[id]
	var snapshot *entity.OrderDraft
	if ok {
		snapshot = draft.Clone()
	}
	s.mu.RUnlock()

	if !ok {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return snapshot, nil
}

// DeleteDraft tears down a draft session and releases its preview
// artifact
func (s *DraftService) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.drafts[id]
	delete(s.drafts, id)
	s.mu.Unlock()

	if !ok {
		return apperror.NewNotFoundError("Draft")
	}
	s.artifacts.Release(id)
	return nil
}

// CustomerInput represents the draft header fields the operator edits
// directly. Nil pointers leave the corresponding field unchanged.
type CustomerInput struct {
	CustomerName   *string
	CustomerMobile *string
	OrderDate      *string
	TaxPercent     *float64
}

// UpdateCustomer applies header edits to the draft. A tax percent edit
// re-derives tax and total immediately.
func (s *DraftService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.OrderDraft, error) {
	return s.mutate(ctx, id, func(d *entity.OrderDraft) error {
		if input.CustomerName != nil {
			d.CustomerName = *input.CustomerName
		}
		if input.CustomerMobile != nil {
			d.CustomerMobile = *input.CustomerMobile
		}
		if input.OrderDate != nil {
			d.OrderDate = *input.OrderDate
		}
		if input.TaxPercent != nil {
			if err := d.SetTaxPercent(*input.TaxPercent); err != nil {
				return apperror.NewBadRequestError(err.Error())
			}
		}
		return nil
	})
}

// EntryInput represents an edit to the line-item entry sub-form.
// A nil ProductID field leaves the selection unchanged; a pointer to
// uuid.Nil clears it.
type EntryInput struct {
	ProductID *uuid.UUID
	Quantity  *float64
}

// UpdateEntry edits the entry sub-form. Selecting a product copies its
// name, type and unit price into the form and recomputes the candidate
// total; clearing the selection resets the whole form.
func (s *DraftService) UpdateEntry(ctx context.Context, id uuid.UUID, input *EntryInput) (*entity.OrderDraft, error) {
	var product *entity.Product
	if input.ProductID != nil && *input.ProductID != uuid.Nil {
		var err error
		product, err = s.productRepo.GetByID(ctx, *input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
	}

	return s.mutate(ctx, id, func(d *entity.OrderDraft) error {
		if input.ProductID != nil {
			d.SelectProduct(product)
		}
		if input.Quantity != nil {
			d.SetEntryQuantity(*input.Quantity)
		}
		return nil
	})
}

// WeighResult reports the outcome of a scale sync: the updated draft
// and whether a usable weight was actually applied.
type WeighResult struct {
	Draft   *entity.OrderDraft
	Applied bool
	Weight  float64
}

// SyncEntryWeight reads the weighing scale and applies the sample as
// the entry quantity. When the scale produces no usable value, the
// quantity is left unchanged and Applied is false.
func (s *DraftService) SyncEntryWeight(ctx context.Context, id uuid.UUID) (*WeighResult, error) {
	reading, err := s.scale.Read(ctx)
	if err != nil {
		return nil, apperror.NewAppError(502, "Failed to read weighing scale: "+err.Error())
	}

	if reading == nil {
		draft, gerr := s.GetDraft(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		return &WeighResult{Draft: draft, Applied: false}, nil
	}

	draft, err := s.mutate(ctx, id, func(d *entity.OrderDraft) error {
		d.SetEntryQuantity(reading.Weight)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &WeighResult{Draft: draft, Applied: true, Weight: reading.Weight}, nil
}

// AddEntryItem appends the completed entry sub-form as a line item
func (s *DraftService) AddEntryItem(ctx context.Context, id uuid.UUID) (*entity.OrderDraft, error) {
	return s.mutate(ctx, id, func(d *entity.OrderDraft) error {
		if err := d.AddEntryItem(); err != nil {
			return apperror.NewBadRequestError(err.Error())
		}
		return nil
	})
}

// RemoveItem deletes the line item at the given position
func (s *DraftService) RemoveItem(ctx context.Context, id uuid.UUID, index int) (*entity.OrderDraft, error) {
	return s.mutate(ctx, id, func(d *entity.OrderDraft) error {
		if err := d.RemoveItem(index); err != nil {
			return apperror.NewBadRequestError(err.Error())
		}
		return nil
	})
}

// Submit persists the draft as a real order. On success the draft is
// reset to a fresh empty state (same session id) and its preview
// artifact is released; on failure the draft is left untouched.
func (s *DraftService) Submit(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	snapshot, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	order, err := s.orderSvc.CreateFromDraft(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if draft, ok := s.drafts[id]; ok {
		draft.Reset()
	}
	s.mu.Unlock()
	s.artifacts.Release(id)

	return order, nil
}

// Artifact returns the draft's current invoice preview artifact
func (s *DraftService) Artifact(ctx context.Context, id uuid.UUID) (*artifact.Handle, error) {
	if _, err := s.GetDraft(ctx, id); err != nil {
		return nil, err
	}

	handle, ok := s.artifacts.GetByOwner(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Invoice preview")
	}
	return handle, nil
}

// mutate applies fn to the draft under the session lock, then
// regenerates the invoice preview from a snapshot taken inside the
// lock. Returns a clone safe for the caller to serialize.
func (s *DraftService) mutate(ctx context.Context, id uuid.UUID, fn func(*entity.OrderDraft) error) (*entity.OrderDraft, error) {
	s.mu.Lock()
	draft, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return nil, apperror.NewNotFoundError("Draft")
	}
	if err := fn(draft); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	snapshot := draft.Clone()
	s.mu.Unlock()

	s.refreshPreview(ctx, snapshot)
	return snapshot, nil
}

// refreshPreview rebuilds the draft's invoice preview artifact.
// Render failures are logged and the prior artifact is kept, so a
// transient PDF error never breaks the order workflow.
func (s *DraftService) refreshPreview(ctx context.Context, d *entity.OrderDraft) {
	snapshot := invoice.Snapshot{
		OrderNumber:    d.OrderNumber,
		OrderDate:      d.OrderDate,
		CustomerName:   d.CustomerName,
		CustomerMobile: d.CustomerMobile,
		SubTotal:       d.SubTotal,
		Tax:            d.Tax,
		TaxPercent:     d.TaxPercent,
		Total:          d.Total,
	}
	for _, it := range d.Items {
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
		log.Printf("draft %s: failed to load catalog for preview: %v", d.ID, err)
		return
	}

	doc := invoice.Build(snapshot, catalog)
	data, err := invoice.RenderPDF(doc, s.branding)
	if err != nil {
		log.Printf("draft %s: failed to render invoice preview: %v", d.ID, err)
		return
	}

	s.artifacts.Put(d.ID, "application/pdf", data)
}
