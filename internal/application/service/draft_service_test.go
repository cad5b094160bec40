package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mwinzi/freshmart-api/internal/config"
	"github.com/mwinzi/freshmart-api/internal/domain/entity"
	"github.com/mwinzi/freshmart-api/internal/domain/repository"
	"github.com/mwinzi/freshmart-api/pkg/artifact"
	"github.com/mwinzi/freshmart-api/pkg/scale"
)

type fakeProductRepo struct {
	products map[uuid.UUID]entity.Product
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

type fakeOrderRepo struct {
	orders    map[uuid.UUID]*entity.Order
	createErr error
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

type fakeScale struct {
	reading *scale.Reading
	err     error
}

func (s *fakeScale) Read(ctx context.Context) (*scale.Reading, error) { return s.reading, s.err }
func (s *fakeScale) Close() error                                     { return nil }
func (s *fakeScale) IsConnected() bool                                { return s.reading != nil }

type draftFixture struct {
	svc       *DraftService
	products  *fakeProductRepo
	orders    *fakeOrderRepo
	scale     *fakeScale
	artifacts *artifact.Store
	beef      entity.Product
	goat      entity.Product
}

func newDraftFixture(t *testing.T) *draftFixture {
	t.Helper()

	products := &fakeProductRepo{products: make(map[uuid.UUID]entity.Product)}
	beef := entity.Product{ID: uuid.New(), Name: "Beef Steak", Type: "Beef", PricePerKg: 100000}
	goat := entity.Product{ID: uuid.New(), Name: "Goat Ribs", Type: "Goat", PricePerKg: 125000}
	products.products[beef.ID] = beef
	products.products[goat.ID] = goat

	orders := &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
	sc := &fakeScale{}
	artifacts := artifact.NewStore()
	invoiceCfg := config.InvoiceConfig{StoreName: "Test Butchery"}

	orderSvc := NewOrderService(orders, products, invoiceCfg)
	svc := NewDraftService(products, orderSvc, sc, artifacts, invoiceCfg)

	return &draftFixture{
		svc:       svc,
		products:  products,
		orders:    orders,
		scale:     sc,
		artifacts: artifacts,
		beef:      beef,
		goat:      goat,
	}
}

func (f *draftFixture) addItem(t *testing.T, draftID, productID uuid.UUID, qty float64) *entity.OrderDraft {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.UpdateEntry(ctx, draftID, &EntryInput{ProductID: &productID, Quantity: &qty})
	require.NoError(t, err)

	draft, err := f.svc.AddEntryItem(ctx, draftID)
	require.NoError(t, err)
	return draft
}

func TestDraftEntrySelectionCopiesProduct(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	got, err := f.svc.UpdateEntry(ctx, draft.ID, &EntryInput{ProductID: &f.beef.ID})
	require.NoError(t, err)
	require.Equal(t, "Beef Steak", got.Entry.Name)
	require.Equal(t, "Beef", got.Entry.Type)
	require.EqualValues(t, 100000, got.Entry.UnitPrice)

	qty := 1.5
	got, err = f.svc.UpdateEntry(ctx, draft.ID, &EntryInput{Quantity: &qty})
	require.NoError(t, err)
	require.EqualValues(t, 150000, got.Entry.TotalPrice)
}

func TestDraftEntryClearResetsForm(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	qty := 2.0
	_, err := f.svc.UpdateEntry(ctx, draft.ID, &EntryInput{ProductID: &f.beef.ID, Quantity: &qty})
	require.NoError(t, err)

	got, err := f.svc.UpdateEntry(ctx, draft.ID, &EntryInput{ProductID: &uuid.Nil})
	require.NoError(t, err)
	require.Nil(t, got.Entry.ProductID)
	require.Empty(t, got.Entry.Name)
	require.Zero(t, got.Entry.Quantity)
	require.Zero(t, got.Entry.TotalPrice)
}

func TestDraftEntryUnknownProduct(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	missing := uuid.New()
	_, err := f.svc.UpdateEntry(ctx, draft.ID, &EntryInput{ProductID: &missing})
	require.Error(t, err)
}

func TestAddEntryItemRequiresCompleteEntry(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	_, err := f.svc.AddEntryItem(ctx, draft.ID)
	require.Error(t, err, "no product selected")

	_, err = f.svc.UpdateEntry(ctx, draft.ID, &EntryInput{ProductID: &f.beef.ID})
	require.NoError(t, err)
	_, err = f.svc.AddEntryItem(ctx, draft.ID)
	require.Error(t, err, "zero quantity")

	got, err := f.svc.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	require.Empty(t, got.Items)
}

func TestDraftTotalsAcrossAddAndRemove(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	got := f.addItem(t, draft.ID, f.beef.ID, 2.0) // 2000.00
	require.EqualValues(t, 200000, got.SubTotal)
	require.EqualValues(t, 24000, got.Tax)
	require.EqualValues(t, 224000, got.Total)

	got = f.addItem(t, draft.ID, f.goat.ID, 0.4) // 500.00
	require.EqualValues(t, 250000, got.SubTotal)
	require.EqualValues(t, 30000, got.Tax)
	require.EqualValues(t, 280000, got.Total)

	got, err := f.svc.RemoveItem(ctx, draft.ID, 0)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Goat Ribs", got.Items[0].Name)
	require.EqualValues(t, 50000, got.SubTotal)
	require.EqualValues(t, 6000, got.Tax)
	require.EqualValues(t, 56000, got.Total)
}

func TestUpdateCustomerTaxPercentRecomputesEagerly(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)
	f.addItem(t, draft.ID, f.beef.ID, 1.0)

	pct := 16.0
	got, err := f.svc.UpdateCustomer(ctx, draft.ID, &CustomerInput{TaxPercent: &pct})
	require.NoError(t, err)
	require.EqualValues(t, 16000, got.Tax)
	require.EqualValues(t, 116000, got.Total)

	bad := -1.0
	_, err = f.svc.UpdateCustomer(ctx, draft.ID, &CustomerInput{TaxPercent: &bad})
	require.Error(t, err)
}

func TestSyncEntryWeightAppliesReading(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	_, err := f.svc.UpdateEntry(ctx, draft.ID, &EntryInput{ProductID: &f.beef.ID})
	require.NoError(t, err)

	f.scale.reading = &scale.Reading{Weight: 1.234}
	res, err := f.svc.SyncEntryWeight(ctx, draft.ID)
	require.NoError(t, err)
	require.True(t, res.Applied)
	require.Equal(t, 1.234, res.Draft.Entry.Quantity)
	require.EqualValues(t, 123400, res.Draft.Entry.TotalPrice)
}

func TestSyncEntryWeightNoUsableValueLeavesQuantity(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	qty := 0.5
	_, err := f.svc.UpdateEntry(ctx, draft.ID, &EntryInput{ProductID: &f.beef.ID, Quantity: &qty})
	require.NoError(t, err)

	f.scale.reading = nil
	res, err := f.svc.SyncEntryWeight(ctx, draft.ID)
	require.NoError(t, err)
	require.False(t, res.Applied)
	require.Equal(t, 0.5, res.Draft.Entry.Quantity)
}

func TestSyncEntryWeightScaleFailure(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	f.scale.err = errors.New("device unplugged")
	_, err := f.svc.SyncEntryWeight(ctx, draft.ID)
	require.Error(t, err)
}

func TestMutationsRefreshInvoicePreview(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)
	f.addItem(t, draft.ID, f.beef.ID, 1.0)

	handle, err := f.svc.Artifact(ctx, draft.ID)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", handle.ContentType)
	require.True(t, strings.HasPrefix(string(handle.Data), "%PDF"))

	// A second mutation replaces the handle instead of piling up.
	f.addItem(t, draft.ID, f.goat.ID, 1.0)
	require.Equal(t, 1, f.artifacts.Len())

	next, err := f.svc.Artifact(ctx, draft.ID)
	require.NoError(t, err)
	require.NotEqual(t, handle.Token, next.Token)
}

func TestSubmitPersistsAndResetsDraft(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	name := "Alice Wanjiru"
	mobile := "0712345678"
	_, err := f.svc.UpdateCustomer(ctx, draft.ID, &CustomerInput{CustomerName: &name, CustomerMobile: &mobile})
	require.NoError(t, err)
	f.addItem(t, draft.ID, f.beef.ID, 2.0)
	f.addItem(t, draft.ID, f.goat.ID, 0.4)

	order, err := f.svc.Submit(ctx, draft.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	require.NotEqual(t, entity.DraftOrderNumber, order.OrderNumber)
	require.Equal(t, "Alice Wanjiru", order.CustomerName)
	require.Len(t, order.Items, 2)
	require.EqualValues(t, 250000, order.SubTotal)
	require.EqualValues(t, 30000, order.Tax)
	require.EqualValues(t, 280000, order.Total)

	// Session survives with the same id but an empty state.
	got, err := f.svc.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	require.Equal(t, draft.ID, got.ID)
	require.Empty(t, got.Items)
	require.Empty(t, got.CustomerName)
	require.Equal(t, entity.DraftOrderNumber, got.OrderNumber)
	require.Zero(t, got.Total)

	// The preview artifact is gone with the submitted draft.
	_, err = f.svc.Artifact(ctx, draft.ID)
	require.Error(t, err)
}

func TestSubmitFailureLeavesDraftIntact(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	name := "Bob Otieno"
	_, err := f.svc.UpdateCustomer(ctx, draft.ID, &CustomerInput{CustomerName: &name})
	require.NoError(t, err)
	f.addItem(t, draft.ID, f.beef.ID, 1.0)

	f.orders.createErr = errors.New("connection refused")
	_, err = f.svc.Submit(ctx, draft.ID)
	require.Error(t, err)

	got, err := f.svc.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Bob Otieno", got.CustomerName)
	require.EqualValues(t, 100000, got.SubTotal)
}

func TestSubmitRejectsEmptyDraft(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)

	name := "Carol"
	_, err := f.svc.UpdateCustomer(ctx, draft.ID, &CustomerInput{CustomerName: &name})
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, draft.ID)
	require.Error(t, err)
}

func TestDeleteDraftReleasesArtifact(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft := f.svc.CreateDraft(ctx)
	f.addItem(t, draft.ID, f.beef.ID, 1.0)
	require.Equal(t, 1, f.artifacts.Len())

	require.NoError(t, f.svc.DeleteDraft(ctx, draft.ID))
	require.Equal(t, 0, f.artifacts.Len())

	_, err := f.svc.GetDraft(ctx, draft.ID)
	require.Error(t, err)
}
