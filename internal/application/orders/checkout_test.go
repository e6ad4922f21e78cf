package orders_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/application/orders"
	"github.com/jhoicas/mercado-api/internal/domain"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
	"github.com/jhoicas/mercado-api/internal/domain/repository"
)

// memStore estado compartido en memoria con la misma semántica transaccional
// del adaptador postgres: Run serializa las transacciones con un lock, toma un
// snapshot al entrar y lo restaura si fn devuelve error (rollback).
type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	vendors  map[string]*entity.Vendor
	orders   map[string]*entity.Order
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		vendors:  make(map[string]*entity.Vendor),
		orders:   make(map[string]*entity.Order),
	}
}

func (s *memStore) snapshot() (map[string]*entity.Product, map[string]*entity.Order) {
	products := make(map[string]*entity.Product, len(s.products))
	for k, v := range s.products {
		cp := *v
		products[k] = &cp
	}
	ords := make(map[string]*entity.Order, len(s.orders))
	for k, v := range s.orders {
		cp := *v
		ords[k] = &cp
	}
	return products, ords
}

func (s *memStore) Run(_ context.Context, fn func(repos orders.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, ords := s.snapshot()
	err := fn(orders.TxRepos{
		Products: &memProductRepo{store: s},
		Orders:   &memOrderRepo{store: s},
		Vendors:  &memVendorRepo{store: s},
	})
	if err != nil {
		s.products = products
		s.orders = ords
	}
	return err
}

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.store.products, id)
	return nil
}

func (r *memProductRepo) List(_ context.Context, _ repository.ProductFilter, _, _ int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

// DecrementStock replica el UPDATE condicional: descuenta solo si alcanza.
func (r *memProductRepo) DecrementStock(_ context.Context, productID string, qty int) (bool, error) {
	p, ok := r.store.products[productID]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

type memOrderRepo struct{ store *memStore }

func (r *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	cp := *o
	r.store.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	if o, ok := r.store.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id string) error {
	delete(r.store.orders, id)
	return nil
}

func (r *memOrderRepo) List(_ context.Context, _ repository.OrderFilter, _, _ int) ([]*entity.Order, int, error) {
	return nil, 0, nil
}

type memVendorRepo struct{ store *memStore }

func (r *memVendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	cp := *v
	r.store.vendors[v.ID] = &cp
	return nil
}

func (r *memVendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	v, ok := r.store.vendors[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *memVendorRepo) GetByOwnerUser(_ context.Context, _ string) (*entity.Vendor, error) {
	return nil, nil
}

func (r *memVendorRepo) Update(_ context.Context, v *entity.Vendor) error {
	cp := *v
	r.store.vendors[v.ID] = &cp
	return nil
}

func (r *memVendorRepo) Delete(_ context.Context, id string) error {
	delete(r.store.vendors, id)
	return nil
}

func (r *memVendorRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Vendor, int, error) {
	return nil, 0, nil
}

func seedStore(t *testing.T, stage string, stock int) *memStore {
	t.Helper()
	store := newMemStore()
	store.vendors["v1"] = &entity.Vendor{ID: "v1", OwnerUserID: "u-owner", StoreName: "Tienda Uno", LifecycleStage: stage}
	store.products["p1"] = &entity.Product{
		ID:       "p1",
		VendorID: "v1",
		Title:    "Lámpara",
		Price:    decimal.RequireFromString("25.50"),
		Stock:    stock,
	}
	return store
}

func TestCheckout_DescuentaStockYSnapshotDePrecio(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, entity.StageApproved, 5)
	uc := orders.NewCheckoutUseCase(store)

	out, err := uc.Checkout(ctx, "u1", dto.CreateOrderRequest{
		VendorID: "v1",
		Items:    []dto.CreateOrderItem{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", out.UserID)
	assert.Equal(t, entity.OrderPending, out.Status)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Lámpara", out.Items[0].Title)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.RequireFromString("25.50")))
	assert.True(t, out.Total.Equal(decimal.RequireFromString("51.00")))
	assert.Equal(t, 3, store.products["p1"].Stock)

	// El precio del producto cambia después: la orden conserva el snapshot.
	store.products["p1"].Price = decimal.RequireFromString("99.99")
	saved := store.orders[out.ID]
	require.NotNil(t, saved)
	assert.True(t, saved.Items[0].UnitPrice.Equal(decimal.RequireFromString("25.50")))
}

// Propiedad: dos checkouts concurrentes por la última unidad — exactamente uno
// gana; el otro recibe ErrInsufficientStock y el stock nunca queda negativo.
func TestCheckout_ConcurrenciaUltimaUnidad(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, entity.StageApproved, 1)
	uc := orders.NewCheckoutUseCase(store)

	req := dto.CreateOrderRequest{
		VendorID: "v1",
		Items:    []dto.CreateOrderItem{{ProductID: "p1", Quantity: 1}},
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Checkout(ctx, "u1", req)
		}(i)
	}
	wg.Wait()

	var successes, insufficient int
	for _, err := range errs {
		switch err {
		case nil:
			successes++
		case domain.ErrInsufficientStock:
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 0, store.products["p1"].Stock)
	assert.Len(t, store.orders, 1)
}

// Propiedad: si una línea falla por stock, la transacción completa se revierte:
// las líneas anteriores recuperan su stock y no se crea ninguna orden.
func TestCheckout_RollbackSiUnaLineaNoTieneStock(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, entity.StageApproved, 10)
	store.products["p2"] = &entity.Product{
		ID:       "p2",
		VendorID: "v1",
		Title:    "Silla",
		Price:    decimal.RequireFromString("40.00"),
		Stock:    1,
	}
	uc := orders.NewCheckoutUseCase(store)

	_, err := uc.Checkout(ctx, "u1", dto.CreateOrderRequest{
		VendorID: "v1",
		Items: []dto.CreateOrderItem{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 5}, // no alcanza
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, store.products["p1"].Stock, "la primera línea debe revertirse")
	assert.Equal(t, 1, store.products["p2"].Stock)
	assert.Empty(t, store.orders)
}

func TestCheckout_VendedorNoAprobado(t *testing.T) {
	store := seedStore(t, entity.StageApplied, 5)
	uc := orders.NewCheckoutUseCase(store)

	_, err := uc.Checkout(context.Background(), "u1", dto.CreateOrderRequest{
		VendorID: "v1",
		Items:    []dto.CreateOrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrVendorNotApproved)
	assert.Equal(t, 5, store.products["p1"].Stock)
}

func TestCheckout_ProductoDeOtroVendedor(t *testing.T) {
	store := seedStore(t, entity.StageApproved, 5)
	store.vendors["v2"] = &entity.Vendor{ID: "v2", OwnerUserID: "u-other", StoreName: "Tienda Dos", LifecycleStage: entity.StageApproved}
	uc := orders.NewCheckoutUseCase(store)

	_, err := uc.Checkout(context.Background(), "u1", dto.CreateOrderRequest{
		VendorID: "v2",
		Items:    []dto.CreateOrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckout_EntradaInvalida(t *testing.T) {
	store := seedStore(t, entity.StageApproved, 5)
	uc := orders.NewCheckoutUseCase(store)
	ctx := context.Background()

	_, err := uc.Checkout(ctx, "u1", dto.CreateOrderRequest{VendorID: "v1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Checkout(ctx, "u1", dto.CreateOrderRequest{
		VendorID: "v1",
		Items:    []dto.CreateOrderItem{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
