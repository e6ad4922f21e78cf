package orders_test

import (
	"context"
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

// listOrderRepo fake con List filtrado, para probar el alcance por rol.
type listOrderRepo struct {
	orders []*entity.Order
}

func (r *listOrderRepo) Create(_ context.Context, o *entity.Order) error {
	cp := *o
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *listOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *listOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
		}
	}
	return nil
}

func (r *listOrderRepo) Delete(_ context.Context, id string) error {
	kept := r.orders[:0]
	for _, o := range r.orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	r.orders = kept
	return nil
}

func (r *listOrderRepo) List(_ context.Context, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int, error) {
	var matched []*entity.Order
	for _, o := range r.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.VendorID != "" && o.VendorID != filter.VendorID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		cp := *o
		matched = append(matched, &cp)
	}
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func seedOrders(t *testing.T) *listOrderRepo {
	t.Helper()
	repo := &listOrderRepo{}
	total := decimal.RequireFromString("10.00")
	for _, o := range []*entity.Order{
		{ID: "o1", UserID: "u1", VendorID: "v1", Status: entity.OrderPending, Total: total},
		{ID: "o2", UserID: "u1", VendorID: "v2", Status: entity.OrderShipped, Total: total},
		{ID: "o3", UserID: "u2", VendorID: "v1", Status: entity.OrderPending, Total: total},
	} {
		require.NoError(t, repo.Create(context.Background(), o))
	}
	return repo
}

func page10() dto.PageRequest {
	p := dto.PageRequest{}
	p.Normalize(10)
	return p
}

func TestOrderList_AlcancePorRol(t *testing.T) {
	repo := seedOrders(t)
	uc := orders.NewOrderUseCase(repo, &memVendorRepo{store: newMemStore()}, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		caller orders.Caller
		ids    []string
	}{
		{"cliente ve solo las suyas", orders.Caller{UserID: "u1"}, []string{"o1", "o2"}},
		{"vendedor ve las de su tienda", orders.Caller{UserID: "u-owner", VendorID: "v1"}, []string{"o1", "o3"}},
		{"admin ve todas", orders.Caller{UserID: "admin", IsAdmin: true}, []string{"o1", "o2", "o3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, pagination, err := uc.List(ctx, tc.caller, "", page10())
			require.NoError(t, err)
			var ids []string
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.ElementsMatch(t, tc.ids, ids)
			assert.Equal(t, len(tc.ids), pagination.Total)
		})
	}
}

func TestOrderList_FiltroPorEstado(t *testing.T) {
	repo := seedOrders(t)
	uc := orders.NewOrderUseCase(repo, nil, nil, nil)
	ctx := context.Background()

	items, _, err := uc.List(ctx, orders.Caller{UserID: "u1"}, entity.OrderShipped, page10())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "o2", items[0].ID)

	_, _, err = uc.List(ctx, orders.Caller{UserID: "u1"}, "volando", page10())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderGetByID_ControlDeAcceso(t *testing.T) {
	repo := seedOrders(t)
	uc := orders.NewOrderUseCase(repo, nil, nil, nil)
	ctx := context.Background()

	// El dueño y el vendedor de la tienda la ven; otro cliente no.
	out, err := uc.GetByID(ctx, "o1", orders.Caller{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "o1", out.ID)

	_, err = uc.GetByID(ctx, "o1", orders.Caller{UserID: "u-owner", VendorID: "v1"})
	assert.NoError(t, err)

	_, err = uc.GetByID(ctx, "o1", orders.Caller{UserID: "u2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err = uc.GetByID(ctx, "no-existe", orders.Caller{UserID: "u1", IsAdmin: true})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestOrderUpdateStatus_SoloVendedorOAdmin(t *testing.T) {
	repo := seedOrders(t)
	uc := orders.NewOrderUseCase(repo, nil, nil, nil)
	ctx := context.Background()

	// El cliente dueño no puede cambiar el estado.
	_, err := uc.UpdateStatus(ctx, "o1", orders.Caller{UserID: "u1"}, dto.UpdateOrderRequest{Status: entity.OrderProcessing})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Un vendedor de otra tienda tampoco.
	_, err = uc.UpdateStatus(ctx, "o1", orders.Caller{UserID: "x", VendorID: "v2"}, dto.UpdateOrderRequest{Status: entity.OrderProcessing})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.UpdateStatus(ctx, "o1", orders.Caller{UserID: "u-owner", VendorID: "v1"}, dto.UpdateOrderRequest{Status: entity.OrderProcessing})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, out.Status)

	_, err = uc.UpdateStatus(ctx, "o1", orders.Caller{IsAdmin: true}, dto.UpdateOrderRequest{Status: "perdida"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderDelete(t *testing.T) {
	repo := seedOrders(t)
	uc := orders.NewOrderUseCase(repo, nil, nil, nil)
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, "o1"))
	assert.ErrorIs(t, uc.Delete(ctx, "o1"), domain.ErrNotFound)
}
