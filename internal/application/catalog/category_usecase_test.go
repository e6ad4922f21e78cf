package catalog_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-api/internal/application/catalog"
	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
)

// fakeCategoryRepo repositorio en memoria con la misma semántica del adaptador
// postgres: ListActive filtra inactivas, ordena por nombre y cuenta solo activas.
type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) ListActive(_ context.Context, limit, offset int) ([]*entity.Category, int, error) {
	var active []*entity.Category
	for _, c := range r.categories {
		if c.IsActive {
			cp := *c
			active = append(active, &cp)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	total := len(active)
	if offset >= len(active) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(active) {
		end = len(active)
	}
	return active[offset:end], total, nil
}

// Propiedad: con categorías A(activa), B(inactiva), C(activa), el listado con
// paginación por defecto devuelve exactamente {A, C} ordenadas por nombre y
// pagination.total == 2.
func TestListActive_SoloActivasOrdenadasPorNombre(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepo()
	uc := catalog.NewCategoryUseCase(repo)

	// Creadas en desorden a propósito para verificar el sort.
	for _, tc := range []struct {
		name   string
		active bool
	}{
		{"C", true},
		{"A", true},
		{"B", false},
	} {
		_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: tc.name, IsActive: &tc.active})
		require.NoError(t, err)
	}

	page := dto.PageRequest{}
	page.Normalize(50)
	items, pagination, err := uc.ListActive(ctx, page)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "C", items[1].Name)
	assert.Equal(t, 2, pagination.Total)
	assert.Equal(t, 1, pagination.TotalPages)
	assert.Equal(t, 1, pagination.Page)
}

func TestUpdate_DesactivarSacaDelListado(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepo()
	uc := catalog.NewCategoryUseCase(repo)

	created, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Hogar"})
	require.NoError(t, err)
	require.True(t, created.IsActive, "una categoría nueva nace activa")

	inactive := false
	_, err = uc.Update(ctx, created.ID, dto.UpdateCategoryRequest{IsActive: &inactive})
	require.NoError(t, err)

	page := dto.PageRequest{}
	page.Normalize(50)
	items, pagination, err := uc.ListActive(ctx, page)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0, pagination.Total)
}

func TestGetByID_NoExisteDevuelveNil(t *testing.T) {
	uc := catalog.NewCategoryUseCase(newFakeCategoryRepo())
	out, err := uc.GetByID(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, out)
}
