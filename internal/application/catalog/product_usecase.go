package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/domain"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
	"github.com/jhoicas/mercado-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo.
// Las escrituras pertenecen al vendedor dueño (o a un admin); el handler pasa
// asAdmin según los roles del token.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, vendorRepo repository.VendorRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, vendorRepo: vendorRepo}
}

// Create publica un producto de la tienda vendorID. La tienda debe estar approved.
func (uc *ProductUseCase) Create(ctx context.Context, vendorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Title == "" || in.Price.LessThan(decimal.Zero) || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrVendorNotFound
	}
	if !vendor.IsApproved() {
		return nil, domain.ErrVendorNotApproved
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		VendorID:    vendorID,
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Images:      in.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Solo el vendedor dueño (o admin) puede hacerlo.
func (uc *ProductUseCase) Update(ctx context.Context, id, callerVendorID string, asAdmin bool, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if !asAdmin && product.VendorID != callerVendorID {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if len(in.Images) > 0 {
		product.Images = in.Images
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros (vendor, category exactos; q substring en
// título) y paginación 1-indexada.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter, page dto.PageRequest) ([]dto.ProductResponse, *dto.Pagination, error) {
	list, total, err := uc.productRepo.List(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, dto.NewPagination(page.Page, page.Limit, total), nil
}

// Delete elimina un producto. Solo el vendedor dueño (o admin).
func (uc *ProductUseCase) Delete(ctx context.Context, id, callerVendorID string, asAdmin bool) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !asAdmin && product.VendorID != callerVendorID {
		return domain.ErrForbidden
	}
	return uc.productRepo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		VendorID:    p.VendorID,
		CategoryID:  p.CategoryID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Images:      p.Images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
