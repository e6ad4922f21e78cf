package orders

import (
	"context"

	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/domain"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
	"github.com/jhoicas/mercado-api/internal/domain/repository"
)

// Caller identidad resuelta por el guard: quién pide y con qué alcance.
type Caller struct {
	UserID   string
	VendorID string
	IsAdmin  bool
}

// canSee indica si el caller tiene acceso a la orden: el cliente dueño,
// el vendedor de la tienda o un admin.
func (c Caller) canSee(o *entity.Order) bool {
	return c.IsAdmin || o.UserID == c.UserID || (c.VendorID != "" && o.VendorID == c.VendorID)
}

// OrderUseCase consulta y gestión de órdenes existentes.
type OrderUseCase struct {
	orderRepo  repository.OrderRepository
	vendorRepo repository.VendorRepository
	userRepo   repository.UserRepository
	receipts   ReceiptGenerator
}

// NewOrderUseCase construye el caso de uso. receipts puede ser nil si el
// comprobante PDF no está habilitado.
func NewOrderUseCase(orderRepo repository.OrderRepository, vendorRepo repository.VendorRepository, userRepo repository.UserRepository, receipts ReceiptGenerator) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, vendorRepo: vendorRepo, userRepo: userRepo, receipts: receipts}
}

// GetByID obtiene una orden si el caller tiene acceso a ella.
// (nil, nil) si no existe; ErrForbidden si existe pero no es suya.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string, caller Caller) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if !caller.canSee(order) {
		return nil, domain.ErrForbidden
	}
	return toOrderResponse(order), nil
}

// List lista órdenes según el alcance del caller: un cliente ve las suyas,
// un vendedor las de su tienda, un admin todas. status filtra opcionalmente.
func (uc *OrderUseCase) List(ctx context.Context, caller Caller, status string, page dto.PageRequest) ([]dto.OrderResponse, *dto.Pagination, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, nil, domain.ErrInvalidInput
	}
	filter := repository.OrderFilter{Status: status}
	switch {
	case caller.IsAdmin:
		// sin restricción
	case caller.VendorID != "":
		filter.VendorID = caller.VendorID
	default:
		filter.UserID = caller.UserID
	}
	list, total, err := uc.orderRepo.List(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return items, dto.NewPagination(page.Page, page.Limit, total), nil
}

// UpdateStatus cambia el estado de una orden (vendedor de la tienda o admin).
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id string, caller Caller, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if !caller.IsAdmin && (caller.VendorID == "" || order.VendorID != caller.VendorID) {
		return nil, domain.ErrForbidden
	}
	if err := uc.orderRepo.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	order.Status = in.Status
	return toOrderResponse(order), nil
}

// Delete elimina una orden (solo admin; borrado duro).
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.Delete(ctx, id)
}

// Receipt genera el comprobante PDF de una orden accesible para el caller.
func (uc *OrderUseCase) Receipt(ctx context.Context, id string, caller Caller) ([]byte, error) {
	if uc.receipts == nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !caller.canSee(order) {
		return nil, domain.ErrForbidden
	}
	storeName := order.VendorID
	if vendor, err := uc.vendorRepo.GetByID(ctx, order.VendorID); err == nil && vendor != nil {
		storeName = vendor.StoreName
	}
	customerName := order.UserID
	if user, err := uc.userRepo.GetByID(ctx, order.UserID); err == nil && user != nil {
		customerName = user.Name
	}
	return uc.receipts.Generate(order, storeName, customerName)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return &dto.OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		VendorID:  o.VendorID,
		Items:     items,
		Status:    o.Status,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
