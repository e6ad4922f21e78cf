// Package orders implementa el checkout transaccional y la gestión de órdenes.
package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/domain"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
)

// CheckoutUseCase crea órdenes descontando stock de forma atómica.
type CheckoutUseCase struct {
	tx TxRunner
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(tx TxRunner) *CheckoutUseCase {
	return &CheckoutUseCase{tx: tx}
}

// Checkout crea una orden para userID en una sola transacción:
//  1. El vendedor debe existir y estar approved.
//  2. Cada producto debe existir, pertenecer al vendedor y tener stock.
//  3. El descuento de stock es condicional: si dos checkouts compiten por la
//     última unidad, exactamente uno gana; el otro recibe ErrInsufficientStock
//     y no deja rastro (rollback completo).
//  4. Título y precio unitario se capturan como snapshot al momento de la compra.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.VendorID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var order *entity.Order
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		vendor, err := repos.Vendors.GetByID(ctx, in.VendorID)
		if err != nil {
			return err
		}
		if vendor == nil {
			return domain.ErrVendorNotFound
		}
		if !vendor.IsApproved() {
			return domain.ErrVendorNotApproved
		}

		now := time.Now()
		order = &entity.Order{
			ID:        uuid.New().String(),
			UserID:    userID,
			VendorID:  in.VendorID,
			Status:    entity.OrderPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, line := range in.Items {
			product, err := repos.Products.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.VendorID != in.VendorID {
				return domain.ErrNotFound
			}
			ok, err := repos.Products.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrInsufficientStock
			}
			order.Items = append(order.Items, entity.OrderItem{
				ProductID: product.ID,
				Title:     product.Title,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}
		order.Total = order.ComputeTotal()
		return repos.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", order.ID).
		Str("user_id", userID).
		Str("vendor_id", in.VendorID).
		Str("total", order.Total.String()).
		Msg("orden creada")
	return toOrderResponse(order), nil
}
