package orders

import (
	"context"

	"github.com/jhoicas/mercado-api/internal/domain/entity"
	"github.com/jhoicas/mercado-api/internal/domain/repository"
)

// TxRepos repositorios ligados a una misma transacción. Dentro de Run todas
// las operaciones sobre estos repos comparten la tx y se confirman o
// revierten juntas.
type TxRepos struct {
	Products repository.ProductRepository
	Orders   repository.OrderRepository
	Vendors  repository.VendorRepository
}

// TxRunner puerto transaccional. La implementación postgres abre una tx,
// invoca fn con repos ligados a ella y hace commit si fn devuelve nil
// (rollback en caso contrario).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// ReceiptGenerator puerto de generación del comprobante PDF de una orden.
// La implementación maroto vive en infrastructure/pdf.
type ReceiptGenerator interface {
	Generate(order *entity.Order, storeName, customerName string) ([]byte, error)
}
