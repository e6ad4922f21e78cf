package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mercado-api/internal/domain"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
	"github.com/jhoicas/mercado-api/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL (usable con pool o tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador de persistencia para vendedores. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

const vendorColumns = `id, owner_user_id, store_name, description, support_email, lifecycle_stage, shipping_policy, return_policy, created_at, updated_at`

// Create persiste un perfil de tienda. owner_user_id único (23505 -> ErrDuplicate).
func (r *VendorRepo) Create(ctx context.Context, vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, owner_user_id, store_name, description, support_email, lifecycle_stage, shipping_policy, return_policy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		vendor.ID, vendor.OwnerUserID, vendor.StoreName, vendor.Description, vendor.SupportEmail,
		vendor.LifecycleStage, vendor.Policies.ShippingPolicy, vendor.Policies.ReturnPolicy,
		vendor.CreatedAt, vendor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByOwnerUser obtiene el perfil cuyo dueño es userID.
func (r *VendorRepo) GetByOwnerUser(ctx context.Context, userID string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE owner_user_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, userID))
}

// Update actualiza perfil, políticas y etapa.
func (r *VendorRepo) Update(ctx context.Context, vendor *entity.Vendor) error {
	query := `
		UPDATE vendors SET store_name = $2, description = $3, support_email = $4, lifecycle_stage = $5,
			shipping_policy = $6, return_policy = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		vendor.ID, vendor.StoreName, vendor.Description, vendor.SupportEmail,
		vendor.LifecycleStage, vendor.Policies.ShippingPolicy, vendor.Policies.ReturnPolicy,
		vendor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	return nil
}

// Delete elimina un perfil por ID.
func (r *VendorRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	return nil
}

// List lista perfiles con paginación y total; stage filtra por etapa si no es vacío.
func (r *VendorRepo) List(ctx context.Context, stage string, limit, offset int) ([]*entity.Vendor, int, error) {
	where := ``
	args := []any{}
	if stage != "" {
		where = ` WHERE lifecycle_stage = $1`
		args = append(args, stage)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM vendors`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vendors: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+vendorColumns+` FROM vendors%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.OwnerUserID, &v.StoreName, &v.Description, &v.SupportEmail,
			&v.LifecycleStage, &v.Policies.ShippingPolicy, &v.Policies.ReturnPolicy,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, &v)
	}
	return list, total, rows.Err()
}

func (r *VendorRepo) scanOne(row pgx.Row) (*entity.Vendor, error) {
	var v entity.Vendor
	err := row.Scan(&v.ID, &v.OwnerUserID, &v.StoreName, &v.Description, &v.SupportEmail,
		&v.LifecycleStage, &v.Policies.ShippingPolicy, &v.Policies.ReturnPolicy,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}
