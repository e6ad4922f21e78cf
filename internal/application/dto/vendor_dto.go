package dto

import "time"

// VendorRegisterRequest registro de vendedor en un paso: crea el User dueño
// y el perfil Vendor en etapa applied.
type VendorRegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	StoreName    string `json:"storeName"`
	Description  string `json:"description"`
	SupportEmail string `json:"supportEmail"`
}

// VendorApplyRequest solicitud de tienda de un usuario ya autenticado
// (apply y become-a-vendor).
type VendorApplyRequest struct {
	StoreName      string `json:"storeName"`
	Description    string `json:"description"`
	SupportEmail   string `json:"supportEmail"`
	ShippingPolicy string `json:"shippingPolicy"`
	ReturnPolicy   string `json:"returnPolicy"`
}

// UpdateVendorRequest actualización parcial del perfil; LifecycleStage solo
// lo cambia un admin y pasa por la validación de transiciones.
type UpdateVendorRequest struct {
	StoreName      *string `json:"storeName"`
	Description    *string `json:"description"`
	SupportEmail   *string `json:"supportEmail"`
	ShippingPolicy *string `json:"shippingPolicy"`
	ReturnPolicy   *string `json:"returnPolicy"`
	LifecycleStage *string `json:"lifecycleStage"`
}

// VendorResponse salida de un perfil de tienda.
type VendorResponse struct {
	ID             string    `json:"id"`
	OwnerUserID    string    `json:"ownerUserId"`
	StoreName      string    `json:"storeName"`
	Description    string    `json:"description"`
	SupportEmail   string    `json:"supportEmail"`
	LifecycleStage string    `json:"lifecycleStage"`
	ShippingPolicy string    `json:"shippingPolicy"`
	ReturnPolicy   string    `json:"returnPolicy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CheckEmailResponse disponibilidad de un email para registro de vendedor.
type CheckEmailResponse struct {
	Email     string `json:"email"`
	Available bool   `json:"available"`
}
