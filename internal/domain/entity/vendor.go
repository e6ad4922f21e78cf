package entity

import "time"

// Etapas del ciclo de vida de un Vendor.
const (
	StageApplied     = "applied"
	StageUnderReview = "under_review"
	StageApproved    = "approved"
	StageRejected    = "rejected"
	StageSuspended   = "suspended"
)

// VendorPolicies políticas de la tienda.
type VendorPolicies struct {
	ShippingPolicy string `json:"shipping_policy"`
	ReturnPolicy   string `json:"return_policy"`
}

// Vendor es el perfil de tienda de un usuario. Forma canónica única:
// no guarda credencial propia (el login de vendedor autentica la contraseña
// del User dueño) y OwnerUserID tiene constraint de unicidad — un perfil
// de tienda por usuario.
type Vendor struct {
	ID             string
	OwnerUserID    string // único
	StoreName      string
	Description    string
	SupportEmail   string
	LifecycleStage string // applied, under_review, approved, rejected, suspended
	Policies       VendorPolicies
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsApproved indica si la tienda puede operar (publicar productos, recibir órdenes).
func (v *Vendor) IsApproved() bool {
	return v.LifecycleStage == StageApproved
}

// validStageTransitions transiciones permitidas del ciclo de vida.
var validStageTransitions = map[string][]string{
	StageApplied:     {StageUnderReview, StageApproved, StageRejected},
	StageUnderReview: {StageApproved, StageRejected},
	StageApproved:    {StageSuspended},
	StageRejected:    {StageUnderReview},
	StageSuspended:   {StageApproved},
}

// CanTransitionTo valida una transición de etapa.
func (v *Vendor) CanTransitionTo(stage string) bool {
	for _, s := range validStageTransitions[v.LifecycleStage] {
		if s == stage {
			return true
		}
	}
	return false
}

// ValidStage indica si el valor es una etapa conocida.
func ValidStage(stage string) bool {
	switch stage {
	case StageApplied, StageUnderReview, StageApproved, StageRejected, StageSuspended:
		return true
	}
	return false
}
