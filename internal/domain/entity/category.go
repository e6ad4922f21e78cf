package entity

import "time"

// Category categoría plana para etiquetar productos. La visibilidad se maneja
// con IsActive (soft), no con borrado.
type Category struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
