package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleGuest  Role = "guest"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:140" json:"name"`
	Email     string    `gorm:"size:140;uniqueIndex" json:"email"`
	Role      Role      `gorm:"type:varchar(10);default:'user'" json:"role"`
	Image     Image     `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Principal is the authenticated caller as established by the auth
// middleware. Core logic trusts it without re-verifying.
type Principal struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  Role
}

// Action names a capability a caller may hold.
type Action string

const (
	ActionBrowse        Action = "browse"
	ActionPlaceOrder    Action = "place_order"
	ActionWriteReview   Action = "write_review"
	ActionManageCatalog Action = "manage_catalog"
	ActionManageOrders  Action = "manage_orders"
	ActionExportCatalog Action = "export_catalog"
)

// Allow is the capability check: a pure function of the principal and the
// requested action, no ambient role tables.
func Allow(p Principal, a Action) bool {
	switch a {
	case ActionBrowse:
		return true
	case ActionPlaceOrder, ActionWriteReview:
		return p.Role == RoleUser || p.Role == RoleAdmin || p.Role == RoleEditor
	case ActionManageCatalog, ActionManageOrders:
		return p.Role == RoleAdmin || p.Role == RoleEditor
	case ActionExportCatalog:
		return p.Role == RoleAdmin
	}
	return false
}
