package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Enumerations
const (
	RoleSuperadmin UserRole = "superadmin"
	RoleManager    UserRole = "manager"
	RoleUser       UserRole = "user"

	ChargeWith ChargeType = "withCharge"
	ChargeNone ChargeType = "noCharge"

	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
	ActionCreateUser     = "CREATE_USER"
	ActionUpdateUser     = "UPDATE_USER"
	ActionDeleteUser     = "DELETE_USER"
	ActionChangePassword = "CHANGE_PASSWORD"
	ActionCreateSale     = "CREATE_SALE"
	ActionCreateCost     = "CREATE_COST"
	ActionCreateDriver   = "CREATE_DRIVER"
	ActionCreateCostType = "CREATE_COST_TYPE"
)

type UserRole string
type ChargeType string

// User is an account row in the Users sheet. TotalDue is the running due
// balance and must only change through the sales ledger's delta path.
type User struct {
	ID          string
	Name        string
	Mobile      string
	Password    string // bcrypt digest
	Role        UserRole
	Image       string
	NIDNo       string
	DateOfBirth string
	TotalDue    decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuthUser is the identity carried inside a bearer token.
type AuthUser struct {
	ID     string
	Name   string
	Mobile string
	Role   UserRole
}

// Sale records one transaction. TotalDue is a snapshot of the owning user's
// balance immediately after this sale's delta was applied; it is never
// recomputed later.
type Sale struct {
	ID            string
	UserID        string
	UserName      string
	DriverID      string
	DriverName    string
	ChargeType    ChargeType
	ChargeAmount  decimal.Decimal
	DueAmount     decimal.Decimal
	DueCollection decimal.Decimal
	TotalDue      decimal.Decimal
	CreatedAt     time.Time
	CreatedBy     string
}

type Cost struct {
	ID          string
	Type        string
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
	CreatedBy   string
}

type Driver struct {
	ID        string
	Name      string
	Mobile    string
	CreatedAt time.Time
}

type CostType struct {
	ID       string
	Name     string
	IsActive bool
}

// ActivityLog rows are append-only; nothing updates or deletes them.
type ActivityLog struct {
	ID        string
	UserID    string
	UserName  string
	Action    string
	Details   string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

type DashboardStats struct {
	TotalSales decimal.Decimal
	TotalDue   decimal.Decimal
	TotalCost  decimal.Decimal
	TotalCash  decimal.Decimal
	TotalAuto  int
	TotalUsers int
}
