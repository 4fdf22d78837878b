package models

import "time"

// Customer is an account row. The password digest is produced by an opaque
// one-way digest collaborator; the core never inspects it.
type Customer struct {
	ID             int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName       string     `json:"full_name" gorm:"type:varchar(100);not null"`
	Email          string     `json:"email" gorm:"type:varchar(100);not null;uniqueIndex"`
	Phone          string     `json:"phone" gorm:"type:varchar(20)"`
	Address        *string    `json:"address,omitempty" gorm:"type:varchar(200)"`
	PasswordDigest string     `json:"-" gorm:"type:varchar(100);not null"`
	RegisteredAt   *time.Time `json:"registered_at,omitempty" gorm:"autoCreateTime"`
}

func (Customer) TableName() string {
	return "customers"
}

// AccountRole assigns at most one active role per account. Absence implies
// the default role.
type AccountRole struct {
	AccountID int64  `json:"account_id" gorm:"primaryKey"`
	RoleName  string `json:"role_name" gorm:"type:varchar(30);not null"`
}

func (AccountRole) TableName() string {
	return "account_roles"
}

type RegisterRequest struct {
	FullName string  `json:"full_name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email,max=100"`
	Phone    string  `json:"phone" validate:"required,max=20"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

type UpdateProfileRequest struct {
	FullName string  `json:"full_name" validate:"required,max=100"`
	Phone    string  `json:"phone" validate:"required,max=20"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=200"`
}

type ChangeRoleRequest struct {
	RoleName string `json:"role_name" validate:"required,max=30"`
}

// UserOverview is one row of the admin user listing, with aggregate counts
// pulled from the order and audit tables.
type UserOverview struct {
	AccountID       int64      `json:"account_id"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Address         *string    `json:"address,omitempty"`
	RegisteredAt    *time.Time `json:"registered_at,omitempty"`
	RoleName        string     `json:"role_name"`
	TotalOrders     int        `json:"total_orders"`
	TotalActivities int        `json:"total_activities"`
}
