package model

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// SignupReq represents the signup payload
// swagger:model SignupReq
type SignupReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin customer ADMIN CUSTOMER"`
}

// SigninReq represents the signin payload
// swagger:model SigninReq
type SigninReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
