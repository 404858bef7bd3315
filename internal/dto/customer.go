package dto

import "financial-tracking/internal/models"

// CreateCustomerRequest is the payload for registering a customer
type CreateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Gender    string `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE"`
}

// UpdateCustomerRequest carries a partial customer update; empty fields
// are left untouched
type UpdateCustomerRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Gender    string `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE"`
}

// CustomerResponse wraps a single customer
type CustomerResponse struct {
	Customer *models.Customer `json:"customer"`
	Message  string           `json:"message,omitempty"`
}

// CustomerListResponse is a paginated list of customers
type CustomerListResponse struct {
	Customers []models.Customer `json:"customers"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Size      int               `json:"size"`
}
