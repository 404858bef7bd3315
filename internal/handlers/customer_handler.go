package handlers

import (
	"net/http"

	"financial-tracking/internal/dto"
	"financial-tracking/internal/errors"
	"financial-tracking/internal/models"
	"financial-tracking/internal/services"

	"github.com/labstack/echo/v4"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService services.CustomerServiceInterface
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService services.CustomerServiceInterface) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomer registers a new customer
// @Summary Create a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse "Customer created successfully"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 409 {object} errors.ErrorResponse "CUSTOMER_002 - Email already registered"
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req dto.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	customer, err := h.customerService.CreateCustomer(&models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Gender:    req.Gender,
	})
	if err != nil {
		switch err {
		case services.ErrCustomerEmailExists:
			return SendError(c, errors.CustomerAlreadyExists)
		case services.ErrCustomerEmailRequired:
			return SendError(c, errors.ValidationInvalidEmail, errors.WithDetails(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, dto.CustomerResponse{
		Customer: customer,
		Message:  "Customer created successfully",
	})
}

// GetCustomer retrieves a customer by ID
// @Summary Get customer by ID
// @Tags Customers
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Success 200 {object} models.Customer "Customer details"
// @Failure 400 {object} errors.ErrorResponse "CUSTOMER_003 - Invalid customer ID"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Router /customers/{customerId} [get]
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	customerID, err := getUUIDParam(c, "customerId")
	if err != nil {
		return SendError(c, errors.CustomerInvalidID, errors.WithDetails("Invalid customer ID"))
	}

	customer, err := h.customerService.GetCustomerByID(customerID)
	if err != nil {
		if err == services.ErrCustomerNotFound {
			return SendError(c, errors.CustomerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, customer)
}

// GetAllCustomers lists every customer, unpaginated
// @Summary List all customers
// @Tags Customers
// @Produce json
// @Success 200 {object} dto.CustomerListResponse "All customers"
// @Router /customers/all [get]
func (h *CustomerHandler) GetAllCustomers(c echo.Context) error {
	customers, err := h.customerService.GetAllCustomers()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CustomerListResponse{
		Customers: customers,
		Total:     int64(len(customers)),
	})
}

// GetCustomersPaginated lists customers one page at a time
// @Summary List customers (paginated)
// @Tags Customers
// @Produce json
// @Param page query int false "Page number (0-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.CustomerListResponse "Page of customers"
// @Router /customers [get]
func (h *CustomerHandler) GetCustomersPaginated(c echo.Context) error {
	page := getIntParam(c, "page", 0)
	size := getIntParam(c, "size", 10)

	customers, total, err := h.customerService.GetCustomersPage(page, size)
	if err != nil {
		if err == services.ErrInvalidPagination {
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CustomerListResponse{
		Customers: customers,
		Total:     total,
		Page:      page,
		Size:      size,
	})
}

// GetFullCustomerData returns a customer with every account and its ledger
// @Summary Get full customer data
// @Tags Customers
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Success 200 {object} services.CustomerData "Customer with accounts and operations"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Router /customers/{customerId}/details [get]
func (h *CustomerHandler) GetFullCustomerData(c echo.Context) error {
	customerID, err := getUUIDParam(c, "customerId")
	if err != nil {
		return SendError(c, errors.CustomerInvalidID, errors.WithDetails("Invalid customer ID"))
	}

	data, err := h.customerService.GetFullCustomerData(customerID)
	if err != nil {
		if err == services.ErrCustomerNotFound {
			return SendError(c, errors.CustomerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, data)
}

// UpdateCustomer applies a partial update to a customer
// @Summary Update a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Param request body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse "Customer updated successfully"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Failure 409 {object} errors.ErrorResponse "CUSTOMER_002 - Email already registered"
// @Router /customers/{customerId} [patch]
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	customerID, err := getUUIDParam(c, "customerId")
	if err != nil {
		return SendError(c, errors.CustomerInvalidID, errors.WithDetails("Invalid customer ID"))
	}

	var req dto.UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	customer, err := h.customerService.UpdateCustomer(customerID, &models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Gender:    req.Gender,
	})
	if err != nil {
		switch err {
		case services.ErrCustomerNotFound:
			return SendError(c, errors.CustomerNotFound)
		case services.ErrCustomerEmailExists:
			return SendError(c, errors.CustomerAlreadyExists)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, dto.CustomerResponse{
		Customer: customer,
		Message:  "Customer updated successfully",
	})
}

// DeleteCustomer removes a customer together with all accounts and operations
// @Summary Delete a customer
// @Tags Customers
// @Produce json
// @Param customerId path string true "Customer ID (UUID)"
// @Success 200 {object} dto.MessageResponse "Customer deleted successfully"
// @Failure 404 {object} errors.ErrorResponse "CUSTOMER_001 - Customer not found"
// @Router /customers/{customerId} [delete]
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	customerID, err := getUUIDParam(c, "customerId")
	if err != nil {
		return SendError(c, errors.CustomerInvalidID, errors.WithDetails("Invalid customer ID"))
	}

	if err := h.customerService.DeleteCustomer(customerID); err != nil {
		if err == services.ErrCustomerNotFound {
			return SendError(c, errors.CustomerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Customer deleted successfully"})
}
