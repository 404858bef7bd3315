package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts every API route on the Echo instance
func RegisterRoutes(e *echo.Echo, accountHandler *AccountHandler, customerHandler *CustomerHandler, healthHandler *HealthCheckHandler) {
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	accounts := api.Group("/accounts")
	accounts.GET("", accountHandler.GetAccountsPaginated)
	accounts.GET("/all", accountHandler.GetAllAccounts)
	accounts.POST("/transfer", accountHandler.Transfer)
	accounts.GET("/:accountId", accountHandler.GetAccount)
	accounts.GET("/:accountId/operations", accountHandler.GetAccountOperations)
	accounts.GET("/:accountId/history", accountHandler.GetAccountHistory)
	accounts.POST("/:accountId/debit", accountHandler.Debit)
	accounts.POST("/:accountId/credit", accountHandler.Credit)
	accounts.POST("/:customerId/current-account", accountHandler.CreateCurrentAccount)
	accounts.POST("/:customerId/saving-account", accountHandler.CreateSavingAccount)

	customers := api.Group("/customers")
	customers.GET("", customerHandler.GetCustomersPaginated)
	customers.GET("/all", customerHandler.GetAllCustomers)
	customers.POST("", customerHandler.CreateCustomer)
	customers.GET("/:customerId", customerHandler.GetCustomer)
	customers.GET("/:customerId/details", customerHandler.GetFullCustomerData)
	customers.PATCH("/:customerId", customerHandler.UpdateCustomer)
	customers.DELETE("/:customerId", customerHandler.DeleteCustomer)
}
