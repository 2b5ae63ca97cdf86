package routes

import (
	"project_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing         = "/ping"
	PathProjects     = "/projects/:project_id"
	PathInvoices     = "/invoices"
	PathPayments     = "/payments"
	PathEstimates    = "/estimates"
	PathChangeOrders = "/change-orders"
	PathBlueprints   = "/blueprints"
)

// Handlers groups every HTTP handler mounted under /v1.
type Handlers struct {
	Invoices     *handlers.InvoiceHandler
	Payments     *handlers.PaymentHandler
	Estimates    *handlers.EstimateHandler
	ChangeOrders *handlers.ChangeOrderHandler
	Finance      *handlers.ProjectFinanceHandler
	Blueprints   *handlers.BlueprintHandler
}

func addBillingRoutes(rg *gin.RouterGroup, h Handlers) {
	projects := rg.Group(PathProjects)
	{
		projects.GET("/invoices", h.Invoices.ListByProject)
		projects.POST("/invoices/estimate", h.Invoices.GenerateFromEstimate)
		projects.POST("/invoices/change-orders", h.Invoices.GenerateFromChangeOrders)
		projects.POST("/invoices/expenses", h.Invoices.GenerateFromExpenses)
		projects.POST("/invoices/time-entries", h.Invoices.GenerateFromTimeEntries)
		projects.POST("/invoices/comprehensive", h.Invoices.GenerateComprehensive)

		projects.GET("/change-orders", h.ChangeOrders.ListByProject)
		projects.GET("/blueprints", h.Blueprints.ListByProject)

		projects.GET("/ledger", h.Finance.Ledger)
		projects.GET("/financial-summary", h.Finance.Summary)
		projects.GET("/reconciliation", h.Finance.Reconcile)
		projects.POST("/adjustments", h.Finance.Adjust)
	}

	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("/:id", h.Invoices.GetByID)
		invoices.PUT("/:id/line-items", h.Invoices.ReplaceLineItems)
		invoices.PATCH("/:id/status", h.Invoices.UpdateStatus)
		invoices.DELETE("/:id", h.Invoices.Delete)
		invoices.POST("/:id/payments", h.Payments.RecordPayment)
		invoices.GET("/:id/payments", h.Payments.ListByInvoice)
	}

	payments := rg.Group(PathPayments)
	{
		payments.GET("/:id", h.Payments.GetByID)
		payments.DELETE("/:id", h.Payments.DeletePayment)
	}

	estimates := rg.Group(PathEstimates)
	{
		estimates.GET("/:id", h.Estimates.GetByID)
		estimates.PATCH("/:id/status", h.Estimates.UpdateStatus)
		estimates.POST("/:id/acceptance/resume", h.Estimates.ResumeAcceptance)
	}

	changeOrders := rg.Group(PathChangeOrders)
	{
		changeOrders.GET("/:id", h.ChangeOrders.GetByID)
		changeOrders.PATCH("/:id/status", h.ChangeOrders.UpdateStatus)
	}

	rg.GET(PathBlueprints+"/:id", h.Blueprints.GetByID)
}
