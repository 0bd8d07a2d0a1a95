package controllers

import (
	"net/http"
	"strconv"

	"payment-service/models"
	"payment-service/services"

	"github.com/gin-gonic/gin"
)

// PaymentController handles HTTP requests for payment operations.
type PaymentController struct {
	paymentService services.PaymentService
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(svc services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: svc}
}

// ListPayments handles GET /payments
func (pc *PaymentController) ListPayments(ctx *gin.Context) {
	payments, svcErr := pc.paymentService.List(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"payments": payments})
}

// GetPayment handles GET /payments/:id
func (pc *PaymentController) GetPayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	payment, svcErr := pc.paymentService.Get(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, payment)
}

// ListByAppointment handles GET /payments/appointment/:appointmentId
func (pc *PaymentController) ListByAppointment(ctx *gin.Context) {
	appointmentID, ok := parseIDParam(ctx, "appointmentId")
	if !ok {
		return
	}

	payments, svcErr := pc.paymentService.ListByAppointment(ctx.Request.Context(), appointmentID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"payments": payments})
}

// ListByStatus handles GET /payments/status/:status
func (pc *PaymentController) ListByStatus(ctx *gin.Context) {
	status := ctx.Param("status")
	if status == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	payments, svcErr := pc.paymentService.ListByStatus(ctx.Request.Context(), status)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"payments": payments})
}

// CreatePayment handles POST /payments
func (pc *PaymentController) CreatePayment(ctx *gin.Context) {
	var req models.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	payment, svcErr := pc.paymentService.Create(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, payment)
}

// UpdatePayment handles PUT /payments/:id
func (pc *PaymentController) UpdatePayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	payment, svcErr := pc.paymentService.Update(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, payment)
}

// DeletePayment handles DELETE /payments/:id
func (pc *PaymentController) DeletePayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if svcErr := pc.paymentService.Delete(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// parseIDParam extracts a positive numeric path parameter.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
