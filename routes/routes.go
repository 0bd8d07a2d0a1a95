package routes

import (
	"payment-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterPaymentRoutes sets up all payment-related routes.
func RegisterPaymentRoutes(r *gin.Engine, pc *controllers.PaymentController) {
	payments := r.Group("/payments")

	payments.GET("", pc.ListPayments)
	payments.GET("/:id", pc.GetPayment)
	payments.GET("/appointment/:appointmentId", pc.ListByAppointment)
	payments.GET("/status/:status", pc.ListByStatus)
	payments.POST("", pc.CreatePayment)
	payments.PUT("/:id", pc.UpdatePayment)
	payments.DELETE("/:id", pc.DeletePayment)
}
