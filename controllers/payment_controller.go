package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shoppit/gateway"
	"shoppit/models"
	"shoppit/services"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// InitiatePayment godoc
// @Summary Initiate payment
// @Description Create a pending transaction for the cart's total plus tax and request a checkout link from the payment provider.
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.InitiatePaymentRequest true "Initiate Payment Request"
// @Success 200 {object} services.InitiateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /initiate_payment [post]
func (ctrl *PaymentController) InitiatePayment(c *gin.Context) {
	var req models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "cart_code is required"})
		return
	}

	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	resp, err := ctrl.payments.Initiate(c.Request.Context(), req.CartCode, userID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Payment initiated successfully",
		"data":    resp,
	})
}

// PaymentCallback godoc
// @Summary Payment provider callback
// @Description Reconcile the provider's redirect/webhook against the local transaction snapshot. Settlement requires an independent verify call whose status, amount and currency all match.
// @Tags Payments
// @Accept json
// @Produce json
// @Param status query string false "Reported status"
// @Param tx_ref query string false "Transaction ref"
// @Param transaction_id query string false "Provider transaction ID"
// @Success 200 {object} services.ReconcileResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /payment_callback [get]
func (ctrl *PaymentController) PaymentCallback(c *gin.Context) {
	var req models.PaymentCallbackRequest

	// The provider redirects with query parameters and posts webhooks
	// with a JSON body; accept both.
	if c.Request.Method == "GET" {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "invalid callback parameters"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "invalid callback body"})
			return
		}
	}

	result, err := ctrl.payments.Reconcile(c.Request.Context(), req)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	message := "Payment verified successfully"
	if result.AlreadyProcessed {
		message = "Payment was already verified"
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": message,
		"data":    result,
	})
}

func respondPaymentError(c *gin.Context, err error) {
	var gwErr *gateway.Error

	switch {
	case errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, services.ErrCartAlreadyPaid),
		errors.Is(err, services.ErrTransactionNotFound):
		c.JSON(404, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrMissingCallbackField),
		errors.Is(err, services.ErrPaymentIncomplete),
		errors.Is(err, services.ErrVerificationMismatch):
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, gateway.ErrUnavailable), errors.As(err, &gwErr):
		c.JSON(502, gin.H{"success": false, "message": "Payment provider unavailable", "error": err.Error()})
	default:
		c.JSON(500, gin.H{"success": false, "message": "Payment processing failed"})
	}
}
