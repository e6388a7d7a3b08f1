package paymentRoutes

import (
	"github.com/gofiber/fiber/v2"

	paymentController "upskill/controllers/payment"
	"upskill/middleware"
	paymentValidator "upskill/validators/payment"
)

// SetupPaymentRoutes wires the purchase workflow: order capture, payment
// verification with settlement, and the payment-received mail.
func SetupPaymentRoutes(app *fiber.App, payment *paymentController.PaymentController) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/capture", middleware.JWTMiddleware, middleware.RequireRole("USER"), paymentValidator.CapturePayment(), payment.CapturePayment)
	paymentGroup.Post("/verify", middleware.JWTMiddleware, middleware.RequireRole("USER"), paymentValidator.VerifyPayment(), payment.VerifyPayment)
	paymentGroup.Post("/success-email", middleware.JWTMiddleware, middleware.RequireRole("USER"), paymentValidator.SuccessEmail(), payment.SendPaymentSuccessEmail)
}
