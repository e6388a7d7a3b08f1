package paymentValidator

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"upskill/middleware"
)

var validate = validator.New()

// CapturePaymentRequest asks for a gateway order covering one or more courses
type CapturePaymentRequest struct {
	Courses []uint `json:"courses" validate:"required,min=1,dive,gt=0"`
	Receipt string `json:"receipt"`
}

// VerifyPaymentRequest is the payment confirmation echoed back by the client
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required,hexadecimal,len=64"`
	Courses   []uint `json:"courses" validate:"required,min=1,dive,gt=0"`
}

// SuccessEmailRequest acknowledges a completed payment by mail
type SuccessEmailRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Amount    uint   `json:"amount" validate:"required,gt=0"`
}

func CapturePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CapturePaymentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide course IDs!", nil)
		}

		c.Locals("validatedCapture", reqData)
		return c.Next()
	}
}

func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VerifyPaymentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Field is missing or malformed!"
			}
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing required payment fields!", errors)
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}

func SuccessEmail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SuccessEmailRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide all the fields!", nil)
		}

		c.Locals("validatedSuccessEmail", reqData)
		return c.Next()
	}
}
