package paymentController

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"upskill/config"
	"upskill/database"
	"upskill/middleware"
	"upskill/models"
	"upskill/utils"
	paymentValidator "upskill/validators/payment"
)

// Overall settlement outcomes reported back to the client
const (
	SettlementStatusSettled   = "SETTLED"
	SettlementStatusPartial   = "PARTIALLY_SETTLED"
	SettlementStatusUnsettled = "NOT_SETTLED"
)

// PaymentController carries the gateway client and signature secret resolved
// once at startup instead of reading them ambiently per request.
type PaymentController struct {
	Gateway  *utils.OrderClient
	Secret   string
	Currency string
	Notify   Notifier
}

func NewPaymentController(cfg *config.Config) *PaymentController {
	return &PaymentController{
		Gateway:  utils.NewOrderClient(cfg.GatewayURL, cfg.GatewayKeyID, cfg.PaymentSecret),
		Secret:   cfg.PaymentSecret,
		Currency: cfg.PaymentCurrency,
		Notify:   utils.SendCourseEnrollmentEmail,
	}
}

// CapturePayment prices the requested courses and opens a gateway order.
// Nothing is written locally, so a gateway failure leaves no partial state.
func (p *PaymentController) CapturePayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCapture").(*paymentValidator.CapturePaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// A course listed twice must not be priced twice; settlement can only
	// enroll it once.
	seen := make(map[uint]bool, len(reqData.Courses))
	courseIDs := make([]uint, 0, len(reqData.Courses))
	for _, courseID := range reqData.Courses {
		if seen[courseID] {
			continue
		}
		seen[courseID] = true
		courseIDs = append(courseIDs, courseID)
	}

	// Prices are summed once, here. They are deliberately not re-read at
	// verification time: the order amount is fixed when the order opens.
	var totalAmount uint
	for _, courseID := range courseIDs {
		var course models.Course
		if err := db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, "ACTIVE").First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Could not find the course!", nil)
		}

		var enrollment models.Enrollment
		if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student is already enrolled!", nil)
		}

		totalAmount += course.Price
	}

	receipt := reqData.Receipt
	if receipt == "" {
		receipt = uuid.NewString()
	}

	order, err := p.Gateway.CreateOrder(totalAmount*100, p.Currency, receipt)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not initiate order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order created successfully!", fiber.Map{
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"receipt":  order.Receipt,
	})
}

// VerifyPayment checks the gateway signature for the order/payment pair and,
// on a match, settles enrollment for every course in the confirmation. The
// response carries one result per course so the caller can tell a full
// settlement from a partial one — the purchaser has already been charged by
// the time any per-course failure shows up here.
func (p *PaymentController) VerifyPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedVerify").(*paymentValidator.VerifyPaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !utils.VerifyPaymentSignature(reqData.OrderID, reqData.PaymentID, reqData.Signature, p.Secret) {
		// Always logged: a mismatched signature on a well-formed request is
		// a possible forgery attempt, not ordinary client error
		log.Printf("Signature mismatch for order %s payment %s from user %d", reqData.OrderID, reqData.PaymentID, userID)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment verification failed!", nil)
	}

	rawPayload, _ := json.Marshal(reqData)
	results := SettleCourses(database.Database.Db, reqData.OrderID, reqData.PaymentID, rawPayload, reqData.Courses, userID, p.Notify)

	settled := 0
	for _, r := range results {
		if r.Settled() {
			settled++
		}
	}

	status := SettlementStatusSettled
	switch {
	case settled == 0:
		status = SettlementStatusUnsettled
	case settled < len(results):
		status = SettlementStatusPartial
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified!", fiber.Map{
		"settlement": status,
		"courses":    results,
	})
}

// SendPaymentSuccessEmail queues the payment-received mail. Best effort: the
// purchase itself is already settled by the time this is called.
func (p *PaymentController) SendPaymentSuccessEmail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedSuccessEmail").(*paymentValidator.SuccessEmailRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	utils.SendPaymentSuccessEmail(user.Email, user.FirstName, reqData.Amount, reqData.OrderID, reqData.PaymentID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment acknowledgement email queued!", nil)
}
