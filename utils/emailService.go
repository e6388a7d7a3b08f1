package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"upskill/config"
)

// SendEmail delivers a single HTML email through SendGrid
func SendEmail(to, subject, htmlBody string) error {
	from := mail.NewEmail("Upskill", config.AppConfig.EmailSender)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if response.StatusCode >= 300 {
		log.Printf("SendGrid returned %d for %s", response.StatusCode, to)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	return nil
}

// HTML wrapper shared by all transactional emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #001D3D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #001D3D; line-height: 1.6; }
			.content h2 { color: #001D3D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #FFC300; color: #001D3D; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #FFC300; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>UPSKILL</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Upskill. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendCourseEnrollmentEmail confirms a settled enrollment. It is called
// synchronously by the settler so the outcome can be recorded; a failure is
// reported back but never unwinds the enrollment.
func SendCourseEnrollmentEmail(email, firstName, courseName string) error {
	subject := "Successfully Enrolled into " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have been successfully enrolled into <strong>%s</strong>.</p>
		<p>Your course is ready and your progress tracker has been set up.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Head to your dashboard and start with the first lecture.
		</div>
		<a href="#" class="btn">Start Learning</a>
	`, firstName, courseName)

	return SendEmail(email, subject, getEmailTemplate("Enrollment Confirmed", body))
}

// SendPaymentSuccessEmail acknowledges a received payment
func SendPaymentSuccessEmail(email, firstName string, amount uint, orderID, paymentID string) {
	subject := "Payment Received"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your payment of <strong>&#8377;%d</strong>.</p>
		<div class="info-box">
			<ul style="list-style: none; padding: 0; margin: 0;">
				<li style="margin-bottom: 8px;"><strong>Order ID:</strong> %s</li>
				<li><strong>Payment ID:</strong> %s</li>
			</ul>
		</div>
		<p>Thank you for learning with us.</p>
	`, firstName, amount/100, orderID, paymentID)

	go SendEmail(email, subject, getEmailTemplate("Payment Successful", body))
}
