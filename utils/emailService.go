package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"ipb/config"
)

// SendEmail delivers an HTML email through SendGrid when an API key is
// configured, falling back to plain SMTP otherwise. With neither configured
// the message is only logged, which is fine in development where OTPs are
// echoed back to the caller anyway.
func SendEmail(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig

	if cfg.SendGridApiKey != "" {
		from := mail.NewEmail("Internship Portal", cfg.EmailSender)
		client := sendgrid.NewSendClient(cfg.SendGridApiKey)
		for _, addr := range to {
			message := mail.NewSingleEmail(from, subject, mail.NewEmail("", addr), "", htmlBody)
			resp, err := client.Send(message)
			if err != nil {
				log.Printf("Error sending email via SendGrid: %v", err)
				return err
			}
			if resp.StatusCode >= 400 {
				log.Printf("SendGrid rejected email: status %d, body %s", resp.StatusCode, resp.Body)
				return fmt.Errorf("sendgrid rejected email with status %d", resp.StatusCode)
			}
		}
		return nil
	}

	if cfg.EmailPassword != "" {
		return sendViaSmtp(to, subject, htmlBody)
	}

	log.Printf("Email delivery not configured; would send %q to %v", subject, to)
	return nil
}

func sendViaSmtp(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Internship Portal <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// SendOTPEmail sends the verification code email used by the profile
// email-verification step.
func SendOTPEmail(otp, email string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Internship Portal Email Verification</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your One Time Password (OTP) is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">Do not share this OTP with anyone.</p>
				</div>
			</body>
		</html>
	`, otp)

	return SendEmail([]string{email}, "OTP Verification Code for Internship Portal", body)
}
