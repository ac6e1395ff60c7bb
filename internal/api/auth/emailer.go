package auth

import (
	"fmt"
	"net/smtp"
	"os"
)

func sendMail(to, subject, body string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(host+":"+port, auth, from, []string{to}, message)
	if err != nil {
		fmt.Println("❌ SMTP error:", err)
	}
	return err
}

func SendVerificationEmail(to string, token string) error {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	link := fmt.Sprintf("%s/verify?token=%s", appURL, token)
	body := fmt.Sprintf("Click the following link to verify your account:\n\n%s", link)
	return sendMail(to, "Verify Your Account", body)
}

func SendPasswordResetEmail(to string, token string) error {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", appURL, token)
	body := fmt.Sprintf("Click the following link to reset your password:\n\n%s", link)
	return sendMail(to, "Reset Your Password", body)
}
