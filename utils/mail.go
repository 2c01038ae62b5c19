package utils

import (
	"fmt"
	"net/smtp"
	"os"

	log "github.com/sirupsen/logrus"
)

// SendAdminEmail forwards a message to the admin mailbox. Sending is a
// no-op when SMTP is not configured, so environments without a mail
// account still accept contact queries.
func SendAdminEmail(subject, body string) {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")
	to := os.Getenv("ADMIN_EMAIL")

	if host == "" || from == "" || to == "" {
		log.Debug("SMTP not configured, skipping admin email")
		return
	}
	if port == "" {
		port = "587"
	}

	auth := smtp.PlainAuth("", from, password, host)
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s\r\n", to, subject, body))

	if err := smtp.SendMail(host+":"+port, auth, from, []string{to}, msg); err != nil {
		log.Errorf("Error sending admin email: %v", err)
	}
}
