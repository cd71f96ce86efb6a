package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

// SendStatusEmail tells a submitter that their report reached a terminal
// status. The rejection note is included when present.
func SendStatusEmail(toEmail, reportTitle, status, note string) error {
	from := os.Getenv("EMAIL_FROM")
	pass := os.Getenv("EMAIL_PASS")
	if from == "" || pass == "" {
		return fmt.Errorf("email credentials not configured")
	}

	body := fmt.Sprintf(`Subject: CampusFix - Report update

Dear user,

Your report "%s" is now %s.
`, reportTitle, status)
	if note != "" {
		body += fmt.Sprintf("\nNote from the coordinator: %s\n", note)
	}
	body += "\nThank you,\nCampusFix Team\n"

	return smtp.SendMail(
		"smtp.gmail.com:587",
		smtp.PlainAuth("", from, pass, "smtp.gmail.com"),
		from,
		[]string{toEmail},
		[]byte(body),
	)
}
