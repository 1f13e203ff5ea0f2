package Models

import (
	"os"
	"strconv"
)

type EmailConfig struct {
	SMTPServer   string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TLSEnabled   bool
	SkipTLSCheck bool
}

// EmailMessage is a plain-text alert mail.
type EmailMessage struct {
	To      []string
	Subject string
	Body    string
}

// EmailConfigFromEnv builds the SMTP configuration from the environment.
// An empty SMTPServer means mail alerts are disabled.
func EmailConfigFromEnv() EmailConfig {
	port, _ := strconv.Atoi(os.Getenv("VIGIL_SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return EmailConfig{
		SMTPServer: os.Getenv("VIGIL_SMTP_SERVER"),
		SMTPPort:   port,
		Username:   os.Getenv("VIGIL_SMTP_USER"),
		Password:   os.Getenv("VIGIL_SMTP_PASSWORD"),
		FromEmail:  os.Getenv("VIGIL_SMTP_FROM"),
		FromName:   "Vigil Alerts",
		TLSEnabled: os.Getenv("VIGIL_SMTP_TLS") == "true",
	}
}
