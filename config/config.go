package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Mail providers understood by email.NewSender
const (
	MailProviderSMTP   = "smtp"
	MailProviderResend = "resend"
	MailProviderLog    = "log"
)

type Config struct {
	Port           string
	GinMode        string
	FrontendURL    string
	AllowedOrigins []string
	// Mail transport
	MailProvider string
	SMTPHost     string
	SMTPPort     int
	SMTPSecure   bool // implicit TLS instead of STARTTLS
	SMTPUsername string
	SMTPPassword string
	MailFrom     string // envelope sender, defaults to the SMTP login
	ResendAPIKey string
	// Site owner
	OwnerName      string
	ContactEmailTo string
	// Map widget
	OfficeLatitude  float64
	OfficeLongitude float64
	OfficeLabel     string
}

func LoadConfig() (*Config, error) {
	// Only matters locally; in production the file usually doesn't exist
	_ = godotenv.Load()

	smtpPort := getEnvInt("SMTP_PORT", 587)
	smtpUser := getEnv("SMTP_USER", "")

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Mail transport
		MailProvider: strings.ToLower(getEnv("MAIL_PROVIDER", MailProviderSMTP)),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPSecure:   getEnvBool("SMTP_SECURE", smtpPort == 465),
		SMTPUsername: smtpUser,
		SMTPPassword: getEnv("SMTP_PASS", ""),
		MailFrom:     getEnv("MAIL_FROM", smtpUser),
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		// Site owner
		OwnerName:      getEnv("OWNER_NAME", "Nahom Tewodros"),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "nahomtewodrosm@gmail.com"),
		// Map widget
		OfficeLatitude:  getEnvFloat("OFFICE_LAT", 8.994517),
		OfficeLongitude: getEnvFloat("OFFICE_LNG", 38.826705),
		OfficeLabel:     getEnv("OFFICE_LABEL", "Addis Ababa, Ethiopia"),
	}

	cfg.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", cfg.FrontendURL))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.MailProvider == MailProviderLog {
		log.Println("WARNING: MAIL_PROVIDER=log. Contact emails will be printed, not delivered.")
	}

	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE %q must be debug, release or test", c.GinMode))
	}
	if c.ContactEmailTo == "" {
		errs = append(errs, errors.New("CONTACT_EMAIL_TO is required"))
	}

	switch c.MailProvider {
	case MailProviderSMTP:
		if c.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for the smtp provider"))
		}
		if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
			errs = append(errs, fmt.Errorf("SMTP_PORT %d is out of range", c.SMTPPort))
		}
		if c.SMTPUsername == "" || c.SMTPPassword == "" {
			errs = append(errs, errors.New("SMTP_USER and SMTP_PASS are required for the smtp provider"))
		}
		if c.MailFrom == "" {
			errs = append(errs, errors.New("MAIL_FROM or SMTP_USER must be set"))
		}
	case MailProviderResend:
		if c.ResendAPIKey == "" {
			errs = append(errs, errors.New("RESEND_API_KEY is required for the resend provider"))
		}
		if c.MailFrom == "" {
			errs = append(errs, errors.New("MAIL_FROM is required for the resend provider"))
		}
	case MailProviderLog:
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_PROVIDER %q", c.MailProvider))
	}

	if c.OfficeLatitude < -90 || c.OfficeLatitude > 90 {
		errs = append(errs, fmt.Errorf("OFFICE_LAT %v is out of range", c.OfficeLatitude))
	}
	if c.OfficeLongitude < -180 || c.OfficeLongitude > 180 {
		errs = append(errs, fmt.Errorf("OFFICE_LNG %v is out of range", c.OfficeLongitude))
	}

	return errors.Join(errs...)
}

// IsProduction mirrors gin's release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
