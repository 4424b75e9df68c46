package email

// Config holds email service configuration.
// The sender address is a single verified identity; all outbound mail from
// the expiry jobs is sent from it.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`

	// DevOutputDir switches the service to the file-based dev sender when
	// non-empty, so runs against real data never reach the mail provider.
	DevOutputDir string `env:"EMAIL_DEV_OUTPUT_DIR"`
}
