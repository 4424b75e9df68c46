package expiry

import "strings"

// Config carries the module's environment-supplied settings. It is built
// once at the boundary and passed in explicitly; nothing in the jobs reads
// the environment.
type Config struct {
	// SiteBaseURL is the product site; the upgrade link in every
	// notification points at its /plans page.
	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"https://thebigdaypage.com"`

	PrimaryDatabase string `env:"PRIMARY_DATABASE_ID" envDefault:"bigday"`
	UsersCollection string `env:"USERS_COLLECTION_ID" envDefault:"users"`

	// Templates and audit logs live in a separate system database.
	SystemDatabase      string `env:"SYSTEM_DATABASE_ID" envDefault:"system"`
	TemplatesCollection string `env:"TEMPLATES_COLLECTION_ID" envDefault:"notification_templates"`

	// LogsCollection is optional; when empty, audit logging is a no-op.
	LogsCollection string `env:"LOGS_COLLECTION_ID"`

	WarningTemplate string `env:"WARNING_TEMPLATE_NAME" envDefault:"free-expiry-warning"`
	ExpiredTemplate string `env:"EXPIRED_TEMPLATE_NAME" envDefault:"free-plan-expired"`
	TemplateLang    string `env:"TEMPLATE_LANG" envDefault:"en"`

	BatchSize int `env:"EXPIRY_BATCH_SIZE" envDefault:"100"`
}

// UpgradeURL returns the plans page used as the {{upgradeUrl}} placeholder.
func (c Config) UpgradeURL() string {
	return strings.TrimRight(c.SiteBaseURL, "/") + "/plans"
}
