// Package config loads typed application configuration from environment
// variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is read once per process, then env.Parse fills any
// struct annotated with `env` tags. Each configuration type is parsed at
// most once and cached by its type name, so independent components can load
// their own config slice without coordinating.
//
//	type MailerConfig struct {
//	    Token  string `env:"POSTMARK_SERVER_TOKEN,required"`
//	    Sender string `env:"SENDER_EMAIL,required"`
//	}
//
//	var cfg MailerConfig
//	config.MustLoad(&cfg)
package config
