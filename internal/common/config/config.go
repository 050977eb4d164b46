package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	// BaseURL is the public site URL, used to build absolute image,
	// redirect and unsubscribe links embedded in emails.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Mail struct {
		APIURL string `env:"MAIL_API_URL" envDefault:"https://api.mail.example.com/v1/send"`
		APIKey string `env:"MAIL_API_KEY"`
		From   string `env:"MAIL_FROM" envDefault:"alerts@beatonlineslots.com"`
	}

	Push struct {
		VAPIDPublicKey  string `env:"VAPID_PUBLIC_KEY"`
		VAPIDPrivateKey string `env:"VAPID_PRIVATE_KEY"`
		VAPIDSubject    string `env:"VAPID_SUBJECT" envDefault:"mailto:admin@beatonlineslots.com"`
	}

	RecaptchaSecret string `env:"RECAPTCHA_SECRET"`

	// PostbackURL is the affiliate network postback endpoint. "{click_id}"
	// is replaced with the converted click id. Empty disables postbacks.
	PostbackURL string `env:"POSTBACK_URL"`

	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	Cache struct {
		CasinoTTL     time.Duration `env:"CACHE_CASINO_TTL" envDefault:"10m"`
		ClickStatsTTL time.Duration `env:"CACHE_CLICK_STATS_TTL" envDefault:"15m"`
	}
}

func Load() *Config {
	// No .env file is fine; in production the variables are set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}

// IsAdmin reports whether the given email belongs to a configured admin.
func (c *Config) IsAdmin(email string) bool {
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}
