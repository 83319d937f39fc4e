package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	AutoMigrate         bool
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
	BrevoAPIKey         string // BREVO_API_KEY (falls back to SENDINBLUE_API_KEY)
	MailFrom            string
	S3                  S3Config
}

// S3Config is the object storage used for listing images.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, for S3-compatible providers
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	UploadURLTTL    time.Duration
}

// Enabled reports whether enough is configured to presign uploads.
func (s S3Config) Enabled() bool {
	return s.Bucket != "" && s.Region != ""
}

// IsProduction is true when APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AUTO_MIGRATE", "true")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("UPLOAD_URL_TTL", "15m")
	v.SetDefault("MAIL_FROM", "noreply@conectapro.com.br")

	ttl, err := time.ParseDuration(v.GetString("UPLOAD_URL_TTL"))
	if err != nil {
		ttl = 15 * time.Minute
	}

	brevoKey := v.GetString("BREVO_API_KEY")
	if brevoKey == "" {
		brevoKey = v.GetString("SENDINBLUE_API_KEY")
	}

	return &Config{
		Env:                 v.GetString("APP_ENV"),
		Port:                v.GetString("PORT"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		SessionSecret:       v.GetString("SESSION_SECRET"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		RedisURL:            v.GetString("REDIS_URL"),
		AutoMigrate:         v.GetBool("AUTO_MIGRATE"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(v.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
		BrevoAPIKey:         brevoKey,
		MailFrom:            v.GetString("MAIL_FROM"),
		S3: S3Config{
			Bucket:          v.GetString("S3_BUCKET"),
			Region:          v.GetString("S3_REGION"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			PublicBaseURL:   strings.TrimRight(v.GetString("S3_PUBLIC_BASE_URL"), "/"),
			UploadURLTTL:    ttl,
		},
	}, nil
}
