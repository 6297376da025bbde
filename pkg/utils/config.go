package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Razorpay RazorpayConfig
	WhatsApp WhatsAppConfig
	Email    EmailConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

type RazorpayConfig struct {
	WebhookSecret string
}

type WhatsAppConfig struct {
	APIURL     string
	Token      string
	Instance   string
	AdminPhone string
	Enabled    bool
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	AdminTo  string
}

// BookingConfig carries the fallback percentages used when the
// corresponding settings rows are absent.
type BookingConfig struct {
	GSTPercent        float64
	ServiceFeePercent float64
	AdvancePercent    float64
	SessionHours      int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_ENABLED", true)
	viper.SetDefault("WHATSAPP_ENABLED", false)
	viper.SetDefault("BOOKING_GST_PERCENT", 18)
	viper.SetDefault("BOOKING_SERVICE_FEE_PERCENT", 5)
	viper.SetDefault("BOOKING_ADVANCE_PERCENT", 5)
	viper.SetDefault("SESSION_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			Enabled:  viper.GetBool("REDIS_ENABLED"),
		},
		Razorpay: RazorpayConfig{
			WebhookSecret: viper.GetString("RAZORPAY_WEBHOOK_SECRET"),
		},
		WhatsApp: WhatsAppConfig{
			APIURL:     viper.GetString("WHATSAPP_API_URL"),
			Token:      viper.GetString("WHATSAPP_TOKEN"),
			Instance:   viper.GetString("WHATSAPP_INSTANCE"),
			AdminPhone: viper.GetString("WHATSAPP_ADMIN_PHONE"),
			Enabled:    viper.GetBool("WHATSAPP_ENABLED"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
			AdminTo:  viper.GetString("EMAIL_ADMIN_TO"),
		},
		Booking: BookingConfig{
			GSTPercent:        viper.GetFloat64("BOOKING_GST_PERCENT"),
			ServiceFeePercent: viper.GetFloat64("BOOKING_SERVICE_FEE_PERCENT"),
			AdvancePercent:    viper.GetFloat64("BOOKING_ADVANCE_PERCENT"),
			SessionHours:      viper.GetInt("SESSION_HOURS"),
		},
	}

	return config, nil
}
