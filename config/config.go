package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Booking BookingConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	MigrationsPath string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// BookingConfig shapes the slot engine: grid step, visible horizon, the
// background completion sweep, and the notification buffer. All dates and
// times live in one clinic timezone.
type BookingConfig struct {
	SlotMinutes   int
	HorizonDays   int
	SweepInterval time.Duration
	NotifyBuffer  int
	Timezone      string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	slotMinutes := viper.GetInt("BOOKING_SLOT_MINUTES")
	if slotMinutes <= 0 {
		slotMinutes = 10
	}

	horizonDays := viper.GetInt("BOOKING_HORIZON_DAYS")
	if horizonDays <= 0 {
		horizonDays = 30
	}

	sweepInterval, err := time.ParseDuration(viper.GetString("SWEEP_INTERVAL"))
	if err != nil {
		sweepInterval = 15 * time.Minute
	}

	notifyBuffer := viper.GetInt("NOTIFY_BUFFER")
	if notifyBuffer <= 0 {
		notifyBuffer = 256
	}

	timezone := viper.GetString("BOOKING_TIMEZONE")
	if timezone == "" {
		timezone = "Asia/Jakarta"
	}

	migrationsPath := viper.GetString("DB_MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "db/migrations"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASSWORD"),
			Name:           viper.GetString("DB_NAME"),
			MigrationsPath: migrationsPath,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Booking: BookingConfig{
			SlotMinutes:   slotMinutes,
			HorizonDays:   horizonDays,
			SweepInterval: sweepInterval,
			NotifyBuffer:  notifyBuffer,
			Timezone:      timezone,
		},
	}

	return config, nil
}
