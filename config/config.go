package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	FlightsCacheTTLSeconds int `yaml:"flights_cache_ttl_seconds"`
	SeatLockTTLSeconds     int `yaml:"seat_lock_ttl_seconds"`

	ReferenceLength   int `yaml:"reference_length"`
	ReferenceAttempts int `yaml:"reference_attempts"`

	Fare   FareConfig   `yaml:"fare"`
	Refund RefundConfig `yaml:"refund"`
}

// FareConfig mirrors the fare policy: tax as a rate applied to
// base+surcharge, a flat service fee, and surcharge rates per row band.
type FareConfig struct {
	TaxRate    float64          `yaml:"tax_rate"`
	ServiceFee float64          `yaml:"service_fee"`
	Surcharges []SurchargeBand `yaml:"surcharges"`
}

type SurchargeBand struct {
	FromRow int     `yaml:"from_row"`
	ToRow   int     `yaml:"to_row"`
	Rate    float64 `yaml:"rate"`
}

type RefundConfig struct {
	FullRefundAfterHours int     `yaml:"full_refund_after_hours"`
	PartialRate          float64 `yaml:"partial_rate"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
