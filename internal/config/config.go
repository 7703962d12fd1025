// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
//
// Все секреты (ключи шлюзов, JWT, FX API) читаются один раз при старте и
// передаются в компоненты явно; после загрузки конфиг нигде не читается из окружения.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	GeoIPDBPath             string `yaml:"geoip_db_path" env:"GEOIP_DB_PATH"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Razorpay                `yaml:"razorpay"`
	Stripe                  `yaml:"stripe"`
	Exchange                `yaml:"exchange"`
	Cloudinary              `yaml:"cloudinary"`
	Premium                 `yaml:"premium"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env-default:"localhost:6379"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"2h"`
}

// Razorpay — учетные данные шлюза Razorpay (регион IN).
type Razorpay struct {
	RazorpayKeyID     string `yaml:"key_id" env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `yaml:"key_secret" env:"RAZORPAY_KEY_SECRET"`
}

// Stripe — учетные данные шлюза Stripe (остальные регионы).
type Stripe struct {
	StripeSecretKey  string `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	StripeSuccessURL string `yaml:"success_url" env-default:"http://localhost:3000/payment/success"`
	StripeCancelURL  string `yaml:"cancel_url" env-default:"http://localhost:3000/payment/cancel"`
	WebhookSecret    string `yaml:"webhook_secret" env:"PAYMENT_WEBHOOK_SECRET"`
}

// Exchange — ключ внешнего провайдера курсов валют.
type Exchange struct {
	ExchangeAPIKey string `yaml:"api_key" env:"EXCHANGE_API_KEY"`
}

// Cloudinary — учетные данные хранилища изображений гардероба.
// Секция необязательна: без неё загрузка изображений отключена.
type Cloudinary struct {
	CloudinaryCloudName string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET"`
}

// Premium — параметры премиум-тарифа.
type Premium struct {
	PriceUSD float64 `yaml:"price_usd" env-default:"3.99"`
	GSTRate  float64 `yaml:"gst_rate" env-default:"0.18"`
}

// RabbitMQ структура для настройки подключения к брокеру уведомлений.
type RabbitMQ struct {
	RabbitMQConnection string        `yaml:"connection" env:"RABBITMQ_CONNECTION"`
	ConnectRetries     int           `yaml:"connect_retries" env-default:"5"`
	ConnectDelay       time.Duration `yaml:"connect_delay" env-default:"3s"`
}

// SMTP структура для настройки отправки почты.
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"pass" env:"SMTP_PASS"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и валидирует обязательные поля.
// Останавливает процесс при любой ошибке загрузки.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}
	return &cfg
}

// Validate проверяет, что обязательные секреты заданы.
func (c *Config) Validate() error {
	if c.StorageConnectionString == "" {
		return fmt.Errorf("storage_connection_string is required")
	}
	if c.JWTSecretKey == "" {
		return fmt.Errorf("jwttoken.jwt_secret_key is required")
	}
	if c.RazorpayKeyID == "" || c.RazorpayKeySecret == "" {
		return fmt.Errorf("razorpay credentials are required")
	}
	if c.StripeSecretKey == "" {
		return fmt.Errorf("stripe.secret_key is required")
	}
	if c.ExchangeAPIKey == "" {
		return fmt.Errorf("exchange.api_key is required")
	}
	return nil
}
