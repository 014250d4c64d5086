package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string   `env:"DATABASE_URL" envDefault:"sqlite:fashion-cart.db"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001"`

	JWT        JWT        `envPrefix:"JWT_"`
	Paypal     Paypal     `envPrefix:"PAYPAL_"`
	BrainTree  Braintree  `envPrefix:"BRAINTREE_"`
	SMTP       SMTP       `envPrefix:"SMTP_"`
	Cloudinary Cloudinary `envPrefix:"CLOUDINARY_"`
	Redis      Redis      `envPrefix:"REDIS_"`
	Kafka      Kafka      `envPrefix:"KAFKA_"`
}

type JWT struct {
	AccessSecret  string        `env:"ACCESS_SECRET,required,notEmpty"`
	RefreshSecret string        `env:"REFRESH_SECRET,required,notEmpty"`
	AccessTTL     time.Duration `env:"ACCESS_TTL" envDefault:"60m"`
	RefreshTTL    time.Duration `env:"REFRESH_TTL" envDefault:"168h"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

type Paypal struct {
	BaseApiURL   string `env:"BASE_API_URL"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	WebhookID    string `env:"WEBHOOK_ID"`
	Environment  string `env:"ENVIRONMENT" envDefault:"sandbox"` // sandbox or live
}

// APIURL falls back to the public endpoint for the configured environment.
func (p Paypal) APIURL() string {
	if p.BaseApiURL != "" {
		return p.BaseApiURL
	}
	if p.Environment == "live" {
		return "https://api-m.paypal.com"
	}
	return "https://api-m.sandbox.paypal.com"
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

func (b Braintree) Enabled() bool {
	return b.MerchantID != "" && b.PublicKey != "" && b.PrivateKey != ""
}

type SMTP struct {
	Host       string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port       int    `env:"PORT" envDefault:"587"`
	User       string `env:"USER"`
	Password   string `env:"PASSWORD"`
	FromName   string `env:"FROM_NAME" envDefault:"Fashion Cart"`
	AdminEmail string `env:"ADMIN_EMAIL"`
}

func (s SMTP) Enabled() bool {
	return s.User != "" && s.Password != ""
}

type Cloudinary struct {
	CloudName string `env:"CLOUD_NAME"`
	APIKey    string `env:"API_KEY"`
	APISecret string `env:"API_SECRET"`
}

func (c Cloudinary) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type Redis struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"10m"`
}

type Kafka struct {
	Brokers    []string `env:"BROKERS" envSeparator:","`
	OrderTopic string   `env:"ORDER_TOPIC" envDefault:"orders"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host            string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" envDefault:"3001"`
	RateLimit       float64       `env:"RATE_LIMIT_PER_SECOND" envDefault:"10"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}
