package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	Redis   Redis   `envPrefix:"REDIS_"`
	Catalog Catalog `envPrefix:"CATALOG_"`
	Stripe  Stripe  `envPrefix:"STRIPE_"`
	Admin   Admin   `envPrefix:"ADMIN_"`

	// Applied to every checkout line item, never derived from user input.
	CheckoutCurrency string `env:"CHECKOUT_CURRENCY" envDefault:"usd"`
}

type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type Catalog struct {
	DBPath string `env:"DB_PATH" envDefault:"storefront.db"`
}

type Stripe struct {
	BaseApiURL    string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type Admin struct {
	Password string `env:"PASSWORD"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
