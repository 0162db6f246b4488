package config

import "time"

type Config struct {
	Environment  Environment
	Log          Log
	HTTP         HTTPServer
	DatabasePath string `env:"DATABASE_PATH" envDefault:"storefront.db"`

	Token  Token  `envPrefix:"JWT_"`
	Stripe Stripe `envPrefix:"STRIPE_"`
}

type Token struct {
	Secret string        `env:"SECRET,required"`
	TTL    time.Duration `env:"TTL" envDefault:"1h"`
}

type Stripe struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey  string `env:"SECRET_KEY"`
	Currency   string `env:"CURRENCY" envDefault:"usd"`
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
