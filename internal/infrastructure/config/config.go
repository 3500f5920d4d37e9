package config

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config stores all configuration of the service.
// Values come from environment variables, an optional app.env file and the
// defaults below, in that order of precedence.
type Config struct {
	Port      int    `mapstructure:"PORT"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`  // debug, info, warn, error
	LogFormat string `mapstructure:"LOG_FORMAT"` // console or json

	// Origin prefixed to relative media paths.
	MediaBaseOrigin string `mapstructure:"MEDIA_BASE_ORIGIN"`

	// DynamoDB
	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	DynamoDBEndpoint   string `mapstructure:"DYNAMODB_ENDPOINT"`
	UnitsTable         string `mapstructure:"UNITS_TABLE"`
	VariantsTable      string `mapstructure:"VARIANTS_TABLE"`
	ModelsTable        string `mapstructure:"MODELS_TABLE"`
	BrandsTable        string `mapstructure:"BRANDS_TABLE"`
	ColorsTable        string `mapstructure:"COLORS_TABLE"`
	QuotationsTable    string `mapstructure:"QUOTATIONS_TABLE"`
	OrdersTable        string `mapstructure:"ORDERS_TABLE"`
	PaymentsTable      string `mapstructure:"PAYMENTS_TABLE"`

	// Mercado Pago
	MercadoPagoAccessToken string `mapstructure:"MERCADOPAGO_ACCESS_TOKEN"`
	MercadoPagoPayerEmail  string `mapstructure:"MERCADOPAGO_PAYER_EMAIL"`
	PaymentGatewayMock     bool   `mapstructure:"PAYMENT_GATEWAY_MOCK"`
}

var defaults = map[string]any{
	"PORT":                     8080,
	"LOG_LEVEL":                "info",
	"LOG_FORMAT":               "console",
	"MEDIA_BASE_ORIGIN":        "http://localhost:8080",
	"AWS_REGION":               "us-east-1",
	"AWS_ACCESS_KEY_ID":        "local",
	"AWS_SECRET_ACCESS_KEY":    "local",
	"DYNAMODB_ENDPOINT":        "",
	"UNITS_TABLE":              "inventory",
	"VARIANTS_TABLE":           "variants",
	"MODELS_TABLE":             "models",
	"BRANDS_TABLE":             "brands",
	"COLORS_TABLE":             "colors",
	"QUOTATIONS_TABLE":         "quotations",
	"ORDERS_TABLE":             "orders",
	"PAYMENTS_TABLE":           "payments",
	"MERCADOPAGO_ACCESS_TOKEN": "",
	"MERCADOPAGO_PAYER_EMAIL":  "",
	"PAYMENT_GATEWAY_MOCK":     false,
}

// LoadConfig reads configuration from path/app.env and the environment.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err == nil {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("using config file")
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
		log.Debug().Msg("no config file found, using environment variables and defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	return cfg, nil
}
