package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "DASPORTZ"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "DASPORTZ_APP_ENV"
	EnvPort                   = "DASPORTZ_APP_PORT"
	EnvLogLevel               = "DASPORTZ_LOG_LEVEL"
	EnvBackendBaseURL         = "DASPORTZ_BACKEND_BASE_URL"
	EnvBackendTestMode        = "DASPORTZ_BACKEND_TEST_MODE"
	EnvExpressSurcharge       = "DASPORTZ_PRICING_EXPRESS_SURCHARGE"
	EnvOnlineDiscount         = "DASPORTZ_PRICING_ONLINE_DISCOUNT"
	EnvRequirePaymentWhenFree = "DASPORTZ_PRICING_REQUIRE_PAYMENT_WHEN_FREE"
	EnvWhatsAppNumber         = "DASPORTZ_WHATSAPP_NUMBER"
	EnvCatalogPath            = "DASPORTZ_STRINGING_CATALOG_PATH"
	EnvCORSOrigins            = "DASPORTZ_CORS_ALLOWED_ORIGINS"
)

type Config struct {
	App      AppConfig
	Pricing  PricingConfig
	Backend  BackendConfig
	WhatsApp WhatsAppConfig
	Catalog  CatalogConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DASPORTZ_APP_ENV" required:"true"`
	Port         string `envconfig:"DASPORTZ_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DASPORTZ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DASPORTZ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PricingConfig holds the storefront's pricing constants. Values are whole rupees.
type PricingConfig struct {
	ExpressSurcharge       int  `envconfig:"DASPORTZ_PRICING_EXPRESS_SURCHARGE" default:"20"`
	OnlineDiscount         int  `envconfig:"DASPORTZ_PRICING_ONLINE_DISCOUNT" default:"10"`
	RacketLabour           int  `envconfig:"DASPORTZ_PRICING_RACKET_LABOUR" default:"100"`
	CouponStep             int  `envconfig:"DASPORTZ_PRICING_COUPON_STEP" default:"50"`
	CouponMax              int  `envconfig:"DASPORTZ_PRICING_COUPON_MAX" default:"500"`
	TensionMin             int  `envconfig:"DASPORTZ_PRICING_TENSION_MIN" default:"10"`
	TensionMax             int  `envconfig:"DASPORTZ_PRICING_TENSION_MAX" default:"35"`
	RequirePaymentWhenFree bool `envconfig:"DASPORTZ_PRICING_REQUIRE_PAYMENT_WHEN_FREE" default:"false"`
}

func (p PricingConfig) validate() error {
	if p.ExpressSurcharge < 0 || p.OnlineDiscount < 0 || p.RacketLabour < 0 {
		return fmt.Errorf("pricing amounts must be non-negative")
	}
	if p.CouponStep <= 0 {
		return fmt.Errorf("%s_PRICING_COUPON_STEP must be positive", EnvPrefix)
	}
	if p.CouponMax < p.CouponStep {
		return fmt.Errorf("%s_PRICING_COUPON_MAX must be at least the coupon step", EnvPrefix)
	}
	if p.TensionMin <= 0 || p.TensionMax < p.TensionMin {
		return fmt.Errorf("invalid tension range %d-%d", p.TensionMin, p.TensionMax)
	}
	return nil
}

type BackendConfig struct {
	BaseURL     string        `envconfig:"DASPORTZ_BACKEND_BASE_URL" default:"http://localhost:3000"`
	Timeout     time.Duration `envconfig:"DASPORTZ_BACKEND_TIMEOUT" default:"10s"`
	MaxAttempts int           `envconfig:"DASPORTZ_BACKEND_MAX_ATTEMPTS" default:"1"`
	RetryDelay  time.Duration `envconfig:"DASPORTZ_BACKEND_RETRY_DELAY" default:"500ms"`
	TestMode    bool          `envconfig:"DASPORTZ_BACKEND_TEST_MODE" default:"false"`
	// AcceptedPageURL is the storefront page customers land on after a pay-at-outlet order.
	AcceptedPageURL string `envconfig:"DASPORTZ_ORDER_ACCEPTED_URL" default:"order-accepted.html"`
}

type WhatsAppConfig struct {
	Number  string `envconfig:"DASPORTZ_WHATSAPP_NUMBER" default:"918800505769"`
	BaseURL string `envconfig:"DASPORTZ_WHATSAPP_BASE_URL" default:"https://wa.me"`
}

type CatalogConfig struct {
	StringingPath string `envconfig:"DASPORTZ_STRINGING_CATALOG_PATH"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DASPORTZ_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:5500"`
}
