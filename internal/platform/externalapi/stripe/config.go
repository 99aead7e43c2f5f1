// Package stripe は決済プロバイダー（Stripe Checkout）とのやり取りを提供します。
package stripe

import (
	"time"

	"lodging_backend/internal/platform/config"
)

// Config holds configuration for the Stripe API client.
type Config struct {
	SecretKey     string        // API secret key
	WebhookSecret string        // endpoint secret used to verify webhook signatures
	Currency      string        // ISO currency code in lower case (e.g. "jpy")
	BaseURL       string        // overrides https://api.stripe.com when set
	Timeout       time.Duration // HTTP request timeout
}

// ConfigFrom はアプリケーション設定から決済設定を取り出します。
func ConfigFrom(c config.StripeConfig) Config {
	return Config{
		SecretKey:     c.SecretKey,
		WebhookSecret: c.WebhookSecret,
		Currency:      c.Currency,
		BaseURL:       c.BaseURL,
		Timeout:       c.Timeout,
	}
}
