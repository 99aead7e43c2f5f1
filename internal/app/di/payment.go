// Package di はアプリケーションのコンポーネントを組み立てるファクトリを提供します。
package di

import (
	"lodging_backend/internal/platform/config"
	"lodging_backend/internal/platform/externalapi/stripe"
	platformhttp "lodging_backend/internal/platform/http"
)

// NewCheckoutGateway はタイムアウト付きHTTPクライアントを使う決済ゲートウェイを生成します。
func NewCheckoutGateway(c config.StripeConfig) *stripe.Gateway {
	cfg := stripe.ConfigFrom(c)
	httpClient := platformhttp.NewHTTPClient(cfg.Timeout)
	return stripe.NewGateway(cfg, httpClient)
}
