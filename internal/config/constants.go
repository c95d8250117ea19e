// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "vocab-kids"
	AppVersion = "0.3.1"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultDailyWordLimit = 5
	DefaultAccessTokenTTL = 30 * time.Minute
	DefaultFrontendURL    = "http://localhost:3000"
)

// 外部サービスのデフォルト
const (
	DefaultAIModel          = "gpt-3.5-turbo"
	DefaultAIMaxTokens      = 64
	DefaultAITemperature    = 0.7
	DefaultImageDir         = "./static/images"
	DefaultImageFallbackURL = "/images/placeholder.png"
	DefaultWordAPIURL       = "https://random-word-api.herokuapp.com/word"
)
