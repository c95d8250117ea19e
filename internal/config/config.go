// internal/config/config.go
package config

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name           string `mapstructure:"name"`
		FrontendURL    string `mapstructure:"frontend_url"`
		DailyWordLimit int    `mapstructure:"daily_word_limit"` // 無料プランの1日あたりの例文生成上限
	} `mapstructure:"app"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	JWT struct {
		SecretKey      string        `mapstructure:"secret_key"`
		AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	} `mapstructure:"jwt"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	AI struct {
		APIURL      string  `mapstructure:"api_url"`
		APIKey      string  `mapstructure:"api_key"`
		Model       string  `mapstructure:"model"`
		MaxTokens   int     `mapstructure:"max_tokens"`
		Temperature float64 `mapstructure:"temperature"`
	} `mapstructure:"ai"`
	Image struct {
		APIURL      string `mapstructure:"api_url"`
		APIKey      string `mapstructure:"api_key"` // 未設定の場合は常にフォールバック画像を返す
		Dir         string `mapstructure:"dir"`     // 取得した画像を保存するローカルディレクトリ
		FallbackURL string `mapstructure:"fallback_url"`
	} `mapstructure:"image"`
	WordAPI struct {
		URL string `mapstructure:"url"` // ダミー選択肢用のランダム単語サービス
	} `mapstructure:"word_api"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数での上書き (例: APP_JWT_SECRET_KEY, APP_DATABASE_URL)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("jwt.secret_key", "APP_JWT_SECRET_KEY")
	viper.BindEnv("database.url", "APP_DATABASE_URL")
	viper.BindEnv("image.api_key", "APP_IMAGE_API_KEY")
	viper.BindEnv("ai.api_key", "APP_AI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.App.Name == "" {
		Cfg.App.Name = AppName
	}
	if Cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.App.DailyWordLimit <= 0 {
		log.Printf("Daily word limit not set or invalid, using default '%d'", DefaultDailyWordLimit)
		Cfg.App.DailyWordLimit = DefaultDailyWordLimit
	}
	if Cfg.App.FrontendURL == "" {
		Cfg.App.FrontendURL = DefaultFrontendURL
	}
	if Cfg.JWT.AccessTokenTTL <= 0 {
		Cfg.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if len(Cfg.CORS.AllowedOrigins) == 0 {
		Cfg.CORS.AllowedOrigins = []string{Cfg.App.FrontendURL}
	}
	if len(Cfg.CORS.AllowedMethods) == 0 {
		Cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(Cfg.CORS.AllowedHeaders) == 0 {
		Cfg.CORS.AllowedHeaders = []string{"Authorization", "Content-Type"}
	}
	if Cfg.AI.Model == "" {
		Cfg.AI.Model = DefaultAIModel
	}
	if Cfg.AI.MaxTokens <= 0 {
		Cfg.AI.MaxTokens = DefaultAIMaxTokens
	}
	if Cfg.AI.Temperature <= 0 {
		Cfg.AI.Temperature = DefaultAITemperature
	}
	if Cfg.Image.Dir == "" {
		Cfg.Image.Dir = DefaultImageDir
	}
	if Cfg.Image.FallbackURL == "" {
		Cfg.Image.FallbackURL = DefaultImageFallbackURL
	}
	if Cfg.WordAPI.URL == "" {
		Cfg.WordAPI.URL = DefaultWordAPIURL
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}

	// 署名キーはデフォルト値を持たせない。未設定なら起動を拒否する (fail-fast)。
	if Cfg.JWT.SecretKey == "" {
		return errors.New("jwt.secret_key is not set (config or APP_JWT_SECRET_KEY); refusing to start")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Daily Word Limit: %d", Cfg.App.DailyWordLimit)
	log.Printf("Access Token TTL: %s", Cfg.JWT.AccessTokenTTL)

	return nil
}
