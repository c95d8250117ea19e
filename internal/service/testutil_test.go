package service

import (
	"strings"
	"testing"
	"time"

	"go_5_vocab_kids/internal/config"
	"go_5_vocab_kids/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB はテスト用のインメモリSQLite DBを返します。
// スキーマは本番と同じ AutoMigrate で作成します。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// テストごとに独立した名前付きインメモリDBを使う
	// (コネクションプールから複数の接続が張られても同じDBが見えるようにする)
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, repository.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newTestConfig はテストに必要な最小限の設定を返します。
func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "vocab-kids-test"
	cfg.App.DailyWordLimit = 5
	cfg.JWT.SecretKey = "test-secret-key-for-unit-tests"
	cfg.JWT.AccessTokenTTL = 30 * time.Minute
	cfg.Image.Dir = "./testdata/images"
	cfg.Image.FallbackURL = "/images/placeholder.png"
	return cfg
}
