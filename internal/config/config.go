package config

import (
	"fmt"
	"os"
	"time"

	"app/internal/domain/model"
)

type StorageDriver string

const (
	StorageFile     StorageDriver = "file"
	StoragePostgres StorageDriver = "postgres"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	APIBaseURL string        // リモートAPIのベースURL（http://localhost:8080/api）
	APITimeout time.Duration // リモートAPI呼び出しのタイムアウト

	AppRole model.Role // このシェルが受け付けるロール（CUSTOMER / ADMIN）

	StorageDriver StorageDriver // file / postgres
	StateDir      string        // fileドライバの保存先ディレクトリ
	ProfileID     string        // 状態の名前空間（ブラウザプロファイル相当）

	DatabaseURL      string // postgresドライバ用（最優先）
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		APIBaseURL: os.Getenv("API_BASE_URL"),
		APITimeout: 10 * time.Second,

		AppRole: model.Role(getenv("APP_ROLE", string(model.RoleCustomer))),

		StorageDriver: StorageDriver(getenv("STORAGE_DRIVER", string(StorageFile))),
		StateDir:      getenv("STATE_DIR", "./data"),
		ProfileID:     getenv("PROFILE_ID", "default"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "sareeshop"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getenv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		GoEnv: getenv("GO_ENV", "dev"),
		FEURL: os.Getenv("FE_URL"),
	}

	if v := os.Getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("API_TIMEOUT must be duration: %w", err)
		}
		cfg.APITimeout = d
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}

	switch cfg.AppRole {
	case model.RoleCustomer, model.RoleAdmin:
	default:
		return Config{}, fmt.Errorf("APP_ROLE must be CUSTOMER or ADMIN")
	}

	switch cfg.StorageDriver {
	case StorageFile, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be file or postgres")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
