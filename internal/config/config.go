package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// 认证模式
const (
	AuthModeJWT    = "jwt"
	AuthModeLegacy = "legacy"
)

const defaultSecret = "your-secret-key-change-in-production"

// Config 应用配置
type Config struct {
	Env          string
	AppSecret    string
	DatabaseURL  string
	JWTExpiry    time.Duration
	Port         string
	AuthMode     string
	LegacyUserID int

	VideoListLimit     int
	CourseDurationUnit string
	Labels             *CategoryLabels
}

// Load 加载配置
func Load() (*Config, error) {
	expiryHours, err := getEnvInt("JWT_EXPIRY_HOURS", 72)
	if err != nil {
		return nil, err
	}
	legacyUserID, err := getEnvInt("LEGACY_USER_ID", 1)
	if err != nil {
		return nil, err
	}
	videoLimit, err := getEnvInt("VIDEO_LIST_LIMIT", 20)
	if err != nil {
		return nil, err
	}
	if videoLimit <= 0 {
		return nil, fmt.Errorf("VIDEO_LIST_LIMIT 必须大于 0: %d", videoLimit)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbUser := getEnv("DB_USER", "postgres")
		dbPass := getEnv("DB_PASSWORD", "postgres")
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbName := getEnv("DB_NAME", "learning_platform")
		dbSSL := getEnv("DB_SSLMODE", "disable")

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)
	}

	authMode := getEnv("AUTH_MODE", AuthModeJWT)
	if authMode != AuthModeJWT && authMode != AuthModeLegacy {
		return nil, fmt.Errorf("未知的 AUTH_MODE: %q", authMode)
	}

	labels := DefaultCategoryLabels()
	if path := os.Getenv("CATEGORY_LABELS_FILE"); path != "" {
		labels, err = LoadCategoryLabels(path)
		if err != nil {
			return nil, err
		}
	}

	env := getEnv("APP_ENV", "development")
	appSecret := getEnv("APP_SECRET", getEnv("JWT_SECRET", defaultSecret))

	if env == "production" && appSecret == defaultSecret {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}
	if authMode == AuthModeLegacy {
		fmt.Println("【警告】AUTH_MODE=legacy：令牌不做校验，所有请求均视为用户", legacyUserID)
	}

	return &Config{
		Env:                env,
		AppSecret:          appSecret,
		DatabaseURL:        dbURL,
		JWTExpiry:          time.Duration(expiryHours) * time.Hour,
		Port:               getEnv("PORT", "8080"),
		AuthMode:           authMode,
		LegacyUserID:       legacyUserID,
		VideoListLimit:     videoLimit,
		CourseDurationUnit: getEnv("COURSE_DURATION_UNIT", "horas"),
		Labels:             labels,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("环境变量 %s 不是合法整数: %w", key, err)
	}
	return n, nil
}
