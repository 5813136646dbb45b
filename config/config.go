package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port            int
	MongoURI        string
	MongoDB         string
	JWTKey          string
	Debug           bool
	AdvanceInterval time.Duration // 自动推进任务的执行间隔
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
	SMTPFrom        string
}

// LoadConfig 从环境变量加载配置, 存在 .env 文件时优先加载
func LoadConfig() *Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	intervalMin, _ := strconv.Atoi(getEnv("ADVANCE_INTERVAL_MINUTES", "60"))

	return &Config{
		Port:            port,
		MongoURI:        getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/leadflow"),
		MongoDB:         getEnv("MONGO_DB", "leadflow"),
		JWTKey:          getEnv("JWT_KEY", "your-secret-key"), // 实际环境应替换为安全密钥
		Debug:           getEnv("GIN_MODE", "debug") == "debug",
		AdvanceInterval: time.Duration(intervalMin) * time.Minute,
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        smtpPort,
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:        getEnv("SMTP_FROM", "no-reply@leadflow.com"),
	}
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
