package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Capture  CaptureConfig  `mapstructure:"capture"`
	Vision   VisionConfig   `mapstructure:"vision"`
	OSS      OSSConfig      `mapstructure:"oss"`
	Cleanup  CleanupConfig  `mapstructure:"cleanup"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // sqlite 或 mysql
	DSN          string `mapstructure:"dsn"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type StorageConfig struct {
	ScreenshotsDir string `mapstructure:"screenshots_dir"`
	ReportsDir     string `mapstructure:"reports_dir"`
}

type CaptureConfig struct {
	WarmupOnStartup bool `mapstructure:"warmup_on_startup"` // 启动时预热浏览器
	NavTimeoutSec   int  `mapstructure:"nav_timeout_sec"`
	SettleDelaySec  int  `mapstructure:"settle_delay_sec"`
}

type VisionConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	Endpoint   string `mapstructure:"endpoint"`
	MaxPixels  int    `mapstructure:"max_pixels"` // 送入模型前图片最长边
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	CDNDomain       string `mapstructure:"cdn_domain"`
}

type CleanupConfig struct {
	ExpireHours int `mapstructure:"expire_hours"`
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "responsive_tests.db")
	viper.SetDefault("storage.screenshots_dir", "screenshots")
	viper.SetDefault("storage.reports_dir", "reports")
	viper.SetDefault("capture.nav_timeout_sec", 30)
	viper.SetDefault("capture.settle_delay_sec", 2)
	viper.SetDefault("vision.model", "gemini-2.0-flash-exp")
	viper.SetDefault("vision.endpoint", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("vision.max_pixels", 1024)
	viper.SetDefault("vision.timeout_sec", 120)
	viper.SetDefault("cleanup.expire_hours", 72)
}
