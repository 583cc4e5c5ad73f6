package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`    // 服务器配置
	Log       LogConfig                 `mapstructure:"log"`       // 日志配置
	Database  DatabaseConfig            `mapstructure:"database"`  // 数据库配置
	Sync      SyncConfig                `mapstructure:"sync"`      // 同步调度配置
	Platforms map[string]PlatformConfig `mapstructure:"platforms"` // 多平台独立配置
	YouTube   YouTubeConfig             `mapstructure:"youtube"`   // 题解视频配置
	Redis     RedisConfig               `mapstructure:"redis"`     // 视频信息缓存
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port       int    `mapstructure:"port"`        // 服务端口
	Mode       string `mapstructure:"mode"`        // Gin运行模式：debug/release/test
	CORSOrigin string `mapstructure:"cors_origin"` // 前端地址
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`            // postgres/sqlite
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	LogSQL          bool          `mapstructure:"log_sql"`           // 是否打印SQL
}

// SyncConfig 同步调度配置
type SyncConfig struct {
	Interval          time.Duration `mapstructure:"interval"`           // 定时刷新间隔，0 表示不在进程内调度
	EnabledPlatforms  []string      `mapstructure:"enabled_platforms"`  // 启用的平台列表
	UpsertConcurrency int           `mapstructure:"upsert_concurrency"` // 单批次并发入库上限，0 不限
}

// PlatformConfig 单个平台的独立配置
type PlatformConfig struct {
	BaseURL   string `mapstructure:"base_url"`   // API基础地址
	Timeout   int    `mapstructure:"timeout"`    // 请求超时（秒）
	Proxy     string `mapstructure:"proxy"`      // 代理地址
	UserAgent string `mapstructure:"user_agent"` // 部分平台拒绝默认UA
	Pages     int    `mapstructure:"pages"`      // 历史比赛分页数（LeetCode）
	PageSize  int    `mapstructure:"page_size"`  // 每页条数（LeetCode）
}

// YouTubeConfig 题解视频来源配置
type YouTubeConfig struct {
	BaseURL    string            `mapstructure:"base_url"`    // Data API 地址
	FeedURL    string            `mapstructure:"feed_url"`    // 无API Key时使用的播放列表RSS
	APIKey     string            `mapstructure:"api_key"`     // Data API Key
	Timeout    int               `mapstructure:"timeout"`     // 请求超时（秒）
	Proxy      string            `mapstructure:"proxy"`       // 代理地址
	MaxResults int               `mapstructure:"max_results"` // 单页条数
	MaxPages   int               `mapstructure:"max_pages"`   // 播放列表最多翻页数
	Playlists  map[string]string `mapstructure:"playlists"`   // 平台→播放列表ID
}

// RedisConfig 视频信息缓存，Addr 为空时不启用
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	VideoTTL time.Duration `mapstructure:"video_ttl"`
}

// HTTPOptions 平台HTTP客户端参数
func (p PlatformConfig) HTTPOptions() (timeout time.Duration, proxy, userAgent string) {
	return time.Duration(p.Timeout) * time.Second, p.Proxy, p.UserAgent
}

// setDefaults 默认值，config.yaml 缺省字段时生效
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors_origin", "http://localhost:3000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("sync.interval", 12*time.Hour)
	v.SetDefault("sync.enabled_platforms", []string{"leetcode", "codeforces", "codechef"})
	v.SetDefault("platforms.leetcode.base_url", "https://leetcode.com/graphql")
	v.SetDefault("platforms.leetcode.timeout", 30)
	v.SetDefault("platforms.leetcode.pages", 10)
	v.SetDefault("platforms.leetcode.page_size", 30)
	v.SetDefault("platforms.codeforces.base_url", "https://codeforces.com/api/contest.list")
	v.SetDefault("platforms.codeforces.timeout", 30)
	v.SetDefault("platforms.codechef.base_url", "https://www.codechef.com/api/list/contests/all?sort_by=START&sorting_order=asc&offset=0&mode=all")
	v.SetDefault("platforms.codechef.timeout", 30)
	v.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("youtube.feed_url", "https://www.youtube.com/feeds/videos.xml")
	v.SetDefault("youtube.timeout", 20)
	v.SetDefault("youtube.max_results", 50)
	v.SetDefault("youtube.max_pages", 1)
	v.SetDefault("youtube.playlists", map[string]string{
		"leetcode":   "PLcXpkI9A-RZI6FhydNz3JBt_-p_i25Cbr",
		"codeforces": "PLcXpkI9A-RZLUfBSNp-YQBCOezZKbDSgB",
		"codechef":   "PLcXpkI9A-RZIZ6lsE0KCcLWeKNoG45fYr",
	})
	v.SetDefault("redis.video_ttl", 24*time.Hour)
}

// LoadConfig 加载配置文件（默认 ./config/config.yaml），敏感项从 .env 覆盖（不提交 git）
// path 非空时直接读取该文件；配置文件不存在时仅使用默认值与环境变量
func LoadConfig(path string) (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	v := viper.New()
	setDefaults(v)

	// 2. 读取 config.yaml
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.YouTube.APIKey = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("CLIENT_URL"); v != "" {
		cfg.Server.CORSOrigin = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate 校验必要配置
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn 未配置（可通过 DATABASE_DSN 设置）")
	}
	if c.Sync.Interval < 0 {
		return fmt.Errorf("sync.interval 不能为负数")
	}
	return nil
}

// IsPlatformEnabled 平台是否在 enabled_platforms 中；列表为空视为全部启用
func (s SyncConfig) IsPlatformEnabled(name string) bool {
	if len(s.EnabledPlatforms) == 0 {
		return true
	}
	for _, p := range s.EnabledPlatforms {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}
