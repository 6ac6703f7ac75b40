package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（对应 config/config.yaml）
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`     // 服务器配置
	Schedule   ScheduleConfig   `mapstructure:"schedule"`   // 赛程抓取配置
	Liquipedia LiquipediaConfig `mapstructure:"liquipedia"` // 上游 Liquipedia 配置
	Log        LogConfig        `mapstructure:"log"`        // 日志配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string   `mapstructure:"host"`          // 监听地址
	Port         int      `mapstructure:"port"`          // 服务端口
	Mode         string   `mapstructure:"mode"`          // Gin运行模式：debug/release/test
	AllowOrigins []string `mapstructure:"allow_origins"` // CORS 允许的来源，* 表示全部
	PublicDir    string   `mapstructure:"public_dir"`    // 静态文件目录（前端页面）
}

// ScheduleConfig 赛程抓取配置
type ScheduleConfig struct {
	Club            string        `mapstructure:"club"`             // 俱乐部展示名，同时作为查询条件
	ClubAliases     []string      `mapstructure:"club_aliases"`     // 俱乐部别名，用于过滤无队伍条件的批量结果
	Games           []string      `mapstructure:"games"`            // 需要查询的游戏 slug
	OutputPath      string        `mapstructure:"output_path"`      // 快照文件路径
	RefreshInterval time.Duration `mapstructure:"refresh_interval"` // serve 模式下的后台刷新间隔，0 表示不刷新
	KeepUndated     bool          `mapstructure:"keep_undated"`     // 没有开赛时间的比赛是否保留
	KeepUnparseable bool          `mapstructure:"keep_unparseable"` // 开赛时间无法解析的比赛是否保留
}

// LiquipediaConfig 上游配置
type LiquipediaConfig struct {
	LPDBBaseURL  string            `mapstructure:"lpdb_base_url"` // LPDB API 基础地址
	WikiBaseURL  string            `mapstructure:"wiki_base_url"` // MediaWiki 基础地址（cargoquery）
	APIKey       string            `mapstructure:"api_key"`       // LPDB Bearer 凭证
	UserAgent    string            `mapstructure:"user_agent"`    // Liquipedia 要求带联系方式的 UA
	DemoMode     bool              `mapstructure:"demo_mode"`     // 演示模式：读取本地样例，不请求上游
	SamplesDir   string            `mapstructure:"samples_dir"`   // 演示样例目录
	Timeout      time.Duration     `mapstructure:"timeout"`       // 单次请求超时
	RateInterval time.Duration     `mapstructure:"rate_interval"` // 两次请求之间的最小间隔
	RetryCount   int               `mapstructure:"retry_count"`   // 重试次数
	Limit        int               `mapstructure:"limit"`         // 单页条数上限（只取一页）
	Proxy        string            `mapstructure:"proxy"`         // 代理地址
	Wikis        map[string]string `mapstructure:"wikis"`         // 游戏 slug → wiki 名
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// DefaultUserAgent 未配置 UA 时使用
const DefaultUserAgent = "EsportsScheduleExtension/0.1 (contact: you@example.com)"

// DefaultWikis 游戏 slug 与 Liquipedia wiki 的对应关系
var DefaultWikis = map[string]string{
	"valorant":          "valorant",
	"league_of_legends": "leagueoflegends",
	"rocket_league":     "rocketleague",
	"counter_strike_2":  "counterstrike",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.public_dir", "./public")

	v.SetDefault("schedule.club", "Team Vitality")
	v.SetDefault("schedule.club_aliases", []string{"Team Vitality", "Vitality"})
	v.SetDefault("schedule.games", []string{"valorant"})
	v.SetDefault("schedule.output_path", "./public/data/schedule.json")
	v.SetDefault("schedule.refresh_interval", time.Duration(0))
	v.SetDefault("schedule.keep_undated", true)
	v.SetDefault("schedule.keep_unparseable", true)

	v.SetDefault("liquipedia.lpdb_base_url", "https://api.liquipedia.net/api/v1")
	v.SetDefault("liquipedia.wiki_base_url", "https://liquipedia.net")
	v.SetDefault("liquipedia.user_agent", DefaultUserAgent)
	v.SetDefault("liquipedia.demo_mode", false)
	v.SetDefault("liquipedia.samples_dir", "./samples")
	v.SetDefault("liquipedia.timeout", 25*time.Second)
	v.SetDefault("liquipedia.rate_interval", 2*time.Second)
	v.SetDefault("liquipedia.retry_count", 0)
	v.SetDefault("liquipedia.limit", 100)
	v.SetDefault("liquipedia.wikis", DefaultWikis)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig 加载配置文件（<dir>/config.yaml），敏感项从 .env / 环境变量覆盖（不提交 git）。
// 配置文件不存在时使用默认值
func LoadConfig(dir string) (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "./config"
	}
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 部署相关与敏感字段：用 env 覆盖（优先级 env > yaml）
	if err := overrideFromEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖配置（沿用原抓取脚本的变量名）
func overrideFromEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("LIQUIPEDIA_API_KEY")); v != "" {
		cfg.Liquipedia.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("LIQUIPEDIA_USER_AGENT")); v != "" {
		cfg.Liquipedia.UserAgent = v
	}
	if v := strings.TrimSpace(os.Getenv("LIQUIPEDIA_PROXY")); v != "" {
		cfg.Liquipedia.Proxy = v
	}
	if v := strings.TrimSpace(os.Getenv("DEMO_MODE")); v != "" {
		cfg.Liquipedia.DemoMode = v == "1" || strings.EqualFold(v, "true")
	}
	if v := strings.TrimSpace(os.Getenv("CLUB_NAME")); v != "" {
		cfg.Schedule.Club = v
	}
	if v := os.Getenv("GAMES"); strings.TrimSpace(v) != "" {
		cfg.Schedule.Games = splitCSV(v)
	}
	if v := strings.TrimSpace(os.Getenv("OUTPUT_PATH")); v != "" {
		cfg.Schedule.OutputPath = v
	}
	if v := strings.TrimSpace(os.Getenv("BACKEND_HOST")); v != "" {
		cfg.Server.Host = v
	}
	if v := strings.TrimSpace(os.Getenv("BACKEND_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("解析 BACKEND_PORT 失败: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("ALLOW_ORIGINS"); strings.TrimSpace(v) != "" {
		cfg.Server.AllowOrigins = splitCSV(v)
	}
	return nil
}

// normalize 去掉空白项，俱乐部名总是作为别名之一
func (c *Config) normalize() {
	c.Schedule.Club = strings.TrimSpace(c.Schedule.Club)
	c.Schedule.Games = trimAll(c.Schedule.Games)
	c.Server.AllowOrigins = trimAll(c.Server.AllowOrigins)

	aliases := trimAll(c.Schedule.ClubAliases)
	hasClub := false
	for _, a := range aliases {
		if a == c.Schedule.Club {
			hasClub = true
			break
		}
	}
	if !hasClub && c.Schedule.Club != "" {
		aliases = append([]string{c.Schedule.Club}, aliases...)
	}
	c.Schedule.ClubAliases = aliases

	if strings.TrimSpace(c.Liquipedia.UserAgent) == "" {
		c.Liquipedia.UserAgent = DefaultUserAgent
	}
	if len(c.Liquipedia.Wikis) == 0 {
		c.Liquipedia.Wikis = DefaultWikis
	}
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.Schedule.Club == "" {
		return fmt.Errorf("schedule.club 不能为空")
	}
	if len(c.Schedule.Games) == 0 {
		return fmt.Errorf("schedule.games 不能为空")
	}
	if c.Schedule.OutputPath == "" {
		return fmt.Errorf("schedule.output_path 不能为空")
	}
	if c.Schedule.RefreshInterval < 0 {
		return fmt.Errorf("schedule.refresh_interval 不能为负数")
	}
	if c.Liquipedia.RateInterval <= 0 {
		return fmt.Errorf("liquipedia.rate_interval 必须大于0")
	}
	if c.Liquipedia.Timeout <= 0 {
		return fmt.Errorf("liquipedia.timeout 必须大于0")
	}
	if c.Liquipedia.RetryCount < 0 {
		return fmt.Errorf("liquipedia.retry_count 不能为负数")
	}
	if c.Liquipedia.Limit <= 0 {
		return fmt.Errorf("liquipedia.limit 必须大于0")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port 非法: %d", c.Server.Port)
	}
	if len(c.Server.AllowOrigins) == 0 {
		return fmt.Errorf("server.allow_origins 不能为空")
	}
	return nil
}

// Addr gin 监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func splitCSV(v string) []string {
	return trimAll(strings.Split(v, ","))
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// WikiFor 游戏 slug → wiki 名
func (l LiquipediaConfig) WikiFor(game string) (string, bool) {
	wiki, ok := l.Wikis[strings.ToLower(strings.TrimSpace(game))]
	if !ok || wiki == "" {
		return "", false
	}
	return wiki, true
}
