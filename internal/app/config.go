package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/studyhours-backend/internal/data/db"
	"github.com/yungbote/studyhours-backend/internal/http/middleware"
	"github.com/yungbote/studyhours-backend/internal/platform/envutil"
	"github.com/yungbote/studyhours-backend/internal/realtime/bus"
)

const configFileEnv = "STUDY_CONFIG_FILE"

// Duration accepts "5s" style strings or a bare integer of seconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	s := strings.TrimSpace(node.Value)
	if s == "" {
		d.Duration = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		d.Duration = time.Duration(n) * time.Second
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	d.Duration = dd
	return nil
}

type HTTPConfig struct {
	Port            string   `yaml:"port"`
	CORSOrigins     []string `yaml:"cors_origins"`
	DefaultUserID   string   `yaml:"default_user_id"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

type DBConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
	File string `yaml:"file"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Env            string      `yaml:"env"`
	Timezone       string      `yaml:"timezone"`
	TimerTick      Duration    `yaml:"timer_tick"`
	MetricsEnabled bool        `yaml:"metrics_enabled"`
	HTTP           HTTPConfig  `yaml:"http"`
	DB             DBConfig    `yaml:"db"`
	Redis          RedisConfig `yaml:"redis"`
	Log            LogConfig   `yaml:"log"`
	Otel           OtelConfig  `yaml:"otel"`

	// Location is resolved from Timezone.
	Location *time.Location `yaml:"-"`
}

func defaultConfig() Config {
	return Config{
		Env:            "development",
		TimerTick:      Duration{time.Second},
		MetricsEnabled: true,
		HTTP: HTTPConfig{
			Port:            "8080",
			CORSOrigins:     middleware.DefaultOrigins,
			ShutdownTimeout: Duration{15 * time.Second},
		},
		DB:    DBConfig{Driver: db.DriverSQLite},
		Redis: RedisConfig{Channel: bus.DefaultChannel},
		Log:   LogConfig{Mode: "development"},
		Otel:  OtelConfig{ServiceName: "studyhours-backend", SampleRatio: 1},
	}
}

// LoadConfig layers defaults, the optional YAML file named by
// STUDY_CONFIG_FILE and then the environment. A .env file in the working
// directory is loaded first when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	if path := envutil.String(configFileEnv, ""); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Log.Mode = envutil.String("LOG_MODE", cfg.Log.Mode)
	cfg.Log.File = envutil.String("LOG_FILE", cfg.Log.File)
	cfg.Env = envutil.String("APP_ENV", cfg.Env)
	cfg.Timezone = envutil.String("TIMEZONE", cfg.Timezone)
	cfg.TimerTick.Duration = envutil.Duration("TIMER_TICK", cfg.TimerTick.Duration)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)

	cfg.HTTP.Port = envutil.String("PORT", cfg.HTTP.Port)
	cfg.HTTP.DefaultUserID = envutil.String("DEFAULT_USER_ID", cfg.HTTP.DefaultUserID)
	cfg.HTTP.ShutdownTimeout.Duration = envutil.Duration("SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout.Duration)
	if v := envutil.String("CORS_ORIGINS", ""); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}

	cfg.DB.Driver = envutil.String("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.DSN = envutil.String("DB_DSN", cfg.DB.DSN)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.Channel = envutil.String("REDIS_CHANNEL", cfg.Redis.Channel)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLE_RATIO", cfg.Otel.SampleRatio)
}

func (c *Config) validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case "":
		c.DB.Driver = db.DriverSQLite
	case db.DriverSQLite:
	case db.DriverPostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return errors.New("DB_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}

	c.Location = time.Local
	if tz := strings.TrimSpace(c.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		c.Location = loc
	}

	if c.TimerTick.Duration <= 0 {
		c.TimerTick.Duration = time.Second
	}
	if c.HTTP.ShutdownTimeout.Duration <= 0 {
		c.HTTP.ShutdownTimeout.Duration = 15 * time.Second
	}
	if strings.TrimSpace(c.HTTP.Port) == "" {
		c.HTTP.Port = "8080"
	}
	if c.Redis.Channel == "" {
		c.Redis.Channel = bus.DefaultChannel
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	if strings.Contains(c.HTTP.Port, ":") {
		return c.HTTP.Port
	}
	return ":" + c.HTTP.Port
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
