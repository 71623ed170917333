package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: server.write_timeout is read
// from GRIDSENSE_SERVER_WRITE_TIMEOUT.
const EnvPrefix = "GRIDSENSE"

type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Stream    StreamConfig    `mapstructure:"stream"`
	Publish   PublishConfig   `mapstructure:"publish"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type AuthConfig struct {
	SigningKey  string        `mapstructure:"signing_key"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	AllowSignUp bool          `mapstructure:"allow_sign_up"`
}

// SimulatorConfig drives the background snapshot feed. CriticalRatio is the
// only field applied on hot reload.
type SimulatorConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Tick          time.Duration `mapstructure:"tick"`
	CriticalRatio float64       `mapstructure:"critical_ratio"`
}

type StreamConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// PublishConfig lists the status sinks. Timeout bounds one assessment's
// hand-off to all of them and must stay below server.write_timeout.
type PublishConfig struct {
	Timeout time.Duration  `mapstructure:"timeout"`
	File    FileSinkConfig `mapstructure:"file"`
	Repo    RepoSinkConfig `mapstructure:"repo"`
}

type FileSinkConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// RepoSinkConfig points at a repository contents API. The token itself never
// lives in the file; TokenEnv names the variable holding it.
type RepoSinkConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	BaseURL       string        `mapstructure:"base_url"`
	Owner         string        `mapstructure:"owner"`
	Repo          string        `mapstructure:"repo"`
	Path          string        `mapstructure:"path"`
	Branch        string        `mapstructure:"branch"`
	CommitMessage string        `mapstructure:"commit_message"`
	TokenEnv      string        `mapstructure:"token_env"`
	Attempts      int           `mapstructure:"attempts"`
	Backoff       time.Duration `mapstructure:"backoff"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

var (
	ErrMissingSigningKey = errors.New("auth.signing_key must be set")
	ErrInvalidRatio      = errors.New("simulator.critical_ratio must be within [0,1]")
	ErrRepoTarget        = errors.New("publish.repo requires owner, repo and path")
	ErrPublishTimeout    = errors.New("publish.timeout must be positive and below server.write_timeout")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.path", "gridsense.db")

	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.allow_sign_up", true)

	v.SetDefault("simulator.enabled", true)
	v.SetDefault("simulator.tick", 5*time.Second)
	v.SetDefault("simulator.critical_ratio", 0.2)

	v.SetDefault("stream.interval", 2*time.Second)
	v.SetDefault("stream.min_interval", 500*time.Millisecond)

	v.SetDefault("publish.timeout", 5*time.Second)
	v.SetDefault("publish.file.enabled", true)
	v.SetDefault("publish.file.path", "model_output.json")
	v.SetDefault("publish.repo.enabled", false)
	v.SetDefault("publish.repo.base_url", "https://api.github.com")
	v.SetDefault("publish.repo.owner", "")
	v.SetDefault("publish.repo.repo", "")
	v.SetDefault("publish.repo.path", "model_output.json")
	v.SetDefault("publish.repo.branch", "")
	v.SetDefault("publish.repo.commit_message", "Update grid status")
	v.SetDefault("publish.repo.token_env", "GRIDSENSE_PUBLISH_TOKEN")
	v.SetDefault("publish.repo.attempts", 3)
	v.SetDefault("publish.repo.backoff", time.Second)
	v.SetDefault("publish.repo.timeout", 10*time.Second)
}

// Load reads config.yml from dir (when present), applies defaults and
// GRIDSENSE_* environment overrides. The returned viper instance is kept for
// Watch.
func Load(dir string) (Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, v, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the process cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return ErrMissingSigningKey
	}
	if c.Simulator.CriticalRatio < 0 || c.Simulator.CriticalRatio > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidRatio, c.Simulator.CriticalRatio)
	}
	if pt, wt := c.Publish.Timeout, c.Server.WriteTimeout; pt <= 0 || (wt > 0 && pt >= wt) {
		return fmt.Errorf("%w: publish %v, write %v", ErrPublishTimeout, pt, wt)
	}
	r := c.Publish.Repo
	if r.Enabled && (r.Owner == "" || r.Repo == "" || r.Path == "") {
		return ErrRepoTarget
	}
	return nil
}

// Watch re-decodes the file on every change and hands the result to
// onChange. A change that fails to decode or validate is passed to onError
// and the previous config stays in effect.
func Watch(v *viper.Viper, onChange func(Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
