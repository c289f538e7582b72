package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/example/vocabtok/internal/segment"
)

type Config struct {
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Server    ServerConfig    `mapstructure:"server"`
	LogLevel  string          `mapstructure:"log_level"`
}

type TokenizerConfig struct {
	Strategy string `mapstructure:"strategy"`
	Sentinel int    `mapstructure:"sentinel"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
	Workers         int    `mapstructure:"workers"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Tokenizer: TokenizerConfig{
			Strategy: string(segment.Characters),
			Sentinel: -1,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    4096,
			RequestTimeout:  10,
			ShutdownTimeout: 30,
			Workers:         2,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("tokenizer-strategy", defaults.Tokenizer.Strategy, "Segmentation strategy (characters|words)")
	fs.String("strategy", defaults.Tokenizer.Strategy, "Segmentation strategy (alias for --tokenizer-strategy)")
	fs.Int("tokenizer-sentinel", defaults.Tokenizer.Sentinel, "Token id emitted for out-of-vocabulary symbols (must be negative)")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request text size in bytes")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request deadline in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain period in seconds")
	fs.Int("server-workers", defaults.Server.Workers, "Maximum concurrent tokenize requests")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
		// Aliases map flag names onto the dotted config keys. Registering
		// them without bound flags shadows the config-file keys, so they
		// are only installed alongside the flag binding.
		registerAliases(v)

		// Viper keeps a single target per alias, so --strategy cannot be a
		// second alias of tokenizer.strategy. When the shorthand flag was
		// set explicitly, promote its value to the override layer; it then
		// wins over --tokenizer-strategy as well.
		if f := opts.Cmd.Flags().Lookup("strategy"); f != nil && f.Changed {
			v.Set("tokenizer.strategy", f.Value.String())
		}
	}

	v.SetEnvPrefix("VOCABTOK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("tokenizer.strategy", "VOCABTOK_STRATEGY"); err != nil {
		return Config{}, fmt.Errorf("bind strategy env var: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("vocabtok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the tokenizer cannot honor. A non-negative
// sentinel could collide with an assigned vocabulary id, so it is refused
// here rather than silently producing ambiguous token sequences.
func (c Config) Validate() error {
	if _, err := segment.ParseStrategy(c.Tokenizer.Strategy); err != nil {
		return err
	}
	if c.Tokenizer.Sentinel >= 0 {
		return fmt.Errorf("sentinel must be negative, got %d", c.Tokenizer.Sentinel)
	}
	if c.Server.MaxTextBytes <= 0 {
		return fmt.Errorf("server max_text_bytes must be positive, got %d", c.Server.MaxTextBytes)
	}
	return nil
}

// Strategy returns the parsed segmentation strategy. Call Validate first;
// an unparseable value falls back to character segmentation.
func (c Config) Strategy() segment.Strategy {
	s, err := segment.ParseStrategy(c.Tokenizer.Strategy)
	if err != nil {
		return segment.Characters
	}
	return s
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("tokenizer.strategy", c.Tokenizer.Strategy)
	v.SetDefault("tokenizer.sentinel", c.Tokenizer.Sentinel)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("tokenizer.strategy", "tokenizer-strategy")
	v.RegisterAlias("tokenizer.sentinel", "tokenizer-sentinel")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.max_text_bytes", "server-max-text-bytes")
	v.RegisterAlias("server.request_timeout", "server-request-timeout")
	v.RegisterAlias("server.shutdown_timeout", "server-shutdown-timeout")
	v.RegisterAlias("server.workers", "server-workers")
	v.RegisterAlias("log_level", "log-level")
}
