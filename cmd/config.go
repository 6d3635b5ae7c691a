package cmd

import (
	"fmt"
	"strings"
	"time"

	consts "github.com/khanhnv2901/laberator-checker/internal/shared/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultPort        = consts.DefaultPort
	defaultTimeoutSecs = int(consts.DefaultTimeout / time.Second)
	envPrefix          = "LABERATOR"
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Port        int
	TimeoutSecs int
	ChannelPath string
	Verbose     bool
}

// Timeout returns the per-call network timeout.
func (c CLIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Port:        defaultPort,
		TimeoutSecs: defaultTimeoutSecs,
		ChannelPath: consts.DefaultChannelPath,
	}
}

// loadConfig merges defaults, the config file, LABERATOR_* environment
// variables and flags, in increasing order of precedence.
func loadConfig(cmd *cobra.Command) error {
	viper.Reset()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("port", defaultPort)
	viper.SetDefault("timeout_secs", defaultTimeoutSecs)
	viper.SetDefault("channel_path", consts.DefaultChannelPath)
	viper.SetDefault("verbose", false)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".laberator-checker")
		viper.SetConfigType("yaml")
		_ = viper.ReadInConfig()
	}

	cfg := newCLIConfig()
	cfg.Port = viper.GetInt("port")
	cfg.TimeoutSecs = viper.GetInt("timeout_secs")
	cfg.ChannelPath = viper.GetString("channel_path")
	cfg.Verbose = viper.GetBool("verbose")

	flags := cmd.Flags()
	applyIntFlag(flags, "port", func(v int) { cfg.Port = v })
	applyIntFlag(flags, "timeout", func(v int) { cfg.TimeoutSecs = v })
	applyBoolFlag(flags, "verbose", func(v bool) { cfg.Verbose = v })

	if err := cfg.validate(); err != nil {
		return err
	}
	cliConfig = cfg
	return nil
}

func (c *CLIConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.TimeoutSecs <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.TimeoutSecs)
	}
	if !strings.HasPrefix(c.ChannelPath, "/") {
		return fmt.Errorf("channel path %q must start with /", c.ChannelPath)
	}
	return nil
}

// applyIntFlag calls setter only when the user explicitly set the flag, so
// config file and environment values survive unset flags.
func applyIntFlag(flags *pflag.FlagSet, name string, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || !flag.Changed {
		return
	}
	if v, err := flags.GetInt(name); err == nil {
		setter(v)
	}
}

func applyBoolFlag(flags *pflag.FlagSet, name string, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || !flag.Changed {
		return
	}
	if v, err := flags.GetBool(name); err == nil {
		setter(v)
	}
}
