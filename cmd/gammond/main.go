// Command gammond runs the gammon REST/WebSocket API server.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yourusername/gammon/pkg/api"
)

const version = "0.1.0"

func main() {
	pflag.String("host", "localhost", "host to bind to (use 0.0.0.0 for all interfaces)")
	pflag.Int("port", 8080, "port to listen on")
	pflag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	pflag.Bool("log-json", false, "emit JSON logs instead of console output")
	pflag.Int("max-fast", 100, "max concurrent analysis requests")
	pflag.Int("max-slow", 4, "max concurrent streamed games")
	pflag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	pflag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	pflag.String("config", "", "config file (optional)")
	showVersion := pflag.Bool("version", false, "show version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("gammond v%s\n", version)
		os.Exit(0)
	}

	v := viper.New()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	v.SetEnvPrefix("GAMMON")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
	}

	logger := newLogger(v.GetString("log-level"), v.GetBool("log-json"))

	config := api.ServerConfig{
		Host:           v.GetString("host"),
		Port:           v.GetInt("port"),
		ReadTimeout:    v.GetDuration("read-timeout"),
		WriteTimeout:   v.GetDuration("write-timeout"),
		IdleTimeout:    60 * time.Second,
		MaxFastWorkers: v.GetInt("max-fast"),
		MaxSlowWorkers: v.GetInt("max-slow"),
	}

	server := api.NewServer(config, version, logger)
	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func newLogger(level string, jsonOut bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if jsonOut {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}
