// Package config owns process-level configuration (ports, logging,
// TLS, persisted-settings path) and the persisted GameSettings
// key-value store.
package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Process holds the server's environment: PORT, NODE_ENV,
// ALLOWED_ORIGINS, LOG_LEVEL, LOG_TO_FILE, plus TLS material and the
// settings-persistence path.
type Process struct {
	Port           int
	DevMode        bool // NODE_ENV=development
	AllowedOrigins []string
	LogLevel       string
	LogToFile      bool
	LogFilePath    string
	SettingsPath   string
	TLSCertPath    string
	TLSKeyPath     string
	TickRate       time.Duration
	ShutdownGrace  time.Duration
}

// BindFlags registers flags on fs and binds them to viper under v, with
// environment-variable fallbacks for every flag.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) *Process {
	v.SetEnvPrefix("MOTIONPARTY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Process{}

	fs.IntVarP(&cfg.Port, "port", "p", 8080, "port to listen on (env: PORT)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "debug|info|warn|error (env: LOG_LEVEL)")
	fs.BoolVar(&cfg.LogToFile, "log-to-file", false, "also write logs to --log-file (env: LOG_TO_FILE)")
	fs.StringVar(&cfg.LogFilePath, "log-file", "motionparty.log", "log file path when --log-to-file is set")
	fs.StringVar(&cfg.SettingsPath, "settings-path", "settings.json", "path to the persisted game-settings JSON file")
	fs.StringVar(&cfg.TLSCertPath, "tls-cert", "", "path to TLS certificate; enables HTTPS when present with --tls-key")
	fs.StringVar(&cfg.TLSKeyPath, "tls-key", "", "path to TLS key")
	fs.DurationVar(&cfg.TickRate, "tick-rate", 100*time.Millisecond, "engine tick period")
	fs.DurationVar(&cfg.ShutdownGrace, "shutdown-grace", 10*time.Second, "hard deadline for graceful shutdown")

	_ = v.BindPFlag("port", fs.Lookup("port"))
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("node_env", "NODE_ENV")
	_ = v.BindEnv("allowed_origins", "ALLOWED_ORIGINS")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_to_file", "LOG_TO_FILE")

	return cfg
}

// ApplyViper overlays viper-resolved env values onto cfg for any flag the
// user did not explicitly set, then normalizes the NODE_ENV / origins
// fields that have no direct flag equivalent.
func ApplyViper(cfg *Process, fs *pflag.FlagSet, v *viper.Viper) {
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		_ = fs.Set(f.Name, v.GetString(f.Name))
	})

	cfg.DevMode = strings.EqualFold(v.GetString("node_env"), "development")
	if raw := v.GetString("allowed_origins"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	if v.IsSet("log_to_file") {
		cfg.LogToFile = v.GetBool("log_to_file")
	}
	if v.IsSet("log_level") && cfg.LogLevel == "info" {
		cfg.LogLevel = v.GetString("log_level")
	}
}

// UsesTLS reports whether both cert and key paths were configured.
func (p *Process) UsesTLS() bool {
	return p.TLSCertPath != "" && p.TLSKeyPath != ""
}
