package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/padidar/visitor-analytics-go/internal/report"
)

const (
	defaultPort            = ":8080"
	defaultDBPath          = "./data/visitors.db"
	defaultQueryTimeout    = 10 * time.Second
	defaultTokenTTL        = 12 * time.Hour
	defaultOperatingStart  = "08:00"
	defaultOperatingEnd    = "22:00"
	defaultSlotWidthMin    = 30
	defaultRangeStartHour  = 8
	defaultIngestTopic     = "visitor-detections"
	defaultIngestGroupID   = "visitor-analytics"
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
	defaultLogDirectory    = "log"
	defaultLogFilename     = "app.log"
	defaultLogMaxSizeMB    = 100
	defaultLogMaxBackups   = 3
	defaultLogMaxAgeDays   = 7

	// Environment variable prefix
	envPrefix = "VISITOR"
)

type Config struct {
	Server   ServerConfig `mapstructure:"server"`
	Database DBConfig     `mapstructure:"database"`
	Auth     AuthConfig   `mapstructure:"auth"`
	Report   ReportConfig `mapstructure:"report"`
	Ingest   IngestConfig `mapstructure:"ingest"`
	Log      LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	QueryTimeout time.Duration `mapstructure:"queryTimeout"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwtSecret"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"`
}

// ReportConfig is the aggregation policy, kept in configuration instead of
// module-level constants so deployments and tests can vary it.
type ReportConfig struct {
	OperatingStart   string `mapstructure:"operatingStart"` // HH:MM
	OperatingEnd     string `mapstructure:"operatingEnd"`   // HH:MM
	SlotWidthMinutes int    `mapstructure:"slotWidthMinutes"`
	RangeStartHour   int    `mapstructure:"rangeStartHour"`
}

type IngestConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"groupID"`
}

type LogConfig struct {
	Level              string `mapstructure:"level"`
	Format             string `mapstructure:"format"`
	FileLoggingEnabled bool   `mapstructure:"fileLoggingEnabled"`
	Directory          string `mapstructure:"directory"`
	Filename           string `mapstructure:"filename"`
	MaxSize            int    `mapstructure:"maxSize"`    // Max size in MB
	MaxBackups         int    `mapstructure:"maxBackups"` // Max backup files
	MaxAge             int    `mapstructure:"maxAge"`     // Max days to retain
	Compress           bool   `mapstructure:"compress"`
}

// Load reads configuration from an optional YAML file plus VISITOR_* env
// overrides, applies defaults, and validates.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	configureViper(v, configPath)
	setDefaults(v)

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadingConfigFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnmarshallingConfig, err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Policy converts the report section into the policy value threaded through
// the aggregation engine.
func (c ReportConfig) Policy() (report.Policy, error) {
	start, err := parseClock(c.OperatingStart)
	if err != nil {
		return report.Policy{}, fmt.Errorf("%w: operatingStart: %v", ErrInvalidReportPolicy, err)
	}
	end, err := parseClock(c.OperatingEnd)
	if err != nil {
		return report.Policy{}, fmt.Errorf("%w: operatingEnd: %v", ErrInvalidReportPolicy, err)
	}
	p := report.Policy{
		DayStart:       start,
		DayEnd:         end,
		SlotWidth:      time.Duration(c.SlotWidthMinutes) * time.Minute,
		RangeStartHour: c.RangeStartHour,
	}
	if err := p.Validate(); err != nil {
		return report.Policy{}, fmt.Errorf("%w: %v", ErrInvalidReportPolicy, err)
	}
	return p, nil
}

// parseClock turns "HH:MM" into an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func configureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.queryTimeout", defaultQueryTimeout)
	v.SetDefault("database.path", defaultDBPath)
	// Registered empty so the env override is visible to Unmarshal.
	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.tokenTTL", defaultTokenTTL)
	v.SetDefault("report.operatingStart", defaultOperatingStart)
	v.SetDefault("report.operatingEnd", defaultOperatingEnd)
	v.SetDefault("report.slotWidthMinutes", defaultSlotWidthMin)
	v.SetDefault("report.rangeStartHour", defaultRangeStartHour)
	v.SetDefault("ingest.enabled", false)
	v.SetDefault("ingest.topic", defaultIngestTopic)
	v.SetDefault("ingest.groupID", defaultIngestGroupID)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("log.fileLoggingEnabled", false)
	v.SetDefault("log.directory", defaultLogDirectory)
	v.SetDefault("log.filename", defaultLogFilename)
	v.SetDefault("log.maxSize", defaultLogMaxSizeMB)
	v.SetDefault("log.maxBackups", defaultLogMaxBackups)
	v.SetDefault("log.maxAge", defaultLogMaxAgeDays)
	v.SetDefault("log.compress", false)
}

func validateConfig(cfg *Config) error {
	if cfg.Auth.JWTSecret == "" {
		return ErrEmptyJWTSecret
	}
	if cfg.Server.QueryTimeout <= 0 {
		return ErrInvalidQueryTimeout
	}
	if cfg.Ingest.Enabled && len(cfg.Ingest.Brokers) == 0 {
		return ErrEmptyIngestBrokers
	}
	if _, err := cfg.Report.Policy(); err != nil {
		return err
	}
	return nil
}
