package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the global logger.
type Config struct {
	Level   string     `mapstructure:"level" yaml:"level"`
	Pattern string     `mapstructure:"pattern" yaml:"pattern"`
	Time    string     `mapstructure:"time" yaml:"time"`
	File    FileOutput `mapstructure:"file" yaml:"file"`
}

// FileOutput adds a rotated log file next to the always-on console output.
type FileOutput struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Path       string `mapstructure:"path" yaml:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

func defaultConfig() *Config {
	return &Config{
		Level:   "info",
		Pattern: "%time [%level] %msg %field%n",
		Time:    "2006-01-02 15:04:05.000",
	}
}

type logrusAdapter struct {
	entry *logrus.Entry
}

func newLogrusAdapter(cfg *Config) *logrusAdapter {
	l := logrus.New()
	l.SetFormatter(&formatter{pattern: cfg.Pattern, time: cfg.Time})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetOutput(os.Stdout)

	return &logrusAdapter{entry: logrus.NewEntry(l)}
}

func newConfiguredAdapter(cfg *Config) (*logrusAdapter, error) {
	if cfg == nil {
		cfg = defaultConfig()
	}
	if cfg.Pattern == "" {
		cfg.Pattern = defaultConfig().Pattern
	}
	if cfg.Time == "" {
		cfg.Time = defaultConfig().Time
	}

	a := newLogrusAdapter(cfg)

	if cfg.File.Enabled {
		if cfg.File.Path == "" {
			return nil, fmt.Errorf("log file output requires a path")
		}
		file := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}
		a.entry.Logger.SetOutput(io.MultiWriter(os.Stdout, file))
	}

	return a, nil
}

func (a *logrusAdapter) Debug(args ...interface{})                 { a.entry.Debug(args...) }
func (a *logrusAdapter) Debugf(format string, args ...interface{}) { a.entry.Debugf(format, args...) }
func (a *logrusAdapter) Info(args ...interface{})                  { a.entry.Info(args...) }
func (a *logrusAdapter) Infof(format string, args ...interface{})  { a.entry.Infof(format, args...) }
func (a *logrusAdapter) Warn(args ...interface{})                  { a.entry.Warn(args...) }
func (a *logrusAdapter) Warnf(format string, args ...interface{})  { a.entry.Warnf(format, args...) }
func (a *logrusAdapter) Error(args ...interface{})                 { a.entry.Error(args...) }
func (a *logrusAdapter) Errorf(format string, args ...interface{}) { a.entry.Errorf(format, args...) }
func (a *logrusAdapter) Fatal(args ...interface{})                 { a.entry.Fatal(args...) }
func (a *logrusAdapter) Fatalf(format string, args ...interface{}) { a.entry.Fatalf(format, args...) }

func (a *logrusAdapter) WithField(field string, value interface{}) Logger {
	return &logrusAdapter{entry: a.entry.WithField(field, value)}
}

func (a *logrusAdapter) WithFields(fields map[string]interface{}) Logger {
	return &logrusAdapter{entry: a.entry.WithFields(fields)}
}

func (a *logrusAdapter) WithError(err error) Logger {
	return &logrusAdapter{entry: a.entry.WithError(err)}
}

func (a *logrusAdapter) IsDebugEnabled() bool {
	return a.entry.Logger.IsLevelEnabled(logrus.DebugLevel)
}
