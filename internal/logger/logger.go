package logger

import (
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"

	"crown_transport/internal/config"
)

// Setup points logrus at a rotating log file.
func Setup(s config.Settings) {
	// 1) Lumberjack for file rotation
	rotator := &lumberjack.Logger{
		Filename:   s.LogFile,
		MaxSize:    s.LogMaxSizeMB, // megabytes
		MaxBackups: s.LogMaxBackups,
		MaxAge:     s.LogMaxAgeDays, // days
		Compress:   true,
	}

	// 2) Configure Logrus to write to that file
	logrus.SetOutput(rotator)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetLevel(ParseLevel(s.LogLevel))
}

// ParseLevel maps a level name to logrus, defaulting to debug.
func ParseLevel(name string) logrus.Level {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.DebugLevel
	}
	return lvl
}
