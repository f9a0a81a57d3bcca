package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

var (
	instance *logrus.Logger
	once     sync.Once
)

// GetLogger returns the process-wide logger, configured from LOG_LEVEL and LOG_FORMAT on first use.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		instance = logrus.New()
		instance.SetOutput(os.Stdout)
		configure(instance, environment_variables.EnvironmentVariables.LOG_LEVEL, environment_variables.EnvironmentVariables.LOG_FORMAT)
	})
	return instance
}

func configure(l *logrus.Logger, level string, format string) {
	if parsed, err := logrus.ParseLevel(strings.TrimSpace(level)); err == nil {
		l.SetLevel(parsed)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	if strings.EqualFold(format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	l.SetFormatter(&logrus.JSONFormatter{})
}
