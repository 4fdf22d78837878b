package infrastructures

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the process-wide logger. All packages log through
// the logrus standard logger, so this is the single place output format is
// decided.
func InitLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}
}
