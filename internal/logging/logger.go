package logging

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/zzenonn/zreplica/internal/config"
)

// InitLogger sets the log level and format based on the provided configuration.
// Logs go to stderr so they never interleave with progress bars on stdout.
func InitLogger(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	log.SetLevel(levelFor(cfg.LogLevel))
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:          true,
		DisableLevelTruncation: true,
	})
}

// levelFor maps a configured level name to a logrus level. Unknown names
// fall back to error so a typo never floods the terminal.
func levelFor(name string) log.Level {
	lvl, err := log.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return log.ErrorLevel
	}
	return lvl
}

func init() {
	log.SetLevel(levelFor(os.Getenv("LOG_LEVEL")))
}
