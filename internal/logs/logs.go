package logs

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// formatter prefixes each message with the owning component.
type formatter struct {
	owner string
	lf    log.Formatter
}

// Format satisfies the log.Formatter interface.
func (f *formatter) Format(e *log.Entry) ([]byte, error) {
	e.Message = fmt.Sprintf("[%s] %s", f.owner, e.Message)
	return f.lf.Format(e)
}

// NewLogger returns a text logger whose messages are tagged with owner.
func NewLogger(owner string, level string) *log.Logger {
	logger := log.New()
	logger.SetFormatter(&formatter{
		owner: owner,
		lf: &log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.StampMilli,
		},
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel converts a level name into a logrus level, defaulting to info.
func ParseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}
