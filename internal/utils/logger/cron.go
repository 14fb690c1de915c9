package logger

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

type cronLogger struct {
	l *Logger
}

// Cron adapts the logger to the cron.Logger interface so scheduler
// diagnostics (skipped runs, recovered panics) land in the same sink.
func (l *Logger) Cron() cron.Logger {
	return &cronLogger{l: l}
}

func (c *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("[cron] "+msg, keyValuesToMap(keysAndValues))
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := keyValuesToMap(keysAndValues)
	if err != nil {
		fields["error"] = err.Error()
	}
	c.l.Error("[cron] "+msg, fields)
}

func keyValuesToMap(keysAndValues []interface{}) map[string]string {
	fields := make(map[string]string, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = fmt.Sprint(keysAndValues[i+1])
	}
	if len(keysAndValues)%2 == 1 {
		fields["extra"] = fmt.Sprint(keysAndValues[len(keysAndValues)-1])
	}

	return fields
}
