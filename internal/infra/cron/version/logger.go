package version

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// zeroLogCronLogger adapts zerolog to cron.Logger
type zeroLogCronLogger struct {
}

func (z zeroLogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	if log.Debug().Enabled() {
		formatted := formatTimeValues(keysAndValues)
		log.Debug().Fields(formatted).Msg(msg)
	}
}

func (z zeroLogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	if log.Error().Enabled() {
		formatted := formatTimeValues(keysAndValues)
		log.Error().Err(err).Fields(formatted).Msg(msg)
	}
}

// formatTimeValues returns the even-odd idx key-value pair slice as a map, with
// any time.Time values formatted as RFC3339
func formatTimeValues(keysAndValues []interface{}) map[string]interface{} {
	formattedArgs := make(map[string]interface{}, len(keysAndValues)/2)
	for idx := 0; idx < len(keysAndValues); idx += 2 {
		var key string
		if s, ok := keysAndValues[idx].(string); ok {
			key = s
		} else {
			key = fmt.Sprint(keysAndValues[idx])
		}
		valueIdx := idx + 1
		if len(keysAndValues) > valueIdx {
			value := keysAndValues[valueIdx]
			if t, ok := value.(time.Time); ok {
				value = t.Format(time.RFC3339)
			}
			formattedArgs[key] = value
		}
	}
	return formattedArgs
}
