package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/hibiken/asynq"
)

// GetEnvVariable reads an environment variable with a fallback default
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// UnmarshalTask decodes an asynq task payload into dest
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("invalid payload for task %s: %w", t.Type(), err)
	}
	return nil
}

var digitRun = regexp.MustCompile(`\d+`)

// ExtractFirstInt pulls the first run of digits out of a string.
// Legacy cart records stored stock counts as descriptive strings
// (e.g. "5 available"); this recovers the numeric part.
// Returns: (value, ok)
func ExtractFirstInt(s string) (int, bool) {
	match := digitRun.FindString(s)
	if match == "" {
		return 0, false
	}

	value, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}

	return value, true
}
