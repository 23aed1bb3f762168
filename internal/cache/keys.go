package cache

import "strings"

const (
	GlobalKeyPrefix = "lecturequiz"
)

// GenerateCacheKey builds "<prefix>:<service>:<object>:<id>". Extra params are
// joined by "_" and appended as one more segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizKey is the key a quiz is stored under.
func QuizKey(quizID string) string {
	return GenerateCacheKey("quiz", "session", quizID)
}
