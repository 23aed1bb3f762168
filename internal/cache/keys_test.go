package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "01J0",
			expectedKey: "lecturequiz:quiz:session:01J0",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "01J0",
			paramsKey:   []string{},
			expectedKey: "lecturequiz:quiz:session:01J0",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "grading",
			objectType:  "answer",
			identifier:  "q1",
			paramsKey:   []string{"llm", "qwen"},
			expectedKey: "lecturequiz:grading:answer:q1:llm_qwen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestQuizKey(t *testing.T) {
	if got := QuizKey("abc"); got != "lecturequiz:quiz:session:abc" {
		t.Errorf("QuizKey() = %v", got)
	}
}
