package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))
	assert.Equal(t, "Lecture Quiz API", spec.Info.Title)

	routes := map[string]string{
		"/health":                   "get",
		"/api/quizzes":              "post",
		"/api/quizzes/upload":       "post",
		"/api/quizzes/{id}":         "get",
		"/api/quizzes/{id}/answers": "post",
		"/api/evaluate":             "post",
	}
	for path, method := range routes {
		assert.Contains(t, spec.Paths[path], method, path)
	}
}
