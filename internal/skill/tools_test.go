package skill

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillTool(t *testing.T) {
	router := NewRouter(newTestRegistry(echoSkill("echo")), nil)
	tools := router.GetTools()
	require.Len(t, tools, 1)

	tool := tools[0]
	assert.Equal(t, "echo", tool.Name())
	assert.Equal(t, "echoes its input", tool.Description())

	cases := map[string]string{
		"hi":          "echo: hi",
		"42":          "echo: 42",
		`"quoted"`:    "echo: quoted",
		"null":        "echo: null",
		"":            "echo: undefined",
		"  ":          "echo: undefined",
		`{"a":[1,2]}`: `echo: {"a":[1,2]}`,
		"not json {":  "echo: not json {",
	}
	for input, want := range cases {
		out, err := tool.Call(context.Background(), input)
		require.NoError(t, err, input)

		var res Result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, want, res.Message, input)
		assert.Equal(t, StatusSuccess, res.Status)
	}
}

func TestSkillToolDefaultDescription(t *testing.T) {
	s := echoSkill("bare")
	s.Description = ""
	router := NewRouter(newTestRegistry(s), nil)

	tool := ConvertSkillToTool(&s, router)
	assert.Equal(t, "bare (version 1.0.0)", tool.Description())
}
