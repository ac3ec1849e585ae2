package skill

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInvocationDurationEncoding(t *testing.T) {
	inv := Invocation{ID: "inv-1", Duration: Duration(1500 * time.Microsecond)}

	data, err := json.Marshal(inv)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "1.5ms", raw["duration"])

	var decoded Invocation
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, inv.Duration, decoded.Duration)

	out, err := yaml.Marshal(inv)
	require.NoError(t, err)
	assert.Contains(t, string(out), "duration: 1.5ms")

	assert.Error(t, json.Unmarshal([]byte(`{"duration":21076}`), &decoded))
}
