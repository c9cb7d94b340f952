package profiling

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileTypes_Default(t *testing.T) {
	got, err := parseProfileTypes("  ")
	require.NoError(t, err)
	assert.Equal(t, defaultProfileTypes, got)
}

func TestParseProfileTypes_DeduplicatesAndExpands(t *testing.T) {
	got, err := parseProfileTypes("cpu, block,cpu,")
	require.NoError(t, err)

	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileBlockCount,
		pyroscope.ProfileBlockDuration,
	}, got)
}

func TestParseProfileTypes_Invalid(t *testing.T) {
	_, err := parseProfileTypes("cpu,heap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"heap"`)
}

func TestBuildApplicationName(t *testing.T) {
	got := buildApplicationName("", map[string]string{
		"service_name": "nmm-api",
		"environment":  "staging",
	})
	assert.Equal(t, "nmm-api{environment=staging,service_name=nmm-api}", got)

	assert.Equal(t, "portal", buildApplicationName(" portal ", nil))
}

func TestStart_Disabled(t *testing.T) {
	stop, err := Start(Options{Enabled: false})
	require.NoError(t, err)
	stop()
}

func TestStart_EnabledWithoutEndpoint(t *testing.T) {
	_, err := Start(Options{Enabled: true})
	assert.Error(t, err)
}
