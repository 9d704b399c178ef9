package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv_PrefersLoadedFile(t *testing.T) {
	t.Setenv("ROLEBRIDGE_TEST_KEY", "from-os")
	Env = map[string]string{"ROLEBRIDGE_TEST_KEY": " from-file "}
	t.Cleanup(func() { Env = nil })

	assert.Equal(t, "from-file", GetEnv("ROLEBRIDGE_TEST_KEY", "default"))
}

func TestGetEnv_FallsBackToOSAndDefault(t *testing.T) {
	Env = map[string]string{"ROLEBRIDGE_BLANK": "  "}
	t.Cleanup(func() { Env = nil })

	t.Setenv("ROLEBRIDGE_BLANK", "os-value")
	assert.Equal(t, "os-value", GetEnv("ROLEBRIDGE_BLANK", "default"))
	assert.Equal(t, "default", GetEnv("ROLEBRIDGE_MISSING_KEY", "default"))
}

func TestIsDev(t *testing.T) {
	Env = map[string]string{"APP_ENV": "dev"}
	t.Cleanup(func() { Env = nil })
	assert.True(t, IsDev())

	Env = map[string]string{"APP_ENV": "prod"}
	assert.False(t, IsDev())
}
