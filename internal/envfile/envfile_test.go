package envfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToggle(t *testing.T) {
	tests := []struct {
		raw    string
		want   bool
		wantOK bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{"True", true, true},
		{" true ", true, true},
		{"false", false, true},
		{"FALSE", false, true},
		{"", false, false},
		{"1", false, false},
		{"yes", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run("value "+tt.raw, func(t *testing.T) {
			got, ok := ParseToggle(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Dynamic)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "", cfg.ExplicitFile)
}

func TestConfigFromEnviron(t *testing.T) {
	cfg := ConfigFromEnviron(fakeGetenv(nil))
	assert.True(t, cfg.Dynamic)
	assert.False(t, cfg.Verbose)

	cfg = ConfigFromEnviron(fakeGetenv(map[string]string{
		EnvDynamicToggle: "FALSE",
		EnvVerboseToggle: "True",
	}))
	assert.False(t, cfg.Dynamic)
	assert.True(t, cfg.Verbose)
}

func TestConfigFromEnvironIgnoresGarbage(t *testing.T) {
	cfg := ConfigFromEnviron(fakeGetenv(map[string]string{
		EnvDynamicToggle: "maybe",
		EnvVerboseToggle: "2",
	}))
	assert.True(t, cfg.Dynamic)
	assert.False(t, cfg.Verbose)
}
