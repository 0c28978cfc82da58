package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "blogit.yaml", "-a", "http://localhost:3000/api"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "blogit.yaml"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-i", "5"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-i", "-a", "http://x"},
			allowedFlags: []string{"-i", "-a"},
			want:         []string{"-i", "-a", "http://x"},
		},
		{
			name:         "repeated flag preserved in order",
			args:         []string{"-i", "10", "-i", "20"},
			allowedFlags: []string{"-i"},
			want:         []string{"-i", "10", "-i", "20"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "a.json", ConfigFileFlag([]string{"-a", "x", "-c", "a.json"}))
	assert.Equal(t, "b.yaml", ConfigFileFlag([]string{"-config=b.yaml"}))
	assert.Equal(t, "", ConfigFileFlag([]string{"-i", "10"}))
	assert.Equal(t, "", ConfigFileFlag(nil))
}
