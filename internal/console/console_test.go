package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{" y \r\n", true},
		{"yes\n", false},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			c := New(strings.NewReader(tt.input), &out)

			got, err := c.Confirm("🚀 Post to LinkedIn? (y/N): ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "🚀 Post to LinkedIn? (y/N): ", out.String())
		})
	}
}

func TestAskReadsSuccessiveLines(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("my-id\nmy-secret"), &out)

	id, err := c.Ask("Enter Client ID: ")
	require.NoError(t, err)
	secret, err := c.Ask("Enter Client Secret: ")
	require.NoError(t, err)

	assert.Equal(t, "my-id", id)
	assert.Equal(t, "my-secret", secret)

	_, err = c.Ask("again: ")
	assert.Error(t, err)
}
