package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Text(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultValue string
		want         string
	}{
		{name: "plain answer", input: "1.2.3\n", want: "1.2.3"},
		{name: "empty uses default", input: "\n", defaultValue: "1.0.0", want: "1.0.0"},
		{name: "whitespace trimmed", input: "  2.0.0  \n", want: "2.0.0"},
		{name: "answer overrides default", input: "3.0.0\n", defaultValue: "1.0.0", want: "3.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			got, err := p.Text("New version", tt.defaultValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "New version")
		})
	}
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes uppercase", input: "Yes\n", want: true},
		{name: "no", input: "n\n", defaultYes: true, want: false},
		{name: "empty uses default yes", input: "\n", defaultYes: true, want: true},
		{name: "empty uses default no", input: "\n", want: false},
		{name: "garbage is no", input: "whatever\n", defaultYes: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Write changes", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_EOF(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Text("Anything", "")
	assert.Error(t, err)
}

func TestPrompter_LastLineWithoutNewline(t *testing.T) {
	p := New(strings.NewReader("yes"), &bytes.Buffer{})

	got, err := p.Confirm("Proceed", false)
	require.NoError(t, err)
	assert.True(t, got)
}
