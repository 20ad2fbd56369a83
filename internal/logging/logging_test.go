package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	for _, format := range []string{"", "console", "json", "pretty"} {
		p, err := NewProvider("debug", format)
		require.NoError(t, err, format)
		assert.NotNil(t, p.Logger("validator"))
		assert.NotNil(t, p.Logger(""))
	}
}

func TestNewProvider_UnsupportedFormat(t *testing.T) {
	_, err := NewProvider("info", "xml")
	assert.Error(t, err)
}

func TestNilProviderIsNoOp(t *testing.T) {
	var p *Provider
	assert.NotPanics(t, func() { p.Logger("x").Info("ignored", "k", "v") })
}

func TestNormalizeLevel(t *testing.T) {
	assert.Equal(t, "", normalizeLevel("verbose"))
	assert.NotEmpty(t, normalizeLevel("WARNING"))
}
