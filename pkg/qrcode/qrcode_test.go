package qr

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	data, err := Portal.Generate("PICKHACKS2025-abcdefghijkl")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Portal.Size, img.Bounds().Dx())
	assert.Equal(t, Portal.Size, img.Bounds().Dy())
}

func TestGenerateEmptyContent(t *testing.T) {
	_, err := Portal.Generate("")
	assert.Error(t, err)
}

func TestGenerateMissingLogo(t *testing.T) {
	cfg := Portal
	cfg.LogoPath = "does-not-exist.png"
	_, err := cfg.Generate("PICKHACKS2025-abcdefghijkl")
	assert.Error(t, err)
}
