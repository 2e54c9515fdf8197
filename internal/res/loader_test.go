package res

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/gompdf/folio/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20"><rect width="40" height="20" fill="#ff0000"/></svg>`

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"book/index.html":  {Data: []byte("<p>hi</p>")},
		"book/img/dot.png": {Data: pngBytes(t, 3, 2)},
		"book/style.css":   {Data: []byte("p { text-indent: 1em }")},
		"shared/logo.svg":  {Data: []byte(logoSVG)},
	}
}

func TestLoadResolvesRelativeToDocument(t *testing.T) {
	l := NewLoader(testFS(t), "book/index.html")

	res, err := l.LoadImage("img/dot.png")
	require.NoError(t, err)
	assert.Equal(t, "book/img/dot.png", res.URL)
	assert.Equal(t, "image/png", res.MimeType)

	css, err := l.LoadCSS("./style.css")
	require.NoError(t, err)
	assert.Equal(t, "p { text-indent: 1em }", css.GetString())

	_, err = l.LoadCSS("img/dot.png")
	assert.Error(t, err)
}

func TestLoadFallsBackToSearchPaths(t *testing.T) {
	l := NewLoader(testFS(t), "book/index.html")
	_, err := l.Load("logo.svg")
	require.ErrorIs(t, err, fs.ErrNotExist)

	l.AddSearchPath("shared")
	res, err := l.Load("logo.svg")
	require.NoError(t, err)
	assert.True(t, res.IsSVG())
}

func TestLoadRejectsRemoteAndEscapingReferences(t *testing.T) {
	l := NewLoader(testFS(t), "book/index.html")

	_, err := l.Load("https://example.com/a.png")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = l.Load("../../etc/passwd")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = NewLoader(nil, "").Load("a.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDataURL(t *testing.T) {
	l := NewLoader(nil, "")

	res, err := l.Load("data:text/plain,Hello%20World")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", res.GetString())
	assert.Equal(t, ResourceTypeOther, res.Type)

	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 5, 4))
	w, h, ok := l.ImageSize(&layout.Image{Source: encoded})
	require.True(t, ok)
	assert.Equal(t, 5.0, w)
	assert.Equal(t, 4.0, h)

	_, err = l.Load("data:image/png;base64")
	assert.Error(t, err)
}

func TestImageSize(t *testing.T) {
	l := NewLoader(testFS(t), "book/index.html")

	w, h, ok := l.ImageSize(&layout.Image{Source: "img/dot.png"})
	require.True(t, ok)
	assert.Equal(t, 3.0, w)
	assert.Equal(t, 2.0, h)

	w, h, ok = l.ImageSize(&layout.Image{Source: "/shared/logo.svg"})
	require.True(t, ok)
	assert.Equal(t, 40.0, w)
	assert.Equal(t, 20.0, h)

	_, _, ok = l.ImageSize(&layout.Image{Source: "missing.png"})
	assert.False(t, ok)
}

func TestDecodeImage(t *testing.T) {
	l := NewLoader(testFS(t), "book/index.html")

	img, err := l.DecodeImage("img/dot.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	svg, err := l.DecodeImage("/shared/logo.svg")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), svg.Bounds())
	r, _, _, a := svg.At(20, 10).RGBA()
	assert.NotZero(t, a)
	assert.NotZero(t, r)
}
