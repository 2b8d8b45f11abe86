package web

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ParsesEveryPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range []string{"home", "venues", "venue", "venue_form", "artists", "artist",
		"artist_form", "shows", "show_form", "search", "error"} {
		assert.Contains(t, r.pages, name)
	}
}

func TestRenderer_LayoutAndFlashes(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
	c.Set("flashes", []string{"Venue <b> was successfully listed!"})

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "error", map[string]any{"Code": 404, "Message": "Not found"}, c))

	out := buf.String()
	assert.Contains(t, out, "<title>404</title>")
	assert.Contains(t, out, "Venue &lt;b&gt; was successfully listed!")
	assert.Contains(t, out, "<a href=\"/venues\">Venues</a>")
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	c := echo.New().NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())

	assert.Error(t, r.Render(&bytes.Buffer{}, "nope", nil, c))
}
