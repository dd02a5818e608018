package web

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderThroughLayout(t *testing.T) {
	set := template.Must(template.New("layout.html").Parse(`<main>{{template "content" .}}</main>`))
	template.Must(set.New("content").Parse(`hello {{.}}`))
	r := &TemplateRenderer{Templates: map[string]*template.Template{"page.html": set}}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "page.html", "world", nil))
	assert.Equal(t, "<main>hello world</main>", buf.String())
}

func TestRenderStandalone(t *testing.T) {
	set := template.Must(template.New("plain.html").Parse(`plain {{.}}`))
	r := &TemplateRenderer{Templates: map[string]*template.Template{"plain.html": set}}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "plain.html", "page", nil))
	assert.Equal(t, "plain page", buf.String())
}

func TestRenderUnknownName(t *testing.T) {
	r := &TemplateRenderer{Templates: map[string]*template.Template{}}
	err := r.Render(&bytes.Buffer{}, "missing.html", nil, nil)
	assert.ErrorContains(t, err, "missing.html")
}
