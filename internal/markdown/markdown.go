// Package markdown renders user-supplied post bodies into allow-listed HTML.
package markdown

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/dailypush/dailypush/internal/logger"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var renderDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "dailypush_markdown_render_seconds",
		Help:    "Time spent rendering and sanitizing post bodies",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
	},
)

var headingTag = regexp.MustCompile(`(?i)<(/?)h([1-6])(?:\s[^>]*)?>`)

// Only h5 and h6 survive sanitizing. Deeper headings keep a visual hint
// of their level as literal '#' marks.
var (
	openHeading = map[byte]string{
		'1': "<h5>",
		'2': "<h6>",
		'3': "<h6>## ",
		'4': "<h6>### ",
		'5': "<h6>",
		'6': "<h6>#### ",
	}
	closeHeading = map[byte]string{
		'1': "</h5>",
		'2': "</h6>",
		'3': "</h6>",
		'4': "</h6>",
		'5': "</h6>",
		'6': "</h6>",
	}
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)
	return &Renderer{md: md, policy: newPolicy()}
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"br", "code", "pre", "em", "del", "s", "h5", "h6", "hr",
		"li", "ol", "ul", "p", "strong", "sub", "sup", "blockquote",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(false)
	return p
}

// Render converts markup to sanitized HTML. It never fails: if the markdown
// stage errors, the raw text goes straight to the sanitizer.
func (r *Renderer) Render(markup string) string {
	start := time.Now()
	defer func() { renderDuration.Observe(time.Since(start).Seconds()) }()

	var buf bytes.Buffer
	unsafeHTML := markup
	if err := r.md.Convert([]byte(markup), &buf); err != nil {
		logger.Log.Warn("markdown conversion failed", "error", err)
	} else {
		unsafeHTML = buf.String()
	}

	return strings.TrimSpace(r.Sanitize(demoteHeadings(unsafeHTML)))
}

// Sanitize strips everything outside the allow-list. Sanitize(Render(x)) == Render(x).
func (r *Renderer) Sanitize(unsafeHTML string) string {
	return r.policy.Sanitize(unsafeHTML)
}

func demoteHeadings(s string) string {
	return headingTag.ReplaceAllStringFunc(s, func(tag string) string {
		m := headingTag.FindStringSubmatch(tag)
		level := m[2][0]
		if m[1] == "/" {
			return closeHeading[level]
		}
		return openHeading[level]
	})
}
