package notes

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

const bulletMarkerSpan = `<span class="bullet-marker">-</span>`

var (
	dashBulletLine = regexp.MustCompile(`(?m)^(\s*)-\s`)
	parenOrdinal   = regexp.MustCompile(`(?m)^(\s*)(\d+)\)`)
	dotOrdinal     = regexp.MustCompile(`(?m)^(\s*)(\d+)\.(\s|$)`)
	listSymbol     = regexp.MustCompile(`(?m)^(\s*)([-*+])(\s|$)`)

	// A paragraph opening with a bullet symbol, a circled digit or "N)"/"N.".
	bulletParagraph = regexp.MustCompile(`(?s)<p>(<span class="bullet-marker">.*?</span>|[-①②③④⑤⑥⑦⑧⑨⑩⑪⑫⑬⑭⑮❶❷❸❹❺❻❼❽❾❿*\x{2022}]|\d+[).])\s*(.*?)</p>`)

	driveFilePath  = regexp.MustCompile(`d/([^/]+)`)
	driveFileQuery = regexp.MustCompile(`id=([^&]+)`)
)

// Markdown converts sheet cells to sanitized HTML fragments.
type Markdown struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

func NewMarkdown() *Markdown {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("span", "div", "p", "code", "pre")
	policy.AllowAttrs("align").OnElements("th", "td")
	policy.AllowStyles("text-align").MatchingEnum("left", "right", "center").OnElements("th", "td")
	policy.AllowStyles("color", "background-color").OnElements("span")

	return &Markdown{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
				gmhtml.WithUnsafe(),
			),
		),
		policy: policy,
	}
}

// Concept renders concept text, answers use the same rules.
func (m *Markdown) Concept(text string) string {
	return ApplyBulletIndent(m.toHTML(PreprocessMarkdown(text)))
}

func (m *Markdown) Answer(text string) string {
	return m.Concept(text)
}

// Problem renders problem text with hard line breaks and no paragraph wrappers.
func (m *Markdown) Problem(text string) string {
	if models.IsBlank(text) {
		return ""
	}
	src := parenOrdinal.ReplaceAllString(strings.TrimSpace(text), `${1}${2}\)`)
	src = escapeListStarts(src)
	out := ApplyBulletIndent(m.toHTML(strings.ReplaceAll(src, "\n", "  \n")))
	out = strings.ReplaceAll(out, "<p>", "")
	return strings.ReplaceAll(out, "</p>", "")
}

// escapeListStarts keeps "N." and "-"/"*"/"+" lines after the first as
// plain text so a list cannot interrupt the problem stem.
func escapeListStarts(src string) string {
	first, rest, ok := strings.Cut(src, "\n")
	if !ok {
		return src
	}
	rest = dotOrdinal.ReplaceAllString(rest, `${1}${2}\.${3}`)
	rest = listSymbol.ReplaceAllString(rest, `${1}\${2}${3}`)
	return first + "\n" + rest
}

func (m *Markdown) toHTML(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := m.engine.Convert([]byte(src), &buf); err != nil {
		utils.LogError("Markdown conversion failed: %v", err)
		return "<p>" + html.EscapeString(src) + "</p>"
	}
	return m.policy.Sanitize(buf.String())
}

// PreprocessMarkdown turns "- " lines into bullet marker spans and separates
// every non-table line into its own paragraph.
func PreprocessMarkdown(text string) string {
	if models.IsBlank(text) {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = dashBulletLine.ReplaceAllString(text, "${1}"+bulletMarkerSpan+" ")
	text = parenOrdinal.ReplaceAllString(text, `${1}${2}\)`)

	lines := strings.Split(text, "\n")
	var b strings.Builder
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i < len(lines)-1 {
			next := strings.TrimSpace(lines[i+1])
			if strings.HasPrefix(line, "|") && strings.HasPrefix(next, "|") {
				b.WriteString(line + "\n")
			} else {
				b.WriteString(line + "\n\n")
			}
		} else {
			b.WriteString(line)
		}
	}
	return b.String()
}

// ApplyBulletIndent rewrites bullet paragraphs into a marker/content flex row.
func ApplyBulletIndent(htmlText string) string {
	if htmlText == "" {
		return ""
	}
	return bulletParagraph.ReplaceAllString(htmlText,
		`<div class="bullet-line"><span class="bullet-marker">${1}</span><span class="bullet-content">${2}</span></div>`)
}

// DriveLink turns Google Drive share links into direct thumbnail links.
func DriveLink(link string) string {
	link = strings.TrimSpace(link)
	if models.IsBlank(link) {
		return ""
	}
	if strings.Contains(link, "drive.google.com") {
		match := driveFilePath.FindStringSubmatch(link)
		if match == nil {
			match = driveFileQuery.FindStringSubmatch(link)
		}
		if match != nil {
			return "https://drive.google.com/thumbnail?id=" + match[1] + "&sz=w1000"
		}
	}
	return link
}
