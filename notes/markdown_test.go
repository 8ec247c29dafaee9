package notes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocessMarkdown(t *testing.T) {
	in := "- 남향\n\n- 동지 기준\n|a|b|\n|-|-|\n|1|2|"
	want := `<span class="bullet-marker">-</span> 남향` + "\n\n" +
		`<span class="bullet-marker">-</span> 동지 기준` + "\n\n" +
		"|a|b|\n|-|-|\n|1|2|"

	assert.Equal(t, want, PreprocessMarkdown(in))
	assert.Equal(t, "", PreprocessMarkdown("nan"))
	assert.Equal(t, "", PreprocessMarkdown("   "))
}

func TestPreprocessMarkdownEscapesParenOrdinals(t *testing.T) {
	assert.Equal(t, `1\) 첫째`+"\n\n"+`2\) 둘째`, PreprocessMarkdown("1) 첫째\r\n2) 둘째"))
}

func TestApplyBulletIndent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>① 첫째</p>", `<div class="bullet-line"><span class="bullet-marker">①</span><span class="bullet-content">첫째</span></div>`},
		{"<p>3) 셋째</p>", `<div class="bullet-line"><span class="bullet-marker">3)</span><span class="bullet-content">셋째</span></div>`},
		{"<p>• 점</p>", `<div class="bullet-line"><span class="bullet-marker">•</span><span class="bullet-content">점</span></div>`},
		{"<p>일반 문장</p>", "<p>일반 문장</p>"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ApplyBulletIndent(tt.in), tt.in)
	}
}

func TestConceptRendersBulletLines(t *testing.T) {
	md := NewMarkdown()

	out := md.Concept("- 남향\n- 동지 기준")

	assert.Equal(t, 2, strings.Count(out, `class="bullet-line"`))
	assert.Contains(t, out, `<span class="bullet-content">남향</span>`)
	assert.NotContains(t, out, "<ul>")
}

func TestConceptRendersTables(t *testing.T) {
	md := NewMarkdown()

	out := md.Concept("|구분|내용|\n|---|---|\n|A|B|")

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>B</td>")
}

func TestConceptStripsScripts(t *testing.T) {
	md := NewMarkdown()

	out := md.Concept("<script>alert(1)</script>\n\n본문")

	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "본문")
}

func TestProblemUsesHardBreaksWithoutParagraphs(t *testing.T) {
	md := NewMarkdown()

	out := md.Problem("첫 줄\n둘째 줄")
	assert.Contains(t, out, "<br")
	assert.NotContains(t, out, "<p>")

	numbered := md.Problem("1) 보기")
	assert.NotContains(t, numbered, "<ol>")
	assert.Contains(t, numbered, `<span class="bullet-marker">1)</span>`)

	for _, text := range []string{
		"다음 중 옳은 것은?\n1. 가\n2. 나",
		"다음 중 옳은 것은?\n- 가\n- 나",
		"다음 중 옳은 것은?\n* 가\n+ 나",
	} {
		out := md.Problem(text)
		assert.NotContains(t, out, "<ol>", text)
		assert.NotContains(t, out, "<ul>", text)
		assert.NotContains(t, out, "<li>", text)
		assert.Contains(t, out, "<br", text)
		assert.Contains(t, out, "가", text)
	}
	assert.Contains(t, md.Problem("다음 중 옳은 것은?\n1. 가\n2. 나"), "1. 가")
	assert.Contains(t, md.Problem("다음 중 옳은 것은?\n- 가\n- 나"), "- 가")

	assert.Equal(t, "", md.Problem("nan"))
}

func TestInlineColorStylesSurvive(t *testing.T) {
	md := NewMarkdown()

	out := md.Concept(`<span style="color:red">중요</span> 내용`)
	assert.Regexp(t, `<span style="color:\s*red">중요</span>`, out)

	out = md.Concept(`<span style="position:fixed">x</span>`)
	assert.NotContains(t, out, "position")
}

func TestDriveLink(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://drive.google.com/file/d/abc123/view?usp=sharing", "https://drive.google.com/thumbnail?id=abc123&sz=w1000"},
		{"https://drive.google.com/open?id=xyz&authuser=0", "https://drive.google.com/thumbnail?id=xyz&sz=w1000"},
		{"https://example.com/a.png", "https://example.com/a.png"},
		{"nan", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DriveLink(tt.in), tt.in)
	}
}
