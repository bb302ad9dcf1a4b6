package chat

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
	})
	return markdownParser
}

// NewRenderer returns a lipgloss renderer with a fixed profile so output
// does not depend on terminal detection. With color off every escape
// sequence is dropped.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	profile := termenv.ANSI256
	if !color {
		profile = termenv.Ascii
	}
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return r
}

// RenderMarkdown turns message content into styled terminal text wrapped to
// width. Soft line breaks reflow; code blocks keep their lines.
func RenderMarkdown(content string, width int, r *lipgloss.Renderer) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if r == nil {
		r = NewRenderer(io.Discard, false)
	}
	source := []byte(content)
	doc := getMarkdownParser().Parser().Parse(text.NewReader(source))
	m := &markdownRenderer{source: source, width: width, lip: r}
	_ = ast.Walk(doc, m.walk)
	return strings.TrimRight(m.out.String(), "\n")
}

type markdownRenderer struct {
	source []byte
	width  int
	lip    *lipgloss.Renderer

	out    strings.Builder
	inline strings.Builder

	bold, italic, strike, link int

	lists  []listState
	indent int
	bullet string
}

type listState struct {
	ordered bool
	next    int
	tight   bool
	marker  int
}

func (m *markdownRenderer) currentWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - m.indent
	if w < 10 {
		w = 10
	}
	return w
}

func (m *markdownRenderer) endBlock(blank bool) {
	if m.out.Len() == 0 {
		return
	}
	want := "\n"
	if blank {
		want = "\n\n"
	}
	for !strings.HasSuffix(m.out.String(), want) {
		m.out.WriteString("\n")
	}
}

func (m *markdownRenderer) inTightList() bool {
	return len(m.lists) > 0 && m.lists[len(m.lists)-1].tight
}

// writeLines emits content with the pending bullet on the first line and
// the current indent on the rest.
func (m *markdownRenderer) writeLines(content string) {
	pad := strings.Repeat(" ", m.indent)
	for i, line := range strings.Split(content, "\n") {
		if i > 0 {
			m.out.WriteString("\n")
		}
		if i == 0 && m.bullet != "" {
			m.out.WriteString(m.bullet)
			m.bullet = ""
		} else {
			m.out.WriteString(pad)
		}
		m.out.WriteString(line)
	}
}

func (m *markdownRenderer) flushInline() string {
	content := strings.TrimRight(m.inline.String(), " ")
	m.inline.Reset()
	if w := m.currentWidth(); w > 0 {
		content = ansi.Wrap(content, w, " ")
	}
	return content
}

func (m *markdownRenderer) styled(s string) string {
	if m.bold == 0 && m.italic == 0 && m.strike == 0 && m.link == 0 {
		return s
	}
	style := m.lip.NewStyle().
		Bold(m.bold > 0).
		Italic(m.italic > 0).
		Strikethrough(m.strike > 0).
		Underline(m.link > 0)
	return style.Render(s)
}

func (m *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			m.inline.Reset()
			break
		}
		if s := m.flushInline(); s != "" {
			m.writeLines(s)
		}
		m.endBlock(node.Kind() == ast.KindParagraph && !m.inTightList())

	case ast.KindHeading:
		if entering {
			m.inline.Reset()
			break
		}
		heading := m.lip.NewStyle().Bold(true).Foreground(lipgloss.Color("#cba6f7"))
		m.writeLines(heading.Render(m.flushInline()))
		m.endBlock(true)

	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		if entering {
			m.renderCode(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindList:
		list := node.(*ast.List)
		if entering {
			m.lists = append(m.lists, listState{ordered: list.IsOrdered(), next: list.Start, tight: list.IsTight})
			break
		}
		m.lists = m.lists[:len(m.lists)-1]
		m.endBlock(len(m.lists) == 0)

	case ast.KindListItem:
		top := &m.lists[len(m.lists)-1]
		if entering {
			marker := "• "
			if top.ordered {
				marker = fmt.Sprintf("%d. ", top.next)
				top.next++
			}
			top.marker = ansi.StringWidth(marker)
			m.bullet = strings.Repeat(" ", m.indent) + marker
			m.indent += top.marker
			break
		}
		m.indent -= top.marker
		m.endBlock(false)

	case ast.KindThematicBreak:
		if entering {
			w := m.currentWidth()
			if w == 0 || w > 40 {
				w = 40
			}
			m.writeLines(strings.Repeat("─", w))
			m.endBlock(true)
		}

	case ast.KindText:
		if entering {
			t := node.(*ast.Text)
			m.inline.WriteString(m.styled(string(util.UnescapePunctuations(t.Segment.Value(m.source)))))
			switch {
			case t.HardLineBreak():
				m.inline.WriteString("\n")
			case t.SoftLineBreak():
				m.inline.WriteString(" ")
			}
		}

	case ast.KindRawHTML:
		if entering {
			segs := node.(*ast.RawHTML).Segments
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				m.inline.WriteString(m.styled(string(seg.Value(m.source))))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindString:
		if entering {
			m.inline.WriteString(m.styled(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.(*ast.Emphasis).Level >= 2 {
			m.bold += delta
		} else {
			m.italic += delta
		}

	case extast.KindStrikethrough:
		if entering {
			m.strike++
		} else {
			m.strike--
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					code.Write(t.Segment.Value(m.source))
				}
			}
			m.inline.WriteString(m.lip.NewStyle().Foreground(lipgloss.Color("#fab387")).Render(code.String()))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			m.link++
			break
		}
		m.link--
		dest := string(node.(*ast.Link).Destination)
		m.inline.WriteString(m.lip.NewStyle().Faint(true).Render(" (" + dest + ")"))

	case ast.KindAutoLink:
		if entering {
			m.link++
			m.inline.WriteString(m.styled(string(node.(*ast.AutoLink).URL(m.source))))
			m.link--
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

func (m *markdownRenderer) renderCode(node ast.Node) {
	lines := node.Lines()
	var raw strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		raw.Write(seg.Value(m.source))
	}
	code := strings.TrimRight(raw.String(), "\n")

	var lang string
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		lang = string(fenced.Language(m.source))
	}
	body := m.highlight(code, lang)

	out := strings.Split(body, "\n")
	for i, line := range out {
		out[i] = "  " + line
	}
	m.writeLines(strings.Join(out, "\n"))
	m.endBlock(true)
}

// highlight colors code with chroma when a language is given and the
// renderer has color. Anything else falls back to a flat style.
func (m *markdownRenderer) highlight(code, lang string) string {
	flat := func() string {
		style := m.lip.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
		lines := strings.Split(code, "\n")
		for i, l := range lines {
			lines[i] = style.Render(l)
		}
		return strings.Join(lines, "\n")
	}
	if lang == "" || m.lip.ColorProfile() == termenv.Ascii {
		return flat()
	}
	var buf strings.Builder
	if err := quick.Highlight(&buf, code, lang, "terminal256", "monokai"); err != nil {
		return flat()
	}
	return strings.TrimRight(buf.String(), "\n")
}

const markdownPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// EscapeMarkdown backslash-escapes ASCII punctuation so s renders as the
// literal text it is.
func EscapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markdownPunct, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
