package chat

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownPlainProfile(t *testing.T) {
	r := NewRenderer(io.Discard, false)
	got := RenderMarkdown("Regarding **models**, try `temperature`\nof *0.7*.", 0, r)
	require.Equal(t, "Regarding models, try temperature of 0.7.", got)
}

func TestRenderMarkdownWrapsParagraphs(t *testing.T) {
	got := RenderMarkdown("one two three four five six seven eight", 15, nil)
	for _, line := range strings.Split(got, "\n") {
		require.LessOrEqual(t, len(line), 15, "line %q", line)
	}
	require.Equal(t, "one two three four five six seven eight", strings.Join(strings.Fields(got), " "))
}

func TestRenderMarkdownBlocks(t *testing.T) {
	src := "# Steps\n\n- upload a PDF\n- connect a CSV\n\n1. build\n2. deploy\n\n```\nzams models\n```\n"
	got := RenderMarkdown(src, 0, nil)
	require.Equal(t, strings.Join([]string{
		"Steps",
		"",
		"• upload a PDF",
		"• connect a CSV",
		"",
		"1. build",
		"2. deploy",
		"",
		"  zams models",
	}, "\n"), got)
}

func TestRenderMarkdownColorProfileEmitsEscapes(t *testing.T) {
	r := NewRenderer(io.Discard, true)
	got := RenderMarkdown("**bold**", 0, r)
	require.Contains(t, got, "\x1b[")
	require.Contains(t, got, "bold")
}

func TestRenderMarkdownEmpty(t *testing.T) {
	require.Empty(t, RenderMarkdown("  \n", 80, nil))
}

func TestRenderMarkdownFencedCodeHighlight(t *testing.T) {
	src := "```go\nfmt.Println(1)\n```"

	plain := RenderMarkdown(src, 0, NewRenderer(io.Discard, false))
	require.Equal(t, "  fmt.Println(1)", plain)

	colored := RenderMarkdown(src, 0, NewRenderer(io.Discard, true))
	require.Contains(t, colored, "\x1b[")
	require.Contains(t, colored, "Println")
}

func TestRenderMarkdownKeepsInlineHTMLAsText(t *testing.T) {
	require.Equal(t, "what does <div> do?", RenderMarkdown("what does <div> do?", 0, nil))
}

func TestEscapeMarkdown(t *testing.T) {
	require.Equal(t, "2\\*3 \\<b\\> \\`x\\`", EscapeMarkdown("2*3 <b> `x`"))
	require.Equal(t, "plain words", EscapeMarkdown("plain words"))
}
