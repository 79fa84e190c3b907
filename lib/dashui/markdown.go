// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdownParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share — actual parsing creates per-call state via Parse(reader).
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParserInstance
}

// renderTaskMarkdown parses a task description as markdown and renders
// it as styled terminal output wrapped to width. Soft line breaks
// within paragraphs become spaces so hard-wrapped source reflows at
// any terminal width.
func renderTaskMarkdown(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	// Force the ANSI256 profile: this output is always for terminal
	// display inside the TUI, so auto-detection (which sees no TTY in
	// tests) would strip all color.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	renderer.renderBlocks(document)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer converts a goldmark AST into styled terminal text.
// Paragraph inline content accumulates into a buffer and gets
// word-wrapped as a unit when the paragraph closes.
type markdownRenderer struct {
	source      []byte
	theme       Theme
	width       int
	lipRenderer *lipgloss.Renderer

	output strings.Builder
}

func (renderer *markdownRenderer) style() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

// renderBlocks walks the block-level children of node and appends
// their rendered text to the output.
func (renderer *markdownRenderer) renderBlocks(node ast.Node) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch block := child.(type) {
		case *ast.Heading:
			heading := renderer.style().
				Bold(true).
				Foreground(renderer.theme.HeaderForeground).
				Render(renderer.renderInline(block))
			renderer.output.WriteString(heading + "\n\n")

		case *ast.Paragraph:
			wrapped := ansi.Wordwrap(renderer.renderInline(block), renderer.width, "")
			renderer.output.WriteString(wrapped + "\n\n")

		case *ast.List:
			renderer.renderList(block, 0)
			renderer.output.WriteString("\n")

		case *ast.FencedCodeBlock:
			renderer.renderCodeBlock(block)

		case *ast.CodeBlock:
			renderer.renderIndentedCode(block)

		case *ast.Blockquote:
			quote := &markdownRenderer{
				source:      renderer.source,
				theme:       renderer.theme,
				width:       renderer.width - 2,
				lipRenderer: renderer.lipRenderer,
			}
			quote.renderBlocks(block)
			bar := renderer.style().Foreground(renderer.theme.FaintText).Render("│ ")
			for _, line := range strings.Split(strings.TrimRight(quote.output.String(), "\n"), "\n") {
				renderer.output.WriteString(bar + line + "\n")
			}
			renderer.output.WriteString("\n")

		case *ast.ThematicBreak:
			rule := renderer.style().Foreground(renderer.theme.BorderColor).
				Render(strings.Repeat("─", renderer.width))
			renderer.output.WriteString(rule + "\n\n")

		default:
			// Unhandled block kinds (tables, HTML) fall back to
			// their raw source text.
			renderer.output.WriteString(renderer.rawText(child) + "\n")
		}
	}
}

// renderList renders a bullet or ordered list with two-space
// indentation per nesting level.
func (renderer *markdownRenderer) renderList(list *ast.List, depth int) {
	indent := strings.Repeat("  ", depth)
	ordinal := list.Start
	if ordinal == 0 {
		ordinal = 1
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "•"
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d.", ordinal)
			ordinal++
		}
		bullet := renderer.style().Foreground(renderer.theme.FaintText).Render(marker)

		var itemText strings.Builder
		for part := item.FirstChild(); part != nil; part = part.NextSibling() {
			switch inner := part.(type) {
			case *ast.List:
				// Nested list rendered after the item line.
				if itemText.Len() > 0 {
					renderer.writeListLine(indent, bullet, itemText.String())
					itemText.Reset()
					bullet = " "
				}
				renderer.renderList(inner, depth+1)
			default:
				if itemText.Len() > 0 {
					itemText.WriteString(" ")
				}
				itemText.WriteString(renderer.renderInline(part))
			}
		}
		if itemText.Len() > 0 {
			renderer.writeListLine(indent, bullet, itemText.String())
		}
	}
}

func (renderer *markdownRenderer) writeListLine(indent, bullet, content string) {
	available := renderer.width - ansi.StringWidth(indent) - 2
	if available < 10 {
		available = 10
	}
	wrapped := strings.Split(ansi.Wordwrap(content, available, ""), "\n")
	for index, line := range wrapped {
		if index == 0 {
			renderer.output.WriteString(indent + bullet + " " + line + "\n")
		} else {
			renderer.output.WriteString(indent + "  " + line + "\n")
		}
	}
}

// renderCodeBlock syntax-highlights fenced code with chroma when the
// fence names a language, otherwise renders it dim and verbatim.
func (renderer *markdownRenderer) renderCodeBlock(block *ast.FencedCodeBlock) {
	var code strings.Builder
	for i := range block.Lines().Len() {
		segment := block.Lines().At(i)
		code.Write(segment.Value(renderer.source))
	}

	language := string(block.Language(renderer.source))
	rendered := code.String()
	if language != "" {
		var highlighted bytes.Buffer
		if err := quick.Highlight(&highlighted, rendered, language, "terminal256", "monokai"); err == nil {
			rendered = highlighted.String()
		}
	}

	codeStyle := renderer.style().Foreground(renderer.theme.CodeText)
	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		if language == "" {
			line = codeStyle.Render(line)
		}
		renderer.output.WriteString("  " + line + "\n")
	}
	renderer.output.WriteString("\n")
}

func (renderer *markdownRenderer) renderIndentedCode(block *ast.CodeBlock) {
	codeStyle := renderer.style().Foreground(renderer.theme.CodeText)
	for i := range block.Lines().Len() {
		segment := block.Lines().At(i)
		line := strings.TrimRight(string(segment.Value(renderer.source)), "\n")
		renderer.output.WriteString("  " + codeStyle.Render(line) + "\n")
	}
	renderer.output.WriteString("\n")
}

// renderInline flattens the inline children of a block into one styled
// string. Soft breaks become spaces.
func (renderer *markdownRenderer) renderInline(node ast.Node) string {
	var result strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch inline := child.(type) {
		case *ast.Text:
			result.Write(inline.Segment.Value(renderer.source))
			if inline.SoftLineBreak() {
				result.WriteString(" ")
			}
			if inline.HardLineBreak() {
				result.WriteString("\n")
			}

		case *ast.Emphasis:
			style := renderer.style().Italic(true)
			if inline.Level >= 2 {
				style = renderer.style().Bold(true)
			}
			result.WriteString(style.Render(renderer.renderInline(inline)))

		case *ast.CodeSpan:
			style := renderer.style().
				Foreground(renderer.theme.CodeText).
				Background(renderer.theme.CodeBackground)
			result.WriteString(style.Render(renderer.rawText(inline)))

		case *ast.Link:
			label := renderer.renderInline(inline)
			url := renderer.style().Foreground(renderer.theme.LinkForeground).
				Render(string(inline.Destination))
			result.WriteString(label + " (" + url + ")")

		case *ast.AutoLink:
			url := string(inline.URL(renderer.source))
			result.WriteString(renderer.style().
				Foreground(renderer.theme.LinkForeground).Render(url))

		default:
			result.WriteString(renderer.rawText(child))
		}
	}
	return result.String()
}

// rawText returns the concatenated source text under node.
func (renderer *markdownRenderer) rawText(node ast.Node) string {
	var result strings.Builder
	if node.Type() == ast.TypeInline {
		if textNode, ok := node.(*ast.Text); ok {
			result.Write(textNode.Segment.Value(renderer.source))
			return result.String()
		}
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			result.WriteString(renderer.rawText(child))
		}
		return result.String()
	}
	for i := range node.Lines().Len() {
		segment := node.Lines().At(i)
		result.Write(segment.Value(renderer.source))
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		result.WriteString(renderer.rawText(child))
	}
	return result.String()
}
