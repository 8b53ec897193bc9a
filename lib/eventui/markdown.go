// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
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
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdownParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share; parsing creates per-call state via Parse(reader).
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

// renderTerminalMarkdown renders markdown (assistant chat replies, event
// descriptions) as styled terminal text at the given width. Soft line
// breaks within paragraphs become spaces so hard-wrapped source reflows
// at any terminal width; fenced code blocks are syntax-highlighted.
func renderTerminalMarkdown(input string, theme Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	// Force the ANSI256 profile: this output is always for terminal
	// display inside the bubbletea program, and auto-detection would
	// strip colors in environments with no TTY (tests in particular).
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)

	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer walks the goldmark AST directly rather than using
// goldmark's renderer interface: terminal rendering needs
// accumulate-then-wrap semantics, where a paragraph's inline content
// collects in a buffer and is word-wrapped as a unit when the
// paragraph closes.
type markdownRenderer struct {
	source []byte
	theme  Theme
	width  int

	output strings.Builder

	// Inline accumulator, flushed with word-wrap when the containing
	// block closes.
	inline strings.Builder

	// Indent handling for nested blocks (blockquotes, list items).
	linePrefix string

	// Bullet for the very next emitted line only; replaces linePrefix
	// once, then clears.
	pendingBullet string

	// Counters rather than booleans so nested emphasis balances.
	boldCount   int
	italicCount int
	strikeCount int

	listStack []listLevel

	lipRenderer *lipgloss.Renderer

	trailingNewlines int
}

type listLevel struct {
	ordered bool
	counter int
	tight   bool
}

func (renderer *markdownRenderer) newStyle() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

// currentWidth is the content width after indentation, clamped so
// degenerate terminal sizes never produce one-character wrapping.
func (renderer *markdownRenderer) currentWidth() int {
	width := renderer.width - len(renderer.linePrefix)
	if width < 10 {
		width = 10
	}
	return width
}

func (renderer *markdownRenderer) inTightList() bool {
	if len(renderer.listStack) == 0 {
		return false
	}
	return renderer.listStack[len(renderer.listStack)-1].tight
}

func (renderer *markdownRenderer) writeOutput(s string) {
	if s == "" {
		return
	}
	renderer.output.WriteString(s)

	newTrailing := 0
	entirelyNewlines := true
	for index := len(s) - 1; index >= 0; index-- {
		if s[index] == '\n' {
			newTrailing++
		} else {
			entirelyNewlines = false
			break
		}
	}
	if entirelyNewlines {
		renderer.trailingNewlines += newTrailing
	} else {
		renderer.trailingNewlines = newTrailing
	}
}

func (renderer *markdownRenderer) ensureNewline() {
	if renderer.trailingNewlines < 1 {
		renderer.writeOutput("\n")
	}
}

func (renderer *markdownRenderer) ensureBlankLine() {
	for renderer.trailingNewlines < 2 {
		renderer.writeOutput("\n")
	}
}

// consumeLinePrefix returns the pending bullet for the first line of a
// list item, or the regular indent.
func (renderer *markdownRenderer) consumeLinePrefix() string {
	if renderer.pendingBullet != "" {
		bullet := renderer.pendingBullet
		renderer.pendingBullet = ""
		return bullet
	}
	return renderer.linePrefix
}

func (renderer *markdownRenderer) applyPrefixes(content string) string {
	lines := strings.Split(content, "\n")
	var result strings.Builder
	for index, line := range lines {
		if index == 0 {
			result.WriteString(renderer.consumeLinePrefix())
		} else {
			result.WriteString(renderer.linePrefix)
		}
		result.WriteString(line)
		if index < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// flushInline word-wraps the accumulated inline content, applies line
// prefixes, and resets the buffer.
func (renderer *markdownRenderer) flushInline() string {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return ""
	}
	content = ansi.Wrap(content, renderer.currentWidth(), " ,.;-+|")
	return renderer.applyPrefixes(content)
}

func (renderer *markdownRenderer) styledText(content string) string {
	style := renderer.newStyle().Foreground(renderer.theme.NormalText)
	if renderer.boldCount > 0 {
		style = style.Bold(true)
	}
	if renderer.italicCount > 0 {
		style = style.Italic(true)
	}
	if renderer.strikeCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// renderInlineContent collects a node's inline children into a string,
// saving and restoring the inline buffer and style state so the
// caller's context is unaffected.
func (renderer *markdownRenderer) renderInlineContent(node ast.Node) string {
	savedInline := renderer.inline.String()
	savedBold := renderer.boldCount
	savedItalic := renderer.italicCount
	savedStrike := renderer.strikeCount

	renderer.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, renderer.walk)
	}
	result := renderer.inline.String()

	renderer.inline.Reset()
	renderer.inline.WriteString(savedInline)
	renderer.boldCount = savedBold
	renderer.italicCount = savedItalic
	renderer.strikeCount = savedStrike

	return result
}

// highlightCode syntax-highlights code with Chroma, falling back to
// faint plain text for unknown languages.
func (renderer *markdownRenderer) highlightCode(code, language string) string {
	if language == "" {
		return renderer.newStyle().Foreground(renderer.theme.FaintText).Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return renderer.newStyle().Foreground(renderer.theme.FaintText).Render(code)
	}
	return buffer.String()
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindDocument:
		// Nothing to do at either boundary.

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
		} else {
			flushed := renderer.flushInline()
			if flushed != "" {
				renderer.writeOutput(flushed)
				renderer.ensureNewline()
				if !renderer.inTightList() {
					renderer.ensureBlankLine()
				}
			}
		}

	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			renderer.renderFencedCodeBlock(node.(*ast.FencedCodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			renderer.renderIndentedCodeBlock(node.(*ast.CodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			renderer.linePrefix += "│ "
		} else {
			renderer.linePrefix = strings.TrimSuffix(renderer.linePrefix, "│ ")
			renderer.ensureBlankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			start := 0
			if list.IsOrdered() {
				start = list.Start
			}
			renderer.listStack = append(renderer.listStack, listLevel{
				ordered: list.IsOrdered(),
				counter: start,
				tight:   list.IsTight,
			})
		} else {
			if len(renderer.listStack) > 0 {
				renderer.listStack = renderer.listStack[:len(renderer.listStack)-1]
			}
			if !renderer.inTightList() {
				renderer.ensureBlankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			renderer.enterListItem()
		} else {
			renderer.leaveListItem()
		}

	case ast.KindThematicBreak:
		if entering {
			rule := strings.Repeat("─", renderer.currentWidth())
			ruleStyle := renderer.newStyle().Foreground(renderer.theme.BorderColor)
			renderer.ensureBlankLine()
			renderer.writeOutput(renderer.applyPrefixes(ruleStyle.Render(rule)))
			renderer.ensureNewline()
			renderer.ensureBlankLine()
		}

	case ast.KindText:
		if entering {
			renderer.handleText(node.(*ast.Text))
		}

	case ast.KindString:
		if entering {
			str := node.(*ast.String)
			renderer.inline.WriteString(renderer.styledText(string(str.Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			renderer.boldCount += delta
		} else {
			renderer.italicCount += delta
		}

	case ast.KindCodeSpan:
		if entering {
			renderer.renderCodeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			link := node.(*ast.Link)
			renderer.inline.WriteString(renderer.renderInlineContent(node))
			if url := string(link.Destination); url != "" {
				urlStyle := renderer.newStyle().Foreground(renderer.theme.FaintText)
				renderer.inline.WriteString(" " + urlStyle.Render("("+url+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			autoLink := node.(*ast.AutoLink)
			urlStyle := renderer.newStyle().Foreground(renderer.theme.FaintText)
			renderer.inline.WriteString(urlStyle.Render(string(autoLink.URL(renderer.source))))
		}

	case ast.KindImage:
		if entering {
			image := node.(*ast.Image)
			faint := renderer.newStyle().Foreground(renderer.theme.FaintText)
			renderer.inline.WriteString(faint.Render("[" + renderer.renderInlineContent(node) + "]"))
			if url := string(image.Destination); url != "" {
				renderer.inline.WriteString(" " + faint.Render("("+url+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case extast.KindStrikethrough:
		if entering {
			renderer.strikeCount++
		} else {
			renderer.strikeCount--
		}

	case extast.KindTable:
		if entering {
			renderer.renderTable(node)
			return ast.WalkSkipChildren, nil
		}
	}

	return ast.WalkContinue, nil
}

func (renderer *markdownRenderer) leaveHeading(heading *ast.Heading) {
	// Strip inline styling first; the heading style replaces it.
	content := ansi.Strip(renderer.inline.String())
	renderer.inline.Reset()
	if content == "" {
		return
	}

	style := renderer.newStyle().Bold(true)
	if heading.Level <= 2 {
		style = style.Foreground(renderer.theme.HeaderForeground)
	} else {
		style = style.Foreground(renderer.theme.NormalText)
	}

	wrapped := ansi.Wrap(style.Render(content), renderer.currentWidth(), " ,.;-+|")
	renderer.ensureBlankLine()
	renderer.writeOutput(renderer.applyPrefixes(wrapped))
	renderer.ensureNewline()
	renderer.ensureBlankLine()
}

func (renderer *markdownRenderer) renderFencedCodeBlock(node *ast.FencedCodeBlock) {
	language := string(node.Language(renderer.source))
	code := renderer.collectLines(node.Lines())

	highlighted := renderer.highlightCode(code, language)
	renderer.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		renderer.writeOutput(renderer.consumeLinePrefix() + line)
		renderer.ensureNewline()
	}
	renderer.ensureBlankLine()
}

func (renderer *markdownRenderer) renderIndentedCodeBlock(node *ast.CodeBlock) {
	code := renderer.collectLines(node.Lines())
	faint := renderer.newStyle().Foreground(renderer.theme.FaintText)
	renderer.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		renderer.writeOutput(renderer.consumeLinePrefix() + faint.Render(line))
		renderer.ensureNewline()
	}
	renderer.ensureBlankLine()
}

func (renderer *markdownRenderer) collectLines(lines *text.Segments) string {
	var collected strings.Builder
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		collected.Write(segment.Value(renderer.source))
	}
	return collected.String()
}

func (renderer *markdownRenderer) enterListItem() {
	if len(renderer.listStack) == 0 {
		return
	}
	top := &renderer.listStack[len(renderer.listStack)-1]

	var bullet string
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	} else {
		bullet = "- "
	}

	// The bullet replaces the full indent for this item's first line;
	// continuation lines indent under it.
	renderer.pendingBullet = renderer.linePrefix + bullet
	renderer.linePrefix += strings.Repeat(" ", len(bullet))
}

func (renderer *markdownRenderer) leaveListItem() {
	if len(renderer.listStack) > 0 {
		top := renderer.listStack[len(renderer.listStack)-1]
		bulletWidth := 2
		if top.ordered {
			bulletWidth = len(fmt.Sprintf("%d. ", top.counter-1))
		}
		if len(renderer.linePrefix) >= bulletWidth {
			renderer.linePrefix = renderer.linePrefix[:len(renderer.linePrefix)-bulletWidth]
		}
	}
	if !renderer.inTightList() {
		renderer.ensureBlankLine()
	} else {
		renderer.ensureNewline()
	}
}

func (renderer *markdownRenderer) renderCodeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			code.Write(typed.Segment.Value(renderer.source))
		case *ast.String:
			code.Write(typed.Value)
		}
	}
	codeStyle := renderer.newStyle().Foreground(renderer.theme.FaintText)
	renderer.inline.WriteString(codeStyle.Render(code.String()))
}

func (renderer *markdownRenderer) handleText(node *ast.Text) {
	value := string(node.Segment.Value(renderer.source))
	renderer.inline.WriteString(renderer.styledText(value))

	// Soft line breaks become spaces so hard-wrapped source text
	// reflows at the current terminal width.
	if node.SoftLineBreak() {
		renderer.inline.WriteString(" ")
	}
	if node.HardLineBreak() {
		renderer.inline.WriteString("\n")
	}
}

// renderTable lays out a GFM table with padded, truncated columns.
func (renderer *markdownRenderer) renderTable(node ast.Node) {
	var headerCells []string
	var bodyRows [][]string
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case extast.KindTableHeader:
			headerCells = renderer.collectTableRow(child)
		case extast.KindTableRow:
			bodyRows = append(bodyRows, renderer.collectTableRow(child))
		}
	}

	columnCount := len(headerCells)
	if columnCount == 0 && len(bodyRows) > 0 {
		columnCount = len(bodyRows[0])
	}
	if columnCount == 0 {
		return
	}

	columnWidths := make([]int, columnCount)
	measure := func(row []string) {
		for index, cell := range row {
			if index < columnCount {
				if width := lipgloss.Width(cell); width > columnWidths[index] {
					columnWidths[index] = width
				}
			}
		}
	}
	measure(headerCells)
	for _, row := range bodyRows {
		measure(row)
	}

	// Shrink columns proportionally when the table exceeds the
	// available width, keeping a minimum of 3 characters each.
	const separator = "  "
	totalWidth := len(separator) * (columnCount - 1)
	for _, width := range columnWidths {
		totalWidth += width
	}
	if available := renderer.currentWidth(); totalWidth > available {
		usable := available - len(separator)*(columnCount-1)
		if usable < columnCount*3 {
			usable = columnCount * 3
		}
		for index := range columnWidths {
			columnWidths[index] = (columnWidths[index] * usable) / totalWidth
			if columnWidths[index] < 3 {
				columnWidths[index] = 3
			}
		}
	}

	formatRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, 0, columnCount)
		for index, width := range columnWidths {
			var cell string
			if index < len(cells) {
				cell = cells[index]
			}
			if lipgloss.Width(cell) > width {
				cell = ansi.Truncate(cell, width, "…")
			}
			padding := width - lipgloss.Width(cell)
			if padding < 0 {
				padding = 0
			}
			parts = append(parts, cell+strings.Repeat(" ", padding))
		}
		return style.Render(strings.Join(parts, separator))
	}

	renderer.ensureBlankLine()
	if len(headerCells) > 0 {
		bold := renderer.newStyle().Bold(true).Foreground(renderer.theme.NormalText)
		renderer.writeOutput(renderer.consumeLinePrefix() + formatRow(headerCells, bold))
		renderer.ensureNewline()

		ruleParts := make([]string, 0, columnCount)
		for _, width := range columnWidths {
			ruleParts = append(ruleParts, strings.Repeat("─", width))
		}
		borderStyle := renderer.newStyle().Foreground(renderer.theme.BorderColor)
		renderer.writeOutput(renderer.linePrefix + borderStyle.Render(strings.Join(ruleParts, separator)))
		renderer.ensureNewline()
	}
	for _, row := range bodyRows {
		renderer.writeOutput(renderer.linePrefix + formatRow(row, renderer.newStyle()))
		renderer.ensureNewline()
	}
	renderer.ensureBlankLine()
}

func (renderer *markdownRenderer) collectTableRow(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell.Kind() == extast.KindTableCell {
			cells = append(cells, renderer.renderInlineContent(cell))
		}
	}
	return cells
}
