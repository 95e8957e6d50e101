package caption

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	nethtml "golang.org/x/net/html"
)

var (
	reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	reHTTPURL   = regexp.MustCompile(`https?://[^\s)]+`)
	reTag       = regexp.MustCompile(`(^|\s)([#@][\p{L}\p{N}_]+)`)
)

type Options struct {
	StyleTags  bool
	StyleLinks bool
	MaxLines   int
}

var DefaultOptions = Options{
	StyleTags:  true,
	StyleLinks: true,
}

// Lines renders a caption fragment as wrapped terminal lines.
func Lines(raw string, width int) []string {
	return LinesWithOptions(raw, width, DefaultOptions)
}

func LinesWithOptions(raw string, width int, opts Options) []string {
	text := Text(raw)
	if text == "" {
		return nil
	}
	lines := trimBlankLines(wrapText(text, max(1, width)))
	if opts.MaxLines > 0 && len(lines) > opts.MaxLines {
		lines = append(lines[:opts.MaxLines:opts.MaxLines], "…")
	}
	for i, line := range lines {
		if opts.StyleLinks {
			line = styleLinks(line)
		}
		if opts.StyleTags {
			line = styleTags(line)
		}
		lines[i] = line
	}
	return lines
}

// Text converts a caption fragment to plain text. Paragraphs and line
// breaks become newlines; unparsable input falls back to unescaped text.
func Text(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "<&") {
		return raw
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return strings.TrimSpace(html.UnescapeString(raw))
	}
	body := findBodyNode(doc)
	if body == nil {
		return strings.TrimSpace(html.UnescapeString(raw))
	}
	return normalizeInlineText(renderChildren(body))
}

// Tags lists the hashtags in a caption, in order, without duplicates.
func Tags(raw string) []string {
	text := Text(raw)
	matches := reTag.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		tag := m[2]
		if !strings.HasPrefix(tag, "#") {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func renderNode(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	switch node.Type {
	case nethtml.TextNode:
		return node.Data
	case nethtml.ElementNode:
	default:
		return ""
	}
	switch strings.ToLower(node.Data) {
	case "script", "style", "noscript", "img", "video":
		return ""
	case "br":
		return "\n"
	case "p", "div":
		return renderChildren(node) + "\n"
	case "a":
		text := normalizeInlineText(renderChildren(node))
		href := nodeAttr(node, "href")
		switch {
		case href == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "@"):
			return text
		case text == "":
			return href
		case strings.EqualFold(text, href):
			return href
		default:
			return text + " (" + href + ")"
		}
	default:
		return renderChildren(node)
	}
}

func renderChildren(node *nethtml.Node) string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(renderNode(child))
	}
	return b.String()
}

func normalizeInlineText(s string) string {
	s = html.UnescapeString(s)
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return strings.Join(out, "\n")
}

func styleTags(line string) string {
	return reTag.ReplaceAllStringFunc(line, func(match string) string {
		lead := ""
		tag := match
		if trimmed := strings.TrimLeft(match, " \t"); trimmed != match {
			lead = match[:len(match)-len(trimmed)]
			tag = trimmed
		}
		if strings.HasPrefix(tag, "@") {
			return lead + mentionStyle.Render(tag)
		}
		return lead + hashtagStyle.Render(tag)
	})
}

func styleLinks(line string) string {
	return reHTTPURL.ReplaceAllStringFunc(line, func(u string) string {
		return linkURLStyle.Render(u)
	})
}

func trimBlankLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines) - 1
	for end >= start && strings.TrimSpace(lines[end]) == "" {
		end--
	}
	if end < start {
		return nil
	}
	return lines[start : end+1]
}

func wrapText(text string, width int) []string {
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for visibleLen(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head, tail := splitRunes(word, width)
				out = append(out, head)
				word = tail
			}

			if line == "" {
				line = word
				continue
			}
			if visibleLen(line)+1+visibleLen(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSI(s))
}

func stripANSI(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}

func nodeAttr(node *nethtml.Node, name string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}
