package html_utils

import (
	"strings"

	"golang.org/x/net/html"
)

// TextContent strips markup from a notebook HTML document, joining text nodes
// with newlines. Script and style bodies are skipped.
func TextContent(document string) string {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return strings.TrimSpace(document)
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return strings.Join(parts, "\n")
}

// Title returns the first h1 text, else the title tag text, else empty.
func Title(document string) string {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return ""
	}

	if heading := findElement(root, "h1"); heading != "" {
		return heading
	}
	return findElement(root, "title")
}

func findElement(root *html.Node, name string) string {
	var found string
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == name {
			found = strings.TrimSpace(nodeText(n))
			return true
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if walk(child) {
				return true
			}
		}
		return false
	}
	walk(root)
	return found
}

func nodeText(n *html.Node) string {
	var builder strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			builder.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return builder.String()
}
