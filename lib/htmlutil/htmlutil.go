package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is the capability surface extraction code is written against.
// It exists so extraction logic stays portable and unit-testable on
// synthetic fragments without caring which DOM library backs it.
type Node interface {
	// FindFirst returns the first descendant matching the css selector.
	FindFirst(selector string) (Node, bool)
	// FindAll returns every descendant matching the css selector,
	// in document order.
	FindAll(selector string) []Node
	// Attr returns the value of an attribute, or "" when absent.
	Attr(name string) string
	// Text returns the concatenated text of the node and its descendants,
	// cleaned of non-printable characters and collapsed whitespace.
	Text() string
	// FirstText returns the cleaned contents of the first direct text
	// child, ignoring nested elements. Useful for markup like
	// <div>42<div class="diff">+3</div></div>.
	FirstText() string
}

type goqueryNode struct {
	sel *goquery.Selection
}

func Parse(markup string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	return FromSelection(doc.Selection), nil
}

func FromSelection(sel *goquery.Selection) Node {
	return goqueryNode{sel: sel}
}

func (n goqueryNode) FindFirst(selector string) (Node, bool) {
	found := n.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return FromSelection(found), true
}

func (n goqueryNode) FindAll(selector string) []Node {
	var out []Node
	n.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, FromSelection(s))
	})
	return out
}

func (n goqueryNode) Attr(name string) string {
	return n.sel.AttrOr(name, "")
}

func (n goqueryNode) Text() string {
	var buffer bytes.Buffer
	for _, node := range n.sel.Nodes {
		buffer.WriteString(GetText(node))
	}
	return CleanText(buffer.String())
}

func (n goqueryNode) FirstText() string {
	for _, node := range n.sel.Nodes {
		child := node.FirstChild
		for child != nil {
			if child.Type == html.TextNode {
				text := CleanText(child.Data)
				if text != "" {
					return text
				}
			}
			child = child.NextSibling
		}
	}
	return ""
}

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// non-printable runes become spaces rather than disappearing: text
// nodes separated only by markup newlines/indentation must keep a
// separator between them
func replaceNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		} else {
			newStr.WriteRune(' ')
		}
	}
	return newStr.String()
}

func CleanText(s string) string {
	s = replaceNonPrintable(s)
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
