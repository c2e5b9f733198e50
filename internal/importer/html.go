// Package importer converts a Netscape bookmark export into a directory
// document.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/linkdir/internal/model"
	"golang.org/x/net/html"
)

// UnsortedCategory holds bookmarks that sit outside any folder.
const UnsortedCategory = "Unsorted"

// pathSeparator joins nested folder names into one category name.
const pathSeparator = " / "

// ParseHTMLBookmarks parses Netscape bookmark HTML into a Store. Every folder
// holding bookmarks becomes a category named by its folder path, in the order
// the folders first contribute a bookmark. A <DD> directly after a bookmark
// becomes its description and ADD_DATE becomes its date.
func ParseHTMLBookmarks(r io.Reader) (*model.Store, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	b := &builder{index: make(map[string]int)}

	var folderStack []string // folder names, outermost first
	var pendingFolder string // folder waiting to be pushed on next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				if name := getTextContent(n); name != "" {
					pendingFolder = name
				}
				b.last = nil
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					b.last = nil
					return
				}

				name := getTextContent(n)
				if name == "" {
					name = href
				}

				category := UnsortedCategory
				if len(folderStack) > 0 {
					category = strings.Join(folderStack, pathSeparator)
				}
				b.add(category, model.Entry{
					Name: name,
					Link: href,
					Date: parseAddDate(getAttr(n, "add_date")),
				})
				return

			case "dd":
				if b.last != nil {
					b.last.Description = ownText(n)
					b.last = nil
				}
				// A DD may wrap the following items in lenient exports.
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode {
						parse(c)
					}
				}
				return

			case "dl":
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				b.last = nil
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return b.store(), nil
}

// builder collects entries per category while keeping a handle on the most
// recent entry so a trailing <DD> can fill in its description.
type builder struct {
	names   []string
	entries [][]model.Entry
	index   map[string]int
	last    *model.Entry
}

func (b *builder) add(category string, e model.Entry) {
	key := model.NormalizeKey(category)
	i, ok := b.index[key]
	if !ok {
		i = len(b.names)
		b.index[key] = i
		b.names = append(b.names, category)
		b.entries = append(b.entries, nil)
	}
	b.entries[i] = append(b.entries[i], e)
	b.last = &b.entries[i][len(b.entries[i])-1]
}

func (b *builder) store() *model.Store {
	store := model.NewStore()
	for i, name := range b.names {
		store.Add(name, b.entries[i]...)
	}
	return store
}

// parseAddDate converts a Unix-seconds ADD_DATE into a calendar date.
// Missing or invalid values give an absent date.
func parseAddDate(s string) model.Date {
	if s == "" {
		return model.Date{}
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ts <= 0 {
		return model.Date{}
	}
	t := time.Unix(ts, 0).UTC()
	return model.NewDate(t.Year(), t.Month(), t.Day())
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// ownText returns the text directly under n, ignoring nested elements.
func ownText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.Join(strings.Fields(text.String()), " ")
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
