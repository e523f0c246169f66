// Package nav models the site's menu structure. Each directory level of
// the content tree may carry a _meta.json file describing its entries;
// key order in that file is display order, so decoding goes through a
// token scan instead of a Go map.
package nav

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

// Node types.
const (
	TypePage = "page"
	TypeMenu = "menu"
)

// Node is one navigation entry. A bare string in _meta.json becomes a
// page node whose title is that string; an object may carry an explicit
// type, href, and child items.
type Node struct {
	Title     string
	Type      string
	Href      string
	NewWindow bool
	Items     []Entry
}

// Entry pairs a node with its key. The key doubles as the path segment
// when the node has no explicit href.
type Entry struct {
	Key  string
	Node Node
}

// Tree is the ordered entry list for one level.
type Tree struct {
	Items []Entry
}

// UnmarshalJSON decodes a node from either a bare string or an object.
func (n *Node) UnmarshalJSON(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return decodeNode(dec, n)
}

// UnmarshalJSON decodes an ordered entry list from a JSON object.
func (t *Tree) UnmarshalJSON(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	items, err := decodeItems(dec)
	if err != nil {
		return err
	}
	t.Items = items
	return nil
}

func decodeNode(dec *json.Decoder, n *Node) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case string:
		*n = Node{Title: v, Type: TypePage}
		return nil
	case json.Delim:
		if v != '{' {
			return fmt.Errorf("nav: unexpected token %v", v)
		}
	default:
		return fmt.Errorf("nav: unexpected token %v", tok)
	}

	node := Node{Type: TypePage}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		switch key {
		case "title":
			if err := decodeString(dec, &node.Title); err != nil {
				return err
			}
		case "type":
			if err := decodeString(dec, &node.Type); err != nil {
				return err
			}
		case "href":
			if err := decodeString(dec, &node.Href); err != nil {
				return err
			}
		case "newWindow":
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			b, _ := tok.(bool)
			node.NewWindow = b
		case "items":
			items, err := decodeItems(dec)
			if err != nil {
				return err
			}
			node.Items = items
		default:
			// theme/display hints and other authoring extras
			if err := skipValue(dec); err != nil {
				return err
			}
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}
	*n = node
	return nil
}

func decodeItems(dec *json.Decoder) ([]Entry, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("nav: items must be an object, got %v", tok)
	}
	var items []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		var node Node
		if err := decodeNode(dec, &node); err != nil {
			return nil, err
		}
		items = append(items, Entry{Key: key, Node: node})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return items, nil
}

func decodeString(dec *json.Decoder, dst *string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	s, ok := tok.(string)
	if !ok {
		return fmt.Errorf("nav: expected string, got %v", tok)
	}
	*dst = s
	return nil
}

func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if _, ok := tok.(json.Delim); !ok {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// MarshalJSON writes the tree back as an object in entry order.
func (t Tree) MarshalJSON() ([]byte, error) {
	return marshalItems(t.Items)
}

// MarshalJSON writes a node; pure pages collapse back to a bare string.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Type == TypePage && n.Href == "" && !n.NewWindow && len(n.Items) == 0 {
		return json.Marshal(n.Title)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	field := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}
	if n.Title != "" {
		if err := field("title", n.Title); err != nil {
			return nil, err
		}
	}
	if err := field("type", n.Type); err != nil {
		return nil, err
	}
	if n.Href != "" {
		if err := field("href", n.Href); err != nil {
			return nil, err
		}
	}
	if n.NewWindow {
		if err := field("newWindow", true); err != nil {
			return nil, err
		}
	}
	if len(n.Items) > 0 {
		items, err := marshalItems(n.Items)
		if err != nil {
			return nil, err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(`"items":`)
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalItems(items []Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Node)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Load reads the _meta.json for one directory level under the content
// root. A missing file yields an empty tree; a malformed one is logged
// and yields an empty tree as well, so a broken menu never takes down a
// page render. Menu nodes without items violate the schema and are
// dropped with a warning.
func Load(contentDir string, subPath ...string) (Tree, error) {
	parts := append([]string{contentDir}, subPath...)
	file := filepath.Join(append(parts, "_meta.json")...)
	raw, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Tree{}, nil
		}
		return Tree{}, fmt.Errorf("nav: read %s: %w", file, err)
	}
	var tree Tree
	if err := json.Unmarshal(raw, &tree); err != nil {
		log.Printf("nav: malformed %s: %v", file, err)
		return Tree{}, nil
	}
	tree.Items = pruneEmptyMenus(tree.Items, file)
	return tree, nil
}

// LoadTree reads the root _meta.json and descends into subdirectories
// that carry their own _meta.json, attaching those levels as submenu
// items. Inline items in the parent file take precedence.
func LoadTree(contentDir string) (Tree, error) {
	tree, err := Load(contentDir)
	if err != nil {
		return Tree{}, err
	}
	for i, e := range tree.Items {
		if len(e.Node.Items) > 0 || e.Node.Href != "" {
			continue
		}
		sub := filepath.Join(contentDir, e.Key)
		if _, statErr := os.Stat(filepath.Join(sub, "_meta.json")); statErr != nil {
			continue
		}
		child, err := Load(contentDir, e.Key)
		if err != nil {
			return Tree{}, err
		}
		if len(child.Items) == 0 {
			continue
		}
		tree.Items[i].Node.Items = child.Items
		tree.Items[i].Node.Type = TypeMenu
	}
	return tree, nil
}

func pruneEmptyMenus(items []Entry, file string) []Entry {
	kept := items[:0]
	for _, e := range items {
		if e.Node.Type == TypeMenu && len(e.Node.Items) == 0 {
			log.Printf("nav: %s: menu %q has no items, dropping", file, e.Key)
			continue
		}
		e.Node.Items = pruneEmptyMenus(e.Node.Items, file)
		kept = append(kept, e)
	}
	return kept
}

// HrefFor derives a node's link target: an explicit href wins, otherwise
// the path is built from the key chain.
func HrefFor(e Entry, parent string) string {
	if e.Node.Href != "" {
		return e.Node.Href
	}
	if parent == "" {
		parent = "/"
	}
	return path.Join("/", strings.TrimPrefix(parent, "/"), e.Key)
}

// TitleFor returns the display title of an entry, prettifying the key
// when no title is authored.
func TitleFor(e Entry) string {
	if strings.TrimSpace(e.Node.Title) != "" {
		return e.Node.Title
	}
	return content.PrettifySlug(e.Key)
}
