package parser

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"sem/internal/hashutil"
	"sem/internal/model"
)

// jsonMaxDepth is the deepest key level that still yields entities
// (the root object is depth 0).
const jsonMaxDepth = 3

// JSONPlugin extracts properties, nested objects and array elements from
// JSON documents. Entities are named by RFC-6901 pointers. Keys are visited
// in document order and an object's members are emitted before the object
// itself; the token decoder supplies byte offsets, which give exact line
// numbers without a second parse.
type JSONPlugin struct{}

// NewJSONPlugin creates the JSON plugin.
func NewJSONPlugin() *JSONPlugin {
	return &JSONPlugin{}
}

func (p *JSONPlugin) ID() string { return "json" }

func (p *JSONPlugin) Extensions() []string { return []string{".json"} }

func (p *JSONPlugin) ExtractEntities(content, filePath string) []model.Entity {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") || !json.Valid([]byte(content)) {
		return nil
	}

	w := &jsonWalker{
		src:   content,
		path:  filePath,
		lines: buildLineIndex(content),
	}
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}
	if err := w.walkObject(dec, "", 1); err != nil {
		return w.entities
	}
	return w.entities
}

type jsonWalker struct {
	src      string
	path     string
	lines    []int // byte offset of each line start
	entities []model.Entity
}

// walkObject consumes the members of an object whose '{' has already been
// read, including the closing '}'. depth is the level of the object's keys.
func (w *jsonWalker) walkObject(dec *json.Decoder, pointer string, depth int) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		keyLine := w.lineAt(int(dec.InputOffset()) - 1)
		childPointer := pointer + "/" + escapeJSONPointer(key)

		valStart := w.valueStart(int(dec.InputOffset()))
		entityType, err := w.walkValue(dec, childPointer, depth)
		if err != nil {
			return err
		}
		valEnd := int(dec.InputOffset())

		if depth <= jsonMaxDepth && entityType != "" {
			w.emit(entityType, childPointer, keyLine, valStart, valEnd)
		}
	}
	// Closing '}'.
	_, err := dec.Token()
	return err
}

// walkValue consumes one value and returns the entity type it implies for
// the owning key: "property" for primitives, "object" for objects and
// arrays. Nested entities are emitted along the way.
func (w *jsonWalker) walkValue(dec *json.Decoder, pointer string, depth int) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}

	switch delim := tok.(type) {
	case json.Delim:
		switch delim {
		case json.Delim('{'):
			if depth+1 <= jsonMaxDepth {
				return "object", w.walkObject(dec, pointer, depth+1)
			}
			return "object", consumeUntilClose(dec, json.Delim('}'))
		case json.Delim('['):
			return "object", w.walkArray(dec, pointer, depth)
		}
		return "", nil
	default:
		return "property", nil
	}
}

// walkArray consumes array elements; elements of object type become
// "element" entities at depth+1.
func (w *jsonWalker) walkArray(dec *json.Decoder, pointer string, depth int) error {
	index := 0
	for dec.More() {
		elemPointer := pointer + "/" + strconv.Itoa(index)
		elemStart := w.valueStart(int(dec.InputOffset()))
		elemLine := w.lineAt(elemStart)

		tok, err := dec.Token()
		if err != nil {
			return err
		}

		isObject := tok == json.Delim('{')
		switch tok {
		case json.Delim('{'):
			if depth+2 <= jsonMaxDepth {
				err = w.walkObject(dec, elemPointer, depth+2)
			} else {
				err = consumeUntilClose(dec, json.Delim('}'))
			}
		case json.Delim('['):
			err = consumeUntilClose(dec, json.Delim(']'))
		}
		if err != nil {
			return err
		}

		if isObject && depth+1 <= jsonMaxDepth {
			w.emit("element", elemPointer, elemLine, elemStart, int(dec.InputOffset()))
		}
		index++
	}
	// Closing ']'.
	_, err := dec.Token()
	return err
}

func (w *jsonWalker) emit(entityType, pointer string, startLine, startOffset, endOffset int) {
	raw := w.src[startOffset:endOffset]
	var indented bytes.Buffer
	content := raw
	if err := json.Indent(&indented, []byte(raw), "", "  "); err == nil {
		content = indented.String()
	}

	w.entities = append(w.entities, model.Entity{
		ID:          model.BuildEntityID(w.path, entityType, pointer, ""),
		FilePath:    w.path,
		EntityType:  entityType,
		Name:        pointer,
		Content:     content,
		ContentHash: hashutil.ContentHash(strings.TrimSpace(content)),
		StartLine:   startLine,
		EndLine:     w.lineAt(endOffset - 1),
	})
}

// valueStart advances from a byte offset past whitespace and the key-value
// colon to the first byte of the value.
func (w *jsonWalker) valueStart(offset int) int {
	for offset < len(w.src) {
		switch w.src[offset] {
		case ' ', '\t', '\r', '\n', ':', ',':
			offset++
		default:
			return offset
		}
	}
	return offset
}

func (w *jsonWalker) lineAt(offset int) int {
	if offset < 0 {
		return 1
	}
	return sort.Search(len(w.lines), func(i int) bool { return w.lines[i] > offset })
}

// consumeUntilClose reads tokens until the structure opened before the call
// is balanced again. The decoder tracks nesting itself, so it suffices to
// count matching delimiters.
func consumeUntilClose(dec *json.Decoder, closing json.Delim) error {
	depth := 1
	var opening json.Delim
	if closing == json.Delim('}') {
		opening = json.Delim('{')
	} else {
		opening = json.Delim('[')
	}
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok {
		case opening:
			depth++
		case closing:
			depth--
		}
	}
	return nil
}

// escapeJSONPointer applies RFC-6901 escaping: '~' becomes "~0" and '/'
// becomes "~1".
func escapeJSONPointer(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	return strings.ReplaceAll(key, "/", "~1")
}

// buildLineIndex returns the byte offset of each line start.
func buildLineIndex(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
