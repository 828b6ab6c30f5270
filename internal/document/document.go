package document

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	// KindList is an array kept as an opaque scalar in its compact text form.
	KindList
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Value is either a scalar (null, string, number, bool, list) or a nested Document.
type Value struct {
	kind Kind
	text string
	doc  *Document
}

// Null returns the null scalar.
func Null() Value {
	return Value{kind: KindNull}
}

// String returns a string scalar.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number returns a number scalar holding its literal text as written in the source.
func Number(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// Bool returns a boolean scalar.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, text: "true"}
	}
	return Value{kind: KindBool, text: "false"}
}

// List returns an array scalar holding its compact textual form.
func List(text string) Value {
	return Value{kind: KindList, text: text}
}

// Nested wraps a Document as a Value. A nil document is treated as empty.
func Nested(d *Document) Value {
	if d == nil {
		d = New()
	}
	return Value{kind: KindDocument, doc: d}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsDocument reports whether v holds a nested Document.
func (v Value) IsDocument() bool {
	return v.kind == KindDocument
}

// Document returns the nested document, or nil for scalars.
func (v Value) Document() *Document {
	return v.doc
}

// Text returns the string form of a scalar. Null renders as the empty string.
// Nested documents have no scalar form and return "".
func (v Value) Text() string {
	return v.text
}

// Entry is a single key/value pair of a Document.
type Entry struct {
	Key   string
	Value Value
}

// Document is an ordered sequence of key/value entries as they appeared in the
// source. Duplicate keys are retained in order of appearance; consumers that
// build maps from it get last-write-wins semantics.
type Document struct {
	entries []Entry
}

// New creates a Document holding the given entries.
func New(entries ...Entry) *Document {
	d := &Document{entries: make([]Entry, 0, len(entries))}
	d.entries = append(d.entries, entries...)
	return d
}

// Append adds an entry after all existing ones.
func (d *Document) Append(key string, value Value) {
	d.entries = append(d.entries, Entry{Key: key, Value: value})
}

// Entries returns the entries in source order. The slice must not be modified.
func (d *Document) Entries() []Entry {
	if d == nil {
		return nil
	}
	return d.entries
}

// Len returns the number of entries, counting duplicates.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}
