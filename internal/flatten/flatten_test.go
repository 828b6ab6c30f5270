package flatten

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/eugenenazirov/json-properties/internal/document"
)

func TestFlatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		input  string
		want   FlatMap
	}{
		{
			name:  "NestedObject",
			input: `{"server": {"port": 8080, "name": "x"}, "debug": true}`,
			want:  FlatMap{"server.port": "8080", "server.name": "x", "debug": "true"},
		},
		{
			name:  "DeepNesting",
			input: `{"a": {"b": {"c": "v"}}}`,
			want:  FlatMap{"a.b.c": "v"},
		},
		{
			name:  "AlreadyFlat",
			input: `{"a": "1", "b.c": "2", "d": false}`,
			want:  FlatMap{"a": "1", "b.c": "2", "d": "false"},
		},
		{
			name:  "EmptyDocument",
			input: `{}`,
			want:  FlatMap{},
		},
		{
			name:  "EmptyNestedDocumentContributesNothing",
			input: `{"a": {}, "b": {"c": {}}, "d": 1}`,
			want:  FlatMap{"d": "1"},
		},
		{
			name:  "ArraysAreOpaque",
			input: `{"list": [1, {"x": 2}], "nested": {"items": ["a", "b"]}}`,
			want:  FlatMap{"list": `[1,{"x":2}]`, "nested.items": `["a","b"]`},
		},
		{
			name:  "NullBecomesEmptyString",
			input: `{"a": null}`,
			want:  FlatMap{"a": ""},
		},
		{
			name:   "Prefix",
			prefix: "customize",
			input:  `{"property": {"message": "hello"}}`,
			want:   FlatMap{"customize.property.message": "hello"},
		},
		{
			name:  "CollisionLaterNestedWins",
			input: `{"a.b": 2, "a": {"b": 1}}`,
			want:  FlatMap{"a.b": "1"},
		},
		{
			name:  "CollisionLaterLiteralWins",
			input: `{"a": {"b": 1}, "a.b": 2}`,
			want:  FlatMap{"a.b": "2"},
		},
		{
			name:  "DuplicateKeysLastWins",
			input: `{"a": 1, "a": 2}`,
			want:  FlatMap{"a": "2"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, tc.input)
			got, err := Flatten(tc.prefix, doc)
			if err != nil {
				t.Fatalf("Flatten returned error: %v", err)
			}
			if !maps.Equal(got, tc.want) {
				t.Fatalf("unexpected result: got %v want %v", got, tc.want)
			}
		})
	}
}

func TestFlattenNilDocument(t *testing.T) {
	t.Parallel()

	got, err := Flatten("", nil)
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil map, got %v", got)
	}
}

func TestFlattenEveryLeafOnce(t *testing.T) {
	t.Parallel()

	doc := document.New(
		document.Entry{Key: "a", Value: document.Nested(document.New(
			document.Entry{Key: "x", Value: document.Number("1")},
			document.Entry{Key: "y", Value: document.Nested(document.New(
				document.Entry{Key: "z", Value: document.String("deep")},
			))},
		))},
		document.Entry{Key: "b", Value: document.Bool(false)},
		document.Entry{Key: "c", Value: document.Null()},
	)

	got, err := Flatten("", doc)
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}

	want := []string{"a.x", "a.y.z", "b", "c"}
	keys := got.Keys()
	if len(keys) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected keys %v, got %v", want, keys)
		}
	}
}

func TestFlattenMaxDepth(t *testing.T) {
	t.Parallel()

	input := strings.Repeat(`{"a":`, 4) + `"v"` + strings.Repeat(`}`, 4)
	doc := mustParse(t, input)

	got, err := Flatten("", doc, WithMaxDepth(4))
	if err != nil {
		t.Fatalf("expected depth 4 to be accepted, got %v", err)
	}
	if got["a.a.a.a"] != "v" {
		t.Fatalf("unexpected result %v", got)
	}

	got, err = Flatten("", doc, WithMaxDepth(3))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected ErrMaxDepthExceeded, got %v", err)
	}
	if !errors.Is(err, document.ErrParse) {
		t.Fatalf("expected depth failure to be a parse error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no partial result, got %v", got)
	}
}

func TestFlattenIgnoresNonPositiveDepthOption(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"a": {"b": 1}}`)
	got, err := Flatten("", doc, WithMaxDepth(0))
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	if got["a.b"] != "1" {
		t.Fatalf("unexpected result %v", got)
	}
}

func mustParse(t *testing.T, input string) *document.Document {
	t.Helper()

	doc, err := document.ParseJSON([]byte(input), 0)
	if err != nil {
		t.Fatalf("ParseJSON(%q) returned error: %v", input, err)
	}
	return doc
}

func BenchmarkFlattenWide(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("{")
	for i := 0; i < 500; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`"k`)
		sb.WriteString(strings.Repeat("x", i%7))
		sb.WriteString(`":{"nested":{"value":1}}`)
	}
	sb.WriteString("}")

	doc, err := document.ParseJSON([]byte(sb.String()), 0)
	if err != nil {
		b.Fatalf("ParseJSON returned error: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Flatten("", doc); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
