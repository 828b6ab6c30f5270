package document

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseYAML(t *testing.T) {
	t.Parallel()

	doc, err := ParseYAML([]byte(`
server:
  port: 8080
  name: x
debug: true
empty: ~
hosts:
  - a
  - b
`), 0)
	if err != nil {
		t.Fatalf("ParseYAML returned error: %v", err)
	}

	entries := doc.Entries()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if entries[0].Key != "server" || !entries[0].Value.IsDocument() {
		t.Fatalf("expected nested server document first")
	}
	if port := entries[0].Value.Document().Entries()[0].Value; port.Kind() != KindNumber || port.Text() != "8080" {
		t.Fatalf("unexpected port %v %q", port.Kind(), port.Text())
	}
	if v := entries[1].Value; v.Kind() != KindBool || v.Text() != "true" {
		t.Fatalf("unexpected debug %v %q", v.Kind(), v.Text())
	}
	if v := entries[2].Value; v.Kind() != KindNull {
		t.Fatalf("expected null, got %v", v.Kind())
	}
	if v := entries[3].Value; v.Kind() != KindList || v.Text() != `["a","b"]` {
		t.Fatalf("unexpected list %v %q", v.Kind(), v.Text())
	}
}

func TestParseYAMLMergeKeys(t *testing.T) {
	t.Parallel()

	doc, err := ParseYAML([]byte(`
base: &base
  timeout: 5
service:
  <<: *base
  name: api
`), 0)
	if err != nil {
		t.Fatalf("ParseYAML returned error: %v", err)
	}

	service := doc.Entries()[1].Value.Document()
	if service.Len() != 2 {
		t.Fatalf("expected merged entries, got %d", service.Len())
	}
	if service.Entries()[0].Key != "timeout" || service.Entries()[1].Key != "name" {
		t.Fatalf("unexpected merged keys: %+v", service.Entries())
	}
}

func TestParseYAMLMergePrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name: "explicit key before merge wins",
			input: `
base: &b {port: 1, host: db}
svc: {port: 2, <<: *b}
`,
			want: map[string]string{"port": "2", "host": "db"},
		},
		{
			name: "explicit key after merge wins",
			input: `
base: &b {port: 1, host: db}
svc: {<<: *b, port: 3}
`,
			want: map[string]string{"port": "3", "host": "db"},
		},
		{
			name: "first merged mapping wins",
			input: `
one: &one {port: 1}
two: &two {port: 2, user: app}
svc:
  <<: [*one, *two]
`,
			want: map[string]string{"port": "1", "user": "app"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := ParseYAML([]byte(tt.input), 0)
			if err != nil {
				t.Fatalf("ParseYAML returned error: %v", err)
			}

			var svc *Document
			for _, e := range doc.Entries() {
				if e.Key == "svc" {
					svc = e.Value.Document()
				}
			}
			got := make(map[string]string)
			for _, e := range svc.Entries() {
				if _, dup := got[e.Key]; dup {
					t.Fatalf("key %q appears more than once", e.Key)
				}
				got[e.Key] = e.Value.Text()
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Fatalf("%s: expected %q, got %q", k, v, got[k])
				}
			}
		})
	}
}

func TestParseYAMLAliasExpansionIsBounded(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("l0: &l0 x\n")
	for n := 1; n <= 8; n++ {
		fmt.Fprintf(&sb, "l%d: &l%d {", n, n)
		for k := 0; k < 10; k++ {
			if k > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "k%d: *l%d", k, n-1)
		}
		sb.WriteString("}\n")
	}

	_, err := ParseYAML([]byte(sb.String()), 0)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func TestParseYAMLSmallAliasesAllowed(t *testing.T) {
	t.Parallel()

	doc, err := ParseYAML([]byte("a: &a {x: 1, y: 2}\nb: *a\nc: *a\n"), 0)
	if err != nil {
		t.Fatalf("ParseYAML returned error: %v", err)
	}
	if doc.Len() != 3 || doc.Entries()[2].Value.Document().Len() != 2 {
		t.Fatalf("expected aliases to expand, got %+v", doc.Entries())
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "# only a comment\n", "~\n"} {
		doc, err := ParseYAML([]byte(input), 0)
		if err != nil {
			t.Fatalf("ParseYAML(%q) returned error: %v", input, err)
		}
		if doc.Len() != 0 {
			t.Fatalf("ParseYAML(%q): expected empty document", input)
		}
	}
}

func TestParseYAMLErrors(t *testing.T) {
	t.Parallel()

	if _, err := ParseYAML([]byte("- a\n- b\n"), 0); !errors.Is(err, ErrNotObject) {
		t.Fatalf("expected ErrNotObject for sequence root, got %v", err)
	}
	if _, err := ParseYAML([]byte("a: [1, 2\n"), 0); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, err := ParseYAML([]byte("? [a, b]\n: 1\n"), 0); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for non-scalar key, got %v", err)
	}
	if _, err := ParseYAML([]byte("a:\n  b:\n    c: 1\n"), 2); !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("expected ErrMaxDepth, got %v", err)
	}
}
