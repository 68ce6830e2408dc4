package extract

import (
	"errors"
	"testing"
)

func TestParse_NonJSON(t *testing.T) {
	_, err := Parse([]byte("<html>hello</html>"))
	if !errors.Is(err, ErrNotJSON) {
		t.Fatalf("expected ErrNotJSON, got %v", err)
	}
}

func TestString_SoftwareName(t *testing.T) {
	doc, err := Parse([]byte(`{"version":"2.0","software":{"name":"hubzilla","version":"9.0"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name, err := doc.String("$.software.name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "hubzilla" {
		t.Fatalf("expected hubzilla, got %q", name)
	}
}

func TestString_MissingKeys(t *testing.T) {
	cases := []string{
		`{}`,
		`{"software":{}}`,
		`{"software":{"version":"1"}}`,
		`{"software":{"name":""}}`,
		`{"software":{"name":null}}`,
	}
	for _, body := range cases {
		doc, err := Parse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected parse error for %s: %v", body, err)
		}
		if _, err := doc.String("$.software.name"); !errors.Is(err, ErrNoValue) {
			t.Fatalf("expected ErrNoValue for %s, got %v", body, err)
		}
	}
}

func TestString_WrongType(t *testing.T) {
	for _, body := range []string{`{"software":{"name":42}}`, `{"software":{"name":{"x":1}}}`, `{"software":"hubzilla"}`, `{"software":{"name":["hubzilla"]}}`} {
		doc, err := Parse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		_, err = doc.String("$.software.name")
		if err == nil {
			t.Fatalf("expected error for %s", body)
		}
		if body != `{"software":"hubzilla"}` && !errors.Is(err, ErrNotString) {
			t.Fatalf("expected ErrNotString for %s, got %v", body, err)
		}
	}
}

func TestText_Scalars(t *testing.T) {
	doc, err := Parse([]byte(`{"software":{"version":7,"beta":true,"tags":["a","b"]}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]string{
		"$.software.version": "7",
		"$.software.beta":    "true",
		"$.software.tags":    `["a","b"]`,
	}
	for expr, want := range cases {
		got, err := doc.Text(expr)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", expr, err)
		}
		if got != want {
			t.Fatalf("%s: expected %q, got %q", expr, want, got)
		}
	}
}

func TestLookup_EmptyExpression(t *testing.T) {
	doc, _ := Parse([]byte(`{}`))
	if _, err := doc.Lookup("  "); err == nil {
		t.Fatalf("expected error for empty expression")
	}
}
