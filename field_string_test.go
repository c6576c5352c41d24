package tableschema_test

import (
	"net/url"
	"testing"

	"github.com/google/uuid"

	ts "github.com/reoring/tableschema"
)

func TestStringField_DefaultType(t *testing.T) {
	f := ts.NewField("first", ts.TypeString)
	if f.Type != ts.TypeString || f.Format != ts.DefaultFormat {
		t.Fatalf("unexpected defaults: %v %v", f.Type, f.Format)
	}
	if !f.BareNumber {
		t.Fatalf("bareNumber should default to true")
	}
}

func TestStringField_Default(t *testing.T) {
	f := ts.NewField("first", ts.TypeString)
	if v := f.Cast(ts.Text("Simon")); v != "Simon" {
		t.Fatalf("expected passthrough, got %v", v)
	}
	if !f.Test(ts.Text("Simon")) {
		t.Fatalf("expected test to succeed")
	}
	if s := f.ReverseCast("Simon"); s == nil || *s != "Simon" {
		t.Fatalf("unexpected reverse cast: %v", s)
	}
	if !f.ReverseTest("Simon") {
		t.Fatalf("expected reverse test to succeed")
	}
	if f.ReverseCast(42) != nil || f.ReverseTest(42) {
		t.Fatalf("non-string values must not reverse cast")
	}
}

func TestStringField_NilPassesThrough(t *testing.T) {
	f := ts.NewField("first", ts.TypeString)
	if f.Cast(nil) != nil || !f.Test(nil) {
		t.Fatalf("nil text should cast to nil and test true")
	}
	if f.ReverseCast(nil) != nil || !f.ReverseTest(nil) {
		t.Fatalf("nil value should reverse cast to nil and test true")
	}
}

func TestStringField_Binary(t *testing.T) {
	f := ts.NewField("first", ts.TypeString)
	f.Format = ts.BinaryFormat

	const encoded = "U2ltb24="
	if v := f.Cast(ts.Text(encoded)); v != "Simon" {
		t.Fatalf("expected decoded text, got %v", v)
	}
	if s := f.ReverseCast("Simon"); s == nil || *s != encoded {
		t.Fatalf("unexpected reverse cast: %v", s)
	}
	if v := f.Cast(f.ReverseCast("Simon")); v != "Simon" {
		t.Fatalf("round trip failed: %v", v)
	}
	if f.Test(ts.Text("not base64!")) {
		t.Fatalf("invalid base64 should fail")
	}
	// valid base64 of invalid UTF-8 (0xff 0xfe)
	if f.Test(ts.Text("//4=")) {
		t.Fatalf("non UTF-8 payload should fail")
	}

	f.Format = ts.DefaultFormat
	if v := f.Cast(ts.Text(encoded)); v != encoded {
		t.Fatalf("default format should not decode, got %v", v)
	}
}

func TestStringField_EmailUnavailable(t *testing.T) {
	f := ts.NewField("email", ts.TypeString)
	f.Format = ts.EmailFormat
	const email = "river@serenity.example"
	if f.Cast(ts.Text(email)) != nil || f.Test(ts.Text(email)) {
		t.Fatalf("email cast is not implemented and must yield no value")
	}
	if f.ReverseCast(email) != nil || f.ReverseTest(email) {
		t.Fatalf("email reverse cast is not implemented and must yield no value")
	}
}

func TestStringField_URI(t *testing.T) {
	f := ts.NewField("site", ts.TypeString)
	f.Format = ts.URIFormat

	for _, in := range []string{"http://example.com", "./file.txt"} {
		v := f.Cast(ts.Text(in))
		u, ok := v.(*url.URL)
		if !ok || u.String() != in {
			t.Fatalf("cast %q: got %#v", in, v)
		}
		if s := f.ReverseCast(u); s == nil || *s != in {
			t.Fatalf("reverse cast %q: got %v", in, s)
		}
		if !f.ReverseTest(u) {
			t.Fatalf("reverse test %q failed", in)
		}
	}

	if f.Cast(ts.Text(`"invalid"`)) != nil || f.Test(ts.Text(`"invalid"`)) {
		t.Fatalf("quoted text is not a URI")
	}
	if f.Test(ts.Text("")) {
		t.Fatalf("empty text is not a URI")
	}
	if f.ReverseCast("http://example.com") != nil {
		t.Fatalf("plain strings are not URI values")
	}
}

func TestStringField_UUID(t *testing.T) {
	f := ts.NewField("id", ts.TypeString)
	f.Format = ts.UUIDFormat

	const upper = "1AD5EEE4-ECA7-466C-A129-0FC0E406ECAE"
	const lower = "1ad5eee4-eca7-466c-a129-0fc0e406ecae"

	if v := f.Cast(ts.Text(upper)); v != upper {
		t.Fatalf("uppercase: got %v", v)
	}
	if v := f.Cast(ts.Text(lower)); v != upper {
		t.Fatalf("lowercase should canonicalize to uppercase, got %v", v)
	}

	id := uuid.MustParse(lower)
	if s := f.ReverseCast(id); s == nil || *s != upper {
		t.Fatalf("reverse cast: got %v", s)
	}
	if !f.ReverseTest(id) {
		t.Fatalf("reverse test failed")
	}
	if v := f.Cast(f.ReverseCast(id)); v != upper {
		t.Fatalf("round trip: got %v", v)
	}
	if s := f.ReverseCast(f.Cast(ts.Text(lower))); s == nil || *s != upper {
		t.Fatalf("cast values reverse cast back to text, got %v", s)
	}
	if f.ReverseTest("not-a-uuid") {
		t.Fatalf("malformed uuid text should not reverse cast")
	}

	for _, bad := range []string{"1AD5EEE4ECA7466CA1290FC0E406ECAE", "{1AD5EEE4-ECA7-466C-A129-0FC0E406ECAE}", "nope"} {
		if f.Test(ts.Text(bad)) {
			t.Fatalf("%q should not be accepted", bad)
		}
	}
	if f.ReverseCast(nil) != nil || !f.ReverseTest(nil) {
		t.Fatalf("nil reverse cast should be nil and test true")
	}
}

func TestStringField_PatternFormatIsBad(t *testing.T) {
	f := ts.NewField("code", ts.TypeString)
	f.Format = ts.ParseFormat("[A-Z]+")
	if f.Format.Kind != ts.FormatPattern || f.Format.String() != "[A-Z]+" {
		t.Fatalf("expected custom pattern format, got %#v", f.Format)
	}
	if f.Test(ts.Text("ABC")) {
		t.Fatalf("custom string formats are not castable")
	}
}

func TestFormat_ParseAndEqual(t *testing.T) {
	for _, kw := range []string{"default", "email", "uri", "binary", "uuid", "any", "array", "object"} {
		f := ts.ParseFormat(kw)
		if f.Kind == ts.FormatPattern {
			t.Fatalf("%q should be a keyword format", kw)
		}
		if f.String() != kw {
			t.Fatalf("%q rendered as %q", kw, f.String())
		}
	}
	if !ts.ParseFormat("uuid").Equal(ts.UUIDFormat) {
		t.Fatalf("keyword formats should be equal")
	}
	if !ts.PatternFormat("uri").Equal(ts.URIFormat) {
		t.Fatalf("formats compare by their string form")
	}
	for i := 0; i < 50; i++ {
		if got := ts.ObjectFormat.String(); got != "object" {
			t.Fatalf("iteration %d rendered %q", i, got)
		}
	}
	if got := (ts.Format{Kind: ts.FormatKind(99)}).String(); got != "default" {
		t.Fatalf("unknown kinds render as default, got %q", got)
	}
}

func TestParseFieldType(t *testing.T) {
	cases := map[string]ts.FieldType{
		"string": ts.TypeString, "datetime": ts.TypeDateTime, "yearmonth": ts.TypeYearMonth,
		"geopoint": ts.TypeGeoPoint, "geojson": ts.TypeGeoJSON, "yearMonth": ts.TypeYearMonth,
	}
	for in, want := range cases {
		got, ok := ts.ParseFieldType(in)
		if !ok || got != want {
			t.Fatalf("%q: got %v ok=%v", in, got, ok)
		}
	}
	if _, ok := ts.ParseFieldType("decimal"); ok {
		t.Fatalf("unknown keyword should not parse")
	}
	if ts.TypeGeoPoint.String() != "geopoint" {
		t.Fatalf("unexpected keyword %q", ts.TypeGeoPoint.String())
	}
}

func TestField_Identity(t *testing.T) {
	a := ts.NewField("First", ts.TypeString)
	b := ts.NewField("first", ts.TypeBoolean)
	if a.UniqueName() != "first" || !a.Equal(b) {
		t.Fatalf("fields with the same lowercased name are the same field")
	}
	fs := ts.Fields{a, b, ts.NewField("last", ts.TypeString)}
	if len(fs.Unique()) != 2 {
		t.Fatalf("expected two unique names, got %v", fs.Unique())
	}
	if got := fs.UniqueByName()["first"]; got != a {
		t.Fatalf("first-declared field should win")
	}
	if g := fs.GroupByName(); len(g["First"]) != 1 || len(g["first"]) != 1 {
		t.Fatalf("grouping is case sensitive: %v", g)
	}
	if f, ok := fs.Lookup("LAST"); !ok || f.Name != "last" {
		t.Fatalf("lookup should be case insensitive")
	}
}

func TestField_OwnBooleanLiterals(t *testing.T) {
	a := ts.NewField("a", ts.TypeBoolean)
	b := ts.NewField("b", ts.TypeBoolean)
	a.TrueValues[0] = "yes"
	if b.TrueValues[0] != "true" {
		t.Fatalf("fields must not share literal lists")
	}
}
