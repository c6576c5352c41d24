package tableschema_test

import (
	"math"
	"strconv"
	"testing"
	"time"

	ts "github.com/reoring/tableschema"
)

// castOK asserts Test and Cast agree on success and returns the value.
func castOK(t *testing.T, f *ts.Field, in string) any {
	t.Helper()
	v := f.Cast(ts.Text(in))
	if v == nil || !f.Test(ts.Text(in)) {
		t.Fatalf("%s: expected %q to cast, got %v", f.Type, in, v)
	}
	return v
}

// castNil asserts Test and Cast agree on failure.
func castNil(t *testing.T, f *ts.Field, in string) {
	t.Helper()
	if v := f.Cast(ts.Text(in)); v != nil {
		t.Fatalf("%s: expected %q to fail, got %#v", f.Type, in, v)
	}
	if f.Test(ts.Text(in)) {
		t.Fatalf("%s: test(%q) should be false", f.Type, in)
	}
}

func TestIntegerField_Bare(t *testing.T) {
	f := ts.NewField("id", ts.TypeInteger)
	clothed := ts.NewField("id", ts.TypeInteger)
	clothed.BareNumber = false

	if v := castOK(t, f, "10"); v != 10 {
		t.Fatalf("got %v", v)
	}
	if v := castOK(t, clothed, "10"); v != 10 {
		t.Fatalf("got %v", v)
	}
	if v := castOK(t, f, "-7"); v != -7 {
		t.Fatalf("got %v", v)
	}
	if s := f.ReverseCast(10); s == nil || *s != "10" {
		t.Fatalf("reverse cast: %v", s)
	}
	if !f.ReverseTest(10) || !f.ReverseTest(int64(10)) {
		t.Fatalf("reverse test failed")
	}

	overflow := strconv.Itoa(math.MaxInt) + "99"
	castNil(t, f, overflow)
	castNil(t, clothed, overflow)
	underflow := strconv.Itoa(math.MinInt) + "99"
	castNil(t, f, underflow)
	castNil(t, clothed, underflow)

	castNil(t, f, "asd")
	castNil(t, clothed, "asd")
	castNil(t, f, "1.5")
	if f.ReverseCast("asd") != nil || f.ReverseTest("asd") {
		t.Fatalf("strings are not integers")
	}
}

func TestIntegerField_NonBare(t *testing.T) {
	f := ts.NewField("id", ts.TypeInteger)
	clothed := ts.NewField("id", ts.TypeInteger)
	clothed.BareNumber = false

	castNil(t, f, "asd10asd")
	for _, in := range []string{"asd10asd", "10asd", "asd10", "asd10asd88", "$10"} {
		if v := castOK(t, clothed, in); v != 10 {
			t.Fatalf("%q: got %v", in, v)
		}
	}
	if v := castOK(t, clothed, "temp -5C"); v != -5 {
		t.Fatalf("got %v", v)
	}
	castNil(t, clothed, "no digits")
	castNil(t, clothed, "a-b5")
	if s := clothed.ReverseCast(10); s == nil || *s != "10" {
		t.Fatalf("reverse cast: %v", s)
	}
}

func TestBooleanField(t *testing.T) {
	f := ts.NewField("valid", ts.TypeBoolean)

	if v := castOK(t, f, "true"); v != true {
		t.Fatalf("got %v", v)
	}
	if v := castOK(t, f, "True"); v != true {
		t.Fatalf("got %v", v)
	}
	if v := castOK(t, f, "false"); v != false {
		t.Fatalf("got %v", v)
	}
	if v := castOK(t, f, "0"); v != false {
		t.Fatalf("got %v", v)
	}
	castNil(t, f, "tRue")
	castNil(t, f, "asd")

	if s := f.ReverseCast(true); s == nil || *s != "true" {
		t.Fatalf("reverse true: %v", s)
	}
	if s := f.ReverseCast(false); s == nil || *s != "false" {
		t.Fatalf("reverse false: %v", s)
	}
	// The canonical literal is emitted, not the one originally parsed.
	if s := f.ReverseCast(f.Cast(ts.Text("1"))); s == nil || *s != "true" {
		t.Fatalf("canonical literal expected, got %v", s)
	}
	if f.ReverseCast("asd") != nil || f.ReverseTest("asd") {
		t.Fatalf("strings are not booleans")
	}

	f.TrueValues = []string{"yes"}
	f.FalseValues = []string{"no"}
	if v := castOK(t, f, "yes"); v != true {
		t.Fatalf("got %v", v)
	}
	castNil(t, f, "true")
	if s := f.ReverseCast(false); s == nil || *s != "no" {
		t.Fatalf("reverse false: %v", s)
	}
}

func TestBooleanField_EmptyLiterals(t *testing.T) {
	f := ts.NewField("void", ts.TypeBoolean)
	f.TrueValues = nil
	f.FalseValues = []string{}
	for _, in := range []string{"true", "false", "1", "0"} {
		castNil(t, f, in)
	}
	if f.ReverseCast(true) != nil || f.ReverseTest(true) {
		t.Fatalf("no literal available for true")
	}
	if f.ReverseCast(false) != nil || f.ReverseTest(false) {
		t.Fatalf("no literal available for false")
	}
}

func TestObjectField(t *testing.T) {
	f := ts.NewField("object", ts.TypeObject)

	m, ok := castOK(t, f, `{"a":1,"b":"B"}`).(map[string]any)
	if !ok || len(m) != 2 || m["a"] != float64(1) || m["b"] != "B" {
		t.Fatalf("unexpected object: %#v", m)
	}
	if m, ok := castOK(t, f, `{}`).(map[string]any); !ok || len(m) != 0 {
		t.Fatalf("unexpected empty object: %#v", m)
	}
	for _, in := range []string{`["a","b"]`, `"a"`, `null`, `true`, `a`} {
		castNil(t, f, in)
	}
	if f.ReverseTest(map[string]any{"a": 1}) {
		t.Fatalf("object reverse cast is not implemented")
	}
}

func TestArrayField(t *testing.T) {
	f := ts.NewField("tags", ts.TypeArray)

	a, ok := castOK(t, f, `["a","b"]`).([]any)
	if !ok || len(a) != 2 || a[0] != "a" || a[1] != "b" {
		t.Fatalf("unexpected array: %#v", a)
	}
	if s := f.ReverseCast([]string{"a", "b"}); s == nil || *s != `["a","b"]` {
		t.Fatalf("reverse cast: %v", s)
	}

	mixed, ok := castOK(t, f, `["a",1]`).([]any)
	if !ok || mixed[0] != "a" || mixed[1] != float64(1) {
		t.Fatalf("unexpected array: %#v", mixed)
	}
	if s := f.ReverseCast([]any{"a", 1}); s == nil || *s != `["a",1]` {
		t.Fatalf("reverse cast: %v", s)
	}

	castNil(t, f, `{"a":1}`)
	castNil(t, f, "a")
	if f.ReverseCast(map[string]any{"a": 1}) != nil || f.ReverseTest("a") {
		t.Fatalf("only sequences reverse cast to arrays")
	}
}

func TestDateField(t *testing.T) {
	f := ts.NewField("created", ts.TypeDate)
	d, ok := castOK(t, f, "2017-06-14").(time.Time)
	if !ok || d.Year() != 2017 || d.Month() != time.June || d.Day() != 14 || d.Location() != time.UTC {
		t.Fatalf("unexpected date: %v", d)
	}
	castNil(t, f, "2017-06")
	castNil(t, f, "Yesterday")

	f.Format = ts.AnyFormat
	castNil(t, f, "2017-06-14")
	if f.ReverseTest(d) {
		t.Fatalf("date reverse cast is not implemented")
	}
}

func TestTimeField(t *testing.T) {
	f := ts.NewField("created", ts.TypeTime)
	tm, ok := castOK(t, f, "21:19:18").(time.Time)
	if !ok || tm.Hour() != 21 || tm.Minute() != 19 || tm.Second() != 18 {
		t.Fatalf("unexpected time: %v", tm)
	}
	castNil(t, f, "21:19")
	castNil(t, f, "Yesterday")

	f.Format = ts.AnyFormat
	castNil(t, f, "21:19:18")
}

func TestDateTimeField(t *testing.T) {
	f := ts.NewField("created", ts.TypeDateTime)
	const in = "2017-06-14T21:19:18Z"
	dt, ok := castOK(t, f, in).(time.Time)
	if !ok || !dt.Equal(time.Date(2017, 6, 14, 21, 19, 18, 0, time.UTC)) {
		t.Fatalf("unexpected datetime: %v", dt)
	}
	if s := f.ReverseCast(dt); s == nil || *s != in {
		t.Fatalf("reverse cast: %v", s)
	}
	if v := castOK(t, f, "2017-06-14T23:19:18+02:00"); !v.(time.Time).Equal(dt) {
		t.Fatalf("offsets should normalize to the same instant")
	}
	castNil(t, f, "2017-06-14")
	castNil(t, f, "Yesterday")
	if f.ReverseCast("2017") != nil {
		t.Fatalf("strings are not datetimes")
	}

	f.Format = ts.AnyFormat
	castNil(t, f, in)
	if f.ReverseCast(time.Now()) != nil || f.ReverseTest(time.Now()) {
		t.Fatalf("any format is unavailable in reverse")
	}
}

func TestYearField(t *testing.T) {
	f := ts.NewField("created", ts.TypeYear)
	cases := map[string]int{"2017": 2017, "2017-06": 2017, "2017-06-14": 2017, "17": 17}
	for in, want := range cases {
		if v := castOK(t, f, in); v != want {
			t.Fatalf("%q: got %v", in, v)
		}
	}
	castNil(t, f, "Two Thousand And Seventeen")
	castNil(t, f, "2017-13")
	castNil(t, f, "2017-02-30")
	castNil(t, f, "201")
}

func TestYearMonthField(t *testing.T) {
	f := ts.NewField("created", ts.TypeYearMonth)
	for _, in := range []string{"2017-06", "2017-06-14"} {
		ym, ok := castOK(t, f, in).(ts.YearMonth)
		if !ok || ym.Year != 2017 || ym.Month != time.June {
			t.Fatalf("%q: got %#v", in, ym)
		}
		if ym.String() != "2017-06" {
			t.Fatalf("unexpected rendering %q", ym.String())
		}
	}
	castNil(t, f, "2017")
	castNil(t, f, "Last Month")
}

func TestUnavailableTypes(t *testing.T) {
	for _, typ := range []ts.FieldType{ts.TypeNumber, ts.TypeGeoJSON, ts.TypeAny} {
		f := ts.NewField("x", typ)
		castNil(t, f, "1")
		if f.ReverseCast(1) != nil || f.ReverseTest(1) {
			t.Fatalf("%s should be unavailable in reverse", typ)
		}
	}
}
