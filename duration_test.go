package tableschema_test

import (
	"testing"

	ts "github.com/reoring/tableschema"
)

func castDuration(t *testing.T, in string) ts.Duration {
	t.Helper()
	f := ts.NewField("elapsed", ts.TypeDuration)
	d, ok := castOK(t, f, in).(ts.Duration)
	if !ok {
		t.Fatalf("%q: expected a Duration", in)
	}
	return d
}

func TestDuration_AllComponents(t *testing.T) {
	d := castDuration(t, "P1990Y1M1DT1H1M1S")
	if d.Years != 1990 || d.Months != 1 || d.Days != 1 || d.Hours != 1 || d.Minutes != 1 || d.Seconds != 1 {
		t.Fatalf("unexpected components: %+v", d)
	}
	if d.Has(ts.DurationNanoseconds) {
		t.Fatalf("nanoseconds were not given")
	}
	if d.String() != "P1990Y1M1DT1H1M1S" {
		t.Fatalf("unexpected rendering %q", d.String())
	}
}

func TestDuration_Negative(t *testing.T) {
	d := castDuration(t, "-P1Y1M1DT1H1M1S")
	for _, v := range []int{d.Years, d.Months, d.Days, d.Hours, d.Minutes, d.Seconds} {
		if v != -1 {
			t.Fatalf("every component should be negated: %+v", d)
		}
	}
	if d.String() != "-P1Y1M1DT1H1M1S" {
		t.Fatalf("unexpected rendering %q", d.String())
	}
}

func TestDuration_Fraction(t *testing.T) {
	d := castDuration(t, "P1Y1M1DT1H1M1.125S")
	if d.Seconds != 1 || d.Nanoseconds != 125000000 || !d.Has(ts.DurationNanoseconds) {
		t.Fatalf("unexpected seconds: %+v", d)
	}
	d = castDuration(t, "PT1.123456789987654321S")
	if d.Nanoseconds != 123456789 {
		t.Fatalf("fraction should truncate to 9 digits, got %d", d.Nanoseconds)
	}
	d = castDuration(t, "PT0.05S")
	if d.Nanoseconds != 50000000 {
		t.Fatalf("leading zeros are significant, got %d", d.Nanoseconds)
	}
	if d.String() != "PT0.05S" {
		t.Fatalf("unexpected rendering %q", d.String())
	}
	d = castDuration(t, "-PT2.5S")
	if d.Seconds != -2 || d.Nanoseconds != -500000000 {
		t.Fatalf("fraction should carry the sign: %+v", d)
	}
}

func TestDuration_Partial(t *testing.T) {
	d := castDuration(t, "P3D")
	if d.Days != 3 || d.Has(ts.DurationYears) || d.Has(ts.DurationHours) {
		t.Fatalf("unexpected components: %+v", d)
	}
	d = castDuration(t, "PT36H")
	if d.Hours != 36 || d.Has(ts.DurationDays) {
		t.Fatalf("unexpected components: %+v", d)
	}
	d = castDuration(t, "P1M")
	if d.Months != 1 || d.Has(ts.DurationMinutes) {
		t.Fatalf("M before T is months: %+v", d)
	}
	d = castDuration(t, "PT1M")
	if d.Minutes != 1 || d.Has(ts.DurationMonths) {
		t.Fatalf("M after T is minutes: %+v", d)
	}
}

func TestDuration_Invalid(t *testing.T) {
	f := ts.NewField("elapsed", ts.TypeDuration)
	for _, in := range []string{
		"P-1Y1M1DT1H1M1S", // sign inside
		"P1Y1M1DT",        // T without time components
		"P",               // nothing
		"PT",              // nothing after T
		"1Y",              // no P
		"P1D1Y",           // out of order
		"P1Y1Y",           // repeated
		"P1.5Y",           // fraction outside seconds
		"PT1.S",           // empty fraction
		"PY",              // designator without digits
		"P1H",             // time component in date part
		"P1Yjunk",         // trailing text
		"Yesterday",
	} {
		castNil(t, f, in)
	}
	if f.ReverseTest(ts.Duration{}) {
		t.Fatalf("duration has no reverse cast")
	}
}

func TestGeoPointField_Default(t *testing.T) {
	f := ts.NewField("location", ts.TypeGeoPoint)
	p, ok := castOK(t, f, "90, 45").(ts.GeoPoint)
	if !ok || p.Lon != 90.0 || p.Lat != 45.0 {
		t.Fatalf("unexpected point: %#v", p)
	}
	lon, lat, ok := p.Float()
	if !ok || lon != 90 || lat != 45 {
		t.Fatalf("unexpected floats: %v %v", lon, lat)
	}
	castNil(t, f, "90")
	castNil(t, f, "90,45,0")
	castNil(t, f, "east,north")
}

func TestGeoPointField_Array(t *testing.T) {
	f := ts.NewField("location", ts.TypeGeoPoint)
	f.Format = ts.ArrayFormat
	p, ok := castOK(t, f, `[90, 45]`).(ts.GeoPoint)
	if !ok || p.Lon != float64(90) || p.Lat != float64(45) {
		t.Fatalf("unexpected point: %#v", p)
	}
	p, ok = castOK(t, f, `["90", "45"]`).(ts.GeoPoint)
	if !ok || p.Lon != "90" || p.Lat != "45" {
		t.Fatalf("array elements pass through untyped: %#v", p)
	}
	if _, _, ok := p.Float(); !ok {
		t.Fatalf("numeric strings convert to floats")
	}
	castNil(t, f, `[90]`)
	castNil(t, f, `{"lon":90,"lat":45}`)
}

func TestGeoPointField_Object(t *testing.T) {
	f := ts.NewField("location", ts.TypeGeoPoint)
	f.Format = ts.ObjectFormat
	p, ok := castOK(t, f, `{"lon": 90, "lat": 45}`).(ts.GeoPoint)
	if !ok || p.Lon != float64(90) || p.Lat != float64(45) {
		t.Fatalf("unexpected point: %#v", p)
	}
	castNil(t, f, `{"lon": 90}`)
	castNil(t, f, `[90, 45]`)
	if f.ReverseTest(p) {
		t.Fatalf("geopoint has no reverse cast")
	}
}
