package tableschema

import (
	"strconv"
	"strings"
)

// DurationComponent identifies one component of a Duration.
type DurationComponent uint8

const (
	DurationYears DurationComponent = 1 << iota
	DurationMonths
	DurationDays
	DurationHours
	DurationMinutes
	DurationSeconds
	DurationNanoseconds
)

// Duration is the logical value of a duration field. Every component carries
// its own sign; components absent from the input are unset (see Has).
type Duration struct {
	Years       int
	Months      int
	Days        int
	Hours       int
	Minutes     int
	Seconds     int
	Nanoseconds int

	set DurationComponent
}

// Has reports whether the component was present in the parsed input.
func (d Duration) Has(c DurationComponent) bool { return d.set&c != 0 }

// String renders the ISO-8601 form of the duration, e.g. P1Y2DT3.5S.
func (d Duration) String() string {
	b := &strings.Builder{}
	neg := d.negative()
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	write := func(c DurationComponent, v int, designator byte) {
		if d.Has(c) {
			b.WriteString(strconv.Itoa(abs(v)))
			b.WriteByte(designator)
		}
	}
	write(DurationYears, d.Years, 'Y')
	write(DurationMonths, d.Months, 'M')
	write(DurationDays, d.Days, 'D')
	if d.set&(DurationHours|DurationMinutes|DurationSeconds) != 0 {
		b.WriteByte('T')
		write(DurationHours, d.Hours, 'H')
		write(DurationMinutes, d.Minutes, 'M')
		if d.Has(DurationSeconds) {
			b.WriteString(strconv.Itoa(abs(d.Seconds)))
			if d.Has(DurationNanoseconds) {
				frac := strconv.Itoa(abs(d.Nanoseconds))
				frac = strings.Repeat("0", 9-len(frac)) + frac
				b.WriteByte('.')
				b.WriteString(strings.TrimRight(frac, "0"))
			}
			b.WriteByte('S')
		}
	}
	return b.String()
}

func (d Duration) negative() bool {
	for _, v := range []int{d.Years, d.Months, d.Days, d.Hours, d.Minutes, d.Seconds, d.Nanoseconds} {
		if v < 0 {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// durationScanner walks [-]P[nY][nM][nD][T[nH][nM][n[.f]S]].
type durationScanner struct {
	s   string
	pos int
	neg bool
}

func (sc *durationScanner) peek() byte {
	if sc.pos >= len(sc.s) {
		return 0
	}
	return sc.s[sc.pos]
}

func (sc *durationScanner) digitRun() string {
	start := sc.pos
	for sc.pos < len(sc.s) && isDigit(sc.s[sc.pos]) {
		sc.pos++
	}
	return sc.s[start:sc.pos]
}

// integer reads a digit run and applies the duration's sign.
func (sc *durationScanner) integer() (int, error) {
	run := sc.digitRun()
	if run == "" {
		return 0, errBadCast
	}
	if sc.neg {
		run = "-" + run
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return 0, errBadCast
	}
	return n, nil
}

// fraction reads the digits after a decimal point as nanoseconds. Digits past
// the ninth are dropped.
func (sc *durationScanner) fraction() (int, error) {
	run := sc.digitRun()
	if run == "" {
		return 0, errBadCast
	}
	if len(run) > 9 {
		run = run[:9]
	}
	ns, _ := strconv.Atoi(run)
	for i := len(run); i < 9; i++ {
		ns *= 10
	}
	if sc.neg {
		ns = -ns
	}
	return ns, nil
}

type durationSlot struct {
	designator byte
	component  DurationComponent
	target     *int
}

// components consumes "n<designator>" pairs whose designators appear in
// slots in order. It stops at stop or end of input.
func (sc *durationScanner) components(d *Duration, slots []durationSlot, stop byte) (bool, error) {
	found := false
	next := 0
	for sc.pos < len(sc.s) && sc.peek() != stop {
		v, err := sc.integer()
		if err != nil {
			return false, err
		}
		ns, hasFraction := 0, false
		if sc.peek() == '.' {
			sc.pos++
			if ns, err = sc.fraction(); err != nil {
				return false, err
			}
			hasFraction = true
		}
		idx := -1
		for i := next; i < len(slots); i++ {
			if slots[i].designator == sc.peek() {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false, errBadCast
		}
		slot := slots[idx]
		if hasFraction && slot.component != DurationSeconds {
			return false, errBadCast
		}
		*slot.target = v
		d.set |= slot.component
		if hasFraction {
			d.Nanoseconds = ns
			d.set |= DurationNanoseconds
		}
		found = true
		next = idx + 1
		sc.pos++
	}
	return found, nil
}

func parseDuration(s string) (any, error) {
	sc := &durationScanner{s: s}
	// Skip any leading noise up to a designator letter, sign or digit.
	for sc.pos < len(s) {
		c := s[sc.pos]
		if ('A' <= c && c <= 'Z') || c == '-' || isDigit(c) {
			break
		}
		sc.pos++
	}
	if sc.peek() == '-' {
		sc.neg = true
		sc.pos++
	}
	if sc.peek() != 'P' {
		return nil, errBadCast
	}
	sc.pos++

	d := Duration{}
	hasDate, err := sc.components(&d, []durationSlot{
		{'Y', DurationYears, &d.Years},
		{'M', DurationMonths, &d.Months},
		{'D', DurationDays, &d.Days},
	}, 'T')
	if err != nil {
		return nil, err
	}

	hasTimeDesignator := false
	hasTime := false
	if sc.peek() == 'T' {
		hasTimeDesignator = true
		sc.pos++
		hasTime, err = sc.components(&d, []durationSlot{
			{'H', DurationHours, &d.Hours},
			{'M', DurationMinutes, &d.Minutes},
			{'S', DurationSeconds, &d.Seconds},
		}, 0)
		if err != nil {
			return nil, err
		}
	}

	if sc.pos != len(s) {
		return nil, errBadCast
	}
	if hasTimeDesignator != hasTime {
		return nil, errBadCast
	}
	if !hasDate && !hasTime {
		return nil, errBadCast
	}
	return d, nil
}
