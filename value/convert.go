package value

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ToNumber converts v to a number. Objects go through ToPrimitive, which may
// run user code and fail.
func ToNumber(v Value) (float64, error) {
	switch x := v.(type) {
	case nil, holeValue, undefinedValue:
		return math.NaN(), nil
	case nullValue:
		return 0, nil
	case Bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case Int:
		return float64(x), nil
	case Number:
		return float64(x), nil
	case String:
		return StringToNumber(string(x)), nil
	case *Symbol:
		return 0, NewTypeError("cannot convert a Symbol value to a number")
	case *Object:
		p, err := toPrimitive(x, HintNumber)
		if err != nil {
			return 0, err
		}
		return ToNumber(p)
	default:
		return 0, NewTypeError("cannot convert %s to a number", Inspect(v))
	}
}

// ToString converts v to its string form. Objects go through ToPrimitive,
// which may run user code and fail.
func ToString(v Value) (string, error) {
	switch x := v.(type) {
	case nil, holeValue, undefinedValue:
		return "undefined", nil
	case nullValue:
		return "null", nil
	case Bool:
		return strconv.FormatBool(bool(x)), nil
	case Int:
		return strconv.FormatInt(int64(x), 10), nil
	case Number:
		return NumberToString(float64(x)), nil
	case String:
		return string(x), nil
	case *Symbol:
		return "", NewTypeError("cannot convert a Symbol value to a string")
	case *Object:
		p, err := toPrimitive(x, HintString)
		if err != nil {
			return "", err
		}
		return ToString(p)
	default:
		return "", NewTypeError("cannot convert %s to a string", Inspect(v))
	}
}

func toPrimitive(o *Object, hint Hint) (Value, error) {
	if o.ToPrimitive == nil {
		if o.Call != nil {
			return String("function () { [native code] }"), nil
		}
		return String("[object " + o.Class + "]"), nil
	}
	p, err := o.ToPrimitive(hint)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return Undefined, nil
	}
	if p.Kind() == KindObject {
		return nil, NewTypeError("cannot convert object to primitive value")
	}
	return p, nil
}

// NumberToString formats f the way Number.prototype.toString does with no
// radix: shortest round-trip digits, exponent form outside [1e-7, 1e21).
func NumberToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	var sb strings.Builder
	if f < 0 {
		sb.WriteByte('-')
		f = -f
	}
	// d.ddddde±xx
	e := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(e, "e")
	digits := strings.Replace(mant, ".", "", 1)
	x, _ := strconv.Atoi(exp)
	k := len(digits)
	n := x + 1

	switch {
	case k <= n && n <= 21:
		sb.WriteString(digits)
		sb.WriteString(strings.Repeat("0", n-k))
	case 0 < n && n <= 21:
		sb.WriteString(digits[:n])
		sb.WriteByte('.')
		sb.WriteString(digits[n:])
	case -6 < n && n <= 0:
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -n))
		sb.WriteString(digits)
	default:
		sb.WriteByte(digits[0])
		if k > 1 {
			sb.WriteByte('.')
			sb.WriteString(digits[1:])
		}
		sb.WriteByte('e')
		if n-1 >= 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(strconv.Itoa(n - 1))
	}
	return sb.String()
}

// StringToNumber parses s as a StringNumericLiteral. Unparsable input is NaN.
func StringToNumber(s string) float64 {
	s = strings.TrimFunc(s, isSpace)
	if s == "" {
		return 0
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return parseRadix(s[2:], base)
		}
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if !isDecimalLiteral(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeErr(err) {
		return math.NaN()
	}
	return f
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func parseRadix(s string, base int) float64 {
	if s == "" {
		return math.NaN()
	}
	var f float64
	for i := 0; i < len(s); i++ {
		d := digitVal(s[i])
		if d >= base {
			return math.NaN()
		}
		f = f*float64(base) + float64(d)
	}
	return f
}

func digitVal(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}

// isDecimalLiteral accepts [+-] (digits [. digits] | . digits) [eE [+-] digits].
func isDecimalLiteral(s string) bool {
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	intDigits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			fracDigits++
		}
	}
	if intDigits+fracDigits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xA0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return 0x2000 <= r && r <= 0x200A
}

// CompareUTF16 orders a and b by their UTF-16 code units, returning -1, 0
// or 1. Lone surrogates encoded as WTF-8 compare as the code unit they
// encode. Any other invalid byte orders after every code unit, by byte value.
func CompareUTF16(a, b string) int {
	// ASCII prefix is common.
	for a != "" && b != "" && a[0] == b[0] && a[0] < utf8.RuneSelf {
		a, b = a[1:], b[1:]
	}
	ra, rb := unitReader{s: a}, unitReader{s: b}
	for {
		ua, okA := ra.next()
		ub, okB := rb.next()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return 1
		case ua < ub:
			return -1
		case ua > ub:
			return 1
		}
	}
}

// invalidUnit is the rank of an invalid byte, above every UTF-16 code unit.
const invalidUnit = 0x10000

// unitReader yields the UTF-16 code units of a WTF-8 string.
type unitReader struct {
	s   string
	low rune // pending low surrogate, 0 if none
}

func (r *unitReader) next() (rune, bool) {
	if r.low != 0 {
		u := r.low
		r.low = 0
		return u, true
	}
	if r.s == "" {
		return 0, false
	}
	c := r.s[0]
	if c < utf8.RuneSelf {
		r.s = r.s[1:]
		return rune(c), true
	}
	ru, n := utf8.DecodeRuneInString(r.s)
	if ru == utf8.RuneError && n == 1 {
		if u, ok := surrogateUnit(r.s); ok {
			r.s = r.s[3:]
			return u, true
		}
		r.s = r.s[1:]
		return invalidUnit + rune(c), true
	}
	r.s = r.s[n:]
	if ru >= 0x10000 {
		r.low = 0xDC00 + ((ru - 0x10000) & 0x3FF)
		return 0xD800 + ((ru - 0x10000) >> 10), true
	}
	return ru, true
}

// surrogateUnit decodes a WTF-8 encoded surrogate (ED A0..BF 80..BF).
func surrogateUnit(s string) (rune, bool) {
	if len(s) < 3 || s[0] != 0xED || s[1] < 0xA0 || s[1] > 0xBF || s[2] < 0x80 || s[2] > 0xBF {
		return 0, false
	}
	return 0xD000 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F), true
}
