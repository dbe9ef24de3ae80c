package value

import (
	"math"
	"strconv"
	"strings"
)

// FormatPlain is the formatter `log`, string interpolation, and `as str`
// use (spec §4.2): scalars print natively; Arr prints "[e1 e2 ...]", Vec
// "![e1 e2 ...]", Set "@{e1 e2 ...}"; ranges print "a..b" / "a..=b";
// self-referential aggregates print "[...]" / "![...]" / "@{...}".
func FormatPlain(v Value) string {
	return format(v, false, map[*Aggregate]bool{})
}

// FormatDebug is the formatter the CLI's --debug trace uses: strings are
// quoted with \n/\t re-escaped, and big-ints carry their "xl" suffix.
func FormatDebug(v Value) string {
	return format(v, true, map[*Aggregate]bool{})
}

func format(v Value, debug bool, seen map[*Aggregate]bool) string {
	switch v.Kind {
	case KindNum:
		return formatNum(v.Num)
	case KindInf:
		if v.Num < 0 {
			return "-inf"
		}
		return "inf"
	case KindXL:
		if debug {
			return v.XL.String() + "xl"
		}
		return v.XL.String()
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindStr:
		if debug {
			return quoteDebug(v.Str)
		}
		return v.Str
	case KindNull:
		return "null"
	case KindArr:
		return formatAgg(v.Agg, "[", "]", debug, seen)
	case KindVec:
		return formatAgg(v.Agg, "![", "]", debug, seen)
	case KindSet:
		return formatAgg(v.Agg, "@{", "}", debug, seen)
	case KindRan:
		return formatNum(v.Range.Start) + ".." + formatNum(v.Range.End)
	case KindXRan:
		return formatNum(v.Range.Start) + "..=" + formatNum(v.Range.End)
	default:
		return "?"
	}
}

func formatAgg(a *Aggregate, open, close string, debug bool, seen map[*Aggregate]bool) string {
	if seen[a] {
		return open + "..." + close
	}
	seen[a] = true
	defer delete(seen, a)

	parts := make([]string, len(a.Items))
	for i, it := range a.Items {
		parts[i] = format(it, debug, seen)
	}
	return open + strings.Join(parts, " ") + close
}

func formatNum(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func quoteDebug(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Sizeof estimates the recursive byte size of v per spec §4.3: null=4,
// bool=1, num=8, str=2*len, xl=2*digitcount, aggregates sum their
// members, cycles counted once.
func Sizeof(v Value) int {
	return sizeof(v, map[*Aggregate]bool{})
}

func sizeof(v Value, seen map[*Aggregate]bool) int {
	switch v.Kind {
	case KindNull:
		return 4
	case KindBool:
		return 1
	case KindNum, KindInf:
		return 8
	case KindStr:
		return 2 * len([]rune(v.Str))
	case KindXL:
		return 2 * len(v.XL.String())
	case KindArr, KindVec, KindSet:
		if seen[v.Agg] {
			return 0
		}
		seen[v.Agg] = true
		total := 0
		for _, it := range v.Agg.Items {
			total += sizeof(it, seen)
		}
		return total
	case KindRan, KindXRan:
		return 16
	default:
		return 0
	}
}

// ParseTag resolves a type-tag string (e.g. from `typeof`, or the target
// of `as T`) back to a Kind. ok is false for an unrecognised tag.
func ParseTag(tag string) (Kind, bool) {
	switch tag {
	case "num":
		return KindNum, true
	case "xl":
		return KindXL, true
	case "bool":
		return KindBool, true
	case "str":
		return KindStr, true
	case "null":
		return KindNull, true
	case "arr":
		return KindArr, true
	case "vec":
		return KindVec, true
	case "set":
		return KindSet, true
	case "inf":
		return KindInf, true
	case "ran":
		return KindRan, true
	case "xran":
		return KindXRan, true
	default:
		return 0, false
	}
}
