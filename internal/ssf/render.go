package ssf

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/nfp"

	"github.com/adnsv/xlbook/internal/dateserial"
)

var parser = nfp.NumberFormatParser()

// tokensOf parses a single already-isolated section (no leading condition,
// no ';') into nfp tokens. nfp.Parse splits on ';' internally but a lone
// section with none present yields exactly one nfp.Section.
func tokensOf(raw string) []nfp.Token {
	secs := parser.Parse(raw)
	if len(secs) == 0 {
		return nil
	}
	return secs[0].Items
}

// ── date / time rendering ───────────────────────────────────────────────

func renderDateTime(val float64, raw string, opts Options) string {
	bd := dateserial.FromSerial(val, opts.Date1904)
	if opts.Hijri {
		bd = dateserial.FromSerialHijri(val, opts.Date1904)
	}

	tokens := tokensOf(raw)

	// "m"/"mm" mean minutes rather than month when adjacent (on either
	// side, skipping literals) to an hour or seconds specifier.
	isMinute := make([]bool, len(tokens))
	for i, t := range tokens {
		if t.TType != nfp.TokenTypeDateTimes {
			continue
		}
		lower := strings.ToLower(t.TValue)
		if lower != "m" && lower != "mm" {
			continue
		}
		if adjacentToClockToken(tokens, i, -1) || adjacentToClockToken(tokens, i, 1) {
			isMinute[i] = true
		}
	}

	var b strings.Builder
	for i, t := range tokens {
		switch t.TType {
		case nfp.TokenTypeLiteral:
			b.WriteString(t.TValue)
		case nfp.TokenTypeDateTimes:
			if isMinute[i] {
				if len(t.TValue) >= 2 {
					fmt.Fprintf(&b, "%02d", bd.Minute)
				} else {
					b.WriteString(strconv.Itoa(bd.Minute))
				}
				continue
			}
			b.WriteString(renderDateToken(t.TValue, bd))
		case nfp.TokenTypeElapsedDateTimes:
			b.WriteString(renderElapsed(t.TValue, val, opts))
		default:
			b.WriteString(t.TValue)
		}
	}
	return b.String()
}

// adjacentToClockToken walks tokens from i in the given direction (-1 or 1),
// skipping literals, and reports whether the nearest non-literal neighbor is
// an hour or seconds specifier (or an elapsed-time bracket).
func adjacentToClockToken(tokens []nfp.Token, i, dir int) bool {
	for j := i + dir; j >= 0 && j < len(tokens); j += dir {
		t := tokens[j]
		if t.TType == nfp.TokenTypeLiteral {
			continue
		}
		if t.TType == nfp.TokenTypeElapsedDateTimes {
			return true
		}
		if t.TType == nfp.TokenTypeDateTimes {
			lower := strings.ToLower(t.TValue)
			return strings.HasPrefix(lower, "h") || strings.HasPrefix(lower, "s")
		}
		return false
	}
	return false
}

func renderDateToken(tok string, bd dateserial.BrokenDown) string {
	lower := strings.ToLower(tok)
	switch {
	case lower == "yyyy":
		return fmt.Sprintf("%04d", bd.Year)
	case lower == "yy":
		return fmt.Sprintf("%02d", bd.Year%100)
	case lower == "mmmm":
		return monthNames[bd.Month-1]
	case lower == "mmm":
		return monthNames[bd.Month-1][:3]
	case lower == "mm":
		return fmt.Sprintf("%02d", bd.Month)
	case lower == "m":
		return strconv.Itoa(bd.Month)
	case lower == "dddd":
		return weekdayNames[bd.Weekday]
	case lower == "ddd":
		return weekdayNames[bd.Weekday][:3]
	case lower == "dd":
		return fmt.Sprintf("%02d", bd.Day)
	case lower == "d":
		return strconv.Itoa(bd.Day)
	case lower == "hh":
		return fmt.Sprintf("%02d", bd.Hour12())
	case lower == "h":
		return strconv.Itoa(bd.Hour12())
	case lower == "ss":
		return fmt.Sprintf("%02d", bd.Second)
	case lower == "s":
		return strconv.Itoa(bd.Second)
	case strings.Contains(lower, "am/pm"), strings.Contains(lower, "a/p"):
		if bd.Hour < 12 {
			if strings.Contains(tok, "/") && len(tok) <= 3 {
				return "A"
			}
			return "AM"
		}
		if strings.Contains(tok, "/") && len(tok) <= 3 {
			return "P"
		}
		return "PM"
	default:
		if strings.Contains(lower, "m") {
			return fmt.Sprintf("%02d", bd.Minute)
		}
	}
	return tok
}

func renderElapsed(tok string, serial float64, opts Options) string {
	totalSeconds := serial * 86400
	switch strings.ToLower(strings.Trim(tok, "[]")) {
	case "h":
		return strconv.Itoa(int(totalSeconds / 3600))
	case "hh":
		return fmt.Sprintf("%02d", int(totalSeconds/3600))
	case "m":
		return strconv.Itoa(int(totalSeconds / 60))
	case "mm":
		return fmt.Sprintf("%02d", int(totalSeconds/60))
	case "s":
		return strconv.Itoa(int(totalSeconds))
	case "ss":
		return fmt.Sprintf("%02d", int(totalSeconds))
	}
	return tok
}

var monthNames = []string{"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}
var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ── plain number rendering ──────────────────────────────────────────────

var currencyBracketRe = regexp.MustCompile(`\[\$([^-\]]*)(?:-[0-9A-Fa-f]+)?\]`)

func renderNumber(val float64, raw string, sectionCount int) string {
	neg := val < 0 && sectionCount < 2 // with >=2 sections sign is implied by section choice
	abs := math.Abs(val)

	// Strip locale/currency bracket content to its literal prefix text.
	display := currencyBracketRe.ReplaceAllString(raw, "$1")

	tokens := tokensOf(display)

	decimals := 0
	inDecimal := false
	percent := false
	thousands := false
	for _, t := range tokens {
		switch t.TType {
		case nfp.TokenTypeDecimalPoint:
			inDecimal = true
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder:
			if inDecimal {
				decimals++
			}
		case nfp.TokenTypePercent:
			percent = true
		case nfp.TokenTypeThousandsSeparator:
			thousands = true
		}
	}

	scaled := abs
	if percent {
		scaled *= 100
	}
	// Each trailing literal comma after the last digit placeholder scales by
	// 1000 per comma (ECMA-376 §18.8.30 "thousands scaling").
	scaled /= thousandsScaleFactor(display)

	number := strconv.FormatFloat(scaled, 'f', decimals, 64)
	if thousands {
		number = insertThousandsSep(number)
	}

	// Reassemble the section, substituting the formatted number at the
	// first contiguous digit-placeholder/decimal/thousands run and passing
	// every literal token (including currency/percent/color/condition
	// tokens nfp leaves as literals) through verbatim.
	var b strings.Builder
	numberWritten := false
	for _, t := range tokens {
		switch t.TType {
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder,
			nfp.TokenTypeDecimalPoint, nfp.TokenTypeThousandsSeparator:
			if !numberWritten {
				b.WriteString(number)
				numberWritten = true
			}
		case nfp.TokenTypePercent:
			b.WriteByte('%')
		default:
			b.WriteString(t.TValue)
		}
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}

func thousandsScaleFactor(raw string) float64 {
	trimmed := strings.TrimRight(raw, ")_ ")
	n := 0
	for strings.HasSuffix(trimmed, ",") {
		trimmed = trimmed[:len(trimmed)-1]
		n++
	}
	factor := 1.0
	for i := 0; i < n; i++ {
		factor *= 1000
	}
	return factor
}

func insertThousandsSep(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := s, "", false
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart, hasFrac = s[:i], s[i+1:], true
	}
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// ── fraction rendering ───────────────────────────────────────────────────

func renderFraction(val float64, raw string) string {
	neg := val < 0
	abs := math.Abs(val)
	whole := math.Trunc(abs)
	frac := abs - whole

	m := fractionRe.FindStringSubmatch(raw)
	var num, den int64
	if m != nil {
		if denDigits, err := strconv.Atoi(m[1]); err == nil && !strings.ContainsAny(m[1], "?") {
			den = int64(denDigits)
			num = int64(math.Round(frac * float64(den)))
		}
	}
	if den == 0 {
		num, den = approximateFraction(frac, 1000000)
	}
	if den != 0 && num == den {
		whole++
		num = 0
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if whole != 0 {
		fmt.Fprintf(&b, "%d ", int64(whole))
	}
	if num == 0 {
		// whole number: the fraction portion prints as 0 over the denominator.
		fmt.Fprintf(&b, "%d/%d", 0, den)
		return strings.TrimSpace(b.String())
	}
	fmt.Fprintf(&b, "%d/%d", num, den)
	return b.String()
}

// approximateFraction finds the best num/den with den <= maxDen using the
// standard continued-fraction (Stern-Brocot) method.
func approximateFraction(x float64, maxDen int64) (int64, int64) {
	if x == 0 {
		return 0, 1
	}
	var h1, h2, k1, k2 int64 = 1, 0, 0, 1
	b := x
	for {
		a := int64(math.Floor(b))
		h := a*h1 + h2
		k := a*k1 + k2
		if k > maxDen {
			break
		}
		h2, h1 = h1, h
		k2, k1 = k1, k
		if b == float64(a) {
			break
		}
		b = 1 / (b - float64(a))
		if math.IsInf(b, 0) {
			break
		}
	}
	if k1 == 0 {
		return 0, 1
	}
	return h1, k1
}

// ── scientific notation ──────────────────────────────────────────────────

func renderScientific(val float64, raw string) string {
	m := scientificRe.FindString(raw)
	mantissaPart := strings.SplitN(m, "E", 2)[0]
	decimals := 0
	if i := strings.IndexByte(mantissaPart, '.'); i >= 0 {
		decimals = len(mantissaPart) - i - 1
	}
	intDigits := strings.Count(strings.SplitN(mantissaPart, ".", 2)[0], "0") +
		strings.Count(strings.SplitN(mantissaPart, ".", 2)[0], "#")
	if intDigits < 1 {
		intDigits = 1
	}

	s := strconv.FormatFloat(val, 'E', decimals, 64)
	parts := strings.SplitN(s, "E", 2)
	mantissa, exp := parts[0], parts[1]
	expVal, _ := strconv.Atoi(exp)

	if intDigits > 1 {
		// Engineering notation: shift mantissa so the exponent is a multiple
		// of intDigits.
		mantissaF, _ := strconv.ParseFloat(mantissa, 64)
		for expVal%intDigits != 0 {
			mantissaF *= 10
			expVal--
		}
		mantissa = strconv.FormatFloat(mantissaF, 'f', decimals, 64)
	}

	sign := "+"
	if expVal < 0 {
		sign = "-"
		expVal = -expVal
	}
	return fmt.Sprintf("%sE%s%02d", mantissa, sign, expVal)
}
