package ssf

// BuiltinFormats maps built-in numFmtId values (0-22, the 37-40 accounting
// block, and 45-49) to their canonical Excel format strings, per
// ECMA-376 §18.8.30. Grounded on TsubasaBE/go-xlsb's styles.BuiltInNumFmt.
var BuiltinFormats = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `"$"#,##0_);\("$"#,##0\)`,
	6:  `"$"#,##0_);[Red]\("$"#,##0\)`,
	7:  `"$"#,##0.00_);\("$"#,##0.00\)`,
	8:  `"$"#,##0.00_);[Red]\("$"#,##0.00\)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "m/d/yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: `#,##0_);\(#,##0\)`,
	38: `#,##0_);[Red]\(#,##0\)`,
	39: `#,##0.00_);\(#,##0.00\)`,
	40: `#,##0.00_);[Red]\(#,##0.00\)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
}

// fallbackIndex maps a built-in id with no fixed canonical string (locale
// dependent, e.g. currency) to the nearest equivalent id that does have one,
// per spec.md §4.6 ("index 5 acts as index 37 when absent").
var fallbackIndex = map[int]int{
	5: 37, 6: 38, 7: 39, 8: 40,
}

// fallbackCurrencyString is the static fallback for the currency ids 5-8
// when neither a caller-supplied table, BuiltinFormats, nor fallbackIndex
// resolve them -- a generic currency-shaped display. Other unresolved ids
// give "General".
const fallbackCurrencyString = `"$"#,##0_);\("$"#,##0\)`
