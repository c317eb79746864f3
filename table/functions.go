package table

// functionTable is a closed subset of Numbers' function-name <-> index
// bootstrap table (formula.py's generated FUNCTION_MAP has hundreds of
// entries derived from the app's own function catalog; reproducing the
// full table is out of scope, same as the message registry per spec.md
// §9 — this module only needs a self-consistent mapping for the functions
// it round-trips).
var functionTable = []string{
	"SUM", "AVERAGE", "COUNT", "COUNTA", "MAX", "MIN", "PRODUCT", "ROUND",
	"ROUNDUP", "ROUNDDOWN", "ABS", "SQRT", "POWER", "MOD", "IF", "AND", "OR",
	"NOT", "IFERROR", "IFS", "SUMIF", "SUMIFS", "COUNTIF", "COUNTIFS",
	"AVERAGEIF", "AVERAGEIFS", "CONCATENATE", "LEFT", "RIGHT", "MID", "LEN",
	"LOWER", "UPPER", "TRIM", "SUBSTITUTE", "FIND", "REPLACE", "TEXT",
	"VALUE", "VLOOKUP", "HLOOKUP", "LOOKUP", "INDEX", "MATCH", "TODAY",
	"NOW", "DATE", "YEAR", "MONTH", "DAY", "HOUR", "MINUTE", "SECOND",
	"WEEKDAY", "DATEDIF", "NETWORKDAYS", "RANK", "MEDIAN", "MODE", "STDEV",
	"VAR", "TRUE", "FALSE", "CHOOSE", "ISBLANK", "ISERROR", "ISNUMBER",
	"ISTEXT",
}

var functionIndexByName = func() map[string]int {
	m := make(map[string]int, len(functionTable))
	for i, name := range functionTable {
		m[name] = i
	}
	return m
}()

func functionIndex(name string) (int, bool) {
	idx, ok := functionIndexByName[name]
	return idx, ok
}

func functionName(index int) (string, bool) {
	if index < 0 || index >= len(functionTable) {
		return "", false
	}
	return functionTable[index], true
}
