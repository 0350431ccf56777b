package helper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	om "github.com/cevaris/ordered_map"
	"github.com/relloyd/deltapipe/logger"
)

// CsvToStringSliceTrimSpaces converts a string of the form, 'f1,f2,f3...' into a slice of string values.
// 1) Split on comma.
// 2) Remove leading and trailing spaces.
// An empty or blank input gives an empty slice rather than a slice holding one empty token.
func CsvToStringSliceTrimSpaces(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	tokens := strings.Split(s, ",")
	for x := range tokens {
		tokens[x] = strings.TrimSpace(tokens[x])
	}
	return tokens
}

// StringSliceToOrderedMap adds each value in s to an ordered map with key and value set to the value in s.
func StringSliceToOrderedMap(s []string) *om.OrderedMap {
	retval := om.NewOrderedMap()
	for _, v := range s {
		retval.Set(v, v)
	}
	return retval
}

// OrderedMapValuesToStringSlice builds a list of values found in ordered map 'om' supplied as input.
// Output - this function modifies the supplied list 'l' and 'idx' by reference.
func OrderedMapValuesToStringSlice(log logger.Logger, om *om.OrderedMap, l *[]string, idx *int) {
	iter := om.IterFunc()
	if iter == nil {
		log.Panic("Failed to get iterFunc in OrderedMapValuesToStringSlice()")
	}
	for kv, ok := iter(); ok; kv, ok = iter() {
		(*l)[*idx] = kv.Value.(string)
		*idx++
	}
}

// GetTrueFalseStringAsBool trims spaces from s and checks if it (case insensitive) equals "true".
func GetTrueFalseStringAsBool(s string) bool {
	re := regexp.MustCompile("(?i)^true$")
	return re.MatchString(strings.TrimSpace(s))
}

// QuoteIdentifier wraps s in backticks for use as a Databricks SQL identifier.
// Embedded backticks are doubled.
func QuoteIdentifier(s string) string {
	return "`" + strings.Replace(s, "`", "``", -1) + "`"
}

// QuoteIdentifiers applies QuoteIdentifier to each element of s and returns a new slice.
func QuoteIdentifiers(s []string) []string {
	retval := make([]string, len(s))
	for i, v := range s {
		retval[i] = QuoteIdentifier(v)
	}
	return retval
}

// EscapeSingleQuotes makes s safe to embed in a single quoted SQL string literal.
func EscapeSingleQuotes(s string) string {
	return strings.Replace(s, `'`, `''`, -1)
}

// InterfaceToString converts values decoded from JSON into strings.
// Whole float64 values are printed without a decimal point since JSON numbers arrive as float64.
func InterfaceToString(src []interface{}) []string {
	retval := make([]string, len(src), len(src))
	for i, v := range src {
		retval[i] = GetStringFromInterface(v)
	}
	return retval
}

// GetStringFromInterface will convert a scalar interface{} value to a string.
func GetStringFromInterface(input interface{}) (retval string) {
	switch x := input.(type) {
	case nil:
		retval = ""
	case string:
		retval = x
	case float64:
		xInt := int64(x)
		if x == float64(xInt) { // if we can treat this as an integer...
			retval = strconv.FormatInt(xInt, 10)
		} else {
			retval = strconv.FormatFloat(x, 'f', -1, 64) // use 'f' to preserve all decimal points without an exponent.
		}
	case float32:
		retval = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case []uint8: // github.com/alexbrainman/odbc drivers return []uint8 bytes.
		retval = string(x)
	default:
		retval = fmt.Sprint(x)
	}
	return
}
