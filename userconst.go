package genart

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// User constants are tweakable values which the live preview page can change
// between runs without editing code. Each is read from GENART_USER_CONST_<NAME>,
// falling back to the default, and announced on stderr as
//
//	genart: const NAME: TYPE = VALUE;
//
// which is how the page learns which constants exist. A value that fails to
// parse is fatal.

const EnvUserConstPrefix = "GENART_USER_CONST_"

// The type names announced for each kind of constant.
const (
	IntType    = "int"
	FloatType  = "float64"
	BoolType   = "bool"
	StringType = "string"
)

var userConstFatal = func(err error) {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	os.Exit(1)
}

func IntConst(name string, def int) int {
	return userConst(name, IntType, def, strconv.Atoi)
}

func FloatConst(name string, def float64) float64 {
	return userConst(name, FloatType, def, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func BoolConst(name string, def bool) bool {
	return userConst(name, BoolType, def, strconv.ParseBool)
}

func StringConst(name string, def string) string {
	return userConst(name, StringType, def, func(s string) (string, error) {
		return s, nil
	})
}

func userConst[T any](name, typeName string, def T, parse func(string) (T, error)) T {
	value := def
	if s, ok := os.LookupEnv(EnvUserConstPrefix + name); ok {
		parsed, err := parse(s)
		if err != nil {
			userConstFatal(errors.Wrapf(err, "parsing user const %s from %q failed", name, s))
			return def
		}
		value = parsed
	}
	fmt.Fprintf(stderr, "genart: const %s: %s = %s;\n", name, typeName, FormatConstValue(value))
	return value
}

// FormatConstValue formats a constant the way it is announced. Strings are
// quoted.
func FormatConstValue(value any) string {
	if s, ok := value.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(value)
}

// ParseConstValue checks that value parses as the named type. Strings are
// accepted either quoted or bare, and returned unquoted.
func ParseConstValue(typeName, value string) (string, error) {
	var err error
	switch typeName {
	case IntType:
		_, err = strconv.Atoi(value)
	case FloatType:
		_, err = strconv.ParseFloat(value, 64)
	case BoolType:
		_, err = strconv.ParseBool(value)
	case StringType:
		if unquoted, unquoteErr := strconv.Unquote(value); unquoteErr == nil {
			return unquoted, nil
		}
		return value, nil
	default:
		return "", errors.Errorf("unknown user const type %q", typeName)
	}
	if err != nil {
		return "", errors.Wrapf(err, "invalid %s value %q", typeName, value)
	}
	return value, nil
}
