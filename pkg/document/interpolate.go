package document

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/geoatlas/geoconf/pkg/errors"
)

// EnvLookup resolves an environment variable reference. It follows the
// os.LookupEnv contract: the boolean reports whether the variable is set.
type EnvLookup func(name string) (string, bool)

// Interpolate expands environment variable references in raw document
// bytes before YAML parsing, matching the behavior of the consuming
// server:
//
//	${NAME}           value of NAME; an error if NAME is unset
//	${NAME:-default}  value of NAME, or default when unset or empty
//	$$                a literal dollar sign
//
// A bare $NAME without braces is left untouched. All missing variables
// are reported together in a single error.
func Interpolate(data []byte, lookup EnvLookup) ([]byte, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var out bytes.Buffer
	out.Grow(len(data))
	var missing []string

	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '$' {
			out.WriteByte(c)
			continue
		}
		if i+1 < len(data) && data[i+1] == '$' {
			out.WriteByte('$')
			i++
			continue
		}
		if i+1 >= len(data) || data[i+1] != '{' {
			out.WriteByte('$')
			continue
		}

		end := bytes.IndexByte(data[i+2:], '}')
		if end < 0 {
			return nil, errors.NewConfigError("interpolation",
				fmt.Sprintf("unterminated variable reference at byte %d", i), nil)
		}
		ref := string(data[i+2 : i+2+end])
		i += 2 + end // skip past the closing brace

		name, fallback, hasFallback := strings.Cut(ref, ":-")
		if !validEnvName(name) {
			return nil, errors.NewConfigError("interpolation",
				fmt.Sprintf("invalid variable reference ${%s}", ref), nil)
		}

		value, ok := lookup(name)
		switch {
		case hasFallback && (!ok || value == ""):
			out.WriteString(fallback)
		case ok:
			out.WriteString(value)
		default:
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, errors.NewConfigError("interpolation",
			fmt.Sprintf("environment variables not set: %s", strings.Join(missing, ", ")), nil)
	}
	return out.Bytes(), nil
}

// validEnvName reports whether s is a well-formed variable name:
// a letter or underscore followed by letters, digits, or underscores.
func validEnvName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
