// Package extract provides pure line-to-key extraction functions for tally.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// ErrMissingField reports a record that decoded fine but holds no usable
// value for the requested field.
var ErrMissingField = errors.New("field not present")

// Field returns an extractor that decodes one line as a JSON object and keys
// on the named field. String values are used verbatim; numbers and bools are
// formatted; null or absent fields make the record malformed.
func Field(name string) func(line string) (string, error) {
	return func(line string) (string, error) {
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return "", fmt.Errorf("decode record: %w", err)
		}

		value, ok := record[name]
		if !ok || value == nil {
			return "", fmt.Errorf("field %q: %w", name, ErrMissingField)
		}

		switch v := value.(type) {
		case string:
			return v, nil
		case float64:
			return strconv.FormatFloat(v, 'g', -1, 64), nil
		case bool:
			return strconv.FormatBool(v), nil
		default:
			// Arrays and objects: re-encode so equal values collapse to one key.
			data, err := json.Marshal(v)
			if err != nil {
				return "", fmt.Errorf("field %q: %w", name, err)
			}
			return string(data), nil
		}
	}
}

// Raw keys on the whole trimmed line, for inputs that are not JSON.
func Raw() func(line string) (string, error) {
	return func(line string) (string, error) {
		return strings.TrimSpace(line), nil
	}
}

// Language returns an extractor that keys on the detected language of a text
// field, lowercase ("english", "german", ...). Text that lingua cannot
// classify reliably maps to "unknown".
//
// Building the detector loads language models, so build once and share the
// returned func; it stays pure and is safe for concurrent use.
func Language(field string) func(line string) (string, error) {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllSpokenLanguages().
		Build()
	text := Field(field)

	return func(line string) (string, error) {
		value, err := text(line)
		if err != nil {
			return "", err
		}

		language, ok := detector.DetectLanguageOf(value)
		if !ok {
			return "unknown", nil
		}
		return strings.ToLower(language.String()), nil
	}
}
