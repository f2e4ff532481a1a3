package compare

import (
	"encoding/json"
)

// JSONFormatter renders an income comparison as JSON. Report details stay
// out; amounts are decimal strings.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format encodes the base income, each alternative with its deltas, and the insights
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
