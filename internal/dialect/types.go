package dialect

import (
	"regexp"
	"strings"
)

// knownTypes are the cell shapes that count towards the type score.
var knownTypes = []*regexp.Regexp{
	regexp.MustCompile(`^[+-]?(\d+([.,]\d*)?|[.,]\d+)([eE][+-]?\d+)?$`),                            // number
	regexp.MustCompile(`^[+-]?\d{1,3}([,.' ]\d{3})+([.,]\d+)?$`),                                   // grouped number
	regexp.MustCompile(`^[+-]?(\d+([.,]\d*)?|[.,]\d+)\s?%$`),                                       // percentage
	regexp.MustCompile(`^[$€£¥]\s?[+-]?\d+([.,]\d+)?$|^[+-]?\d+([.,]\d+)?\s?[$€£¥]$`),              // currency
	regexp.MustCompile(`^\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}$`),                                        // date
	regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2}(\.\d+)?)?(\s?[aApP][mM])?$`),                         // time
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:?\d{2})?$`), // datetime
	regexp.MustCompile(`^(https?|ftp)://[^\s]+$|^www\.[^\s]+$`),                                    // url
	regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`),                                             // email
	regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N}\p{M} _&()/.'-]*$`),                                // word
}

var nullValues = map[string]bool{
	"":      true,
	"na":    true,
	"n/a":   true,
	"nan":   true,
	"null":  true,
	"none":  true,
	"true":  true,
	"false": true,
	"yes":   true,
	"no":    true,
	"-":     true,
}

// isKnownType reports whether a cell looks like a recognisable value.
func isKnownType(cell string) bool {
	cell = strings.TrimSpace(cell)
	if nullValues[strings.ToLower(cell)] {
		return true
	}
	for _, re := range knownTypes {
		if re.MatchString(cell) {
			return true
		}
	}
	return false
}
