package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Placeholder stands in for an unknown tag field.
const Placeholder = "?"

var lineTagPattern = regexp.MustCompile(`^([A-Z]+|\?)(\d+|\?)-(\w*|\?)-(\w*|\?)(?:-([A-Z]+))?$`)

// LineTag holds the fields of a pipe tag such as "P1203-6-A1-H".
type LineTag struct {
	Service    string
	Number     string
	Size       string
	Spec       string
	Insulation string
}

// ParseLineTag parses text as a whole. On any mismatch every field is
// empty; use IsZero to detect that.
func ParseLineTag(text string) LineTag {
	m := lineTagPattern.FindStringSubmatch(text)
	if m == nil {
		return LineTag{}
	}
	return LineTag{
		Service:    m[1],
		Number:     m[2],
		Size:       m[3],
		Spec:       m[4],
		Insulation: m[5],
	}
}

func (t LineTag) IsZero() bool {
	return t == LineTag{}
}

// String renders the tag in canonical form.
func (t LineTag) String() string {
	return GenLineTag(t.Service, t.Number, t.Size, t.Spec, t.Insulation)
}

// GenLineTag renders pipe tag fields. Empty fields become "?", except
// insulation, which is omitted when empty.
func GenLineTag(service, number, size, spec, insulation string) string {
	tag := placeholder(service) + placeholder(number) + "-" + placeholder(size) + "-" + placeholder(spec)
	if insulation != "" {
		tag += "-" + insulation
	}
	return tag
}

func placeholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// GenBubbleTag renders an instrument tag "{code}-{number}".
func GenBubbleTag(code, number string) string {
	return code + "-" + number
}

// NumberTag is a numeric tag split into a unit prefix and a sequence.
type NumberTag struct {
	Unit       int
	Sequence   int
	UnitDigits int
	SeqDigits  int
}

// SplitNumber splits number after its first unitDigits characters.
func SplitNumber(number string, unitDigits int) (NumberTag, error) {
	if unitDigits <= 0 || len(number) <= unitDigits {
		return NumberTag{}, fmt.Errorf("number %q too short for %d unit digits", number, unitDigits)
	}
	unit, err := strconv.Atoi(number[:unitDigits])
	if err != nil {
		return NumberTag{}, fmt.Errorf("invalid unit in %q: %w", number, err)
	}
	seq, err := strconv.Atoi(number[unitDigits:])
	if err != nil {
		return NumberTag{}, fmt.Errorf("invalid sequence in %q: %w", number, err)
	}
	return NumberTag{Unit: unit, Sequence: seq, UnitDigits: unitDigits, SeqDigits: len(number) - unitDigits}, nil
}

func (n NumberTag) String() string {
	return fmt.Sprintf("%0*d%0*d", n.UnitDigits, n.Unit, n.SeqDigits, n.Sequence)
}
