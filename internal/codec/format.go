package codec

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"gecko-animutils/internal/model"
)

// F formats v as a Java float literal with the shortest digits that read back as
// the same float32, e.g. 3 -> "3.0F".
func F(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 32)
	if s == "-0" {
		s = "0"
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "F"
}

// I formats v as a Java int literal, truncating toward zero.
func I(v float64) string {
	return strconv.Itoa(int(math.Trunc(v)))
}

const defaultIdentifier = "animated_entity_model"

var separators = regexp.MustCompile(`[\s-]+`)

// Identifier returns the Java class name for p.
func Identifier(p *model.Project) string {
	if id := separators.ReplaceAllString(p.GeometryName, "_"); id != "" {
		return id
	}
	return defaultIdentifier
}

// FileName returns the file name of the class generated for p.
func FileName(p *model.Project) string {
	return Identifier(p) + ".java"
}
