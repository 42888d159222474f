package validator

import (
	"slices"
	"strings"
	"unicode/utf8"
)

var LevelsOfStudy = []string{
	"high_school",
	"undergraduate",
	"graduate",
	"phd",
	"bootcamp",
	"other",
	"not_student",
}

var TshirtSizes = []string{"xs", "s", "m", "l", "xl", "xxl"}

func LevelOfStudy(level string) bool {
	return slices.Contains(LevelsOfStudy, level)
}

func TshirtSize(size string) bool {
	return slices.Contains(TshirtSizes, size)
}

func GraduationYear(year int) bool {
	return year >= 1950 && year <= 2100
}

// Required reports whether s holds a non-blank value of at most limit runes.
func Required(s string, limit int) bool {
	s = strings.TrimSpace(s)
	return s != "" && utf8.RuneCountInString(s) <= limit
}

func Optional(s *string, limit int) bool {
	return s == nil || utf8.RuneCountInString(*s) <= limit
}
