package validator

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9 ()\-.]{7,20}$`)

func Name(name string) bool {
	name = strings.TrimSpace(name)
	return utf8.RuneCountInString(name) >= 1 && utf8.RuneCountInString(name) <= 100
}

func PhoneNumber(phone string) bool {
	return phoneRe.MatchString(strings.TrimSpace(phone))
}

// URL accepts absolute http(s) links only.
func URL(link string) bool {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func AgeAtEvent(age int) bool {
	return age >= 13 && age <= 100
}
