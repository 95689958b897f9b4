package chat

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Phone patterns are tried in order; the first match wins.
var phoneRes = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
	regexp.MustCompile(`\b\d{10}\b`),
	regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`),
}

// Name patterns capture a capitalized first name with an optional surname.
var nameRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:i'?m|i am|my name is|this is|call me|name is)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
	regexp.MustCompile(`(?i)name[:\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
}

// ExtractPatientInfo pulls a contact (email preferred over phone) and a name
// out of free text. Missing fields are simply absent from the result.
func ExtractPatientInfo(text string) map[string]string {
	info := map[string]string{}

	if email := emailRe.FindString(text); email != "" {
		info["contact"] = email
	}
	if _, ok := info["contact"]; !ok {
		for _, re := range phoneRes {
			if phone := re.FindString(text); phone != "" {
				info["contact"] = phone
				break
			}
		}
	}

	for _, re := range nameRes {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			info["name"] = strings.TrimSpace(m[1])
			break
		}
	}

	return info
}
