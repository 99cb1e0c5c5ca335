package utils

import (
	"net/url"
	"regexp"
)

var userinfoPasswordRegex = regexp.MustCompile(`(:)([^:@/]+)(@)`)

// MaskURL hides the password of any userinfo in raw so the URL can be logged.
func MaskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return userinfoPasswordRegex.ReplaceAllString(raw, ":***@")
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	return u.Redacted()
}
