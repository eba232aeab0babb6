package mongodb

import (
	"net/url"
	"strings"
)

const redactedURIPassword = "xxxxx"

// RedactURI hides the password of a connection string, if any
func RedactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		// not a URL, hide everything that may be user info
		userInfo, ok := userInfoBounds(uri)
		if !ok {
			return uri
		}
		return uri[:userInfo[0]] + redactedURIPassword + uri[userInfo[1]:]
	}
	if u.User == nil {
		return uri
	}
	if _, ok := u.User.Password(); !ok {
		return uri
	}
	u.User = url.UserPassword(u.User.Username(), redactedURIPassword)
	return u.String()
}

// StripURIPassword removes the password of a connection string, keeping the username
func StripURIPassword(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		userInfo, ok := userInfoBounds(uri)
		if !ok {
			return uri
		}
		return uri[:userInfo[0]] + uri[userInfo[1]+1:]
	}
	if u.User == nil {
		return uri
	}
	if _, ok := u.User.Password(); !ok {
		return uri
	}
	u.User = url.User(u.User.Username())
	return u.String()
}

// userInfoBounds locates the user info between the scheme and the last '@'
func userInfoBounds(uri string) ([2]int, bool) {
	scheme := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if scheme == -1 || at < scheme+3 {
		return [2]int{}, false
	}
	return [2]int{scheme + 3, at}, true
}
