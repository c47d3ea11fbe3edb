package adapter

import (
	"net/url"
	"regexp"
	"strings"
)

// syncParam is the query parameter that carries a redemption code in a
// share link, e.g. https://scanmark.app/?sync=428913.
const syncParam = "sync"

var linkCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// ShareLink builds the deep link a receiving device can open to redeem code.
// The origin is taken as-is apart from trailing-slash normalisation.
func ShareLink(origin, code string) string {
	return strings.TrimRight(origin, "/") + "/?" + syncParam + "=" + code
}

// CodeFromLink extracts a redemption code from a pasted share link. It
// reports a match only for a well-formed URL carrying a 6-digit sync
// parameter; a bare code, a malformed URL, or an out-of-shape parameter is
// not a match.
func CodeFromLink(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}

	code := u.Query().Get(syncParam)
	if !linkCodePattern.MatchString(code) {
		return "", false
	}

	return code, true
}

// StripSyncParam returns rawURL without its sync query parameter, so a
// redeemed link can be stored or re-shared without re-triggering a pull.
// Unparseable input is returned unchanged.
func StripSyncParam(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	if _, ok := q[syncParam]; !ok {
		return rawURL
	}
	q.Del(syncParam)
	u.RawQuery = q.Encode()

	return u.String()
}
