package spotify

import (
	"regexp"
	"strings"
)

// Profile input is either a bare numeric user ID or a profile URL of the
// shape [http(s)://][www.]open.spotify.com/user/<digits>. Scheme and www are
// matched case-insensitively; the host and digits are not.
var (
	profileURLPattern = regexp.MustCompile(`^(?i:https?://)?(?i:www\.)?open\.spotify\.com/user/(\d+)`)
	digitsOnlyPattern = regexp.MustCompile(`^\d+$`)
)

// NormalizeUserID maps free-form profile input to a canonical Spotify user
// ID. The ID is an opaque digit string: leading zeros are preserved verbatim.
// Unrecognizable input returns ("", false); this function never errors.
func NormalizeUserID(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	if m := profileURLPattern.FindStringSubmatch(input); m != nil {
		return m[1], true
	}

	if digitsOnlyPattern.MatchString(input) {
		return input, true
	}

	return "", false
}
