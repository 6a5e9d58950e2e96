package watch

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"

	"dwd/internal/models"
)

var bracketRe = regexp.MustCompile(`\[([^\[\]]+)\]`)

// LastBracketValue extracts the candidate vehicle token from a raw log line:
// the content of the last non-nested [...] group, stripped of whitespace and
// resolved through the alias table. The caller decides whether the token is
// a known vehicle.
func LastBracketValue(line string) (string, bool) {
	matches := bracketRe.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return "", false
	}
	cand := strings.TrimSpace(matches[len(matches)-1][1])
	cand = strings.ReplaceAll(cand, " ", "")
	return models.ResolveAlias(cand), true
}

// LineHash fingerprints the raw line bytes for the dedup cache.
func LineHash(line string) string {
	sum := sha1.Sum([]byte(line))
	return hex.EncodeToString(sum[:])
}
