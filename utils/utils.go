package utils

import (
	"math/rand"
	"path"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RandomAlphabetString generates a lower-cased alphabet-only string of the
// requested length.
func RandomAlphabetString(length int) string {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		sb.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return sb.String()
}

// FileExtWithDot returns the extension of the provided file name including
// the leading dot, or empty string when the name carries none.
func FileExtWithDot(fileName string) string {
	return path.Ext(fileName)
}
