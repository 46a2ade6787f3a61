package storage

import "strings"

// MaxNameLen is the longest player name kept, in runes.
const MaxNameLen = 18

// DefaultName replaces empty names.
const DefaultName = "Player"

var nameReplacer = strings.NewReplacer(",", " ", "\n", " ", "\r", " ")

// SafeName trims name, replaces separators that would break a CSV row and
// truncates it to MaxNameLen runes. Blank names become DefaultName.
func SafeName(name string) string {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return DefaultName
	}
	cleaned = nameReplacer.Replace(cleaned)
	if r := []rune(cleaned); len(r) > MaxNameLen {
		cleaned = string(r[:MaxNameLen])
	}
	return cleaned
}
