package classify

import (
	"path/filepath"
	"regexp"

	"golang.org/x/text/unicode/norm"
)

var (
	labelRE = regexp.MustCompile(`([A-Z][a-z]+)\((.+)\)\.\w+$`)
	petRE   = regexp.MustCompile(`Pet[ _-]?[\d_-]+\.png`)
)

var skills = map[string]struct{}{
	"Attack": {}, "Hitpoints": {}, "Mining": {},
	"Strength": {}, "Agility": {}, "Smithing": {},
	"Defence": {}, "Herblore": {}, "Fishing": {},
	"Ranged": {}, "Thieving": {}, "Cooking": {},
	"Prayer": {}, "Crafting": {}, "Firemaking": {},
	"Magic": {}, "Fletching": {}, "Woodcutting": {},
	"Runecraft": {}, "Slayer": {}, "Farming": {},
	"Construction": {}, "Hunter": {},
}

// IsSkill reports whether name is one of the 23 skill names RuneLite uses
// for level-up screenshots.
func IsSkill(name string) bool {
	_, ok := skills[name]
	return ok
}

// Classify derives a Label from a screenshot filename. Any directory
// components are ignored.
func Classify(filename string) Label {
	name := norm.NFC.String(filepath.Base(filename))

	if m := labelRE.FindStringSubmatch(name); m != nil {
		word, detail := m[1], m[2]
		switch {
		case IsSkill(word):
			return Label{Category: LevelUp, Word: word, detail: Some(detail)}
		case word == "Barrows":
			return Label{Category: Barrows, Word: word, detail: Some(detail)}
		case word == "Quest":
			return Label{Category: Quest, Word: word, detail: Some(detail)}
		}
	}

	if petRE.MatchString(name) {
		return Label{Category: Pet, detail: None}
	}
	return Label{Category: Misc, detail: None}
}
