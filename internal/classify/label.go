package classify

import "fmt"

// Category is the routing class of a screenshot.
type Category int

const (
	Misc Category = iota
	LevelUp
	Quest
	Barrows
	Pet
)

// Categories lists every category in destination creation order.
var Categories = []Category{LevelUp, Quest, Barrows, Pet, Misc}

func (c Category) String() string {
	switch c {
	case LevelUp:
		return "LevelUp"
	case Quest:
		return "Quest"
	case Barrows:
		return "Barrows"
	case Pet:
		return "Pet"
	default:
		return "Misc"
	}
}

// Detail is optional sub-text captured from a filename: a level, quest
// name, or chest number.
type Detail struct {
	Value   string
	Present bool
}

// Some wraps a present detail value.
func Some(value string) Detail { return Detail{Value: value, Present: true} }

// None is the absent detail.
var None = Detail{}

// Label is the result of classifying a filename.
type Label struct {
	Category Category
	// Word is the capitalized prefix before the parenthesis, e.g. the skill
	// name for level-ups. Empty for Pet and Misc.
	Word   string
	detail Detail
}

// Detail returns the captured sub-text, if any.
func (l Label) Detail() (string, bool) {
	return l.detail.Value, l.detail.Present
}

// Caption renders the message text sent alongside the attachment. Pet and
// Misc screenshots, and labels without detail, have no caption.
func (l Label) Caption() (string, bool) {
	detail, ok := l.Detail()
	if !ok {
		return "", false
	}
	switch l.Category {
	case LevelUp:
		return fmt.Sprintf("Gained a level in %s (%s)", l.Word, detail), true
	case Quest:
		return fmt.Sprintf("Completed quest \"%s\"", detail), true
	case Barrows:
		return fmt.Sprintf("Opened Barrows chest #%s", detail), true
	default:
		return "", false
	}
}

// Describe returns a short phrase for log lines.
func (l Label) Describe() string {
	if caption, ok := l.Caption(); ok {
		return "`" + caption + "` screenshot"
	}
	if l.Category == Pet {
		return "Pet drop screenshot"
	}
	return "misc screenshot"
}
