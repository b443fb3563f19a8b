package voice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rimtoken/go-dashboard/components/dashboard"
)

// Kind names the action a transcript was classified as.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindAdd
	KindRemove
	KindReset
	KindHelp
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindReset:
		return "reset"
	case KindHelp:
		return "help"
	default:
		return "unrecognized"
	}
}

// Command is the structured reading of one transcript. For KindAdd an empty
// Type means the verb matched but no widget type keyword did. For KindRemove
// HasIndex=false means no number was spoken; Index is the 1-based display
// number otherwise.
type Command struct {
	Kind       Kind
	Language   Language
	Transcript string
	Type       dashboard.WidgetType
	Size       dashboard.WidgetSize
	Index      int
	HasIndex   bool
}

var digitsPattern = regexp.MustCompile(`\d+`)

// Arabic-Indic digits are normalized to ASCII so "احذف العنصر ٢" parses the
// same as "احذف العنصر 2".
var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

func normalize(transcript string) string {
	return arabicDigits.Replace(strings.ToLower(strings.TrimSpace(transcript)))
}

// Classify parses a transcript into a Command. Verbs are checked in a fixed
// precedence: add, remove, reset, help. A transcript matching none of them,
// or spoken in an unsupported language, is unrecognized.
func Classify(transcript string, lang Language) Command {
	cmd := Command{
		Kind:       KindUnrecognized,
		Language:   lang,
		Transcript: transcript,
	}
	if lang != Arabic && lang != English {
		return cmd
	}
	normalized := normalize(transcript)

	switch {
	case containsAny(normalized, addKeywords[lang]):
		cmd.Kind = KindAdd
		if widgetType, ok := matchType(normalized, lang); ok {
			cmd.Type = widgetType
			cmd.Size = matchSize(normalized, lang)
		}
	case containsAny(normalized, removeKeywords[lang]):
		cmd.Kind = KindRemove
		if match := digitsPattern.FindString(normalized); match != "" {
			if index, err := strconv.Atoi(match); err == nil {
				cmd.Index = index
				cmd.HasIndex = true
			}
		}
	case containsAny(normalized, resetKeywords[lang]):
		cmd.Kind = KindReset
	case containsAny(normalized, helpKeywords[lang]):
		cmd.Kind = KindHelp
	}
	return cmd
}
