package render

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/driftwatch/internal/check"
)

// titleCaser converts words to title case for widget and table headings.
var titleCaser = cases.Title(language.English)

// Humanize turns a check type tag into a display title:
// "share_of_missing_values" becomes "Share Of Missing Values".
func Humanize(typeTag string) string {
	words := strings.NewReplacer("_", " ", "-", " ").Replace(typeTag)
	return titleCaser.String(words)
}

// TitleFor builds a display title for a check: the humanized type tag,
// followed by the arguments when the check has any.
func TitleFor(id check.Identity) string {
	title := Humanize(id.Type)
	summary := argsSummary(id)
	if summary == "" {
		return title
	}
	return title + " (" + summary + ")"
}

// argsSummary renders the identity's args as "k=v" pairs sorted by key.
// Identities whose args fail to decode fall back to the raw document.
func argsSummary(id check.Identity) string {
	args, err := id.ArgsMap()
	if err != nil {
		return id.Args
	}
	if len(args) == 0 {
		return ""
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+FormatValue(args[k]))
	}
	return strings.Join(pairs, ", ")
}
