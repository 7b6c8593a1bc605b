package geo

import "strings"

// stripped characters never help a place search and confuse some
// geocoders, so they are removed outright.
var stripChars = strings.NewReplacer(
	`"`, "", "'", "", "`", "",
	"“", "", "”", "", "‘", "", "’", "",
	"(", "", ")", "", "[", "", "]", "", "{", "", "}", "",
)

// accentFold maps the accented Latin letters that show up in Portuguese
// and Spanish place names to their plain ASCII equivalent.
var accentFold = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"Á", "A", "À", "A", "Â", "A", "Ã", "A", "Ä", "A",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"É", "E", "È", "E", "Ê", "E", "Ë", "E",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"Í", "I", "Ì", "I", "Î", "I", "Ï", "I",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"Ó", "O", "Ò", "O", "Ô", "O", "Õ", "O", "Ö", "O",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"Ú", "U", "Ù", "U", "Û", "U", "Ü", "U",
	"ç", "c", "Ç", "C",
	"ñ", "n", "Ñ", "N",
	"ý", "y", "ÿ", "y", "Ý", "Y",
)

// NormalizeQuery prepares a free-text place name for a geocoding query:
// quotes and brackets are stripped, accented letters folded to ASCII,
// and whitespace trimmed and collapsed to single spaces. The function
// is idempotent.
func NormalizeQuery(s string) string {
	s = stripChars.Replace(s)
	s = accentFold.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
