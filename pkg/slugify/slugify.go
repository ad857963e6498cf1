// Package slugify строит URL-безопасные идентификаторы из произвольных заголовков:
// кириллица транслитерируется в латиницу, диакритика снимается, остальное отбрасывается.
package slugify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// translit - таблица транслитерации строчной кириллицы.
// Твердый и мягкий знаки не имеют латинского эквивалента и удаляются.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "j", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "yi", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
	// украинский и белорусский алфавиты
	'і': "i", 'ї': "yi", 'є': "ye", 'ґ': "g", 'ў': "u",
}

var (
	dashes     = strings.NewReplacer("–", "-", "—", "-", "‒", "-", "−", "-")
	ampersand  = regexp.MustCompile(`&amp;|&`)
	separators = regexp.MustCompile(`[-\s]+`)
	lower      = cases.Lower(language.Russian)
)

// Slugify возвращает slug для строки s.
func Slugify(s string) string {
	s = lower.String(s)
	s = ampersand.ReplaceAllString(s, " and ")
	s = dashes.Replace(s)
	s = separators.ReplaceAllString(s, "-")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if latin, ok := translit[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}

	folded, _, err := transform.String(foldDiacritics(), b.String())
	if err != nil {
		folded = b.String()
	}

	var out strings.Builder
	out.Grow(len(folded))
	for _, r := range folded {
		if isSlugRune(r) {
			out.WriteRune(r)
		}
	}
	return strings.Trim(out.String(), "-")
}

// Truncate обрезает slug до maxRunes символов, не оставляя дефис в конце.
func Truncate(slug string, maxRunes int) string {
	r := []rune(slug)
	if maxRunes <= 0 || len(r) <= maxRunes {
		return slug
	}
	return strings.TrimRight(string(r[:maxRunes]), "-")
}

func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
}
