package utils

import (
	"regexp"
	"strings"
)

// Замена кириллицы (и таджикских букв) на латиницу
var translitReplacements = map[string]string{
	"а": "a", "б": "b", "в": "v", "г": "g", "д": "d",
	"е": "e", "ё": "yo", "ж": "zh", "з": "z", "и": "i",
	"й": "y", "к": "k", "л": "l", "м": "m", "н": "n",
	"о": "o", "п": "p", "р": "r", "с": "s", "т": "t",
	"у": "u", "ф": "f", "х": "kh", "ц": "ts", "ч": "ch",
	"ш": "sh", "щ": "shch", "ъ": "", "ы": "y", "ь": "",
	"э": "e", "ю": "yu", "я": "ya",
	"ғ": "gh", "ӣ": "i", "қ": "q", "ӯ": "u", "ҳ": "h", "ҷ": "j",
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

func transliterate(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		char := string(r)
		if repl, ok := translitReplacements[char]; ok {
			sb.WriteString(repl)
		} else {
			sb.WriteString(char)
		}
	}
	return sb.String()
}

// GenerateSlugFromName создает слаг из названия.
// "Ремонт Принтера!" -> "remont_printera"
func GenerateSlugFromName(name string) string {
	res := nonSlugChars.ReplaceAllString(transliterate(name), "_")
	return strings.Trim(res, "_")
}

// TransliterateKey создает ключ характеристики из отображаемого названия.
// "Процессор" -> "protsessor", "ОЗУ" -> "ozu".
func TransliterateKey(display string) string {
	key := GenerateSlugFromName(display)
	if key == "" {
		return "field"
	}
	return key
}
