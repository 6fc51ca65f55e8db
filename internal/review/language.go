package review

import (
	"regexp"
	"strings"
)

type languagePatterns struct {
	lang     Language
	patterns []*regexp.Regexp
}

// languageTable is checked in order; the first language with any matching
// pattern wins, so cpp shadows c for snippets with #include or main.
var languageTable = []languagePatterns{
	{LanguagePython, compileAll(`def\s+\w+\s*\(`, `import\s+\w+`, `from\s+\w+\s+import`, `:\s*$`)},
	{LanguageJavaScript, compileAll(`function\s+\w+\s*\(`, `=>\s*\{`, `var\s+\w+`, `let\s+\w+`, `const\s+\w+`)},
	{LanguageJava, compileAll(`public\s+class`, `private\s+\w+`, `public\s+static\s+void\s+main`)},
	{LanguageCPP, compileAll(`#include\s*<`, `int\s+main\s*\(`, `std::`, `cout\s*<<`)},
	{LanguageC, compileAll(`#include\s*<`, `int\s+main\s*\(`, `printf\s*\(`)},
	{LanguageGo, compileAll(`func\s+\w+\s*\(`, `package\s+\w+`, `import\s*\(`)},
	{LanguageRust, compileAll(`fn\s+\w+\s*\(`, `use\s+\w+`, `let\s+mut`)},
	{LanguagePHP, compileAll(`<\?php`, `function\s+\w+\s*\(`, `\$\w+`)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?m)` + e)
	}
	return out
}

// DetectLanguage guesses the language of a snippet. It is a best-effort
// keyword match and falls back to python.
func DetectLanguage(snippet string) Language {
	for _, entry := range languageTable {
		for _, re := range entry.patterns {
			if re.MatchString(snippet) {
				return entry.lang
			}
		}
	}
	return LanguagePython
}

// ResolveLanguage honors an explicit hint and detects from the snippet when
// the hint is empty or "auto-detect".
func ResolveLanguage(hint, snippet string) (Language, error) {
	h := strings.TrimSpace(hint)
	if h == "" || strings.EqualFold(h, AutoDetect) {
		return DetectLanguage(snippet), nil
	}
	lang, ok := ParseLanguage(h)
	if !ok {
		return "", &InputValidationError{Field: "language", Message: "unsupported language " + h}
	}
	return lang, nil
}
