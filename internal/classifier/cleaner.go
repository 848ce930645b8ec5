package classifier

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlRe        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	digitRe      = regexp.MustCompile(`\d+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText normalizes raw article text the same way the training pipeline
// did: lowercase, strip URLs, strip digits, strip punctuation, collapse
// whitespace. Tokens produced from the cleaned text line up with the
// vocabulary stored in the model artifact.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = urlRe.ReplaceAllString(text, "")
	text = digitRe.ReplaceAllString(text, "")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

// Tokenize splits cleaned text into vocabulary lookup tokens.
func Tokenize(text string) []string {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil
	}
	return strings.Split(cleaned, " ")
}
