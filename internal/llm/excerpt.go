package llm

import (
	"strings"
	"unicode"
)

// MaxPostTokens bounds how much of a single post goes into a prompt.
const MaxPostTokens = 300

// EstimateTokens estimates the number of tokens in text at roughly four
// bytes per token.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// Excerpt returns the leading whole sentences of text that fit in
// maxTokens. When even the first sentence is too long it is cut at a word
// boundary and marked with "...". Text that already fits is returned
// trimmed but otherwise unchanged.
func Excerpt(text string, maxTokens int) string {
	text = strings.TrimSpace(text)
	if maxTokens <= 0 || EstimateTokens(text) <= maxTokens {
		return text
	}

	var b strings.Builder
	used := 0
	for _, s := range splitSentences(text) {
		n := EstimateTokens(s)
		if used+n > maxTokens {
			break
		}
		b.WriteString(s)
		used += n
	}
	if b.Len() > 0 {
		return strings.TrimSpace(b.String())
	}
	return cutWords(text, maxTokens*4) + "..."
}

// cutWords returns the longest prefix of text within limit bytes that ends
// on a word boundary, or a hard cut on a rune boundary when there is none.
func cutWords(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	if i := strings.LastIndexFunc(text[:cut], unicode.IsSpace); i > 0 {
		cut = i
	}
	return strings.TrimSpace(text[:cut])
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// splitSentences splits text after '.', '!' or '?' followed by whitespace
// and an uppercase letter. Terminators and trailing spaces stay with their
// sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	runes := []rune(text)

	flush := func() {
		if s := current.String(); strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 == len(runes) {
			flush()
			continue
		}
		if !unicode.IsSpace(runes[i+1]) {
			continue
		}
		current.WriteRune(runes[i+1])
		i++
		if i+1 == len(runes) || unicode.IsUpper(runes[i+1]) {
			flush()
		}
	}
	flush()
	return sentences
}
