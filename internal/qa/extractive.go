package qa

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

var blankLine = regexp.MustCompile(`\n\s*\n`)

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "did": true, "do": true, "does": true, "for": true,
	"from": true, "how": true, "in": true, "is": true, "it": true, "of": true,
	"on": true, "or": true, "that": true, "the": true, "this": true, "to": true,
	"was": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "who": true, "whom": true, "why": true, "with": true,
}

// Extractive answers offline by returning the context sentence that shares
// the most content words with the question. Ties go to the earliest
// sentence; no shared words yields "".
type Extractive struct{}

// NewExtractive returns the offline answerer.
func NewExtractive() *Extractive { return &Extractive{} }

func (e *Extractive) Answer(ctx context.Context, question, passage string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	terms := contentWords(strings.Fields(question))
	if len(terms) == 0 {
		return "", nil
	}

	best, bestScore := "", 0
	for _, para := range blankLine.Split(passage, -1) {
		for _, sentence := range Sentences(para) {
			score := 0
			seen := contentWords(sentence)
			for t := range terms {
				if seen[t] {
					score++
				}
			}
			if score > bestScore {
				best, bestScore = strings.Join(sentence, " "), score
			}
		}
	}
	return best, nil
}

// Sentences splits text into words and groups them into sentences.
func Sentences(text string) [][]string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	starts := FindSentenceStarts(words)
	out := make([][]string, 0, len(starts))
	for i, s := range starts {
		end := len(words)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		out = append(out, words[s:end])
	}
	return out
}

// FindSentenceStarts returns indices of words that start sentences. A word
// ending in '.', '!' or '?' closes its sentence.
func FindSentenceStarts(words []string) []int {
	starts := []int{0}
	for i, word := range words {
		if len(word) > 0 {
			last := word[len(word)-1]
			if last == '.' || last == '!' || last == '?' {
				if i+1 < len(words) {
					starts = append(starts, i+1)
				}
			}
		}
	}
	return starts
}

func contentWords(words []string) map[string]bool {
	out := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		}))
		if w == "" || stopWords[w] {
			continue
		}
		out[w] = true
	}
	return out
}
