// Package analysis compares a document against a playbook: the playbook is
// split into chunks, the chunks most similar to the document are retrieved,
// and an LLM is asked for conflicts, gaps and irrelevant content.
package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SplitText packs sentences greedily into chunks of at most maxWords words.
// A single sentence longer than maxWords becomes its own chunk.
func SplitText(text string, maxWords int) []string {
	var (
		chunks  []string
		current []string
		words   int
	)

	for _, sentence := range Sentences(text) {
		n := len(strings.Fields(sentence))
		if words+n <= maxWords {
			current = append(current, sentence)
			words += n
			continue
		}
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
		}
		current = []string{sentence}
		words = n
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// Sentences splits text into paragraphs at blank lines, then each paragraph
// into sentences with the Punkt English model, so abbreviations such as
// "e.g." or "U.S." do not end a sentence. Whitespace inside a sentence is
// collapsed; empty sentences are dropped.
func Sentences(text string) []string {
	tokenizer := englishTokenizer()

	var out []string
	for _, paragraph := range blankLine.Split(text, -1) {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		for _, sentence := range tokenizer.Tokenize(paragraph) {
			if s := strings.Join(strings.Fields(sentence.Text), " "); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

var blankLine = regexp.MustCompile(`\n[ \t\r]*\n`)

// englishTokenizer loads the embedded Punkt model once.
var englishTokenizer = sync.OnceValue(func() *sentences.DefaultSentenceTokenizer {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		panic(fmt.Sprintf("load english sentence model: %v", err))
	}
	return tokenizer
})
