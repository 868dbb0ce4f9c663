// Package chatbot implements a rule and pattern matching chatbot with a
// persisted, append-only knowledge base.
package chatbot

import (
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"
	"time"
)

var fallbackResponses = []string{
	"That's interesting! Tell me more.",
	"I'm not sure I understand. Can you rephrase?",
	"That's a new one for me! Type 'learn' if you want to teach me.",
	"I don't have a good answer for that yet, but I'm always learning!",
}

var nameRegexps = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmy name is (\w+)`),
	regexp.MustCompile(`(?i)\bcall me (\w+)`),
	regexp.MustCompile(`(?i)\bi am (\w+)`),
	regexp.MustCompile(`(?i)\bi'm (\w+)`),
	regexp.MustCompile(`(?i)\bthis is (\w+)`),
}

// Bot holds the session state explicitly: no package-level mutable state.
type Bot struct {
	know    *Knowledge
	intents []Intent
	exact   ExactMatcher
	fuzzy   FuzzyMatcher

	UserName     string
	Turns        int
	intentCounts map[string]int
	fallbackIdx  int
}

func New(know *Knowledge) *Bot {
	return &Bot{
		know:         know,
		intents:      builtinIntents(),
		intentCounts: map[string]int{},
	}
}

// Respond produces a reply for one input line. Unmatched input is never an
// error: it falls through to a rotating default response.
func (b *Bot) Respond(input string) string {
	b.Turns++

	if name := extractName(input); name != "" {
		b.UserName = name
	}

	norm := Normalize(input)

	// Learned patterns win over built-ins: exact lookup first.
	if resp, ok := b.know.Learned[norm]; ok {
		b.intentCounts["learned"]++
		return resp
	}

	for _, intent := range b.intents {
		for _, p := range intent.Patterns {
			if b.exact.Score(norm, Normalize(p)) >= 1 {
				b.intentCounts[intent.Name]++
				return b.render(intent)
			}
		}
	}

	if resp, ok := b.fuzzyMatch(norm); ok {
		return resp
	}

	b.intentCounts["unknown"]++
	resp := fallbackResponses[b.fallbackIdx%len(fallbackResponses)]
	b.fallbackIdx++
	return resp
}

// fuzzyMatch picks the best-scoring pattern across learned pairs and
// built-in intents, accepting it only above the fixed threshold.
func (b *Bot) fuzzyMatch(norm string) (string, bool) {
	bestScore := 0.0
	var bestResp string
	bestName := ""
	var bestIntent *Intent

	for pattern, resp := range b.know.Learned {
		if s := b.fuzzy.Score(norm, pattern); s > bestScore {
			bestScore, bestResp, bestName, bestIntent = s, resp, "learned", nil
		}
	}
	for i := range b.intents {
		for _, p := range b.intents[i].Patterns {
			if s := b.fuzzy.Score(norm, Normalize(p)); s > bestScore {
				bestScore, bestName, bestIntent = s, b.intents[i].Name, &b.intents[i]
			}
		}
	}

	if bestScore < Threshold {
		return "", false
	}
	b.intentCounts[bestName]++
	if bestIntent != nil {
		return b.render(*bestIntent), true
	}
	return bestResp, true
}

func (b *Bot) render(intent Intent) string {
	// Time and date are rendered live, not from the stored table.
	switch intent.Name {
	case "time":
		return "The current time is " + time.Now().Format("3:04 PM")
	case "date":
		return "Today is " + time.Now().Format("Monday, January 2, 2006")
	}

	resp := intent.Responses[rand.IntN(len(intent.Responses))]
	if strings.Contains(resp, "{name}") {
		name := b.UserName
		if name == "" {
			name = "friend"
		}
		resp = strings.ReplaceAll(resp, "{name}", name)
	}
	return resp
}

type IntentCount struct {
	Name string
	N    int
}

type Stats struct {
	Turns           int
	LearnedPatterns int
	TopIntents      []IntentCount
}

func (b *Bot) Stats() Stats {
	counts := make([]IntentCount, 0, len(b.intentCounts))
	for name, n := range b.intentCounts {
		counts = append(counts, IntentCount{Name: name, N: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Name < counts[j].Name
	})
	if len(counts) > 5 {
		counts = counts[:5]
	}
	return Stats{
		Turns:           b.Turns,
		LearnedPatterns: b.know.Count(),
		TopIntents:      counts,
	}
}

func extractName(input string) string {
	for _, re := range nameRegexps {
		if m := re.FindStringSubmatch(input); m != nil {
			name := strings.ToLower(m[1])
			return strings.ToUpper(name[:1]) + name[1:]
		}
	}
	return ""
}
