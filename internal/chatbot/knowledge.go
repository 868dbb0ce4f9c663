package chatbot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

var (
	ErrEmptyPattern  = errors.New("chatbot: pattern cannot be empty")
	ErrEmptyResponse = errors.New("chatbot: response cannot be empty")
)

// Intent is a built-in response category: any pattern appearing in the
// input selects one of its responses.
type Intent struct {
	Name      string
	Patterns  []string
	Responses []string
}

// Knowledge is the learned pattern→response map, persisted as a JSON
// document. Keys are normalized pattern text; growth is append-only.
type Knowledge struct {
	path    string
	Learned map[string]string
}

// LoadKnowledge reads the knowledge file, starting empty when it does not
// exist yet.
func LoadKnowledge(path string) (*Knowledge, error) {
	k := &Knowledge{path: path, Learned: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return k, nil
		}
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}
	if err := json.Unmarshal(data, &k.Learned); err != nil {
		return nil, fmt.Errorf("parse knowledge file: %w", err)
	}
	return k, nil
}

// Learn stores a new pattern→response pair and saves the document
// atomically. Both sides must be non-empty after normalization.
func (k *Knowledge) Learn(pattern, response string) error {
	key := Normalize(pattern)
	if key == "" {
		return ErrEmptyPattern
	}
	if Normalize(response) == "" {
		return ErrEmptyResponse
	}

	k.Learned[key] = response
	return k.save()
}

func (k *Knowledge) Count() int {
	return len(k.Learned)
}

func (k *Knowledge) save() error {
	data, err := json.MarshalIndent(k.Learned, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal knowledge: %w", err)
	}
	if err := atomic.WriteFile(k.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save knowledge: %w", err)
	}
	return nil
}

func builtinIntents() []Intent {
	return []Intent{
		{
			Name:     "greeting",
			Patterns: []string{"hello", "hi", "hey", "greetings", "good morning", "good evening"},
			Responses: []string{
				"Hello! How can I help you today?",
				"Hi there! What's on your mind?",
				"Hey! Nice to meet you!",
			},
		},
		{
			Name:     "farewell",
			Patterns: []string{"bye", "goodbye", "see you", "farewell"},
			Responses: []string{
				"Goodbye! Have a great day!",
				"See you later! Take care!",
				"Bye! Come back soon!",
			},
		},
		{
			Name:     "bot_name",
			Patterns: []string{"what is your name", "who are you", "your name"},
			Responses: []string{
				"I'm a friendly chatbot created to assist you!",
				"You can call me ChatBot! I'm here to help.",
			},
		},
		{
			Name:     "user_name",
			Patterns: []string{"my name is", "call me", "this is"},
			Responses: []string{
				"Nice to meet you, {name}!",
				"Hello {name}! Great to know your name!",
			},
		},
		{
			Name:     "how_are_you",
			Patterns: []string{"how are you", "how do you do", "how are things", "whats up"},
			Responses: []string{
				"I'm doing great, thanks for asking! How about you?",
				"All systems running smoothly! What brings you here?",
			},
		},
		{
			Name:     "thanks",
			Patterns: []string{"thank", "thanks", "appreciate", "grateful"},
			Responses: []string{
				"You're welcome!",
				"Happy to help!",
				"Anytime! That's what I'm here for!",
			},
		},
		{
			Name:     "help",
			Patterns: []string{"help", "what can you do", "commands", "capabilities"},
			Responses: []string{
				"I can chat, answer simple questions and learn from you. Type 'learn' to teach me something new, 'stats' for statistics.",
			},
		},
		{
			Name:     "weather",
			Patterns: []string{"weather", "temperature", "forecast", "raining", "sunny"},
			Responses: []string{
				"I don't have real-time weather data, but I hope it's nice where you are!",
				"I can't check the weather, maybe try a weather app?",
			},
		},
		{
			Name:      "time",
			Patterns:  []string{"what time", "current time", "clock"},
			Responses: nil, // rendered live
		},
		{
			Name:      "date",
			Patterns:  []string{"what date", "todays date", "what day is it"},
			Responses: nil, // rendered live
		},
		{
			Name:     "joke",
			Patterns: []string{"joke", "funny", "laugh", "humor"},
			Responses: []string{
				"Why don't programmers like nature? It has too many bugs!",
				"What's a programmer's favorite hangout place? The Foo Bar!",
				"How many programmers does it take to change a light bulb? None, that's a hardware problem!",
			},
		},
		{
			Name:     "compliment",
			Patterns: []string{"you are good", "you are smart", "you are awesome"},
			Responses: []string{
				"Thank you! You're pretty awesome yourself!",
				"That's so kind of you to say!",
			},
		},
		{
			Name:     "age",
			Patterns: []string{"how old", "your age", "when were you born"},
			Responses: []string{
				"I'm ageless! Just lines of code running eternally.",
				"Age is just a number, and I don't really have one!",
			},
		},
	}
}
