package chatbot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	know, err := LoadKnowledge(filepath.Join(t.TempDir(), "knowledge.json"))
	require.NoError(t, err)
	return New(know)
}

func TestRespond_LearnedExactMatch(t *testing.T) {
	b := newTestBot(t)
	require.NoError(t, b.know.Learn("what is the meaning of life", "42, obviously."))

	assert.Equal(t, "42, obviously.", b.Respond("what is the meaning of life"))
	// Normalization makes punctuation and case irrelevant.
	assert.Equal(t, "42, obviously.", b.Respond("What is the MEANING of life???"))
}

func TestRespond_BuiltinIntent(t *testing.T) {
	b := newTestBot(t)

	resp := b.Respond("hello")

	greeting := builtinIntents()[0]
	require.Equal(t, "greeting", greeting.Name)
	assert.Contains(t, greeting.Responses, resp)
}

func TestRespond_FuzzyNearMiss(t *testing.T) {
	b := newTestBot(t)
	require.NoError(t, b.know.Learn("how do i reset my router", "Hold the button for ten seconds."))

	// One word swapped: above the threshold, returns the learned response.
	assert.Equal(t, "Hold the button for ten seconds.",
		b.Respond("how do i reset the router"))
}

func TestRespond_DissimilarFallsBack(t *testing.T) {
	b := newTestBot(t)
	require.NoError(t, b.know.Learn("how do i reset my router", "Hold the button for ten seconds."))

	resp := b.Respond("zxqv flibber wobble")

	assert.Contains(t, fallbackResponses, resp)
}

func TestRespond_NameCapture(t *testing.T) {
	b := newTestBot(t)

	resp := b.Respond("my name is alice")

	assert.Equal(t, "Alice", b.UserName)
	assert.Contains(t, resp, "Alice")
}

func TestRespond_TimeAndDateAreLive(t *testing.T) {
	b := newTestBot(t)

	assert.Contains(t, b.Respond("what time is it"), "The current time is")
	assert.Contains(t, b.Respond("what date is it today"), "Today is")
}

func TestStats(t *testing.T) {
	b := newTestBot(t)
	require.NoError(t, b.know.Learn("ping", "pong"))

	b.Respond("hello")
	b.Respond("ping")
	b.Respond("zxqv flibber")

	s := b.Stats()
	assert.Equal(t, 3, s.Turns)
	assert.Equal(t, 1, s.LearnedPatterns)
	assert.NotEmpty(t, s.TopIntents)
}

func TestLearn_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.json")
	know, err := LoadKnowledge(path)
	require.NoError(t, err)
	require.NoError(t, know.Learn("Favourite Colour?", "Blue."))

	reloaded, err := LoadKnowledge(path)
	require.NoError(t, err)

	assert.Equal(t, 1, reloaded.Count())
	assert.Equal(t, "Blue.", New(reloaded).Respond("favourite colour"))
}

func TestLearn_RejectsEmpty(t *testing.T) {
	know, err := LoadKnowledge(filepath.Join(t.TempDir(), "knowledge.json"))
	require.NoError(t, err)

	assert.ErrorIs(t, know.Learn("   !!! ", "something"), ErrEmptyPattern)
	assert.ErrorIs(t, know.Learn("a pattern", " ?! "), ErrEmptyResponse)
}
