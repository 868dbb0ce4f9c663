package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "whats up doc", Normalize("  What's   UP, doc?! "))
	assert.Equal(t, "", Normalize("?!…"))
}

func TestExactMatcher(t *testing.T) {
	var m ExactMatcher

	assert.Equal(t, 1.0, m.Score("hello", "hello"))
	assert.Equal(t, 1.0, m.Score("well hello there", "hello"))
	assert.Equal(t, 0.0, m.Score("i think so", "hi"), "no match inside a word")
	assert.Equal(t, 0.0, m.Score("hello", ""))
}

func TestFuzzyMatcher(t *testing.T) {
	var m FuzzyMatcher

	assert.Equal(t, 1.0, m.Score("hello world", "hello world"))
	assert.Greater(t, m.Score("how do i reset the router", "how do i reset my router"), Threshold)
	assert.Less(t, m.Score("zxqv flibber wobble", "how do i reset my router"), Threshold)
	assert.Greater(t, m.Score("helo world", "hello world"), Threshold, "typo stays above threshold")
}
