package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactEmail(t *testing.T) {
	out := Redact("contact me at jane.doe+test@example.co.uk please")
	assert.Equal(t, "contact me at [EMAIL] please", out)
	assert.NotContains(t, out, "@")
}

func TestRedactPhone(t *testing.T) {
	out := Redact("call +1 (555) 123-4567 tomorrow")
	assert.Equal(t, "call [PHONE] tomorrow", out)

	// short digit runs (money) stay intact
	assert.Equal(t, "item costs 1234.56 total", Redact("item costs 1234.56 total"))
}

func TestRedactNames(t *testing.T) {
	assert.Equal(t, "a gift for [NAME]", Redact("a gift for Dr. Jane Doe"))
	assert.Equal(t, "my name is [NAME] and I need advice", Redact("my name is John Smith and I need advice"))
	assert.Equal(t, "I'm [NAME], hello", Redact("I'm Alice, hello"))
}

func TestRedactLocation(t *testing.T) {
	assert.Equal(t, "flights to visit family in [LOCATION]", Redact("flights to visit family in New York"))

	// months after "in" are not locations
	assert.Equal(t, "renewing in September maybe", Redact("renewing in September maybe"))
}

func TestRedactIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text with no pii at all",
		"my name is Bob Jones, email bob@x.io, phone +55 11 98765-4321, I live in Lisbon",
		"already [NAME] with [EMAIL] in [LOCATION] and [PHONE]",
	}
	for _, in := range inputs {
		once := Redact(in)
		twice := Redact(once)
		require.Equal(t, once, twice, "input %q", in)
	}
}

func TestRedactNeverPanicsOnWeirdInput(t *testing.T) {
	for _, in := range []string{"", " ", "\x00\xff", "@@@", "((((", "5"} {
		assert.NotPanics(t, func() { Redact(in) })
	}
}
