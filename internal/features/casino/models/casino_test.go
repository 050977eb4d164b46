package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureScheme(t *testing.T) {
	assert.Equal(t, "https://casino.example.com", EnsureScheme("casino.example.com"))
	assert.Equal(t, "https://casino.example.com", EnsureScheme("https://casino.example.com"))
	assert.Equal(t, "http://casino.example.com", EnsureScheme("http://casino.example.com"))
	assert.Equal(t, "", EnsureScheme(""))
}

func TestMakeCleanName(t *testing.T) {
	assert.Equal(t, "royal-spins-casino", MakeCleanName("Royal Spins Casino"))
	assert.Equal(t, "casino-777", MakeCleanName("Casino 777!"))
}

func TestPlayURL(t *testing.T) {
	c := &Casino{URL: "casino.example.com/ref/123"}
	assert.Equal(t, "https://casino.example.com/ref/123", c.PlayURL())
}
