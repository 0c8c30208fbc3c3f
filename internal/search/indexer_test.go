package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		body string
		want []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"one  two\tthree", []string{"one", "two", "three"}},
		{"it's 2024", []string{"it", "s", "2024"}},
		{"", nil},
		{"!!!", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tokenize(tt.body), "body %q", tt.body)
	}
}
