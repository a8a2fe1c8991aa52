package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"crlf", "line one\r\nline two\rline three", "line one\nline two\nline three"},
		{"space runs", "too   many    spaces", "too many spaces"},
		{"newline runs", "para one\n\n\n\n\npara two", "para one\n\npara two"},
		{"double newline kept", "para one\n\npara two", "para one\n\npara two"},
		{"trim", "  padded  ", "padded"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Preprocess(tc.in))
		})
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"basic", "Hello world. How are you? Great!", []string{"Hello world.", "How are you?", "Great!"}},
		{"no terminator", "just a fragment", []string{"just a fragment"}},
		{"single", "One sentence.", []string{"One sentence."}},
		{"repeat terminators", "Wow!! Really? Yes.", []string{"Wow!!", "Really?", "Yes."}},
		{"wide gaps", "First.   Second.", []string{"First.", "Second."}},
		{"naive abbreviation split", "Dr. Smith arrived.", []string{"Dr.", "Smith arrived."}},
		{"newline separator", "First.\nSecond.", []string{"First.", "Second."}},
		{"terminator without space", "v1.2 is out", []string{"v1.2 is out"}},
		{"empty", "", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sentences(tc.in))
		})
	}
}
