package faq

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  []string
	}{
		{name: "splits whitespace runs", in: "what  are\tyour\nhours", out: []string{"what", "are", "your", "hours"}},
		{name: "keeps punctuation", in: "hours? open!", out: []string{"hours?", "open!"}},
		{name: "whitespace only", in: "   ", out: []string{}},
		{name: "empty", in: "", out: []string{}},
	}

	for _, tc := range cases {
		got := tokenize(normalizeQuery(tc.in))
		if len(got) == 0 && len(tc.out) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.out) {
			t.Fatalf("%s: expected %q got %q", tc.name, tc.out, got)
		}
	}
}

func TestNormalizeQuestion(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "trims whitespace", in: "  Hello World  ", out: "hello world"},
		{name: "collapses inner spaces", in: "What   are your\thours?", out: "what are your hours?"},
	}

	for _, tc := range cases {
		if got := normalizeQuestion(tc.in); got != tc.out {
			t.Fatalf("%s: expected %q got %q", tc.name, tc.out, got)
		}
	}
}
