package utils

import (
	"reflect"
	"testing"
)

func TestExtractHashtags(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{"none", "just a plain tweet", nil},
		{"single", "shipping #golang today", []string{"golang"}},
		{"lowercased", "loving #GoLang and #GOLANG", []string{"golang"}},
		{"duplicates", "#go #go #go", []string{"go"}},
		{"order of first appearance", "#beta then #alpha then #beta", []string{"beta", "alpha"}},
		{"trailing punctuation", "try #golang, or #rust!", []string{"golang", "rust"}},
		{"bare hash ignored", "this # is not a tag", nil},
		{"underscore and digits kept", "#go_1_2 works", []string{"go_1_2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractHashtags(tc.content)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExtractHashtags(%q) = %v, want %v", tc.content, got, tc.want)
			}
		})
	}
}
