// Package render prepares post content for the public detail view.
package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const wordsPerMinute = 200

// Raw HTML in post bodies is dropped; goldmark does not render it without
// the unsafe option.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

func HTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("error rendering content: %w", err)
	}
	return buf.String(), nil
}

// ReadingTime estimates minutes to read content, never less than one.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Keywords splits a comma-separated keyword string, dropping blanks.
func Keywords(seoKeywords string) []string {
	keywords := []string{}
	for _, k := range strings.Split(seoKeywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
