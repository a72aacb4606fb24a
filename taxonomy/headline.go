package taxonomy

import (
	"strings"

	"github.com/stoewer/go-strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Headline converts a code identifier such as "blog_post", "BlogPost" or
// "blog-post" into space separated title case ("Blog Post").
func Headline(identifier string) string {
	snake := strcase.SnakeCase(strings.TrimSpace(identifier))
	if snake == "" {
		return ""
	}
	words := strings.FieldsFunc(snake, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, word := range words {
		words[i] = titleCaser.String(word)
	}
	return strings.Join(words, " ")
}

// ShortName strips any namespace, package path or pointer marker from a type
// identifier: "App\\Models\\BlogPost", "models.BlogPost" and "*models.BlogPost"
// all yield "BlogPost".
func ShortName(identifier string) string {
	name := strings.TrimSpace(identifier)
	if idx := strings.LastIndexAny(name, `\/.`); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.TrimLeft(name, "*")
}

// TypeLabel is the headline form of a type identifier's short name.
func TypeLabel(identifier string) string {
	return Headline(ShortName(identifier))
}
