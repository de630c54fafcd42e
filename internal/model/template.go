package model

import (
	"strings"
	"unicode"
)

const CustomTemplateLabel = "📝 Custom (AI Generate)"

// TemplateOption is one entry of the template selector. The custom option has
// an empty value.
type TemplateOption struct {
	Value string
	Label string
}

func CustomTemplateOption() TemplateOption {
	return TemplateOption{Value: "", Label: CustomTemplateLabel}
}

// TemplateLabel turns a template id into a display label: dashes become
// spaces and the first character of every word is upper-cased.
func TemplateLabel(id string) string {
	var s strings.Builder
	s.Grow(len(id))

	prevWord := false
	for _, r := range strings.ReplaceAll(id, "-", " ") {
		word := r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		s.WriteRune(r)
		prevWord = word
	}
	return s.String()
}

// TemplateOptions prefixes the custom option to the labelled ids.
func TemplateOptions(ids []string) []TemplateOption {
	opts := make([]TemplateOption, 0, len(ids)+1)
	opts = append(opts, CustomTemplateOption())
	for _, id := range ids {
		opts = append(opts, TemplateOption{Value: id, Label: TemplateLabel(id)})
	}
	return opts
}
