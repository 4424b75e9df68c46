package template

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// Template is a named, localized subject and HTML body pair. Placeholder
// tokens of the form {{name}} are substituted verbatim by Render.
type Template struct {
	Name     string `bson:"name" json:"name"`
	Lang     string `bson:"lang" json:"lang"`
	Subject  string `bson:"subject" json:"subject"`
	BodyHTML string `bson:"body_html" json:"body_html"`
}

// Render substitutes every {{key}} occurrence in the subject and body with
// the corresponding value. Replacement is a global string replace with no
// escaping and no localization beyond the template's language.
func (t Template) Render(vars map[string]string) (subject, body string) {
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	r := strings.NewReplacer(pairs...)
	return r.Replace(t.Subject), r.Replace(t.BodyHTML)
}

// Resolver looks up a notification template by logical name and language.
// A nil template with a nil error means no template exists; callers degrade
// by skipping the email.
type Resolver interface {
	Resolve(ctx context.Context, name, lang string) (*Template, error)
}

// NormalizeLang canonicalizes a language code to its base form ("en-US"
// becomes "en"). Unparseable codes are returned unchanged so a lookup still
// has a chance to match a literally stored value.
func NormalizeLang(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	base, _ := tag.Base()
	return base.String()
}
