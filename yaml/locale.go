// Package yaml loads humanizer wording from YAML locale files.
//
// A locale file overrides any subset of the English defaults:
//
//	prefix_ago: ""
//	suffix_ago: "ago"
//	minutes:
//	  "1": "%d minute"
//	  other: "%d minutes"
//	numbers: ["zero", "one", "two"]
//	word_separator: ""
//
// A bucket's wording is either a string or a mapping from counts to strings
// with an "other" fallback.
package yaml

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fwojciec/docpage"
	"gopkg.in/yaml.v3"
)

// file mirrors the locale document. Pointer fields distinguish absent keys
// from empty strings.
type file struct {
	PrefixAgo     *string `yaml:"prefix_ago"`
	PrefixFromNow *string `yaml:"prefix_from_now"`
	SuffixAgo     *string `yaml:"suffix_ago"`
	SuffixFromNow *string `yaml:"suffix_from_now"`

	Seconds *template `yaml:"seconds"`
	Minute  *template `yaml:"minute"`
	Minutes *template `yaml:"minutes"`
	Hour    *template `yaml:"hour"`
	Hours   *template `yaml:"hours"`
	Day     *template `yaml:"day"`
	Days    *template `yaml:"days"`
	Month   *template `yaml:"month"`
	Months  *template `yaml:"months"`
	Year    *template `yaml:"year"`
	Years   *template `yaml:"years"`

	Numbers       []string `yaml:"numbers"`
	WordSeparator *string  `yaml:"word_separator"`
}

// template is a bucket's wording: one string, or strings keyed by count.
type template struct {
	forms map[string]string
}

func (t *template) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		t.forms = map[string]string{"other": s}
		return nil
	case yaml.MappingNode:
		forms := make(map[string]string)
		if err := node.Decode(&forms); err != nil {
			return err
		}
		if _, ok := forms["other"]; !ok {
			return fmt.Errorf("line %d: plural forms need an \"other\" entry", node.Line)
		}
		t.forms = forms
		return nil
	}
	return fmt.Errorf("line %d: wording must be a string or a mapping", node.Line)
}

func (t *template) compile() docpage.Template {
	if len(t.forms) == 1 {
		return docpage.Literal(t.forms["other"])
	}
	forms := t.forms
	return func(n int, _ int64) string {
		if s, ok := forms[strconv.Itoa(n)]; ok {
			return s
		}
		return forms["other"]
	}
}

// LoadStrings reads a locale file and applies it over docpage.DefaultStrings.
func LoadStrings(path string) (docpage.Strings, error) {
	f, err := os.Open(path)
	if err != nil {
		return docpage.Strings{}, fmt.Errorf("open locale: %w", err)
	}
	defer f.Close()
	return DecodeStrings(f)
}

// DecodeStrings reads a locale document from r and applies it over
// docpage.DefaultStrings. An empty document yields the defaults.
func DecodeStrings(r io.Reader) (docpage.Strings, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return docpage.Strings{}, docpage.Errorf(docpage.EINVALID, "invalid locale: %v", err)
	}

	s := docpage.DefaultStrings()
	setString(&s.PrefixAgo, doc.PrefixAgo)
	setString(&s.PrefixFromNow, doc.PrefixFromNow)
	setString(&s.SuffixAgo, doc.SuffixAgo)
	setString(&s.SuffixFromNow, doc.SuffixFromNow)

	setTemplate(&s.Seconds, doc.Seconds)
	setTemplate(&s.Minute, doc.Minute)
	setTemplate(&s.Minutes, doc.Minutes)
	setTemplate(&s.Hour, doc.Hour)
	setTemplate(&s.Hours, doc.Hours)
	setTemplate(&s.Day, doc.Day)
	setTemplate(&s.Days, doc.Days)
	setTemplate(&s.Month, doc.Month)
	setTemplate(&s.Months, doc.Months)
	setTemplate(&s.Year, doc.Year)
	setTemplate(&s.Years, doc.Years)

	if doc.Numbers != nil {
		s.Numbers = doc.Numbers
	}
	s.WordSeparator = doc.WordSeparator
	return s, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setTemplate(dst *docpage.Template, t *template) {
	if t != nil {
		*dst = t.compile()
	}
}
