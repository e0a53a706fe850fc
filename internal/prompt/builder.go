// Package prompt embeds user input into the instruction templates of the
// assistant tasks. Input is interpolated verbatim: templates are rendered
// with text/template and nothing is escaped.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Templates holds the raw template sources, keyed as in templates.yaml.
type Templates struct {
	Translate      string `yaml:"translate"`
	CorrectGrammar string `yaml:"correct_grammar"`
	DefineWord     string `yaml:"define_word"`
}

// Builder renders task prompts. It is safe for concurrent use.
type Builder struct {
	translate      *template.Template
	correctGrammar *template.Template
	defineWord     *template.Template
}

type params struct {
	Input string
}

// New returns a Builder using the embedded templates.
func New() (*Builder, error) {
	t, err := parseTemplates(defaultTemplates)
	if err != nil {
		return nil, fmt.Errorf("prompt: embedded templates: %w", err)
	}
	return compile(t)
}

// LoadFrom returns a Builder whose templates are read from a YAML file.
// Keys missing from the file keep their embedded defaults.
func LoadFrom(path string) (*Builder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prompt: read %s: %w", path, err)
	}

	base, err := parseTemplates(defaultTemplates)
	if err != nil {
		return nil, fmt.Errorf("prompt: embedded templates: %w", err)
	}
	override, err := parseTemplates(data)
	if err != nil {
		return nil, fmt.Errorf("prompt: parse %s: %w", path, err)
	}

	if override.Translate != "" {
		base.Translate = override.Translate
	}
	if override.CorrectGrammar != "" {
		base.CorrectGrammar = override.CorrectGrammar
	}
	if override.DefineWord != "" {
		base.DefineWord = override.DefineWord
	}
	return compile(base)
}

// Translate builds the Vietnamese to English translation prompt.
func (b *Builder) Translate(text string) (string, error) {
	return render(b.translate, text)
}

// CorrectGrammar builds the English grammar correction prompt.
func (b *Builder) CorrectGrammar(text string) (string, error) {
	return render(b.correctGrammar, text)
}

// DefineWord builds the word-meaning prompt. The resulting markdown is
// expected to carry the uk-audio, us-audio, pronunciation and example
// placeholder markers.
func (b *Builder) DefineWord(word string) (string, error) {
	return render(b.defineWord, word)
}

func parseTemplates(data []byte) (Templates, error) {
	var t Templates
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Templates{}, err
	}
	return t, nil
}

func compile(t Templates) (*Builder, error) {
	translate, err := parse("translate", t.Translate)
	if err != nil {
		return nil, err
	}
	correctGrammar, err := parse("correct_grammar", t.CorrectGrammar)
	if err != nil {
		return nil, err
	}
	defineWord, err := parse("define_word", t.DefineWord)
	if err != nil {
		return nil, err
	}
	return &Builder{
		translate:      translate,
		correctGrammar: correctGrammar,
		defineWord:     defineWord,
	}, nil
}

func parse(name, src string) (*template.Template, error) {
	if src == "" {
		return nil, fmt.Errorf("prompt: template %q is empty", name)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("prompt: parse template %q: %w", name, err)
	}
	return tmpl, nil
}

func render(t *template.Template, input string) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, params{Input: input}); err != nil {
		return "", fmt.Errorf("prompt: execute %q: %w", t.Name(), err)
	}
	return buf.String(), nil
}
