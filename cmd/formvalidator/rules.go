package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

// ruleDoc is the printable form of a FieldRule.
type ruleDoc struct {
	Name         string `json:"name" yaml:"name"`
	Label        string `json:"label" yaml:"label"`
	Required     bool   `json:"required" yaml:"required"`
	MinLength    int    `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength    int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern      string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MatchField   string `json:"matchField,omitempty" yaml:"matchField,omitempty"`
	ErrorMessage string `json:"errorMessage" yaml:"errorMessage"`
}

func ruleDocs(t validator.Table) []ruleDoc {
	docs := make([]ruleDoc, 0, t.Len())
	for _, name := range t.Fields() {
		r, _ := t.Rule(name)
		d := ruleDoc{
			Name:         string(r.Name),
			Label:        validator.FormatFieldName(string(r.Name)),
			Required:     r.Required,
			MinLength:    r.MinLength,
			MaxLength:    r.MaxLength,
			MatchField:   string(r.MatchField),
			ErrorMessage: r.ErrorMessage,
		}
		if s, ok := r.Pattern.(fmt.Stringer); ok {
			d.Pattern = s.String()
		}
		docs = append(docs, d)
	}
	return docs
}

func newRulesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the validation rule table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printRules(cmd.OutOrStdout(), format, validator.Default())
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}

func printRules(w io.Writer, format string, t validator.Table) error {
	docs := ruleDocs(t)

	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	default:
		return fmt.Errorf("unknown format %q: use yaml or json", format)
	}
}
