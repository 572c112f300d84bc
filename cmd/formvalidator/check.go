package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

// ErrInvalidValues is returned when at least one field fails.
var ErrInvalidValues = errors.New("form values are invalid")

type checkFlags struct {
	file   string
	values map[validator.FieldName]*string
	terms  bool
}

func newCheckCmd() *cobra.Command {
	f := checkFlags{values: map[validator.FieldName]*string{}}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate signup values and print the verdict per field",
		Example: `  formvalidator check --username=abc_123 --email=a@b.co \
    --password='Password1!' --confirm-password='Password1!' --terms
  formvalidator check --file values.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := f.collect(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd, validator.Default(), values)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.file, "file", "", "YAML or JSON file mapping field names to values")
	for _, name := range []validator.FieldName{
		validator.Username,
		validator.Email,
		validator.Password,
		validator.ConfirmPassword,
		validator.Phone,
	} {
		f.values[name] = flags.String(flagName(name), "", validator.FormatFieldName(string(name)))
	}
	flags.BoolVar(&f.terms, flagName(validator.Terms), false, "agree to the terms")
	return cmd
}

// flagName turns a field name into a kebab-case flag: confirmPassword
// becomes confirm-password.
func flagName(name validator.FieldName) string {
	out := make([]rune, 0, len(name)+2)
	for _, r := range string(name) {
		if r >= 'A' && r <= 'Z' {
			out = append(out, '-', r+('a'-'A'))
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// collect merges the file values with the flags set on the command line;
// flags win.
func (f checkFlags) collect(cmd *cobra.Command) (map[validator.FieldName]string, error) {
	values := map[validator.FieldName]string{}

	if f.file != "" {
		raw, err := os.ReadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("read values: %w", err)
		}
		var fromFile map[string]any
		if err := yaml.Unmarshal(raw, &fromFile); err != nil {
			return nil, fmt.Errorf("parse values: %w", err)
		}
		for k, v := range fromFile {
			values[validator.FieldName(k)] = fileValue(v)
		}
	}

	for name, v := range f.values {
		if cmd.Flags().Changed(flagName(name)) {
			values[name] = *v
		}
	}
	if cmd.Flags().Changed(flagName(validator.Terms)) {
		values[validator.Terms] = ""
		if f.terms {
			values[validator.Terms] = "checked"
		}
	}
	return values, nil
}

// fileValue maps a decoded YAML scalar to a field value. A true boolean is
// a checked checkbox.
func fileValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "checked"
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func runCheck(cmd *cobra.Command, rules validator.Table, values map[validator.FieldName]string) error {
	lookup := validator.MapLookup(values)
	out := cmd.OutOrStdout()

	for _, name := range rules.Fields() {
		res := rules.Validate(name, values[name], lookup)
		verdict := "ok"
		if !res.Valid {
			verdict = res.Error
		}
		if _, err := fmt.Fprintf(out, "%-16s %s\n", name+":", verdict); err != nil {
			return err
		}
	}

	if err := rules.ValidateAll(lookup); err != nil {
		return errors.Join(ErrInvalidValues, err)
	}
	return nil
}
