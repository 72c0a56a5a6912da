package convert

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults for Options fields that the CLI leaves unset.
const (
	DefaultOutput  = "bed12_out.bed"
	DefaultNameCol = "name"
	DefaultDelim   = ","
)

// Options configures one conversion. The mapstructure tags are the config
// keys the CLI reads through viper.
type Options struct {
	Input     string `mapstructure:"input" validate:"required"`
	Output    string `mapstructure:"output" validate:"required"`
	NameCol   string `mapstructure:"name_col" validate:"required"`
	Delim     string `mapstructure:"delim" validate:"len=1"`
	PlusMinus bool   `mapstructure:"plus_minus"`
	Sort      bool   `mapstructure:"sort"`
	Feature   string `mapstructure:"feature"`
	DBPath    string `mapstructure:"db"`
}

// DefaultOptions returns options with the documented defaults.
func DefaultOptions() Options {
	return Options{
		Output:  DefaultOutput,
		NameCol: DefaultNameCol,
		Delim:   DefaultDelim,
	}
}

// Validate normalizes the delimiter and checks required fields.
func (o *Options) Validate() error {
	o.Delim = unescapeDelim(o.Delim)

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Use config key names in error messages
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate options: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("key=%q, value=%q, failed %q validation", e.Field(), fmt.Sprint(e.Value()), e.ActualTag()))
	}
	return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
}

// Delimiter returns the delimiter rune. Validate must have succeeded.
func (o *Options) Delimiter() rune {
	for _, r := range o.Delim {
		return r
	}
	return ','
}

// unescapeDelim accepts the spellings a shell user types for a tab.
func unescapeDelim(d string) string {
	switch strings.ToLower(d) {
	case `\t`, "tab":
		return "\t"
	}
	return d
}
