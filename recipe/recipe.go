package recipe

import (
	"github.com/kbukum/xgen/validation"
)

// Source kinds.
const (
	SourceRange  = "range"
	SourceValues = "values"
	SourceCount  = "count"
	SourceRepeat = "repeat"
)

// Terminal names.
const (
	TerminalCollect = "collect"
	TerminalSum     = "sum"
	TerminalCount   = "count"
	TerminalMin     = "min"
	TerminalMax     = "max"
	TerminalFirst   = "first"
	TerminalPrint   = "print"
)

// Source describes where elements come from.
//
//	range:  Start, Start+Step, ... excluding End
//	values: Values in order
//	count:  Start, Start+Step, ... without end
//	repeat: Value, Times times, or forever when Times is 0
type Source struct {
	Kind   string `yaml:"kind" mapstructure:"kind" validate:"required,oneof=range values count repeat"`
	Start  int    `yaml:"start" mapstructure:"start"`
	End    int    `yaml:"end" mapstructure:"end"`
	Step   int    `yaml:"step" mapstructure:"step"`
	Values []int  `yaml:"values" mapstructure:"values"`
	Value  int    `yaml:"value" mapstructure:"value"`
	Times  int    `yaml:"times" mapstructure:"times" validate:"gte=0"`
}

// StageSpec names a registered stage. Arg parameterizes factory stages
// such as take and skip.
type StageSpec struct {
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
	Arg  int    `yaml:"arg" mapstructure:"arg"`
}

// Recipe is a complete pipeline document.
type Recipe struct {
	Name     string      `yaml:"name" mapstructure:"name" validate:"required"`
	Source   Source      `yaml:"source" mapstructure:"source"`
	Stages   []StageSpec `yaml:"stages" mapstructure:"stages" validate:"dive"`
	Terminal string      `yaml:"terminal" mapstructure:"terminal" validate:"required,oneof=collect sum count min max first print"`
	// Limit caps the number of elements reaching the terminal; 0 means no cap.
	Limit int `yaml:"limit" mapstructure:"limit" validate:"gte=0"`
}

// ApplyDefaults fills in a unit step for range and count sources.
func (r *Recipe) ApplyDefaults() {
	if r.Source.Step == 0 && (r.Source.Kind == SourceRange || r.Source.Kind == SourceCount) {
		r.Source.Step = 1
	}
	if r.Terminal == "" {
		r.Terminal = TerminalCollect
	}
}

// Validate checks struct tags and the rules that depend on the source kind.
func (r *Recipe) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	v := validation.New()
	src := v.Nested("source")
	switch r.Source.Kind {
	case SourceRange, SourceCount:
		src.NonZero("step", r.Source.Step)
	case SourceValues:
		src.Custom(len(r.Source.Values) > 0, "values", "must not be empty")
	}
	return v.Error()
}

// Unbounded reports whether the source has no end of its own.
func (s Source) Unbounded() bool {
	return s.Kind == SourceCount || (s.Kind == SourceRepeat && s.Times == 0)
}

// Completing reports whether the terminal needs every element. Such
// terminals cannot run on an unbounded pipeline.
func Completing(terminal string) bool {
	return terminal != TerminalFirst
}
