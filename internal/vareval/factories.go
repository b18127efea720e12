package vareval

import (
	"fmt"

	"github.com/declbuild/forge/internal/diag"
	"github.com/declbuild/forge/internal/rule"
	"github.com/declbuild/forge/internal/value"
)

// makeConfig requires dictionary shape {compiler: String, default_rule:
// String}; compilation_flags/link_flags are optional lists of strings
// (spec §4.F "Factories").
func makeConfig(id string, v value.Value) (rule.Config, error) {
	d, err := v.AsDictionary()
	if err != nil {
		return rule.Config{}, err
	}
	if err := d.AssertContains([]value.FieldAssertion{
		{Field: "compiler", Expected: value.TypeString},
		{Field: "default_rule", Expected: value.TypeString},
	}); err != nil {
		return rule.Config{}, err
	}
	compiler, _ := mustGet(d, "compiler").AsString()
	defaultRule, _ := mustGet(d, "default_rule").AsString()

	cfg := rule.Config{Name: id, Compiler: compiler, DefaultRule: defaultRule}

	if flagsVal, ok := d.Get("compilation_flags"); ok {
		flags, err := strList(flagsVal)
		if err != nil {
			return rule.Config{}, err
		}
		cfg.CompilationFlags = flags
	}
	if flagsVal, ok := d.Get("link_flags"); ok {
		flags, err := strList(flagsVal)
		if err != nil {
			return rule.Config{}, err
		}
		cfg.LinkFlags = flags
	}
	return cfg, nil
}

func mustGet(d *value.Dictionary, key string) value.Value {
	v, _ := d.Get(key)
	return v
}

func resolveStep(v value.Value) (rule.Step, error) {
	enum, err := v.AsScopedEnum()
	if err != nil {
		return 0, err
	}
	if enum.Scope != "Step" {
		return 0, diag.New(diag.Value, fmt.Sprintf("unknown step scope '%s'", enum.Scope))
	}
	switch enum.Name {
	case "COMPILE":
		return rule.Compile, nil
	case "LINK":
		return rule.Link, nil
	default:
		return 0, diag.New(diag.Value, fmt.Sprintf("unknown step '%s::%s'", enum.Scope, enum.Name))
	}
}

// makeSingleRule requires {deps: List, step: ScopedEnum}.
func makeSingleRule(id string, v value.Value, loc diag.Location) (rule.Rule, error) {
	d, err := v.AsDictionary()
	if err != nil {
		return nil, err
	}
	if err := d.AssertContains([]value.FieldAssertion{
		{Field: "deps", Expected: value.TypeList},
		{Field: "step", Expected: value.TypeScopedEnum},
	}); err != nil {
		return nil, err
	}
	deps, err := strList(mustGet(d, "deps"))
	if err != nil {
		return nil, err
	}
	step, err := resolveStep(mustGet(d, "step"))
	if err != nil {
		return nil, err
	}
	return rule.NewSingleRule(id, deps, step, loc), nil
}

// makeMultiRule additionally requires output: List with |deps| ==
// |output|.
func makeMultiRule(id string, v value.Value, loc diag.Location) (rule.Rule, error) {
	d, err := v.AsDictionary()
	if err != nil {
		return nil, err
	}
	if err := d.AssertContains([]value.FieldAssertion{
		{Field: "deps", Expected: value.TypeList},
		{Field: "output", Expected: value.TypeList},
		{Field: "step", Expected: value.TypeScopedEnum},
	}); err != nil {
		return nil, err
	}
	deps, err := strList(mustGet(d, "deps"))
	if err != nil {
		return nil, err
	}
	outputs, err := strList(mustGet(d, "output"))
	if err != nil {
		return nil, err
	}
	if len(deps) != len(outputs) {
		return nil, diag.New(diag.Value, fmt.Sprintf(
			"MultiRule '%s': deps and output must have the same length (got %d and %d)", id, len(deps), len(outputs)))
	}
	step, err := resolveStep(mustGet(d, "step"))
	if err != nil {
		return nil, err
	}
	return rule.NewMultiRule(id, deps, outputs, step, loc), nil
}

// makeCleanRule requires {targets: List}; targets is stored as the
// rule's deps.
func makeCleanRule(id string, v value.Value, loc diag.Location) (rule.Rule, error) {
	d, err := v.AsDictionary()
	if err != nil {
		return nil, err
	}
	if err := d.AssertContains([]value.FieldAssertion{
		{Field: "targets", Expected: value.TypeList},
	}); err != nil {
		return nil, err
	}
	targets, err := strList(mustGet(d, "targets"))
	if err != nil {
		return nil, err
	}
	return rule.NewCleanRule(id, targets, loc), nil
}
