package ast

import "testing"

func TestProgramFindFunction(t *testing.T) {
	main := &Function{Name: "main"}
	helper := &Function{Name: "helper"}
	p := &Program{Functions: []*Function{main, helper}}

	if got := p.FindFunction("helper"); got != helper {
		t.Errorf("FindFunction(helper) = %v, want %v", got, helper)
	}
	if got := p.FindFunction("missing"); got != nil {
		t.Errorf("FindFunction(missing) = %v, want nil", got)
	}
}
