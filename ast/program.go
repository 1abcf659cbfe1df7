package ast

// Program is the root of the tree: an ordered list of top-level
// function definitions.
type Program struct {
	Functions []*Function
}

// FindFunction returns the function named name, or nil if none
// exists. Declaration order matters only for codegen layout; lookup
// is unordered.
func (p *Program) FindFunction(name string) *Function {
	for _, fn := range p.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}
