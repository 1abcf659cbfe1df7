package codegen

import "runtime"

// mangle renders a function name the way this host's assembler
// expects to see it at a label or call site: macOS's assembler wants
// a leading underscore, ELF targets take the bare name. This is the
// only platform dependence in the whole code generator.
func mangle(name string) string {
	if runtime.GOOS == "darwin" {
		return "_" + name
	}
	return name
}
