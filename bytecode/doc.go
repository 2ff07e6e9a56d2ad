// Package bytecode provides the immutable representation of a compiled Orion
// program.
//
// A [Bytecode] value is the only artifact that crosses from the compiler to
// the virtual machine. It holds:
//
//   - the top-level instruction stream
//   - the constant pool, deduplicated [Literal] values addressed by 16-bit id
//   - the chunk table, one [Chunk] per lambda expression, addressed by 16-bit id
//   - the symbol names, whose positions are the context slots used at run time
//   - the constructor table, the declared arity of each registered constructor
//
// The VM indexes into every table purely by position, so ids are assigned in
// insertion order and never reused.
//
// All types in this package are immutable after construction: constructors
// copy their input slices and accessors are index based.
//
//	code, err := compiler.Compile(program)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Constants: %d\n", code.ConstantCount())
//	bindings, err := vm.New(code).Eval(ctx)
package bytecode
