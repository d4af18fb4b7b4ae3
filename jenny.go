// Package crudjen is the generator framework behind the crudjen scaffolding
// tool.
//
// A Jenny is a small code generator with one narrow responsibility, such as
// rendering the route table for an entity. Jennies are composed into a
// [JennyList], which calls them in order, postprocesses their output, and
// collects every emitted [File] into an [FS] that can be written to disk in
// one step.
package crudjen

// A Jenny is a crudjen code generator.
//
// Each Jenny works with exactly one type of input to its code generation, as
// indicated by its type parameter. crudjen follows a naming convention of
// naming these type parameters "Input" as an indicator for humans that a
// particular type parameter is used in this way.
//
// Each Jenny takes either one or many Inputs, and produces zero, one, or many
// output files. Go's generic system does not allow expressing that choice in
// the Jenny interface itself, so every Jenny must additionally implement
// exactly one of [OneToOne], [OneToMany], [ManyToOne] or [ManyToMany].
type Jenny[Input any] interface {
	// JennyName returns the name of the generator.
	JennyName() string
}

// NamedJenny is the non-generic part of a Jenny. It is used where only the
// name of the generator matters, such as the provenance stack of a [File].
type NamedJenny interface {
	JennyName() string
}

// OneToOne is a Jenny that accepts one input and produces one file.
type OneToOne[Input any] interface {
	Jenny[Input]

	// Generate takes an Input and generates one [File], or none (nil) if the
	// jenny was a no-op for the provided Input.
	Generate(Input) (*File, error)
}

// OneToMany is a Jenny that accepts one input and produces 0 to N files.
type OneToMany[Input any] interface {
	Jenny[Input]

	// Generate takes an Input and generates many [File]s, or none (nil) if the
	// jenny was a no-op for the provided Input.
	Generate(Input) (Files, error)
}

// ManyToOne is a Jenny that accepts many inputs and produces one file.
type ManyToOne[Input any] interface {
	Jenny[Input]

	// Generate takes a slice of Input and generates one File. A nil File
	// indicates the jenny was a no-op for the provided Inputs.
	Generate(...Input) (*File, error)
}

// ManyToMany is a Jenny that accepts many inputs and produces 0 to N files.
type ManyToMany[Input any] interface {
	Jenny[Input]

	// Generate takes a slice of Input and generates many [File]s.
	//
	// A nil, nil return is used to indicate the generator had nothing to do for
	// the provided Input.
	Generate(...Input) (Files, error)
}
