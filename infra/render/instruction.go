package render

import (
	"strings"

	"github.com/outofforest/envspec/infra/description"
	"github.com/outofforest/envspec/infra/serialize"
)

// Kind is the kind of atomic instruction
type Kind string

// Kinds of instructions understood by builders
const (
	From    Kind = "FROM"
	WorkDir Kind = "WORKDIR"
	Run     Kind = "RUN"
	User    Kind = "USER"
	Env     Kind = "ENV"
	Cmd     Kind = "CMD"
)

// Instruction is an atomic, builder-neutral instruction.
//
// Meaning of Args depends on the kind:
//   - FROM, WORKDIR, USER: single argument
//   - ENV: key and value
//   - RUN: shell commands executed in order, stopping on the first failure
//   - CMD: argv of the default command
type Instruction struct {
	Kind Kind     `json:"kind" yaml:"kind"`
	Args []string `json:"args" yaml:"args"`
}

// String returns the instruction in Dockerfile syntax
func (i Instruction) String() string {
	switch i.Kind {
	case Run:
		return string(i.Kind) + " " + strings.Join(i.Args, " && ")
	case Env:
		return string(i.Kind) + " " + i.Args[0] + "=" + description.EncodeEnvValue(i.Args[1])
	case Cmd:
		return string(i.Kind) + " " + serialize.JSONArray(i.Args)
	default:
		return string(i.Kind) + " " + strings.Join(i.Args, " ")
	}
}

// Plan is the ordered list of instructions handed to the builder
type Plan struct {
	// From selects the base image
	From Instruction

	// Instructions are expansions of provisioning steps, in step order
	Instructions []Instruction
}

// All returns all the instructions of the plan, starting with FROM
func (p Plan) All() []Instruction {
	return append([]Instruction{p.From}, p.Instructions...)
}

// String returns the plan in Dockerfile syntax
func (p Plan) String() string {
	var sb strings.Builder
	for _, i := range p.All() {
		sb.WriteString(i.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
