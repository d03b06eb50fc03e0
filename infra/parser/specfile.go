package parser

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/outofforest/envspec/infra/description"
	"github.com/outofforest/envspec/infra/types"
	"github.com/outofforest/envspec/specfile/parser"
)

// NewSpecFileParser creates new specfile parser
func NewSpecFileParser() Parser {
	return &specFileParser{}
}

type specFileParser struct {
}

// Parse parses descriptor from specfile
func (p *specFileParser) Parse(filePath string, opts ...description.ValidateOption) (*description.Descriptor, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	d, err := Parse(file, opts...)
	if err != nil {
		return nil, errors.WithMessagef(err, "parsing %s failed", filePath)
	}
	return d, nil
}

// Parse reads spec text and converts it to validated descriptor.
//
// Structural problems are reported as *types.MalformedInputError. Ordering
// problems detected by validation are reported the same way, with
// *types.ValidationError as the cause.
func Parse(r io.Reader, opts ...description.ValidateOption) (*description.Descriptor, error) {
	d, lines, err := decode(r)
	if err != nil {
		return nil, err
	}

	if err := description.Validate(d, opts...); err != nil {
		var verr *types.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		line := lines.base
		if verr.Index >= 0 && verr.Index < len(lines.steps) {
			line = lines.steps[verr.Index]
		}
		return nil, malformed(line.number, line.directive, err)
	}
	return d, nil
}

type location struct {
	number    int
	directive string
}

type locations struct {
	base  location
	steps []location
}

func decode(r io.Reader) (*description.Descriptor, locations, error) {
	parsed, err := parser.Parse(r)
	if err != nil {
		var locErr *parser.LocationError
		if errors.As(err, &locErr) {
			return nil, locations{}, malformed(locErr.Line(), "", locErr.Unwrap())
		}
		return nil, locations{}, malformed(0, "", err)
	}

	var base types.BaseImage
	var lines locations
	steps := make([]description.Step, 0, len(parsed.AST.Children))
	for _, child := range parsed.AST.Children {
		args := child.Args()

		var cmds []description.Step
		var err error
		switch child.Value {
		case "from":
			if !base.IsZero() {
				return nil, locations{}, malformed(child.StartLine, child.Value, errors.New("base image has been already selected"))
			}
			base, err = cmdFrom(args)
			lines.base = location{number: child.StartLine, directive: child.Value}
		case "workdir":
			cmds, err = cmdWorkDir(args)
		case "run":
			cmds, err = cmdRun(args, child.Attributes["json"])
		case "user":
			cmds, err = cmdUser(args)
		case "env":
			cmds, err = cmdEnv(args, child.Attributes["legacy"])
		case "cmd":
			cmds, err = cmdCmd(args, child.Attributes["json"])
		default:
			return nil, locations{}, malformed(child.StartLine, "", errors.Errorf("unknown directive '%s'", child.Value))
		}
		if err != nil {
			return nil, locations{}, malformed(child.StartLine, child.Value, err)
		}

		if child.Value != "from" && base.IsZero() {
			return nil, locations{}, malformed(child.StartLine, child.Value, errors.New("base image must be selected first"))
		}
		for range cmds {
			lines.steps = append(lines.steps, location{number: child.StartLine, directive: child.Value})
		}
		steps = append(steps, cmds...)
	}

	if base.IsZero() {
		return nil, locations{}, malformed(0, "", errors.New("base image is not selected"))
	}
	return description.Describe(base, steps...), lines, nil
}

func malformed(line int, directive string, err error) error {
	return errors.WithStack(&types.MalformedInputError{
		Line:      line,
		Directive: strings.ToUpper(directive),
		Err:       err,
	})
}

func cmdFrom(args []string) (types.BaseImage, error) {
	if len(args) != 1 {
		return types.BaseImage{}, errors.Errorf("incorrect number of arguments, expected: 1, got: %d", len(args))
	}
	return types.ParseBaseImage(args[0])
}

func cmdWorkDir(args []string) ([]description.Step, error) {
	if len(args) != 1 || args[0] == "" {
		return nil, errors.New("path is missing")
	}
	return []description.Step{description.WorkingDirectory(args[0])}, nil
}

func cmdRun(args []string, jsonForm bool) ([]description.Step, error) {
	if len(args) == 0 {
		return nil, errors.New("no command passed")
	}

	script := args[0]
	if jsonForm {
		quoted := make([]string, 0, len(args))
		for _, arg := range args {
			quoted = append(quoted, description.ShellQuote(arg))
		}
		script = strings.Join(quoted, " ")
	}

	if steps := description.RecognizeShell(script); steps != nil {
		return steps, nil
	}
	return []description.Step{description.RunShell(script)}, nil
}

func cmdUser(args []string) ([]description.Step, error) {
	if len(args) != 1 {
		return nil, errors.Errorf("incorrect number of arguments, expected: 1, got: %d", len(args))
	}
	return []description.Step{description.ActiveUser(args[0])}, nil
}

func cmdEnv(args []string, legacy bool) ([]description.Step, error) {
	if len(args) == 0 {
		return nil, errors.New("no variables passed")
	}
	if len(args)%2 != 0 {
		return nil, errors.New("value is missing")
	}

	steps := make([]description.Step, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		value := args[i+1]
		if !legacy {
			var err error
			value, err = description.DecodeEnvValue(value)
			if err != nil {
				return nil, errors.WithMessagef(err, "decoding value of %s failed", args[i])
			}
		}
		steps = append(steps, description.EnvVar(args[i], value))
	}
	return steps, nil
}

func cmdCmd(args []string, jsonForm bool) ([]description.Step, error) {
	if len(args) == 0 && !jsonForm {
		return nil, errors.New("no command passed")
	}
	if !jsonForm {
		return []description.Step{description.DefaultCommand("/bin/sh", "-c", args[0])}, nil
	}
	return []description.Step{description.DefaultCommand(args...)}, nil
}
