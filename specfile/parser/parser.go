// Package parser implements a lexer for the line-oriented directive language
// used by environment spec files and Dockerfiles.
//
// The lexer knows nothing about the meaning of directives. It splits input into
// logical lines (joining continuation lines and dropping comments), separates
// the directive name from its arguments and parses arguments according to the
// rules of the directive. Directives it does not know are kept with their raw
// arguments so the consumer can report them.
package parser

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const defaultEscapeToken = '\\'

var (
	reWhitespace = regexp.MustCompile(`[\t\v\f\r ]+`)
	reDirective  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

// Node is a structure used to represent a parse tree.
//
// In the node there are three fields, Value, Next, and Children. Value is the
// lowercased directive name for directive nodes and the argument itself for
// argument nodes. Next is the next argument of the directive. Children are the
// directives of the root node.
type Node struct {
	Value      string
	Next       *Node
	Children   []*Node
	Attributes map[string]bool
	Original   string
	StartLine  int
	EndLine    int
}

// Args returns argument values of the node.
func (node *Node) Args() []string {
	args := []string{}
	for arg := node.Next; arg != nil; arg = arg.Next {
		args = append(args, arg.Value)
	}
	return args
}

// AddChild adds a new child node, and updates line information.
func (node *Node) AddChild(child *Node, startLine, endLine int) {
	child.StartLine = startLine
	child.EndLine = endLine
	if node.StartLine < 0 {
		node.StartLine = startLine
	}
	node.EndLine = endLine
	node.Children = append(node.Children, child)
}

// Result is the result of parsing a spec file.
type Result struct {
	AST *Node
}

type directives struct {
	escapeToken rune
}

type lineParser func(rest string, d *directives) (*Node, map[string]bool, error)

var dispatch = map[string]lineParser{
	"from":    parseStringsWhitespaceDelimited,
	"workdir": parseString,
	"run":     parseMaybeJSON,
	"user":    parseStringsWhitespaceDelimited,
	"env":     parseNameVal,
	"cmd":     parseMaybeJSON,
}

// Parse reads lines from a Reader, parses the lines into an AST and returns
// the AST.
func Parse(r io.Reader) (*Result, error) {
	d := &directives{escapeToken: defaultEscapeToken}
	root := &Node{StartLine: -1}
	scanner := bufio.NewScanner(r)

	currentLine := 0
	for scanner.Scan() {
		currentLine++
		line := strings.TrimLeftFunc(scanner.Text(), unicode.IsSpace)
		if isComment(line) || line == "" {
			continue
		}

		startLine := currentLine
		line, isEndOfLine := trimContinuationCharacter(line, d)
		for !isEndOfLine && scanner.Scan() {
			currentLine++
			next := scanner.Text()
			if trimmed := strings.TrimLeftFunc(next, unicode.IsSpace); isComment(trimmed) || trimmed == "" {
				continue
			}

			var continuation string
			continuation, isEndOfLine = trimContinuationCharacter(next, d)
			line += continuation
		}

		child, err := newNodeFromLine(line, d)
		if err != nil {
			return nil, withLocation(err, startLine, currentLine)
		}
		root.AddChild(child, startLine, currentLine)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return &Result{AST: root}, nil
}

func newNodeFromLine(line string, d *directives) (*Node, error) {
	cmd, args := splitCommand(line)
	if !reDirective.MatchString(cmd) {
		return nil, errors.Errorf("invalid directive %q", cmd)
	}

	fn := dispatch[cmd]
	if fn == nil {
		fn = parseString
	}
	next, attrs, err := fn(args, d)
	if err != nil {
		return nil, err
	}

	return &Node{
		Value:      cmd,
		Original:   line,
		Attributes: attrs,
		Next:       next,
	}, nil
}

// splitCommand takes a single line of text and parses out the directive and
// the rest of the line.
func splitCommand(line string) (string, string) {
	parts := reWhitespace.Split(strings.TrimSpace(line), 2)
	cmd := strings.ToLower(parts[0])
	var args string
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}
	return cmd, args
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#")
}

func trimContinuationCharacter(line string, d *directives) (string, bool) {
	trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	if strings.HasSuffix(trimmed, string(d.escapeToken)) {
		return strings.TrimSuffix(trimmed, string(d.escapeToken)), false
	}
	return line, true
}
