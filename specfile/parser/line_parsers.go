package parser

// line parsers are dispatch calls that parse a single unit of text into a
// Node object which contains the whole statement. Directives have varied
// parsing rules, and these unify the processing in a way that makes it
// manageable.

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	errNotStringArray = errors.New("when using JSON array syntax, arrays must be comprised of strings only")
)

// parses a whitespace-delimited set of arguments. The result is effectively a
// linked list of string arguments.
func parseStringsWhitespaceDelimited(rest string, _ *directives) (*Node, map[string]bool, error) { // nolint: unparam
	if rest == "" {
		return nil, nil, nil
	}

	var top, prev *Node
	for _, str := range reWhitespace.Split(rest, -1) {
		if str == "" {
			continue
		}
		node := &Node{Value: str}
		if prev == nil {
			top = node
		} else {
			prev.Next = node
		}
		prev = node
	}
	return top, nil, nil
}

// parseString returns the whole rest as a single argument.
func parseString(rest string, _ *directives) (*Node, map[string]bool, error) { // nolint: unparam
	if rest == "" {
		return nil, nil, nil
	}
	return &Node{Value: rest}, nil, nil
}

// parseJSON converts JSON arrays to an AST.
func parseJSON(rest string, _ *directives) (*Node, map[string]bool, error) {
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	if !strings.HasPrefix(rest, "[") {
		return nil, nil, errors.Errorf(`error parsing "%s" as a JSON array`, rest)
	}

	var myJSON []interface{}
	if err := json.NewDecoder(strings.NewReader(rest)).Decode(&myJSON); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	var top, prev *Node
	for _, str := range myJSON {
		s, ok := str.(string)
		if !ok {
			return nil, nil, errNotStringArray
		}

		node := &Node{Value: s}
		if prev == nil {
			top = node
		} else {
			prev.Next = node
		}
		prev = node
	}
	return top, map[string]bool{"json": true}, nil
}

// parseMaybeJSON determines if the argument appears to be a JSON array. If
// so, passes to parseJSON; if not, quotes the result and returns a single
// node.
func parseMaybeJSON(rest string, d *directives) (*Node, map[string]bool, error) {
	if rest == "" {
		return nil, nil, nil
	}

	node, attrs, err := parseJSON(rest, d)
	if err == nil {
		return node, attrs, nil
	}
	if errors.Is(err, errNotStringArray) {
		return nil, nil, err
	}

	return &Node{Value: rest}, nil, nil
}

// parseNameVal parses ENV arguments. Both "key=value [key=value...]" and the
// legacy "key value" forms are accepted. The result is a linked list of
// alternating keys and raw values. Values keep their quoting, it is up to the
// consumer to decode them.
func parseNameVal(rest string, d *directives) (*Node, map[string]bool, error) {
	words := parseWords(rest, d)
	if len(words) == 0 {
		return nil, nil, nil
	}

	if !strings.Contains(words[0], "=") {
		parts := reWhitespace.Split(rest, 2)
		if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
			return nil, nil, errors.Errorf("%s must have two arguments", words[0])
		}
		value := &Node{Value: strings.TrimSpace(parts[1])}
		return &Node{Value: parts[0], Next: value}, map[string]bool{"legacy": true}, nil
	}

	var top, prev *Node
	for _, word := range words {
		key, value, ok := strings.Cut(word, "=")
		if !ok {
			return nil, nil, errors.Errorf("syntax error - can't find = in %q, must be of the form: name=value", word)
		}
		if key == "" {
			return nil, nil, errors.Errorf("syntax error - empty name in %q", word)
		}
		keyNode := &Node{Value: key}
		keyNode.Next = &Node{Value: value}
		if prev == nil {
			top = keyNode
		} else {
			prev.Next = keyNode
		}
		prev = keyNode.Next
	}
	return top, nil, nil
}

// parseWords splits rest into words on whitespace, keeping quoted sections
// (including the quotes themselves) and escaped characters intact.
func parseWords(rest string, d *directives) []string {
	var words []string
	var word strings.Builder
	var quote rune
	inWord := false
	blankOK := false

	flush := func() {
		if word.Len() > 0 || blankOK {
			words = append(words, word.String())
		}
		word.Reset()
		inWord = false
		blankOK = false
	}

	for pos := 0; pos < len(rest); {
		ch, width := utf8.DecodeRuneInString(rest[pos:])
		pos += width

		switch {
		case quote != 0:
			word.WriteRune(ch)
			switch {
			case ch == quote:
				quote = 0
			case ch == d.escapeToken && quote != '\'' && pos < len(rest):
				next, nextWidth := utf8.DecodeRuneInString(rest[pos:])
				pos += nextWidth
				word.WriteRune(next)
			}
		case unicode.IsSpace(ch):
			if inWord {
				flush()
			}
		default:
			inWord = true
			word.WriteRune(ch)
			switch {
			case ch == '\'' || ch == '"':
				quote = ch
				blankOK = true
			case ch == d.escapeToken && pos < len(rest):
				next, nextWidth := utf8.DecodeRuneInString(rest[pos:])
				pos += nextWidth
				word.WriteRune(next)
			}
		}
	}
	if inWord {
		flush()
	}
	return words
}
