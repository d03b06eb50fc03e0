package description

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"mvdan.cc/sh/v3/syntax"
)

var plainValueRegExp = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./~${}-]+$`)

// EncodeEnvValue quotes value of environment variable for ENV directive.
// Double quotes are used so references to other variables stay active.
func EncodeEnvValue(value string) string {
	if plainValueRegExp.MatchString(value) {
		return value
	}
	return `"` + envEscaper.Replace(value) + `"`
}

var envEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`")

// DecodeEnvValue removes quoting from the raw value of ENV directive. References
// to other variables are kept as they are, the builder expands them.
func DecodeEnvValue(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	file, err := syntax.NewParser().Parse(strings.NewReader("_="+raw), "")
	if err != nil {
		return "", errors.WithStack(err)
	}
	if len(file.Stmts) != 1 {
		return "", errors.Errorf("value %q is not a single word", raw)
	}
	call, ok := file.Stmts[0].Cmd.(*syntax.CallExpr)
	if !ok || len(call.Assigns) != 1 || len(call.Args) != 0 || call.Assigns[0].Value == nil {
		return "", errors.Errorf("value %q is not a single word", raw)
	}

	var sb strings.Builder
	for _, part := range call.Assigns[0].Value.Parts {
		if err := decodePart(&sb, part); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func decodePart(sb *strings.Builder, part syntax.WordPart) error {
	switch p := part.(type) {
	case *syntax.Lit:
		sb.WriteString(unescape(p.Value, false))
	case *syntax.SglQuoted:
		sb.WriteString(p.Value)
	case *syntax.DblQuoted:
		for _, inner := range p.Parts {
			if lit, ok := inner.(*syntax.Lit); ok {
				sb.WriteString(unescape(lit.Value, true))
				continue
			}
			if err := decodePart(sb, inner); err != nil {
				return err
			}
		}
	case *syntax.ParamExp:
		if err := syntax.NewPrinter().Print(sb, p); err != nil {
			return errors.WithStack(err)
		}
	default:
		return errors.Errorf("unsupported expression at %s", part.Pos())
	}
	return nil
}

// unescape drops backslashes the shell would drop. Inside double quotes only
// the characters having special meaning there are escaped.
func unescape(s string, quoted bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (!quoted || strings.IndexByte("$`\"\\", s[i+1]) >= 0) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
