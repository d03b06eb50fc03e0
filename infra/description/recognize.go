package description

import (
	"strings"

	"github.com/samber/lo"
	"mvdan.cc/sh/v3/syntax"

	"github.com/outofforest/envspec/infra/types"
)

// RecognizeShell converts shell script into typed steps. Script is recognized
// only if it is a single &&-chain of commands each having a typed equivalent:
// package index updates, package installs, package index cleanups and user
// creation. Nil is returned if script contains anything else.
func RecognizeShell(script string) []Step {
	file, err := syntax.NewParser().Parse(strings.NewReader(script), "")
	if err != nil || len(file.Stmts) != 1 {
		return nil
	}

	var calls []call
	if !collectCalls(file.Stmts[0], &calls) {
		return nil
	}

	r := &recognizer{}
	for _, c := range calls {
		if !r.recognize(c) {
			return nil
		}
	}
	if r.pendingUpdate != "" || len(r.steps) == 0 {
		return nil
	}
	return r.steps
}

type word struct {
	Value string

	// Plain is true if word is a bare literal, meaning globs are active
	Plain bool
}

type call []word

func (c call) is(args ...string) bool {
	if len(c) != len(args) {
		return false
	}
	for i, arg := range args {
		if c[i].Value != arg {
			return false
		}
	}
	return true
}

func collectCalls(stmt *syntax.Stmt, calls *[]call) bool {
	if stmt.Negated || stmt.Background || len(stmt.Redirs) > 0 {
		return false
	}

	switch cmd := stmt.Cmd.(type) {
	case *syntax.BinaryCmd:
		if cmd.Op != syntax.AndStmt {
			return false
		}
		return collectCalls(cmd.X, calls) && collectCalls(cmd.Y, calls)
	case *syntax.CallExpr:
		if len(cmd.Assigns) > 0 || len(cmd.Args) == 0 {
			return false
		}
		c := make(call, 0, len(cmd.Args))
		for _, arg := range cmd.Args {
			w, ok := literal(arg)
			if !ok {
				return false
			}
			c = append(c, w)
		}
		*calls = append(*calls, c)
		return true
	default:
		return false
	}
}

// literal decodes word if it contains no expansions.
func literal(w *syntax.Word) (word, bool) {
	var sb strings.Builder
	plain := len(w.Parts) == 1
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			if strings.Contains(p.Value, `\`) {
				return word{}, false
			}
			sb.WriteString(p.Value)
		case *syntax.SglQuoted:
			if p.Dollar {
				return word{}, false
			}
			plain = false
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			plain = false
			for _, inner := range p.Parts {
				lit, ok := inner.(*syntax.Lit)
				if !ok || strings.Contains(lit.Value, `\`) {
					return word{}, false
				}
				sb.WriteString(lit.Value)
			}
		default:
			return word{}, false
		}
	}
	return word{Value: sb.String(), Plain: plain}, true
}

type recognizer struct {
	steps         []Step
	pendingUpdate PackageManager
	lastInstall   PackageManager
}

func (r *recognizer) recognize(c call) bool {
	switch {
	case c.is("apt-get", "update"), c.is("apt", "update"):
		return r.update(APT)
	case c.is("apk", "update"):
		return r.update(APK)
	case len(c) > 1 && (c[0].Value == "apt-get" || c[0].Value == "apt") && c[1].Value == "install":
		return r.install(APT, c[2:], aptFlags, true)
	case len(c) > 1 && c[0].Value == "apk" && c[1].Value == "add":
		return r.install(APK, c[2:], apkFlags, false)
	case len(c) == 3 && c[0].Value == "rm" && c[1].Value == "-rf" && c[2].Plain:
		return r.cleanup(c[2].Value)
	case len(c) > 0 && c[0].Value == string(UserAdd):
		return r.userAdd(c[1:])
	case len(c) > 0 && c[0].Value == string(AddUser):
		return r.addUser(c[1:])
	default:
		return false
	}
}

func (r *recognizer) update(pm PackageManager) bool {
	if r.pendingUpdate != "" {
		return false
	}
	r.pendingUpdate = pm
	r.lastInstall = ""
	return true
}

var (
	aptFlags = map[string]bool{"-y": true, "--yes": true, "--assume-yes": true, "-q": true, "-qq": true, "--quiet": true}
	apkFlags = map[string]bool{"--no-cache": true, "-q": true, "--quiet": true}
)

func (r *recognizer) install(pm PackageManager, args []word, flags map[string]bool, yesRequired bool) bool {
	if r.pendingUpdate != "" && r.pendingUpdate != pm {
		return false
	}

	var packages []string
	var yes bool
	for _, arg := range args {
		if strings.HasPrefix(arg.Value, "-") {
			if !flags[arg.Value] {
				return false
			}
			yes = yes || arg.Value == "-y" || arg.Value == "--yes" || arg.Value == "--assume-yes"
			continue
		}
		packages = append(packages, arg.Value)
	}
	if len(packages) == 0 || (yesRequired && !yes) {
		return false
	}

	r.steps = append(r.steps, InstallPackages(pm, packages...))
	r.pendingUpdate = ""
	r.lastInstall = pm
	return true
}

func (r *recognizer) cleanup(glob string) bool {
	if r.lastInstall == "" || r.lastInstall.indexGlob() != glob {
		return false
	}
	r.lastInstall = ""
	return true
}

func (r *recognizer) userAdd(args []word) bool {
	step := &CreateUserStep{Tool: UserAdd}
	for i := 0; i < len(args); i++ {
		switch arg := args[i].Value; arg {
		case "-m", "--create-home":
			step.Home = true
		case "-M", "--no-create-home":
			step.Home = false
		case "-s", "--shell":
			if i+1 == len(args) {
				return false
			}
			i++
			step.Shell = args[i].Value
		case "-u", "--uid":
			if i+1 == len(args) || !setUID(step, args[i+1].Value) {
				return false
			}
			i++
		case "-G", "--groups":
			if i+1 == len(args) || step.Groups != nil {
				return false
			}
			i++
			groups := strings.Split(args[i].Value, ",")
			if len(lo.Uniq(groups)) != len(groups) {
				return false
			}
			for _, group := range groups {
				if !types.IsUserNameValid(group) {
					return false
				}
			}
			step.Groups = groups
		default:
			if strings.HasPrefix(arg, "-") || step.Name != "" {
				return false
			}
			step.Name = arg
		}
	}
	return r.user(step)
}

func (r *recognizer) addUser(args []word) bool {
	step := &CreateUserStep{Tool: AddUser, Home: true}
	var nonInteractive bool
	for i := 0; i < len(args); i++ {
		switch arg := args[i].Value; arg {
		case "-D":
			nonInteractive = true
		case "-H":
			step.Home = false
		case "-s":
			if i+1 == len(args) {
				return false
			}
			i++
			step.Shell = args[i].Value
		case "-u":
			if i+1 == len(args) || !setUID(step, args[i+1].Value) {
				return false
			}
			i++
		default:
			if strings.HasPrefix(arg, "-") || step.Name != "" {
				return false
			}
			step.Name = arg
		}
	}
	if !nonInteractive {
		return false
	}
	return r.user(step)
}

func setUID(step *CreateUserStep, uid string) bool {
	if step.UID != "" || !types.IsUID(uid) {
		return false
	}
	step.UID = uid
	return true
}

func (r *recognizer) user(step *CreateUserStep) bool {
	if step.Name == "" || r.pendingUpdate != "" {
		return false
	}
	r.steps = append(r.steps, step)
	r.lastInstall = ""
	return true
}
