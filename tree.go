package cmdtree

import (
	log "github.com/sirupsen/logrus"
)

// Tree holds the root of a command hierarchy and is the entry point for
// registration, dispatch and help rendering.
type Tree struct {
	root *Node
}

// New returns a Tree with an empty root group.
//
// A "help" command is registered at the root, mirroring what most CLIs
// grow by hand: it returns the rendered listing, and any argument (e.g.
// "help debug") switches on the declaration-site debug output.
func New() *Tree {
	t := &Tree{root: &Node{children: make(map[string]*Node)}}
	_, err := t.root.AddCommand("help", Command{
		Run: func(args []string) (any, error) {
			return t.Render(len(args) > 0), nil
		},
		Params: Signature{Optional: 1},
		Doc:    "Show this listing; pass any value to include declaration sites",
	})
	if err != nil {
		// The root is empty at this point, so the only way to get
		// here is a bug in this package.
		panic(err)
	}
	return t
}

// Root exposes the root node for direct registration, or for Bind when
// the tree itself should be invocable as the empty-path command.
func (t *Tree) Root() *Node { return t.root }

// AddGroup registers a top-level command group.
func (t *Tree) AddGroup(name string) (*Node, error) {
	return t.root.AddGroup(name)
}

// AddCommand registers a top-level command.
func (t *Tree) AddCommand(name string, cmd Command) (*Node, error) {
	return t.root.AddCommand(name, cmd)
}

// AddPath registers a command at a space-separated path from the root,
// creating missing intermediate groups.
func (t *Tree) AddPath(path string, cmd Command) (*Node, error) {
	return t.root.AddPath(path, cmd)
}

// Dispatch resolves tokens against the tree and runs the matched
// command's handler with whatever tokens remain.
//
// Resolution consumes tokens greedily: as long as the next token names a
// child of the current node it descends, so a command that also has
// subcommands yields to a matching subcommand and only runs itself when
// the next token matches none of its children. Dispatch then fails with
// UnknownCommandError or NotInvocableError if resolution did not land on
// an invocable node, with ArityMismatchError if the leftover token count
// is not accepted by the command's policy, and with HandlerError if the
// handler itself returns an error. Otherwise the handler's return value
// is passed through.
func (t *Tree) Dispatch(tokens []string) (any, error) {
	cur := t.root
	i := 0
	for i < len(tokens) {
		next, ok := cur.children[tokens[i]]
		if !ok {
			break
		}
		cur = next
		i++
	}
	args := tokens[i:]

	if cur.run == nil {
		if len(args) > 0 {
			return nil, &UnknownCommandError{
				Token: args[0],
				Path:  cur.Path(),
				Valid: cur.childNames(),
			}
		}
		return nil, &NotInvocableError{Path: cur.Path()}
	}

	if !cur.policy.Accepts(len(args)) {
		return nil, &ArityMismatchError{Path: cur.Path(), Got: len(args), Policy: cur.policy}
	}

	log.Debugf("dispatching %s with %d argument(s)", displayPath(cur.Path()), len(args))
	out, err := cur.run(args)
	if err != nil {
		return nil, &HandlerError{Path: cur.Path(), Err: err}
	}
	return out, nil
}
