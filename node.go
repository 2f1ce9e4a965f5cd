package cmdtree

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Handler is the function a leaf runs. The tokens left over after path
// resolution are passed through as-is; converting them into typed values
// is the handler's (or its caller's) concern, not this package's.
type Handler func(args []string) (any, error)

// Command describes a leaf to register: the function to run, the
// parameter counts it was declared with, an optional argument-count
// constraint, and a one-line description for the help listing.
type Command struct {
	Run Handler

	// Params is the handler's declared parameter signature. With a nil
	// Arity it determines the accepted argument counts.
	Params Signature

	// Arity overrides the bounds derived from Params. Leave nil for
	// the default.
	Arity AritySpec

	Doc string
}

// Kind distinguishes group nodes from invocable leaves.
type Kind int

const (
	Group Kind = iota
	Leaf
)

// Node is a single entry in the command tree: a named group of
// subcommands, an invocable leaf, or both at once (a command that also
// has subcommands).
type Node struct {
	name     string
	parent   *Node
	children map[string]*Node
	order    []*Node

	// Leaf state; run is nil for a pure group.
	run         Handler
	policy      ArityPolicy
	sig         Signature
	doc         string
	defLoc      string
	customArity bool
}

// Name returns the node's name; empty for the root.
func (n *Node) Name() string { return n.name }

// Kind reports Leaf when a handler is bound, even if the node also has
// children.
func (n *Node) Kind() Kind {
	if n.run != nil {
		return Leaf
	}
	return Group
}

// Parent returns the node this one is registered under, or nil for the
// root. The reference is for traversal only; it carries no ownership and
// is valid exactly as long as the tree it belongs to.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's direct children in registration order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.order))
	copy(out, n.order)
	return out
}

// Child returns the named child, if any.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Policy returns the node's resolved argument-count policy. Meaningful
// only for leaves.
func (n *Node) Policy() ArityPolicy { return n.policy }

// Doc returns the description the command was registered with.
func (n *Node) Doc() string { return n.doc }

// Path returns the space-joined names from the root down to this node, in
// the same form Dispatch consumes. The root's path is empty.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.name
	}
	parent := n.parent.Path()
	if parent == "" {
		return n.name
	}
	return parent + " " + n.name
}

func (n *Node) childNames() []string {
	names := make([]string, len(n.order))
	for i, c := range n.order {
		names[i] = c.name
	}
	return names
}

// attach creates a fresh child under n. All node creation funnels through
// here, so children are never re-parented and the tree stays acyclic.
func (n *Node) attach(name string) (*Node, error) {
	if name == "" {
		return nil, errors.New("cannot register a nameless command")
	}
	if strings.ContainsRune(name, ' ') {
		return nil, errors.Errorf("command name %q must not contain spaces", name)
	}
	if _, ok := n.children[name]; ok {
		return nil, &DuplicateNameError{Name: name, Path: n.Path()}
	}
	child := &Node{name: name, parent: n, children: make(map[string]*Node)}
	n.children[name] = child
	n.order = append(n.order, child)
	return child, nil
}

// detach removes a child created by attach. Only used to roll back a
// failed AddPath; there is no public unregistration.
func (n *Node) detach(child *Node) {
	delete(n.children, child.name)
	for i, c := range n.order {
		if c == child {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	child.parent = nil
}

// AddGroup creates and attaches a named subcommand group under n. It
// returns a DuplicateNameError if the name is already taken among n's
// children.
func (n *Node) AddGroup(name string) (*Node, error) {
	child, err := n.attach(name)
	if err != nil {
		return nil, err
	}
	log.Debugf("registered command group %q", child.Path())
	return child, nil
}

// AddCommand creates and attaches an invocable leaf under n, resolving
// the command's arity policy immediately so dispatch never re-derives it.
// It returns a DuplicateNameError on a name collision and an
// InvalidArityError if cmd.Arity is inconsistent; either way the tree is
// left unmodified.
func (n *Node) AddCommand(name string, cmd Command) (*Node, error) {
	if cmd.Run == nil {
		return nil, errors.Errorf("command %q has no Run function", name)
	}
	policy, err := resolvePolicy(cmd.Params, cmd.Arity)
	if err != nil {
		return nil, err
	}
	child, err := n.attach(name)
	if err != nil {
		return nil, err
	}
	child.bind(cmd, policy)
	log.Debugf("registered command %q (%s at %s)", child.Path(), child.policy, child.defLoc)
	return child, nil
}

// Bind makes an existing group node invocable: the root becoming the
// empty-path command, or a group that should also run on its own. It
// fails if the node already has a handler.
func (n *Node) Bind(cmd Command) error {
	if n.run != nil {
		return errors.Errorf("%s already has a handler bound", displayPath(n.Path()))
	}
	if cmd.Run == nil {
		return errors.Errorf("cannot bind a nil Run function to %s", displayPath(n.Path()))
	}
	policy, err := resolvePolicy(cmd.Params, cmd.Arity)
	if err != nil {
		return err
	}
	n.bind(cmd, policy)
	log.Debugf("bound handler to %s (%s)", displayPath(n.Path()), n.policy)
	return nil
}

func (n *Node) bind(cmd Command, policy ArityPolicy) {
	n.run = cmd.Run
	n.policy = policy
	n.sig = cmd.Params
	n.doc = cmd.Doc
	n.defLoc = funcLocation(cmd.Run)
	n.customArity = cmd.Arity != nil
}

// AddPath registers a leaf at a space-separated path relative to n,
// creating any missing intermediate groups along the way. Existing
// intermediates are descended into without error; a collision on the
// final segment is a DuplicateNameError. On any failure the intermediates
// created by this call are removed again, so the tree is unchanged.
func (n *Node) AddPath(path string, cmd Command) (*Node, error) {
	segments := strings.Split(path, " ")
	for _, s := range segments {
		if s == "" {
			return nil, errors.Errorf("malformed command path %q", path)
		}
	}

	cur := n
	var firstCreated *Node
	for _, s := range segments[:len(segments)-1] {
		if child, ok := cur.children[s]; ok {
			cur = child
			continue
		}
		group, err := cur.AddGroup(s)
		if err != nil {
			// attach can only fail here on a malformed name,
			// already ruled out above.
			return nil, err
		}
		if firstCreated == nil {
			firstCreated = group
		}
		cur = group
	}

	leaf, err := cur.AddCommand(segments[len(segments)-1], cmd)
	if err != nil {
		if firstCreated != nil {
			firstCreated.parent.detach(firstCreated)
		}
		return nil, err
	}
	return leaf, nil
}

// funcLocation reports where a handler was defined, for the debug help
// mode. Format is "pkg.func (file.go:line)".
func funcLocation(h Handler) string {
	pc := reflect.ValueOf(h).Pointer()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	file, line := fn.FileLine(pc)
	return fmt.Sprintf("%s (%s:%d)", fn.Name(), filepath.Base(file), line)
}
