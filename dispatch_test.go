package cmdtree_test

import (
	"errors"
	"testing"

	cmdtree "github.com/social-anthrax/CMD-Tree"
)

// dictTree mirrors a small dictionary CLI: dict get entry <key>, plus
// commands exercising each arity form.
func dictTree(t *testing.T) *cmdtree.Tree {
	t.Helper()
	tree := cmdtree.New()

	dict, err := tree.AddGroup("dict")
	if err != nil {
		t.Fatal(err)
	}
	get, err := dict.AddGroup("get")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := get.AddCommand("entry", cmdtree.Command{
		Run:    func(args []string) (any, error) { return args[0] + "=hello", nil },
		Params: cmdtree.Signature{Required: 1},
		Doc:    "Look up a single entry",
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := dict.AddCommand("list_len", cmdtree.Command{
		Run:    nop,
		Params: cmdtree.Signature{Optional: 2},
		Arity:  cmdtree.ExactSet{0, 2},
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := dict.AddCommand("optional_custom_length", cmdtree.Command{
		Run:    nop,
		Params: cmdtree.Signature{Required: 2, Optional: 2},
		Arity:  cmdtree.Between(2, 4),
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := dict.AddCommand("varargs", cmdtree.Command{
		Run:    func(args []string) (any, error) { return args[3:], nil },
		Params: cmdtree.Signature{Required: 3, Variadic: true},
	}); err != nil {
		t.Fatal(err)
	}

	return tree
}

func TestDispatchNestedPath(t *testing.T) {
	tree := dictTree(t)
	out, err := tree.Dispatch([]string{"dict", "get", "entry", "mykey"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "mykey=hello" {
		t.Fatalf("unexpected handler result %v", out)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	tree := dictTree(t)
	_, err := tree.Dispatch([]string{"dict", "missing"})
	var unknown *cmdtree.UnknownCommandError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCommandError, got %v", err)
	}
	if unknown.Token != "missing" {
		t.Fatalf("expected the unresolved token, got %q", unknown.Token)
	}
	found := false
	for _, name := range unknown.Valid {
		if name == "get" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected valid names to include %q, got %v", "get", unknown.Valid)
	}
}

func TestDispatchUnknownFirstToken(t *testing.T) {
	tree := dictTree(t)
	_, err := tree.Dispatch([]string{"nope"})
	var unknown *cmdtree.UnknownCommandError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCommandError, got %v", err)
	}
	if unknown.Token != "nope" {
		t.Fatalf("expected the unresolved token, got %q", unknown.Token)
	}
}

func TestDispatchGroupNotInvocable(t *testing.T) {
	tree := dictTree(t)
	_, err := tree.Dispatch([]string{"dict"})
	var notInvocable *cmdtree.NotInvocableError
	if !errors.As(err, &notInvocable) {
		t.Fatalf("expected NotInvocableError, got %v", err)
	}
}

func TestDispatchExactSetArity(t *testing.T) {
	tree := dictTree(t)
	for _, args := range [][]string{
		{"dict", "list_len"},
		{"dict", "list_len", "a", "b"},
	} {
		if _, err := tree.Dispatch(args); err != nil {
			t.Fatalf("dispatch %v: %v", args, err)
		}
	}

	_, err := tree.Dispatch([]string{"dict", "list_len", "a"})
	var mismatch *cmdtree.ArityMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ArityMismatchError, got %v", err)
	}
	if mismatch.Got != 1 {
		t.Fatalf("expected reported count 1, got %d", mismatch.Got)
	}
}

func TestDispatchRangeArity(t *testing.T) {
	tree := dictTree(t)
	for n := 2; n <= 4; n++ {
		args := append([]string{"dict", "optional_custom_length"}, make([]string, n)...)
		if _, err := tree.Dispatch(args); err != nil {
			t.Fatalf("dispatch with %d args: %v", n, err)
		}
	}
	for _, n := range []int{1, 5} {
		args := append([]string{"dict", "optional_custom_length"}, make([]string, n)...)
		var mismatch *cmdtree.ArityMismatchError
		if _, err := tree.Dispatch(args); !errors.As(err, &mismatch) {
			t.Fatalf("dispatch with %d args: expected ArityMismatchError, got %v", n, err)
		}
	}
}

func TestDispatchVariadic(t *testing.T) {
	tree := dictTree(t)
	out, err := tree.Dispatch([]string{"dict", "varargs", "a", "b", "c", "t1", "t2"})
	if err != nil {
		t.Fatal(err)
	}
	rest, ok := out.([]string)
	if !ok || len(rest) != 2 || rest[0] != "t1" || rest[1] != "t2" {
		t.Fatalf("unexpected variadic tail %v", out)
	}

	if _, err := tree.Dispatch([]string{"dict", "varargs", "a", "b", "c"}); err != nil {
		t.Fatalf("variadic command should accept the bare required args: %v", err)
	}
	var mismatch *cmdtree.ArityMismatchError
	if _, err := tree.Dispatch([]string{"dict", "varargs", "a", "b"}); !errors.As(err, &mismatch) {
		t.Fatalf("expected ArityMismatchError, got %v", err)
	}
}

func TestDispatchHandlerErrorWrapsCause(t *testing.T) {
	tree := cmdtree.New()
	cause := errors.New("boom")
	if _, err := tree.AddCommand("fail", cmdtree.Command{
		Run: func(args []string) (any, error) { return nil, cause },
	}); err != nil {
		t.Fatal(err)
	}

	_, err := tree.Dispatch([]string{"fail"})
	var herr *cmdtree.HandlerError
	if !errors.As(err, &herr) {
		t.Fatalf("expected HandlerError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("the handler's error must remain reachable through the wrapper")
	}
}

func TestDispatchBoundRoot(t *testing.T) {
	tree := cmdtree.New()
	if err := tree.Root().Bind(cmdtree.Command{
		Run:    func(args []string) (any, error) { return len(args), nil },
		Params: cmdtree.Signature{Variadic: true},
	}); err != nil {
		t.Fatal(err)
	}

	out, err := tree.Dispatch(nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != 0 {
		t.Fatalf("expected the empty path to run the root handler, got %v", out)
	}

	// A token matching no child falls through to the root handler as an
	// argument.
	out, err = tree.Dispatch([]string{"stray"})
	if err != nil {
		t.Fatal(err)
	}
	if out != 1 {
		t.Fatalf("expected the stray token to be an argument, got %v", out)
	}
}

func TestDispatchPrefersDescendingIntoChild(t *testing.T) {
	tree := cmdtree.New()
	svc, err := tree.AddCommand("svc", cmdtree.Command{
		Run:    func(args []string) (any, error) { return "self", nil },
		Params: cmdtree.Signature{Optional: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddCommand("status", cmdtree.Command{
		Run: func(args []string) (any, error) { return "child", nil },
	}); err != nil {
		t.Fatal(err)
	}

	out, err := tree.Dispatch([]string{"svc", "status"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "child" {
		t.Fatalf("a token naming a child must win over the node's own handler, got %v", out)
	}

	out, err = tree.Dispatch([]string{"svc"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "self" {
		t.Fatalf("expected the node's own handler, got %v", out)
	}

	out, err = tree.Dispatch([]string{"svc", "other"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "self" {
		t.Fatalf("a non-child token must become an argument, got %v", out)
	}
}

func TestDispatchHelpCommand(t *testing.T) {
	tree := dictTree(t)
	out, err := tree.Dispatch([]string{"help"})
	if err != nil {
		t.Fatal(err)
	}
	if out != tree.Render(false) {
		t.Fatal("the help command should return the rendered listing")
	}

	debugOut, err := tree.Dispatch([]string{"help", "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if debugOut != tree.Render(true) {
		t.Fatal("an argument should switch help to debug output")
	}
}
