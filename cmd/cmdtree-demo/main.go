// Command cmdtree-demo runs a small in-memory dictionary store behind a
// command tree, either one-shot ("cmdtree-demo dict get mykey") or as an
// interactive loop when started without arguments.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	cmdtree "github.com/social-anthrax/CMD-Tree"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	tree, err := buildTree()
	if err != nil {
		log.Fatalf("building command tree: %v", err)
	}

	if args := flag.Args(); len(args) > 0 {
		if !run(tree, args) {
			os.Exit(1)
		}
		return
	}

	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for sc.Scan() {
		tokens := strings.Fields(sc.Text())
		switch {
		case len(tokens) == 0:
		case tokens[0] == "exit" || tokens[0] == "quit":
			return
		default:
			run(tree, tokens)
		}
		fmt.Print("> ")
	}
}

func run(tree *cmdtree.Tree, tokens []string) bool {
	out, err := tree.Dispatch(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return false
	}
	if out != nil {
		fmt.Println(out)
	}
	return true
}

func buildTree() (*cmdtree.Tree, error) {
	store := map[string]string{}
	tree := cmdtree.New()

	dict, err := tree.AddGroup("dict")
	if err != nil {
		return nil, err
	}

	if _, err := dict.AddCommand("get", cmdtree.Command{
		Run: func(args []string) (any, error) {
			v, ok := store[args[0]]
			if !ok {
				return nil, errors.Errorf("no entry for %q", args[0])
			}
			return v, nil
		},
		Params: cmdtree.Signature{Required: 1},
		Doc:    "Print the value stored under a key",
	}); err != nil {
		return nil, err
	}

	if _, err := dict.AddCommand("set", cmdtree.Command{
		Run: func(args []string) (any, error) {
			store[args[0]] = strings.Join(args[1:], " ")
			return nil, nil
		},
		Params: cmdtree.Signature{Required: 2, Variadic: true},
		Doc:    "Store a value under a key",
	}); err != nil {
		return nil, err
	}

	if _, err := dict.AddCommand("del", cmdtree.Command{
		Run: func(args []string) (any, error) {
			for _, k := range args {
				delete(store, k)
			}
			return nil, nil
		},
		Params: cmdtree.Signature{Required: 1, Variadic: true},
		Doc:    "Remove one or more keys",
	}); err != nil {
		return nil, err
	}

	// "dict list" with no args lists keys, with exactly two args lists
	// keys in a range; one arg is rejected by the arity policy.
	if _, err := dict.AddCommand("list", cmdtree.Command{
		Run: func(args []string) (any, error) {
			var keys []string
			for k := range store {
				if len(args) == 2 && (k < args[0] || k > args[1]) {
					continue
				}
				keys = append(keys, k)
			}
			return strings.Join(keys, "\n"), nil
		},
		Params: cmdtree.Signature{Optional: 2},
		Arity:  cmdtree.ExactSet{0, 2},
		Doc:    "List keys, optionally limited to a from/to range",
	}); err != nil {
		return nil, err
	}

	if _, err := tree.AddPath("store stats", cmdtree.Command{
		Run: func(args []string) (any, error) {
			return fmt.Sprintf("%d entries", len(store)), nil
		},
		Params: cmdtree.Signature{},
		Doc:    "Show how many entries the store holds",
	}); err != nil {
		return nil, err
	}

	return tree, nil
}
