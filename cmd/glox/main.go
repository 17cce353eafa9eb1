// Command glox is the golox interpreter's CLI: file execution, a REPL, and
// a one-off command-string mode (spec.md §6 "External Interfaces").
package main

import (
	"fmt"
	"os"
	"path"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/spf13/cobra"

	"golox/internal/lox/ast"
	"golox/internal/lox/interpreter"
	"golox/internal/lox/loxerr"
	"golox/internal/lox/parser"
	"golox/internal/lox/resolver"
)

var (
	cmdString string
	printAST  bool
	noColor   bool

	log = logrus.New()
)

func main() {
	root := &cobra.Command{
		Use:   "glox [script]",
		Short: "glox runs Lox programs",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRoot,
	}
	root.Flags().StringVarP(&cmdString, "c", "c", "", "run the given source string and exit")
	root.Flags().BoolVarP(&printAST, "ast", "", false, "print the parsed AST instead of running it")
	root.Flags().BoolVarP(&noColor, "no-color", "", false, "disable ANSI diagnostics output")

	if err := root.Execute(); err != nil {
		os.Exit(64)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if noColor {
		loxerr.DisableColor()
	}
	log.SetFormatter(&easy.Formatter{
		LogFormat: "[%lvl%] %msg%\n",
	})

	switch {
	case cmdString != "":
		return runSourceAndExit(cmdString, interpreter.New())
	case len(args) == 1:
		return runFileAndExit(args[0])
	default:
		return runREPL()
	}
}

func runFileAndExit(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(64)
	}
	return runSourceAndExit(string(data), interpreter.New())
}

func runSourceAndExit(source string, interp *interpreter.Interpreter) error {
	if err := run(source, interp); err != nil {
		reportErr(err)
		if _, ok := err.(*loxerr.RuntimeError); ok {
			os.Exit(70)
		}
		os.Exit(65)
	}
	return nil
}

// reportErr prints err the way the diagnostics contract in spec.md §6/§7
// requires, preferring the colorized Report() form when available.
func reportErr(err error) {
	switch e := err.(type) {
	case *loxerr.RuntimeError:
		fmt.Fprintln(os.Stderr, e.Report())
	case *loxerr.List:
		fmt.Fprint(os.Stderr, e.Report())
	default:
		fmt.Fprintln(os.Stderr, err)
	}
}

func run(source string, interp *interpreter.Interpreter) error {
	stmts, err := parser.Parse(source)
	if printAST {
		fmt.Println(ast.Print(stmts))
		return err
	}
	if err != nil {
		return err
	}

	depths, err := resolver.Resolve(stmts)
	if err != nil {
		return err
	}

	return interp.Interpret(stmts, depths)
}

func runREPL() error {
	cfg := &readline.Config{Prompt: "> "}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		cfg.HistoryFile = path.Join(homeDir, ".lox_history")
	} else {
		log.WithError(err).Debug("can't resolve home directory, history will not be saved")
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("starting REPL: %w", err)
	}
	defer rl.Close()

	log.Debug("REPL session starting")
	fmt.Fprintln(os.Stderr, "Welcome to glox!")

	interp := interpreter.New()
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			log.Debug("REPL session ending (EOF)")
			break
		}
		log.WithField("line", line).Debug("REPL line read")
		if err := run(line, interp); err != nil {
			reportErr(err)
		}
	}
	return nil
}
