// package main is entrypoint to cfndot cli application
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"go.interactor.dev/cfndot"
	"go.interactor.dev/cfndot/encoding"
)

const cliName = "cfndot"

// version is expected to be set with -ldflags="-X main.version=1.2.3"
var version = "dev-version"

func main() {
	command := NewCommand()
	if err := command.Execute(); err != nil {
		fmt.Printf("cfndot failed: %s\n", err)
		os.Exit(1)
	}
}

// NewCommand returns the root command of the cfndot cli. Every argument is a
// template file; without arguments one template is read from standard input.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     cliName + " [template.yaml ...]",
		Example: cliName + " stack.template.yaml | dot -Tsvg -o stack.svg",
		Short:   cliName + " renders the dependency graph of CloudFormation templates in Graphviz DOT format",
		Version: version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			return run(log, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func run(log *slog.Logger, files []string, stdin io.Reader, stdout io.Writer) error {
	graph := cfndot.NewGraph()

	if len(files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			log.Warn("skipping unreadable standard input", slog.Any("err", err))
		} else {
			cfndot.ParseTemplate(log, "stdin", data, graph)
		}
	}

	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			log.Warn("skipping unreadable template", slog.String("path", name), slog.Any("err", err))
			continue
		}
		cfndot.ParseTemplate(log, name, data, graph)
	}

	if _, err := stdout.Write(encoding.BuildDOTGraph(graph)); err != nil {
		return fmt.Errorf("writing dot graph to output: %w", err)
	}

	return nil
}
