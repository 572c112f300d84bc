package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := execRootCmd(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "formvalidator",
		Short:        "Signup form validation server and tools",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newCheckCmd(),
		newRulesCmd(),
	)
	return root
}

func execRootCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
