package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCommand(stdin, stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	_, _ = fmt.Fprintln(stderr, err)

	var usage *UsageError
	if errors.As(err, &usage) {
		_, _ = fmt.Fprintln(stderr, "Run 'packcheck --help' for usage.")
		return 2
	}
	return 1
}

func newRootCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "packcheck",
		Short:         "Validate packs and versions documents and the archives they link to.",
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}
	root.SetFlagErrorFunc(usageFlagError)
	root.AddCommand(
		newPacksCommand(stdin, stdout),
		newVersionsCommand(stdin, stdout),
		newVersionCommand(stdout),
	)
	return root
}

func newPacksCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	command := &cobra.Command{
		Use:   "packs [file]",
		Short: "Validate a packs document read from file or, if absent or '-', from stdin.",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(command *cobra.Command, args []string) error {
			config, err := loadConfig(command, args)
			if err != nil {
				return err
			}
			return NewApp(config, stdin, stdout).RunPacks()
		},
	}
	addCommonFlags(command)
	flags := command.Flags()
	flags.String("versions-schema", "", "Path to the JSON Schema for linked versions documents (default: embedded schema).")
	flags.String("diff", "", "Path to a previous packs document; only new or changed packages are validated.")
	flags.Bool("shallow", false, "Follow versions links but do not download archives (requires --follow-links).")
	return command
}

func newVersionsCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	command := &cobra.Command{
		Use:   "versions [file]",
		Short: "Validate a versions document read from file or, if absent or '-', from stdin.",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(command *cobra.Command, args []string) error {
			config, err := loadConfig(command, args)
			if err != nil {
				return err
			}
			return NewApp(config, stdin, stdout).RunVersions()
		},
	}
	addCommonFlags(command)
	command.Flags().String("uid", "", "Expected package_uid of every linked archive's manifest.json.")
	return command
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the packcheck version.",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(*cobra.Command, []string) {
			_, _ = fmt.Fprintf(stdout, "packcheck [%s]\n", ldflagsSoftwareVersion)
		},
	}
}

var ldflagsSoftwareVersion = "debug"
