package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smarty/packcheck/contracts"
)

type Config struct {
	InputPath          string
	SchemaPath         string
	VersionsSchemaPath string
	DiffPath           string
	FollowLinks        bool
	OnlyFirst          bool
	Shallow            bool
	UID                string
	MaxRetry           int
	Verbose            bool
}

func (this Config) FollowMode() contracts.FollowMode {
	return contracts.ComposeFollowMode(this.FollowLinks, this.OnlyFirst)
}

func (this Config) Validate() error {
	if this.OnlyFirst && !this.FollowLinks {
		return errOnlyFirstWithoutFollow
	}
	if this.Shallow && !this.FollowLinks {
		return errShallowWithoutFollow
	}
	if this.MaxRetry < 0 {
		return errNegativeMaxRetry
	}
	return nil
}

func addCommonFlags(command *cobra.Command) {
	flags := command.Flags()
	flags.String("schema", "", "Path to the JSON Schema for the input document (default: embedded schema).")
	flags.Bool("follow-links", false, "Fetch and validate linked documents and archives.")
	flags.Bool("only-first", false, "Follow only the first link at each level (requires --follow-links).")
	flags.Int("max-retry", 0, "How many times to retry a download after a transport or server error.")
	flags.BoolP("verbose", "v", false, "Print progress to standard output.")
}

// loadConfig reads flags, falling back to PACKCHECK_* environment variables.
func loadConfig(command *cobra.Command, args []string) (config Config, err error) {
	v := viper.New()
	v.SetEnvPrefix("PACKCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err = v.BindPFlags(command.Flags()); err != nil {
		return config, err
	}

	config.SchemaPath = v.GetString("schema")
	config.FollowLinks = v.GetBool("follow-links")
	config.OnlyFirst = v.GetBool("only-first")
	config.MaxRetry = v.GetInt("max-retry")
	config.Verbose = v.GetBool("verbose")
	if command.Flags().Lookup("versions-schema") != nil {
		config.VersionsSchemaPath = v.GetString("versions-schema")
		config.DiffPath = v.GetString("diff")
		config.Shallow = v.GetBool("shallow")
	}
	if command.Flags().Lookup("uid") != nil {
		config.UID = v.GetString("uid")
	}
	if len(args) > 0 {
		config.InputPath = args[0]
	}

	if err = config.Validate(); err != nil {
		return config, &UsageError{Err: err}
	}
	return config, nil
}

// UsageError marks a failure caused by how the command was invoked rather than by the input.
type UsageError struct {
	Err error
}

func (this *UsageError) Error() string { return this.Err.Error() }

func (this *UsageError) Unwrap() error { return this.Err }

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(command *cobra.Command, args []string) error {
		if err := validate(command, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

func usageFlagError(_ *cobra.Command, err error) error {
	return &UsageError{Err: err}
}

var (
	errOnlyFirstWithoutFollow = errors.New("--only-first requires --follow-links")
	errShallowWithoutFollow   = errors.New("--shallow requires --follow-links")
	errNegativeMaxRetry       = errors.New("--max-retry must not be negative")
)
