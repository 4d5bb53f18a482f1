package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/smarty/packcheck/contracts"
	"github.com/smarty/packcheck/core"
	"github.com/smarty/packcheck/schema"
	"github.com/smarty/packcheck/shell"
)

type App struct {
	config Config
	stdin  io.Reader
	logger *log.Logger
}

func NewApp(config Config, stdin io.Reader, stdout io.Writer) *App {
	logger := log.NewWithOptions(stdout, log.Options{Level: log.WarnLevel})
	if config.Verbose {
		logger.SetLevel(log.InfoLevel)
	}
	return &App{config: config, stdin: stdin, logger: logger}
}

func (this *App) RunPacks() error {
	raw, err := this.readInput()
	if err != nil {
		return err
	}
	var document contracts.PacksDocument
	err = json.Unmarshal(raw, &document)
	if err != nil {
		return fmt.Errorf("parse %s: %w", this.inputName(), err)
	}
	if this.config.DiffPath != "" {
		original, err := readPacks(this.config.DiffPath)
		if err != nil {
			return err
		}
		document = document.Changes(original)
		this.logger.Infof("Validating %d new or changed packages", len(document.Records))
	}

	validator, err := compileSchema(this.config.SchemaPath, schema.PacksFilename)
	if err != nil {
		return err
	}
	this.logger.Infof("Validating %s", this.inputName())
	err = validator.Validate(document.Instance())
	if err != nil {
		return err
	}
	if !this.config.FollowLinks {
		return nil
	}

	versions, err := compileSchema(this.config.VersionsSchemaPath, schema.VersionsFilename)
	if err != nil {
		return err
	}
	return this.buildFollower(versions).FollowPacks(document)
}

func (this *App) RunVersions() error {
	raw, err := this.readInput()
	if err != nil {
		return err
	}
	validator, err := compileSchema(this.config.SchemaPath, schema.VersionsFilename)
	if err != nil {
		return err
	}
	this.logger.Infof("Validating %s", this.inputName())
	_, err = validator.ValidateDocument(raw)
	if err != nil {
		return err
	}
	if !this.config.FollowLinks {
		return nil
	}

	var listing contracts.VersionListing
	err = json.Unmarshal(raw, &listing)
	if err != nil {
		return fmt.Errorf("parse %s: %w", this.inputName(), err)
	}
	return this.buildFollower(validator).FollowVersions(this.config.UID, listing)
}

func (this *App) buildFollower(versions *core.SchemaValidator) *core.LinkFollower {
	downloader := core.NewRetryClient(
		shell.NewHTTPDownloader(shell.NewHTTPClient(), this.logger),
		this.config.MaxRetry,
		time.Sleep,
		this.logger,
	)
	verifier := core.NewArchiveVerifier(downloader, shell.NewZipInspector(), this.logger, "")
	options := core.FollowOptions{Mode: this.config.FollowMode(), Shallow: this.config.Shallow}
	return core.NewLinkFollower(downloader, versions, verifier, this.logger, options)
}

func (this *App) readInput() ([]byte, error) {
	if this.usesStdin() {
		return io.ReadAll(this.stdin)
	}
	return os.ReadFile(this.config.InputPath)
}

func (this *App) usesStdin() bool {
	return this.config.InputPath == "" || this.config.InputPath == "-"
}

func (this *App) inputName() string {
	if this.usesStdin() {
		return "<stdin>"
	}
	return this.config.InputPath
}

func readPacks(path string) (document contracts.PacksDocument, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return document, err
	}
	err = json.Unmarshal(raw, &document)
	if err != nil {
		return document, fmt.Errorf("parse %s: %w", path, err)
	}
	return document, nil
}

func compileSchema(path, fallback string) (*core.SchemaValidator, error) {
	document, name, err := shell.OpenSchema(path, fallback)
	if err != nil {
		return nil, err
	}
	defer func() { _ = document.Close() }()
	return core.NewSchemaValidator(name, document)
}
