package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"code.cloudfoundry.org/lager"

	domain "github.com/bryanwahyu/passwise/internal/domain/strength"
	"github.com/bryanwahyu/passwise/internal/middleware"
)

type AnalyzeCommand struct {
	Password string `short:"p" long:"password" description:"password to analyze (default: first line of stdin)" value-name:"PASSWORD"`
	Tenant   string `short:"t" long:"tenant" description:"tenant the analysis is recorded under" default:"public"`
	JSON     bool   `long:"json" description:"print the raw report as JSON"`
}

func (c *AnalyzeCommand) Execute(args []string) error {
	pwd := c.Password
	if pwd == "" {
		line, err := readLine(os.Stdin)
		if err != nil {
			return err
		}
		pwd = line
	}
	if err := middleware.ValidatePassword(pwd); err != nil {
		return err
	}

	ctx := context.Background()
	app, _, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.Service.Analyze(ctx, c.Tenant, pwd)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(os.Stdout, report)
	}
	renderReport(os.Stdout, report)
	return nil
}

type GenerateCommand struct {
	MinScore int  `long:"min-score" description:"minimum score the password must reach" default:"80"`
	Days     int  `long:"days" description:"minimum crack-time horizon in days" default:"36500"`
	JSON     bool `long:"json" description:"print the raw result as JSON"`
}

func (c *GenerateCommand) Execute(args []string) error {
	ctx := context.Background()
	app, _, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.Service.Generate(ctx, domain.GenerationRequest{MinScore: c.MinScore, TimeThresholdDays: c.Days})
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(os.Stdout, res)
	}
	renderGeneration(os.Stdout, res)
	return nil
}

type ImportBreachCommand struct {
	File   string `short:"f" long:"file" description:"newline-delimited corpus file" value-name:"FILE"`
	Object string `short:"o" long:"object" description:"corpus object key in the MinIO bucket" value-name:"KEY"`
	Upload bool   `long:"upload" description:"also upload --file to the bucket under breach.corpusKey"`
}

func (c *ImportBreachCommand) Execute(args []string) error {
	if (c.File == "") == (c.Object == "") {
		return fmt.Errorf("exactly one of --file or --object is required")
	}

	ctx := context.Background()
	app, logger, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	importer, err := app.BreachImporter()
	if err != nil {
		return err
	}

	var src io.ReadCloser
	if c.File != "" {
		src, err = os.Open(c.File)
	} else {
		if app.Store == nil {
			return fmt.Errorf("--object needs minio configured")
		}
		src, err = app.Store.Open(ctx, c.Object)
	}
	if err != nil {
		return err
	}
	defer src.Close()

	n, err := importer.Import(ctx, src)
	logger.Info("imported", lager.Data{"entries": n})
	if err != nil {
		return err
	}

	if c.Upload && c.File != "" {
		if app.Store == nil || app.Config.Breach.CorpusKey == "" {
			return fmt.Errorf("--upload needs minio and breach.corpusKey configured")
		}
		if err := app.Store.UploadCorpus(ctx, c.File, app.Config.Breach.CorpusKey); err != nil {
			return fmt.Errorf("upload corpus: %w", err)
		}
	}
	fmt.Printf("%s %d entries into %s backend\n", green("[IMPORTED]"), n, app.Config.Breach.Backend)
	return nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
