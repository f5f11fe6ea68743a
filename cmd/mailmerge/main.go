// Command mailmerge sends a templated email campaign to a CSV recipient
// list.
//
// Usage:
//
//	mailmerge [flags]
//
// The flags default to the conventional file names, so running the
// command in a directory holding config.json, companies.csv, and
// email_template.txt needs no arguments. Use -test to preview the
// campaign without sending anything.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fieldsend/mailmerge"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "The following files are needed in the working directory:")
			fmt.Fprintln(os.Stderr, "  config.json         delivery settings (see examples/campaign/config.json)")
			fmt.Fprintln(os.Stderr, "  companies.csv       recipient list with a header row")
			fmt.Fprintln(os.Stderr, "  email_template.txt  subject line, separator, then the body")
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	var (
		csvPath      = flag.String("csv", "companies.csv", "path to the recipient CSV file")
		templatePath = flag.String("template", "email_template.txt", "path to the email template file")
		configPath   = flag.String("config", "config.json", "path to the configuration file")
		delay        = flag.Float64("delay", 1.0, "seconds to wait between sends")
		test         = flag.Bool("test", false, "render and count recipients without sending")
		max          = flag.Int("max", 0, "maximum number of recipients to process (0 = all)")
		html         = flag.Bool("html", false, "send the body as HTML instead of plain text")
		version      = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println("mailmerge", mailmerge.GetVersion())
		return nil
	}

	cfg, err := mailmerge.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	recipients, err := mailmerge.LoadRecipients(*csvPath)
	if err != nil {
		return err
	}

	tmpl, err := mailmerge.LoadTemplate(*templatePath)
	if err != nil {
		return err
	}

	var provider mailmerge.Provider
	if !*test {
		provider, err = mailmerge.NewProvider(cfg)
		if err != nil {
			return err
		}
	}

	campaign := mailmerge.NewCampaign(provider, cfg.From(),
		mailmerge.WithDelay(time.Duration(*delay*float64(time.Second))),
		mailmerge.WithDryRun(*test),
		mailmerge.WithMaxRecipients(*max),
		mailmerge.WithHTML(*html),
	)

	fmt.Printf("mailmerge: %d recipients loaded from %s\n", len(recipients), *csvPath)

	summary, err := campaign.Run(context.Background(), recipients, tmpl)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(summary)
	return nil
}
