// Command noticectl drives the legal-notice backend from a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/desk"
	"github.com/debemdeboas/notice-desk/internal/logger"
	"github.com/debemdeboas/notice-desk/internal/model"
	"github.com/debemdeboas/notice-desk/internal/noticeapi"
)

const usage = `usage: noticectl [-api URL] [-timeout D] <command> [flags]

commands:
  templates              list the available templates
  template NAME          print a template body
  generate               draft a notice (-party1 -party2 -issue [-template] [-out])
  save                   save a notice (-party1 -party2 -issue [-template])
  history                list recently saved notices
  notice ID              open a saved notice
  pdf                    render a draft to PDF (-draft-file [-out])
  email                  email a draft as PDF (-draft-file -to)
  interactive            fill the form with prompts

Command flags may come before or after the positional argument. Defaults for
-api and -timeout come from the desk config (NOTICE_DESK_CONFIG or config.yaml).
`

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("noticectl", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	apiURL := global.String("api", cfg.API.BaseURL, "notice API base URL")
	timeout := global.Duration("timeout", cfg.API.Timeout, "request timeout, 0 disables")
	logLevel := global.String("log-level", envOr(config.EnvLogLevel, "warn"), "log level")

	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	l := zerolog.Nop()
	if *logLevel != "disabled" {
		l = logger.NewWithWriter(*logLevel, zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen})
	}

	client := noticeapi.New(*apiURL,
		noticeapi.WithTimeout(*timeout),
		noticeapi.WithLogger(logger.Component(l, "noticeapi")),
	)
	c := &cli{
		desk: desk.New(client, desk.WithLogger(logger.Component(l, "desk"))),
		out:  newPrinter(stdout),
		err:  newPrinter(stderr),
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	if cmd == "interactive" {
		return c.interactive(ctx, newSurveyPrompter())
	}
	return c.command(ctx, cmd, rest)
}

type cli struct {
	desk *desk.Desk
	out  *printer
	err  *printer
}

type formFlags struct {
	set       *flag.FlagSet
	party1    *string
	party2    *string
	issue     *string
	template  *string
	draftFile *string
	to        *string
	out       *string
}

func newFormFlags(name string, stderr io.Writer) *formFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return &formFlags{
		set:       fs,
		party1:    fs.String("party1", "", `sender block, "Name\nAddress line..."`),
		party2:    fs.String("party2", "", `recipient block, "Name\nAddress line..."`),
		issue:     fs.String("issue", "", "issue description"),
		template:  fs.String("template", "", "template id"),
		draftFile: fs.String("draft-file", "", "file holding the draft text"),
		to:        fs.String("to", "", "recipient email"),
		out:       fs.String("out", "", "output file"),
	}
}

// form builds the notice form. A literal \n in a party flag is a line break.
func (f *formFlags) form() (model.Form, error) {
	form := model.Form{
		Party1:    unescapeNewlines(*f.party1),
		Party2:    unescapeNewlines(*f.party2),
		Issue:     *f.issue,
		Template:  *f.template,
		Recipient: *f.to,
	}
	if *f.draftFile != "" {
		data, err := os.ReadFile(*f.draftFile)
		if err != nil {
			return form, fmt.Errorf("read draft: %w", err)
		}
		form.Draft = string(data)
	}
	return form, nil
}

func (c *cli) command(ctx context.Context, cmd string, args []string) int {
	flags := newFormFlags(cmd, c.err.w)
	positional, err := parseInterspersed(flags.set, args)
	if err != nil {
		return 2
	}
	form, err := flags.form()
	if err != nil {
		c.err.failure(err.Error())
		return 1
	}

	switch cmd {
	case "templates":
		res := c.desk.LoadTemplates(ctx)
		if res.Err != nil {
			c.err.failure(fmt.Sprintf("could not list templates: %v", res.Err))
		}
		for _, o := range res.Value {
			c.out.line(fmt.Sprintf("%-24s %s", displayValue(o.Value), o.Label))
		}
		return exitCode(res.Failed() || res.Err != nil)

	case "template":
		if len(positional) > 0 {
			form.Template = positional[0]
		}
		res := c.desk.LoadTemplate(ctx, form)
		c.err.banner(res.Banner)
		if !res.Failed() {
			c.out.line(res.Value)
		}
		return exitCode(res.Failed())

	case "generate":
		res := c.desk.GenerateDraft(ctx, form)
		c.err.banner(res.Banner)
		if res.Failed() {
			return 1
		}
		if *flags.out != "" {
			return c.writeFile(*flags.out, []byte(res.Value.Text), "Draft written to %s")
		}
		c.out.line(res.Value.Text)
		return 0

	case "save":
		res := c.desk.SaveNotice(ctx, form)
		c.err.banner(res.Banner)
		if !res.Failed() {
			c.out.line(string(res.Value.ID))
		}
		return exitCode(res.Failed())

	case "history":
		res := c.desk.LoadHistory(ctx)
		c.err.banner(res.Banner)
		if res.Failed() {
			return 1
		}
		c.out.history(res.Value)
		return 0

	case "notice":
		res := c.desk.LoadNotice(ctx, model.NoticeID(firstOr(positional, "")))
		c.err.banner(res.Banner)
		return exitCode(res.Failed())

	case "pdf":
		res := c.desk.DownloadPDF(ctx, form)
		if res.Failed() {
			c.err.banner(res.Banner)
			return 1
		}
		path := *flags.out
		if path == "" {
			path = res.Value.Filename
		}
		if code := c.writeFile(path, res.Value.Data, "PDF written to %s"); code != 0 {
			return code
		}
		c.err.banner(res.Banner)
		return 0

	case "email":
		res := c.desk.SendEmail(ctx, form)
		c.err.banner(res.Banner)
		return exitCode(res.Failed())

	default:
		c.err.failure(fmt.Sprintf("unknown command %q", cmd))
		fmt.Fprint(c.err.w, usage)
		return 2
	}
}

// loadConfig reads the desk config named by NOTICE_DESK_CONFIG, or
// config.yaml, so the CLI talks to the same backend as the server.
func loadConfig() (*config.Config, error) {
	path := envOr(config.EnvConfigPath, config.DefaultConfigPath)
	if err := config.LoadConfig(path); err != nil {
		return nil, err
	}
	cfg := config.AppConfig
	config.ApplyEnv(cfg)
	return cfg, nil
}

// parseInterspersed parses flags that appear before, between or after
// positional arguments and returns the positional ones in order. A lone "--"
// ends flag parsing.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if len(args) > len(rest) && args[len(args)-len(rest)-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func firstOr(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}
	return args[0]
}

func (c *cli) writeFile(path string, data []byte, doneFmt string) int {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.err.failure(fmt.Sprintf("write %s: %v", path, err))
		return 1
	}
	c.err.note(fmt.Sprintf(doneFmt, path))
	return 0
}

func exitCode(failed bool) int {
	if failed {
		return 1
	}
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func displayValue(v string) string {
	if v == "" {
		return "(custom)"
	}
	return v
}

var errAborted = errors.New("aborted")
