package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/debemdeboas/notice-desk/internal/desk"
	"github.com/debemdeboas/notice-desk/internal/model"
)

// prompter is the terminal the interactive mode talks to.
type prompter interface {
	Select(message string, options []string) (int, error)
	Multiline(message, def string) (string, error)
	Input(message string, validate func(string) error) (string, error)
}

type surveyPrompter struct{}

func newSurveyPrompter() prompter {
	return surveyPrompter{}
}

func (surveyPrompter) Select(message string, options []string) (int, error) {
	var idx int
	if err := survey.AskOne(&survey.Select{Message: message, Options: options}, &idx); err != nil {
		return 0, translateSurveyErr(err)
	}
	return idx, nil
}

func (surveyPrompter) Multiline(message, def string) (string, error) {
	var out string
	if err := survey.AskOne(&survey.Multiline{Message: message, Default: def}, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Input(message string, validate func(string) error) (string, error) {
	var out string
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}
	if err := survey.AskOne(&survey.Input{Message: message}, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

const (
	actionSave    = "Save notice"
	actionPDF     = "Download PDF"
	actionEmail   = "Email PDF"
	actionHistory = "Show history"
	actionQuit    = "Quit"
)

var nextActions = []string{actionSave, actionPDF, actionEmail, actionHistory, actionQuit}

// interactive walks the form the way the page does: pick a template, fill
// the parties and the issue, generate, then act on the draft.
func (c *cli) interactive(ctx context.Context, p prompter) int {
	err := c.runInteractive(ctx, p)
	switch {
	case err == nil, errors.Is(err, errAborted):
		return 0
	default:
		c.err.failure(err.Error())
		return 1
	}
}

func (c *cli) runInteractive(ctx context.Context, p prompter) error {
	var form model.Form

	options := c.desk.LoadTemplates(ctx).Value
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	idx, err := p.Select("Template", labels)
	if err != nil {
		return err
	}
	form.Template = options[idx].Value

	if form.Template != "" {
		res := c.desk.LoadTemplate(ctx, form)
		c.out.banner(res.Banner)
		if !res.Failed() {
			form.Issue = res.Value
		}
	}

	if form.Party1, err = p.Multiline("Party 1 (name, then address lines)", ""); err != nil {
		return err
	}
	if form.Party2, err = p.Multiline("Party 2 (name, then address lines)", ""); err != nil {
		return err
	}
	if form.Issue, err = p.Multiline("Issue", form.Issue); err != nil {
		return err
	}

	draft := c.desk.GenerateDraft(ctx, form)
	c.out.banner(draft.Banner)
	if draft.Failed() {
		return nil
	}
	form.Draft = draft.Value.Text
	c.out.line(form.Draft)

	for {
		choice, err := p.Select("Next", nextActions)
		if err != nil {
			return err
		}

		switch nextActions[choice] {
		case actionSave:
			c.out.banner(c.desk.SaveNotice(ctx, form).Banner)
		case actionPDF:
			res := c.desk.DownloadPDF(ctx, form)
			if !res.Failed() {
				if err := os.WriteFile(res.Value.Filename, res.Value.Data, 0o644); err != nil {
					c.out.failure(fmt.Sprintf("write %s: %v", res.Value.Filename, err))
					continue
				}
			}
			c.out.banner(res.Banner)
		case actionEmail:
			to, err := p.Input("Recipient email", func(s string) error {
				if !desk.ValidEmail(s) {
					return errors.New(desk.MsgInvalidEmail)
				}
				return nil
			})
			if err != nil {
				return err
			}
			form.Recipient = to
			c.out.banner(c.desk.SendEmail(ctx, form).Banner)
		case actionHistory:
			res := c.desk.LoadHistory(ctx)
			c.out.banner(res.Banner)
			if !res.Failed() {
				c.out.history(res.Value)
			}
		case actionQuit:
			return nil
		}
	}
}
