// Package progress renders registry progress reports as short, localized
// status lines for loading splashes and tooling output.
package progress

import (
	"embed"
	"fmt"
	"io/fs"
	"iter"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/trio/pkg/trio/registry"
)

//go:embed locales/*.toml
var locales embed.FS

// Phase selects the verb used for a report.
type Phase int

const (
	PhaseCreate Phase = iota
	PhaseReload
	PhaseDiscard
)

func (p Phase) messageID() string {
	switch p {
	case PhaseReload:
		return "ProgressReload"
	case PhaseDiscard:
		return "ProgressDiscard"
	default:
		return "ProgressCreate"
	}
}

// Printer formats reports in one language.
type Printer struct {
	localizer *i18n.Localizer
	title     cases.Caser
}

// NewPrinter creates a printer for the first supported language in langs
// (BCP 47 tags or Accept-Language values), falling back to English.
func NewPrinter(langs ...string) (*Printer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("progress: load %s: %w", f, err)
		}
	}

	tag := language.English
	if len(langs) > 0 {
		matcher := language.NewMatcher(bundle.LanguageTags())
		tag, _ = language.MatchStrings(matcher, langs...)
	}

	return &Printer{
		localizer: i18n.NewLocalizer(bundle, langs...),
		title:     cases.Title(tag),
	}, nil
}

// DisplayName turns a screen name like "initial_screen" into "Initial Screen".
func (p *Printer) DisplayName(screen string) string {
	return p.title.String(strings.ReplaceAll(screen, "_", " "))
}

// Line describes one report.
func (p *Printer) Line(phase Phase, rep registry.Report) string {
	return p.localizer.MustLocalize(&i18n.LocalizeConfig{
		MessageID: phase.messageID(),
		TemplateData: map[string]any{
			"Screen":  p.DisplayName(rep.Name),
			"Current": rep.Current,
			"Total":   rep.Total,
		},
	})
}

// Done summarizes a finished operation.
func (p *Printer) Done(count int) string {
	return p.localizer.MustLocalize(&i18n.LocalizeConfig{
		MessageID:    "ProgressDone",
		TemplateData: map[string]any{"Count": count},
		PluralCount:  count,
	})
}

// Percent returns how far along rep is, from 0 to 100.
func Percent(rep registry.Report) int {
	if rep.Total <= 0 {
		return 100
	}
	return rep.Current * 100 / rep.Total
}

// Narrate drains seq, passing one line per report to out, and returns the
// number of reports seen.
func (p *Printer) Narrate(seq iter.Seq2[registry.Report, error], phase Phase, out func(line string)) (int, error) {
	count := 0
	for rep, err := range seq {
		if err != nil {
			return count, err
		}
		count++
		out(p.Line(phase, rep))
	}
	return count, nil
}
