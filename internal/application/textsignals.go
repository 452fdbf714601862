package application

import (
	"regexp"
	"strings"

	"github.com/tbrowse/themescan/internal/domain/model"
)

// Canonical rule weights for text evidence. An explicit invocation is a
// stronger behavioral commitment than a generic pattern, so explicit rules
// carry the large weights.
const (
	weightExplicitLoad     = 8
	weightGenericLoad      = 2
	weightExplicitSetup    = 6
	weightGenericSetup     = 2
	weightColorschemeCmd   = 4
	weightLegacyGlobal     = 3
	weightBackgroundPhrase = 2
	weightOrderingPhrase   = 2
)

var (
	requireRe       = regexp.MustCompile(`require\s*\(\s*['"][\w./-]+['"]\s*\)`)
	explicitLoadRe  = regexp.MustCompile(`require\s*\(\s*['"][\w./-]+['"]\s*\)\s*\.\s*load\s*\(`)
	genericLoadRe   = regexp.MustCompile(`\bload\s*\(`)
	explicitSetupRe = regexp.MustCompile(`require\s*\(\s*['"][\w./-]+['"]\s*\)\s*\.\s*setup\s*\(\s*\{`)
	genericSetupRe  = regexp.MustCompile(`\bsetup\s*\(\s*\{`)

	// Three textual variants of direct colorscheme activation.
	colorschemeCmdRe     = regexp.MustCompile(`(?m)(?:^|\s|:)colorscheme[! ]\s*[\w.-]+`)
	colorschemeQuotedRe  = regexp.MustCompile(`vim\.cmd\s*[\(\[]?\s*['"]\s*colorscheme\s`)
	colorschemeChainedRe = regexp.MustCompile(`vim\.cmd\.colorscheme\s*\(`)

	legacyGlobalRe = regexp.MustCompile(`(?m)vim\.g\.\w+\s*=|^\s*let\s+g:\w+`)
)

// orderingPhrases suggest a required init order: configuration must happen
// before activation, which marks setup as the true entry point.
var orderingPhrases = []string{
	"before loading",
	"before you load",
	"prior to loading",
	"must set global",
	"must be set before",
}

// ExtractTextSignals applies the ordered text rules over free-text evidence
// (repository description plus README). Each rule yields zero or one signal;
// independent rules may fire together and every match is kept.
func ExtractTextSignals(text string) []model.Signal {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	hasRequire := requireRe.MatchString(text)

	var signals []model.Signal
	add := func(category model.Strategy, weight int, reason string) {
		signals = append(signals, model.Signal{Category: category, Weight: weight, Reason: reason})
	}

	if explicitLoadRe.MatchString(text) {
		add(model.StrategyLoad, weightExplicitLoad, `explicit require("mod").load() invocation`)
	}
	if genericLoadRe.MatchString(text) && hasRequire {
		add(model.StrategyLoad, weightGenericLoad, "load( call co-occurring with a module require")
	}

	if explicitSetupRe.MatchString(text) {
		add(model.StrategySetup, weightExplicitSetup, `explicit require("mod").setup({...}) invocation`)
	} else if genericSetupRe.MatchString(text) {
		// The generic block rule is a fallback for the explicit form.
		add(model.StrategySetup, weightGenericSetup, "setup({...}) configuration block")
	}

	if colorschemeCmdRe.MatchString(text) {
		add(model.StrategyColorscheme, weightColorschemeCmd, "bare colorscheme command")
	}
	if colorschemeQuotedRe.MatchString(text) {
		add(model.StrategyColorscheme, weightColorschemeCmd, `vim.cmd("colorscheme ...") call`)
	}
	if colorschemeChainedRe.MatchString(text) {
		add(model.StrategyColorscheme, weightColorschemeCmd, "vim.cmd.colorscheme(...) call")
	}

	if legacyGlobalRe.MatchString(text) && !hasRequire {
		add(model.StrategyColorscheme, weightLegacyGlobal, "legacy global variable assignment without module require")
	}

	if strings.Contains(lower, "background") && strings.Contains(lower, "colorscheme") {
		add(model.StrategyColorscheme, weightBackgroundPhrase, "conditional background plus colorscheme usage")
	}

	for _, phrase := range orderingPhrases {
		if strings.Contains(lower, phrase) {
			add(model.StrategySetup, weightOrderingPhrase, "init ordering phrase: "+phrase)
			break
		}
	}

	return signals
}
