package application

import (
	"github.com/tbrowse/themescan/internal/domain/model"
)

// EscalationThreshold is the confidence below which the classifier consults
// the structure evidence source. The same value gates patch emission. An
// earlier revision of this pipeline used 0.7; 0.9 is authoritative.
const EscalationThreshold = 0.9

// StructureConfidence is the fixed confidence assigned when the winning
// strategy is derived from structure evidence alone.
const StructureConfidence = 0.5

// hintSignalWeight is the weight recorded on the synthetic audit signal
// appended when a manual hint overrides the computed result.
const hintSignalWeight = 10

// TallySignals sums signal weights per strategy.
func TallySignals(signals []model.Signal) model.Tally {
	var tally model.Tally
	for _, s := range signals {
		tally.Add(s.Category, s.Weight)
	}
	return tally
}

// adjustTally applies the tie-break boosts to a raw tally:
//   - load over setup: an explicit load call is a stronger behavioral
//     commitment than an implicit setup pattern, so load gets +2 when both
//     are present and load is at least even.
//   - setup over colorscheme: a configuration step implies setup is the true
//     entry point even when an activation command appears in the same
//     document, so setup gets +3 when both are present.
func adjustTally(t model.Tally) model.Tally {
	if t.Load > 0 && t.Setup > 0 && t.Load >= t.Setup {
		t.Load += 2
	}
	if t.Setup > 0 && t.Colorscheme > 0 {
		t.Setup += 3
	}
	return t
}

// rankTally returns the winning strategy, its confidence, and the adjusted
// tally ranking. The winner is unknown when no category carries weight.
func rankTally(t model.Tally) (model.Strategy, float64) {
	ranked := t.Rank()
	top := t.Get(ranked[0])
	if top == 0 {
		return model.StrategyUnknown, 0
	}

	runnerUp := t.Get(ranked[1])
	confidence := float64(top)/10 + float64(top-runnerUp)/10
	if confidence > 1 {
		confidence = 1
	}
	return ranked[0], confidence
}

// ClassifyText runs the text-only stage of the strategy classifier. The
// result's NeedsEscalation flag tells the orchestrator whether to consult
// structure evidence. Classification never fails; it only consumes
// already-fetched evidence.
func ClassifyText(text string) model.Classification {
	signals := ExtractTextSignals(text)
	tally := adjustTally(TallySignals(signals))
	winner, confidence := rankTally(tally)

	return model.Classification{
		Strategy:        winner,
		Confidence:      confidence,
		Signals:         signals,
		NeedsEscalation: winner == model.StrategyUnknown || confidence < EscalationThreshold,
	}
}

// MergeStructure folds structure-derived signals into a text-only result.
// The structure signals always join the audit trail. The winner is replaced
// only when the text stage was inconclusive (unknown winner, or confidence
// below the escalation threshold) and structure reaches a non-unknown
// verdict of its own, at the fixed structure confidence.
func MergeStructure(cls model.Classification, structSignals []model.Signal) model.Classification {
	cls.Signals = append(cls.Signals, structSignals...)

	structWinner, _ := rankTally(TallySignals(structSignals))
	if structWinner == model.StrategyUnknown {
		return cls
	}

	if cls.Strategy == model.StrategyUnknown || cls.Confidence < EscalationThreshold {
		cls.Strategy = structWinner
		cls.Confidence = StructureConfidence
	}
	return cls
}

// ApplyHint overrides a computed classification with a manual hint. The hint
// always wins with confidence exactly 1.0, and a synthetic signal records
// the override in the audit trail. Hints with no strategy field leave the
// computed result untouched.
func ApplyHint(cls model.Classification, hint model.Hint) model.Classification {
	if hint.Strategy == "" {
		return cls
	}

	cls.Strategy = hint.Strategy
	cls.Confidence = 1.0
	cls.Signals = append(cls.Signals, model.Signal{
		Category: hint.Strategy,
		Weight:   hintSignalWeight,
		Reason:   "manual hint override: " + hint.Reason,
	})
	cls.NeedsEscalation = false
	return cls
}
