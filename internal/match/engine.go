package match

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"pdfbib/internal/candidate"
	"pdfbib/internal/crossref"
	"pdfbib/internal/similarity"
)

// Defaults for the acceptance policy and resolver pacing.
const (
	DefaultThreshold   = 0.55
	DefaultTitleMinLen = 30
	DefaultTitleRows   = 5
	DefaultDelay       = time.Second
)

// state names the engine's positions. Decide walks
// START → CANDIDATE_SCAN → (ACCEPTED | TITLE_FALLBACK → (ACCEPTED | REJECTED)) → DONE.
type state int

const (
	stateStart state = iota
	stateCandidateScan
	stateTitleFallback
	stateAccepted
	stateRejected
	stateDone
)

// Engine iterates a document's identifier candidates in trust order,
// resolves each against the catalog, and applies the acceptance policy.
// One Engine instance serves a whole run: the inter-call delay it
// enforces is a global budget across documents, not a per-document one.
type Engine struct {
	Resolver crossref.Resolver

	// Threshold is the minimum title similarity for accepting a low-trust
	// candidate or a title-search hit. Zero means DefaultThreshold.
	Threshold float64
	// TitleAutoAccept enables promotion of title-search hits. Off by
	// default: the title path is the least reliable and goes to manual
	// review instead.
	TitleAutoAccept bool
	// TitleMinLen is the minimum candidate-title length for auto-accepting
	// a title-search hit. Zero means DefaultTitleMinLen.
	TitleMinLen int
	// TitleRows is the result budget for title queries. Zero means
	// DefaultTitleRows.
	TitleRows int
	// Delay is the minimum spacing between consecutive resolver calls.
	// Zero disables pacing (tests); live configuration uses DefaultDelay.
	Delay time.Duration

	// sleep and now are test seams.
	sleep func(time.Duration)
	now   func() time.Time

	lastCall time.Time
}

// Decide runs the state machine for one document and returns its Outcome
// plus, when a title-search hit was declined, a ReviewEntry. The Outcome
// never carries StatusError; entry construction downstream may still
// demote a match.
func (e *Engine) Decide(ctx context.Context, doc Document) (Outcome, *ReviewEntry) {
	out := Outcome{Status: StatusNoMatch, Confidence: ConfidenceNone}
	var review *ReviewEntry

	st := stateStart
	for st != stateDone {
		switch st {
		case stateStart:
			st = stateCandidateScan

		case stateCandidateScan:
			if e.scanCandidates(ctx, doc, &out) {
				st = stateAccepted
			} else if strings.TrimSpace(doc.TitleCandidate) != "" {
				st = stateTitleFallback
			} else {
				st = stateRejected
			}

		case stateTitleFallback:
			accepted, entry := e.titleFallback(ctx, doc, &out)
			review = entry
			if accepted {
				st = stateAccepted
			} else {
				st = stateRejected
			}

		case stateAccepted:
			out.Status = StatusMatched
			st = stateDone

		case stateRejected:
			out.Status = StatusNoMatch
			st = stateDone
		}
	}
	return out, review
}

// scanCandidates resolves identifier candidates in trust order and
// reports whether one was accepted. The scan short-circuits on the first
// acceptance; it never revisits a later, possibly better, match.
func (e *Engine) scanCandidates(ctx context.Context, doc Document, out *Outcome) bool {
	cands := candidate.Extract("", doc.FirstPages)
	if len(cands) == 0 && doc.FullText != nil {
		// Full text is expensive; only materialize it when the first
		// pages came up empty.
		cands = candidate.Extract(doc.FullText(), doc.FirstPages)
	}

	for _, c := range cands {
		rec, err := e.resolve(ctx, c.DOI)
		if err != nil {
			out.Warning = "crossref doi query: " + err.Error()
			log.Warn().Err(err).Str("doi", c.DOI).Str("file", doc.Name).Msg("doi resolution failed")
			continue
		}
		if rec == nil {
			// A regex match that Crossref does not know is a false
			// positive, not an error.
			continue
		}
		sim := similarity.Ratio(doc.TitleCandidate, rec.PrimaryTitle())
		if c.Provenance.HighTrust() {
			e.accept(out, rec, c.DOI, ConfidenceHigh, c.Provenance, sim)
			return true
		}
		if sim >= e.threshold() {
			e.accept(out, rec, c.DOI, ConfidenceMedium, c.Provenance, sim)
			return true
		}
		log.Debug().Str("doi", c.DOI).Float64("similarity", sim).Str("file", doc.Name).
			Msg("low-trust candidate below threshold, discarded")
	}
	return false
}

// titleFallback issues the single title query and gates acceptance.
// A hit that fails the gate becomes a ReviewEntry rather than a match.
func (e *Engine) titleFallback(ctx context.Context, doc Document, out *Outcome) (bool, *ReviewEntry) {
	rows := e.TitleRows
	if rows <= 0 {
		rows = DefaultTitleRows
	}
	e.pace(ctx)
	rec, err := e.Resolver.SearchTitle(ctx, doc.TitleCandidate, rows)
	e.lastCall = e.clock()
	if err != nil {
		out.Warning = "crossref title search: " + err.Error()
		log.Warn().Err(err).Str("file", doc.Name).Msg("title search failed")
		return false, nil
	}
	if rec == nil || rec.DOI == "" {
		return false, nil
	}

	sim := similarity.Ratio(doc.TitleCandidate, rec.PrimaryTitle())
	if reason := e.titleGate(doc.TitleCandidate, sim); reason != "" {
		return false, &ReviewEntry{
			Filename:       doc.Name,
			CandidateTitle: doc.TitleCandidate,
			AttemptedTitle: rec.PrimaryTitle(),
			AttemptedDOI:   rec.DOI,
			Similarity:     sim,
			Reason:         reason,
		}
	}
	e.accept(out, rec, rec.DOI, ConfidenceTitleSearch, "", sim)
	out.Source = SourceTitleSearch
	return true, nil
}

// titleGate returns the reason a title-search hit may not be
// auto-accepted, or "" when it passes every guard.
func (e *Engine) titleGate(title string, sim float64) string {
	if !e.TitleAutoAccept {
		return ReasonAutoAcceptDisabled
	}
	if sim < e.threshold() {
		return ReasonLowSimilarity
	}
	minLen := e.TitleMinLen
	if minLen <= 0 {
		minLen = DefaultTitleMinLen
	}
	if len(title) < minLen {
		return ReasonTitleTooShort
	}
	if candidate.ContainsAffiliation(title) {
		return ReasonAffiliationTerm
	}
	return ""
}

func (e *Engine) accept(out *Outcome, rec *crossref.Work, doi string, conf Confidence, prov candidate.Provenance, sim float64) {
	out.Record = rec
	out.DOI = doi
	out.Confidence = conf
	out.Provenance = prov
	out.Similarity = sim
	out.Source = SourcePDFText
}

// resolve paces and performs one identifier lookup.
func (e *Engine) resolve(ctx context.Context, doi string) (*crossref.Work, error) {
	e.pace(ctx)
	rec, err := e.Resolver.ResolveDOI(ctx, doi)
	e.lastCall = e.clock()
	return rec, err
}

// pace blocks until the configured delay has elapsed since the previous
// resolver call, whatever document that call served.
func (e *Engine) pace(ctx context.Context) {
	if e.Delay <= 0 || e.lastCall.IsZero() {
		return
	}
	wait := e.Delay - e.clock().Sub(e.lastCall)
	if wait <= 0 {
		return
	}
	if e.sleep != nil {
		e.sleep(wait)
		return
	}
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}

func (e *Engine) threshold() float64 {
	if e.Threshold > 0 {
		return e.Threshold
	}
	return DefaultThreshold
}

func (e *Engine) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}
