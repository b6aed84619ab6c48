package optic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/searchcore/engine/internal/errs"
	"github.com/searchcore/engine/pkg/model"
)

// parser is a small recursive-descent parser over the optic DSL token
// stream (spec §6).
type parser struct {
	lex  *lexer
	cur  token
	prev token
}

// Parse compiles optic source text into a model.Optic. Syntax errors are
// reported as *errs.OpticParseError with a line/column position (spec §6,
// §7).
func Parse(src string) (model.Optic, error) {
	p := &parser{lex: newLexer(src)}
	p.advance()

	optic := model.Optic{SignalCoefficients: map[model.Signal]float64{}}

	for p.cur.kind != tokEOF {
		if err := p.statement(&optic); err != nil {
			return model.Optic{}, err
		}
		if p.cur.kind == tokSemicolon {
			p.advance()
		}
	}
	return optic, nil
}

func (p *parser) advance() {
	p.prev = p.cur
	p.cur = p.lex.next()
}

func (p *parser) errf(format string, args ...interface{}) error {
	return &errs.OpticParseError{Line: p.cur.line, Col: p.cur.col, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.cur.kind != kind {
		return token{}, p.errf("expected %s, found %q", what, p.cur.text)
	}
	t := p.cur
	p.advance()
	return t, nil
}

func (p *parser) expectIdent(text string) error {
	if p.cur.kind != tokIdent || !strings.EqualFold(p.cur.text, text) {
		return p.errf("expected %q, found %q", text, p.cur.text)
	}
	p.advance()
	return nil
}

func (p *parser) statement(optic *model.Optic) error {
	if p.cur.kind != tokIdent {
		return p.errf("expected statement, found %q", p.cur.text)
	}
	switch strings.ToLower(p.cur.text) {
	case "discardnonmatching":
		p.advance()
		optic.DiscardNonMatching = true
		return nil
	case "rule":
		return p.ruleStatement(optic)
	case "like":
		host, err := p.hostCallStatement()
		if err != nil {
			return err
		}
		optic.HostRankings.Liked = append(optic.HostRankings.Liked, host)
		return nil
	case "dislike":
		host, err := p.hostCallStatement()
		if err != nil {
			return err
		}
		optic.HostRankings.Disliked = append(optic.HostRankings.Disliked, host)
		return nil
	case "ranking":
		return p.rankingStatement(optic)
	default:
		return p.errf("unknown statement %q", p.cur.text)
	}
}

// hostCallStatement parses `Like(Site("host"))` / `Dislike(Site("host"))`.
func (p *parser) hostCallStatement() (string, error) {
	p.advance() // Like / Dislike
	if _, err := p.expect(tokLParen, "("); err != nil {
		return "", err
	}
	if err := p.expectIdent("Site"); err != nil {
		return "", err
	}
	if _, err := p.expect(tokLParen, "("); err != nil {
		return "", err
	}
	str, err := p.expect(tokString, "string literal")
	if err != nil {
		return "", err
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return "", err
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return "", err
	}
	return str.text, nil
}

// rankingStatement parses `Ranking(Signal("name"), n)`.
func (p *parser) rankingStatement(optic *model.Optic) error {
	p.advance() // Ranking
	if _, err := p.expect(tokLParen, "("); err != nil {
		return err
	}
	if err := p.expectIdent("Signal"); err != nil {
		return err
	}
	if _, err := p.expect(tokLParen, "("); err != nil {
		return err
	}
	name, err := p.expect(tokString, "signal name")
	if err != nil {
		return err
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return err
	}
	if _, err := p.expect(tokComma, ","); err != nil {
		return err
	}
	numTok, err := p.expect(tokNumber, "coefficient")
	if err != nil {
		return err
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return err
	}
	val, convErr := strconv.ParseFloat(numTok.text, 64)
	if convErr != nil {
		return p.errf("invalid coefficient %q", numTok.text)
	}
	sig, ok := model.ParseSignal(name.text)
	if !ok {
		return p.errf("unknown signal %q", name.text)
	}
	optic.SignalCoefficients[sig] = val
	return nil
}

// ruleStatement parses `Rule { Matches { ... }; [Matches { ... };] Action(...) }`.
func (p *parser) ruleStatement(optic *model.Optic) error {
	p.advance() // Rule
	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return err
	}

	var clauses [][]model.Matching
	var action model.Action
	actionSeen := false

	for p.cur.kind != tokRBrace {
		if p.cur.kind != tokIdent {
			return p.errf("expected Matches or Action, found %q", p.cur.text)
		}
		switch strings.ToLower(p.cur.text) {
		case "matches":
			clause, err := p.matchesBlock()
			if err != nil {
				return err
			}
			clauses = append(clauses, clause)
		case "action":
			a, err := p.actionCall()
			if err != nil {
				return err
			}
			action = a
			actionSeen = true
		default:
			return p.errf("expected Matches or Action, found %q", p.cur.text)
		}
		// The grammar separates Matches/Action entries with ";" and the
		// §8 scenario examples use "," instead; tolerate either.
		for p.cur.kind == tokSemicolon || p.cur.kind == tokComma {
			p.advance()
		}
	}
	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return err
	}
	if !actionSeen {
		return p.errf("rule missing Action(...)")
	}
	if len(clauses) == 0 {
		return p.errf("rule missing Matches {...}")
	}
	optic.Rules = append(optic.Rules, model.Rule{Matches: clauses, Action: action})
	return nil
}

// matchesBlock parses `Matches { Matching; Matching; ... }`.
func (p *parser) matchesBlock() ([]model.Matching, error) {
	p.advance() // Matches
	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return nil, err
	}
	var out []model.Matching
	for p.cur.kind != tokRBrace {
		m, err := p.matching()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
		if p.cur.kind == tokSemicolon {
			p.advance()
		}
	}
	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return nil, err
	}
	return out, nil
}

var locationNames = map[string]model.MatchLocation{
	"site":           model.LocationSite,
	"url":            model.LocationUrl,
	"domain":         model.LocationDomain,
	"title":          model.LocationTitle,
	"description":    model.LocationDescription,
	"content":        model.LocationContent,
	"schema":         model.LocationSchema,
	"microformattag": model.LocationMicroformatTag,
}

// matching parses one `Site("p")` / `Url("p")` / ... form.
func (p *parser) matching() (model.Matching, error) {
	if p.cur.kind != tokIdent {
		return model.Matching{}, p.errf("expected matching location, found %q", p.cur.text)
	}
	loc, ok := locationNames[strings.ToLower(p.cur.text)]
	if !ok {
		return model.Matching{}, p.errf("unknown matching location %q", p.cur.text)
	}
	p.advance()
	if _, err := p.expect(tokLParen, "("); err != nil {
		return model.Matching{}, err
	}
	str, err := p.expect(tokString, "pattern string")
	if err != nil {
		return model.Matching{}, err
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return model.Matching{}, err
	}
	pattern, perr := parsePatternString(str.text)
	if perr != nil {
		return model.Matching{}, perr
	}
	return model.Matching{Location: loc, Pattern: pattern}, nil
}

// actionCall parses `Action(Boost(n)|Downrank(n)|Discard)`.
func (p *parser) actionCall() (model.Action, error) {
	p.advance() // Action
	if _, err := p.expect(tokLParen, "("); err != nil {
		return model.Action{}, err
	}
	if p.cur.kind != tokIdent {
		return model.Action{}, p.errf("expected Boost/Downrank/Discard, found %q", p.cur.text)
	}
	kind := strings.ToLower(p.cur.text)
	p.advance()

	var action model.Action
	switch kind {
	case "boost", "downrank":
		if _, err := p.expect(tokLParen, "("); err != nil {
			return model.Action{}, err
		}
		numTok, err := p.expect(tokNumber, "boost amount")
		if err != nil {
			return model.Action{}, err
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return model.Action{}, err
		}
		val, convErr := strconv.ParseFloat(numTok.text, 64)
		if convErr != nil {
			return model.Action{}, p.errf("invalid boost amount %q", numTok.text)
		}
		if kind == "boost" {
			action = model.Action{Kind: model.ActionBoost, Boost: val}
		} else {
			action = model.Action{Kind: model.ActionDownrank, Boost: val}
		}
	case "discard":
		action = model.Action{Kind: model.ActionDiscard}
	default:
		return model.Action{}, p.errf("unknown action %q", kind)
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return model.Action{}, err
	}
	return action, nil
}

// parsePatternString parses the pattern-string grammar of spec §6: literal
// tokens separated by spaces, "*" as a wildcard token, and a leading or
// trailing "|" (glued to the adjacent token, not space-separated) as an
// anchor. "|" anywhere else is a syntax error.
func parsePatternString(s string) ([]model.PatternPart, error) {
	fields := strings.Fields(s)
	var parts []model.PatternPart
	for i, f := range fields {
		leading := i == 0 && strings.HasPrefix(f, "|")
		if leading {
			f = f[1:]
		}
		trailing := i == len(fields)-1 && strings.HasSuffix(f, "|")
		if trailing {
			f = strings.TrimSuffix(f, "|")
		}
		if strings.Contains(f, "|") {
			return nil, &errs.OpticParseError{Message: "'|' between tokens not permitted"}
		}
		if leading {
			parts = append(parts, model.Anchor())
		}
		switch f {
		case "":
		case "*":
			parts = append(parts, model.Wildcard())
		default:
			parts = append(parts, model.Raw(strings.ToLower(f)))
		}
		if trailing {
			parts = append(parts, model.Anchor())
		}
	}
	return parts, nil
}
