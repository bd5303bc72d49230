package parser

import (
	"log/slog"
)

// MatchFunc maps a line to at most one event.
type MatchFunc func(Line) (Event, bool)

// Matcher is a named entry in the classification catalogue.
type Matcher struct {
	Name  string
	Match MatchFunc
}

// Parser classifies normalized lines against an ordered catalogue of
// matchers. Matchers are independent: one line may yield several events.
// Kill detection is the exception and contributes at most one event through
// its first-success chain. Parser holds no world state.
type Parser struct {
	logger   *slog.Logger
	matchers []Matcher
}

// NewParser creates a parser with the standard catalogue.
func NewParser(logger *slog.Logger) *Parser {
	kills := NewKillChain()
	return &Parser{
		logger: logger,
		matchers: []Matcher{
			{KindIdentity, matchIdentity},
			{KindClientSpawned, matchClientSpawned},
			{KindFrontendClosed, matchFrontendClosed},
			{KindSpawnReset, matchSpawnReset},
			{KindVehicleSetup, matchVehicleSetup},
			{KindFuelController, matchFuelController},
			{KindFuelConfirm, matchFuelConfirm},
			{KindVehicleDestroy, matchVehicleDestruction},
			{KindVehicleControl, matchVehicleControl},
			{KindLocation, matchLocation},
			{KindDoor, matchDoor},
			{KindCarriage, matchCarriage},
			{KindNickname, matchNickname},
			{KindCorpsify, matchCorpsify},
			{KindKill, kills.Match},
			{KindIncap, matchIncap},
			{KindCorpse, matchCorpse},
			{KindStall, matchStall},
			{KindPlayerMention, matchPlayerMention},
			{KindStatusEffect, matchStatusEffect},
			{KindSpawnFlow, matchSpawnFlow},
			{KindEntityDetach, matchEntityDetach},
			{KindHostility, matchHostility},
			{KindPositionLine, matchPositionLine},
		},
	}
}

// Matchers returns the catalogue in evaluation order.
func (p *Parser) Matchers() []Matcher {
	out := make([]Matcher, len(p.matchers))
	copy(out, p.matchers)
	return out
}

// Classify runs every matcher against l and returns the events in catalogue order.
func (p *Parser) Classify(l Line) []Event {
	var events []Event
	for _, m := range p.matchers {
		e, ok := m.Match(l)
		if !ok {
			continue
		}
		events = append(events, e)
	}
	if len(events) > 0 && p.logger != nil {
		p.logger.Debug("Classified line", "events", len(events), "ts", l.Short)
	}
	return events
}
