package roster

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// ErrEmptyInput is returned when there are no respondent rows to allocate
var ErrEmptyInput = errors.New("empty input")

// EngineOptions configures an allocation run
type EngineOptions struct {
	MaxShifts int
	Rules     *Rules
	Shuffler  Shuffler
	Logger    *zap.Logger
}

// GenerateInput is everything one run needs
type GenerateInput struct {
	Rows       []Row
	Directory  []DirectoryEntry
	Areas      []Area
	Headcounts map[Area]int
}

// Engine fills every seat of every date with one person or Unassigned
type Engine struct {
	maxShifts int
	rules     *Rules
	shuffler  Shuffler
	logger    *zap.Logger
}

// NewEngine creates an engine, defaulting the cap to DefaultMaxShifts and
// the shuffler to a time-seeded source.
func NewEngine(opts EngineOptions) *Engine {
	e := &Engine{
		maxShifts: opts.MaxShifts,
		rules:     opts.Rules,
		shuffler:  opts.Shuffler,
		logger:    opts.Logger,
	}
	if e.maxShifts <= 0 {
		e.maxShifts = DefaultMaxShifts
	}
	if e.rules == nil {
		e.rules = &Rules{}
	}
	if e.shuffler == nil {
		e.shuffler = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Generate runs one greedy pass per date in chronological order. The shift
// counter is shared across dates, so earlier dates constrain later ones.
func (e *Engine) Generate(in GenerateInput) (*Result, error) {
	if len(in.Rows) == 0 {
		return nil, ErrEmptyInput
	}

	areas := orderAreas(in.Areas)
	headcounts := make(map[Area]int, len(areas))
	for _, a := range areas {
		headcounts[a] = DefaultHeadcounts[a]
		if n, ok := in.Headcounts[a]; ok && n >= 0 {
			headcounts[a] = n
		}
	}

	directory := NewDirectory(in.Directory)
	extractor := NewExtractor(
		NewIdentityResolver(directory, e.rules.Identities),
		NewRoleClassifier(directory),
		areas,
		e.maxShifts,
		e.shuffler,
	)

	dates := DiscoverDates(in.Rows)
	counter := make(ShiftCounter)
	result := &Result{
		Dates:        dates,
		Slots:        make([]Slot, 0),
		Availability: make(map[string]Availability, len(dates)),
		Warnings:     []string{},
	}

	for _, date := range dates {
		da := extractor.Extract(in.Rows, date, counter)
		slots := e.allocateDate(da, areas, headcounts, counter)
		result.Slots = append(result.Slots, slots...)

		index := Availability{All: da.All, Areas: make(map[Area][]string, len(da.Areas))}
		for a, p := range da.Areas {
			index.Areas[a] = p.Full
		}
		result.Availability[date] = index

		e.logger.Debug("date allocated",
			zap.String("date", date),
			zap.Int("available", len(da.All)),
			zap.Int("slots", len(slots)),
			zap.Int("unassigned", countUnassigned(slots)))
	}

	return result, nil
}

// seat is an assignment decided before the slots are materialized
type seat struct {
	area  Area
	index int
	name  string
}

func (e *Engine) allocateDate(da DateAvailability, areas []Area, headcounts map[Area]int, counter ShiftCounter) []Slot {
	placed := make(map[string]bool)
	filled := make(map[Area]int, len(areas))
	assigned := make(map[Area][]string, len(areas))
	for _, a := range areas {
		assigned[a] = make([]string, headcounts[a])
	}

	place := func(s seat) {
		assigned[s.area][s.index] = s.name
		placed[s.name] = true
		counter[s.name]++
		filled[s.area] = s.index + 1
	}

	for _, rule := range e.rules.Pairings {
		pair, ok := e.matchPairing(rule, da, headcounts, placed, filled)
		if !ok {
			continue
		}
		for _, s := range pair {
			place(s)
		}
		e.logger.Debug("pairing applied",
			zap.String("date", da.Date),
			zap.String("person_a", rule.PersonA),
			zap.String("person_b", rule.PersonB))
	}

	for _, area := range areas {
		pool := da.Areas[area].Pool
		for i := filled[area]; i < headcounts[area]; i++ {
			name := ""
			for j, cand := range pool {
				if !placed[cand] {
					name = cand
					pool = append(pool[:j:j], pool[j+1:]...)
					break
				}
			}
			if name == "" {
				continue
			}
			place(seat{area: area, index: i, name: name})
		}
	}

	slots := make([]Slot, 0)
	for _, area := range areas {
		for i, name := range assigned[area] {
			if name == "" {
				name = Unassigned
			}
			slots = append(slots, Slot{
				Date:     da.Date,
				Function: SeatLabel(area, i),
				Assigned: name,
				Area:     area,
			})
		}
	}
	return slots
}

// matchPairing returns the two seats of a pairing rule when both people are
// in today's pools for their affinities and neither is placed yet.
func (e *Engine) matchPairing(rule PairingRule, da DateAvailability, headcounts map[Area]int, placed map[string]bool, filled map[Area]int) ([]seat, bool) {
	if rule.PersonA == rule.PersonB || placed[rule.PersonA] || placed[rule.PersonB] {
		return nil, false
	}
	areaA, ok := firstPoolWith(da, rule.AffinityA, rule.PersonA, headcounts, filled)
	if !ok {
		return nil, false
	}
	areaB, ok := firstPoolWith(da, rule.AffinityB, rule.PersonB, headcounts, filled)
	if !ok {
		return nil, false
	}
	if areaA == areaB && headcounts[areaA]-filled[areaA] < 2 {
		return nil, false
	}
	seatA := seat{area: areaA, index: filled[areaA], name: rule.PersonA}
	seatB := seat{area: areaB, index: filled[areaB], name: rule.PersonB}
	if areaA == areaB {
		seatB.index++
	}
	return []seat{seatA, seatB}, true
}

func firstPoolWith(da DateAvailability, affinity []Area, name string, headcounts map[Area]int, filled map[Area]int) (Area, bool) {
	for _, a := range affinity {
		if filled[a] >= headcounts[a] {
			continue
		}
		for _, cand := range da.Areas[a].Pool {
			if cand == name {
				return a, true
			}
		}
	}
	return "", false
}

func countUnassigned(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Assigned == Unassigned {
			n++
		}
	}
	return n
}
