// Package statistics records the outcome of every settled round for a
// player: play counts, streaks, the favourite game and a short history.
package statistics

import (
	"slices"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/minicasino/internal/wager"
)

// HistoryLimit is how many recent rounds the recorder keeps.
const HistoryLimit = 20

// Entry is one settled round in the history.
type Entry struct {
	RoundID uuid.UUID
	Game    wager.Game
	Outcome string
	Won     bool
	Net     int64
	At      time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock sets the clock used to timestamp history entries.
func WithClock(clock quartz.Clock) Option {
	return func(r *Recorder) { r.clock = clock }
}

// WithValues keeps every round's net in the per-game summaries so
// percentiles can be computed. Long interactive sessions leave it off.
func WithValues() Option {
	return func(r *Recorder) { r.keepValues = true }
}

// Recorder is the outcome recorder. It is safe for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	clock      quartz.Clock
	keepValues bool

	played        int
	wins          int
	currentStreak int
	bestStreak    int
	totalNet      int64
	perGame       map[wager.Game]*Summary
	history       []Entry
}

// NewRecorder returns an empty recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		clock:   quartz.NewReal(),
		perGame: make(map[wager.Game]*Summary),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecordRound counts one round of game. A win extends the current streak,
// anything else breaks it.
func (r *Recorder) RecordRound(game wager.Game, won bool, net int64) {
	r.record(Entry{Game: game, Won: won, Net: net}, 0)
}

// RecordSettlement records a settled round including its id and outcome
// label in the history.
func (r *Recorder) RecordSettlement(s *wager.Settlement) {
	r.record(Entry{
		RoundID: s.RoundID,
		Game:    s.Game,
		Outcome: s.Outcome,
		Won:     s.Won(),
		Net:     s.Net(),
	}, s.Staked)
}

func (r *Recorder) record(e Entry, staked int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.At = r.clock.Now()

	r.played++
	r.totalNet += e.Net
	if e.Won {
		r.wins++
		r.currentStreak++
		r.bestStreak = max(r.bestStreak, r.currentStreak)
	} else {
		r.currentStreak = 0
	}

	sum, ok := r.perGame[e.Game]
	if !ok {
		sum = &Summary{KeepValues: r.keepValues}
		r.perGame[e.Game] = sum
	}
	sum.Add(staked, e.Net)

	r.history = append([]Entry{e}, r.history...)
	if len(r.history) > HistoryLimit {
		r.history = r.history[:HistoryLimit]
	}
}

// Snapshot is a point-in-time copy of the recorder's counters.
type Snapshot struct {
	GamesPlayed   int
	TotalWins     int
	CurrentStreak int
	BestStreak    int
	TotalNet      int64
	PlayCounts    map[wager.Game]int
	Favourite     wager.Game
	HasFavourite  bool
}

// WinRate is the fraction of rounds won.
func (s Snapshot) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalWins) / float64(s.GamesPlayed)
}

// Snapshot returns the current counters.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		GamesPlayed:   r.played,
		TotalWins:     r.wins,
		CurrentStreak: r.currentStreak,
		BestStreak:    r.bestStreak,
		TotalNet:      r.totalNet,
		PlayCounts:    make(map[wager.Game]int, len(r.perGame)),
	}
	best := 0
	for _, g := range wager.Games {
		sum, ok := r.perGame[g]
		if !ok {
			continue
		}
		snap.PlayCounts[g] = sum.Rounds
		// Strictly greater keeps the earliest game on ties.
		if sum.Rounds > best {
			best = sum.Rounds
			snap.Favourite = g
			snap.HasFavourite = true
		}
	}
	return snap
}

// History returns the most recent rounds, newest first.
func (r *Recorder) History() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.history)
}

// Summary returns a copy of the per-game net statistics.
func (r *Recorder) Summary(game wager.Game) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum, ok := r.perGame[game]
	if !ok {
		return Summary{}
	}
	cp := *sum
	cp.Values = slices.Clone(sum.Values)
	return cp
}
