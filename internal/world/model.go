// Package world holds the live world model: tracked entities, pings,
// vehicles, kill counters, zone history and the local player's identity.
//
// All mutation goes through Model methods, which serialise on a single
// mutex. Identity is guarded separately so that the history scan can
// resolve it while the live consumer is busy.
package world

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/yertz/yapr/internal/cache"
	"github.com/yertz/yapr/internal/clock"
	"github.com/yertz/yapr/internal/parser"
	"github.com/yertz/yapr/pkg/core"
)

const (
	EntityTimeout  = 580 * time.Second
	VehicleTimeout = 300 * time.Second

	// FlashWindow is how long the newest ping of a key stays fresh.
	FlashWindow = 2500 * time.Millisecond

	MaxPingsPerKey = 10
	MaxPingsPerHub = 1

	TransitAssociationWindow = 20 * time.Second
	SpawnResetCooldown       = 10 * time.Second
	CorpseGuardWindow        = 10 * time.Second
	VehicleNamingWindow      = 5 * time.Second
	SessionSwapWindow        = 10 * time.Second

	DefaultSoundCooldown = 3 * time.Second
	ExportEventInterval  = 300 * time.Second

	ZoneMentionsMax = 20
	EventLogMax     = 600
)

// ZoneMention is one entry of the recent zone history.
type ZoneMention struct {
	TS     time.Time `json:"ts"`
	Source string    `json:"source"`
	Zone   string    `json:"zone"`
}

type sighting struct {
	name string
	ts   time.Time
}

type vehicleSetup struct {
	name string
	id   string
	ts   time.Time
}

// Model is the world state. The zero value is not usable; call New.
type Model struct {
	mu     sync.Mutex
	clock  clock.Clock
	logger *slog.Logger
	hubKey func(string) bool

	idMu     sync.RWMutex
	identity core.Identity
	liveSet  map[identityField]bool

	entities map[string]*core.Entity
	pings    map[string][]core.Ping
	vehicles map[string]*core.Vehicle

	pending        *core.PendingVehicle
	setup          *vehicleSetup
	currentVehicle string
	currentStation string
	lastSeenPlayer *sighting
	playerPos      *core.Position3D
	swapArmedAt    *time.Time

	counters         core.Counters
	transitLocations map[string]struct{}
	playerNames      map[string]struct{}
	playersKilled    map[string]struct{}
	detectedZones    map[string]struct{}

	zoneMentions *cache.Ring[ZoneMention]
	events       *cache.Ring[core.Event]
	spawnResets  *cache.Cooldown

	soundEnabled bool
	sound        *rate.Limiter
	exportEvents *rate.Limiter
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the time source. Defaults to the wall clock.
func WithClock(c clock.Clock) Option {
	return func(m *Model) { m.clock = c }
}

// WithLogger sets the logger used for identity and session notices.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithSound enables or disables the dungeon alert gate and sets its cooldown.
func WithSound(enabled bool, cooldown time.Duration) Option {
	return func(m *Model) {
		m.soundEnabled = enabled
		m.sound = rate.NewLimiter(rate.Every(cooldown), 1)
	}
}

// WithHubKeys sets the predicate selecting keys capped to a single ping.
func WithHubKeys(isHub func(string) bool) Option {
	return func(m *Model) { m.hubKey = isHub }
}

// New creates an empty world model.
func New(opts ...Option) *Model {
	m := &Model{
		clock:            clock.Real(),
		logger:           slog.Default(),
		hubKey:           parser.IsHubKey,
		identity:         core.NewIdentity(),
		liveSet:          make(map[identityField]bool),
		entities:         make(map[string]*core.Entity),
		pings:            make(map[string][]core.Ping),
		vehicles:         make(map[string]*core.Vehicle),
		transitLocations: make(map[string]struct{}),
		playerNames:      make(map[string]struct{}),
		playersKilled:    make(map[string]struct{}),
		detectedZones:    make(map[string]struct{}),
		zoneMentions:     cache.NewRing[ZoneMention](ZoneMentionsMax),
		events:           cache.NewRing[core.Event](EventLogMax),
		spawnResets:      cache.NewCooldown(SpawnResetCooldown),
		soundEnabled:     true,
		sound:            rate.NewLimiter(rate.Every(DefaultSoundCooldown), 1),
		exportEvents:     rate.NewLimiter(rate.Every(ExportEventInterval), 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Now returns the model's current time.
func (m *Model) Now() time.Time {
	return m.clock.Now()
}

// AddEvent appends a message to the event log.
func (m *Model) AddEvent(kind core.EventKind, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEventLocked(kind, msg)
}

func (m *Model) addEventLocked(kind core.EventKind, msg string) {
	m.events.Push(core.Event{Time: m.clock.Now(), Kind: kind, Message: msg})
}

// RecordZone adds zone to the detected set and to the mention history,
// unless it repeats the newest mention.
func (m *Model) RecordZone(zone, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordZoneLocked(zone, source)
}

func (m *Model) recordZoneLocked(zone, source string) {
	if zone == "" {
		return
	}
	m.detectedZones[zone] = struct{}{}
	if newest, ok := m.zoneMentions.Newest(); ok && strings.EqualFold(newest.Zone, zone) {
		return
	}
	m.zoneMentions.Push(ZoneMention{TS: m.clock.Now(), Source: source, Zone: zone})
}

// RecordTransit adds a friendly transit name to the transit set.
func (m *Model) RecordTransit(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitLocations[name] = struct{}{}
}

// SetStation updates the current station and reports whether it changed.
// The station is recorded as a zone either way.
func (m *Model) SetStation(station string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordZoneLocked(station, "station")
	if station == m.currentStation {
		return false
	}
	m.currentStation = station
	return true
}

// Station returns the current station, empty until one is detected.
func (m *Model) Station() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentStation
}

// SetPlayerPosition records the local player's last known position.
func (m *Model) SetPlayerPosition(p core.Position3D) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerPos = &p
}

// PlayerPosition returns the local player's last known position, if any.
func (m *Model) PlayerPosition() *core.Position3D {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playerPos == nil {
		return nil
	}
	p := *m.playerPos
	return &p
}

// ClaimRecentPlayer returns the most recently sighted player if the sighting
// is within the association window, and consumes it.
func (m *Model) ClaimRecentPlayer(valid func(string) bool) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.lastSeenPlayer
	if s == nil || m.clock.Now().Sub(s.ts) > TransitAssociationWindow {
		return "", false
	}
	if valid != nil && !valid(s.name) {
		return "", false
	}
	m.lastSeenPlayer = nil
	return s.name, true
}

// AllowSound reports whether a dungeon alert may fire now and, if so,
// starts its cooldown.
func (m *Model) AllowSound() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.soundEnabled && m.sound.AllowN(m.clock.Now(), 1)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
