package worker

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/yertz/yapr/internal/dispatcher"
	"github.com/yertz/yapr/internal/parser"
	"github.com/yertz/yapr/internal/storage"
	"github.com/yertz/yapr/internal/util"
	"github.com/yertz/yapr/internal/world"
	"github.com/yertz/yapr/pkg/core"
)

// CorpseInstantAge is how long a player must have gone unseen for a
// corpsify line to count as an instant corpse.
const CorpseInstantAge = 60 * time.Second

var errNotRegistered = errors.New("handlers not registered")

// RegisterHandlers registers all event handlers with the dispatcher.
// World updates run synchronously on the consumer so lines apply in order;
// the alert and history writes are buffered to keep I/O off the consumer.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	m.dispatcher = d

	// Identity and session
	d.Register(parser.KindIdentity, m.handleIdentity, dispatcher.Logged())
	d.Register(parser.KindClientSpawned, m.handleClientSpawned, dispatcher.Logged())
	d.Register(parser.KindFrontendClosed, m.handleFrontendClosed, dispatcher.Logged())
	d.Register(parser.KindLocation, m.handleLocation, dispatcher.Logged())

	// Transit
	d.Register(parser.KindDoor, m.handleDoor, dispatcher.Logged())
	d.Register(parser.KindCarriage, m.handleCarriage, dispatcher.Logged())

	// Players
	d.Register(parser.KindNickname, m.handleNickname, dispatcher.Logged())
	d.Register(parser.KindCorpsify, m.handleCorpsify, dispatcher.Logged())
	d.Register(parser.KindKill, m.handleKill, dispatcher.Logged())
	d.Register(parser.KindIncap, m.handleIncap, dispatcher.Logged())
	d.Register(parser.KindCorpse, m.handleCorpse, dispatcher.Logged())
	d.Register(parser.KindStall, m.handleStall, dispatcher.Logged())
	d.Register(parser.KindPlayerMention, m.handlePlayerMention, dispatcher.Logged())
	d.Register(parser.KindStatusEffect, m.handleStatusEffect, dispatcher.Logged())
	d.Register(parser.KindSpawnFlow, m.handleSpawnFlow, dispatcher.Logged())
	d.Register(parser.KindSpawnReset, m.handleSpawnReset, dispatcher.Logged())
	d.Register(parser.KindEntityDetach, m.handleEntityDetach, dispatcher.Logged())
	d.Register(parser.KindHostility, m.handleHostility, dispatcher.Logged())
	d.Register(parser.KindPositionLine, m.handlePositionLine, dispatcher.Logged())

	// Vehicles
	d.Register(parser.KindVehicleSetup, m.handleVehicleSetup, dispatcher.Logged())
	d.Register(parser.KindFuelController, m.handleFuelController, dispatcher.Logged())
	d.Register(parser.KindFuelConfirm, m.handleFuelConfirm, dispatcher.Logged())
	d.Register(parser.KindVehicleDestroy, m.handleVehicleDestruction, dispatcher.Logged())
	d.Register(parser.KindVehicleControl, m.handleVehicleControl, dispatcher.Logged())

	// Side effects - buffered, dropped when full
	d.Register(KindAlert, m.handleAlert, dispatcher.Buffered(8))
	if _, ok := m.backend.(storage.HistoryRecorder); ok {
		d.Register(KindRecordKill, m.handleRecordKill, dispatcher.Buffered(256), dispatcher.Logged())
		d.Register(KindRecordVehicle, m.handleRecordVehicle, dispatcher.Buffered(256), dispatcher.Logged())
	}
}

// payload extracts the typed event carried by e.
func payload[T parser.Event](e dispatcher.Event) (T, error) {
	v, ok := e.Payload.(T)
	if !ok {
		return v, fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Kind)
	}
	return v, nil
}

// sideEffect hands work to a buffered handler, if one is registered.
func (m *Manager) sideEffect(kind string, p any, ts time.Time) {
	if !m.dispatcher.HasHandler(kind) {
		return
	}
	if _, err := m.dispatcher.Dispatch(dispatcher.Event{Kind: kind, Payload: p, Timestamp: ts}); err != nil {
		m.deps.Logger.Warn("Dropped side effect", "kind", kind, "error", err)
	}
}

func (m *Manager) handleIdentity(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.IdentityMatch](e)
	if err != nil {
		return nil, err
	}
	c := ev.Candidate(m.deps.World.Identity(), e.Raw)
	return m.deps.World.ResolveIdentity(c, world.SourceLive), nil
}

func (m *Manager) handleClientSpawned(e dispatcher.Event) (any, error) {
	m.deps.World.ArmSessionSwap()
	return nil, nil
}

func (m *Manager) handleFrontendClosed(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.FrontendClosed](e)
	if err != nil {
		return nil, err
	}
	return m.deps.World.CompleteSessionSwap(ev.LoadSeconds), nil
}

func (m *Manager) handleLocation(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.Location](e)
	if err != nil {
		return nil, err
	}
	if ev.Station == "" {
		return nil, nil
	}
	if m.deps.World.SetStation(ev.Station) {
		m.deps.World.AddEvent(core.EventInfo, "[LOCATION] Detected station: "+ev.Station)
	}
	return nil, nil
}

func (m *Manager) handleDoor(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.Door](e)
	if err != nil {
		return nil, err
	}
	station := m.deps.World.Station()

	ping := core.Ping{
		Zone:   station,
		Action: strings.ToUpper(ev.State),
		Tag:    core.TagTransit,
	}
	var friendly string
	switch {
	case strings.Contains(ev.Name, "Hangar"):
		friendly = parser.NormalizeManager("TransitManager_Hangar-to-Lobby", station)
		ping.Overlay = true
		ping.OverlayAnchor = core.AnchorBottomRight
	case strings.Contains(ev.Name, "Lobby"):
		friendly = parser.NormalizeManager("TransitManager-001", station)
	default:
		friendly = ev.Name
	}
	if ping.Zone == "" {
		ping.Zone = parser.DefaultStation
	}

	m.deps.World.AddPing(friendly, ping)
	m.deps.World.AddEvent(core.EventTransit, fmt.Sprintf("[DOOR] %s %s", ev.State, friendly))
	return friendly, nil
}

func (m *Manager) handleCarriage(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.Carriage](e)
	if err != nil {
		return nil, err
	}
	w := m.deps.World

	friendly := parser.NormalizeManager(ev.Manager, ev.Zone)
	w.RecordTransit(friendly)
	w.RecordZone(ev.Zone, "transit")

	tag := parser.ClassifyTag(ev.Manager)
	action := "FINISH"
	if ev.Starting {
		action = "START"
	}
	ping := core.Ping{
		Position: ev.Position,
		Zone:     ev.Zone,
		Action:   action,
		Tag:      tag,
	}
	if name, ok := w.ClaimRecentPlayer(parser.IsValidPlayerName); ok {
		ping.PlayerName = name
	}
	if tag == core.TagExit {
		ping.Overlay = true
		ping.OverlayAnchor = core.AnchorBottomRight
	}
	w.AddPing(friendly, ping)

	label := "TRANSIT"
	kind := core.EventTransit
	switch tag {
	case core.TagDungeon:
		label = "DUNGEON"
		kind = core.EventDungeon
	case core.TagExit:
		label = "EXIT"
	}
	playerPart := ""
	if ping.PlayerName != "" {
		playerPart = "[" + ping.PlayerName + "] "
	}
	w.AddEvent(kind, fmt.Sprintf("[%s %s] %s%s zone=%s pos=%s", label, action, playerPart, friendly, ev.Zone, ev.Position))

	if tag == core.TagDungeon && w.AllowSound() {
		m.sideEffect(KindAlert, friendly, e.Timestamp)
		w.AddEvent(core.EventInfo, "[SOUND] Dungeon alert")
	}
	return friendly, nil
}

func (m *Manager) handleAlert(e dispatcher.Event) (any, error) {
	if m.deps.Alert == nil {
		m.deps.Logger.Info("Dungeon alert", "transit", e.Payload)
		return nil, nil
	}
	return nil, m.deps.Alert.Alert()
}

func (m *Manager) handleNickname(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.Nickname](e)
	if err != nil {
		return nil, err
	}
	w := m.deps.World
	name := strings.TrimSpace(ev.Name)
	if !parser.IsValidPlayerName(name) {
		return nil, nil
	}
	id := w.Identity()
	if id.IsSelf(name) {
		if ev.Position != nil {
			w.SetPlayerPosition(*ev.Position)
		}
		return nil, nil
	}
	if id.PlayerID != "" && strings.Contains(e.Raw, id.PlayerID) {
		return nil, nil
	}

	s := w.ObservePlayer(name, ev.Position, world.ObserveSighting)
	if !s.Accepted {
		return nil, nil
	}
	if ev.Position != nil {
		w.AddEvent(core.EventPlayer, fmt.Sprintf("[PLAYER] %s @ %s", name, *ev.Position))
	} else {
		w.AddEvent(core.EventPlayer, fmt.Sprintf("[PLAYER] %s detected (pos unknown)", name))
	}
	return s, nil
}

func (m *Manager) handleCorpsify(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.Corpsify](e)
	if err != nil {
		return nil, err
	}
	s := m.deps.World.ObservePlayer(ev.Name, nil, world.ObserveDeath)
	if !s.Accepted {
		return nil, nil
	}
	name := s.Entity.Key
	if s.Created || e.Timestamp.Sub(s.PrevSeen) > CorpseInstantAge {
		m.deps.World.AddEvent(core.EventDeath, fmt.Sprintf("[CORPSE INSTANT] %s detected and immediately dead", name))
	} else {
		m.deps.World.AddEvent(core.EventDeath, fmt.Sprintf("[CORPSE] %s is now a corpse", name))
	}
	return s, nil
}

func (m *Manager) handleKill(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.Kill](e)
	if err != nil {
		return nil, err
	}
	w := m.deps.World
	if ev.Victim == "" || w.IsSelf(ev.Victim) {
		return nil, nil
	}
	if ev.Killer == "" || !w.IsSelf(ev.Killer) {
		return nil, nil
	}
	isNPC := parser.IsNPCName(ev.Victim)
	isPlayer := !isNPC && parser.IsValidPlayerName(ev.Victim)
	if !isNPC && !isPlayer {
		return nil, nil
	}

	zone := ev.Zone
	if ev.Variant == parser.KillFallback && zone == "" {
		zone = w.Station()
	}
	if zone == "" {
		zone = core.Unknown
	}
	w.RecordZone(ev.Zone, "death")

	counters, flush := w.RecordKill(ev.Victim, isPlayer)
	if flush {
		m.requestFlush()
	}

	playerPos := w.PlayerPosition()
	ping := core.Ping{Zone: zone, Action: "KILL"}
	switch {
	case ev.Position != nil:
		ping.Position = *ev.Position
	case playerPos != nil:
		if ev.Variant != parser.KillFallback {
			ping.Position = *playerPos
		}
	default:
		ping.Overlay = true
		ping.OverlayAnchor = core.AnchorTopRight
	}

	key := "NPC Kill"
	ping.Tag = core.TagNPCKill
	ping.VictimName = parser.NPCDisplayName(ev.Victim)
	msg := "[NPC KILL] Killed " + ping.VictimName
	kind := core.EventNPCKill
	if isPlayer {
		key = "Player Kill"
		ping.Tag = core.TagPlayerKill
		ping.VictimName = ev.Victim
		msg = fmt.Sprintf("[PLAYER KILL] Killed %s at pos=%s", ev.Victim, ping.Position)
		kind = core.EventPlayerKill
	}
	if ev.Variant == parser.KillFallback {
		msg = fmt.Sprintf("[%s] Killed %s in %s", strings.ToUpper(key), ping.VictimName, zone)
	}

	w.AddPing(key, ping)
	w.AddEvent(kind, msg)

	m.sideEffect(KindRecordKill, &core.KillRecord{
		Time:     e.Timestamp,
		Victim:   ev.Victim,
		IsPlayer: isPlayer,
		Zone:     zone,
		Weapon:   ev.Weapon,
		Damage:   ev.DamageType,
		Position: ping.Position,
	}, e.Timestamp)
	return counters, nil
}

func (m *Manager) handleRecordKill(e dispatcher.Event) (any, error) {
	rec, ok := m.backend.(storage.HistoryRecorder)
	if !ok {
		return nil, nil
	}
	k, ok := e.Payload.(*core.KillRecord)
	if !ok {
		return nil, fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Kind)
	}
	if err := rec.RecordKill(k); err != nil {
		return nil, fmt.Errorf("failed to record kill: %w", err)
	}
	return nil, nil
}

func (m *Manager) handleIncap(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.Incap](e)
	if err != nil {
		return nil, err
	}
	s := m.deps.World.ObservePlayer(ev.Name, nil, world.ObserveIncap)
	if !s.Accepted {
		return nil, nil
	}
	m.deps.World.AddEvent(core.EventDeath, fmt.Sprintf("[INCAP] %s incapacitated, causes: %s", s.Entity.Key, ev.Causes))
	return s, nil
}

func (m *Manager) handleCorpse(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.Corpse](e)
	if err != nil {
		return nil, err
	}
	s := m.deps.World.ObservePlayer(ev.Name, nil, world.ObserveCorpse)
	if s.StatusChanged {
		m.deps.World.AddEvent(core.EventDeath, fmt.Sprintf("[CORPSE] %s is now a corpse", s.Entity.Key))
	}
	return s, nil
}

func (m *Manager) handleStall(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.Stall](e)
	if err != nil {
		return nil, err
	}
	s := m.deps.World.ObservePlayer(ev.Name, nil, world.ObserveSighting)
	if !s.Accepted {
		return nil, nil
	}
	m.deps.World.AddEvent(core.EventPlayer, fmt.Sprintf("[STALL] Saw %s (type: %s, len: %s)", s.Entity.Key, ev.Type, ev.Length))
	return s, nil
}

func (m *Manager) handlePlayerMention(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.PlayerMention](e)
	if err != nil {
		return nil, err
	}
	return m.deps.World.ObservePlayer(ev.Name, nil, world.ObserveSighting), nil
}

func (m *Manager) handleStatusEffect(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.StatusEffect](e)
	if err != nil {
		return nil, err
	}
	return m.deps.World.ObservePlayer(ev.Name, nil, world.ObserveSighting), nil
}

func (m *Manager) handleSpawnFlow(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.SpawnFlow](e)
	if err != nil {
		return nil, err
	}
	s := m.deps.World.ObservePlayer(ev.Name, nil, world.ObserveSpawnFlow)
	if !s.Accepted {
		return nil, nil
	}
	if s.Revived {
		m.deps.World.AddEvent(core.EventPlayer, fmt.Sprintf("[SPAWN FLOW] %s respawned, marked alive again", s.Entity.Key))
	} else {
		m.deps.World.AddEvent(core.EventPlayer, "[SPAWN FLOW] Detected "+s.Entity.Key)
	}
	return s, nil
}

func (m *Manager) handleSpawnReset(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.SpawnReset](e)
	if err != nil {
		return nil, err
	}
	return m.deps.World.MarkSpawnReset(ev.Name, ev.PlayerID, ev.Spawnpoint), nil
}

func (m *Manager) handleEntityDetach(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.EntityDetach](e)
	if err != nil {
		return nil, err
	}
	s := m.deps.World.ObservePlayer(ev.Name, nil, world.ObserveSighting)
	if !s.Accepted {
		return nil, nil
	}
	m.deps.World.AddEvent(core.EventPlayer, fmt.Sprintf("[ENTITY] Detected %s (entity detach)", s.Entity.Key))
	return s, nil
}

func (m *Manager) handleHostility(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.Hostility](e)
	if err != nil {
		return nil, err
	}
	for _, p := range []struct{ name, role string }{
		{ev.Attacker, "attacker"},
		{ev.Target, "target"},
	} {
		if p.name == "" {
			continue
		}
		s := m.deps.World.ObservePlayer(p.name, nil, world.ObserveSighting)
		if s.Created {
			m.deps.World.AddEvent(core.EventPlayer, fmt.Sprintf("[PLAYER] %s detected (hostility %s)", s.Entity.Key, p.role))
		}
	}
	return nil, nil
}

func (m *Manager) handlePositionLine(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.PositionLine](e)
	if err != nil {
		return nil, err
	}
	return m.deps.World.ObservePosition(ev.Nickname, ev.Manager, ev.Position), nil
}

func (m *Manager) handleVehicleSetup(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.VehicleSetup](e)
	if err != nil {
		return nil, err
	}
	m.deps.World.SetVehicleSetup(ev.Name, ev.ID)
	return nil, nil
}

func (m *Manager) handleFuelController(e dispatcher.Event) (any, error) {
	p, key := m.deps.World.DetectVehicleCandidate()
	if p.Name != "" {
		m.deps.World.AddEvent(core.EventVehicle, fmt.Sprintf("[VEHICLE] %s detected nearby", util.ShortName(p.Name)))
	}
	return key, nil
}

func (m *Manager) handleFuelConfirm(e dispatcher.Event) (any, error) {
	p, ok := m.deps.World.ConfirmVehicleCandidate()
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (m *Manager) handleVehicleDestruction(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.VehicleDestruction](e)
	if err != nil {
		return nil, err
	}
	w := m.deps.World

	if parser.IsValidPlayerName(ev.Attacker) && !w.IsSelf(ev.Attacker) {
		pos := ev.Position
		s := w.ObservePlayer(ev.Attacker, &pos, world.ObserveSighting)
		if s.Created {
			w.AddEvent(core.EventPlayer, fmt.Sprintf("[PLAYER] %s detected (vehicle destruction)", s.Entity.Key))
		}
	}

	v := w.ApplyVehicleTransition(world.VehicleUpdate{
		ID:       ev.ID,
		Name:     ev.Name,
		Zone:     ev.Zone,
		Driver:   ev.Driver,
		Attacker: ev.Attacker,
		Position: ev.Position,
		From:     ev.From,
		To:       ev.To,
	})

	w.AddPing(world.VehicleKey(ev.Name), core.Ping{
		Position:      ev.Position,
		Zone:          ev.Zone,
		Action:        fmt.Sprintf("%s→%s", ev.From, ev.To),
		Tag:           core.TagVehicle,
		VehicleName:   ev.Name,
		Attacker:      ev.Attacker,
		Overlay:       true,
		OverlayAnchor: core.AnchorTopRight,
	})
	w.AddEvent(core.EventVehicle, fmt.Sprintf("[VEHICLE %s] %s destroyed by %s (%d→%d)", ev.To, ev.Name, ev.Attacker, ev.From, ev.To))

	m.sideEffect(KindRecordVehicle, &v, e.Timestamp)
	return v, nil
}

func (m *Manager) handleRecordVehicle(e dispatcher.Event) (any, error) {
	rec, ok := m.backend.(storage.HistoryRecorder)
	if !ok {
		return nil, nil
	}
	v, ok := e.Payload.(*core.Vehicle)
	if !ok {
		return nil, fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Kind)
	}
	if err := rec.RecordVehicle(v); err != nil {
		return nil, fmt.Errorf("failed to record vehicle %s: %w", v.ID, err)
	}
	return nil, nil
}

func (m *Manager) handleVehicleControl(e dispatcher.Event) (any, error) {
	ev, err := payload[parser.VehicleControl](e)
	if err != nil {
		return nil, err
	}
	if ev.Name == "" {
		return nil, nil
	}
	if m.deps.World.SetCurrentVehicle(ev.Name) {
		m.deps.World.AddEvent(core.EventYou, "[MY VEHICLE] Entered "+ev.Name)
	}
	return nil, nil
}
