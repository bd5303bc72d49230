package parser

import "github.com/yertz/yapr/pkg/core"

// Event kinds, used as dispatcher commands.
const (
	KindIdentity       = "identity"
	KindClientSpawned  = "session:spawned"
	KindFrontendClosed = "session:frontendClosed"
	KindSpawnReset     = "player:spawnReset"
	KindVehicleSetup   = "vehicle:setup"
	KindFuelController = "vehicle:fuelController"
	KindFuelConfirm    = "vehicle:fuelConfirm"
	KindVehicleDestroy = "vehicle:destruction"
	KindVehicleControl = "vehicle:control"
	KindLocation       = "location"
	KindDoor           = "transit:door"
	KindCarriage       = "transit:carriage"
	KindNickname       = "player:nickname"
	KindCorpsify       = "player:corpsify"
	KindKill           = "kill"
	KindIncap          = "player:incap"
	KindCorpse         = "player:corpse"
	KindStall          = "player:stall"
	KindPlayerMention  = "player:mention"
	KindStatusEffect   = "player:statusEffect"
	KindSpawnFlow      = "player:spawnFlow"
	KindEntityDetach   = "entity:detach"
	KindHostility      = "player:hostility"
	KindPositionLine   = "position"
)

// Event is a typed extraction from one line.
type Event interface {
	Kind() string
}

// IdentityMatch holds identity fields found on a line. Empty fields were not found.
type IdentityMatch struct {
	Login       string
	GameVersion string
	PlayerID    string
	PlayerIDFor string
	GEID        string
}

// ClientSpawned marks the local client spawning into a server.
type ClientSpawned struct{}

// FrontendClosed marks the loading screen closing after a server load.
type FrontendClosed struct {
	LoadSeconds string
}

// SpawnReset is another player losing their spawnpoint reservation.
type SpawnReset struct {
	Name       string
	PlayerID   string
	Spawnpoint string
}

// VehicleSetup names a vehicle that is about to be created nearby.
type VehicleSetup struct {
	Name string
	ID   string
}

// FuelControllerCreated signals a possible vehicle nearby.
type FuelControllerCreated struct{}

// FuelControllerConfirmed corroborates the in-flight vehicle candidate.
type FuelControllerConfirmed struct{}

// VehicleDestruction is a destroy level change for a vehicle.
type VehicleDestruction struct {
	Name       string
	ID         string
	Zone       string
	Position   core.Position3D
	Driver     string
	From       core.DestructionState
	To         core.DestructionState
	Attacker   string
	DamageType string
}

// VehicleControl is the local client requesting or being granted a vehicle.
type VehicleControl struct {
	ClientID string
	Name     string
	ID       string
	Granted  bool
}

// Location is the landing zone the player is at.
type Location struct {
	Station string
}

// Door is a landing area door changing state.
type Door struct {
	Name  string
	State string
}

// Carriage is an elevator or tram carriage starting or finishing transit.
type Carriage struct {
	Number   string
	ID       string
	Manager  string
	Starting bool
	Zone     string
	Position core.Position3D
}

// Nickname is a player sighting by nickname. Position is taken from the most
// recent position line, if any.
type Nickname struct {
	Name     string
	Position *core.Position3D
}

// Corpsify is a player body being turned into a corpse.
type Corpsify struct {
	Name string
}

// Kill is an actor death parsed by the kill chain.
// Position is the newest recent position mentioning the victim, if any.
type Kill struct {
	Victim      string
	Zone        string
	Killer      string
	Weapon      string
	WeaponClass string
	DamageType  string
	Position    *core.Position3D
	Variant     string
}

// Incap is a player being incapacitated.
type Incap struct {
	Name   string
	Causes string
}

// Corpse is a corpse notice naming a player.
type Corpse struct {
	Name string
}

// Stall is an actor stall report naming a player.
type Stall struct {
	Name   string
	Type   string
	Length string
}

// PlayerMention is any "Player 'name'" style mention.
type PlayerMention struct {
	Name string
}

// StatusEffect is a status effect starting on a player.
type StatusEffect struct {
	Name   string
	Effect string
}

// SpawnFlow is a spawn reservation change naming a player.
type SpawnFlow struct {
	Name     string
	PlayerID string
}

// EntityDetach is an owned entity being detached from a named player.
type EntityDetach struct {
	Name string
}

// Hostility is a hit registered between two actors. Target is empty when
// the line names no child player.
type Hostility struct {
	Attacker string
	Target   string
}

// PositionLine is a bare position. Nickname or Manager, when set, name the
// subject found on the preceding lines.
type PositionLine struct {
	Position core.Position3D
	Nickname string
	Manager  string
}

func (IdentityMatch) Kind() string { return KindIdentity }
func (ClientSpawned) Kind() string { return KindClientSpawned }
func (FrontendClosed) Kind() string { return KindFrontendClosed }
func (SpawnReset) Kind() string { return KindSpawnReset }
func (VehicleSetup) Kind() string { return KindVehicleSetup }
func (FuelControllerCreated) Kind() string { return KindFuelController }
func (FuelControllerConfirmed) Kind() string { return KindFuelConfirm }
func (VehicleDestruction) Kind() string { return KindVehicleDestroy }
func (VehicleControl) Kind() string { return KindVehicleControl }
func (Location) Kind() string { return KindLocation }
func (Door) Kind() string { return KindDoor }
func (Carriage) Kind() string { return KindCarriage }
func (Nickname) Kind() string { return KindNickname }
func (Corpsify) Kind() string { return KindCorpsify }
func (Kill) Kind() string { return KindKill }
func (Incap) Kind() string { return KindIncap }
func (Corpse) Kind() string { return KindCorpse }
func (Stall) Kind() string { return KindStall }
func (PlayerMention) Kind() string { return KindPlayerMention }
func (StatusEffect) Kind() string { return KindStatusEffect }
func (SpawnFlow) Kind() string { return KindSpawnFlow }
func (EntityDetach) Kind() string { return KindEntityDetach }
func (Hostility) Kind() string { return KindHostility }
func (PositionLine) Kind() string { return KindPositionLine }
