package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Profile{},
	&TransitLocation{},
	&PlayerName{},
	&KilledPlayer{},
	&Zone{},
	&KillRecord{},
	&VehicleRecord{},
}

// SetModels are the name tables merged by union on every save.
var SetModels = []interface{}{
	&TransitLocation{},
	&PlayerName{},
	&KilledPlayer{},
	&Zone{},
}

////////////////////////
// PROFILE
////////////////////////

// Profile holds the scalar export fields. There is a single row with ID 1.
type Profile struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UpdatedAt   time.Time `json:"lastUpdated"`
	PlayerName  string    `json:"playerName" gorm:"size:64"`
	GameVersion string    `json:"gameVersion" gorm:"size:32"`
	TotalKills  int       `json:"totalKills"`
	NPCKills    int       `json:"npcKills"`
	PlayerKills int       `json:"playerKills"`
}

func (*Profile) TableName() string {
	return "profiles"
}

// ProfileID is the primary key of the only profile row.
const ProfileID = 1

////////////////////////
// NAME SETS
////////////////////////

// TransitLocation is a friendly transit name seen during any session.
type TransitLocation struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name" gorm:"size:255;uniqueIndex"`
}

func (*TransitLocation) TableName() string {
	return "transit_locations"
}

// PlayerName is another player seen during any session.
type PlayerName struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name" gorm:"size:64;uniqueIndex"`
}

func (*PlayerName) TableName() string {
	return "player_names"
}

// KilledPlayer is a player the local player has killed.
type KilledPlayer struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name" gorm:"size:64;uniqueIndex"`
}

func (*KilledPlayer) TableName() string {
	return "killed_players"
}

// Zone is a zone or station mentioned in the log.
type Zone struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name" gorm:"size:255;uniqueIndex"`
}

func (*Zone) TableName() string {
	return "zones"
}

////////////////////////
// HISTORY
////////////////////////

// KillRecord is one kill made by the local player.
type KillRecord struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	Time       time.Time  `json:"time" gorm:"index:idx_killrecord_time"`
	Victim     string     `json:"victim" gorm:"size:255;index:idx_killrecord_victim"`
	IsPlayer   bool       `json:"isPlayer"`
	Zone       string     `json:"zone" gorm:"size:255"`
	Weapon     string     `json:"weapon" gorm:"size:255"`
	DamageType string     `json:"damageType" gorm:"size:64"`
	Position   geom.Point `json:"position"` // Victim position, XYZ
}

func (*KillRecord) TableName() string {
	return "kill_records"
}

// VehicleRecord is a vehicle destroy level change, with the vehicle's full
// transition history at that moment.
type VehicleRecord struct {
	ID       uint           `json:"id" gorm:"primarykey"`
	Time     time.Time      `json:"time" gorm:"index:idx_vehiclerecord_time"`
	ObjectID string         `json:"objectId" gorm:"size:64;index:idx_vehiclerecord_object_id"`
	Name     string         `json:"name" gorm:"size:255"`
	State    uint8          `json:"state"`
	Zone     string         `json:"zone" gorm:"size:255"`
	Driver   string         `json:"driver" gorm:"size:64"`
	Position geom.Point     `json:"position"`
	History  datatypes.JSON `json:"history" gorm:"default:'[]'"`
}

func (*VehicleRecord) TableName() string {
	return "vehicle_records"
}
