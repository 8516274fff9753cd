package part

import (
	"fmt"
	"strings"
)

// Kind is the part family
type Kind string

const (
	KindStructure       Kind = "STRUCTURE"
	KindArmor           Kind = "ARMOR"
	KindEngine          Kind = "ENGINE"
	KindGyro            Kind = "GYRO"
	KindCockpit         Kind = "COCKPIT"
	KindLifeSupport     Kind = "LIFE_SUPPORT"
	KindSensor          Kind = "SENSOR"
	KindActuator        Kind = "ACTUATOR"
	KindAvionics        Kind = "AVIONICS"
	KindFireControl     Kind = "FIRE_CONTROL"
	KindLandingGear     Kind = "LANDING_GEAR"
	KindThrusters       Kind = "THRUSTERS"
	KindMotiveSystem    Kind = "MOTIVE_SYSTEM"
	KindRotor           Kind = "ROTOR"
	KindTurretLock      Kind = "TURRET_LOCK"
	KindDriveCoil       Kind = "DRIVE_COIL"
	KindDriveController Kind = "DRIVE_CONTROLLER"
	KindFieldInitiator  Kind = "FIELD_INITIATOR"
	KindChargingSystem  Kind = "CHARGING_SYSTEM"
	KindHeliumTank      Kind = "HELIUM_TANK"
	KindLFBattery       Kind = "LF_BATTERY"
	KindInfantryMotive  Kind = "INFANTRY_MOTIVE"
	KindInfantryArmor   Kind = "INFANTRY_ARMOR"
	KindInfantryWeapon  Kind = "INFANTRY_WEAPON"
	KindBattleArmorSuit Kind = "BATTLE_ARMOR_SUIT"
	KindEquipment       Kind = "EQUIPMENT"
	KindHeatSink        Kind = "HEAT_SINK"
	KindJumpJet         Kind = "JUMP_JET"
	KindAmmoBin         Kind = "AMMO_BIN"
	KindTransportBay    Kind = "TRANSPORT_BAY"
	KindBayDoor         Kind = "BAY_DOOR"
	KindCubicle         Kind = "CUBICLE"
	KindDockingCollar   Kind = "DOCKING_COLLAR"
	KindGravDeck        Kind = "GRAV_DECK"
)

var validKinds = map[Kind]bool{
	KindStructure: true, KindArmor: true, KindEngine: true, KindGyro: true, KindCockpit: true,
	KindLifeSupport: true, KindSensor: true, KindActuator: true, KindAvionics: true,
	KindFireControl: true, KindLandingGear: true, KindThrusters: true, KindMotiveSystem: true,
	KindRotor: true, KindTurretLock: true, KindDriveCoil: true, KindDriveController: true,
	KindFieldInitiator: true, KindChargingSystem: true, KindHeliumTank: true, KindLFBattery: true,
	KindInfantryMotive: true, KindInfantryArmor: true, KindInfantryWeapon: true,
	KindBattleArmorSuit: true, KindEquipment: true, KindHeatSink: true, KindJumpJet: true,
	KindAmmoBin: true, KindTransportBay: true, KindBayDoor: true, KindCubicle: true,
	KindDockingCollar: true, KindGravDeck: true,
}

// IsValid reports whether k is a known part kind
func (k Kind) IsValid() bool {
	return validKinds[k]
}

// IsEquipmentKeyed is true for kinds addressed by equipment number
func (k Kind) IsEquipmentKeyed() bool {
	switch k {
	case KindEquipment, KindHeatSink, KindJumpJet, KindAmmoBin:
		return true
	}
	return false
}

// CanBeMissing is false for kinds that only ever lose condition
func (k Kind) CanBeMissing() bool {
	return k != KindArmor
}

// NoLocation is used in keys of parts that do not sit in a hit location
const NoLocation = -1

// Key is the structural identity of a part within one unit. At most one part
// per key may exist in a unit's registry.
type Key struct {
	Kind     Kind
	Location int
	Index    int
	Rear     bool
}

func (k Key) String() string {
	var b strings.Builder
	b.WriteString(string(k.Kind))
	if k.Location != NoLocation {
		fmt.Fprintf(&b, "@%d", k.Location)
	}
	fmt.Fprintf(&b, "#%d", k.Index)
	if k.Rear {
		b.WriteString("(R)")
	}
	return b.String()
}

// ParseKey reverses Key.String
func ParseKey(s string) (Key, error) {
	key := Key{Location: NoLocation}
	rest := s
	if strings.HasSuffix(rest, "(R)") {
		key.Rear = true
		rest = strings.TrimSuffix(rest, "(R)")
	}

	hash := strings.LastIndex(rest, "#")
	if hash < 0 {
		return Key{}, fmt.Errorf("malformed part key %q", s)
	}
	if _, err := fmt.Sscanf(rest[hash+1:], "%d", &key.Index); err != nil {
		return Key{}, fmt.Errorf("malformed part key %q: %w", s, err)
	}
	rest = rest[:hash]

	if at := strings.LastIndex(rest, "@"); at >= 0 {
		if _, err := fmt.Sscanf(rest[at+1:], "%d", &key.Location); err != nil {
			return Key{}, fmt.Errorf("malformed part key %q: %w", s, err)
		}
		rest = rest[:at]
	}

	key.Kind = Kind(rest)
	if !key.Kind.IsValid() {
		return Key{}, fmt.Errorf("unknown part kind %q", rest)
	}
	return key, nil
}
