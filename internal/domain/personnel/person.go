package personnel

import (
	"github.com/google/uuid"
)

// Person is a campaign member as seen by the unit engine.
// Units hold only ids and resolve people through a Roster.
type Person struct {
	id           uuid.UUID
	legacyID     int
	name         string
	callsign     string
	rank         int
	hits         int
	active       bool
	toughness    int
	edge         int
	minutesLeft  int
	overtimeLeft int
	astechs      int
	pilotingMod  int
	gunneryMod   int
	skills       map[SkillType]Skill
	abilities    map[string]string
}

// Skill is a trained skill. Level is experience, Value is the target number
// used on the record sheet (lower is better).
type Skill struct {
	Level int
	Bonus int
	Value int
}

// NewPerson creates an active person with no skills
func NewPerson(id uuid.UUID, name string, rank int) *Person {
	return &Person{
		id:           id,
		name:         name,
		rank:         rank,
		active:       true,
		minutesLeft:  480,
		overtimeLeft: 240,
		skills:       make(map[SkillType]Skill),
		abilities:    make(map[string]string),
	}
}

func (p *Person) ID() uuid.UUID     { return p.id }
func (p *Person) LegacyID() int     { return p.legacyID }
func (p *Person) Name() string      { return p.name }
func (p *Person) Callsign() string  { return p.callsign }
func (p *Person) Rank() int         { return p.rank }
func (p *Person) Hits() int         { return p.hits }
func (p *Person) IsActive() bool    { return p.active }
func (p *Person) Toughness() int    { return p.toughness }
func (p *Person) Edge() int         { return p.edge }
func (p *Person) MinutesLeft() int  { return p.minutesLeft }
func (p *Person) OvertimeLeft() int { return p.overtimeLeft }

// Astechs is the size of the astech team working under a tech
func (p *Person) Astechs() int { return p.astechs }

// FullTitle is the display name with the callsign when there is one
func (p *Person) FullTitle() string {
	if p.callsign == "" {
		return p.name
	}
	return p.name + " \"" + p.callsign + "\""
}

func (p *Person) SetLegacyID(id int)    { p.legacyID = id }
func (p *Person) SetCallsign(c string)  { p.callsign = c }
func (p *Person) SetRank(rank int)      { p.rank = rank }
func (p *Person) SetHits(hits int)      { p.hits = hits }
func (p *Person) SetActive(active bool) { p.active = active }
func (p *Person) SetToughness(t int)    { p.toughness = t }
func (p *Person) SetEdge(edge int)      { p.edge = edge }
func (p *Person) SetMinutesLeft(m int)  { p.minutesLeft = m }
func (p *Person) SetOvertimeLeft(m int) { p.overtimeLeft = m }
func (p *Person) SetAstechs(n int)      { p.astechs = n }

// InjuryModifiers are the piloting and gunnery penalties from advanced medical injuries
func (p *Person) InjuryModifiers() (piloting, gunnery int) {
	return p.pilotingMod, p.gunneryMod
}

func (p *Person) SetInjuryModifiers(piloting, gunnery int) {
	p.pilotingMod = piloting
	p.gunneryMod = gunnery
}

// SetSkill adds or replaces a skill
func (p *Person) SetSkill(t SkillType, s Skill) {
	p.skills[t] = s
}

// Skill returns the named skill, if the person has it
func (p *Person) Skill(t SkillType) (Skill, bool) {
	s, ok := p.skills[t]
	return s, ok
}

func (p *Person) HasSkill(t SkillType) bool {
	_, ok := p.skills[t]
	return ok
}

// Skills returns a copy of the skill table
func (p *Person) Skills() map[SkillType]Skill {
	out := make(map[SkillType]Skill, len(p.skills))
	for k, v := range p.skills {
		out[k] = v
	}
	return out
}

// Ability returns the option value, "" when unset
func (p *Person) Ability(name string) string {
	return p.abilities[name]
}

// SetAbility sets an option value. An empty value clears it.
func (p *Person) SetAbility(name, value string) {
	if value == "" {
		delete(p.abilities, name)
		return
	}
	p.abilities[name] = value
}

// Abilities returns a copy of the option table
func (p *Person) Abilities() map[string]string {
	out := make(map[string]string, len(p.abilities))
	for k, v := range p.abilities {
		out[k] = v
	}
	return out
}

// OutRanks reports whether p strictly outranks other. Anyone outranks nobody.
func (p *Person) OutRanks(other *Person) bool {
	if other == nil {
		return true
	}
	return p.rank > other.rank
}

// Roster resolves person ids. It returns nil for unknown ids.
type Roster interface {
	Person(id uuid.UUID) *Person
}

// MapRoster is a Roster backed by a map
type MapRoster map[uuid.UUID]*Person

func (m MapRoster) Person(id uuid.UUID) *Person {
	return m[id]
}

// Add registers people and returns the roster for chaining
func (m MapRoster) Add(people ...*Person) MapRoster {
	for _, p := range people {
		m[p.ID()] = p
	}
	return m
}
