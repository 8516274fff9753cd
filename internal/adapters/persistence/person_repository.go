package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
)

// ErrPersonNotFound is returned for unknown person ids
var ErrPersonNotFound = errors.New("person not found")

// GormPersonRepository implements personnel.Repository using GORM
type GormPersonRepository struct {
	db *gorm.DB
}

// NewGormPersonRepository creates a new GORM person repository
func NewGormPersonRepository(db *gorm.DB) *GormPersonRepository {
	return &GormPersonRepository{db: db}
}

// FindAll retrieves every person
func (r *GormPersonRepository) FindAll(ctx context.Context) ([]*personnel.Person, error) {
	var models []PersonModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	people := make([]*personnel.Person, 0, len(models))
	for i := range models {
		p, err := modelToPerson(&models[i])
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, nil
}

// FindByID retrieves a person by id
func (r *GormPersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*personnel.Person, error) {
	var model PersonModel
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
		}
		return nil, fmt.Errorf("failed to find person: %w", result.Error)
	}
	return modelToPerson(&model)
}

// Save creates or updates a person
func (r *GormPersonRepository) Save(ctx context.Context, p *personnel.Person) error {
	model, err := personToModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert person to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save person: %w", err)
	}
	return nil
}

func modelToPerson(model *PersonModel) (*personnel.Person, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid person id %q in database: %w", model.ID, err)
	}

	p := personnel.NewPerson(id, model.Name, model.Rank)
	p.SetLegacyID(model.LegacyID)
	p.SetCallsign(model.Callsign)
	p.SetHits(model.Hits)
	p.SetActive(model.Active)
	p.SetToughness(model.Toughness)
	p.SetEdge(model.Edge)
	p.SetMinutesLeft(model.MinutesLeft)
	p.SetOvertimeLeft(model.OvertimeLeft)
	p.SetAstechs(model.Astechs)
	p.SetInjuryModifiers(model.PilotingMod, model.GunneryMod)

	if model.Skills != "" {
		var skills map[personnel.SkillType]personnel.Skill
		if err := json.Unmarshal([]byte(model.Skills), &skills); err != nil {
			return nil, fmt.Errorf("invalid skills for person %s: %w", model.ID, err)
		}
		for t, s := range skills {
			p.SetSkill(t, s)
		}
	}
	if model.Abilities != "" {
		var abilities map[string]string
		if err := json.Unmarshal([]byte(model.Abilities), &abilities); err != nil {
			return nil, fmt.Errorf("invalid abilities for person %s: %w", model.ID, err)
		}
		for name, value := range abilities {
			p.SetAbility(name, value)
		}
	}
	return p, nil
}

func personToModel(p *personnel.Person) (*PersonModel, error) {
	skills, err := json.Marshal(p.Skills())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	abilities, err := json.Marshal(p.Abilities())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal abilities: %w", err)
	}
	piloting, gunnery := p.InjuryModifiers()

	return &PersonModel{
		ID:           p.ID().String(),
		LegacyID:     p.LegacyID(),
		Name:         p.Name(),
		Callsign:     p.Callsign(),
		Rank:         p.Rank(),
		Hits:         p.Hits(),
		Active:       p.IsActive(),
		Toughness:    p.Toughness(),
		Edge:         p.Edge(),
		MinutesLeft:  p.MinutesLeft(),
		OvertimeLeft: p.OvertimeLeft(),
		Astechs:      p.Astechs(),
		PilotingMod:  piloting,
		GunneryMod:   gunnery,
		Skills:       string(skills),
		Abilities:    string(abilities),
	}, nil
}
