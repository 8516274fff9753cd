package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// SkillInput sets one skill on a person
type SkillInput struct {
	Type  string
	Level int
	Bonus int
	Value int
}

// SavePersonCommand creates a person, or updates one when PersonID is set.
// Nil fields are left alone on update.
type SavePersonCommand struct {
	PersonID  uuid.UUID         // Optional: uuid.Nil creates a new person
	Name      string
	Callsign  *string
	Rank      *int
	Hits      *int
	Active    *bool
	Astechs   *int              // Astech team size, 0 to MaxAstechTeam
	Skills    []SkillInput
	Abilities map[string]string // An empty value clears the ability
}

// MaxAstechTeam is the largest astech team one tech can lead
const MaxAstechTeam = 6

// SavePersonResponse carries the saved person
type SavePersonResponse struct {
	PersonID uuid.UUID
	Title    string
	Created  bool
}

// SavePersonHandler handles the SavePerson command
type SavePersonHandler struct {
	people personnel.Repository
}

// NewSavePersonHandler creates a new SavePersonHandler
func NewSavePersonHandler(people personnel.Repository) *SavePersonHandler {
	return &SavePersonHandler{people: people}
}

// Handle executes the SavePerson command
func (h *SavePersonHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SavePersonCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SavePersonCommand")
	}

	var p *personnel.Person
	created := cmd.PersonID == uuid.Nil
	if created {
		if cmd.Name == "" {
			return nil, shared.NewValidationError("name", "is required")
		}
		p = personnel.NewPerson(uuid.New(), cmd.Name, 0)
	} else {
		found, err := h.people.FindByID(ctx, cmd.PersonID)
		if err != nil {
			return nil, fmt.Errorf("failed to find person: %w", err)
		}
		p = found
	}

	if err := applyPersonChanges(p, cmd); err != nil {
		return nil, err
	}
	if err := h.people.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save person: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Person saved", map[string]interface{}{
		"action":  "save_person",
		"person":  p.FullTitle(),
		"created": created,
	})
	return &SavePersonResponse{PersonID: p.ID(), Title: p.FullTitle(), Created: created}, nil
}

func applyPersonChanges(p *personnel.Person, cmd *SavePersonCommand) error {
	for _, s := range cmd.Skills {
		t := personnel.SkillType(s.Type)
		if !t.IsValid() {
			return shared.NewValidationError("skills", fmt.Sprintf("unknown skill %q", s.Type))
		}
	}
	if cmd.Hits != nil && (*cmd.Hits < 0 || *cmd.Hits > 6) {
		return shared.NewValidationError("hits", "must be between 0 and 6")
	}
	if cmd.Astechs != nil && (*cmd.Astechs < 0 || *cmd.Astechs > MaxAstechTeam) {
		return shared.NewValidationError("astechs", fmt.Sprintf("must be between 0 and %d", MaxAstechTeam))
	}

	if cmd.Callsign != nil {
		p.SetCallsign(*cmd.Callsign)
	}
	if cmd.Rank != nil {
		p.SetRank(*cmd.Rank)
	}
	if cmd.Hits != nil {
		p.SetHits(*cmd.Hits)
	}
	if cmd.Active != nil {
		p.SetActive(*cmd.Active)
	}
	if cmd.Astechs != nil {
		p.SetAstechs(*cmd.Astechs)
	}
	for _, s := range cmd.Skills {
		p.SetSkill(personnel.SkillType(s.Type), personnel.Skill{Level: s.Level, Bonus: s.Bonus, Value: s.Value})
	}
	for name, value := range cmd.Abilities {
		p.SetAbility(name, value)
	}
	return nil
}
