package commands_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/application/personnel/commands"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func TestSavePerson_CreatesNewPerson(t *testing.T) {
	// Arrange
	repo := helpers.NewMockPersonRepository()
	handler := commands.NewSavePersonHandler(repo)

	// Act
	response, err := handler.Handle(context.Background(), &commands.SavePersonCommand{
		Name:     "Natasha Kerensky",
		Callsign: lo.ToPtr("Black Widow"),
		Rank:     lo.ToPtr(6),
		Skills:   []commands.SkillInput{{Type: string(personnel.SkillPilotMech), Level: 9, Value: 2}},
	})

	// Assert
	require.NoError(t, err)
	resp := response.(*commands.SavePersonResponse)
	assert.True(t, resp.Created)
	assert.Equal(t, `Natasha Kerensky "Black Widow"`, resp.Title)

	saved, err := repo.FindByID(context.Background(), resp.PersonID)
	require.NoError(t, err)
	assert.Equal(t, 6, saved.Rank())
	assert.True(t, saved.IsActive())
	skill, ok := saved.Skill(personnel.SkillPilotMech)
	require.True(t, ok)
	assert.Equal(t, 2, skill.Value)
}

func TestSavePerson_AstechTeamIsBounded(t *testing.T) {
	// Arrange
	tech := helpers.CreateTestPerson(2, map[personnel.SkillType]int{personnel.SkillTechMech: 5})
	repo := helpers.NewMockPersonRepository(tech)
	handler := commands.NewSavePersonHandler(repo)

	// Act
	_, tooMany := handler.Handle(context.Background(), &commands.SavePersonCommand{PersonID: tech.ID(), Astechs: lo.ToPtr(commands.MaxAstechTeam + 1)})
	_, err := handler.Handle(context.Background(), &commands.SavePersonCommand{PersonID: tech.ID(), Astechs: lo.ToPtr(4)})

	// Assert
	var validation *shared.ValidationError
	require.ErrorAs(t, tooMany, &validation)
	assert.Equal(t, "astechs", validation.Field)
	require.NoError(t, err)
	saved, err := repo.FindByID(context.Background(), tech.ID())
	require.NoError(t, err)
	assert.Equal(t, 4, saved.Astechs())
}

func TestSavePerson_UpdatesOnlyGivenFields(t *testing.T) {
	// Arrange
	existing := helpers.CreateTestPerson(3, nil)
	callsign := existing.Callsign()
	repo := helpers.NewMockPersonRepository(existing)
	handler := commands.NewSavePersonHandler(repo)

	// Act
	response, err := handler.Handle(context.Background(), &commands.SavePersonCommand{
		PersonID:  existing.ID(),
		Hits:      lo.ToPtr(2),
		Active:    lo.ToPtr(false),
		Abilities: map[string]string{"tactical_genius": "true"},
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, response.(*commands.SavePersonResponse).Created)
	assert.Equal(t, 3, existing.Rank())
	assert.Equal(t, callsign, existing.Callsign())
	assert.Equal(t, 2, existing.Hits())
	assert.False(t, existing.IsActive())
	assert.Equal(t, "true", existing.Ability("tactical_genius"))
}

func TestSavePerson_Validation(t *testing.T) {
	existing := helpers.CreateTestPerson(1, nil)

	tests := []struct {
		name  string
		cmd   *commands.SavePersonCommand
		field string
	}{
		{"new person without name", &commands.SavePersonCommand{}, "name"},
		{"unknown skill", &commands.SavePersonCommand{Name: "Kai", Skills: []commands.SkillInput{{Type: "basket_weaving"}}}, "skills"},
		{"too many hits", &commands.SavePersonCommand{PersonID: existing.ID(), Hits: lo.ToPtr(7)}, "hits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := helpers.NewMockPersonRepository(existing)
			handler := commands.NewSavePersonHandler(repo)

			// Act
			_, err := handler.Handle(context.Background(), tt.cmd)

			// Assert
			var validation *shared.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
		})
	}
	assert.Zero(t, existing.Hits())
}

func TestSavePerson_UnknownPerson(t *testing.T) {
	handler := commands.NewSavePersonHandler(helpers.NewMockPersonRepository())

	_, err := handler.Handle(context.Background(), &commands.SavePersonCommand{PersonID: helpers.CreateTestPerson(1, nil).ID()})

	assert.ErrorContains(t, err, "failed to find person")
}
