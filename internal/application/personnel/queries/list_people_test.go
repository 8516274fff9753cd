package queries_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/application/personnel/queries"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func TestListPeople_SortedByRankThenTitle(t *testing.T) {
	// Arrange
	captain := personnel.NewPerson(uuid.New(), "Zed", 5)
	alpha := personnel.NewPerson(uuid.New(), "Alpha", 2)
	bravo := personnel.NewPerson(uuid.New(), "Bravo", 2)
	bravo.SetSkill(personnel.SkillGunneryMech, personnel.Skill{Level: 9, Value: 4})
	handler := queries.NewListPeopleHandler(helpers.NewMockPersonRepository(bravo, captain, alpha))

	// Act
	response, err := handler.Handle(context.Background(), &queries.ListPeopleQuery{})

	// Assert
	require.NoError(t, err)
	people := response.(*queries.ListPeopleResponse).People
	require.Len(t, people, 3)
	assert.Equal(t, []string{"Zed", "Alpha", "Bravo"}, []string{people[0].Title, people[1].Title, people[2].Title})
	assert.Equal(t, 4, people[2].Skills[string(personnel.SkillGunneryMech)])
}

func TestListPeople_ActiveOnly(t *testing.T) {
	// Arrange
	retired := helpers.CreateTestPerson(1, nil)
	retired.SetActive(false)
	handler := queries.NewListPeopleHandler(helpers.NewMockPersonRepository(retired, helpers.CreateTestPerson(1, nil)))

	// Act
	response, err := handler.Handle(context.Background(), &queries.ListPeopleQuery{ActiveOnly: true})

	// Assert
	require.NoError(t, err)
	people := response.(*queries.ListPeopleResponse).People
	require.Len(t, people, 1)
	assert.True(t, people[0].Active)
}
