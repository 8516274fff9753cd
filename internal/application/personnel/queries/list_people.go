package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
)

// ListPeopleQuery lists the campaign roster
type ListPeopleQuery struct {
	ActiveOnly bool
}

// PersonDTO is a roster line
type PersonDTO struct {
	ID       string
	LegacyID int
	Title    string
	Rank     int
	Hits     int
	Active   bool
	Skills   map[string]int
}

// ListPeopleResponse contains the roster
type ListPeopleResponse struct {
	People []*PersonDTO
}

// ListPeopleHandler handles the ListPeople query
type ListPeopleHandler struct {
	people personnel.Repository
}

// NewListPeopleHandler creates a new ListPeopleHandler
func NewListPeopleHandler(people personnel.Repository) *ListPeopleHandler {
	return &ListPeopleHandler{people: people}
}

// Handle executes the ListPeople query
func (h *ListPeopleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListPeopleQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListPeopleQuery")
	}

	people, err := h.people.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	resp := &ListPeopleResponse{People: make([]*PersonDTO, 0, len(people))}
	for _, p := range people {
		if query.ActiveOnly && !p.IsActive() {
			continue
		}
		dto := &PersonDTO{
			ID:       p.ID().String(),
			LegacyID: p.LegacyID(),
			Title:    p.FullTitle(),
			Rank:     p.Rank(),
			Hits:     p.Hits(),
			Active:   p.IsActive(),
			Skills:   make(map[string]int),
		}
		for t, s := range p.Skills() {
			dto.Skills[string(t)] = s.Value
		}
		resp.People = append(resp.People, dto)
	}
	sort.Slice(resp.People, func(i, j int) bool {
		if resp.People[i].Rank != resp.People[j].Rank {
			return resp.People[i].Rank > resp.People[j].Rank
		}
		return resp.People[i].Title < resp.People[j].Title
	})
	return resp, nil
}
