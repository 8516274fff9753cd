package queries

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
)

// ListStockQuery lists the spare parts warehouse
type ListStockQuery struct{}

// StockLine is one stocked part
type StockLine struct {
	PartName string
	Quantity int
}

// ListStockResponse lists stock sorted by part name
type ListStockResponse struct {
	Lines []StockLine
}

// ListStockHandler handles the ListStock query
type ListStockHandler struct {
	inventory common.InventoryRepository
}

// NewListStockHandler creates a new ListStockHandler
func NewListStockHandler(inventory common.InventoryRepository) *ListStockHandler {
	return &ListStockHandler{inventory: inventory}
}

// Handle executes the ListStock query
func (h *ListStockHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListStockQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListStockQuery")
	}

	stock, err := h.inventory.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load spare stock: %w", err)
	}
	names := lo.Keys(stock)
	slices.Sort(names)
	lines := lo.Map(names, func(name string, _ int) StockLine {
		return StockLine{PartName: name, Quantity: stock[name]}
	})
	return &ListStockResponse{Lines: lines}, nil
}
