package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// AdjustStockCommand adds (or with a negative delta, removes) spare parts
type AdjustStockCommand struct {
	PartName string
	Delta    int
}

// AdjustStockResponse carries the new count
type AdjustStockResponse struct {
	PartName string
	Quantity int
}

// AdjustStockHandler handles the AdjustStock command
type AdjustStockHandler struct {
	inventory common.InventoryRepository
}

// NewAdjustStockHandler creates a new AdjustStockHandler
func NewAdjustStockHandler(inventory common.InventoryRepository) *AdjustStockHandler {
	return &AdjustStockHandler{inventory: inventory}
}

// Handle executes the AdjustStock command
func (h *AdjustStockHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdjustStockCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdjustStockCommand")
	}
	if cmd.PartName == "" {
		return nil, shared.NewValidationError("part_name", "is required")
	}

	stock, err := h.inventory.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load spare stock: %w", err)
	}
	quantity := stock[cmd.PartName] + cmd.Delta
	if quantity < 0 {
		return nil, shared.NewValidationError("delta", fmt.Sprintf("only %d %s in stock", stock[cmd.PartName], cmd.PartName))
	}
	if quantity == 0 {
		delete(stock, cmd.PartName)
	} else {
		stock[cmd.PartName] = quantity
	}
	if err := h.inventory.Save(ctx, stock); err != nil {
		return nil, fmt.Errorf("failed to save spare stock: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Spare stock adjusted", map[string]interface{}{
		"action":   "adjust_stock",
		"part":     cmd.PartName,
		"delta":    cmd.Delta,
		"quantity": quantity,
	})
	return &AdjustStockResponse{PartName: cmd.PartName, Quantity: quantity}, nil
}
