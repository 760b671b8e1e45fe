package handlers

import (
	"catalog-service/internal/domain"
)

// AddItemRequest represents the add-item form submission
// @Description Name and price exactly as typed; the price is validated server side
type AddItemRequest struct {
	// Product name (must not be empty)
	Name string `json:"name" form:"name" example:"Produto D"`

	// Price as entered text, parsed as a positive decimal
	Price string `json:"price" form:"price" example:"12.50"`
}

// ItemResponse represents one catalog row
type ItemResponse struct {
	ID       int    `json:"id" example:"1"`
	Name     string `json:"name" example:"Produto A"`
	Price    string `json:"price" example:"10.00"`
	Quantity int    `json:"quantity" example:"2"`
	Subtotal string `json:"subtotal" example:"20.00"`
	Label    string `json:"label" example:"Produto A - R$ 10.00 (x2)"`
}

// CatalogResponse is the full state a client renders after every intent
type CatalogResponse struct {
	Items      []ItemResponse `json:"items"`
	Count      int            `json:"count" example:"2"`
	Total      string         `json:"total" example:"40.00"`
	TotalLabel string         `json:"total_label" example:"Total: R$ 40.00"`
	Applied    *bool          `json:"applied,omitempty"`
}

// TotalResponse represents the derived total
type TotalResponse struct {
	Total string `json:"total" example:"40.00"`
	Label string `json:"label" example:"Total: R$ 40.00"`
}

// AddItemResponse is returned after an item is accepted
type AddItemResponse struct {
	Item    ItemResponse    `json:"item"`
	Catalog CatalogResponse `json:"catalog"`
}

func newItemResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price.StringFixed(2),
		Quantity: item.Quantity,
		Subtotal: item.Subtotal().StringFixed(2),
		Label:    item.Label(),
	}
}

func newCatalogResponse(snap domain.Snapshot) CatalogResponse {
	items := make([]ItemResponse, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, newItemResponse(item))
	}
	return CatalogResponse{
		Items:      items,
		Count:      len(items),
		Total:      snap.FormattedTotal(),
		TotalLabel: snap.TotalLabel(),
	}
}

func newAppliedResponse(snap domain.Snapshot, applied bool) CatalogResponse {
	resp := newCatalogResponse(snap)
	resp.Applied = &applied
	return resp
}
