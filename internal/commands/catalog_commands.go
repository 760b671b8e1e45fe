package commands

// IncrementQuantityCommand represents a user intent to add one unit of an item
type IncrementQuantityCommand struct {
	ID int
}

// DecrementQuantityCommand represents a user intent to remove one unit of an item
type DecrementQuantityCommand struct {
	ID int
}

// AddItemCommand represents a submission of the add-item form. Price is the text as typed.
type AddItemCommand struct {
	Name      string
	PriceText string
}

// DeleteItemCommand represents a command to remove an item from the catalog
type DeleteItemCommand struct {
	ID int
}
