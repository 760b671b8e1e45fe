package domain

// Draft holds the name and price text being typed before an add-item submission.
// The pending input belongs to the presentation layer: an in-process client keeps a Draft next to
// its Catalog, while HTTP clients keep the text themselves and post it to the add-item route.
type Draft struct {
	Name      string
	PriceText string
}

// Submit adds the drafted item to the catalog. The draft is cleared only when the item is accepted,
// so a rejected submission keeps the text for correction.
func (d *Draft) Submit(c *Catalog) (Item, error) {
	item, err := c.AddItem(d.Name, d.PriceText)
	if err != nil {
		return Item{}, err
	}
	d.Clear()
	return item, nil
}

// Clear empties both input fields
func (d *Draft) Clear() {
	d.Name = ""
	d.PriceText = ""
}
