package records

import "github.com/vibhandikyash/MediCare-BE/internal/entity"

// Bill builds a bill record from a parsed bill document. Item costs keep
// their source formatting; missing values degrade to neutral defaults.
func (b *Builder) Bill(doc map[string]any) entity.Bill {
	name := asString(doc, "name")
	if name == "" {
		name = "Medical Bill"
	}
	total := asString(doc, "total")
	if total == "" {
		total = "0"
	}

	bill := entity.Bill{Name: name, Total: total, Details: []entity.BillItem{}}
	for _, v := range asList(doc, "details") {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		item := entity.BillItem{
			Name: asString(entry, "name"),
			Cost: asString(entry, "cost"),
		}
		if item.Name == "" {
			item.Name = "Unknown"
		}
		if item.Cost == "" {
			item.Cost = "0"
		}
		bill.Details = append(bill.Details, item)
	}
	return bill
}
