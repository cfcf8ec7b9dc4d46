package entity

// BillItem is one line of a medical bill. Costs keep the exact formatting
// from the source document (currency symbols included).
type BillItem struct {
	Name string `json:"name"`
	Cost string `json:"cost"`
}

// Bill is a parsed medical bill.
type Bill struct {
	Name    string     `json:"name"`
	Details []BillItem `json:"details"`
	Total   string     `json:"total"`
	FileURL string     `json:"file_url,omitempty"`
}
