package entity

import "strings"

// Seller is one active row of the seller directory spreadsheet.
type Seller struct {
	Id      string   `json:"seller_id" validate:"required"`
	Display string   `json:"seller_name" validate:"required"`
	EmailTo []string `json:"email_to"`
	EmailCc []string `json:"email_cc"`
}

// CleanAddresses drops empty, whitespace-only and literal "nan" tokens.
// The directory spreadsheet is maintained by hand and exported from tools
// that write "nan" into blank cells.
func CleanAddresses(addrs []string) []string {
	var clean []string
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a == "" || strings.EqualFold(a, "nan") {
			continue
		}
		clean = append(clean, a)
	}
	return clean
}
