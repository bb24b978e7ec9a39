// Package events carries "code issued" notifications from the code issuer to
// export and labeling collaborators without the issuer knowing their formats.
package events

import "time"

// CodeIssued is emitted once per issued code. It is denormalized so consumers
// can log or print labels without querying the primary database.
type CodeIssued struct {
	ProductName string    `json:"product_name"`
	Brand       string    `json:"brand"`
	Code        string    `json:"code"`
	IssuedAt    time.Time `json:"issued_at"`
}
