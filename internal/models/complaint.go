// internal/models/complaint.go
package models

// ComplaintToken is a customer-raised ticket against a checked code. Product
// name, brand and code are stored as plain text captured at submission time,
// with no foreign key, so the ticket survives product archival or deletion.
// Tickets are never deleted; only the admin reply and status may change.
type ComplaintToken struct {
	BaseModel
	ProductName     string          `json:"product_name" gorm:"size:255"`
	Brand           string          `json:"brand" gorm:"size:255"`
	Code            string          `json:"code" gorm:"size:50;index"`
	Issue           string          `json:"issue" gorm:"type:text"`
	CustomerName    string          `json:"customer_name" gorm:"size:255"`
	CustomerContact string          `json:"customer_contact" gorm:"size:255"`
	AdminReply      string          `json:"admin_reply" gorm:"type:text"`
	Status          ComplaintStatus `json:"status" gorm:"type:varchar(20);default:'OPEN'"`
}
