package models

// CustomersSheet is the sheet title for customer profiles
const CustomersSheet = "Customers"

// CustomerHeaders is the fixed header row of the Customers sheet.
// Column order is the row encoding; never reorder.
var CustomerHeaders = []string{
	"Phone Number", "Customer Name", "Total Orders", "Last Interaction",
	"Current Status", "Preferred Town", "Customer Tier", "Agent Notes", "Last Updated",
}

// CustomerProfile is one row of the Customers sheet. Created on first
// contact from a phone number, mutated on every inbound message, never
// deleted.
type CustomerProfile struct {
	Phone               string // A - unique key
	DisplayName         string // B
	TotalOrders         int    // C
	LastInteractionText string // D
	CurrentStatus       string // E
	PreferredTown       string // F
	Tier                string // G
	AgentNotes          string // H
	LastUpdated         string // I - "2006-01-02 15:04:05"
}

// ToRow encodes the profile as a sheet row in header order.
func (p *CustomerProfile) ToRow() []string {
	return []string{
		p.Phone,
		p.DisplayName,
		itoa(p.TotalOrders),
		p.LastInteractionText,
		p.CurrentStatus,
		p.PreferredTown,
		p.Tier,
		p.AgentNotes,
		p.LastUpdated,
	}
}

// CustomerProfileFromRow decodes a sheet row. Short rows are padded;
// a malformed order count decodes as zero rather than failing the read.
func CustomerProfileFromRow(row []string) *CustomerProfile {
	row = padRow(row, len(CustomerHeaders))
	return &CustomerProfile{
		Phone:               row[0],
		DisplayName:         row[1],
		TotalOrders:         atoi(row[2]),
		LastInteractionText: row[3],
		CurrentStatus:       row[4],
		PreferredTown:       row[5],
		Tier:                row[6],
		AgentNotes:          row[7],
		LastUpdated:         row[8],
	}
}
