package domain

// Client represents a counterparty that deals are made with.
type Client struct {
	ClientID int64  `json:"clientID"` // Assigned by the store
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	AuditFields
}

// ClientUpdate lists the client fields a partial update may change.
type ClientUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
}

// Apply copies the supplied fields onto c.
func (c *Client) Apply(u ClientUpdate) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Company != nil {
		c.Company = *u.Company
	}
}
