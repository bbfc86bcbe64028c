package models

// Collection is a shared grouping of organization-owned records.
//
// ReadOnly is a tri-state coming from the server: nil means the flag was not
// set for this caller and is treated as editable.
type Collection struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	ReadOnly       *bool  `json:"readOnly,omitempty"`
}

// Editable reports whether the caller has non-read-only access through this
// collection. A missing flag counts as editable.
func (c *Collection) Editable() bool {
	return c.ReadOnly == nil || !*c.ReadOnly
}
