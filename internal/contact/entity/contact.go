package entity

import "time"

// Contact is a person an ambassador met, owned by one application.
type Contact struct {
	ID            int64
	ApplicationID int64
	Name          string
	Company       string
	Avatar        string
	Event         string
	Note          string
	Phone         string
	Email         string
	Address       string
	LinkedinURL   string
	Starred       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ContactPatch holds the fields an update may change. Nil means keep.
type ContactPatch struct {
	Name        *string
	Company     *string
	Avatar      *string
	Event       *string
	Note        *string
	Phone       *string
	Email       *string
	Address     *string
	LinkedinURL *string
	Starred     *bool
}

// Apply returns c with every non-nil field of p copied over.
func (c Contact) Apply(p ContactPatch) Contact {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}

	set(&c.Name, p.Name)
	set(&c.Company, p.Company)
	set(&c.Avatar, p.Avatar)
	set(&c.Event, p.Event)
	set(&c.Note, p.Note)
	set(&c.Phone, p.Phone)
	set(&c.Email, p.Email)
	set(&c.Address, p.Address)
	set(&c.LinkedinURL, p.LinkedinURL)
	if p.Starred != nil {
		c.Starred = *p.Starred
	}

	return c
}
