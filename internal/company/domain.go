package company

import "time"

// Company is a tenant owning stocks, price types, roles and members.
// The identifier is chosen by the creator and doubles as the public slug.
type Company struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TIN           string    `json:"tin"`
	Description   string    `json:"description"`
	DescriptionRu string    `json:"descriptionRu,omitempty"`
	Slogan        string    `json:"slogan,omitempty"`
	SloganRu      string    `json:"sloganRu,omitempty"`
	ImageID       string    `json:"imageId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnerRoleName is the default role every company starts with. It sees all
// data and is attached to the creator's member record.
const OwnerRoleName = "Owner"
