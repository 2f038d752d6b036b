package domain

// HouseholdMember is one member as sent by the household form.
type HouseholdMember struct {
	Sex          string  `json:"sex"`
	Age          float64 `json:"age"`
	Kindergarten string  `json:"kindergarten"`
	SFO          string  `json:"sfo"`
	Pregnant     string  `json:"pregnant"`
	Income       int64   `json:"income"`
}

type HouseholdRequest struct {
	Members []HouseholdMember `json:"members"`
	Income  int64             `json:"income"`
	Cars    int               `json:"cars"`
}

type HouseholdResult struct {
	FamilyID   string            `json:"family_id"`
	Properties map[string]string `json:"properties"`
	FormFields map[string]string `json:"form_fields"`
}
