package models

import "github.com/google/uuid"

// State is the top level of the administrative hierarchy.
type State struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Code string    `json:"code" db:"code"`
}

// District belongs to a state.
type District struct {
	ID      uuid.UUID `json:"id" db:"id"`
	StateID uuid.UUID `json:"state_id" db:"state_id"`
	Name    string    `json:"name" db:"name"`
}

// Mandal belongs to a district.
type Mandal struct {
	ID         uuid.UUID `json:"id" db:"id"`
	DistrictID uuid.UUID `json:"district_id" db:"district_id"`
	Name       string    `json:"name" db:"name"`
}

// Village is the most specific level; its ancestor chain
// (mandal → district → state) fills in identifiers the caller omitted.
type Village struct {
	ID       uuid.UUID `json:"id" db:"id"`
	MandalID uuid.UUID `json:"mandal_id" db:"mandal_id"`
	Name     string    `json:"name" db:"name"`
}

// LocationInput is the loosely-shaped location payload on a submission.
// Any subset of the fields may be present.
type LocationInput struct {
	VillageID  *uuid.UUID `json:"village_id,omitempty"`
	MandalID   *uuid.UUID `json:"mandal_id,omitempty"`
	DistrictID *uuid.UUID `json:"district_id,omitempty"`
	StateID    *uuid.UUID `json:"state_id,omitempty"`
	Village    string     `json:"village,omitempty"`
	Mandal     string     `json:"mandal,omitempty"`
	District   string     `json:"district,omitempty"`
	State      string     `json:"state,omitempty"`
	City       string     `json:"city,omitempty"`
}

// IsZero reports whether no location information was supplied at all.
func (in LocationInput) IsZero() bool {
	return in.VillageID == nil && in.MandalID == nil && in.DistrictID == nil &&
		in.StateID == nil && in.Village == "" && in.Mandal == "" &&
		in.District == "" && in.State == "" && in.City == ""
}

// LocationRef is the canonical resolved location. Resolution never fails:
// absent or unresolvable data degrades to nil and sets Degraded when a
// supplied identifier could not be looked up.
type LocationRef struct {
	VillageID    *uuid.UUID `json:"village_id,omitempty"`
	VillageName  *string    `json:"village_name,omitempty"`
	MandalID     *uuid.UUID `json:"mandal_id,omitempty"`
	MandalName   *string    `json:"mandal_name,omitempty"`
	DistrictID   *uuid.UUID `json:"district_id,omitempty"`
	DistrictName *string    `json:"district_name,omitempty"`
	StateID      *uuid.UUID `json:"state_id,omitempty"`
	StateName    *string    `json:"state_name,omitempty"`
	DisplayName  *string    `json:"display_name,omitempty"`
	Address      *string    `json:"address,omitempty"`
	PlaceID      *uuid.UUID `json:"place_id,omitempty"`
	Degraded     bool       `json:"degraded,omitempty"`
}

// Place returns the display name or the empty string.
func (l LocationRef) Place() string {
	if l.DisplayName != nil {
		return *l.DisplayName
	}
	return ""
}
