package models

type Location struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Facility Facility `json:"facility"`
}

type Facility struct {
	ID   string `json:"id" db:"facility_id"`
	Name string `json:"name" db:"facility_name"`
}
