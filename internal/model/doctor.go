package model

import "fmt"

// Doctor is a doctor record. Name is the lookup key but is not unique.
type Doctor struct {
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	Experience int    `json:"experience"`
}

// Summary renders the doctor the way list and search results show it.
func (d Doctor) Summary() string {
	return fmt.Sprintf("%s — %s, %d yrs", d.Name, d.Specialty, d.Experience)
}

type CreateDoctorRequest struct {
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	Experience int    `json:"experience" binding:"min=0"`
}

func (r *CreateDoctorRequest) ToDoctor() Doctor {
	return Doctor{
		Name:       r.Name,
		Specialty:  r.Specialty,
		Experience: r.Experience,
	}
}

type SearchDoctorQuery struct {
	Name string `form:"name" binding:"required"`
}

// DoctorSearchResult carries a search outcome. A miss is a normal result.
type DoctorSearchResult struct {
	Found  bool    `json:"found"`
	Doctor *Doctor `json:"doctor,omitempty"`
}
