package model

import "fmt"

type Patient struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Disease string `json:"disease"`
}

func (p Patient) Summary() string {
	return fmt.Sprintf("%s, Age: %d, Disease: %s", p.Name, p.Age, p.Disease)
}

type CreatePatientRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age" binding:"min=0"`
	Disease string `json:"disease"`
}

func (r *CreatePatientRequest) ToPatient() Patient {
	return Patient{
		Name:    r.Name,
		Age:     r.Age,
		Disease: r.Disease,
	}
}

type PatientCount struct {
	Count int `json:"count"`
}
