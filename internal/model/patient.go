package model

import "time"

// Patient represents a clinic patient record as stored in the
// `patients` table.  Patients carry no owner: every authenticated
// staff member sees the full list.  Weight and height are expected to
// be positive; validation happens at the handler boundary, the
// repository persists what it is given.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – patient full name (not unique).
//  Age       – age in years.
//  Sex       – "M" or "F".
//  Phone     – contact phone number.
//  Weight    – body weight in kilograms.
//  Height    – body height in centimetres.
//  CreatedAt – timestamp when the record was created.
type Patient struct {
    ID        uint64    `json:"id"`         // patients.id
    Name      string    `json:"name"`       // patients.name
    Age       int       `json:"age"`        // patients.age
    Sex       string    `json:"sex"`        // patients.sex
    Phone     string    `json:"phone"`      // patients.phone
    Weight    float64   `json:"weight"`     // patients.weight
    Height    float64   `json:"height"`     // patients.height
    CreatedAt time.Time `json:"created_at"` // patients.created_at
}
