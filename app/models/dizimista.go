package models

import "aparecida-web/app/dates"

// Dizimista is a tithe donor record.
type Dizimista struct {
	ID             string       `json:"id"`
	FullName       string       `json:"fullName"`
	Birthdate      string       `json:"birthdate"`
	AvailableSex   string       `json:"availableSex"`
	AvailableState string       `json:"availableState"`
	Phone          string       `json:"phone"`
	Address        string       `json:"address"`
	Community      string       `json:"community"`
	CreatedAt      dates.Millis `json:"createdAt"`
}

// DizimistaInput is the body of the public tithe form.
type DizimistaInput struct {
	FullName       string `json:"fullName" form:"fullName" validate:"required"`
	Birthdate      string `json:"birthdate" form:"birthdate" validate:"required,date"`
	AvailableSex   string `json:"availableSex" form:"availableSex" validate:"omitempty,option=sex"`
	AvailableState string `json:"availableState" form:"availableState" validate:"omitempty,option=dizimistaState"`
	Phone          string `json:"phone" form:"phone" validate:"required,phone"`
	Address        string `json:"address" form:"address" validate:"required"`
	Community      string `json:"community" form:"community" validate:"required"`
}

// ApplyTo overwrites the editable fields of d with the input.
func (in DizimistaInput) ApplyTo(d *Dizimista) {
	d.FullName = in.FullName
	d.Birthdate = in.Birthdate
	d.AvailableSex = in.AvailableSex
	d.AvailableState = in.AvailableState
	d.Phone = in.Phone
	d.Address = in.Address
	d.Community = in.Community
}
