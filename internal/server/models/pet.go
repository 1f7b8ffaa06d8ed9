package models

import "time"

type Pet struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	KindID      int64     `json:"kind_id"`
	Species     bool      `json:"species"`
	Name        string    `json:"name"`
	Gender      string    `json:"gender"`
	Neutralize  bool      `json:"neutralize"`
	Birth       time.Time `json:"birth"`
	Weight      float64   `json:"weight"`
	AnimalPic   string    `json:"animal_pic"`
	Death       bool      `json:"death"`
	Diseases    string    `json:"diseases"`
	Description string    `json:"description"`
}

// Kind is a breed from the read-only catalog.
type Kind struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PetRequest struct {
	KindID      int64     `json:"kind_id"`
	Species     bool      `json:"species"`
	Name        string    `json:"name"`
	Gender      string    `json:"gender"`
	Neutralize  bool      `json:"neutralize"`
	Birth       time.Time `json:"birth"`
	Weight      float64   `json:"weight"`
	Death       bool      `json:"death"`
	Diseases    string    `json:"diseases"`
	Description string    `json:"description"`
	AnimalPic   string    `json:"-"`
}

// NewPet builds an unsaved pet owned by userID.
func NewPet(userID int64, req PetRequest) Pet {
	return Pet{UserID: userID}.Modified(req)
}

// Modified returns a copy of p with every editable field taken from req.
// The owner and id never change.
func (p Pet) Modified(req PetRequest) Pet {
	p.KindID = req.KindID
	p.Species = req.Species
	p.Name = req.Name
	p.Gender = req.Gender
	p.Neutralize = req.Neutralize
	p.Birth = req.Birth
	p.Weight = req.Weight
	p.AnimalPic = req.AnimalPic
	p.Death = req.Death
	p.Diseases = req.Diseases
	p.Description = req.Description
	return p
}
