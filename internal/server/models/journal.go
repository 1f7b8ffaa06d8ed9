package models

import "time"

// Journal is a health-log entry. PetID is a soft reference: it is not
// enforced by a foreign key.
type Journal struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PetID     int64     `json:"pet_id"`
	Picture   string    `json:"picture"`
	Part      string    `json:"part"`
	Symptom   string    `json:"symptom"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

type JournalRequest struct {
	PetID   int64  `json:"pet_id"`
	Part    string `json:"part"`
	Symptom string `json:"symptom"`
	Result  string `json:"result"`
	Picture string `json:"-"`
}

type JournalBatchDeleteRequest struct {
	JournalIDs []int64 `json:"journal_ids"`
}

func NewJournal(userID int64, req JournalRequest, now time.Time) Journal {
	j := Journal{UserID: userID, CreatedAt: now}
	return j.Modified(req)
}

func (j Journal) Modified(req JournalRequest) Journal {
	j.PetID = req.PetID
	j.Part = req.Part
	j.Symptom = req.Symptom
	j.Result = req.Result
	j.Picture = req.Picture
	return j
}
