package models

import "time"

type Walk struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Distance  int64     `json:"distance"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// WalkPet joins one walk and one pet.
type WalkPet struct {
	ID     int64 `json:"id"`
	WalkID int64 `json:"walk_id"`
	PetID  int64 `json:"pet_id"`
}

type WalkRequest struct {
	Distance  int64     `json:"distance"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	PetIDs    []int64   `json:"pet_ids"`
}

// WalkDetail is a walk with the pets that took part in it.
type WalkDetail struct {
	Walk
	Pets []*Pet `json:"pets"`
}

// WalkTotal aggregates all walks of one pet.
type WalkTotal struct {
	DistanceSum int64 `json:"distance_sum"`
	TimePassed  int64 `json:"time_passed"`
}

func NewWalk(userID int64, req WalkRequest) Walk {
	return Walk{UserID: userID}.Modified(req)
}

func (w Walk) Modified(req WalkRequest) Walk {
	w.Distance = req.Distance
	w.StartTime = req.StartTime
	w.EndTime = req.EndTime
	return w
}

// Elapsed is the walk duration in whole seconds.
func (w Walk) Elapsed() int64 {
	return int64(w.EndTime.Sub(w.StartTime) / time.Second)
}

// SumWalks adds up distance and elapsed time over walks.
func SumWalks(walks []*Walk) WalkTotal {
	var total WalkTotal
	for _, w := range walks {
		total.DistanceSum += w.Distance
		total.TimePassed += w.Elapsed()
	}
	return total
}

// DiffPetIDs compares the pets currently joined to a walk with the requested
// list. removed holds ids present only in current, added those present only
// in requested; ids in both sets appear in neither. Order follows the inputs.
func DiffPetIDs(current, requested []int64) (removed, added []int64) {
	want := make(map[int64]struct{}, len(requested))
	for _, id := range requested {
		want[id] = struct{}{}
	}
	have := make(map[int64]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}

	for _, id := range current {
		if _, ok := want[id]; !ok {
			removed = append(removed, id)
		}
	}
	seen := make(map[int64]struct{}, len(requested))
	for _, id := range requested {
		if _, ok := have[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		added = append(added, id)
	}
	return removed, added
}
