package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestUser_Modified_KeepsIdentityAndState(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	u := User{
		ID: 7, MemberID: "alice", Password: "old-hash", Nickname: "alice1",
		IsLeft: false, PetID: 3, CreatedAt: created,
	}

	got := u.Modified(UserRequest{
		MemberID: "alice2", Nickname: "al", Gender: "F", Phone: "01012345678",
		Email: "a@example.com", Introduce: "hi", ProfilePic: "images/a.png",
	}, "")

	want := User{
		ID: 7, MemberID: "alice2", Password: "old-hash", Nickname: "al", Gender: "F",
		Phone: "01012345678", Email: "a@example.com", Introduce: "hi",
		ProfilePic: "images/a.png", PetID: 3, CreatedAt: created,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Modified mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "alice", u.MemberID, "receiver must not change")
	assert.Equal(t, "new-hash", u.Modified(UserRequest{}, "new-hash").Password)
}

func TestUser_WithPrimaryPetAndLeft(t *testing.T) {
	u := User{ID: 1}
	assert.Equal(t, int64(9), u.WithPrimaryPet(9).PetID)
	assert.True(t, u.Left().IsLeft)
	assert.False(t, u.IsLeft)
}

func TestPet_ModifiedKeepsOwner(t *testing.T) {
	p := Pet{ID: 4, UserID: 2, Name: "Rex"}
	got := p.Modified(PetRequest{KindID: 5, Name: "Max", Weight: 4.5, AnimalPic: "k"})

	assert.Equal(t, int64(4), got.ID)
	assert.Equal(t, int64(2), got.UserID)
	assert.Equal(t, "Max", got.Name)
	assert.Equal(t, int64(5), got.KindID)
	assert.Equal(t, 4.5, got.Weight)
	assert.Equal(t, "Rex", p.Name)
}

func TestBoardAndComment_Constructors(t *testing.T) {
	now := time.Now()
	b := NewBoard(3, BoardRequest{TypeID: 1, Title: "t", Content: "c", Image: "i"}, now)
	assert.Equal(t, Board{UserID: 3, TypeID: 1, Title: "t", Content: "c", Image: "i", CreatedAt: now}, b)

	c := NewComment(3, CommentRequest{BoardID: 8, Content: "first"}, now)
	moved := c.Modified(CommentRequest{BoardID: 99, Content: "edited"})
	assert.Equal(t, int64(8), moved.BoardID)
	assert.Equal(t, "edited", moved.Content)
}

func TestJournal_Modified(t *testing.T) {
	now := time.Now()
	j := NewJournal(1, JournalRequest{PetID: 2, Part: "ear"}, now)
	got := j.Modified(JournalRequest{PetID: 3, Symptom: "itch", Result: "ok", Picture: "p"})

	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, now, got.CreatedAt)
	assert.Equal(t, int64(3), got.PetID)
	assert.Equal(t, "", got.Part)
	assert.Equal(t, "itch", got.Symptom)
}

func TestSumWalks(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	walks := []*Walk{
		{Distance: 1200, StartTime: start, EndTime: start.Add(30 * time.Minute)},
		{Distance: 800, StartTime: start, EndTime: start.Add(90 * time.Second)},
	}

	assert.Equal(t, WalkTotal{DistanceSum: 2000, TimePassed: 1800 + 90}, SumWalks(walks))
	assert.Equal(t, WalkTotal{}, SumWalks(nil))
}

func TestDiffPetIDs(t *testing.T) {
	tests := []struct {
		name        string
		current     []int64
		requested   []int64
		wantRemoved []int64
		wantAdded   []int64
	}{
		{name: "swap one", current: []int64{1, 2}, requested: []int64{1, 3}, wantRemoved: []int64{2}, wantAdded: []int64{3}},
		{name: "unchanged", current: []int64{1, 2}, requested: []int64{2, 1}},
		{name: "clear", current: []int64{1, 2}, requested: nil, wantRemoved: []int64{1, 2}},
		{name: "from empty", current: nil, requested: []int64{4, 5}, wantAdded: []int64{4, 5}},
		{name: "duplicate request ids added once", current: nil, requested: []int64{4, 4}, wantAdded: []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			removed, added := DiffPetIDs(tt.current, tt.requested)
			assert.Equal(t, tt.wantRemoved, removed)
			assert.Equal(t, tt.wantAdded, added)
		})
	}
}
