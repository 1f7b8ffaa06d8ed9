// Package models defines the server-side records persisted in PostgreSQL and
// the request shapes that create or change them.
package models

import "time"

// User is a community member. Users are never hard-deleted; IsLeft marks an
// account that quit.
type User struct {
	ID         int64     `json:"id"`
	MemberID   string    `json:"member_id"`
	Password   string    `json:"-"`
	Nickname   string    `json:"nickname"`
	Gender     string    `json:"gender"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	ProfilePic string    `json:"profile_pic"`
	Introduce  string    `json:"introduce"`
	IsLeft     bool      `json:"is_left"`
	PetID      int64     `json:"pet_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserRequest carries the editable profile fields for signup and profile
// modification. ProfilePic is filled by the transport layer after the image
// has been stored.
type UserRequest struct {
	MemberID   string `json:"member_id"`
	Password   string `json:"password"`
	Nickname   string `json:"nickname"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Introduce  string `json:"introduce"`
	ProfilePic string `json:"-"`
}

// LoginRequest is the credentials pair posted to the login endpoint.
type LoginRequest struct {
	MemberID string `json:"member_id"`
	Password string `json:"password"`
}

// Modified returns a copy of u with the profile fields taken from req.
// passwordHash replaces the stored hash unless it is empty. Identity,
// soft-delete state and the primary pet are left alone.
func (u User) Modified(req UserRequest, passwordHash string) User {
	u.MemberID = req.MemberID
	u.Nickname = req.Nickname
	u.Gender = req.Gender
	u.Phone = req.Phone
	u.Email = req.Email
	u.Introduce = req.Introduce
	u.ProfilePic = req.ProfilePic
	if passwordHash != "" {
		u.Password = passwordHash
	}
	return u
}

// WithPrimaryPet returns a copy of u pointing at petID (0 unsets it).
func (u User) WithPrimaryPet(petID int64) User {
	u.PetID = petID
	return u
}

// Left returns a soft-deleted copy of u.
func (u User) Left() User {
	u.IsLeft = true
	return u
}
