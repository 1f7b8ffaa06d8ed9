package models

import "time"

type BoardType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Board struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TypeID    int64     `json:"type_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"created_at"`
}

// BoardDetail is a board with its comments, newest first.
type BoardDetail struct {
	Board
	Comments []*Comment `json:"comments"`
}

type BoardRequest struct {
	TypeID  int64  `json:"type_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"-"`
}

// BoardQuery selects a page of boards of one type whose title contains Word.
type BoardQuery struct {
	TypeID int64
	Word   string
	Page   int
	Size   int
}

func NewBoard(userID int64, req BoardRequest, now time.Time) Board {
	b := Board{UserID: userID, CreatedAt: now}
	return b.Modified(req)
}

func (b Board) Modified(req BoardRequest) Board {
	b.TypeID = req.TypeID
	b.Title = req.Title
	b.Content = req.Content
	b.Image = req.Image
	return b
}

type Comment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BoardID   int64     `json:"board_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentRequest struct {
	BoardID int64  `json:"board_id"`
	Content string `json:"content"`
}

func NewComment(userID int64, req CommentRequest, now time.Time) Comment {
	return Comment{UserID: userID, BoardID: req.BoardID, Content: req.Content, CreatedAt: now}
}

// Modified changes only the text; a comment cannot move between boards.
func (c Comment) Modified(req CommentRequest) Comment {
	c.Content = req.Content
	return c
}
