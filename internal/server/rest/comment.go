package rest

import (
	"net/http"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.comments.Create(r.Context(), currentUser(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Created", c)
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	list, err := h.comments.ListByBoard(r.Context(), boardID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", list)
}

func (h *Handler) modifyComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "commentId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req models.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.comments.Modify(r.Context(), currentUser(r), commentID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Modified", c)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "commentId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.comments.Delete(r.Context(), currentUser(r), commentID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Deleted", nil)
}
