package rest

import (
	"net/http"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

func (h *Handler) createJournal(w http.ResponseWriter, r *http.Request) {
	var req models.JournalRequest
	file, cleanup, err := decodeMultipart(w, r, "journal", &req, h.maxUpload)
	defer cleanup()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	key, err := h.files.Upload(r.Context(), file)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req.Picture = key

	j, err := h.journals.Create(r.Context(), currentUser(r), req)
	if err != nil {
		h.dropImage(r.Context(), key)
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Created", j)
}

func (h *Handler) listJournals(w http.ResponseWriter, r *http.Request) {
	list, err := h.journals.List(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", list)
}

func (h *Handler) journalDetail(w http.ResponseWriter, r *http.Request) {
	journalID, err := pathID(r, "journalId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	j, err := h.journals.Detail(r.Context(), journalID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", j)
}

func (h *Handler) modifyJournal(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	journalID, err := pathID(r, "journalId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req models.JournalRequest
	file, cleanup, err := decodeMultipart(w, r, "journal", &req, h.maxUpload)
	defer cleanup()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	current, err := h.journals.Owned(r.Context(), userID, journalID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Picture, err = h.storeImage(r.Context(), current.Picture, file); err != nil {
		h.fail(w, r, err)
		return
	}

	j, err := h.journals.Modify(r.Context(), userID, journalID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Modified", j)
}

func (h *Handler) deleteJournal(w http.ResponseWriter, r *http.Request) {
	journalID, err := pathID(r, "journalId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	j, err := h.journals.Delete(r.Context(), currentUser(r), journalID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.dropImage(r.Context(), j.Picture)
	writeOK(w, http.StatusOK, "Deleted", nil)
}

func (h *Handler) batchDeleteJournals(w http.ResponseWriter, r *http.Request) {
	var req models.JournalBatchDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	deleted, err := h.journals.BatchDelete(r.Context(), currentUser(r), req.JournalIDs)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	for _, j := range deleted {
		h.dropImage(r.Context(), j.Picture)
	}
	writeOK(w, http.StatusOK, "Deleted", nil)
}

func (h *Handler) journalPicture(w http.ResponseWriter, r *http.Request) {
	h.writePicture(w, r, "journalId", h.journals.Image)
}
