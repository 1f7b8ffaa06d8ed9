package rest

import (
	"net/http"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

func (h *Handler) registerWalk(w http.ResponseWriter, r *http.Request) {
	var req models.WalkRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	d, err := h.walks.Register(r.Context(), currentUser(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Created", d)
}

func (h *Handler) listWalks(w http.ResponseWriter, r *http.Request) {
	list, err := h.walks.ListAll(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", list)
}

func (h *Handler) walkDetail(w http.ResponseWriter, r *http.Request) {
	walkID, err := pathID(r, "walkId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	d, err := h.walks.Detail(r.Context(), walkID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", d)
}

func (h *Handler) modifyWalk(w http.ResponseWriter, r *http.Request) {
	walkID, err := pathID(r, "walkId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req models.WalkRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	d, err := h.walks.Modify(r.Context(), currentUser(r), walkID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Modified", d)
}

func (h *Handler) deleteWalk(w http.ResponseWriter, r *http.Request) {
	walkID, err := pathID(r, "walkId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.walks.Delete(r.Context(), currentUser(r), walkID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Deleted", nil)
}

func (h *Handler) walkDone(w http.ResponseWriter, r *http.Request) {
	petID, err := pathID(r, "petId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	done, err := h.walks.IsDone(r.Context(), petID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", map[string]bool{"done": done})
}

func (h *Handler) walkTotal(w http.ResponseWriter, r *http.Request) {
	petID, err := pathID(r, "petId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	total, err := h.walks.WalkTimeSum(r.Context(), petID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", total)
}
