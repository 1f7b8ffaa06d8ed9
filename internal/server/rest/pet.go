package rest

import (
	"net/http"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

func (h *Handler) createPet(w http.ResponseWriter, r *http.Request) {
	var req models.PetRequest
	file, cleanup, err := decodeMultipart(w, r, "pet", &req, h.maxUpload)
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
	req.AnimalPic = key

	p, err := h.pets.Create(r.Context(), currentUser(r), req)
	if err != nil {
		h.dropImage(r.Context(), key)
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Created", p)
}

func (h *Handler) listPets(w http.ResponseWriter, r *http.Request) {
	list, err := h.pets.List(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", list)
}

func (h *Handler) petDetail(w http.ResponseWriter, r *http.Request) {
	petID, err := pathID(r, "petId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.pets.Detail(r.Context(), petID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", p)
}

func (h *Handler) modifyPet(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	petID, err := pathID(r, "petId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req models.PetRequest
	file, cleanup, err := decodeMultipart(w, r, "pet", &req, h.maxUpload)
	defer cleanup()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	current, err := h.pets.Owned(r.Context(), userID, petID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if req.AnimalPic, err = h.storeImage(r.Context(), current.AnimalPic, file); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.pets.Modify(r.Context(), userID, petID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Modified", p)
}

func (h *Handler) deletePet(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	petID, err := pathID(r, "petId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.pets.Owned(r.Context(), userID, petID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.pets.Delete(r.Context(), userID, petID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.dropImage(r.Context(), p.AnimalPic)
	writeOK(w, http.StatusOK, "Deleted", nil)
}

func (h *Handler) kinds(w http.ResponseWriter, r *http.Request) {
	list, err := h.pets.Kinds(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", list)
}

func (h *Handler) kind(w http.ResponseWriter, r *http.Request) {
	kindID, err := pathID(r, "kindId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	k, err := h.pets.Kind(r.Context(), kindID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", k)
}

func (h *Handler) petPicture(w http.ResponseWriter, r *http.Request) {
	h.writePicture(w, r, "petId", h.pets.Image)
}
