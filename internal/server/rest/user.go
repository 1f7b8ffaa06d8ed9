package rest

import (
	"net/http"

	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type primaryPetRequest struct {
	PetID int64 `json:"pet_id"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	file, cleanup, err := decodeMultipart(w, r, "user", &req, h.maxUpload)
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
	req.ProfilePic = key

	u, err := h.users.Register(r.Context(), req)
	if err != nil {
		h.dropImage(r.Context(), key)
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Created", u)
}

func (h *Handler) checkMemberID(w http.ResponseWriter, r *http.Request) {
	if err := h.users.CheckMemberID(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "member id is available", nil)
}

func (h *Handler) checkNickname(w http.ResponseWriter, r *http.Request) {
	if err := h.users.CheckNickname(r.Context(), chi.URLParam(r, "nickname")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "nickname is available", nil)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	pair, err := h.users.Login(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Logged in", pair)
}

func (h *Handler) reissue(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	pair, err := h.users.Reissue(r.Context(), req.RefreshToken)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Reissued", pair)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.users.Logout(r.Context(), req.RefreshToken); err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Logged out", nil)
}

func (h *Handler) userDetail(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Detail(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", u)
}

func (h *Handler) modifyUser(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	var req models.UserRequest
	file, cleanup, err := decodeMultipart(w, r, "user", &req, h.maxUpload)
	defer cleanup()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	current, err := h.users.ProfilePicture(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if req.ProfilePic, err = h.storeImage(r.Context(), current, file); err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.users.Modify(r.Context(), userID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Modified", u)
}

func (h *Handler) profilePicture(w http.ResponseWriter, r *http.Request) {
	key, err := h.users.ProfilePicture(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	img, err := h.imageOf(r.Context(), key)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", img)
}

func (h *Handler) modifyPrimaryPet(w http.ResponseWriter, r *http.Request) {
	var req primaryPetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.users.ModifyPrimaryPet(r.Context(), currentUser(r), req.PetID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Modified", u)
}

func (h *Handler) quit(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Quit(r.Context(), currentUser(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Left", nil)
}
