package rest

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/petcare/internal/server/models"
)

func (h *Handler) createBoard(w http.ResponseWriter, r *http.Request) {
	var req models.BoardRequest
	file, cleanup, err := decodeMultipart(w, r, "board", &req, h.maxUpload)
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
	req.Image = key

	b, err := h.boards.Create(r.Context(), currentUser(r), req)
	if err != nil {
		h.dropImage(r.Context(), key)
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Created", b)
}

func boardQuery(r *http.Request) (models.BoardQuery, error) {
	var q models.BoardQuery
	typeID, err := queryInt(r, "type_id", 0)
	if err != nil {
		return q, err
	}
	if typeID <= 0 {
		return q, fmt.Errorf("%w: type_id is required", errBadRequest)
	}
	if q.Page, err = queryInt(r, "page", 0); err != nil {
		return q, err
	}
	if q.Size, err = queryInt(r, "size", 0); err != nil {
		return q, err
	}
	q.TypeID = int64(typeID)
	q.Word = r.URL.Query().Get("word")
	return q, nil
}

func (h *Handler) listBoards(w http.ResponseWriter, r *http.Request) {
	q, err := boardQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	list, err := h.boards.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", list)
}

func (h *Handler) boardTypes(w http.ResponseWriter, r *http.Request) {
	list, err := h.boards.Types(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", list)
}

func (h *Handler) boardDetail(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	d, err := h.boards.Detail(r.Context(), boardID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Success", d)
}

func (h *Handler) modifyBoard(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	boardID, err := pathID(r, "boardId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req models.BoardRequest
	file, cleanup, err := decodeMultipart(w, r, "board", &req, h.maxUpload)
	defer cleanup()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	current, err := h.boards.Owned(r.Context(), userID, boardID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Image, err = h.storeImage(r.Context(), current.Image, file); err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.boards.Modify(r.Context(), userID, boardID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Modified", b)
}

func (h *Handler) deleteBoard(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	boardID, err := pathID(r, "boardId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	b, err := h.boards.Owned(r.Context(), userID, boardID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.boards.Delete(r.Context(), userID, boardID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.dropImage(r.Context(), b.Image)
	writeOK(w, http.StatusOK, "Deleted", nil)
}

func (h *Handler) boardPicture(w http.ResponseWriter, r *http.Request) {
	h.writePicture(w, r, "boardId", h.boards.Image)
}
