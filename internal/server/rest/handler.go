package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/petcare/internal/logging"
	"github.com/dmitrijs2005/petcare/internal/server/storage"
)

type Handler struct {
	users     UserAPI
	pets      PetAPI
	boards    BoardAPI
	comments  CommentAPI
	journals  JournalAPI
	walks     WalkAPI
	files     storage.FileStore
	logger    logging.Logger
	maxUpload int64
}

// imageResponse pairs a stored key with a short-lived download link.
type imageResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func currentUser(r *http.Request) int64 {
	id, _ := UserID(r.Context())
	return id
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.logger, err)
}

// storeImage applies the image part of a modify request: a new file
// replaces oldKey, no file removes it. The resulting key is returned.
func (h *Handler) storeImage(ctx context.Context, oldKey string, file *storage.File) (string, error) {
	if file != nil {
		return h.files.Replace(ctx, oldKey, file)
	}
	if err := h.files.Delete(ctx, oldKey); err != nil {
		return "", err
	}
	return "", nil
}

// dropImage removes an image after its entity is gone. Failures only get
// logged since the database change is already committed.
func (h *Handler) dropImage(ctx context.Context, key string) {
	if err := h.files.Delete(ctx, key); err != nil {
		h.logger.Warn(ctx, "orphaned image", "key", key, "error", err)
	}
}

func (h *Handler) imageOf(ctx context.Context, key string) (imageResponse, error) {
	url, err := h.files.URL(ctx, key)
	if err != nil {
		return imageResponse{}, err
	}
	return imageResponse{Key: key, URL: url}, nil
}

// writePicture serves the stored image of the entity named by the path parameter.
func (h *Handler) writePicture(w http.ResponseWriter, r *http.Request, param string, lookup func(context.Context, int64) (string, error)) {
	id, err := pathID(r, param)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	key, err := lookup(r.Context(), id)
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
