package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/logging"
	"github.com/dmitrijs2005/petcare/internal/server/auth"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/dmitrijs2005/petcare/internal/server/storage"
	"github.com/stretchr/testify/require"
)

// Each fake embeds its interface; calling a method a test did not stub
// panics and surfaces as a 500 through the recoverer.

type fakeUsers struct {
	UserAPI
	registered  models.UserRequest
	registerErr error
	loginErr    error
	detail      *models.User
	detailErr   error
	picture     string
	modified    models.UserRequest
	primaryPet  int64
}

func (f *fakeUsers) Register(_ context.Context, req models.UserRequest) (*models.User, error) {
	f.registered = req
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: 1, MemberID: req.MemberID, ProfilePic: req.ProfilePic}, nil
}

func (f *fakeUsers) Login(context.Context, models.LoginRequest) (auth.TokenPair, error) {
	if f.loginErr != nil {
		return auth.TokenPair{}, f.loginErr
	}
	return auth.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil
}

func (f *fakeUsers) Detail(context.Context, int64) (*models.User, error) {
	return f.detail, f.detailErr
}

func (f *fakeUsers) ProfilePicture(context.Context, int64) (string, error) {
	return f.picture, f.detailErr
}

func (f *fakeUsers) Modify(_ context.Context, userID int64, req models.UserRequest) (*models.User, error) {
	f.modified = req
	return &models.User{ID: userID, Nickname: req.Nickname, ProfilePic: req.ProfilePic}, nil
}

func (f *fakeUsers) ModifyPrimaryPet(_ context.Context, userID, petID int64) (*models.User, error) {
	f.primaryPet = petID
	return &models.User{ID: userID, PetID: petID}, nil
}

type fakePets struct {
	PetAPI
	owned    *models.Pet
	ownedErr error
	modified models.PetRequest
	deleted  int64
}

func (f *fakePets) Owned(context.Context, int64, int64) (*models.Pet, error) {
	return f.owned, f.ownedErr
}

func (f *fakePets) Modify(_ context.Context, userID, petID int64, req models.PetRequest) (*models.Pet, error) {
	f.modified = req
	p := models.Pet{ID: petID, UserID: userID}.Modified(req)
	return &p, nil
}

func (f *fakePets) Delete(_ context.Context, _ int64, petID int64) error {
	f.deleted = petID
	return nil
}

type fakeBoards struct {
	BoardAPI
	query  models.BoardQuery
	images map[int64]string
}

func (f *fakeBoards) Image(_ context.Context, boardID int64) (string, error) {
	key, ok := f.images[boardID]
	if !ok {
		return "", fmt.Errorf("board %d: %w", boardID, common.ErrorNotFound)
	}
	return key, nil
}

func (f *fakeBoards) List(_ context.Context, q models.BoardQuery) ([]*models.Board, error) {
	f.query = q
	return []*models.Board{{ID: 3, TypeID: q.TypeID, Title: "found"}}, nil
}

type fakeJournals struct {
	JournalAPI
	batch []int64
}

func (f *fakeJournals) BatchDelete(_ context.Context, userID int64, ids []int64) ([]*models.Journal, error) {
	f.batch = ids
	out := make([]*models.Journal, 0, len(ids))
	for _, id := range ids {
		out = append(out, &models.Journal{ID: id, UserID: userID, Picture: "images/j" + itoa(id) + ".png"})
	}
	return out, nil
}

type fakeWalks struct {
	WalkAPI
	done bool
	err  error
}

func (f *fakeWalks) IsDone(context.Context, int64) (bool, error) {
	return f.done, f.err
}

type fakeFiles struct {
	uploaded []string
	replaced []string
	deleted  []string
	uploadFn func(f *storage.File) (string, error)
}

func (f *fakeFiles) Upload(_ context.Context, file *storage.File) (string, error) {
	if file == nil {
		return "", nil
	}
	if f.uploadFn != nil {
		return f.uploadFn(file)
	}
	body, _ := io.ReadAll(file.Body)
	f.uploaded = append(f.uploaded, file.Name+":"+string(body))
	return "images/new.png", nil
}

func (f *fakeFiles) Replace(_ context.Context, oldKey string, file *storage.File) (string, error) {
	f.replaced = append(f.replaced, oldKey+"->"+file.Name)
	return "images/replaced.png", nil
}

func (f *fakeFiles) Delete(_ context.Context, key string) error {
	if key != "" {
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func (f *fakeFiles) URL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return "https://files.example/" + key, nil
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

var testTokens = auth.NewTokenProvider([]byte("rest-test-secret"), time.Minute, time.Hour)

func bearer(t *testing.T, userID string) string {
	t.Helper()
	pair, err := testTokens.Generate(userID)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

type env struct {
	users    *fakeUsers
	pets     *fakePets
	boards   *fakeBoards
	journals *fakeJournals
	walks    *fakeWalks
	files    *fakeFiles
	opts     Options
}

func newEnv() *env {
	e := &env{
		users:    &fakeUsers{},
		pets:     &fakePets{},
		boards:   &fakeBoards{},
		journals: &fakeJournals{},
		walks:    &fakeWalks{},
		files:    &fakeFiles{},
	}
	e.opts = Options{
		Users:    e.users,
		Pets:     e.pets,
		Boards:   e.boards,
		Journals: e.journals,
		Walks:    e.walks,
		Files:    e.files,
		Tokens:   testTokens,
		Logger:   logging.Discard(),
	}
	return e
}

func (e *env) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	NewRouter(e.opts).ServeHTTP(rec, req)
	var body envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func jsonRequest(method, path string, v any) *http.Request {
	var body io.Reader = http.NoBody
	if v != nil {
		b, _ := json.Marshal(v)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a body with a JSON part and an optional file part.
func multipartRequest(t *testing.T, method, path, part string, v any, fileName, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField(part, string(data)))
	if fileName != "" {
		fw, err := mw.CreateFormFile(FilePart, fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
