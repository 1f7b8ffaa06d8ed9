package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/dbx"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/boards"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/boardtypes"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/comments"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/journals"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/kinds"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/pets"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/users"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/walkpets"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/walks"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// newTxDB returns a real *sql.DB so dbx.WithTx can begin and commit; the
// fakes below ignore the handle they are given.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// memStore is an in-memory RepositoryManager. It records walk_pets writes in
// linkLog so tests can assert exactly which join rows were touched.
type memStore struct {
	mu  sync.Mutex
	seq int64

	users      map[int64]models.User
	tokens     map[string]models.RefreshToken
	pets       map[int64]models.Pet
	kinds      map[int64]models.Kind
	boardTypes map[int64]models.BoardType
	boards     map[int64]models.Board
	comments   map[int64]models.Comment
	journals   map[int64]models.Journal
	walks      map[int64]models.Walk
	walkPets   map[int64]models.WalkPet

	linkLog []string
	failErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]models.User{},
		tokens:     map[string]models.RefreshToken{},
		pets:       map[int64]models.Pet{},
		kinds:      map[int64]models.Kind{1: {ID: 1, Name: "Mixed"}, 2: {ID: 2, Name: "Poodle"}},
		boardTypes: map[int64]models.BoardType{1: {ID: 1, Name: "free"}, 2: {ID: 2, Name: "lost"}},
		boards:     map[int64]models.Board{},
		comments:   map[int64]models.Comment{},
		journals:   map[int64]models.Journal{},
		walks:      map[int64]models.Walk{},
		walkPets:   map[int64]models.WalkPet{},
	}
}

func (m *memStore) next() int64 {
	m.seq++
	return m.seq
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository                 { return memUsers{m} }
func (m *memStore) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return memTokens{m} }
func (m *memStore) Pets(dbx.DBTX) pets.Repository                   { return memPets{m} }
func (m *memStore) Kinds(dbx.DBTX) kinds.Repository                 { return memKinds{m} }
func (m *memStore) BoardTypes(dbx.DBTX) boardtypes.Repository       { return memBoardTypes{m} }
func (m *memStore) Boards(dbx.DBTX) boards.Repository               { return memBoards{m} }
func (m *memStore) Comments(dbx.DBTX) comments.Repository           { return memComments{m} }
func (m *memStore) Journals(dbx.DBTX) journals.Repository           { return memJournals{m} }
func (m *memStore) Walks(dbx.DBTX) walks.Repository                 { return memWalks{m} }
func (m *memStore) WalkPets(dbx.DBTX) walkpets.Repository           { return memWalkPets{m} }

// seedUser inserts an active user directly and returns its id.
func (m *memStore) seedUser(memberID, nickname string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next()
	m.users[id] = models.User{ID: id, MemberID: memberID, Nickname: nickname, Password: "x"}
	return id
}

func (m *memStore) seedPet(userID int64, name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next()
	m.pets[id] = models.Pet{ID: id, UserID: userID, KindID: 1, Name: name}
	return id
}

// --- users ---

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failErr != nil {
		return nil, r.m.failErr
	}
	for _, other := range r.m.users {
		if other.MemberID == u.MemberID || other.Nickname == u.Nickname {
			return nil, common.ErrDuplicate
		}
	}
	u.ID = r.m.next()
	u.CreatedAt = time.Now()
	r.m.users[u.ID] = *u
	return u, nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r memUsers) GetByMemberID(_ context.Context, memberID string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.MemberID == memberID {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) ExistsByMemberID(ctx context.Context, memberID string) (bool, error) {
	_, err := r.GetByMemberID(ctx, memberID)
	return err == nil, nil
}

func (r memUsers) ExistsByNickname(_ context.Context, nickname string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Nickname == nickname {
			return true, nil
		}
	}
	return false, nil
}

func (r memUsers) Update(_ context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[u.ID]; !ok {
		return common.ErrorNotFound
	}
	r.m.users[u.ID] = *u
	return nil
}

func (r memUsers) ClearPrimaryPet(_ context.Context, userID, petID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if u, ok := r.m.users[userID]; ok && u.PetID == petID {
		u.PetID = common.NoPet
		r.m.users[userID] = u
	}
	return nil
}

// --- refresh tokens ---

type memTokens struct{ m *memStore }

func (r memTokens) Save(_ context.Context, subject, value string, expiresAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.tokens[subject] = models.RefreshToken{Subject: subject, Value: value, ExpiresAt: expiresAt}
	return nil
}

func (r memTokens) FindByValue(_ context.Context, value string) (*models.RefreshToken, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, t := range r.m.tokens {
		if t.Value == value {
			return &t, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memTokens) DeleteByValue(_ context.Context, value string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for k, t := range r.m.tokens {
		if t.Value == value {
			delete(r.m.tokens, k)
		}
	}
	return nil
}

func (r memTokens) DeleteBySubject(_ context.Context, subject string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.tokens, subject)
	return nil
}

func (r memTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failErr != nil {
		return 0, r.m.failErr
	}
	var n int64
	for k, t := range r.m.tokens {
		if t.ExpiresAt.Before(now) {
			delete(r.m.tokens, k)
			n++
		}
	}
	return n, nil
}

// --- pets and kinds ---

type memPets struct{ m *memStore }

func (r memPets) Create(_ context.Context, p *models.Pet) (*models.Pet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p.ID = r.m.next()
	r.m.pets[p.ID] = *p
	return p, nil
}

func (r memPets) GetByID(_ context.Context, id int64) (*models.Pet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.pets[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r memPets) ListByUser(_ context.Context, userID int64) ([]*models.Pet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*models.Pet, 0)
	for _, p := range r.m.pets {
		if p.UserID == userID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memPets) ListByIDs(_ context.Context, ids []int64) ([]*models.Pet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	seen := map[int64]bool{}
	out := make([]*models.Pet, 0)
	for _, id := range ids {
		if p, ok := r.m.pets[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memPets) Update(_ context.Context, p *models.Pet) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.pets[p.ID]; !ok {
		return common.ErrorNotFound
	}
	r.m.pets[p.ID] = *p
	return nil
}

func (r memPets) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.pets[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.pets, id)
	for k, wp := range r.m.walkPets {
		if wp.PetID == id {
			delete(r.m.walkPets, k)
		}
	}
	return nil
}

type memKinds struct{ m *memStore }

func (r memKinds) List(context.Context) ([]*models.Kind, error) {
	out := make([]*models.Kind, 0, len(r.m.kinds))
	for _, k := range r.m.kinds {
		k := k
		out = append(out, &k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memKinds) GetByID(_ context.Context, id int64) (*models.Kind, error) {
	k, ok := r.m.kinds[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &k, nil
}

// --- boards and comments ---

type memBoardTypes struct{ m *memStore }

func (r memBoardTypes) List(context.Context) ([]*models.BoardType, error) {
	out := make([]*models.BoardType, 0, len(r.m.boardTypes))
	for _, t := range r.m.boardTypes {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memBoardTypes) GetByID(_ context.Context, id int64) (*models.BoardType, error) {
	t, ok := r.m.boardTypes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

type memBoards struct{ m *memStore }

func (r memBoards) Create(_ context.Context, b *models.Board) (*models.Board, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b.ID = r.m.next()
	r.m.boards[b.ID] = *b
	return b, nil
}

func (r memBoards) GetByID(_ context.Context, id int64) (*models.Board, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.boards[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &b, nil
}

func (r memBoards) Update(_ context.Context, b *models.Board) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.boards[b.ID]; !ok {
		return common.ErrorNotFound
	}
	r.m.boards[b.ID] = *b
	return nil
}

func (r memBoards) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.comments {
		if c.BoardID == id {
			return errBoom{}
		}
	}
	delete(r.m.boards, id)
	return nil
}

func (r memBoards) List(_ context.Context, typeID int64, word string, limit, offset int) ([]*models.Board, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*models.Board
	for _, b := range r.m.boards {
		if b.TypeID == typeID && strings.Contains(b.Title, word) {
			b := b
			all = append(all, &b)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	out := make([]*models.Board, 0)
	for i := offset; i < len(all) && i < offset+limit; i++ {
		out = append(out, all[i])
	}
	return out, nil
}

func (r memBoards) IncrementViews(_ context.Context, id int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.boards[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	b.Views++
	r.m.boards[id] = b
	return b.Views, nil
}

type memComments struct{ m *memStore }

func (r memComments) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c.ID = r.m.next()
	r.m.comments[c.ID] = *c
	return c, nil
}

func (r memComments) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.comments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r memComments) Update(_ context.Context, c *models.Comment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.comments[c.ID] = *c
	return nil
}

func (r memComments) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.comments, id)
	return nil
}

func (r memComments) DeleteByBoard(_ context.Context, boardID int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for k, c := range r.m.comments {
		if c.BoardID == boardID {
			delete(r.m.comments, k)
			n++
		}
	}
	return n, nil
}

func (r memComments) ListByBoard(_ context.Context, boardID int64) ([]*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*models.Comment, 0)
	for _, c := range r.m.comments {
		if c.BoardID == boardID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// --- journals ---

type memJournals struct{ m *memStore }

func (r memJournals) Create(_ context.Context, j *models.Journal) (*models.Journal, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	j.ID = r.m.next()
	r.m.journals[j.ID] = *j
	return j, nil
}

func (r memJournals) GetByID(_ context.Context, id int64) (*models.Journal, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	j, ok := r.m.journals[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &j, nil
}

func (r memJournals) Update(_ context.Context, j *models.Journal) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.journals[j.ID] = *j
	return nil
}

func (r memJournals) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.journals[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.journals, id)
	return nil
}

func (r memJournals) DeleteByPet(_ context.Context, petID int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for k, j := range r.m.journals {
		if j.PetID == petID {
			delete(r.m.journals, k)
			n++
		}
	}
	return n, nil
}

func (r memJournals) ListByUser(_ context.Context, userID int64) ([]*models.Journal, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*models.Journal, 0)
	for _, j := range r.m.journals {
		if j.UserID == userID {
			j := j
			out = append(out, &j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID > out[k].ID })
	return out, nil
}

// --- walks ---

type memWalks struct{ m *memStore }

func (r memWalks) Create(_ context.Context, w *models.Walk) (*models.Walk, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	w.ID = r.m.next()
	r.m.walks[w.ID] = *w
	return w, nil
}

func (r memWalks) GetByID(_ context.Context, id int64) (*models.Walk, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	w, ok := r.m.walks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &w, nil
}

func (r memWalks) Update(_ context.Context, w *models.Walk) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.walks[w.ID] = *w
	return nil
}

func (r memWalks) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.walks, id)
	for k, wp := range r.m.walkPets {
		if wp.WalkID == id {
			delete(r.m.walkPets, k)
		}
	}
	return nil
}

func (r memWalks) ListByUser(_ context.Context, userID int64) ([]*models.Walk, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*models.Walk, 0)
	for _, w := range r.m.walks {
		if w.UserID == userID {
			w := w
			out = append(out, &w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memWalks) ListByPet(_ context.Context, petID int64) ([]*models.Walk, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*models.Walk, 0)
	for _, wp := range r.m.walkPets {
		if wp.PetID == petID {
			w := r.m.walks[wp.WalkID]
			out = append(out, &w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memWalkPets struct{ m *memStore }

func (r memWalkPets) Create(_ context.Context, walkID, petID int64) (*models.WalkPet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	wp := models.WalkPet{ID: r.m.next(), WalkID: walkID, PetID: petID}
	r.m.walkPets[wp.ID] = wp
	r.m.linkLog = append(r.m.linkLog, "create "+itoa(walkID)+"/"+itoa(petID))
	return &wp, nil
}

func (r memWalkPets) ListByWalk(_ context.Context, walkID int64) ([]*models.WalkPet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*models.WalkPet, 0)
	for _, wp := range r.m.walkPets {
		if wp.WalkID == walkID {
			wp := wp
			out = append(out, &wp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memWalkPets) GetByWalkAndPet(ctx context.Context, walkID, petID int64) (*models.WalkPet, error) {
	all, _ := r.ListByWalk(ctx, walkID)
	for _, wp := range all {
		if wp.PetID == petID {
			return wp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memWalkPets) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	wp, ok := r.m.walkPets[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.m.walkPets, id)
	r.m.linkLog = append(r.m.linkLog, "delete "+itoa(wp.WalkID)+"/"+itoa(wp.PetID))
	return nil
}

func (r memWalkPets) LatestByPet(_ context.Context, petID int64) (*models.WalkPet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var latest *models.WalkPet
	for _, wp := range r.m.walkPets {
		if wp.PetID == petID && (latest == nil || wp.ID > latest.ID) {
			wp := wp
			latest = &wp
		}
	}
	if latest == nil {
		return nil, common.ErrorNotFound
	}
	return latest, nil
}

func itoa(n int64) string { return Subject(n) }
