package rest

import (
	"net/http"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/logging"
	"github.com/dmitrijs2005/petcare/internal/metrics"
	"github.com/dmitrijs2005/petcare/internal/server/storage"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Users    UserAPI
	Pets     PetAPI
	Boards   BoardAPI
	Comments CommentAPI
	Journals JournalAPI
	Walks    WalkAPI

	Files  storage.FileStore
	Tokens AccessParser
	Logger logging.Logger

	// Metrics and LoginLimiter are optional.
	Metrics      *metrics.Metrics
	LoginLimiter *RateLimiter

	MaxUploadSize int64
}

func NewRouter(opts Options) http.Handler {
	logger := opts.Logger.With("module", "rest")
	maxUpload := opts.MaxUploadSize
	if maxUpload <= 0 {
		maxUpload = common.MaxUploadSize
	}
	h := &Handler{
		users:     opts.Users,
		pets:      opts.Pets,
		boards:    opts.Boards,
		comments:  opts.Comments,
		journals:  opts.Journals,
		walks:     opts.Walks,
		files:     opts.Files,
		logger:    logger,
		maxUpload: maxUpload,
	}

	limited := func(next http.Handler) http.Handler { return next }
	if opts.LoginLimiter != nil {
		limited = opts.LoginLimiter.Middleware
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger, opts.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(AuthContext(opts.Tokens))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Route("/api/user", func(r chi.Router) {
		r.With(limited).Post("/public/signup", h.signup)
		r.Get("/public/id/{id}", h.checkMemberID)
		r.Get("/public/nickname/{nickname}", h.checkNickname)
		r.With(limited).Post("/public/login", h.login)
		r.Post("/auth/reissue", h.reissue)
		r.Post("/auth/logout", h.logout)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)
			r.Get("/", h.userDetail)
			r.Put("/", h.modifyUser)
			r.Get("/picture", h.profilePicture)
			r.Put("/pet", h.modifyPrimaryPet)
			r.Put("/leave", h.quit)
		})
	})

	r.Route("/api/pet", func(r chi.Router) {
		r.Get("/kind", h.kinds)
		r.Get("/kind/{kindId}", h.kind)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)
			r.Post("/", h.createPet)
			r.Get("/", h.listPets)
			r.Get("/{petId}", h.petDetail)
			r.Get("/{petId}/picture", h.petPicture)
			r.Put("/{petId}", h.modifyPet)
			r.Delete("/{petId}", h.deletePet)
		})
	})

	r.Route("/api/board", func(r chi.Router) {
		r.Get("/list", h.listBoards)
		r.Get("/type", h.boardTypes)
		r.Get("/{boardId}", h.boardDetail)
		r.Get("/{boardId}/picture", h.boardPicture)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)
			r.Post("/", h.createBoard)
			r.Put("/{boardId}", h.modifyBoard)
			r.Delete("/{boardId}", h.deleteBoard)
		})
	})

	r.Route("/api/comment", func(r chi.Router) {
		r.Get("/board/{boardId}", h.listComments)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)
			r.Post("/", h.createComment)
			r.Put("/{commentId}", h.modifyComment)
			r.Delete("/{commentId}", h.deleteComment)
		})
	})

	r.Route("/api/journal", func(r chi.Router) {
		r.Use(RequireAuth)
		r.Post("/", h.createJournal)
		r.Get("/", h.listJournals)
		r.Post("/batch-delete", h.batchDeleteJournals)
		r.Get("/{journalId}", h.journalDetail)
		r.Get("/{journalId}/picture", h.journalPicture)
		r.Put("/{journalId}", h.modifyJournal)
		r.Delete("/{journalId}", h.deleteJournal)
	})

	r.Route("/api/walk", func(r chi.Router) {
		r.Use(RequireAuth)
		r.Post("/", h.registerWalk)
		r.Get("/", h.listWalks)
		r.Get("/pet/{petId}/done", h.walkDone)
		r.Get("/pet/{petId}/total", h.walkTotal)
		r.Get("/{walkId}", h.walkDetail)
		r.Put("/{walkId}", h.modifyWalk)
		r.Delete("/{walkId}", h.deleteWalk)
	})

	return r
}
