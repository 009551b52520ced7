// Package salve is a small demo service exercising the caelum router:
// a greeting, a health check, and a toy user resource on port 3000.
package salve

import (
	"context"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/caelo/caelum"
)

// Greeting is the index page body.
const Greeting = "Salve! Go HTTP Demo"

// App holds the demo's state.
type App struct {
	log    *zap.Logger
	nextID atomic.Int64
}

// NewApp creates the demo app. A nil logger disables request logging.
func NewApp(log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{log: log}
}

// Routes builds the demo's router.
func (a *App) Routes(opts ...caelum.RouterOption) *caelum.Router {
	r := caelum.NewRouter(opts...)
	r.Use(caelum.RequestID())
	r.Use(caelum.Logger(a.log))

	r.Get("/", a.handleIndex)
	r.Get("/health", a.handleHealth)
	r.Get("/users", a.handleListUsers)
	r.Get("/users/{id:int}", a.handleGetUser)
	r.Post("/users", a.handleCreateUser)
	r.Delete("/users/{id:int}", a.handleDeleteUser)

	return r
}

type healthResp struct {
	Status string `json:"status"`
}

type userListResp struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type userResp struct {
	ID    int64  `json:"id"`
	Nomen string `json:"nomen"`
	Email string `json:"email"`
}

type createdResp struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func (a *App) handleIndex(_ context.Context, _ *caelum.Request, res *caelum.Response) {
	res.Text(Greeting)
}

func (a *App) handleHealth(_ context.Context, _ *caelum.Request, res *caelum.Response) {
	res.JSON(healthResp{Status: "ok"})
}

func (a *App) handleListUsers(_ context.Context, _ *caelum.Request, res *caelum.Response) {
	res.JSON(userListResp{Message: "User list", Count: 0})
}

func (a *App) handleGetUser(_ context.Context, req *caelum.Request, res *caelum.Response) {
	id := req.IntParam("id")
	if !ValidID(id) {
		res.Error(http.StatusBadRequest, "Invalid ID")
		return
	}
	u := NewUser(id, "Marcus", "marcus@roma.it")
	res.JSON(userResp{ID: u.ID, Nomen: u.Nomen, Email: u.Email})
}

func (a *App) handleCreateUser(_ context.Context, _ *caelum.Request, res *caelum.Response) {
	id := a.nextID.Add(1)
	res.Status = http.StatusCreated
	res.JSON(createdResp{ID: id, Message: "Created"})
}

func (a *App) handleDeleteUser(_ context.Context, _ *caelum.Request, res *caelum.Response) {
	res.NoContent()
}
