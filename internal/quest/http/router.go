package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/cardquest/internal/quest/service"
	"github.com/aussiebroadwan/cardquest/internal/quest/store"
	"github.com/aussiebroadwan/cardquest/pkg/httpx"
	"github.com/aussiebroadwan/cardquest/pkg/slogx"

	_ "github.com/aussiebroadwan/cardquest/api/quest" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// BotURL is returned with every issued registration token.
	BotURL string

	UserService         *service.UserService
	RegistrationService *service.RegistrationService
	QuizService         *service.QuizService

	// allowed collects the methods registered per pattern for 405 replies.
	allowed map[string][]string
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		allowed:      map[string][]string{},
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerQuiz()
	r.registerSystem()

	for pattern, methods := range r.allowed {
		r.Mux.Handle(pattern, MethodNotAllowedHandler(methods))
	}

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.Handle("/", NotFoundHandler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CardQuest API
//	@version		0.1.0
//	@description	Registration and quiz service for the card quest.
//	@description
//	@description	Every response is a JSON object with a "success" flag. Failures carry an "error" message and a non-2xx status.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/cardquest
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h for "METHOD pattern" and remembers the method so other
// methods on the same path get an enveloped 405 instead of the mux default.
func (r *Router) handle(method, pattern string, h http.Handler) {
	r.Mux.Handle(method+" "+pattern, h)
	r.allowed[pattern] = append(r.allowed[pattern], method)
}

func (r *Router) registerUsers() {
	r.handle(http.MethodGet, "/user/{id}", &UserHandler{UserService: r.UserService})
	r.handle(http.MethodGet, "/user/sha/{hash}", &UserByCardHashHandler{UserService: r.UserService})
	r.handle(http.MethodPost, "/user/register/{sha256}", &RegisterHandler{
		RegistrationService: r.RegistrationService,
		BotURL:              r.BotURL,
	})
}

func (r *Router) registerQuiz() {
	r.handle(http.MethodGet, "/user/{user}/question/{category}", &QuestionHandler{
		UserService: r.UserService,
		QuizService: r.QuizService,
	})
	r.handle(http.MethodPost, "/quiz/answer/{question}/{answer}", &AnswerHandler{QuizService: r.QuizService})
	r.handle(http.MethodGet, "/categories", &CategoriesHandler{QuizService: r.QuizService})
}

func (r *Router) registerSystem() {
	r.handle(http.MethodGet, "/livez", LivezHandler(r.startTime, r.buildVersion))
	r.handle(http.MethodGet, "/readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.QuizService))
}

// MethodNotAllowedHandler answers with the error envelope and an Allow header.
func MethodNotAllowedHandler(methods []string) http.HandlerFunc {
	allow := strings.Join(methods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// NotFoundHandler is the fallback for unknown paths.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	}
}
