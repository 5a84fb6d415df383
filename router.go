package main

import (
	"net/http"

	advisor "HDDPull/internal/advisor"
	auth "HDDPull/internal/auth"
	"HDDPull/internal/calc/hdd"
	"HDDPull/internal/calc/premium/autodesign"
	"HDDPull/internal/calc/premium/batch"
	"HDDPull/internal/calc/premium/importer"
	"HDDPull/internal/calc/premium/recommend"
	report "HDDPull/internal/calc/report"
	projects "HDDPull/internal/projects"
	repo "HDDPull/internal/repo"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Deps struct {
	Calculator *hdd.Calculator
	Repo       repo.Repository
	Advisor    *advisor.Advisor
	Log        *zap.Logger
	TokenKey   []byte
	Limit      rate.Limit
	Burst      int
	// Insecure issues cookies without the Secure flag.
	Insecure bool
}

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func NewRouter(d Deps) *mux.Router {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	router := mux.NewRouter()

	authEnv := &auth.Authenv{JWTkey: d.TokenKey, Repo: d.Repo, Log: log, Insecure: d.Insecure}
	limiter := auth.NewIPRateLimiter(d.Limit, d.Burst)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	hddH := &hdd.Handler{Calculator: d.Calculator, Log: log}
	recommendH := &recommend.Handler{}
	advisoryH := &advisor.Handler{Advisor: d.Advisor, Calculator: d.Calculator, Log: log}
	reportH := &report.Handler{Calculator: d.Calculator, Log: log}
	if d.Advisor != nil {
		reportH.Advisor = d.Advisor
	}
	batchH := &batch.Handler{Calculator: d.Calculator, Log: log}
	autoH := &autodesign.Handler{Calculator: d.Calculator}
	importH := &importer.Handler{Calculator: d.Calculator, Log: log}
	projectsH := &projects.Handler{Repo: d.Repo, Calculator: d.Calculator, Log: log}

	secureApi.HandleFunc("/tools/hdd/calc", hddH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/hdd/profile", hddH.Profile).Methods("POST")
	secureApi.HandleFunc("/tools/hdd/catalog", hddH.Catalog).Methods("GET")
	secureApi.HandleFunc("/tools/hdd/recommend", recommendH.Soil).Methods("POST")
	secureApi.HandleFunc("/tools/hdd/advisory", advisoryH.Advise).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/premium/batch/hdd", batchH.Pull).Methods("POST")
	secureApi.HandleFunc("/premium/autodesign/hdd", autoH.Pipe).Methods("POST")
	secureApi.HandleFunc("/premium/import/hdd", importH.Import).Methods("POST")
	secureApi.HandleFunc("/premium/export/hdd", importH.Export).Methods("POST")

	secureApi.HandleFunc("/analyses", projectsH.Save).Methods("POST")
	secureApi.HandleFunc("/analyses", projectsH.List).Methods("GET")
	secureApi.HandleFunc("/analyses/{id:[0-9]+}", projectsH.Get).Methods("GET")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	router.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	router.PathPrefix("/").
		Handler(mainFileServer)

	return router
}
