package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/plotshare/internal/auth"
	"github.com/Simplici0/plotshare/internal/config"
	"github.com/Simplici0/plotshare/internal/db"
	"github.com/Simplici0/plotshare/internal/migrations"
	"github.com/Simplici0/plotshare/internal/presets"
	"github.com/Simplici0/plotshare/internal/seed"
	"github.com/Simplici0/plotshare/web"
)

type server struct {
	auth     *auth.Service
	presets  *presets.Store
	defaults config.FormDefaults
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type loginViewData struct {
	baseViewData
}

func main() {
	ctx := context.Background()
	cfg := config.Load()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(ctx, database); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	stats, err := seed.Run(ctx, database, seed.Config{
		AdminEmail:       cfg.AdminEmail,
		AdminPassword:    cfg.AdminPassword,
		PricePerUnitArea: cfg.Defaults.PricePerUnitArea,
		TotalArea:        cfg.Defaults.TotalArea,
	})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	if stats.Inserts > 0 {
		log.Printf("seed inserted %d rows", stats.Inserts)
	}

	srv := &server{
		auth:     auth.NewService(database, cfg.SessionSecret),
		presets:  presets.NewStore(database),
		defaults: cfg.Defaults,
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := http.ListenAndServe(addr, srv.routes(cfg.IsDev())); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes(requestLog bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if requestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/", s.handleCalculator)
	r.Get("/api/breakdown", s.handleBreakdownQuery)
	r.Post("/api/breakdown", s.handleBreakdownJSON)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/presets", s.handleAdminPresetsForm)
		r.Post("/presets", s.handleAdminPresetsCreate)
		r.Post("/presets/{id}", s.handleAdminPresetsUpdate)
	})

	return r
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.auth.IsAuthenticated(r) {
		http.Redirect(w, r, "/admin/presets", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, "login.html", loginViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	valid, err := s.auth.ValidateCredentials(r.Context(), email, password)
	if err != nil {
		log.Printf("validate credentials: %v", err)
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	if !valid {
		w.WriteHeader(http.StatusUnauthorized)
		s.renderTemplate(w, "login.html", loginViewData{baseViewData: baseViewData{ErrorMessage: "Invalid credentials. Try again."}})
		return
	}

	s.auth.SetSessionCookie(w, email)
	http.Redirect(w, r, "/admin/presets", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.IsAuthenticated(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.ParseFS(web.Templates(), "layout.html", page)
	if err != nil {
		log.Printf("parse template %s: %v", page, err)
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Printf("render template %s: %v", page, err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}
