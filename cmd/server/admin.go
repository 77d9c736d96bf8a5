package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/plotshare/internal/presets"
)

const msgNameTaken = "name already exists"

type presetsViewData struct {
	baseViewData
	Presets []presets.Preset
}

func (s *server) handleAdminPresetsForm(w http.ResponseWriter, r *http.Request) {
	list, err := s.presets.List(r.Context(), false)
	if err != nil {
		log.Printf("list presets: %v", err)
		http.Error(w, "failed to load presets", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_presets.html", presetsViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Presets: list,
	})
}

func (s *server) handleAdminPresetsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	preset, err := parsePresetForm(r)
	if err != nil {
		http.Redirect(w, r, "/admin/presets?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	// New presets are listed right away.
	preset.Active = true

	if taken, err := s.presets.NameTaken(r.Context(), preset.Name, 0); err != nil {
		log.Printf("admin presets: %v", err)
		http.Error(w, "failed to create preset", http.StatusInternalServerError)
		return
	} else if taken {
		http.Redirect(w, r, "/admin/presets?error="+url.QueryEscape(msgNameTaken), http.StatusSeeOther)
		return
	}

	if _, err := s.presets.Create(r.Context(), preset); err != nil {
		log.Printf("admin presets: %v", err)
		http.Error(w, "failed to create preset", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/presets?success=Preset+created", http.StatusSeeOther)
}

func (s *server) handleAdminPresetsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid preset id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	preset, err := parsePresetForm(r)
	if err != nil {
		http.Redirect(w, r, "/admin/presets?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	preset.ID = id

	if taken, err := s.presets.NameTaken(r.Context(), preset.Name, id); err != nil {
		log.Printf("admin presets: %v", err)
		http.Error(w, "failed to update preset", http.StatusInternalServerError)
		return
	} else if taken {
		http.Redirect(w, r, "/admin/presets?error="+url.QueryEscape(msgNameTaken), http.StatusSeeOther)
		return
	}

	if err := s.presets.Update(r.Context(), preset); err != nil {
		if errors.Is(err, presets.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		// Store errors already name the preset id.
		log.Printf("admin presets: %v", err)
		http.Error(w, "failed to update preset", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/presets?success=Preset+updated", http.StatusSeeOther)
}

func parsePresetForm(r *http.Request) (presets.Preset, error) {
	preset := presets.Preset{
		Name:   strings.TrimSpace(r.FormValue("name")),
		Notes:  strings.TrimSpace(r.FormValue("notes")),
		Active: r.FormValue("active") == "1",
	}

	if preset.Name == "" {
		return preset, fmt.Errorf("name is required")
	}

	var err error
	if preset.PricePerUnitArea, err = parseNonNegativeFloat(r.FormValue("price_per_unit_area"), "price_per_unit_area"); err != nil {
		return preset, err
	}
	if preset.TotalArea, err = parseNonNegativeFloat(r.FormValue("total_area"), "total_area"); err != nil {
		return preset, err
	}

	return preset, nil
}
