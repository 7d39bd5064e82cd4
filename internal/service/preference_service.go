package service

import (
	"context"
	"fmt"
	"log"

	apperrors "github.com/marwan404/StudyHub/internal/errors"
	"github.com/marwan404/StudyHub/internal/model"
	"github.com/marwan404/StudyHub/internal/repository"
)

// accentColors holds the two RGB triples behind each accent's background gradient.
var accentColors = map[string][2]string{
	"indigo": {"99, 102, 241", "139, 92, 246"},
	"blue":   {"59, 130, 246", "37, 99, 235"},
	"green":  {"16, 185, 129", "5, 150, 105"},
	"orange": {"249, 115, 22", "234, 88, 12"},
	"purple": {"168, 85, 247", "147, 51, 234"},
}

type PreferenceService struct {
	kv *repository.KVRepository
}

type PreferencesView struct {
	model.Preferences
	Gradient model.Gradient `json:"gradient"`
}

// UpdatePreferencesInput carries the fields to change; nil fields are kept.
type UpdatePreferencesInput struct {
	Theme      *string
	Accent     *string
	ActiveView *string
}

func NewPreferenceService(kv *repository.KVRepository) *PreferenceService {
	return &PreferenceService{kv: kv}
}

func (s *PreferenceService) Get(ctx context.Context) (*PreferencesView, *apperrors.APIError) {
	prefs := s.load(ctx)
	return toPreferencesView(prefs), nil
}

func (s *PreferenceService) Update(ctx context.Context, input UpdatePreferencesInput) (*PreferencesView, *apperrors.APIError) {
	if input.Theme != nil && *input.Theme != model.ThemeDark && *input.Theme != model.ThemeLight {
		return nil, apperrors.BadRequest("invalid_theme", "theme must be dark or light")
	}
	if input.Accent != nil {
		if _, ok := accentColors[*input.Accent]; !ok {
			return nil, apperrors.BadRequest("invalid_accent", "accent must be one of indigo, blue, green, orange, purple")
		}
	}
	if input.ActiveView != nil && *input.ActiveView != model.ViewLinks && *input.ActiveView != model.ViewTools {
		return nil, apperrors.BadRequest("invalid_view", "activeView must be links or tools")
	}

	updates := []struct {
		key   string
		value *string
	}{
		{repository.KeyTheme, input.Theme},
		{repository.KeyAccent, input.Accent},
		{repository.KeyActiveView, input.ActiveView},
	}
	for _, update := range updates {
		if update.value == nil {
			continue
		}
		if err := s.kv.Put(ctx, update.key, *update.value); err != nil {
			log.Printf("preferences: %v", err)
			return nil, apperrors.Internal("failed to save preferences")
		}
	}

	return toPreferencesView(s.load(ctx)), nil
}

// load reads each preference, falling back to the default for missing or
// unrecognised values.
func (s *PreferenceService) load(ctx context.Context) model.Preferences {
	prefs := model.DefaultPreferences()

	if theme := s.get(ctx, repository.KeyTheme); theme == model.ThemeLight {
		prefs.Theme = model.ThemeLight
	}
	if accent := s.get(ctx, repository.KeyAccent); accent != "" {
		if _, ok := accentColors[accent]; ok {
			prefs.Accent = accent
		}
	}
	if view := s.get(ctx, repository.KeyActiveView); view == model.ViewTools {
		prefs.ActiveView = model.ViewTools
	}
	return prefs
}

func (s *PreferenceService) get(ctx context.Context, key string) string {
	value, err := s.kv.Get(ctx, key)
	if err != nil {
		if err != repository.ErrNotFound {
			log.Printf("preferences: %v", err)
		}
		return ""
	}
	return value
}

func toPreferencesView(prefs model.Preferences) *PreferencesView {
	return &PreferencesView{
		Preferences: prefs,
		Gradient:    GradientFor(prefs.Accent, prefs.Theme == model.ThemeLight),
	}
}

// GradientFor returns the background gradient for an accent. Unknown accents
// use indigo.
func GradientFor(accent string, lightMode bool) model.Gradient {
	colors, ok := accentColors[accent]
	if !ok {
		colors = accentColors[model.DefaultAccent]
	}
	opacity := "0.1"
	if lightMode {
		opacity = "0.02"
	}
	return model.Gradient{
		Color1: fmt.Sprintf("rgba(%s, %s)", colors[0], opacity),
		Color2: fmt.Sprintf("rgba(%s, %s)", colors[1], opacity),
	}
}
