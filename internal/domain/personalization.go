package domain

import "strings"

// UserPreferences are the preference signals derived during onboarding.
// They are supplied per request and never modified here.
type UserPreferences struct {
	FavoriteGenres  []string `json:"favorite_genres"`
	PreferredThemes []string `json:"preferred_themes"`
}

type PersonalizationConfig struct {
	// BonusPerMatch is added once for each preference found among a game's tags.
	BonusPerMatch float64
	// BonusCap bounds the total bonus, so a game can never overtake another whose
	// raw similarity is higher by more than this amount.
	BonusCap float64
}

func DefaultPersonalizationConfig() PersonalizationConfig {
	return PersonalizationConfig{
		BonusPerMatch: 0.05,
		BonusCap:      0.15,
	}
}

// PersonalizationProfile is a read-only scoring view over UserPreferences.
type PersonalizationProfile struct {
	preferences map[string]struct{}
	config      PersonalizationConfig
}

func NewPersonalizationProfile(prefs UserPreferences, config PersonalizationConfig) PersonalizationProfile {
	set := make(map[string]struct{}, len(prefs.FavoriteGenres)+len(prefs.PreferredThemes))
	for _, list := range [][]string{prefs.FavoriteGenres, prefs.PreferredThemes} {
		for _, p := range list {
			if n := normalizeTag(p); n != "" {
				set[n] = struct{}{}
			}
		}
	}
	return PersonalizationProfile{preferences: set, config: config}
}

// BonusFor returns the additive score bonus for a game carrying the given tags.
func (p PersonalizationProfile) BonusFor(tags []string) float64 {
	if len(p.preferences) == 0 || len(tags) == 0 || p.config.BonusPerMatch <= 0 {
		return 0
	}

	matched := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		n := normalizeTag(t)
		if _, ok := p.preferences[n]; ok {
			matched[n] = struct{}{}
		}
	}

	bonus := float64(len(matched)) * p.config.BonusPerMatch
	return min(bonus, max(p.config.BonusCap, 0))
}

func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
