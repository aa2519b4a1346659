package engine

import (
	"strings"

	"focustab/internal/model"
)

// Selection describes a background change that may need an asynchronous
// theme classification follow-up.
type Selection struct {
	Background model.Background

	// Token identifies this selection; pass it back to ApplyClassification.
	Token uint64

	// Classify is true when the caller should run classification for this
	// background (theme not locked).
	Classify bool
}

// SelectBackground sets the active background by catalog index. When the
// theme is unlocked the caller is expected to classify the background and
// report back via ApplyClassification with the returned token.
func (e *Engine) SelectBackground(catalogIndex int) (Selection, error) {
	catalog := e.state.Catalog()
	if catalogIndex < 0 || catalogIndex >= len(catalog) {
		return Selection{}, reject("no such background")
	}
	e.state.BackgroundImageIndex = catalogIndex
	// Every selection invalidates in-flight classifications, locked or not.
	e.selToken++
	e.persist()
	return Selection{
		Background: catalog[catalogIndex],
		Token:      e.selToken,
		Classify:   !e.state.ThemeLocked,
	}, nil
}

// ApplyClassification applies an asynchronously classified theme. Stale
// tokens (a newer selection happened meanwhile) and locked themes are
// ignored; last write wins by selection order.
func (e *Engine) ApplyClassification(token uint64, theme model.Theme) {
	if token != e.selToken {
		return
	}
	if e.state.ThemeLocked {
		return
	}
	if !theme.Valid() {
		theme = model.DefaultTheme
	}
	e.state.CurrentTheme = theme
	e.persist()
}

// ApplySwatchTheme applies the classified theme of a flat color background.
// Picking a swatch changes the view, not the catalog, so only the theme is
// recorded; the lock gates application as usual.
func (e *Engine) ApplySwatchTheme(theme model.Theme) {
	if e.state.ThemeLocked {
		return
	}
	if !theme.Valid() {
		theme = model.DefaultTheme
	}
	e.state.CurrentTheme = theme
	e.persist()
}

// AddCustomBackground appends a background from the trusted source. It
// returns the new catalog index; callers should classify the image and record
// the result via SetCustomBackgroundTheme (classification is stored on the
// background regardless of the lock, which only gates application).
func (e *Engine) AddCustomBackground(url string) (int, error) {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, model.TrustedBackgroundPrefix) {
		return 0, reject("invalid URL: custom backgrounds must start with %s", model.TrustedBackgroundPrefix)
	}
	e.state.CustomBackgrounds = append(e.state.CustomBackgrounds, model.Background{
		URL: model.ResizedURL(url),
	})
	e.persist()
	return len(e.state.Catalog()) - 1, nil
}

// SetCustomBackgroundTheme records a classified theme on a custom background.
// Default-pool indexes are ignored; their themes are fixed.
func (e *Engine) SetCustomBackgroundTheme(catalogIndex int, theme model.Theme) {
	customIndex := catalogIndex - len(model.DefaultBackgrounds())
	if customIndex < 0 || customIndex >= len(e.state.CustomBackgrounds) {
		return
	}
	if !theme.Valid() {
		theme = model.DefaultTheme
	}
	e.state.CustomBackgrounds[customIndex].Theme = theme
	e.persist()
}

// DeleteCustomBackground removes a custom background by catalog index and
// re-indexes: the active pointer either falls back to the catalog start (if
// it pointed at the deleted entry) or shifts down to keep naming the same
// logical background.
func (e *Engine) DeleteCustomBackground(catalogIndex int) error {
	defaultCount := len(model.DefaultBackgrounds())
	if catalogIndex >= 0 && catalogIndex < defaultCount {
		return reject("default backgrounds cannot be removed")
	}
	customIndex := catalogIndex - defaultCount
	if customIndex < 0 || customIndex >= len(e.state.CustomBackgrounds) {
		return reject("no such background")
	}
	e.state.CustomBackgrounds = append(
		e.state.CustomBackgrounds[:customIndex],
		e.state.CustomBackgrounds[customIndex+1:]...)

	switch {
	case e.state.BackgroundImageIndex == catalogIndex:
		e.state.BackgroundImageIndex = 0
		if bg, ok := e.state.ActiveBackground(); ok {
			if !e.state.ThemeLocked && bg.Theme.Valid() {
				e.state.CurrentTheme = bg.Theme
			}
		} else {
			// Unreachable while the default pool is non-empty; kept so an
			// emptied catalog still leaves the app on a neutral theme.
			e.state.CurrentTheme = model.DefaultTheme
		}
	case e.state.BackgroundImageIndex > catalogIndex:
		e.state.BackgroundImageIndex--
	}
	e.persist()
	return nil
}

// SetTheme applies a theme directly. Manual selection always locks the theme.
func (e *Engine) SetTheme(theme model.Theme) error {
	if !theme.Valid() {
		return reject("unknown theme %q", theme)
	}
	e.state.CurrentTheme = theme
	e.state.ThemeLocked = true
	e.persist()
	return nil
}

// CycleTheme advances to the next theme in the enumeration and locks.
func (e *Engine) CycleTheme() model.Theme {
	themes := model.Themes()
	next := themes[0]
	for i, t := range themes {
		if t == e.state.CurrentTheme {
			next = themes[(i+1)%len(themes)]
			break
		}
	}
	e.state.CurrentTheme = next
	e.state.ThemeLocked = true
	e.persist()
	return next
}

// ToggleThemeLock flips the lock without touching the current theme.
func (e *Engine) ToggleThemeLock() bool {
	e.state.ThemeLocked = !e.state.ThemeLocked
	e.persist()
	return e.state.ThemeLocked
}
