package model

import "strings"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Theme string

const (
	ThemeWhite   Theme = "white"
	ThemeBlack   Theme = "black"
	ThemeSkyblue Theme = "skyblue"
	ThemeSepia   Theme = "sepia"
)

// Themes returns the closed theme enumeration in cycle order.
func Themes() []Theme {
	return []Theme{ThemeWhite, ThemeBlack, ThemeSkyblue, ThemeSepia}
}

func (t Theme) Valid() bool {
	for _, known := range Themes() {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultTheme is applied on first run and whenever classification fails.
const DefaultTheme = ThemeWhite

type Task struct {
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`

	// DueDate is a calendar date (YYYY-MM-DD); empty means no due date.
	DueDate string `json:"dueDate,omitempty"`
}

// FinishedTask is an archived task plus the name of the list it came from.
// OriginalList is kept even if that list is later deleted or renamed.
type FinishedTask struct {
	Task         Task   `json:"task"`
	OriginalList string `json:"originalList"`
}

type Background struct {
	URL string `json:"url"`

	// Theme is the classified theme for this background, recorded when the
	// background is added. Empty when never classified.
	Theme Theme `json:"theme,omitempty"`
}

const (
	// DefaultListName is created on first run and recreated whenever the last
	// list is deleted.
	DefaultListName = "To-Do"

	// FinishedList is the synthetic archive tab. It is never a key in
	// AppState.Lists.
	FinishedList = "Finished"

	// ArchivedListName is the provenance recorded for finished entries that
	// predate provenance tracking.
	ArchivedListName = "Archived"
)

// AppState is the single persisted document.
//
// Lists maps list name to its ordered tasks; ListOrder records tab order since
// map keys do not round-trip ordered through JSON. ActiveList is a list name
// or FinishedList.
type AppState struct {
	Lists                map[string][]Task `json:"lists"`
	ListOrder            []string          `json:"listOrder"`
	Finished             []FinishedTask    `json:"finished"`
	ActiveList           string            `json:"activeList"`
	BackgroundImageIndex int               `json:"backgroundImageIndex"`
	CustomBackgrounds    []Background      `json:"customBackgrounds"`
	CurrentTheme         Theme             `json:"currentTheme"`
	ThemeLocked          bool              `json:"themeLocked"`
}

func DefaultState() *AppState {
	return &AppState{
		Lists:                map[string][]Task{DefaultListName: {}},
		ListOrder:            []string{DefaultListName},
		Finished:             []FinishedTask{},
		ActiveList:           DefaultListName,
		BackgroundImageIndex: 0,
		CustomBackgrounds:    []Background{},
		CurrentTheme:         DefaultTheme,
		ThemeLocked:          false,
	}
}

// DefaultBackgrounds is the fixed, non-removable background pool.
func DefaultBackgrounds() []Background {
	return []Background{
		{URL: "https://images.unsplash.com/photo-1469474968028-56623f02e42e?q=80&w=2072&auto=format&fit=crop", Theme: ThemeSepia},
		{URL: "https://images.unsplash.com/photo-1506744038136-46273834b3fb?q=80&w=2070&auto=format&fit=crop", Theme: ThemeWhite},
		{URL: "https://images.unsplash.com/photo-1470770841072-f978cf4d019e?q=80&w=2070&auto=format&fit=crop", Theme: ThemeSkyblue},
		{URL: "https://images.unsplash.com/photo-1443926818681-717d074a57af?ixlib=rb-4.1.0&auto=format&fit=crop&q=80&w=1760"},
	}
}

// TrustedBackgroundPrefix is the only accepted source for custom backgrounds.
const TrustedBackgroundPrefix = "https://images.unsplash.com/"

// DefaultSwatches is the flat-color background palette.
func DefaultSwatches() []string {
	return []string{"#f4f4f9", "#2c3e50", "#8e44ad", "#2980b9", "#16a085", "#d35400"}
}

// Catalog returns the effective background catalog: the default pool followed
// by the user's custom pool. Indexes into it are positional.
func (s *AppState) Catalog() []Background {
	defaults := DefaultBackgrounds()
	out := make([]Background, 0, len(defaults)+len(s.CustomBackgrounds))
	out = append(out, defaults...)
	out = append(out, s.CustomBackgrounds...)
	return out
}

// ActiveBackground returns the background at BackgroundImageIndex, clamped to
// the catalog start when the index is stale.
func (s *AppState) ActiveBackground() (Background, bool) {
	catalog := s.Catalog()
	if len(catalog) == 0 {
		return Background{}, false
	}
	i := s.BackgroundImageIndex
	if i < 0 || i >= len(catalog) {
		i = 0
	}
	return catalog[i], true
}

// HasList reports whether name is a stored list (case-sensitive exact match).
func (s *AppState) HasList(name string) bool {
	_, ok := s.Lists[name]
	return ok
}

// ResizedURL normalizes a background URL to full-screen rendition parameters.
// URLs that already carry a width parameter are assumed to be sized.
func ResizedURL(url string) string {
	if strings.Contains(url, "&w=") || strings.Contains(url, "?w=") {
		return url
	}
	const params = "w=1920&h=1080&fit=crop&q=80"
	if base, query, ok := strings.Cut(url, "?"); ok {
		return base + "?" + query + "&" + params
	}
	return url + "?" + params
}

// ThumbURL derives the grid thumbnail rendition from a full-size URL.
func ThumbURL(url string) string {
	return strings.Replace(ResizedURL(url), "w=1920&h=1080", "w=300&h=200", 1)
}
