package models

import "strings"

// TempIDPrefix marks a client-generated id of a gift that has not been
// persisted yet. An update arriving with such an id is an insert.
const TempIDPrefix = "gift-new-"

// WinGiftID is the sentinel id of the synthetic prize appended to the
// luck-game view. It never exists in the store.
const WinGiftID = "win-box"

// Page identifies which of the two gift pages an admin operation
// targets.
type Page string

const (
	PageSelection Page = "selection"
	PageLuckGame  Page = "luck"
)

// Gift is one entry of the gift catalog. The two visibility pointers are
// tri-state: nil means "not set", which both pages read as visible.
type Gift struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Enabled     bool     `json:"enabled"`
	Order       int      `json:"order"`

	IsCustomText bool   `json:"isCustomText,omitempty"`
	CustomText   string `json:"customText,omitempty"`

	// Page membership flags. Omitted (nil) defaults to shown.
	ShowInSelection *bool `json:"showInSelection,omitempty"`
	ShowInLuckGame  *bool `json:"showInLuckGame,omitempty"`
}

// VisibleInSelection reports membership on the gift-selection page.
func (g *Gift) VisibleInSelection() bool {
	return g.ShowInSelection == nil || *g.ShowInSelection
}

// VisibleInLuckGame reports membership on the luck-game page.
func (g *Gift) VisibleInLuckGame() bool {
	return g.ShowInLuckGame == nil || *g.ShowInLuckGame
}

// VisibleOn reports membership on the given page.
func (g *Gift) VisibleOn(page Page) bool {
	if page == PageSelection {
		return g.VisibleInSelection()
	}
	return g.VisibleInLuckGame()
}

// HasTempID reports whether the gift still carries a client-generated
// placeholder id.
func HasTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// WinGift is the synthetic "You Won!" entry appended after all real
// gifts in the luck-game view. It bypasses the enabled/visibility
// filters entirely.
func WinGift() Gift {
	return Gift{
		ID:          WinGiftID,
		Title:       "You Won!",
		Description: "Now pick any ONE from the 3 gifts! 🎉",
		Images:      []string{},
		Enabled:     true,
		Order:       999,
	}
}
