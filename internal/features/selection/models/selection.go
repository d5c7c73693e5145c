package models

// CustomGiftID is the sentinel used when the visitor wrote their own
// wish instead of picking a catalog gift.
const CustomGiftID = "custom"

// UserSelection is one append-only entry of the choice log. Entries are
// never mutated; an administrator may delete them.
type UserSelection struct {
	ID string `json:"id"`

	// SelectedGiftID is a gift id, the literal "custom", or empty.
	SelectedGiftID string `json:"selectedGiftId"`
	CustomText     string `json:"customText,omitempty"`

	// OpenedGiftIds is non-empty only for the final luck-game outcome,
	// distinguishing it from the initial two-gift pick.
	OpenedGiftIds []string `json:"openedGiftIds"`

	Timestamp int64  `json:"timestamp"` // epoch milliseconds
	UserAgent string `json:"userAgent,omitempty"`
}

// IsFinalOutcome reports whether this entry records the luck-game result
// rather than the initial gift pick.
func (s *UserSelection) IsFinalOutcome() bool {
	return len(s.OpenedGiftIds) > 0
}
