package models

// LyricLine is one timestamped line of the special-song karaoke overlay.
type LyricLine struct {
	Time float64 `json:"time"` // seconds from song start
	Text string  `json:"text"`
}

// PageContent is the singleton document holding every editable string
// and media URL of the site. Exactly one document exists; reads create
// it with defaults when absent.
type PageContent struct {
	// Page 1 - Intro
	IntroText1      string `json:"introText1"`
	IntroText2      string `json:"introText2"`
	IntroText3      string `json:"introText3"`
	ReadyText       string `json:"readyText"`
	ReadyButtonText string `json:"readyButtonText"`

	// Page 2 - Cake
	CakeInstruction string `json:"cakeInstruction"`
	CakeImageURL    string `json:"cakeImageUrl"`
	BirthdaySongURL string `json:"birthdaySongUrl"`
	ClapSoundURL    string `json:"clapSoundUrl"`

	// Page 3 - Wishes
	WishesTitle      string `json:"wishesTitle"`
	WishesMessage    string `json:"wishesMessage"`
	WishesButtonText string `json:"wishesButtonText"`

	// Page 4 - Promises
	PromisesTitle      string `json:"promisesTitle"`
	Promise1           string `json:"promise1"`
	Promise2           string `json:"promise2"`
	Promise3           string `json:"promise3"`
	PromiseButton1Text string `json:"promiseButton1Text"`
	PromiseButton2Text string `json:"promiseButton2Text"`
	PromiseButton3Text string `json:"promiseButton3Text"`

	// Page 5 - Gifts
	GiftsTitle       string `json:"giftsTitle"`
	GiftsInstruction string `json:"giftsInstruction"`

	// Page 6 - Luck
	LuckTitle       string `json:"luckTitle"`
	LuckInstruction string `json:"luckInstruction"`
	FinalMessage    string `json:"finalMessage"`

	// Special Song
	SongTitle    string      `json:"songTitle"`
	SongLyrics   string      `json:"songLyrics"`
	SongURL      string      `json:"songUrl"`
	SyncedLyrics []LyricLine `json:"syncedLyrics"`

	UpdatedAt int64 `json:"updatedAt"` // epoch milliseconds
}

// DefaultPageContent returns the document every field starts from.
func DefaultPageContent() *PageContent {
	return &PageContent{
		IntroText1:      "Today is 4 January.",
		IntroText2:      "This is the day when you were born,",
		IntroText3:      "and it is not only special for you, but also for me.",
		ReadyText:       "Are you ready?",
		ReadyButtonText: "I am ready ❤️",

		CakeInstruction: "Swipe once on the cake to cut it 🎂",

		WishesTitle:      "Best Wishes for You",
		WishesMessage:    "You are the most special person in my life. Every moment with you is precious. Happy Birthday, my love!",
		WishesButtonText: "See my promises 💌",

		PromisesTitle:      "My Promises to You",
		Promise1:           "I promise to always be by your side, through every joy and challenge.",
		Promise2:           "I promise to make you smile every single day.",
		Promise3:           "I promise to love you more with each passing moment.",
		PromiseButton1Text: "Reveal 1st Promise",
		PromiseButton2Text: "Reveal 2nd Promise",
		PromiseButton3Text: "Reveal 3rd Promise",

		GiftsTitle:       "Choose Your Gift",
		GiftsInstruction: "You can pick any ONE 💝",

		LuckTitle:       "It's time for your luck! 🍀",
		LuckInstruction: "Watch carefully as the boxes shuffle...",
		FinalMessage:    "All the gifts will be handed over 🎉\nThank you for being a part of my life ❤️",

		SyncedLyrics: []LyricLine{},
	}
}
