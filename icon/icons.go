package icon

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Info
	Progress
	Download
	Fallback
	Link
	Audio
	Video
	History
	Search
	Play
	Key
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "+",
		kaomoji: "(ᵔᴥᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "ﮊ",
		plain:   "x",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Info: {
		emoji:   "ℹ️",
		nerd:    "",
		plain:   "i",
		kaomoji: "(°ロ°)",
		squares: "🟦",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "~",
		kaomoji: "(・_・)",
		squares: "🟨",
	},
	Download: {
		emoji:   "📥",
		nerd:    "",
		plain:   "v",
		kaomoji: "(っ˘ڡ˘ς)",
		squares: "🟪",
	},
	Fallback: {
		emoji:   "🌐",
		nerd:    "",
		plain:   ">",
		kaomoji: "(¬‿¬)",
		squares: "🟧",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "@",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "⬛",
	},
	Audio: {
		emoji:   "🎵",
		nerd:    "",
		plain:   "a",
		kaomoji: "♪(´▽｀)",
		squares: "🟫",
	},
	Video: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "m",
		kaomoji: "(⌐■_■)",
		squares: "⬜",
	},
	History: {
		emoji:   "📜",
		nerd:    "",
		plain:   "#",
		kaomoji: "(￣ー￣)",
		squares: "🟫",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(ʘ‿ʘ)",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "ᕕ(ᐛ)ᕗ",
		squares: "🟩",
	},
	Key: {
		emoji:   "🔑",
		nerd:    "",
		plain:   "k",
		kaomoji: "(•̀ᴗ•́)",
		squares: "🟨",
	},
}
