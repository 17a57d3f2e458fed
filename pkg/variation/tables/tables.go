package tables

// SubtleCandidates is how many leading entries of a letter's candidate list
// the letter pass may draw from.
const SubtleCandidates = 3

// Letters maps a lowercase letter to its look-alike candidates.
// Each candidate is a single rune so a swap never changes text length.
var Letters = map[rune][]rune{
	'a': {'4', '@', 'а', 'α', 'a'},
	'b': {'b', '8', 'ь', 'в', 'b'},
	'c': {'c', 'с', '¢', 'c', 'c'},
	'd': {'d', 'ꓒ', 'ⅾ', 'd', 'd'},
	'e': {'3', 'е', 'ε', 'e', 'e'},
	'f': {'f', 'ƒ', 'f', 'f', 'f'},
	'g': {'g', '9', 'ϧ', 'g', 'g'},
	'h': {'h', 'н', 'ʜ', 'h', 'h'},
	'i': {'1', 'і', '!', 'i', 'i'},
	'j': {'j', 'ј', 'j', 'j', 'j'},
	'k': {'k', 'κ', 'к', 'k', 'k'},
	'l': {'l', '1', 'ӏ', 'l', 'l'},
	'm': {'m', 'м', 'ʍ', 'm', 'm'},
	'n': {'n', 'п', 'ɴ', 'n', 'n'},
	'o': {'0', 'о', 'օ', 'o', 'o'},
	'p': {'p', 'р', 'ρ', 'p', 'p'},
	'q': {'q', 'q', 'q', 'q', 'q'},
	'r': {'r', 'г', 'ʀ', 'r', 'r'},
	's': {'s', '$', 'ѕ', 's', 's'},
	't': {'t', 'т', '†', 't', 't'},
	'u': {'u', 'υ', 'ц', 'u', 'u'},
	'v': {'v', 'ѵ', 'v', 'v', 'v'},
	'w': {'w', 'ш', 'ԝ', 'w', 'w'},
	'x': {'x', 'х', '×', 'x', 'x'},
	'y': {'y', 'у', 'γ', 'y', 'y'},
	'z': {'z', 'z', 'ᴢ', 'z', 'z'},
}

// WordEntry is one euphemism rule: a lowercase key word and its replacements.
type WordEntry struct {
	Key          string
	Replacements []string
}

// Words lists the euphemism rules in the order they are applied.
var Words = []WordEntry{
	{"sex", []string{"seggs", "s3x", "sx", "intimacy", "adult fun"}},
	{"sexual", []string{"seggsy", "adult", "romantic", "spicy", "intimate"}},
	{"porn", []string{"spicy content", "adult content", "explicit content", "mature content", "nsfw"}},
	{"money", []string{"m0ney", "funds", "cash", "earnings", "income"}},
	{"earn", []string{"e4rn", "make", "receive", "gain", "get"}},
	{"bonus", []string{"b0nus", "extra", "reward", "gift", "incentive"}},
	{"profit", []string{"pr0fit", "gain", "return", "yield", "earnings"}},
	{"win", []string{"w1n", "succeed", "triumph", "achieve", "score"}},
	{"free", []string{"fr33", "no cost", "complementary", "gratis", "zero cost"}},
	{"gambling", []string{"gaming", "playing", "wagering", "betting", "chance games"}},
	{"casino", []string{"gaming site", "entertainment platform", "game center", "play zone", "fun house"}},
	{"bet", []string{"wager", "stake", "play", "try", "attempt"}},
	{"investment", []string{"opportunity", "venture", "placement", "allocation", "commitment"}},
	{"opportunity", []string{"chance", "opening", "prospect", "occasion", "potential"}},
	{"fantastic", []string{"amazing", "incredible", "wonderful", "awesome", "great"}},
	{"facebook", []string{"social media", "platform", "social site", "community", "online space"}},
	{"instagram", []string{"photo platform", "social app", "image sharing", "visual media", "social network"}},
	{"bank", []string{"account", "institution", "facility", "repository", "depository"}},
	{"deposit", []string{"transfer", "add", "place", "put in", "contribute"}},
	{"payment", []string{"transaction", "transfer", "remittance", "settlement", "contribution"}},
}

// Emojis is the pool emoji runs are drawn from, with replacement.
// Duplicates are kept; they weight the draw.
var Emojis = []string{
	"👍", "🙌", "✨", "👏", "😊", "🎉", "😃", "👀", "💪", "🤔",
	"😂", "🙏", "😎", "👊", "🚀", "💯", "🔥", "👌", "😁", "💡",
	"🌟", "💪", "👋", "🙂", "👇", "👆", "💭", "👉", "💖", "🤩",
}

// TypoPattern pairs a substring with the scrambled text that replaces it.
type TypoPattern struct {
	Search  string
	Replace string
}

// Typos are transpositions that read like genuine slips.
var Typos = []TypoPattern{
	{"th", "ht"},
	{"er", "re"},
	{"you", "yuo"},
	{"and", "adn"},
	{"ing", "ign"},
	{"the", "teh"},
	{"for", "fro"},
	{"that", "taht"},
	{"with", "wiht"},
	{"this", "tihs"},
	{"have", "ahve"},
	{"about", "abuot"},
}

// PunctuationRun lists the replacement runs for one punctuation mark.
type PunctuationRun struct {
	Mark string
	Runs []string
}

// Punctuation is processed in this order: ! ? . ,
var Punctuation = []PunctuationRun{
	{"!", []string{"!!", "!", "! ", "!!!"}},
	{"?", []string{"??", "?", "? ", "???"}},
	{".", []string{".", "..", "...", ". "}},
	{",", []string{",", ",,", ", ", ","}},
}

// IsEmoji reports whether s is a glyph from the emoji pool.
func IsEmoji(s string) bool {
	for _, e := range Emojis {
		if e == s {
			return true
		}
	}
	return false
}

// Sizes summarizes table cardinalities.
type Sizes struct {
	Letters     int `json:"letters"`
	Words       int `json:"words"`
	Emojis      int `json:"emojis"`
	Typos       int `json:"typos"`
	Punctuation int `json:"punctuation"`
}

// Summary returns the size of every table.
func Summary() Sizes {
	return Sizes{
		Letters:     len(Letters),
		Words:       len(Words),
		Emojis:      len(Emojis),
		Typos:       len(Typos),
		Punctuation: len(Punctuation),
	}
}
