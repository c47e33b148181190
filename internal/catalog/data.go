package catalog

// Language is a supported response locale.
type Language string

const (
	LangID Language = "id"
	LangEN Language = "en"
)

// Normalize maps unknown locales onto the Indonesian default.
func (l Language) Normalize() Language {
	switch l {
	case LangID, LangEN:
		return l
	}
	return LangID
}

// Intent is a categorical label for the user's conversational goal.
type Intent string

const (
	IntentAbout         Intent = "about"
	IntentPopularPhotos Intent = "popular_photos"
	IntentGreeting      Intent = "greeting"
	IntentCasual        Intent = "casual"
	IntentGeneral       Intent = "general"
)

// intentOrder fixes the iteration order used by intent classification.
// Ties on match count resolve to the earliest entry here.
var intentOrder = []Intent{IntentAbout, IntentPopularPhotos, IntentGreeting, IntentCasual}

// intentPatterns maps each intent to its case-insensitive substring
// patterns. The pool is language-agnostic: Indonesian and English
// phrases share one list.
var intentPatterns = map[Intent][]string{
	IntentAbout: {
		"tentang", "about", "info", "information", "gallery ini", "website ini",
		"apa ini", "jelaskan", "ceritakan", "tell me about",
	},
	IntentPopularPhotos: {
		"foto populer", "popular photos", "like terbanyak", "most liked", "terpopuler",
		"foto dengan like", "photo with most likes", "foto yang disukai",
		"photo dengan like terbanyak", "foto paling banyak like", "foto favorit",
	},
	IntentGreeting: {
		"hai", "hello", "hi", "halo", "hei", "selamat pagi", "selamat siang",
		"selamat malam", "good morning", "good afternoon", "good evening",
	},
	IntentCasual: {
		"apa kabar", "how are you", "lagi apa", "what are you doing",
		"siapa kamu", "who are you", "kamu siapa",
	},
}

// responses holds the static templates per intent and language. A
// single entry is a fixed reply; multiple entries are alternatives
// picked at random.
var responses = map[Intent]map[Language][]string{
	IntentAbout: {
		LangID: {
			"Hai! Selamat datang di galeri foto kami! 📸✨\n\n" +
				"Di sini, kamu bisa:\n" +
				"• Menjelajahi berbagai kategori foto yang menarik\n" +
				"• Menemukan foto-foto yang paling banyak disukai\n" +
				"• Menikmati karya fotografi yang keren dan inspiratif\n\n" +
				"Mau tahu foto apa yang lagi hits? Tanyakan aja ke aku! 😊",
		},
		LangEN: {
			"Hi there! Welcome to our photo gallery! 📸✨\n\n" +
				"Here, you can:\n" +
				"• Browse through various interesting photo categories\n" +
				"• Discover the most liked photos\n" +
				"• Enjoy stunning and inspiring photography works\n\n" +
				"Want to know which photos are trending? Just ask me! 😊",
		},
	},
	IntentCasual: {
		LangID: {
			"Aku baik-baik saja! Senang bisa bantu kamu menjelajahi galeri foto kita! 😊",
			"Halo! Aku Cerbi, asisten virtual yang suka banget sama foto-foto keren! Mau lihat foto populer? 📸",
			"Senang ngobrol sama kamu! Ada yang mau kamu tanyakan tentang galeri kita? 🌟",
		},
		LangEN: {
			"I'm good! Happy to help you explore our photo gallery! 😊",
			"Hello! I'm Cerbi, a virtual assistant who loves awesome photos! Want to see some popular ones? 📸",
			"Nice chatting with you! Anything you want to ask about our gallery? 🌟",
		},
	},
}

var suggestedQuestions = map[Language][]string{
	LangID: {
		"Bagaimana cara melihat foto?",
		"Apa saja kategori yang ada?",
		"Bagaimana mencari foto tertentu?",
		"Ceritakan lebih banyak tentang galeri ini.",
		"Apakah ada fitur pencarian?",
		"Bagaimana cara memfilter foto?",
		"Dimana saya bisa melihat album favorit?",
		"Apakah ada panduan penggunaan?",
	},
	LangEN: {
		"How do I view photos?",
		"What categories are available?",
		"How can I search for specific photos?",
		"Tell me more about this gallery.",
		"Is there a search feature?",
		"How do I filter photos?",
		"Where can I see my favorite albums?",
		"Is there a user guide?",
	},
}

var errorResponses = map[Language]string{
	LangID: "Ups, maaf ya! Aku agak bingung nih 😅 Coba tanya dengan cara lain?",
	LangEN: "Oops, my bad! I'm a bit confused 😅 Could you try asking differently?",
}

var notUnderstoodResponses = map[Language]string{
	LangID: "Hmm... Aku kurang paham nih 🤔 Bisa jelasin lagi dengan cara lain?",
	LangEN: "Hmm... I didn't quite catch that 🤔 Could you explain it differently?",
}

var greetings = map[Language][]string{
	LangID: {
		"Hai! Cerbi di sini! Mau lihat-lihat foto keren? 🌟",
		"Halo! Aku Cerbi, siap bantu kamu jelajahi galeri foto kita! ✨",
		"Hai hai! Senang ketemu kamu! Mau tau foto apa yang lagi populer? 😊",
	},
	LangEN: {
		"Hi there! Cerbi here! Want to see some cool photos? 🌟",
		"Hello! I'm Cerbi, ready to help you explore our gallery! ✨",
		"Hey! Nice to meet you! Want to know what photos are trending? 😊",
	},
}

// EmotionLevel is one of the five sentiment buckets used for
// emotional response wrapping.
type EmotionLevel string

const (
	EmotionVeryPositive EmotionLevel = "very_positive"
	EmotionPositive     EmotionLevel = "positive"
	EmotionNeutral      EmotionLevel = "neutral"
	EmotionNegative     EmotionLevel = "negative"
	EmotionVeryNegative EmotionLevel = "very_negative"
)

// emotionLevels maps ordinal star labels from the sentiment model onto
// emotion levels.
var emotionLevels = map[string]EmotionLevel{
	"5 stars": EmotionVeryPositive,
	"4 stars": EmotionPositive,
	"3 stars": EmotionNeutral,
	"2 stars": EmotionNegative,
	"1 star":  EmotionVeryNegative,
}

type expressionSet struct {
	prefixes []string
	suffixes []string
}

var emotionalExpressions = map[EmotionLevel]map[Language]expressionSet{
	EmotionVeryPositive: {
		LangID: {
			prefixes: []string{
				"Yeay! Senang banget bisa bantu! ",
				"Asik! Aku tahu nih! ",
				"Wah, ini bisa aku bantu! ",
			},
			suffixes: []string{
				" 😊✨",
				" Semoga membantu ya! 🌟",
				" Semoga info ini berguna! 💫",
			},
		},
		LangEN: {
			prefixes: []string{
				"Yay! So happy to help! ",
				"Awesome! I know this! ",
				"Oh, I can help with that! ",
			},
			suffixes: []string{
				" 😊✨",
				" Hope this helps! 🌟",
				" Hope this info is useful! 💫",
			},
		},
	},
	EmotionPositive: {
		LangID: {
			prefixes: []string{
				"Tentu! ",
				"Dengan senang hati, ",
				"Aku bisa bantu itu! ",
			},
			suffixes: []string{
				" 😊",
				" Semoga membantu!",
				" Ada yang lain yang bisa aku bantu?",
			},
		},
		LangEN: {
			prefixes: []string{
				"Of course! ",
				"I'd be happy to help! ",
				"I can definitely help with that! ",
			},
			suffixes: []string{
				" 😊",
				" Hope that helps!",
				" Anything else I can assist you with?",
			},
		},
	},
	EmotionNeutral: {
		LangID: {
			prefixes: []string{
				"Baik, ",
				"Oke, ",
				"Begini, ",
			},
			suffixes: []string{
				".",
				" Ada lagi yang ingin ditanyakan?",
				" Semoga informasinya membantu.",
			},
		},
		LangEN: {
			prefixes: []string{
				"Alright, ",
				"Okay, ",
				"Here's what you need to know: ",
			},
			suffixes: []string{
				".",
				" Any other questions?",
				" Hope this information helps.",
			},
		},
	},
	EmotionNegative: {
		LangID: {
			prefixes: []string{
				"Maaf ya, ",
				"Aku mengerti kebingunganmu. ",
				"Mari aku coba jelaskan lagi, ",
			},
			suffixes: []string{
				" Semoga ini membantu.",
				" Apakah penjelasan ini cukup jelas?",
				" Beri tahu aku jika masih ada yang membingungkan.",
			},
		},
		LangEN: {
			prefixes: []string{
				"I'm sorry, ",
				"I understand your confusion. ",
				"Let me try to explain again, ",
			},
			suffixes: []string{
				" Hope this helps.",
				" Is this explanation clear enough?",
				" Let me know if anything is still unclear.",
			},
		},
	},
	EmotionVeryNegative: {
		LangID: {
			prefixes: []string{
				"Aku sangat minta maaf, ",
				"Mohon maaf atas ketidaknyamanannya. ",
				"Aku mengerti kekecewaanmu. ",
			},
			suffixes: []string{
				" Aku akan berusaha lebih baik.",
				" Bagaimana aku bisa membantu memperbaiki ini?",
				" Mari kita cari solusi bersama.",
			},
		},
		LangEN: {
			prefixes: []string{
				"I sincerely apologize, ",
				"I'm really sorry for the inconvenience. ",
				"I understand your disappointment. ",
			},
			suffixes: []string{
				" I'll do my best to make it right.",
				" How can I help improve this situation?",
				" Let's work together to find a solution.",
			},
		},
	},
}

// TimeOfDay selects a special greeting variant.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

var timeGreetings = map[TimeOfDay]map[Language]string{
	Morning: {
		LangID: "Selamat pagi! Cerbi siap membantu kamu hari ini! 🌅",
		LangEN: "Good morning! Cerbi's ready to help you today! 🌅",
	},
	Afternoon: {
		LangID: "Selamat siang! Cerbi di sini, mau bantuin apa nih? ☀️",
		LangEN: "Good afternoon! Cerbi here, what can I help you with? ☀️",
	},
	Evening: {
		LangID: "Selamat malam! Cerbi masih semangat buat bantu kamu! 🌙",
		LangEN: "Good evening! Cerbi's still energetic to help you! 🌙",
	},
}

// FarewellTone selects a farewell variant.
type FarewellTone string

const (
	FarewellPositive FarewellTone = "positive"
	FarewellNeutral  FarewellTone = "neutral"
	FarewellNegative FarewellTone = "negative"
)

var farewells = map[FarewellTone]map[Language]string{
	FarewellPositive: {
		LangID: "Cerbi senang bisa bantu! Sampai ketemu lagi ya! 👋✨",
		LangEN: "Cerbi's glad to help! See you next time! 👋✨",
	},
	FarewellNeutral: {
		LangID: "Makasih udah ngobrol sama Cerbi! Sampai jumpa! 👋",
		LangEN: "Thanks for chatting with Cerbi! Goodbye! 👋",
	},
	FarewellNegative: {
		LangID: "Cerbi akan belajar lebih baik lagi! Sampai jumpa! 👋",
		LangEN: "Cerbi will learn to do better! Goodbye! 👋",
	},
}

var defaultFarewells = map[Language]string{
	LangID: "Sampai jumpa lagi! 👋",
	LangEN: "Goodbye! 👋",
}

// AssistantName is the persona the catalog speaks as.
const AssistantName = "Cerbi"

var introductions = map[Language]string{
	LangID: "Hai! Aku Cerbi, asisten virtual yang siap membantumu menjelajahi galeri foto ini. " +
		"Aku bisa membantu kamu mencari foto, menunjukkan kategori yang menarik, " +
		"dan menjawab pertanyaan-pertanyaan seputar galeri ini! 😊",
	LangEN: "Hi! I'm Cerbi, a virtual assistant ready to help you explore this photo gallery. " +
		"I can help you find photos, show you interesting categories, " +
		"and answer any questions about the gallery! 😊",
}

/// Dynamic templates: a single string with substitution slots, plus the
// split intro/outro used when the response is delivered as a
// structured payload.
var dynamicTemplates = map[Intent]map[Language]string{
	IntentPopularPhotos: {
		LangID: "Nih, foto-foto yang lagi hits banget! 🔥\n\n{photos_list}\n\nKeren kan? Mau lihat yang lainnya? 😊",
		LangEN: "Check out these trending photos! 🔥\n\n{photos_list}\n\nPretty awesome, right? Want to see more? 😊",
	},
}

var dynamicIntros = map[Intent]map[Language]string{
	IntentPopularPhotos: {
		LangID: "Nih, foto-foto yang lagi hits banget! 🔥",
		LangEN: "Check out these trending photos! 🔥",
	},
}

var dynamicOutros = map[Intent]map[Language]string{
	IntentPopularPhotos: {
		LangID: "Ada yang ingin ditanyakan lagi? 😊",
		LangEN: "Anything else you'd like to ask? 😊",
	},
}
