package catalog

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Catalog is the static response repository. All lookup tables are
// read-only after construction; the only mutable state is the random
// source, which is guarded so the catalog stays safe for concurrent
// readers.
type Catalog struct {
	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Catalog)

// WithRandSource makes response selection deterministic for tests.
func WithRandSource(src rand.Source) Option {
	return func(c *Catalog) {
		c.rng = rand.New(src)
	}
}

func New(opts ...Option) *Catalog {
	c := &Catalog{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) pick(alternatives []string) string {
	if len(alternatives) == 0 {
		return ""
	}
	if len(alternatives) == 1 {
		return alternatives[0]
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return alternatives[c.rng.Intn(len(alternatives))]
}

// Intents returns the classification taxonomy in its fixed order.
func Intents() []Intent {
	return intentOrder
}

// Patterns returns the keyword patterns for an intent.
func Patterns(intent Intent) []string {
	return intentPatterns[intent]
}

// Response returns the template text for (intent, language). Intents
// with alternative templates resolve to a random pick. Missing pairs
// fall back to the not-understood text for the language.
func (c *Catalog) Response(intent Intent, lang Language) string {
	lang = lang.Normalize()
	if byLang, ok := responses[intent]; ok {
		if alternatives, ok := byLang[lang]; ok {
			return strings.TrimSpace(c.pick(alternatives))
		}
	}
	return notUnderstoodResponses[lang]
}

// Greeting returns a random greeting for the language.
func (c *Catalog) Greeting(lang Language) string {
	return c.pick(greetings[lang.Normalize()])
}

// Greetings exposes the full greeting list for a language.
func Greetings(lang Language) []string {
	return greetings[lang.Normalize()]
}

// TimeGreeting returns the special greeting for a time of day, or a
// random default greeting when the slot is unknown.
func (c *Catalog) TimeGreeting(tod TimeOfDay, lang Language) string {
	lang = lang.Normalize()
	if byLang, ok := timeGreetings[tod]; ok {
		return byLang[lang]
	}
	return c.Greeting(lang)
}

// TimeOfDayFor buckets an hour of day into the greeting slots.
func TimeOfDayFor(hour int) TimeOfDay {
	switch {
	case hour >= 4 && hour < 11:
		return Morning
	case hour >= 11 && hour < 18:
		return Afternoon
	default:
		return Evening
	}
}

// Farewell returns the farewell for a tone, or the plain default when
// the tone is unknown.
func (c *Catalog) Farewell(tone FarewellTone, lang Language) string {
	lang = lang.Normalize()
	if byLang, ok := farewells[tone]; ok {
		return byLang[lang]
	}
	return defaultFarewells[lang]
}

// SuggestedQuestions returns the fixed question list for the language,
// defaulting to English for unknown locales.
func (c *Catalog) SuggestedQuestions(lang Language) []string {
	if questions, ok := suggestedQuestions[lang]; ok {
		return questions
	}
	return suggestedQuestions[LangEN]
}

// Introduction returns the assistant's self introduction.
func (c *Catalog) Introduction(lang Language) string {
	return introductions[lang.Normalize()]
}

// ErrorResponse returns the generic localized error text.
func (c *Catalog) ErrorResponse(lang Language) string {
	return errorResponses[lang.Normalize()]
}

// NotUnderstood returns the localized fallback text.
func (c *Catalog) NotUnderstood(lang Language) string {
	return notUnderstoodResponses[lang.Normalize()]
}

// DynamicResponse renders the dynamic template for (intent, language),
// replacing each {key} slot with its substitution. Missing pairs fall
// back to the not-understood text.
func (c *Catalog) DynamicResponse(intent Intent, lang Language, substitutions map[string]string) string {
	lang = lang.Normalize()
	byLang, ok := dynamicTemplates[intent]
	if !ok {
		return notUnderstoodResponses[lang]
	}
	template, ok := byLang[lang]
	if !ok {
		return notUnderstoodResponses[lang]
	}
	for key, value := range substitutions {
		template = strings.ReplaceAll(template, "{"+key+"}", value)
	}
	return template
}

// DynamicIntro returns the intro line of a structured dynamic response.
func (c *Catalog) DynamicIntro(intent Intent, lang Language) string {
	lang = lang.Normalize()
	if byLang, ok := dynamicIntros[intent]; ok {
		return byLang[lang]
	}
	return notUnderstoodResponses[lang]
}

// DynamicOutro returns the outro line of a structured dynamic response.
func (c *Catalog) DynamicOutro(intent Intent, lang Language) string {
	lang = lang.Normalize()
	if byLang, ok := dynamicOutros[intent]; ok {
		return byLang[lang]
	}
	return notUnderstoodResponses[lang]
}

// EmotionFor maps an ordinal star label to its emotion level,
// defaulting to neutral for unknown labels.
func EmotionFor(sentimentLabel string) EmotionLevel {
	if level, ok := emotionLevels[strings.ToLower(strings.TrimSpace(sentimentLabel))]; ok {
		return level
	}
	return EmotionNeutral
}

// EmotionalResponse wraps text with a random prefix and suffix drawn
// from the emotion level matching the sentiment label.
func (c *Catalog) EmotionalResponse(text, sentimentLabel string, lang Language) string {
	lang = lang.Normalize()
	expressions := emotionalExpressions[EmotionFor(sentimentLabel)][lang]
	prefix := c.pick(expressions.prefixes)
	suffix := c.pick(expressions.suffixes)
	return prefix + text + suffix
}
