package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when no content exists for a slug.
var ErrNotFound = errors.New("content: not found")

// ErrMalformed is returned when a content file exists but cannot be decoded.
// Callers treat it like a miss; the store logs the detail.
var ErrMalformed = errors.New("content: malformed")

// Kind identifies the structured content variants.
type Kind string

const (
	KindNumberLesson Kind = "number-lesson"
	KindVocabulary   Kind = "vocabulary"
	KindLesson       Kind = "lesson"
	KindArticle      Kind = "article"
	KindExercise     Kind = "exercise"
)

// Item is one structured content document keyed by slug.
type Item struct {
	ID       string
	Slug     string
	Title    string
	Kind     Kind
	Data     Data
	Metadata *Metadata
}

// Metadata carries optional authoring info.
type Metadata struct {
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

// Data is the closed union of lesson payloads. The concrete types are
// NumberLesson, Vocabulary, Lesson, Exercise, and Unknown for anything
// outside the known set.
type Data interface {
	Kind() Kind
}

// NumberLesson holds counting tables grouped into ranges.
type NumberLesson struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Range       string          `json:"range,omitempty"`
	Sections    []NumberSection `json:"sections"`
}

func (NumberLesson) Kind() Kind { return KindNumberLesson }

// NumberSection is one range of entries within a number lesson.
// Entry values follow the language's counting order; the order of the
// slice is the rendering order.
type NumberSection struct {
	Title   string        `json:"title"`
	Range   string        `json:"range,omitempty"`
	Numbers []NumberEntry `json:"numbers"`
}

// NumberEntry is a single numeral with its Kifuliiru form.
type NumberEntry struct {
	Value         int    `json:"value"`
	Kifuliiru     string `json:"kifuliiru"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Vocabulary is an ordered word list with translations.
type Vocabulary struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Words       []VocabularyEntry `json:"words"`
}

func (Vocabulary) Kind() Kind { return KindVocabulary }

// VocabularyEntry is one dictionary entry. Kifuliiru is always present;
// translation fields are optional.
type VocabularyEntry struct {
	Kifuliiru     string `json:"kifuliiru"`
	English       string `json:"english,omitempty"`
	French        string `json:"french,omitempty"`
	Swahili       string `json:"swahili,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Category      string `json:"category,omitempty"`
	Example       string `json:"example,omitempty"`
}

// Lesson is a block-sequence document. Articles share the same shape;
// Variant records which of the two tags the file carried.
type Lesson struct {
	Variant     Kind        `json:"-"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Blocks      []TextBlock `json:"blocks"`
}

func (l Lesson) Kind() Kind {
	if l.Variant == KindArticle {
		return KindArticle
	}
	return KindLesson
}

// Block type tags.
const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
	BlockList      = "list"
	BlockQuote     = "quote"
	BlockImage     = "image"
)

// TextBlock is one unit of a lesson/article document. Type selects which
// fields are meaningful; slice order is the document's rendering order.
type TextBlock struct {
	Type  string   `json:"type"`
	Level int      `json:"level,omitempty"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
	Src   string   `json:"src,omitempty"`
	Alt   string   `json:"alt,omitempty"`
}

// Exercise is schema-complete but has no renderer yet.
type Exercise struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Questions   []ExerciseQuestion `json:"questions"`
}

func (Exercise) Kind() Kind { return KindExercise }

// ExerciseQuestion is one quiz entry. CorrectAnswer stays untyped because
// authored files mix option indexes and literal answers.
type ExerciseQuestion struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer any      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Unknown preserves the tag of a payload outside the known union so the
// renderer can name it in its "not supported" notice.
type Unknown struct {
	Type string
}

func (Unknown) Kind() Kind { return Kind("") }

// dataEnvelope is the wire shape of an Item.
type dataEnvelope struct {
	ID       string          `json:"id"`
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Kind     string          `json:"contentType"`
	Data     json.RawMessage `json:"data"`
	Metadata *Metadata       `json:"metadata,omitempty"`
}

// UnmarshalJSON decodes the envelope and then the tagged data payload.
func (it *Item) UnmarshalJSON(raw []byte) error {
	var env dataEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	data, err := DecodeData(env.Data, env.Kind)
	if err != nil {
		return err
	}
	it.ID = env.ID
	it.Slug = env.Slug
	it.Title = env.Title
	it.Kind = Kind(env.Kind)
	it.Data = data
	it.Metadata = env.Metadata
	return nil
}

// MarshalJSON writes the envelope back out, re-tagging the data payload.
func (it Item) MarshalJSON() ([]byte, error) {
	data, err := encodeData(it.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dataEnvelope{
		ID:       it.ID,
		Slug:     it.Slug,
		Title:    it.Title,
		Kind:     string(it.Kind),
		Data:     data,
		Metadata: it.Metadata,
	})
}

// DecodeData decodes a tagged payload. The discriminator is the payload's
// own "type" field, falling back to the envelope's contentType when the
// payload omits it. Payloads with an unrecognized tag decode to Unknown
// rather than failing: schema drift renders as a notice, not an error.
func DecodeData(raw json.RawMessage, fallbackKind string) (Data, error) {
	if len(raw) == 0 {
		return Unknown{Type: fallbackKind}, nil
	}
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}
	kind := strings.TrimSpace(tag.Type)
	if kind == "" {
		kind = strings.TrimSpace(fallbackKind)
	}

	switch Kind(kind) {
	case KindNumberLesson:
		var d NumberLesson
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindVocabulary:
		var d Vocabulary
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		if err := validateVocabulary(d); err != nil {
			return nil, err
		}
		return d, nil
	case KindLesson, KindArticle:
		var d Lesson
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		d.Variant = Kind(kind)
		return d, nil
	case KindExercise:
		var d Exercise
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	default:
		return Unknown{Type: kind}, nil
	}
}

func encodeData(d Data) (json.RawMessage, error) {
	if d == nil {
		return json.RawMessage("null"), nil
	}
	type tagged struct {
		Type string `json:"type"`
	}
	body, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	kind := string(d.Kind())
	if u, ok := d.(Unknown); ok {
		kind = u.Type
		body = []byte("{}")
	}
	// splice the tag back in front of the payload fields
	tag, err := json.Marshal(tagged{Type: kind})
	if err != nil {
		return nil, err
	}
	if string(body) == "{}" {
		return tag, nil
	}
	merged := append([]byte(nil), tag[:len(tag)-1]...)
	merged = append(merged, ',')
	merged = append(merged, body[1:]...)
	return merged, nil
}

// validateVocabulary enforces the one hard schema invariant: every entry
// carries a Kifuliiru form. Missing translations are allowed.
func validateVocabulary(v Vocabulary) error {
	for i, w := range v.Words {
		if strings.TrimSpace(w.Kifuliiru) == "" {
			return fmt.Errorf("vocabulary entry %d: missing kifuliiru form", i)
		}
	}
	return nil
}
