package textbox

// EntityType tags an entity. The box may report types beyond the constants
// below; any string decodes.
type EntityType string

// Entity types reported by textbox.
const (
	EntityMoney  EntityType = "money"
	EntityDate   EntityType = "date"
	EntityTime   EntityType = "time"
	EntityPerson EntityType = "person"
	EntityPlace  EntityType = "place"
	EntityURL    EntityType = "url"
	EntityEmail  EntityType = "email"
	EntityNumber EntityType = "number"
)

// Analysis is the result of Check.
type Analysis struct {
	Sentences []Sentence `json:"sentences" validate:"required,dive"`
	Keywords  []Keyword  `json:"keywords" validate:"dive"`
}

// Sentence is one sentence found in the text. Start and End are byte
// offsets into the checked text. Sentiment runs from 0 (negative) to 1
// (positive).
type Sentence struct {
	Text      string   `json:"text"`
	Start     int      `json:"start"`
	End       int      `json:"end"`
	Sentiment float64  `json:"sentiment" validate:"min=0,max=1"`
	Entities  []Entity `json:"entities" validate:"dive"`
}

// Entity is a typed span recognised within a sentence.
type Entity struct {
	Type       EntityType `json:"type" validate:"required"`
	Text       string     `json:"text" validate:"required"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
	Confidence *float64   `json:"confidence,omitempty" validate:"omitempty,min=0,max=1"` // nil when not reported
}

// Keyword is a notable token found in the text.
type Keyword struct {
	Keyword string `json:"keyword" validate:"required"`
}

// Entities returns every entity of type t across all sentences, in order.
func (a *Analysis) Entities(t EntityType) []Entity {
	var out []Entity
	for _, s := range a.Sentences {
		for _, e := range s.Entities {
			if e.Type == t {
				out = append(out, e)
			}
		}
	}
	return out
}
