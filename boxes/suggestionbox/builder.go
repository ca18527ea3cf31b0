package suggestionbox

// DefaultModelName is the name NewModel starts with.
const DefaultModelName = "default"

// ModelBuilder builds a Model fluently.
//
//	model := suggestionbox.NewModel().
//	    Named("My model").
//	    ID("model1").
//	    Choice("article1", suggestionbox.Text("title", "Machine Box releases new product")).
//	    Finish()
type ModelBuilder struct {
	model Model
}

// NewModel starts a model named DefaultModelName with no ID, so the box
// assigns one.
func NewModel() *ModelBuilder {
	return &ModelBuilder{model: Model{Name: DefaultModelName}}
}

// Named sets the model name.
func (b *ModelBuilder) Named(name string) *ModelBuilder {
	b.model.Name = name
	return b
}

// ID sets the model ID.
func (b *ModelBuilder) ID(id string) *ModelBuilder {
	b.model.ID = id
	return b
}

// Choice adds a choice described by features.
func (b *ModelBuilder) Choice(id string, features ...Feature) *ModelBuilder {
	b.model.Choices = append(b.model.Choices, Choice{ID: id, Features: features})
	return b
}

// Options sets the model options.
func (b *ModelBuilder) Options(opts ModelOptions) *ModelBuilder {
	b.model.Options = &opts
	return b
}

// Finish returns the built model. The builder may keep being used; later
// changes do not affect models already returned.
func (b *ModelBuilder) Finish() Model {
	m := b.model
	m.Choices = append([]Choice(nil), b.model.Choices...)
	if b.model.Options != nil {
		opts := *b.model.Options
		m.Options = &opts
	}
	return m
}
