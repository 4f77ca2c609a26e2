// Package overlay re-applies stored translations onto freshly fetched
// entities at read time. Entities know nothing about localization beyond
// implementing the Entity interface; which fields and relations are
// translatable is declared once in a Registry at startup.
package overlay

// Entity is implemented by domain types that can receive translated values.
type Entity interface {
	// TranslationKind returns the entity-type tag used in translation rows.
	TranslationKind() string
	// TranslationID returns the identifier used in translation rows.
	TranslationID() string
	// ApplyTranslations merges translated values onto the entity's fields.
	// Unknown field names must be ignored.
	ApplyTranslations(values map[string]string)
	// RelatedTranslatable returns the named embedded relation, or nil when
	// the relation is absent on this instance.
	RelatedTranslatable(name string) Entity
}

// Rule declares the translatable surface of one entity kind.
type Rule struct {
	// Fields are the attribute names eligible for overlay. Stored rows for
	// other fields are dropped rather than applied.
	Fields []string
	// Relations names embedded related objects that carry their own
	// translations (e.g. a subject's faculty).
	Relations []string
}

// Registry maps entity-type tags to their overlay rules. Built once at
// startup; not safe for concurrent mutation afterwards.
type Registry struct {
	rules map[string]Rule
}

func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register declares the rule for one entity kind, replacing any previous rule.
func (r *Registry) Register(kind string, rule Rule) {
	r.rules[kind] = rule
}

// Rule returns the rule for kind and whether one was registered.
func (r *Registry) Rule(kind string) (Rule, bool) {
	rule, ok := r.rules[kind]
	return rule, ok
}

func (r Rule) allowsField(field string) bool {
	for _, f := range r.Fields {
		if f == field {
			return true
		}
	}
	return false
}
