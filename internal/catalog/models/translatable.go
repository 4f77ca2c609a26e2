package models

import "registrar/internal/translation/overlay"

// The pointer receivers below let the overlay applier rewrite display fields
// in place after a read.

func (f *Faculty) TranslationKind() string { return KindFaculty }
func (f *Faculty) TranslationID() string   { return f.ID.String() }

func (f *Faculty) ApplyTranslations(fields map[string]string) {
	if v, ok := fields["title"]; ok {
		f.Title = v
	}
	if v, ok := fields["description"]; ok {
		f.Description = v
	}
}

func (f *Faculty) RelatedTranslatable(string) overlay.Entity { return nil }

func (p *Program) TranslationKind() string { return KindProgram }
func (p *Program) TranslationID() string   { return p.ID.String() }

func (p *Program) ApplyTranslations(fields map[string]string) {
	if v, ok := fields["title"]; ok {
		p.Title = v
	}
}

func (p *Program) RelatedTranslatable(string) overlay.Entity { return nil }

func (s *Subject) TranslationKind() string { return KindSubject }
func (s *Subject) TranslationID() string   { return s.ID.String() }

func (s *Subject) ApplyTranslations(fields map[string]string) {
	if v, ok := fields["title"]; ok {
		s.Title = v
	}
	if v, ok := fields["description"]; ok {
		s.Description = v
	}
}

func (s *Subject) RelatedTranslatable(name string) overlay.Entity {
	if name == "faculty" && s.Faculty != nil {
		return s.Faculty
	}
	return nil
}

func (c *Class) TranslationKind() string { return KindClass }
func (c *Class) TranslationID() string   { return c.ID.String() }

func (c *Class) ApplyTranslations(fields map[string]string) {
	if v, ok := fields["title"]; ok {
		c.Title = v
	}
}

func (c *Class) RelatedTranslatable(string) overlay.Entity { return nil }
