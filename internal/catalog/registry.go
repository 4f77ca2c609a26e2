// Package catalog wires the enrollment domain to the translation overlay.
package catalog

import (
	"registrar/internal/catalog/models"
	"registrar/internal/translation/overlay"
)

// NewOverlayRegistry declares which display fields of each domain entity are
// translatable and which relations the applier should descend into. Fields
// absent from a rule are never overwritten, whatever the store returns.
func NewOverlayRegistry() *overlay.Registry {
	r := overlay.NewRegistry()
	r.Register(models.KindFaculty, overlay.Rule{Fields: []string{"title", "description"}})
	r.Register(models.KindProgram, overlay.Rule{Fields: []string{"title"}})
	r.Register(models.KindSubject, overlay.Rule{
		Fields:    []string{"title", "description"},
		Relations: []string{"faculty"},
	})
	r.Register(models.KindClass, overlay.Rule{Fields: []string{"title"}})
	return r
}
