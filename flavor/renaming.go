package flavor

import (
	"github.com/reproto/reproto/ir"
	"github.com/reproto/reproto/manifest"
)

// RenamingTranslator wraps another FlavorTranslator, additionally rewriting
// every declaration's own local identifier — and every field's identifier
// — through the manifest's id_converter convention (spec.md §6) before the
// wrapped translator ever sees it. Embedding FlavorTranslator means every
// hook this type doesn't override is promoted straight through to the
// embedded translator.
type RenamingTranslator struct {
	FlavorTranslator

	Source manifest.SourceCase
	Target manifest.Convention
}

func (r RenamingTranslator) TranslateLocalName(ctx *Context, reg ir.Registration, name ir.Name) (ir.Name, error) {
	translated, err := r.FlavorTranslator.TranslateLocalName(ctx, reg, name)
	if err != nil {
		return ir.Name{}, err
	}

	if len(translated.Path) == 0 {
		return translated, nil
	}

	last := len(translated.Path) - 1
	newPath := append([]string(nil), translated.Path...)
	newPath[last] = manifest.ConvertIdent(newPath[last], r.Source, r.Target)

	return ir.Name{Package: translated.Package, Prefix: translated.Prefix, Path: newPath}, nil
}

func (r RenamingTranslator) TranslateField(ctx *Context, field ir.Field) (ir.Field, error) {
	translated, err := r.FlavorTranslator.TranslateField(ctx, field)
	if err != nil {
		return ir.Field{}, err
	}

	translated.Identifier = manifest.ConvertIdent(translated.Identifier, r.Source, r.Target)

	return translated, nil
}
