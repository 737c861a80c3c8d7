// Package reproto is the in-core back end: it renders a translated
// declaration set back out as reproto source text, the form every other
// back end's flavor started from. Round-tripping through this back end is
// what spec.md §8's "parse . lower . render is a fixed point up to
// formatting" property exercises.
package reproto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/reproto/reproto/ir"
)

// RenderFile renders every declaration in decls, in order, as reproto
// source text.
func RenderFile(decls []ir.Decl) string {
	var sb strings.Builder

	for i, d := range decls {
		if i > 0 {
			sb.WriteString("\n")
		}

		renderDecl(&sb, d, 0)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Compile renders decls and writes them to <root>/<package-parts>[-version].reproto
// on fs, creating parent directories as needed — the Go-idiomatic analogue
// of the teacher's Handle-based file emission.
func Compile(fs afero.Fs, root string, pkg ir.VersionedPackage, decls []ir.Decl) error {
	dir := root
	parts := pkg.Package.Parts

	if len(parts) > 1 {
		dir = joinPath(root, parts[:len(parts)-1]...)
	}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	stem := "index"
	if len(parts) > 0 {
		stem = parts[len(parts)-1]
	}

	filename := stem + ".reproto"
	if !pkg.Version.IsZero() {
		filename = fmt.Sprintf("%s-%s.reproto", stem, pkg.Version.String())
	}

	path := joinPath(dir, filename)

	f, err := fs.Create(path)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = f.WriteString(RenderFile(decls))

	return err
}

func joinPath(root string, parts ...string) string {
	all := append([]string{root}, parts...)
	return strings.Join(all, "/")
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func renderComment(sb *strings.Builder, comment []string, depth int) {
	for _, line := range comment {
		indent(sb, depth)

		if line == "" {
			sb.WriteString("///\n")
			continue
		}

		sb.WriteString("/// ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

func renderDecl(sb *strings.Builder, d ir.Decl, depth int) {
	switch v := d.(type) {
	case *ir.TypeDecl:
		renderType(sb, v, depth)
	case *ir.TupleDecl:
		renderTuple(sb, v, depth)
	case *ir.InterfaceDecl:
		renderInterface(sb, v, depth)
	case *ir.EnumDecl:
		renderEnum(sb, v, depth)
	case *ir.ServiceDecl:
		renderService(sb, v, depth)
	}
}

func renderType(sb *strings.Builder, d *ir.TypeDecl, depth int) {
	renderComment(sb, d.DeclComment(), depth)
	indent(sb, depth)
	fmt.Fprintf(sb, "type %s {\n", d.DeclName().Local())
	renderFields(sb, d.Fields, depth+1)
	renderInner(sb, d.Inner, depth+1)
	indent(sb, depth)
	sb.WriteString("}\n")
}

func renderTuple(sb *strings.Builder, d *ir.TupleDecl, depth int) {
	renderComment(sb, d.DeclComment(), depth)
	indent(sb, depth)
	fmt.Fprintf(sb, "tuple %s {\n", d.DeclName().Local())
	renderFields(sb, d.Fields, depth+1)
	renderInner(sb, d.Inner, depth+1)
	indent(sb, depth)
	sb.WriteString("}\n")
}

func renderInterface(sb *strings.Builder, d *ir.InterfaceDecl, depth int) {
	renderComment(sb, d.DeclComment(), depth)

	switch d.Strategy.Kind {
	case ir.StrategyUntagged:
		indent(sb, depth)
		sb.WriteString("#[type_info(strategy = \"untagged\")]\n")
	case ir.StrategyTagged:
		if d.Strategy.Tag != "type" {
			indent(sb, depth)
			fmt.Fprintf(sb, "#[type_info(strategy = \"tagged\", tag = %s)]\n", strconv.Quote(d.Strategy.Tag))
		}
	}

	indent(sb, depth)
	fmt.Fprintf(sb, "interface %s {\n", d.DeclName().Local())
	renderFields(sb, d.Fields, depth+1)

	for _, sub := range d.SubTypes {
		indent(sb, depth+1)
		sb.WriteString("type ")
		sb.WriteString(sub.DeclName().Local())

		if sub.HasWireName {
			fmt.Fprintf(sb, " as %s", strconv.Quote(sub.WireName))
		}

		sb.WriteString(" {\n")
		renderFields(sb, sub.Fields, depth+2)
		indent(sb, depth+1)
		sb.WriteString("}\n")
	}

	renderInner(sb, d.Inner, depth+1)
	indent(sb, depth)
	sb.WriteString("}\n")
}

func renderEnum(sb *strings.Builder, d *ir.EnumDecl, depth int) {
	renderComment(sb, d.DeclComment(), depth)
	indent(sb, depth)
	fmt.Fprintf(sb, "enum %s as %s {\n", d.DeclName().Local(), enumBaseName(d.Base))

	for _, v := range d.Variants {
		renderComment(sb, v.DeclComment(), depth+1)
		indent(sb, depth+1)
		fmt.Fprintf(sb, "%s = %s;\n", v.DeclName().Local(), renderValue(v.Value))
	}

	indent(sb, depth)
	sb.WriteString("}\n")
}

func enumBaseName(b ir.EnumType) string {
	if b.Kind == ir.EnumBaseString {
		return "string"
	}

	return string(b.Integer)
}

func renderService(sb *strings.Builder, d *ir.ServiceDecl, depth int) {
	renderComment(sb, d.DeclComment(), depth)
	indent(sb, depth)
	fmt.Fprintf(sb, "service %s {\n", d.DeclName().Local())

	for _, ep := range d.Endpoints {
		renderComment(sb, ep.DeclComment(), depth+1)

		if ep.HTTP != nil {
			indent(sb, depth+1)
			fmt.Fprintf(sb, "#[http(method = %s, path = %s", strconv.Quote(ep.HTTP.Method), strconv.Quote(ep.HTTP.Path.Raw))

			if ep.HTTP.Accept != "" {
				fmt.Fprintf(sb, ", accept = %s", strconv.Quote(ep.HTTP.Accept))
			}

			sb.WriteString(")]\n")
		}

		indent(sb, depth+1)
		fmt.Fprintf(sb, "%s(", ep.DeclName().Local())

		for i, a := range ep.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}

			fmt.Fprintf(sb, "%s: %s", a.Identifier, renderType_(a.Type))
		}

		sb.WriteString(")")

		if ep.Response != nil {
			sb.WriteString(" -> ")

			if ep.ResponseStreams {
				sb.WriteString("stream ")
			}

			sb.WriteString(renderType_(ep.Response))
		}

		sb.WriteString(";\n")
	}

	indent(sb, depth)
	sb.WriteString("}\n")
}

func renderFields(sb *strings.Builder, fields []ir.Field, depth int) {
	for _, f := range fields {
		renderComment(sb, f.Comment, depth)
		indent(sb, depth)
		sb.WriteString(f.Identifier)

		if !f.Required {
			sb.WriteString("?")
		}

		fmt.Fprintf(sb, ": %s", renderType_(f.Type))

		if f.HasWireAs {
			fmt.Fprintf(sb, " as %s", strconv.Quote(f.WireName))
		}

		if f.Default != nil {
			fmt.Fprintf(sb, " = %s", renderValue(f.Default))
		}

		sb.WriteString(";\n")
	}
}

func renderInner(sb *strings.Builder, inner []ir.Decl, depth int) {
	for _, d := range inner {
		renderDecl(sb, d, depth)
	}
}

func renderType_(t ir.Type) string {
	switch v := t.(type) {
	case ir.DoubleType:
		return "double"
	case ir.FloatType:
		return "float"
	case ir.IntegerType:
		return string(v.Kind)
	case ir.BooleanType:
		return "boolean"
	case ir.StringType:
		return "string"
	case ir.BytesType:
		return "bytes"
	case ir.DatetimeType:
		return "datetime"
	case ir.AnyType:
		return "any"
	case ir.ArrayType:
		return "[" + renderType_(v.Inner) + "]"
	case ir.MapType:
		return "{" + renderType_(v.Key) + ": " + renderType_(v.Value) + "}"
	case ir.NameType:
		return renderNameRef(v.Name)
	default:
		return "?"
	}
}

// renderNameRef reconstructs the dotted-path surface syntax a NameType came
// from: the use-alias prefix if one was recorded, else the bare path —
// since Name.String()'s "pkg:path" debug form isn't valid reproto source.
func renderNameRef(n ir.Name) string {
	if n.Prefix != "" {
		return n.Prefix + "." + strings.Join(n.Path, ".")
	}

	return strings.Join(n.Path, ".")
}

func renderValue(v ir.Value) string {
	switch val := v.(type) {
	case ir.StringValue:
		return strconv.Quote(val.Value)
	case ir.NumberValue:
		return val.Value.String()
	case ir.BoolValue:
		return strconv.FormatBool(val.Value)
	case ir.IdentValue:
		return val.Value
	case ir.ArrayValue:
		parts := make([]string, len(val.Values))
		for i, elem := range val.Values {
			parts[i] = renderValue(elem)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "?"
	}
}
