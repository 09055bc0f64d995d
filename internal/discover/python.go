package discover

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// parseModule parses one Python test file and returns the leaf (function)
// items it contributes, in source order. name becomes the module item's
// display name; the module itself is reachable through the leaves' parent
// chains. A file whose parse tree contains syntax errors is rejected whole,
// matching pytest's refusal to collect a module it cannot import.
func parseModule(ctx context.Context, src []byte, name string, session *Item) ([]*Item, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("parse %s: source contains syntax errors", name)
	}

	module := NewItem(KindModule, name, docstring(root, src), "", session)
	var leaves []*Item
	collectDefinitions(root, src, module, &leaves)
	return leaves, nil
}

// collectDefinitions scans the named children of a module or class block for
// pytest-collectible definitions, appending discovered function items to
// leaves. Only top-level statements of the enclosing body are considered;
// definitions tucked inside conditionals or other functions are invisible to
// textual collection.
func collectDefinitions(body *sitter.Node, src []byte, parent *Item, leaves *[]*Item) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)

		// A decorated definition wraps the real one; the source snippet of a
		// decorated test keeps the decorators, like inspect.getsource does.
		def := child
		if child.Type() == "decorated_definition" {
			if inner := child.ChildByFieldName("definition"); inner != nil {
				def = inner
			}
		}

		switch def.Type() {
		case "function_definition":
			fname := fieldText(def, "name", src)
			if !strings.HasPrefix(fname, "test_") {
				continue
			}
			*leaves = append(*leaves, NewItem(
				KindFunction,
				fname,
				docstring(def.ChildByFieldName("body"), src),
				sourceText(child, src),
				parent,
			))

		case "class_definition":
			cname := fieldText(def, "name", src)
			classBody := def.ChildByFieldName("body")
			if !strings.HasPrefix(cname, "Test") || classBody == nil {
				continue
			}
			// pytest skips Test* classes that define __init__.
			if definesInit(classBody, src) {
				continue
			}
			class := NewItem(KindClass, cname, docstring(classBody, src), "", parent)
			collectDefinitions(classBody, src, class, leaves)
		}
	}
}

// sourceText returns the text of a definition from the start of its line to
// its end, so a method's snippet keeps the class-level indentation on every
// line, the way inspect.getsource reports it. Reindent then strips the
// common indent uniformly.
func sourceText(node *sitter.Node, src []byte) string {
	start := int(node.StartByte())
	col := int(node.StartPoint().Column)
	if col > start {
		col = start
	}
	return string(src[start-col:node.EndByte()])
}

// fieldText returns the source text of a definition's named field, or "".
func fieldText(node *sitter.Node, field string, src []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(src)
}

// definesInit reports whether a class body declares an __init__ method.
func definesInit(body *sitter.Node, src []byte) bool {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		def := body.NamedChild(i)
		if def.Type() == "decorated_definition" {
			if inner := def.ChildByFieldName("definition"); inner != nil {
				def = inner
			}
		}
		if def.Type() == "function_definition" && fieldText(def, "name", src) == "__init__" {
			return true
		}
	}
	return false
}

// docstring extracts the docstring of a module root or a definition body:
// the first statement, when it is a bare string expression. Comments are not
// statements and are skipped. The literal's quote syntax is stripped but
// escape sequences stay verbatim; rollcall never evaluates Python.
func docstring(body *sitter.Node, src []byte) string {
	if body == nil {
		return ""
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
			return ""
		}
		expr := stmt.NamedChild(0)
		if expr.Type() != "string" {
			return ""
		}
		return stringLiteral(expr.Content(src))
	}
	return ""
}

// stringLiteral strips the quote syntax from a Python string literal: an
// optional one- or two-letter prefix (r, b, u, f in either case), then a
// matching triple or single quote pair.
func stringLiteral(text string) string {
	i := 0
	for i < 2 && i < len(text) && isStringPrefixByte(text[i]) {
		i++
	}
	text = text[i:]
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if len(text) >= 2*len(q) && strings.HasPrefix(text, q) && strings.HasSuffix(text, q) {
			return text[len(q) : len(text)-len(q)]
		}
	}
	return text
}

func isStringPrefixByte(b byte) bool {
	switch b {
	case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		return true
	}
	return false
}
