// Package xmlpath reads and writes element text in XML documents addressed
// by dotted paths like "package.metadata.version". Documents are expected
// to carry at most a single default namespace; path resolution is always
// absolute from the document root.
package xmlpath

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// nsPrefix is the prefix bound to the document namespace when compiling
// path expressions.
const nsPrefix = "ns"

// MissingAncestorError reports that Set could not create a new element
// because its parent chain does not exist in the document.
type MissingAncestorError struct {
	Parent Path
}

// Error implements the error interface.
func (e *MissingAncestorError) Error() string {
	return fmt.Sprintf("missing ancestor element %q", e.Parent.String())
}

// Get returns the text content of the element at the given path.
// The second return value reports whether the element exists; a missing
// element is a normal negative result, never an error.
//
// If nsOverride is empty, the document root element's namespace is used for
// every path segment.
func Get(doc *xmlquery.Node, p Path, nsOverride string) (string, bool) {
	node := resolve(doc, p, namespaceFor(doc, nsOverride))
	if node == nil {
		return "", false
	}
	return node.InnerText(), true
}

// Set writes text into the element at the given path, overwriting in place
// when the element exists (its position and attributes are preserved).
//
// When the element does not exist, a single new element named after the
// leaf segment is created in the document namespace and appended as the
// last child of the resolved parent path. Set never creates more than one
// level of missing structure: if the parent chain itself cannot be
// resolved, it fails with a MissingAncestorError naming the parent path.
func Set(doc *xmlquery.Node, p Path, text, nsOverride string) error {
	ns := namespaceFor(doc, nsOverride)

	if node := resolve(doc, p, ns); node != nil {
		setText(node, text)
		return nil
	}

	parent := p.Parent()
	var parentNode *xmlquery.Node
	if parent.Len() > 0 {
		parentNode = resolve(doc, parent, ns)
	}
	if parentNode == nil {
		return &MissingAncestorError{Parent: parent}
	}

	el := &xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         p.Leaf(),
		NamespaceURI: ns,
	}
	xmlquery.AddChild(el, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
	xmlquery.AddChild(parentNode, el)
	return nil
}

// namespaceFor returns the namespace to bind for path resolution: the
// override when given, otherwise the root element's namespace URI.
func namespaceFor(doc *xmlquery.Node, override string) string {
	if override != "" {
		return override
	}
	if root := rootElement(doc); root != nil {
		return root.NamespaceURI
	}
	return ""
}

// rootElement returns the document's root element node, or nil.
func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// resolve locates the element at the path, or nil when absent.
func resolve(doc *xmlquery.Node, p Path, ns string) *xmlquery.Node {
	var (
		expr *xpath.Expr
		err  error
	)
	if ns != "" {
		expr, err = xpath.CompileWithNS(p.expr(true), map[string]string{nsPrefix: ns})
	} else {
		expr, err = xpath.Compile(p.expr(false))
	}
	if err != nil {
		// A segment that is not a valid XPath name can never match.
		return nil
	}
	return xmlquery.QuerySelector(doc, expr)
}

// setText replaces the node's children with a single text node. Attributes
// are untouched.
func setText(n *xmlquery.Node, text string) {
	t := &xmlquery.Node{Type: xmlquery.TextNode, Data: text, Parent: n}
	n.FirstChild = t
	n.LastChild = t
}
