// Package astview projects a parsed request onto a shape-core AST, the
// same ObjectNode/LiteralNode/ArrayDataNode shape the wider shape-core
// tooling (schema validation, diffing, pretty-printing) already knows how
// to walk. It sits above reqline and headers, collecting their callback
// output into a plain Request value before projecting it.
package astview

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/zc-http1/reqline"
)

var zeroPos = ast.Position{}

// Header is one collected "Name: Value" pair.
type Header struct {
	Key, Value string
}

// Request is a fully materialised view of a parsed request: every field is
// an owned copy, safe to retain past the callbacks that produced it.
type Request struct {
	Method       string
	CustomMethod string
	Path         string
	Query        string
	PathEncoded  bool
	Version      string
	Headers      []Header
	Body         []byte
}

// Collector implements both reqline.Handler and headers.Handler, copying
// each callback's borrowed views into an owned Request as it goes. Use one
// Collector per request.
type Collector struct {
	req Request
}

// OnStartLine implements reqline.Handler.
func (c *Collector) OnStartLine(line reqline.StartLine) error {
	if line.Method == reqline.MethodCustom {
		c.req.Method = "CUSTOM"
		c.req.CustomMethod = string(line.CustomMethod)
	} else {
		c.req.Method = line.Method.String()
	}
	c.req.Path = string(line.Path)
	c.req.Query = string(line.Query)
	c.req.PathEncoded = line.PathEncoded
	c.req.Version = line.Version.String()
	return nil
}

// OnHeader implements headers.Handler.
func (c *Collector) OnHeader(name, value []byte) error {
	c.req.Headers = append(c.req.Headers, Header{Key: string(name), Value: string(value)})
	return nil
}

// SetBody attaches a copy of body to the collected request.
func (c *Collector) SetBody(body []byte) {
	if body == nil {
		c.req.Body = nil
		return
	}
	c.req.Body = append(make([]byte, 0, len(body)), body...)
}

// Request returns the request collected so far.
func (c *Collector) Request() Request {
	return c.req
}

// ToNode projects a Request onto a shape-core AST ObjectNode:
//
//	{ "type": "request", "method": "...", "path": "...", "query": "...",
//	  "pathEncoded": bool, "version": "...",
//	  "headers": [{"key": "...", "value": "..."}, ...], "body": "..." }
//
// "query" is omitted when req.Query is empty, and "body" is omitted when
// req.Body is nil.
func ToNode(req Request) ast.SchemaNode {
	method := req.Method
	if req.Method == "CUSTOM" {
		method = req.CustomMethod
	}
	props := map[string]ast.SchemaNode{
		"type":        ast.NewLiteralNode("request", zeroPos),
		"method":      ast.NewLiteralNode(method, zeroPos),
		"path":        ast.NewLiteralNode(req.Path, zeroPos),
		"version":     ast.NewLiteralNode(req.Version, zeroPos),
		"pathEncoded": ast.NewLiteralNode(req.PathEncoded, zeroPos),
		"headers":     headersToNode(req.Headers),
	}
	if req.Query != "" {
		props["query"] = ast.NewLiteralNode(req.Query, zeroPos)
	}
	if req.Body != nil {
		props["body"] = ast.NewLiteralNode(string(req.Body), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

func headersToNode(hdrs []Header) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(hdrs))
	for i, h := range hdrs {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"key":   ast.NewLiteralNode(h.Key, zeroPos),
			"value": ast.NewLiteralNode(h.Value, zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

// NodeToRequest converts an AST ObjectNode produced by ToNode back into a
// Request.
func NodeToRequest(node ast.SchemaNode) (Request, error) {
	var req Request
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return req, fmt.Errorf("astview: expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	if v, ok := props["method"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			req.Method, _ = lit.Value().(string)
		}
	}
	if v, ok := props["path"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			req.Path, _ = lit.Value().(string)
		}
	}
	if v, ok := props["query"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			req.Query, _ = lit.Value().(string)
		}
	}
	if v, ok := props["pathEncoded"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			req.PathEncoded, _ = lit.Value().(bool)
		}
	}
	if v, ok := props["version"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			req.Version, _ = lit.Value().(string)
		}
	}
	if v, ok := props["headers"]; ok {
		hdrs, err := nodeToHeaders(v)
		if err != nil {
			return req, err
		}
		req.Headers = hdrs
	}
	if v, ok := props["body"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			if s, ok := lit.Value().(string); ok {
				req.Body = []byte(s)
			}
		}
	}
	return req, nil
}

func nodeToHeaders(node ast.SchemaNode) ([]Header, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("astview: expected ArrayDataNode for headers, got %T", node)
	}
	elements := arr.Elements()
	hdrs := make([]Header, 0, len(elements))
	for _, elem := range elements {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			continue
		}
		props := obj.Properties()
		var h Header
		if v, ok := props["key"]; ok {
			if lit, ok := v.(*ast.LiteralNode); ok {
				h.Key, _ = lit.Value().(string)
			}
		}
		if v, ok := props["value"]; ok {
			if lit, ok := v.(*ast.LiteralNode); ok {
				h.Value, _ = lit.Value().(string)
			}
		}
		hdrs = append(hdrs, h)
	}
	return hdrs, nil
}
