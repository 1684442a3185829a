// Package yaml turns yaml.v3 node trees into the engine's token model, so
// YAML documents share key ordering and duplicate-key enforcement with JSON.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/ontic/internal/engine"
)

type source struct {
	toks []eng.Token
	pos  int

	// alias expansion accounting, mirroring yaml.v3's decoder limits
	walked     int
	aliased    int
	aliasDepth int
	expanding  map[*yaml.Node]bool
}

// allowedAliasRatio is the share of walked nodes that may come from alias
// expansion before the document is rejected. Same curve as yaml.v3.
func allowedAliasRatio(walked int) float64 {
	switch {
	case walked <= 400000:
		return 0.99
	case walked >= 4000000:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(walked-400000)/3600000)
	}
}

func parseError(format string, a ...any) error {
	return eng.IssueError{SimpleIssue: eng.SimpleIssue{Code: "parse_error", Path: "/", Message: fmt.Sprintf(format, a...)}}
}

// NewNode flattens a node tree into an engine.TokenSource.
func NewNode(n *yaml.Node) (eng.TokenSource, error) {
	s := &source{}
	if err := s.walk(n); err != nil {
		return nil, err
	}
	return s, nil
}

// NewBytes parses the first YAML document of b.
func NewBytes(b []byte) (eng.TokenSource, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(b)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("yaml: empty document")
		}
		return nil, err
	}
	return NewNode(&doc)
}

// Decode reads the first YAML document of b into an ordered value tree.
func Decode(b []byte, opt eng.EnforceOptions) (any, error) {
	src, err := NewBytes(b)
	if err != nil {
		return nil, err
	}
	return eng.DecodeTree(eng.WrapWithEnforcement(src, opt))
}

func (s *source) NextToken() (eng.Token, error) {
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *source) Location() int64 { return -1 }

func (s *source) emit(t eng.Token) { s.toks = append(s.toks, t) }

func (s *source) walk(n *yaml.Node) error {
	s.walked++
	if s.aliasDepth > 0 {
		s.aliased++
	}
	if s.aliased > 100 && s.walked > 1000 && float64(s.aliased)/float64(s.walked) > allowedAliasRatio(s.walked) {
		return parseError("yaml: document contains excessive aliasing")
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			s.emit(eng.Token{Kind: eng.KindNull, Offset: -1})
			return nil
		}
		return s.walk(n.Content[0])
	case yaml.AliasNode:
		if s.expanding[n.Alias] {
			return parseError("yaml: anchor %q value contains itself", n.Value)
		}
		if s.expanding == nil {
			s.expanding = make(map[*yaml.Node]bool)
		}
		s.expanding[n.Alias] = true
		s.aliasDepth++
		err := s.walk(n.Alias)
		s.aliasDepth--
		delete(s.expanding, n.Alias)
		return err
	case yaml.MappingNode:
		s.emit(eng.Token{Kind: eng.KindBeginObject, Offset: -1})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("yaml: line %d: mapping keys must be scalars", k.Line)
			}
			s.emit(eng.Token{Kind: eng.KindKey, String: k.Value, Offset: -1})
			if err := s.walk(n.Content[i+1]); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndObject, Offset: -1})
	case yaml.SequenceNode:
		s.emit(eng.Token{Kind: eng.KindBeginArray, Offset: -1})
		for _, c := range n.Content {
			if err := s.walk(c); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndArray, Offset: -1})
	case yaml.ScalarNode:
		return s.scalar(n)
	default:
		return fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
	}
	return nil
}

func (s *source) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		s.emit(eng.Token{Kind: eng.KindNull, Offset: -1})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		s.emit(eng.Token{Kind: eng.KindBool, Bool: b, Offset: -1})
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return err
		}
		s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10), Offset: -1})
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		s.emit(eng.Token{Kind: eng.KindNumber, Number: eng.FormatFloat(f), Offset: -1})
	default:
		s.emit(eng.Token{Kind: eng.KindString, String: n.Value, Offset: -1})
	}
	return nil
}
