package ccheck

import (
	"errors"
	"fmt"
	"strings"
)

// The declaration grammar is a deliberately small subset of C declarators:
// enough for the prototypes that show up in feature checks (functions,
// pointers, arrays, struct/union/enum types, varargs), not a full C parser.
// It covers C++ declarations well enough for the same purpose.

type declTokenRole int

const (
	// roleToken is an ordinary token, kept verbatim on rewrite.
	roleToken declTokenRole = iota
	// roleName is the declared identifier, substituted on rewrite.
	roleName
	// roleParamName is a parameter name, dropped on rewrite.
	roleParamName
)

type declToken struct {
	text string
	role declTokenRole
}

var (
	declQualifiers = map[string]bool{
		"const":    true,
		"volatile": true,
	}
	declSpecifiers = map[string]bool{
		"struct":   true,
		"union":    true,
		"enum":     true,
		"signed":   true,
		"unsigned": true,
	}
)

func isDeclKeyword(tok string) bool {
	return declQualifiers[tok] || declSpecifiers[tok] || tok == "static"
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

func isIdentTok(tok string) bool {
	return tok != "" && isIdentStart(tok[0])
}

func isNumberTok(tok string) bool {
	return tok != "" && tok[0] >= '0' && tok[0] <= '9'
}

// Decl is a parsed C declaration: either a bare identifier or a full
// declarator with a type.
type Decl struct {
	// Name is the declared identifier.
	Name string
	// Identifier reports whether the declaration was a bare identifier
	// with no type or declarator around it.
	Identifier bool

	tokens []declToken
}

// ParseDecl parses a C declaration string. Accepted forms are a bare
// identifier ("environ") and a full declaration, optionally with function
// parameters or array bounds ("int mincore(void *, size_t, unsigned char *)").
func ParseDecl(src string) (*Decl, error) {
	tokens, err := lexDecl(src)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.New("empty declaration")
	}

	if len(tokens) == 1 && isIdentTok(tokens[0]) && !isDeclKeyword(tokens[0]) {
		return &Decl{
			Name:       tokens[0],
			Identifier: true,
			tokens:     []declToken{{text: tokens[0], role: roleName}},
		}, nil
	}

	p := &declParser{tokens: tokens}
	if err := p.parseType(); err != nil {
		return nil, err
	}
	name, err := p.parseDeclarator()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.tokens) {
		switch p.peek() {
		case "(":
			if err := p.parseParamSuffix(); err != nil {
				return nil, err
			}
		case "[":
			if err := p.parseArraySuffix(false); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unexpected token %q after declaration", p.peek())
		}
	}

	return &Decl{Name: name, tokens: p.out}, nil
}

// Rewrite re-emits the declaration with the declared identifier replaced by
// name and all parameter names dropped.
func (d *Decl) Rewrite(name string) string {
	parts := make([]string, 0, len(d.tokens))
	for _, t := range d.tokens {
		switch t.role {
		case roleName:
			parts = append(parts, name)
		case roleParamName:
			// dropped
		default:
			parts = append(parts, t.text)
		}
	}
	return joinCTokens(parts)
}

func (d *Decl) String() string {
	return d.Rewrite(d.Name)
}

// prototypeProbe builds a probe program that only compiles when name is
// declared in header with a type the parsed declaration can point at.
func prototypeProbe(header string, d *Decl) string {
	check := d.Rewrite("(*_)") + " = &(" + d.Name + ");"
	return strings.Join([]string{
		"#include <" + header + ">",
		"void __check(void) {",
		check,
		"}",
	}, "\n")
}

// joinCTokens concatenates tokens into compilable C, inserting a space
// after commas and between adjacent word characters (or a word character
// followed by a pointer star).
func joinCTokens(tokens []string) string {
	out := []byte{' '}
	for _, tok := range tokens {
		if len(tok) == 0 {
			continue
		}
		prev := out[len(out)-1]
		if prev == ',' || isWordByte(prev) && (isWordByte(tok[0]) || tok[0] == '*') {
			out = append(out, ' ')
		}
		out = append(out, tok...)
	}
	return strings.TrimSpace(string(out))
}

func lexDecl(src string) ([]string, error) {
	var tokens []string
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(src) && isIdentByte(src[j]) {
				j++
			}
			tokens = append(tokens, src[i:j])
			i = j
		case c >= '0' && c <= '9':
			j := i + 1
			for j < len(src) && src[j] >= '0' && src[j] <= '9' {
				j++
			}
			tokens = append(tokens, src[i:j])
			i = j
		case c == '.':
			if !strings.HasPrefix(src[i:], "...") {
				return nil, fmt.Errorf("unexpected character %q in declaration", c)
			}
			tokens = append(tokens, "...")
			i += 3
		case c == '(' || c == ')' || c == '[' || c == ']' || c == ',' || c == '*':
			tokens = append(tokens, string(c))
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q in declaration", c)
		}
	}
	return tokens, nil
}

type declParser struct {
	tokens []string
	pos    int
	out    []declToken
}

func (p *declParser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *declParser) next(role declTokenRole) string {
	tok := p.tokens[p.pos]
	p.pos++
	p.out = append(p.out, declToken{text: tok, role: role})
	return tok
}

func (p *declParser) expect(tok string) error {
	if p.peek() != tok {
		return fmt.Errorf("expected %q, got %q", tok, p.tokOrEnd())
	}
	p.next(roleToken)
	return nil
}

func (p *declParser) tokOrEnd() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return "end of declaration"
}

// identNext reports whether the next token is a plain identifier,
// excluding declaration keywords.
func (p *declParser) identNext() bool {
	tok := p.peek()
	return isIdentTok(tok) && !isDeclKeyword(tok)
}

// type: qualifier? specifier* IDENTIFIER qualifier? pointer?
func (p *declParser) parseType() error {
	if declQualifiers[p.peek()] {
		p.next(roleToken)
	}
	for declSpecifiers[p.peek()] {
		p.next(roleToken)
	}
	if !p.identNext() {
		return fmt.Errorf("expected type name, got %q", p.tokOrEnd())
	}
	p.next(roleToken)
	if declQualifiers[p.peek()] {
		p.next(roleToken)
	}
	p.parsePointer()
	return nil
}

// pointer: '*' qualifier* pointer?
func (p *declParser) parsePointer() {
	for p.peek() == "*" {
		p.next(roleToken)
		for declQualifiers[p.peek()] {
			p.next(roleToken)
		}
	}
}

// declarator: IDENTIFIER | '(' declarator ')' | pointer declarator
// followed by any number of function or array suffixes.
// Exactly one identifier anchors the chain; it is the declared name.
func (p *declParser) parseDeclarator() (string, error) {
	p.parsePointer()

	var name string
	switch {
	case p.identNext():
		name = p.next(roleName)
	case p.peek() == "(":
		p.next(roleToken)
		inner, err := p.parseDeclarator()
		if err != nil {
			return "", err
		}
		if err := p.expect(")"); err != nil {
			return "", err
		}
		name = inner
	default:
		return "", fmt.Errorf("expected declarator, got %q", p.tokOrEnd())
	}

	for {
		switch p.peek() {
		case "(":
			if err := p.parseParamSuffix(); err != nil {
				return "", err
			}
		case "[":
			if err := p.parseArraySuffix(false); err != nil {
				return "", err
			}
		default:
			return name, nil
		}
	}
}

// '(' parameter (',' parameter)* (',' '...')? ')' or '(' ')'
func (p *declParser) parseParamSuffix() error {
	p.next(roleToken) // "("
	if p.peek() == ")" {
		p.next(roleToken)
		return nil
	}
	if err := p.parseParameter(); err != nil {
		return err
	}
	for p.peek() == "," {
		p.next(roleToken)
		if p.peek() == "..." {
			p.next(roleToken)
			break
		}
		if err := p.parseParameter(); err != nil {
			return err
		}
	}
	return p.expect(")")
}

// '[' ('static')? constant_expression ']' — static only inside parameters.
func (p *declParser) parseArraySuffix(parameter bool) error {
	p.next(roleToken) // "["
	if parameter && p.peek() == "static" {
		p.next(roleToken)
	}
	switch {
	case p.identNext():
		p.next(roleToken)
	case isNumberTok(p.peek()):
		for isNumberTok(p.peek()) {
			p.next(roleToken)
		}
	default:
		return fmt.Errorf("expected constant expression, got %q", p.tokOrEnd())
	}
	return p.expect("]")
}

// parameter: type parameter_declarator, with function/array suffixes.
func (p *declParser) parseParameter() error {
	if err := p.parseType(); err != nil {
		return err
	}
	if err := p.parseParameterDeclarator(); err != nil {
		return err
	}
	for {
		switch p.peek() {
		case "(":
			if err := p.parseParamSuffix(); err != nil {
				return err
			}
		case "[":
			if err := p.parseArraySuffix(true); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// parameter_declarator: optional name, possibly parenthesized or behind
// pointers. Parameter names are marked for dropping on rewrite.
func (p *declParser) parseParameterDeclarator() error {
	p.parsePointer()
	switch {
	case p.identNext():
		p.next(roleParamName)
	case p.peek() == "(":
		p.next(roleToken)
		if err := p.parseParameterDeclarator(); err != nil {
			return err
		}
		if err := p.expect(")"); err != nil {
			return err
		}
	default:
		// anonymous parameter
		return nil
	}
	for {
		switch p.peek() {
		case "(":
			if err := p.parseParamSuffix(); err != nil {
				return err
			}
		case "[":
			if err := p.parseArraySuffix(true); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}
