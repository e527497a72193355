package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/akmonengine/brushbsp/geom"
)

type parser struct {
	src    []rune
	cursor int
	line   int
}

// Parse reads a whole map from r.
func Parse(r io.Reader) (*Map, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	return ParseString(string(data))
}

// ParseString reads a whole map from source.
func ParseString(source string) (*Map, error) {
	p := &parser{src: []rune(source), line: 1}
	return p.parse()
}

func (p *parser) parse() (*Map, error) {
	m := &Map{}
	for {
		p.skip()
		c, ok := p.peek()
		if !ok {
			return m, nil
		}
		if c != '{' {
			return nil, p.errorf("expected entity start, found %q", c)
		}
		ent, err := p.entity()
		if err != nil {
			return nil, err
		}
		m.Entities = append(m.Entities, ent)
	}
}

func (p *parser) entity() (Entity, error) {
	ent := Entity{Properties: make(map[string]string), Line: p.line}
	if err := p.expect('{'); err != nil {
		return ent, err
	}

	for {
		p.skip()
		c, ok := p.peek()
		switch {
		case !ok:
			return ent, p.errorf("unexpected end of file in entity started on line %d", ent.Line)
		case c == '}':
			p.advance()
			return ent, nil
		case c == '{':
			b, err := p.brush()
			if err != nil {
				return ent, err
			}
			ent.Brushes = append(ent.Brushes, b)
		case c == '"':
			key, err := p.quoted()
			if err != nil {
				return ent, err
			}
			value, err := p.quoted()
			if err != nil {
				return ent, err
			}
			ent.Properties[key] = value
		default:
			return ent, p.errorf("expected pair or brush start, found %q", c)
		}
	}
}

func (p *parser) brush() (BrushDef, error) {
	b := BrushDef{Line: p.line}
	if err := p.expect('{'); err != nil {
		return b, err
	}

	for {
		p.skip()
		c, ok := p.peek()
		if !ok {
			return b, p.errorf("unexpected end of file in brush started on line %d", b.Line)
		}
		if c == '}' {
			p.advance()
			break
		}
		plane, err := p.plane()
		if err != nil {
			return b, err
		}
		b.Planes = append(b.Planes, plane)
	}

	if len(b.Planes) == 0 {
		return b, ParseError{Line: b.Line, Message: "brush has no planes"}
	}
	return b, nil
}

func (p *parser) plane() (PlaneDef, error) {
	var (
		def PlaneDef
		err error
	)
	p.skip()
	def.Line = p.line

	for i := range def.Points {
		if def.Points[i], err = p.point(); err != nil {
			return def, err
		}
	}
	if def.Texture, err = p.word(); err != nil {
		return def, err
	}
	for _, f := range []*float64{&def.OffsetX, &def.OffsetY, &def.Rotation, &def.ScaleX, &def.ScaleY} {
		if *f, err = p.float(); err != nil {
			return def, err
		}
	}
	return def, nil
}

func (p *parser) point() (geom.Point, error) {
	var pt geom.Point
	if err := p.expect('('); err != nil {
		return pt, err
	}
	for i := range pt {
		v, err := p.float()
		if err != nil {
			return pt, err
		}
		pt[i] = v
	}
	return pt, p.expect(')')
}

func (p *parser) float() (float64, error) {
	p.skip()
	var buf strings.Builder
	for {
		c, ok := p.peek()
		if !ok || !(c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' || unicode.IsDigit(c)) {
			break
		}
		buf.WriteRune(c)
		p.advance()
	}

	v, err := strconv.ParseFloat(buf.String(), 64)
	if err != nil {
		if buf.Len() == 0 {
			c, _ := p.peek()
			return 0, p.errorf("expected number, found %q", c)
		}
		return 0, p.errorf("failed to parse %q", buf.String())
	}
	return v, nil
}

// word reads a texture name: any run of non-space characters that does not
// start a point.
func (p *parser) word() (string, error) {
	p.skip()
	var buf strings.Builder
	for {
		c, ok := p.peek()
		if !ok || unicode.IsSpace(c) || c == '(' || c == ')' || c == '{' || c == '}' || c == '"' {
			break
		}
		buf.WriteRune(c)
		p.advance()
	}
	if buf.Len() == 0 {
		return "", p.errorf("expected texture name")
	}
	return buf.String(), nil
}

func (p *parser) quoted() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	start := p.line
	var buf strings.Builder
	for {
		c, ok := p.peek()
		if !ok {
			return "", ParseError{Line: start, Message: "unterminated string"}
		}
		p.advance()
		if c == '"' {
			return buf.String(), nil
		}
		buf.WriteRune(c)
	}
}

func (p *parser) expect(want rune) error {
	p.skip()
	c, ok := p.peek()
	if !ok {
		return p.errorf("expected %q, found end of file", want)
	}
	if c != want {
		return p.errorf("expected %q, found %q", want, c)
	}
	p.advance()
	return nil
}

// skip moves past whitespace and // comments.
func (p *parser) skip() {
	for {
		c, ok := p.peek()
		if !ok {
			return
		}
		if unicode.IsSpace(c) || unicode.IsControl(c) {
			p.advance()
			continue
		}
		if c == '/' && p.cursor+1 < len(p.src) && p.src[p.cursor+1] == '/' {
			for {
				c, ok := p.peek()
				if !ok || c == '\n' {
					break
				}
				p.advance()
			}
			continue
		}
		return
	}
}

func (p *parser) peek() (rune, bool) {
	if p.cursor >= len(p.src) {
		return 0, false
	}
	return p.src[p.cursor], true
}

func (p *parser) advance() {
	if p.cursor < len(p.src) && p.src[p.cursor] == '\n' {
		p.line++
	}
	p.cursor++
}

func (p *parser) errorf(format string, args ...any) error {
	return ParseError{Line: p.line, Message: fmt.Sprintf(format, args...)}
}
