package compiler

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/aretw0/pulsenet/pkg/domain"
)

const arrow = "->"

// Parser converts wiring text into component definitions.
// Ids are interned so every reference to the same component shares storage.
type Parser struct {
	ids map[string]domain.ID
}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{ids: make(map[string]domain.ID)}
}

// Parse reads one definition per non-blank line, in order.
// It fails on the first malformed line; no partial result is returned.
func (p *Parser) Parse(text string) ([]domain.Definition, error) {
	var defs []domain.Definition
	seen := make(map[domain.ID]int)

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		def, perr := p.parseLine(line)
		if perr != nil {
			perr.Line = lineNo
			return nil, perr
		}
		if first, ok := seen[def.ID]; ok {
			return nil, &domain.ParseError{
				Line:   lineNo,
				Text:   line,
				Reason: fmt.Sprintf("%s already defined on line %d", def.ID, first),
				Err:    domain.ErrDuplicateComponent,
			}
		}
		seen[def.ID] = lineNo
		defs = append(defs, def)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wiring: %w", err)
	}
	return defs, nil
}

func (p *Parser) parseLine(line string) (domain.Definition, *domain.ParseError) {
	fail := func(reason string) (domain.Definition, *domain.ParseError) {
		return domain.Definition{}, &domain.ParseError{Text: line, Reason: reason}
	}

	head, tail, hasArrow := strings.Cut(line, arrow)
	head = strings.TrimSpace(head)
	if head == "" {
		return fail("missing component name")
	}

	def := domain.Definition{Kind: domain.KindBroadcaster}
	switch head[0] {
	case domain.MarkerFlipFlop:
		def.Kind = domain.KindFlipFlop
		head = head[1:]
	case domain.MarkerConjunction:
		def.Kind = domain.KindConjunction
		head = head[1:]
	default:
		if !isIDByte(head[0]) {
			return fail(fmt.Sprintf("unknown kind marker %q", head[0]))
		}
	}
	if !ValidID(head) {
		return fail(fmt.Sprintf("invalid component name %q", head))
	}
	def.ID = p.intern(head)

	if !hasArrow {
		return def, nil
	}
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return fail("missing destinations after " + arrow)
	}
	for _, raw := range strings.Split(tail, ",") {
		dst := strings.TrimSpace(raw)
		if !ValidID(dst) {
			return fail(fmt.Sprintf("invalid destination %q", dst))
		}
		def.Outputs = append(def.Outputs, p.intern(dst))
	}
	return def, nil
}

func (p *Parser) intern(s string) domain.ID {
	if id, ok := p.ids[s]; ok {
		return id
	}
	id := domain.ID(strings.Clone(s))
	p.ids[s] = id
	return id
}

// Format renders definitions back into wiring text, one line each.
func Format(defs []domain.Definition) string {
	var sb strings.Builder
	for _, d := range defs {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ValidID reports whether s is a non-empty run of letters, digits and underscores.
func ValidID(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIDByte(s[i]) {
			return false
		}
	}
	return true
}

func isIDByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
