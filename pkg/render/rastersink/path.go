package rastersink

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
)

// ErrInvalidPath is returned by [Surface.Draw] for path layers whose
// data string does not parse.
var ErrInvalidPath = errors.New("rastersink: invalid path data")

// tracePath walks SVG path data and replays it as gg path calls, offset
// by the layer's draw origin. Supported commands are M, L, H, V, C, S,
// Q, T and Z in absolute and relative form. Arcs (A) are not supported.
func tracePath(dc *gg.Context, data string, ox, oy float64) error {
	p := &pathScanner{input: data}

	var (
		curX, curY     float64 // current point, path space
		startX, startY float64 // subpath start, for Z
		lastCtlX       float64 // last control point, for S and T reflection
		lastCtlY       float64
		lastCmd        byte
	)

	for {
		cmd, ok := p.command()
		if !ok {
			break
		}
		rel := unicode.IsLower(rune(cmd))
		upper := byte(unicode.ToUpper(rune(cmd)))

		for first := true; first || p.hasNumber(); first = false {
			switch upper {
			case 'M':
				x, y, err := p.pair()
				if err != nil {
					return err
				}
				if rel {
					x, y = curX+x, curY+y
				}
				if first {
					dc.MoveTo(ox+x, oy+y)
					startX, startY = x, y
				} else {
					// Extra coordinate pairs after a moveto are implicit
					// linetos.
					dc.LineTo(ox+x, oy+y)
				}
				curX, curY = x, y

			case 'L':
				x, y, err := p.pair()
				if err != nil {
					return err
				}
				if rel {
					x, y = curX+x, curY+y
				}
				dc.LineTo(ox+x, oy+y)
				curX, curY = x, y

			case 'H':
				x, err := p.number()
				if err != nil {
					return err
				}
				if rel {
					x = curX + x
				}
				dc.LineTo(ox+x, oy+curY)
				curX = x

			case 'V':
				y, err := p.number()
				if err != nil {
					return err
				}
				if rel {
					y = curY + y
				}
				dc.LineTo(ox+curX, oy+y)
				curY = y

			case 'C':
				x1, y1, err := p.pair()
				if err != nil {
					return err
				}
				x2, y2, err := p.pair()
				if err != nil {
					return err
				}
				x, y, err := p.pair()
				if err != nil {
					return err
				}
				if rel {
					x1, y1 = curX+x1, curY+y1
					x2, y2 = curX+x2, curY+y2
					x, y = curX+x, curY+y
				}
				dc.CubicTo(ox+x1, oy+y1, ox+x2, oy+y2, ox+x, oy+y)
				curX, curY = x, y
				lastCtlX, lastCtlY = x2, y2

			case 'S':
				x2, y2, err := p.pair()
				if err != nil {
					return err
				}
				x, y, err := p.pair()
				if err != nil {
					return err
				}
				if rel {
					x2, y2 = curX+x2, curY+y2
					x, y = curX+x, curY+y
				}
				x1, y1 := reflect(curX, curY, lastCtlX, lastCtlY, lastCmd == 'C' || lastCmd == 'S')
				dc.CubicTo(ox+x1, oy+y1, ox+x2, oy+y2, ox+x, oy+y)
				curX, curY = x, y
				lastCtlX, lastCtlY = x2, y2

			case 'Q':
				x1, y1, err := p.pair()
				if err != nil {
					return err
				}
				x, y, err := p.pair()
				if err != nil {
					return err
				}
				if rel {
					x1, y1 = curX+x1, curY+y1
					x, y = curX+x, curY+y
				}
				dc.QuadraticTo(ox+x1, oy+y1, ox+x, oy+y)
				curX, curY = x, y
				lastCtlX, lastCtlY = x1, y1

			case 'T':
				x, y, err := p.pair()
				if err != nil {
					return err
				}
				if rel {
					x, y = curX+x, curY+y
				}
				x1, y1 := reflect(curX, curY, lastCtlX, lastCtlY, lastCmd == 'Q' || lastCmd == 'T')
				dc.QuadraticTo(ox+x1, oy+y1, ox+x, oy+y)
				curX, curY = x, y
				lastCtlX, lastCtlY = x1, y1

			case 'Z':
				dc.ClosePath()
				curX, curY = startX, startY

			default:
				return fmt.Errorf("%w: unsupported command %q", ErrInvalidPath, string(cmd))
			}
			if upper == 'Z' {
				break
			}
		}
		lastCmd = upper
	}
	return nil
}

// reflect mirrors the previous control point across the current point.
// When the previous command had no control point the current point is
// its own reflection, per the SVG spec.
func reflect(curX, curY, ctlX, ctlY float64, usable bool) (float64, float64) {
	if !usable {
		return curX, curY
	}
	return 2*curX - ctlX, 2*curY - ctlY
}

// pathScanner tokenizes SVG path data: single-letter commands and
// floats separated by whitespace or commas.
type pathScanner struct {
	input string
	pos   int
}

func (p *pathScanner) skipSeparators() {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
			continue
		}
		return
	}
}

// command returns the next command letter, or false at end of input.
func (p *pathScanner) command() (byte, bool) {
	p.skipSeparators()
	if p.pos >= len(p.input) {
		return 0, false
	}
	c := p.input[p.pos]
	p.pos++
	return c, true
}

// hasNumber reports whether the next token continues the current
// command's parameter list.
func (p *pathScanner) hasNumber() bool {
	p.skipSeparators()
	if p.pos >= len(p.input) {
		return false
	}
	c := p.input[p.pos]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (p *pathScanner) number() (float64, error) {
	p.skipSeparators()
	start := p.pos
	if p.pos < len(p.input) && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
		p.pos++
	}
	seenDot := false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		p.pos++
	}
	tok := strings.TrimSpace(p.input[start:p.pos])
	n, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: number at offset %d", ErrInvalidPath, start)
	}
	return n, nil
}

func (p *pathScanner) pair() (float64, float64, error) {
	x, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
