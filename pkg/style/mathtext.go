package style

import (
	"math"
	"strings"
	"unicode"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Script geometry relative to the enclosing font size.
const (
	scriptScale    = 0.7
	minScriptScale = 0.5
	superRise      = 0.4
	subDrop        = 0.2
)

// MathText is a text handler for labels with inline math.
//
// Text outside $...$ is drawn as plain text, so "R&D", "Q_obs" and "Run #2"
// come out verbatim. Inside a math span it understands the subset of TeX
// used for axis labels: \mathrm, \mathit, \mathbf and \text groups, the \rm,
// \it and \bf switches, ^ and _ scripts, \frac, \sqrt, Greek letters and
// common symbols. Letters in math are italic unless a font command says
// otherwise. Unknown commands are drawn by name; no input makes it panic.
// A literal dollar sign is written \$.
type MathText struct {
	Fonts *font.Cache
}

var _ text.Handler = MathText{}

// Cache returns the cache of fonts used by the text handler.
func (h MathText) Cache() *font.Cache { return h.Fonts }

// Extents returns the extents of fnt.
func (h MathText) Extents(fnt font.Font) font.Extents {
	face := h.Fonts.Lookup(fnt, fnt.Size)
	return face.Extents()
}

// Lines splits txt into lines.
func (h MathText) Lines(txt string) []string {
	txt = strings.TrimRight(txt, "\n")
	return strings.Split(txt, "\n")
}

// Box returns the width, the height above the baseline and the depth below
// it of a single line.
func (h MathText) Box(txt string, fnt font.Font) (width, height, depth vg.Length) {
	ext := h.Extents(fnt)
	height, depth = ext.Ascent, ext.Descent
	for _, r := range parseMath(txt) {
		face := h.face(fnt, r)
		e := face.Extents()
		rise := vg.Length(r.rise) * fnt.Size
		width += face.Width(r.text)
		height = max(height, e.Ascent+rise)
		depth = max(depth, e.Descent-rise)
	}
	return width, height, depth
}

// Draw renders txt on c, aligned and rotated by sty around pt.
func (h MathText) Draw(c vg.Canvas, txt string, sty text.Style, pt vg.Point) {
	txt = strings.TrimRight(txt, "\n")
	if txt == "" {
		return
	}
	c.SetColor(sty.Color)
	if sty.Rotation != 0 {
		c.Push()
		c.Rotate(sty.Rotation)
		defer c.Pop()
	}

	sin64, cos64 := math.Sincos(sty.Rotation)
	cos, sin := vg.Length(cos64), vg.Length(sin64)
	pt.X, pt.Y = pt.Y*sin+pt.X*cos, pt.Y*cos-pt.X*sin

	lines := h.Lines(txt)
	pt.Y += h.height(lines, sty.Font)*vg.Length(sty.YAlign) - h.Extents(sty.Font).Ascent
	for i, line := range lines {
		w, _, _ := h.Box(line, sty.Font)
		x := pt.X + vg.Length(sty.XAlign)*w
		y := pt.Y + vg.Length(len(lines)-i)*sty.Font.Size
		for _, r := range parseMath(line) {
			face := h.face(sty.Font, r)
			c.FillString(face, vg.Point{X: x, Y: y + vg.Length(r.rise)*sty.Font.Size}, r.text)
			x += face.Width(r.text)
		}
	}
}

// height mirrors text.Style.Height for lines drawn by h.
func (h MathText) height(lines []string, fnt font.Font) vg.Length {
	e := h.Extents(fnt)
	linegap := e.Height - e.Ascent - e.Descent
	var ht vg.Length
	for i, line := range lines {
		_, hh, dd := h.Box(line, fnt)
		ht += hh + dd
		if i > 0 {
			ht += linegap
		}
	}
	return ht
}

func (h MathText) face(base font.Font, r mathRun) font.Face {
	fnt := base
	fnt.Style = xfont.StyleNormal
	fnt.Weight = xfont.WeightNormal
	if r.italic {
		fnt.Style = xfont.StyleItalic
	}
	if r.bold {
		fnt.Weight = xfont.WeightBold
	}
	return h.Fonts.Lookup(fnt, base.Size*vg.Length(r.scale))
}

// mathRun is a stretch of text drawn with one face at one baseline.
// Scale and rise are relative to the base font size.
type mathRun struct {
	text   string
	italic bool
	bold   bool
	scale  float64
	rise   float64
}

func (r mathRun) sameFace(o mathRun) bool {
	return r.italic == o.italic && r.bold == o.bold && r.scale == o.scale && r.rise == o.rise
}

// parseMath splits a line into runs. Plain text is one upright run per
// span; an unterminated $ is kept as text.
func parseMath(txt string) []mathRun {
	var (
		out   []mathRun
		plain strings.Builder
	)
	flush := func() {
		if plain.Len() > 0 {
			out = appendRun(out, mathRun{text: plain.String(), scale: 1})
			plain.Reset()
		}
	}

	for i := 0; i < len(txt); i++ {
		switch {
		case strings.HasPrefix(txt[i:], `\$`):
			plain.WriteByte('$')
			i++
		case txt[i] == '$':
			end := closingDollar(txt, i+1)
			if end < 0 {
				plain.WriteString(txt[i:])
				i = len(txt)
				continue
			}
			flush()
			p := mathParser{src: []rune(txt[i+1 : end])}
			p.group(mathState{scale: 1}, false)
			for _, r := range p.out {
				out = appendRun(out, r)
			}
			i = end
		default:
			plain.WriteByte(txt[i])
		}
	}
	flush()
	return out
}

// closingDollar returns the index of the next unescaped $ at or after from.
func closingDollar(txt string, from int) int {
	for j := from; j < len(txt); j++ {
		switch txt[j] {
		case '\\':
			j++
		case '$':
			return j
		}
	}
	return -1
}

func appendRun(runs []mathRun, r mathRun) []mathRun {
	if r.text == "" {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].sameFace(r) {
		runs[n-1].text += r.text
		return runs
	}
	return append(runs, r)
}

type mathFont int

const (
	mathDefault mathFont = iota // italic letters, upright everything else
	mathRoman
	mathItalic
	mathBold
)

type mathState struct {
	font  mathFont
	scale float64
	rise  float64
	text  bool // inside \text and friends, where blanks are kept
}

func (st mathState) script(up bool) mathState {
	s := st
	s.scale = max(st.scale*scriptScale, minScriptScale)
	if up {
		s.rise += superRise * st.scale
	} else {
		s.rise -= subDrop * st.scale
	}
	return s
}

type mathParser struct {
	src []rune
	pos int
	out []mathRun
}

func (p *mathParser) emit(s string, st mathState, letter bool) {
	p.out = appendRun(p.out, mathRun{
		text:   s,
		italic: st.font == mathItalic || (st.font == mathDefault && letter),
		bold:   st.font == mathBold,
		scale:  st.scale,
		rise:   st.rise,
	})
}

// group parses atoms until the end of input or, when braced, the closing
// brace. Font switches such as \rm last until the end of the group.
func (p *mathParser) group(st mathState, braced bool) {
	for p.pos < len(p.src) {
		if braced && p.src[p.pos] == '}' {
			p.pos++
			return
		}
		if sw, ok := p.fontSwitch(); ok {
			st.font = sw
			continue
		}
		p.atom(st)
	}
}

func (p *mathParser) fontSwitch() (mathFont, bool) {
	name, ok := p.peekMacro()
	if !ok {
		return 0, false
	}
	f, ok := fontSwitches[name]
	if ok {
		p.pos += len([]rune(name)) + 1
	}
	return f, ok
}

// peekMacro returns the command name at the cursor without consuming it.
func (p *mathParser) peekMacro() (string, bool) {
	if p.pos >= len(p.src) || p.src[p.pos] != '\\' {
		return "", false
	}
	end := p.pos + 1
	for end < len(p.src) && unicode.IsLetter(p.src[end]) {
		end++
	}
	if end == p.pos+1 {
		if end < len(p.src) {
			return string(p.src[end]), true
		}
		return "", false
	}
	return string(p.src[p.pos+1 : end]), true
}

// atom parses one token, braced group or script.
func (p *mathParser) atom(st mathState) {
	r := p.src[p.pos]
	switch {
	case r == '{':
		p.pos++
		p.group(st, true)
	case r == '}':
		// stray closing brace
		p.pos++
	case r == '^' || r == '_':
		p.pos++
		if p.pos < len(p.src) {
			p.atom(st.script(r == '^'))
		}
	case r == '\\':
		p.macro(st)
	case unicode.IsSpace(r):
		p.pos++
		if st.text {
			p.emit(" ", st, false)
		}
	default:
		p.pos++
		p.emit(string(r), st, unicode.IsLetter(r))
	}
}

func (p *mathParser) macro(st mathState) {
	name, ok := p.peekMacro()
	if !ok {
		// trailing backslash
		p.pos++
		return
	}
	p.pos += len([]rune(name)) + 1

	if f, ok := fontCommands[name]; ok {
		st.font = f
		_, st.text = textCommands[name]
		p.argument(st)
		return
	}
	switch name {
	case "frac", "dfrac", "tfrac":
		p.argument(st)
		p.emit("/", st, false)
		p.argument(st)
		return
	case "sqrt":
		p.emit("√", st, false)
		p.argument(st)
		return
	}
	if sym, ok := mathSymbols[name]; ok {
		p.emit(sym, st, false)
		return
	}
	if sp, ok := mathSpaces[name]; ok {
		p.emit(sp, st, false)
		return
	}
	if _, ok := mathFunctions[name]; ok {
		st.font = mathRoman
		p.emit(name, st, true)
		return
	}
	if len([]rune(name)) == 1 {
		// escaped character such as \% or \{
		p.emit(name, st, false)
		return
	}
	p.emit(name, mathState{font: mathRoman, scale: st.scale, rise: st.rise}, true)
}

// argument parses the next atom, skipping blanks, as a command argument.
func (p *mathParser) argument(st mathState) {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
	if p.pos < len(p.src) {
		p.atom(st)
	}
}

// fontCommands take one argument.
var fontCommands = map[string]mathFont{
	"mathrm":       mathRoman,
	"mathregular":  mathRoman,
	"mathdefault":  mathRoman,
	"mathup":       mathRoman,
	"text":         mathRoman,
	"textrm":       mathRoman,
	"operatorname": mathRoman,
	"mathit":       mathItalic,
	"textit":       mathItalic,
	"mathbf":       mathBold,
	"textbf":       mathBold,
	"boldsymbol":   mathBold,
}

var textCommands = map[string]struct{}{
	"text": {}, "textrm": {}, "textit": {}, "textbf": {},
}

// fontSwitches apply to the rest of the enclosing group.
var fontSwitches = map[string]mathFont{
	"rm": mathRoman,
	"it": mathItalic,
	"bf": mathBold,
}

var mathSpaces = map[string]string{
	",":     " ",
	":":     " ",
	";":     " ",
	" ":     " ",
	"!":     "",
	"quad":  " ",
	"qquad": "  ",
}

var mathFunctions = map[string]struct{}{
	"sin": {}, "cos": {}, "tan": {}, "log": {}, "ln": {}, "exp": {},
	"max": {}, "min": {}, "lim": {}, "sinh": {}, "cosh": {}, "tanh": {},
	"arg": {}, "det": {}, "sup": {}, "inf": {},
}

var mathSymbols = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ϵ",
	"varepsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "pi": "π", "rho": "ρ",
	"sigma": "σ", "tau": "τ", "phi": "ϕ", "varphi": "φ", "chi": "χ",
	"psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",
	"times": "×", "cdot": "·", "pm": "±", "mp": "∓", "div": "÷",
	"circ": "∘", "degree": "°", "prime": "′", "infty": "∞", "partial": "∂",
	"nabla": "∇", "approx": "≈", "sim": "∼", "simeq": "≃", "propto": "∝",
	"neq": "≠", "ne": "≠", "leq": "≤", "le": "≤", "geq": "≥", "ge": "≥",
	"ll": "≪", "gg": "≫", "to": "→", "rightarrow": "→", "leftarrow": "←",
	"leftrightarrow": "↔", "Rightarrow": "⇒", "sum": "∑", "prod": "∏",
	"int": "∫", "ell": "ℓ", "hbar": "ℏ", "AA": "Å", "langle": "⟨",
	"rangle": "⟩", "ldots": "…", "cdots": "⋯", "perthousand": "‰",
}
