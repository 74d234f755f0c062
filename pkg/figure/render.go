package figure

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/matzehuels/pubfig/pkg/errors"
	"github.com/matzehuels/pubfig/pkg/observability"
)

// Supported output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG}

// BBox selects how the output canvas is sized.
type BBox int

const (
	// BBoxTight fits the canvas to the drawn content plus a pad, so a
	// legend drawn above the figure is not clipped. The file may then be
	// larger than [Figure.Size].
	BBoxTight BBox = iota
	// BBoxStandard uses exactly the figure size; overflow is clipped.
	BBoxStandard
)

func (b BBox) String() string {
	switch b {
	case BBoxTight:
		return "tight"
	case BBoxStandard:
		return "standard"
	}
	return fmt.Sprintf("BBox(%d)", int(b))
}

// Export defaults.
const (
	DefaultDPI = 300
	DefaultPad = 0.1 // inches
)

// SaveOption configures [Figure.Render] and [Figure.Save].
type SaveOption func(*saveOptions)

type saveOptions struct {
	bbox BBox
	dpi  int
	pad  float64
}

// WithBBox selects tight or standard canvas sizing.
func WithBBox(b BBox) SaveOption {
	return func(o *saveOptions) { o.bbox = b }
}

// WithDPI sets the PNG resolution. SVG output ignores it.
func WithDPI(dpi int) SaveOption {
	return func(o *saveOptions) { o.dpi = dpi }
}

// WithPad sets the tight-bbox padding in inches.
func WithPad(inches float64) SaveOption {
	return func(o *saveOptions) { o.pad = inches }
}

func (o saveOptions) validate() error {
	if o.bbox != BBoxTight && o.bbox != BBoxStandard {
		return errors.New(errors.ErrCodeInvalidInput, "unknown bbox mode %v", o.bbox)
	}
	if o.dpi < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %d", o.dpi)
	}
	if o.pad < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "pad must not be negative, got %g", o.pad)
	}
	return nil
}

// Draw draws the figure into c, whose rectangle is taken as the figure area.
// The legend band is carved off the top and the panels tile the rest.
func (f *Figure) Draw(c draw.Canvas) {
	body := c
	if f.legend != nil {
		body = draw.Crop(c, 0, 0, 0, -f.legend.band())
		f.legend.draw(c, f.legendStyle())
	}
	f.drawPanels(body)
}

func (f *Figure) drawPanels(c draw.Canvas) {
	for r, row := range f.panelCanvases(c) {
		for col, pc := range row {
			f.axes[r][col].Draw(pc)
		}
	}
}

// panelCanvases returns the canvas each panel is drawn in, indexed
// [row][col]. Square figures shrink every tile to a square data area;
// the others align the data areas across rows and columns.
func (f *Figure) panelCanvases(c draw.Canvas) [][]draw.Canvas {
	tiles := f.tiles(c)
	if !f.square {
		return plot.Align(f.axes, tiles, c)
	}
	out := make([][]draw.Canvas, f.rows)
	for r, row := range f.axes {
		out[r] = make([]draw.Canvas, f.cols)
		for col, p := range row {
			out[r][col] = squareBox(p, tiles.At(c, col, r))
		}
	}
	return out
}

// tiles spaces the panels like subplots_adjust: the gaps are WidthSpace and
// HeightSpace times the average panel width and height.
func (f *Figure) tiles(c draw.Canvas) draw.Tiles {
	w, h := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	ws, hs := f.style.WidthSpace, f.style.HeightSpace
	panelW := w / vg.Length(float64(f.cols)+float64(f.cols-1)*ws)
	panelH := h / vg.Length(float64(f.rows)+float64(f.rows-1)*hs)
	return draw.Tiles{
		Rows: f.rows,
		Cols: f.cols,
		PadX: panelW * vg.Length(ws),
		PadY: panelH * vg.Length(hs),
	}
}

// squareBox shrinks tile so that the data area of p drawn in it is square,
// centering it in the spare direction.
func squareBox(p *plot.Plot, tile draw.Canvas) draw.Canvas {
	da := p.DataCanvas(tile)
	dw, dh := da.Max.X-da.Min.X, da.Max.Y-da.Min.Y
	switch {
	case dw <= 0 || dh <= 0:
		return tile
	case dw > dh:
		d := (dw - dh) / 2
		return draw.Crop(tile, d, -d, 0, 0)
	case dh > dw:
		d := (dh - dw) / 2
		return draw.Crop(tile, 0, 0, d, -d)
	}
	return tile
}

func (f *Figure) legendStyle() text.Style {
	return f.style.TextStyle(f.legend.size)
}

// canvasLayout returns the output canvas size and where the figure
// rectangle sits inside it.
func (f *Figure) canvasLayout(o saveOptions) (cw, ch vg.Length, origin vg.Point) {
	w, h := f.width, f.height
	if o.bbox == BBoxStandard {
		return w, h, vg.Point{}
	}
	pad := inches(o.pad)
	var left, right, bottom, top vg.Length
	if f.legend != nil {
		left, right, bottom, top = f.legend.overflow(f.legendStyle(), w, h)
	}
	return w + left + right + 2*pad, h + bottom + top + 2*pad, vg.Point{X: pad + left, Y: pad + bottom}
}

// Render encodes the figure as format ("svg" or "png").
func (f *Figure) Render(format string, opts ...SaveOption) ([]byte, error) {
	if err := errors.ValidateOneOf(errors.ErrCodeInvalidFormat, "file format", format, Formats); err != nil {
		return nil, err
	}
	o := saveOptions{bbox: BBoxTight, dpi: DefaultDPI, pad: DefaultPad}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	cw, ch, origin := f.canvasLayout(o)
	hooks := observability.Render()
	hooks.OnRenderStart(format, toInches(cw), toInches(ch))
	start := time.Now()

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatSVG:
		vc := vgsvg.New(cw, ch)
		f.drawOn(vc, origin)
		_, err = vc.WriteTo(&buf)
	case FormatPNG:
		vc := vgimg.NewWith(vgimg.UseWH(cw, ch), vgimg.UseDPI(o.dpi))
		f.drawOn(vc, origin)
		_, err = vgimg.PngCanvas{Canvas: vc}.WriteTo(&buf)
	}
	elapsed := time.Since(start)
	hooks.OnRenderComplete(format, buf.Len(), elapsed, err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}

	f.logger.Debug("rendered figure",
		"format", format, "bbox", o.bbox, "width_in", toInches(cw), "height_in", toInches(ch),
		"bytes", buf.Len(), "elapsed", elapsed)
	return buf.Bytes(), nil
}

// drawOn paints a white background over the whole canvas and draws the
// figure with its bottom-left corner at origin.
func (f *Figure) drawOn(vc vg.CanvasSizer, origin vg.Point) {
	dc := draw.New(vc)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())
	dc.Rectangle = vg.Rectangle{
		Min: origin,
		Max: vg.Point{X: origin.X + f.width, Y: origin.Y + f.height},
	}
	f.Draw(dc)
}

// Encode renders the figure as format and writes it to w.
func (f *Figure) Encode(w io.Writer, format string, opts ...SaveOption) (int64, error) {
	data, err := f.Render(format, opts...)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Save renders the figure and writes it to path. The format comes from the
// extension, which must be exactly "svg" or "png"; any other extension is
// rejected before drawing. Errors from writing the file are returned
// unchanged.
func (f *Figure) Save(path string, opts ...SaveOption) error {
	format, err := errors.ValidateExtension(path, Formats)
	if err != nil {
		return err
	}
	data, err := f.Render(format, opts...)
	if err != nil {
		return err
	}
	err = os.WriteFile(path, data, 0o644)
	observability.Render().OnSave(path, len(data), err)
	if err != nil {
		return err
	}
	f.logger.Debug("saved figure", "path", path, "bytes", len(data))
	return nil
}

func gridName(rows, cols int) string { return fmt.Sprintf("%dx%d", rows, cols) }
