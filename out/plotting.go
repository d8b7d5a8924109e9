// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// sizes of each subplot
var (
	SplotWidth  = 6 * vg.Inch
	SplotHeight = 4 * vg.Inch
)

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Alias  string    // alias; used as legend
	X      []float64 // x-values
	Y      []float64 // y-values
	Dashed bool      // dashed line
}

// SplotDat stores all data for one subplot
type SplotDat struct {
	Id     string       // unique identifier
	Title  string       // title of subplot
	Xlbl   string       // x-axis label (formatted; e.g. "t [s]")
	Ylbl   string       // y-axis label (formatted; e.g. "ν [m²/s]")
	Xrange []float64    // x range
	Yrange []float64    // y range
	Hlines []float64    // horizontal reference lines; e.g. νmax
	Data   []*PltEntity // data to be plotted
}

// Figure holds subplots
type Figure struct {
	Splots []*SplotDat // all subplots
	Csplot *SplotDat   // current subplot
}

// Splot activates a new subplot
func (o *Figure) Splot(id, splotTitle string) {
	s := &SplotDat{Id: id, Title: splotTitle}
	o.Splots = append(o.Splots, s)
	o.Csplot = s
}

// SplotConfig sets the labels of axes of the current subplot
//  xkey, ykey -- keys such as "t" or "nu"; see GetLabel
func (o *Figure) SplotConfig(xkey, ykey, xunit, yunit string) {
	if o.Csplot != nil {
		o.Csplot.Xlbl = GetLabel(xkey, xunit)
		o.Csplot.Ylbl = GetLabel(ykey, yunit)
	}
}

// Plot adds a curve to the current subplot; a subplot is created if none is active
func (o *Figure) Plot(x, y []float64, alias string) error {
	if len(x) != len(y) {
		return chk.Err("lengths of x- and y-series are different. len(x)=%d, len(y)=%d", len(x), len(y))
	}
	if o.Csplot == nil {
		o.Splot(io.Sf("%d", len(o.Splots)), "")
	}
	o.Csplot.Data = append(o.Csplot.Data, &PltEntity{Alias: alias, X: x, Y: y})
	return nil
}

// Hline adds a horizontal reference line to the current subplot
func (o *Figure) Hline(y float64) {
	if o.Csplot != nil {
		o.Csplot.Hlines = append(o.Csplot.Hlines, y)
	}
}

// Draw saves figure with all subplots as PNG
//  dirout -- directory to save figure
//  fname  -- file name; e.g. myplot.png
//  split  -- split subplots into separated files named <fnkey>_<id>.png
func (o *Figure) Draw(dirout, fname string, split bool) (err error) {
	nplots := len(o.Splots)
	if nplots == 0 {
		return chk.Err("there are no subplots to draw")
	}
	fnk := io.FnKey(fname)
	ext := io.FnExt(fname)
	if ext != ".png" {
		return chk.Err("figures can only be saved as .png. %q is invalid", fname)
	}
	err = os.MkdirAll(dirout, 0755)
	if err != nil {
		return chk.Err("cannot create output directory: %v", err)
	}
	plots := make([][]*plot.Plot, nplots)
	for k, spl := range o.Splots {
		p, err := spl.plot()
		if err != nil {
			return err
		}
		if split {
			fn := filepath.Join(dirout, fnk+"_"+spl.Id+ext)
			if err = p.Save(SplotWidth, SplotHeight, fn); err != nil {
				return chk.Err("cannot save %q: %v", fn, err)
			}
			continue
		}
		plots[k] = []*plot.Plot{p}
	}
	if split {
		return nil
	}

	// stack subplots vertically
	img := vgimg.New(SplotWidth, SplotHeight*vg.Length(nplots))
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: nplots, Cols: 1, PadY: vg.Millimeter, PadTop: vg.Millimeter, PadBottom: vg.Millimeter}
	canvases := plot.Align(plots, tiles, dc)
	for k := range plots {
		plots[k][0].Draw(canvases[k][0])
	}
	fn := filepath.Join(dirout, fname)
	f, err := os.Create(fn)
	if err != nil {
		return chk.Err("cannot create %q: %v", fn, err)
	}
	defer f.Close()
	if _, err = (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return chk.Err("cannot write %q: %v", fn, err)
	}
	return nil
}

// plot converts subplot data into a gonum plot
func (o *SplotDat) plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.Xlbl
	p.Y.Label.Text = o.Ylbl
	p.Add(plotter.NewGrid())
	for i, d := range o.Data {
		xy := make(plotter.XYs, len(d.X))
		for j := range d.X {
			xy[j].X = d.X[j]
			xy[j].Y = d.Y[j]
		}
		l, err := plotter.NewLine(xy)
		if err != nil {
			return nil, chk.Err("cannot plot %q in subplot %q: %v", d.Alias, o.Id, err)
		}
		l.Color = plotutil.Color(i)
		if d.Dashed {
			l.Dashes = plotutil.Dashes(1)
		}
		p.Add(l)
		p.Legend.Add(d.Alias, l)
	}
	for _, y := range o.Hlines {
		val := y
		h := plotter.NewFunction(func(float64) float64 { return val })
		h.Dashes = plotutil.Dashes(2)
		p.Add(h)
	}
	if len(o.Xrange) == 2 {
		p.X.Min, p.X.Max = o.Xrange[0], o.Xrange[1]
	}
	if len(o.Yrange) == 2 {
		p.Y.Min, p.Y.Max = o.Yrange[0], o.Yrange[1]
	}
	return p, nil
}
