package dyedensity

import (
	"path/filepath"

	"filmimport/internal/curve"
)

// Source names where a curve was resolved from.
type Source string

const (
	SourceLocal Source = "local"
	SourceDonor Source = "donor"
	SourceMid   Source = "mid"
	SourceZero  Source = "zero"
)

// Channel identifies one column of the dye density table.
type Channel struct {
	// Suffix is the file name suffix: dye_density_<Suffix>.csv.
	Suffix string
	// Column is the column of dye_density_mid.csv that carries this dye when
	// the file has one column per dye.
	Column int
}

var (
	Cyan    = Channel{Suffix: "c", Column: 1}
	Magenta = Channel{Suffix: "m", Column: 2}
	Yellow  = Channel{Suffix: "y", Column: 3}
	Base    = Channel{Suffix: "min"}
)

// DyeChannels lists the dye layers in table column order.
var DyeChannels = []Channel{Cyan, Magenta, Yellow}

// MidFileName is the combined fallback file holding x plus one or three dye columns.
const MidFileName = "dye_density_mid.csv"

// FileName returns the per-channel CSV name.
func (c Channel) FileName() string {
	return "dye_density_" + c.Suffix + ".csv"
}

// Request carries everything a strategy needs to locate one curve.
type Request struct {
	StockDir string
	DonorDir string
	Channel  Channel
}

// Strategy attempts to resolve one curve. ok is false when the strategy has
// nothing to offer and the next one should run.
type Strategy interface {
	Source() Source
	Resolve(req Request) (c curve.Curve, ok bool)
}

type localFile struct{ reader *curve.Reader }

func (localFile) Source() Source { return SourceLocal }

func (s localFile) Resolve(req Request) (curve.Curve, bool) {
	return readNonEmpty(s.reader, filepath.Join(req.StockDir, req.Channel.FileName()))
}

type donorFile struct{ reader *curve.Reader }

func (donorFile) Source() Source { return SourceDonor }

func (s donorFile) Resolve(req Request) (curve.Curve, bool) {
	if req.DonorDir == "" {
		return nil, false
	}
	return readNonEmpty(s.reader, filepath.Join(req.DonorDir, req.Channel.FileName()))
}

// midColumn picks the channel's own column when the mid file carries all three
// dyes (x, c, m, y) and otherwise reuses its first value column.
type midColumn struct{ reader *curve.Reader }

func (midColumn) Source() Source { return SourceMid }

func (s midColumn) Resolve(req Request) (curve.Curve, bool) {
	rows := s.reader.Columns(filepath.Join(req.StockDir, MidFileName))
	if len(rows) == 0 {
		return nil, false
	}
	col := 1
	if len(rows[0]) >= 4 && req.Channel.Column > 0 {
		col = req.Channel.Column
	}
	c := curve.Column(rows, col)
	return c, len(c) > 0
}

func readNonEmpty(reader *curve.Reader, path string) (curve.Curve, bool) {
	if !curve.Exists(path) {
		return nil, false
	}
	c := reader.Points(path)
	return c, len(c) > 0
}

// resolve runs strategies in order and returns the first hit.
func resolve(strategies []Strategy, req Request) (curve.Curve, Source) {
	for _, s := range strategies {
		if c, ok := s.Resolve(req); ok {
			return c, s.Source()
		}
	}
	return nil, SourceZero
}
