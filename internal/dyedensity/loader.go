package dyedensity

import (
	"log/slog"
	"path/filepath"

	"filmimport/internal/curve"
	"filmimport/internal/logging"
	"filmimport/internal/spectral"
)

// Row is one table entry: wavelength, cyan, magenta, yellow, base.
type Row [5]float64

// Table is the dye density table, one row per reference wavelength.
type Table []Row

// Sources records which strategy served each curve.
type Sources struct {
	Cyan    Source
	Magenta Source
	Yellow  Source
	Base    Source
}

// Loader resolves dye density tables for stock folders.
type Loader struct {
	ref        *spectral.Reference
	donorStock string
	dyes       []Strategy
	base       []Strategy
	logger     *slog.Logger
}

// NewLoader builds a Loader that falls back to the sibling folder donorStock.
// An empty donorStock disables the donor step.
func NewLoader(ref *spectral.Reference, reader *curve.Reader, donorStock string, logger *slog.Logger) *Loader {
	if reader == nil {
		reader = curve.NewReader(logger)
	}
	return &Loader{
		ref:        ref,
		donorStock: donorStock,
		dyes:       []Strategy{localFile{reader}, donorFile{reader}, midColumn{reader}},
		base:       []Strategy{localFile{reader}, donorFile{reader}},
		logger:     logging.NewComponentLogger(logger, "dyedensity"),
	}
}

// Load builds the table for stockDir.
func (l *Loader) Load(stockDir string) (Table, Sources) {
	grid := l.ref.Grid()
	donorDir := l.donorDir(stockDir)

	var columns [4][]float64
	var sources Sources
	picked := []*Source{&sources.Cyan, &sources.Magenta, &sources.Yellow}
	for i, ch := range DyeChannels {
		c, src := resolve(l.dyes, Request{StockDir: stockDir, DonorDir: donorDir, Channel: ch})
		columns[i] = curve.Resample(grid, c, curve.Clamp())
		*picked[i] = src
	}
	baseCurve, baseSrc := resolve(l.base, Request{StockDir: stockDir, DonorDir: donorDir, Channel: Base})
	columns[3] = curve.Resample(grid, baseCurve, curve.Clamp())
	sources.Base = baseSrc

	table := make(Table, len(grid))
	for i, wl := range grid {
		table[i] = Row{wl, columns[0][i], columns[1][i], columns[2][i], columns[3][i]}
	}

	l.logger.Debug("dye density resolved",
		logging.String(logging.FieldPath, stockDir),
		logging.String("cyan", string(sources.Cyan)),
		logging.String("magenta", string(sources.Magenta)),
		logging.String("yellow", string(sources.Yellow)),
		logging.String("base", string(sources.Base)),
	)
	return table, sources
}

func (l *Loader) donorDir(stockDir string) string {
	if l.donorStock == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(filepath.Clean(stockDir)), l.donorStock)
}
