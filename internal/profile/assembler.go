package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"filmimport/internal/curve"
	"filmimport/internal/dyedensity"
	"filmimport/internal/logging"
	"filmimport/internal/sensitivity"
)

// ErrNoSensitometry marks a folder whose red density curve is missing or empty.
var ErrNoSensitometry = errors.New("no red sensitometry data")

var densityFiles = [3]string{"density_curve_r.csv", "density_curve_g.csv", "density_curve_b.csv"}

// Assembler builds profiles from stock folders.
type Assembler struct {
	reader *curve.Reader
	matrix *sensitivity.Computer
	dyes   *dyedensity.Loader
	logger *slog.Logger
}

func NewAssembler(reader *curve.Reader, matrix *sensitivity.Computer, dyes *dyedensity.Loader, logger *slog.Logger) *Assembler {
	if reader == nil {
		reader = curve.NewReader(logger)
	}
	return &Assembler{
		reader: reader,
		matrix: matrix,
		dyes:   dyes,
		logger: logging.NewComponentLogger(logger, "profile"),
	}
}

// Assemble builds the profile for dir. The slug is the folder's base name.
func (a *Assembler) Assemble(dir string) (*Profile, error) {
	slug := filepath.Base(filepath.Clean(dir))

	sensitometry := a.readChannels(dir, densityFiles)
	if sensitometry.Red.Empty() {
		return nil, fmt.Errorf("%s: %w", slug, ErrNoSensitometry)
	}

	var spectralFiles [3]string
	for i, ch := range sensitivity.Channels {
		spectralFiles[i] = sensitivity.FileName(ch)
	}

	table, _ := a.dyes.Load(dir)
	p := &Profile{
		ID:   slug,
		Meta: InferMeta(slug),
		Physics: Physics{
			RGBToRawMatrix: a.matrix.Compute(dir),
			DyeDensity:     table,
		},
		Sensitometry: sensitometry,
		Spectral:     a.readChannels(dir, spectralFiles),
	}

	a.logger.Debug("profile assembled",
		logging.String(logging.FieldStock, slug),
		logging.String("manufacturer", p.Meta.Manufacturer),
		logging.Int("iso", p.Meta.ISO),
		logging.Int("sensitometry_points", len(sensitometry.Red)),
	)
	return p, nil
}

func (a *Assembler) readChannels(dir string, names [3]string) Channels {
	return Channels{
		Red:   curve.NonNil(a.reader.Points(filepath.Join(dir, names[0]))),
		Green: curve.NonNil(a.reader.Points(filepath.Join(dir, names[1]))),
		Blue:  curve.NonNil(a.reader.Points(filepath.Join(dir, names[2]))),
	}
}
