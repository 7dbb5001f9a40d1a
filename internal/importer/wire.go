package importer

import (
	"log/slog"

	"filmimport/internal/config"
	"filmimport/internal/curve"
	"filmimport/internal/dyedensity"
	"filmimport/internal/profile"
	"filmimport/internal/sensitivity"
	"filmimport/internal/spectral"
)

// NewAssembler wires the profile assembler for cfg against ref.
func NewAssembler(cfg *config.Config, ref *spectral.Reference, logger *slog.Logger) *profile.Assembler {
	reader := curve.NewReader(logger)
	return profile.NewAssembler(
		reader,
		sensitivity.NewComputer(ref, reader, cfg.Import.SensitivitySentinel, logger),
		dyedensity.NewLoader(ref, reader, cfg.Import.DonorStock, logger),
		logger,
	)
}

// LoadReference loads the spectral reference described by cfg.
func LoadReference(cfg *config.Config) (*spectral.Reference, error) {
	return spectral.Load(spectral.LoadOptions{
		Shape: spectral.Shape{
			Start:    cfg.Reference.Shape.Start,
			End:      cfg.Reference.Shape.End,
			Interval: cfg.Reference.Shape.Interval,
		},
		BasisPath:      cfg.BasisPath(),
		Illuminant:     cfg.Reference.Illuminant,
		IlluminantPath: cfg.IlluminantPath(),
	})
}
