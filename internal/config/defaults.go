package config

const (
	defaultOutputDir           = "public/profiles"
	defaultLogDir              = "~/.local/share/filmimport/logs"
	defaultStateDir            = "~/.local/share/filmimport"
	defaultReferenceDir        = "~/.local/share/filmimport/reference"
	defaultBasisFile           = "mallett2019_basis.csv"
	defaultIlluminant          = "D65"
	defaultShapeStart          = 380.0
	defaultShapeEnd            = 780.0
	defaultShapeInterval       = 5.0
	defaultDonorStock          = "kodak_vision3_500t"
	defaultMarkerSuffix        = "density_curve_r.csv"
	defaultSensitivitySentinel = -100.0
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			StateDir:  defaultStateDir,
		},
		Reference: Reference{
			BasisFile:  defaultBasisFile,
			Illuminant: defaultIlluminant,
			Shape: Shape{
				Start:    defaultShapeStart,
				End:      defaultShapeEnd,
				Interval: defaultShapeInterval,
			},
		},
		Import: Import{
			DonorStock:          defaultDonorStock,
			MarkerSuffix:        defaultMarkerSuffix,
			SensitivitySentinel: defaultSensitivitySentinel,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
