package pctable

import (
	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pctable/pcd"
)

// DefaultMaxRecordLength caps the byte length of a single text piece.
const DefaultMaxRecordLength = 100_000_000

// BlockSize is the alignment of pieces written by WritePieces.
const BlockSize = 512

// Config configures the construction of a TextPieceTable.
type Config struct {
	// MaxRecordLength caps the number of bytes read for a single piece.
	// Zero selects DefaultMaxRecordLength.
	MaxRecordLength int
	// Charset is the code page of compressed (single-byte) pieces.
	Charset pcd.Charset
	// AllowGaps disables the check that piece ranges are contiguous,
	// starting at CP 0.
	AllowGaps bool
}

// DefaultConfig returns the configuration used for documents without
// special requirements.
func DefaultConfig() Config {
	return Config{
		MaxRecordLength: DefaultMaxRecordLength,
		Charset:         pcd.Windows1252,
	}
}

func (cfg Config) normalized() Config {
	if cfg.MaxRecordLength == 0 {
		cfg.MaxRecordLength = DefaultMaxRecordLength
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.MaxRecordLength < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative max record length %d", cfg.MaxRecordLength)
	}
	if cfg.Charset == pcd.UTF16LE || cfg.Charset.String() == "unknown" {
		return errors.Wrapf(ErrInvalidConfig, "unusable charset %s for compressed pieces", cfg.Charset)
	}
	return nil
}
