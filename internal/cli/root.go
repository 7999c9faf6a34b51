// Package cli provides the Cobra command structure for pcdump.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pctable"
	"github.com/npillmayer/pctable/html"
	"github.com/npillmayer/pctable/pcd"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
}

// Output formats.
const (
	FormatList = "list"
	FormatText = "text"
	FormatDot  = "dot"
	FormatHTML = "html"
)

// options are the settings of a single pcdump run, merged from flags,
// environment and config file.
type options struct {
	docPath         string
	tablePath       string
	offset          int
	size            int
	fcMin           int
	maxRecordLength int
	charset         string
	allowGaps       bool
	format          string
	color           string
	debug           bool
}

// NewRootCommand creates the pcdump command.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var configPath string
	v := viper.New()
	rootCmd := &cobra.Command{
		Use:   "pcdump",
		Short: "Dump the piece table of a binary Word document",
		Long: `pcdump decodes the piece table of a binary Word document and prints its
text pieces.

The WordDocument stream and the table stream (0Table or 1Table) have to be
extracted from the OLE2 container beforehand. The location of the piece table
within the table stream is given by --offset and --size.

Settings may also be read from a config file (--config) or from environment
variables prefixed with PCDUMP_, e.g. PCDUMP_CHARSET=windows-1251.`,
		Version: fmt.Sprintf("%s (%s)", info.Version, info.Commit),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(v, configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), opts.debug)
			return dump(cmd.OutOrStdout(), logger, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to config file")
	flags.String("doc", "", "path to the WordDocument stream")
	flags.String("table", "", "path to the table stream")
	flags.Int("offset", 0, "offset of the piece table in the table stream")
	flags.Int("size", 0, "size of the piece table in bytes (0: up to the end of the table stream)")
	flags.Int("fcmin", 0, "file position of the start of the document text")
	flags.Int("max-record-length", pctable.DefaultMaxRecordLength, "maximum byte length of a single piece")
	flags.String("charset", pcd.Windows1252.String(), "charset or code page of compressed pieces")
	flags.Bool("allow-gaps", false, "accept piece tables which do not cover a contiguous range")
	flags.String("format", FormatList, "output format: list, text, dot, html")
	flags.String("color", "auto", "colorize output: auto, always, never")
	flags.Bool("debug", false, "enable debug logging")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	return rootCmd
}

func loadOptions(v *viper.Viper, configPath string) (options, error) {
	v.SetEnvPrefix("PCDUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return options{}, errors.Wrapf(err, "reading config file %s", configPath)
		}
	}
	opts := options{
		docPath:         v.GetString("doc"),
		tablePath:       v.GetString("table"),
		offset:          v.GetInt("offset"),
		size:            v.GetInt("size"),
		fcMin:           v.GetInt("fcmin"),
		maxRecordLength: v.GetInt("max-record-length"),
		charset:         v.GetString("charset"),
		allowGaps:       v.GetBool("allow-gaps"),
		format:          v.GetString("format"),
		color:           v.GetString("color"),
		debug:           v.GetBool("debug"),
	}
	if opts.docPath == "" || opts.tablePath == "" {
		return opts, errors.New("both --doc and --table are required")
	}
	return opts, nil
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "pcdump"})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// parseCharset accepts a charset name or a numeric code page.
func parseCharset(s string) (pcd.Charset, error) {
	if cp, err := strconv.Atoi(s); err == nil {
		return pcd.CharsetForCodepage(cp)
	}
	return pcd.CharsetForName(strings.ToLower(s))
}

func dump(w io.Writer, logger *log.Logger, opts options) error {
	cs, err := parseCharset(opts.charset)
	if err != nil {
		return err
	}
	doc, err := os.ReadFile(opts.docPath)
	if err != nil {
		return errors.Wrap(err, "reading document stream")
	}
	table, err := os.ReadFile(opts.tablePath)
	if err != nil {
		return errors.Wrap(err, "reading table stream")
	}
	size := opts.size
	if size == 0 {
		size = len(table) - opts.offset
	}
	logger.Debug("loading piece table", "doc", opts.docPath, "doc_bytes", len(doc),
		"table", opts.tablePath, "offset", opts.offset, "size", size, "charset", cs)
	cfg := pctable.Config{
		MaxRecordLength: opts.maxRecordLength,
		Charset:         cs,
		AllowGaps:       opts.allowGaps,
	}
	tab, err := pctable.New(doc, table, opts.offset, size, opts.fcMin, cfg)
	if err != nil {
		return err
	}
	logger.Info("piece table loaded", "pieces", tab.Len(), "characters", tab.TextLen(), "cp_min", tab.CPMin())
	switch opts.format {
	case FormatList:
		l := newListing(w, opts.color)
		return l.print(tab)
	case FormatText:
		text := strings.ReplaceAll(tab.Text(), "\r", "\n")
		_, err = io.WriteString(w, text)
		return err
	case FormatDot:
		return pctable.Table2Dot(tab, w)
	case FormatHTML:
		var buf bytes.Buffer
		if err := html.Render(&buf, tab); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err = buf.WriteTo(w)
		return err
	}
	return errors.Newf("unknown output format %q", opts.format)
}
