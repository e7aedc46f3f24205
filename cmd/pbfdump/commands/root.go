// Package commands implements the pbfdump command line.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anirudhraja/pbf/internal/dump"
	"github.com/anirudhraja/pbf/vtile"
)

type options struct {
	depth    int
	offsets  bool
	hexInput bool
	tile     bool
	features bool
	logLevel string
}

// NewRootCmd builds the pbfdump command.
func NewRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "pbfdump [file]",
		Short: "Decode protobuf payloads without a schema",
		Long: `pbfdump prints the fields of a protobuf payload the way protoc --decode_raw
does. Length-delimited fields that parse as messages are expanded.

With --tile the input is read as a Mapbox vector tile and summarized per layer.

The payload is read from file, or from stdin when file is missing or "-".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.depth, "depth", dump.DefaultMaxDepth, "How deep to expand nested messages (negative disables)")
	flags.BoolVar(&opts.offsets, "offsets", false, "Prefix every field with its byte offset")
	flags.BoolVar(&opts.hexInput, "hex", false, "Input is hex text instead of binary")
	flags.BoolVar(&opts.tile, "tile", false, "Summarize the input as a vector tile")
	flags.BoolVar(&opts.features, "features", false, "With --tile, list every feature")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	return cmd
}

// Execute runs the command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// PrintErr prints an error message to stderr.
func PrintErr(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func run(cmd *cobra.Command, args []string, opts options) error {
	logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
	if err != nil {
		return err
	}

	data, err := readInput(cmd, args, opts.hexInput)
	if err != nil {
		return err
	}
	logger.Debug("read input", "bytes", len(data))

	if opts.tile {
		return printTile(cmd.OutOrStdout(), data, opts.features, logger)
	}

	nodes, err := dump.Walk(data, dump.Options{MaxDepth: opts.depth, Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	logger.Info("decoded", "bytes", len(data), "fields", dump.Count(nodes))
	return dump.Fprint(cmd.OutOrStdout(), nodes, opts.offsets)
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func readInput(cmd *cobra.Command, args []string, hexInput bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if !hexInput {
		return data, nil
	}

	text := strings.Join(strings.Fields(string(data)), "")
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return decoded, nil
}

func printTile(out io.Writer, data []byte, features bool, logger *slog.Logger) error {
	r, err := vtile.NewReader(data)
	if err != nil {
		return fmt.Errorf("failed to decode tile: %w", err)
	}
	logger.Info("decoded tile", "bytes", len(data), "layers", len(r.Layers))

	for _, l := range r.Layers {
		fmt.Fprintf(out, "layer %q: version %d, extent %d, %d features, %d keys, %d values\n",
			l.Name, l.Version, l.Extent, l.Len(), len(l.Keys), len(l.Values))
		if !features {
			continue
		}
		for i := 0; i < l.Len(); i++ {
			f, err := l.Feature(i)
			if err != nil {
				return err
			}
			line, err := describeFeature(f)
			if err != nil {
				return fmt.Errorf("layer %q feature %d: %w", l.Name, i, err)
			}
			fmt.Fprintf(out, "  #%d %s\n", i, line)
		}
	}
	return nil
}

func describeFeature(f *vtile.FeatureReader) (string, error) {
	rings, err := f.LoadGeometry()
	if err != nil {
		return "", err
	}
	props, err := f.Properties()
	if err != nil {
		return "", err
	}

	points := 0
	for _, r := range rings {
		points += len(r)
	}
	b := vtile.Bounds(rings)

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, props[k])
	}

	return fmt.Sprintf("id=%d type=%s rings=%d points=%d bbox=[%d %d %d %d] {%s}",
		f.ID, f.Type, len(rings), points, b[0], b[1], b[2], b[3], strings.Join(pairs, " ")), nil
}
