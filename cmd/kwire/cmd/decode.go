package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <kind> <hex>",
	Short: "Decode one wire primitive",
	Long: `Decode one wire primitive from hex input and print its value.

Kinds: ` + strings.Join(primitiveKinds(), ", ") + `

Examples:
  kwire decode int32-array 04000000010000000200000003
  kwire decode nullable-string ffff --compact=false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseHex(args[1])
		if err != nil {
			return err
		}

		logger := container.Logger()
		compact := compactMode()
		out, remaining, err := decodePrimitive(args[0], data, compact)
		if err != nil {
			logger.Error().Err(err).Str("kind", args[0]).Bool("compact", compact).Msg("decode failed")
			return err
		}
		if remaining > 0 {
			logger.Warn().Int("bytes", remaining).Msg("trailing bytes after value")
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

// formatHex renders b as lowercase hex for output
func formatHex(b []byte) string {
	return fmt.Sprintf("%x", b)
}
