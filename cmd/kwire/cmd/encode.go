package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <kind> [value]",
	Short: "Encode one wire primitive",
	Long: `Encode one wire primitive and print the result as hex.

Kinds: ` + strings.Join(primitiveKinds(), ", ") + `

Arrays take a comma-separated list, bytes take hex and tagged fields take
tag=hex pairs.

Examples:
  kwire encode string client-1
  kwire encode int32-array 1,2,3
  kwire encode nullable-bytes --null`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		null, _ := cmd.Flags().GetBool("null")
		value := ""
		if len(args) == 2 {
			value = args[1]
		}

		compact := compactMode()
		out, err := encodePrimitive(args[0], value, compact, null)
		if err != nil {
			logger := container.Logger()
			logger.Error().Err(err).Str("kind", args[0]).Bool("compact", compact).Msg("encode failed")
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), formatHex(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().Bool("null", false, "Encode the null marker (nullable kinds only)")
}
