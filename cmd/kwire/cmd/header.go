package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/kwire/pkg/frame"
	"github.com/ssargent/kwire/pkg/message"
)

// headerCmd represents the header command
var headerCmd = &cobra.Command{
	Use:   "header <hex>",
	Short: "Decode a request header",
	Long: `Decode a request header from hex input. With --framed the input starts
with the 4-byte frame size.

Examples:
  kwire header 001200030000000700026b7700 --version 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, _ := cmd.Flags().GetInt16("version")
		framed, _ := cmd.Flags().GetBool("framed")

		data, err := parseHex(args[0])
		if err != nil {
			return err
		}
		if framed {
			data, err = frame.ReadFrame(bytes.NewReader(data), container.FrameLimits())
			if err != nil {
				return err
			}
		}

		header, body, err := decodeHeader(data, version)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "api_key: %d\n", header.APIKey)
		fmt.Fprintf(cmd.OutOrStdout(), "api_version: %d\n", header.APIVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "correlation_id: %d\n", header.CorrelationID)
		if header.ClientID != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "client_id: %q\n", *header.ClientID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "client_id: null\n")
		}
		for _, f := range header.UnknownTaggedFields {
			fmt.Fprintf(cmd.OutOrStdout(), "tag %d: %s\n", f.Tag, formatHex(f.Data))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "body: %d bytes\n", len(body))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headerCmd)
	headerCmd.Flags().Int16("version", 1, "Request header version (0-2)")
	headerCmd.Flags().Bool("framed", false, "Input begins with a frame size prefix")
}

// decodeHeader decodes a request header and returns the remaining body bytes
func decodeHeader(data []byte, version int16) (*message.RequestHeader, []byte, error) {
	r := bytes.NewReader(data)
	header := &message.RequestHeader{}
	if err := header.Decode(r, version); err != nil {
		return nil, nil, err
	}
	return header, data[len(data)-r.Len():], nil
}
