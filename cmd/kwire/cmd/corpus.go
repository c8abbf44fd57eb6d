package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/kwire/pkg/corpus"
	"github.com/ssargent/kwire/pkg/frame"
	"github.com/ssargent/kwire/pkg/message"
)

// corpusCmd represents the corpus command
var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage captured frame samples",
	Long: `Manage the corpus of captured request frames.

Examples:
  kwire corpus add 0000000b0012000300000007000000 --api-key 18 --api-version 3
  kwire corpus list
  kwire corpus verify`,
}

var corpusAddCmd = &cobra.Command{
	Use:   "add <hex>",
	Short: "Add a size-prefixed frame to the corpus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey, _ := cmd.Flags().GetInt16("api-key")
		apiVersion, _ := cmd.Flags().GetInt16("api-version")
		note, _ := cmd.Flags().GetString("note")

		data, err := parseHex(args[0])
		if err != nil {
			return err
		}
		if err := checkFrame(data, container.FrameLimits()); err != nil {
			return err
		}

		store, err := container.OpenCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Add(&corpus.Sample{
			APIKey:     apiKey,
			APIVersion: apiVersion,
			Note:       note,
			Frame:      data,
		})
		if err != nil {
			return err
		}

		logger := container.Logger()
		logger.Info().Str("id", id.String()).Int("bytes", len(data)).Msg("sample added")
		fmt.Fprintln(cmd.OutOrStdout(), id.String())
		return nil
	},
}

var corpusGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a sample",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid sample id %q: %w", args[0], err)
		}

		store, err := container.OpenCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		sample, err := store.Get(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n", sample.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "captured: %s\n", sample.Captured().Format(time.RFC3339))
		fmt.Fprintf(cmd.OutOrStdout(), "api_key: %d\n", sample.APIKey)
		fmt.Fprintf(cmd.OutOrStdout(), "api_version: %d\n", sample.APIVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "note: %q\n", sample.Note)
		fmt.Fprintf(cmd.OutOrStdout(), "frame: %s\n", formatHex(sample.Frame))
		return nil
	},
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List samples in capture order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := container.OpenCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		samples, err := store.List()
		if err != nil {
			return err
		}
		for _, s := range samples {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  key=%d v=%d  %d bytes  %s\n", s.ID, s.APIKey, s.APIVersion, len(s.Frame), s.Note)
		}
		return nil
	},
}

var corpusDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a sample",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid sample id %q: %w", args[0], err)
		}

		store, err := container.OpenCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(id); err != nil {
			return err
		}
		logger := container.Logger()
		logger.Info().Str("id", id.String()).Msg("sample deleted")
		return nil
	},
}

var corpusVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Decode the request header of every sample",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := container.OpenCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		samples, err := store.List()
		if err != nil {
			return err
		}

		logger := container.Logger()
		failed := 0
		for _, s := range samples {
			if err := verifySample(s, container.FrameLimits()); err != nil {
				failed++
				logger.Error().Err(err).Str("id", s.ID.String()).Msg("sample failed")
				continue
			}
			logger.Debug().Str("id", s.ID.String()).Msg("sample ok")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d samples, %d failed\n", len(samples), failed)
		if failed > 0 {
			return fmt.Errorf("%d samples failed verification", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.AddCommand(corpusAddCmd, corpusGetCmd, corpusListCmd, corpusDeleteCmd, corpusVerifyCmd)

	corpusAddCmd.Flags().Int16("api-key", 0, "API key of the captured request")
	corpusAddCmd.Flags().Int16("api-version", 0, "API version of the captured request")
	corpusAddCmd.Flags().String("note", "", "Free-form description")
}

// checkFrame reports whether data is exactly one size-prefixed frame
func checkFrame(data []byte, limits frame.Limits) error {
	r := bytes.NewReader(data)
	if _, err := frame.ReadFrame(r, limits); err != nil {
		return err
	}
	if r.Len() != 0 {
		return fmt.Errorf("%w: %d bytes after frame", frame.ErrTrailingBytes, r.Len())
	}
	return nil
}

// verifySample checks that a sample's frame holds a request header matching
// the api key and version it was captured as
func verifySample(s *corpus.Sample, limits frame.Limits) error {
	payload, err := frame.ReadFrame(bytes.NewReader(s.Frame), limits)
	if err != nil {
		return err
	}
	version := message.RequestHeaderVersion(s.APIKey, s.APIVersion)
	header, _, err := decodeHeader(payload, version)
	if err != nil {
		return err
	}
	if header.APIKey != s.APIKey || header.APIVersion != s.APIVersion {
		return fmt.Errorf("header is key %d v%d, sample says key %d v%d",
			header.APIKey, header.APIVersion, s.APIKey, s.APIVersion)
	}
	return nil
}
