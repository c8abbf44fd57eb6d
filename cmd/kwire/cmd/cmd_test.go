package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/kwire/pkg/config"
	"github.com/ssargent/kwire/pkg/corpus"
	"github.com/ssargent/kwire/pkg/di"
	"github.com/ssargent/kwire/pkg/frame"
)

// run executes the root command with args against a fresh container.
// Flag values persist between runs, so callers set the ones they rely on.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	c := di.NewContainer()
	c.SetLogOutput(io.Discard)
	SetContainer(c)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestEncodeDecodeCommands(t *testing.T) {
	t.Run("Encode compact string", func(t *testing.T) {
		out, err := run(t, "encode", "string", "kw", "--compact=true")
		require.NoError(t, err)
		assert.Equal(t, "036b77", out)
	})

	t.Run("Encode classic null", func(t *testing.T) {
		out, err := run(t, "encode", "nullable-string", "--null", "--compact=false")
		require.NoError(t, err)
		assert.Equal(t, "ffff", out)
	})

	t.Run("Decode array", func(t *testing.T) {
		out, err := run(t, "decode", "int32-array", "04000000010000000200000003", "--compact=true")
		require.NoError(t, err)
		assert.Equal(t, "[1,2,3]", out)
	})

	t.Run("Decode reports null error", func(t *testing.T) {
		_, err := run(t, "decode", "string", "00", "--compact=true")
		assert.EqualError(t, err, "non-nullable field value was serialized as null")
	})
}

func TestHeaderDecode(t *testing.T) {
	data, err := parseHex("001200030000000700026b7700ab")
	require.NoError(t, err)

	header, body, err := decodeHeader(data, 2)
	require.NoError(t, err)
	assert.Equal(t, int16(18), header.APIKey)
	assert.Equal(t, int16(3), header.APIVersion)
	assert.Equal(t, int32(7), header.CorrelationID)
	require.NotNil(t, header.ClientID)
	assert.Equal(t, "kw", *header.ClientID)
	assert.Equal(t, []byte{0xab}, body)

	_, _, err = decodeHeader(data[:5], 2)
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "kwire", "config.yaml")

	t.Run("Writes default config", func(t *testing.T) {
		err := writeDefaultConfig(configPath, "/var/lib/kwire", false)
		require.NoError(t, err)

		cfg, err := config.LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/kwire", cfg.CorpusDir)
		assert.True(t, cfg.Codec.Compact)
	})

	t.Run("Refuses to overwrite", func(t *testing.T) {
		err := writeDefaultConfig(configPath, "", false)
		assert.ErrorContains(t, err, "already exists")
	})

	t.Run("Force overwrites", func(t *testing.T) {
		err := writeDefaultConfig(configPath, "", true)
		require.NoError(t, err)

		cfg, err := config.LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig().CorpusDir, cfg.CorpusDir)
	})
}

func TestCorpusCommands(t *testing.T) {
	corpusDir := filepath.Join(t.TempDir(), "corpus")
	sample := "0000000b0012000300000007000000"

	id, err := run(t, "corpus", "add", sample, "--api-key", "18", "--api-version", "3", "--note", "apiversions v3", "--corpus-dir", corpusDir)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	out, err := run(t, "corpus", "get", id, "--corpus-dir", corpusDir)
	require.NoError(t, err)
	assert.Contains(t, out, "api_key: 18")
	assert.Contains(t, out, "frame: "+sample)

	out, err = run(t, "corpus", "list", "--corpus-dir", corpusDir)
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = run(t, "corpus", "verify", "--corpus-dir", corpusDir)
	require.NoError(t, err)
	assert.Equal(t, "1 samples, 0 failed", out)

	_, err = run(t, "corpus", "delete", id, "--corpus-dir", corpusDir)
	require.NoError(t, err)

	_, err = run(t, "corpus", "get", id, "--corpus-dir", corpusDir)
	assert.ErrorIs(t, err, corpus.ErrNotFound)

	_, err = run(t, "corpus", "get", "not-a-ksuid", "--corpus-dir", corpusDir)
	assert.ErrorContains(t, err, "invalid sample id")
}

func TestCheckFrame(t *testing.T) {
	limits := frame.DefaultLimits()

	data, err := parseHex("00000001ff")
	require.NoError(t, err)
	assert.NoError(t, checkFrame(data, limits))

	assert.ErrorIs(t, checkFrame(append(data, 0x00), limits), frame.ErrTrailingBytes)
	assert.ErrorIs(t, checkFrame(data[:4], limits), frame.ErrShortFrame)
}

func TestVerifySampleMismatch(t *testing.T) {
	data, err := parseHex("0000000b0012000300000007000000")
	require.NoError(t, err)

	err = verifySample(&corpus.Sample{APIKey: 3, APIVersion: 3, Frame: data}, frame.DefaultLimits())
	assert.ErrorContains(t, err, "sample says key 3")
}
