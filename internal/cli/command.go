// Package cli implements the assist command: one-shot translation, grammar
// correction and word lookup from the terminal.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/langassist/internal/audio"
	"github.com/heartmarshall/langassist/internal/domain"
)

// Assistant runs the three tasks.
type Assistant interface {
	Translate(ctx context.Context, text string) (string, error)
	CorrectGrammar(ctx context.Context, text string) (string, error)
	DefineWord(ctx context.Context, word string) (*domain.WordMeaningResult, error)
}

// Factory builds the assistant. provider overrides the configured
// generation backend when not empty.
type Factory func(ctx context.Context, provider string) (Assistant, error)

// Flags holds the command line options.
type Flags struct {
	Provider string
	AudioDir string
}

// CreateRootCommand creates the assist command tree.
func CreateRootCommand(flags *Flags, newAssistant Factory, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "assist",
		Short: "Vietnamese/English language assistant",
		Long: `assist translates Vietnamese to English, corrects English grammar and
explains English words in Vietnamese with UK and US pronunciations.

Examples:
  assist translate "Hôm nay trời đẹp quá"
  assist grammar "He don't know what to do."
  assist word benevolent --audio-dir ./audio`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&flags.Provider, "provider", "", "generation backend: gemini, openai or stub (default from config)")

	rootCmd.AddCommand(
		textCommand("translate", "Translate Vietnamese text to English", flags, newAssistant, Assistant.Translate),
		textCommand("grammar", "Correct the grammar of an English sentence", flags, newAssistant, Assistant.CorrectGrammar),
		wordCommand(flags, newAssistant),
	)
	return rootCmd
}

func textCommand(
	use, short string,
	flags *Flags,
	newAssistant Factory,
	run func(Assistant, context.Context, string) (string, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <text>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := joinInput(args)
			if err != nil {
				return err
			}
			a, err := newAssistant(cmd.Context(), flags.Provider)
			if err != nil {
				return err
			}
			out, err := run(a, cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func wordCommand(flags *Flags, newAssistant Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word <word>",
		Short: "Explain an English word with UK and US pronunciations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := joinInput(args)
			if err != nil {
				return err
			}
			a, err := newAssistant(cmd.Context(), flags.Provider)
			if err != nil {
				return err
			}
			res, err := a.DefineWord(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)

			if flags.AudioDir == "" {
				return nil
			}
			return writeAudio(cmd, flags.AudioDir, res)
		},
	}
	cmd.Flags().StringVar(&flags.AudioDir, "audio-dir", "", "write uk.wav and us.wav into this directory")
	return cmd
}

// writeAudio saves each available pronunciation as <voice>.wav. A missing
// voice is reported but is not an error.
func writeAudio(cmd *cobra.Command, dir string, res *domain.WordMeaningResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}
	for _, v := range []domain.Voice{domain.VoiceUK, domain.VoiceUS} {
		a := res.AudioFor(v)
		if a == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s pronunciation unavailable\n", strings.ToUpper(v.String()))
			continue
		}
		data, err := audio.EncodeWAV(a)
		if err != nil {
			return fmt.Errorf("encode %s audio: %w", v, err)
		}
		path := filepath.Join(dir, v.String()+".wav")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%.1fs)\n", path, audio.Duration(a))
	}
	return nil
}

var errBlankInput = errors.New("input is blank")

func joinInput(args []string) (string, error) {
	input := strings.Join(args, " ")
	if domain.IsBlank(input) {
		return "", errBlankInput
	}
	return input, nil
}
