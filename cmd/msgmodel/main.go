// Command msgmodel is a thin CLI over the library: one-shot queries,
// streamed responses, and request signing, against any configured
// provider.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LeoooDias/msgModel/config"
	"github.com/LeoooDias/msgModel/core/client"
	"github.com/LeoooDias/msgModel/core/signer"
)

var (
	configPath string
	verbose    bool

	providerName string
	systemPrompt string
	model        string
	filePath     string
	filename     string
	timeoutSecs  int
	maxChunks    int

	signUserID string
	signOrgID  string
	signature  string
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "msgmodel",
		Short: "Unified client for OpenAI- and Gemini-shaped LLM APIs",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	queryCmd := &cobra.Command{
		Use:   "query [prompt]",
		Short: "Send a prompt and print the full response",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}
	addRequestFlags(queryCmd)

	streamCmd := &cobra.Command{
		Use:   "stream [prompt]",
		Short: "Send a prompt and print the response as it arrives",
		Args:  cobra.ExactArgs(1),
		RunE:  runStream,
	}
	addRequestFlags(streamCmd)
	streamCmd.Flags().IntVar(&timeoutSecs, "timeout", 0, "Idle timeout in seconds (0 uses the configured default)")
	streamCmd.Flags().IntVar(&maxChunks, "max-chunks", 0, "Stop after this many chunks (0 streams to the end)")

	signCmd := &cobra.Command{
		Use:   "sign [message]",
		Short: "Print the HMAC signature for a request",
		Args:  cobra.ExactArgs(1),
		RunE:  runSign,
	}
	addSignFlags(signCmd)

	verifyCmd := &cobra.Command{
		Use:   "verify [message]",
		Short: "Check a signature produced by sign",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
	}
	addSignFlags(verifyCmd)
	verifyCmd.Flags().StringVar(&signature, "signature", "", "Signature to verify (required)")
	_ = verifyCmd.MarkFlagRequired("signature")

	rootCmd.AddCommand(queryCmd, streamCmd, signCmd, verifyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&providerName, "provider", "openai", "Provider to use (openai or gemini)")
	cmd.Flags().StringVar(&systemPrompt, "system", "", "System instruction")
	cmd.Flags().StringVar(&model, "model", "", "Model override")
	cmd.Flags().StringVar(&filePath, "file", "", "Path to a file to attach")
	cmd.Flags().StringVar(&filename, "filename", "", "Filename override for MIME resolution")
}

func addSignFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&providerName, "provider", "openai", "Provider name included in the signature")
	cmd.Flags().StringVar(&model, "model", "", "Model included in the signature")
	cmd.Flags().StringVar(&signUserID, "user-id", "", "User identifier included in the signature")
	cmd.Flags().StringVar(&signOrgID, "org-id", "", "Organization identifier included in the signature")
}

func setup() (*client.Client, *config.Config, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	return client.NewFromConfig(cfg), cfg, nil
}

func requestOptions() ([]client.RequestOption, error) {
	var opts []client.RequestOption
	if systemPrompt != "" {
		opts = append(opts, client.WithSystemInstruction(systemPrompt))
	}
	if model != "" {
		opts = append(opts, client.WithModel(model))
	}
	switch {
	case filename != "" && filePath == "":
		return nil, fmt.Errorf("--filename requires --file")
	case filename != "":
		// The override replaces the on-disk name for MIME resolution, so
		// the bytes go through the in-memory source.
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("reading attachment: %w", err)
		}
		opts = append(opts, client.WithFileBytes(data, filename))
	case filePath != "":
		opts = append(opts, client.WithFilePath(filePath))
	}
	return opts, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	llm, _, err := setup()
	if err != nil {
		return err
	}

	opts, err := requestOptions()
	if err != nil {
		return err
	}

	response, err := llm.Query(context.Background(), providerName, args[0], opts...)
	if err != nil {
		return err
	}

	fmt.Println(response.Text)
	return nil
}

func runStream(cmd *cobra.Command, args []string) error {
	llm, _, err := setup()
	if err != nil {
		return err
	}

	opts, err := requestOptions()
	if err != nil {
		return err
	}
	if timeoutSecs > 0 {
		opts = append(opts, client.WithTimeout(time.Duration(timeoutSecs)*time.Second))
	}
	if maxChunks > 0 {
		remaining := maxChunks
		opts = append(opts, client.WithOnChunk(func(chunk string) error {
			remaining--
			if remaining <= 0 {
				return client.StopStream
			}
			return nil
		}))
	}

	stream, err := llm.Stream(context.Background(), providerName, args[0], opts...)
	if err != nil {
		return err
	}

	for chunk, err := range stream.Iter() {
		if err != nil {
			fmt.Println()
			return err
		}
		fmt.Print(chunk)
	}
	fmt.Println()
	return nil
}

func signingSecret(cfg *config.Config) ([]byte, error) {
	if cfg.Signing.Secret == "" {
		return nil, fmt.Errorf("signing secret required (set MSGMODEL_SIGNING_SECRET or signing.secret in the config file)")
	}
	return []byte(cfg.Signing.Secret), nil
}

func runSign(cmd *cobra.Command, args []string) error {
	_, cfg, err := setup()
	if err != nil {
		return err
	}
	secret, err := signingSecret(cfg)
	if err != nil {
		return err
	}

	fmt.Println(signer.New(secret).SignRequest(providerName, args[0], model, signUserID, signOrgID))
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	_, cfg, err := setup()
	if err != nil {
		return err
	}
	secret, err := signingSecret(cfg)
	if err != nil {
		return err
	}

	if !signer.New(secret).VerifyRequest(signature, providerName, args[0], model, signUserID, signOrgID) {
		return fmt.Errorf("signature mismatch")
	}
	fmt.Println("ok")
	return nil
}
