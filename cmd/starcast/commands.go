package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starcast-app/starcast/internal/backend"
	"github.com/starcast-app/starcast/internal/chat"
	"github.com/starcast-app/starcast/internal/config"
)

// --- status ---

// services probed by the status command, in display order.
var services = []string{"text", "audio", "video", "upload"}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend and service status",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		printStatus("Backend", "%s", e.cfg.Backend.BaseURL)

		health, err := e.client.Health(cmd.Context())
		if err != nil {
			printStatus("Server", "stopped (%v)", err)
			return nil
		}
		printStatus("Server", "%s", health)

		for _, svc := range services {
			st, err := e.client.Status(cmd.Context(), svc)
			if err != nil {
				printStatus(svc, "unknown")
				continue
			}
			if st.Available {
				printStatus(svc, "available")
			} else {
				printStatus(svc, "unavailable (%s)", st.Detail)
			}
		}

		printStatus("Model", "%s", e.models.Active())
		printStatus("Data dir", "%s", e.cfg.Storage.DataDir)
		return nil
	},
}

// --- models ---

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List and select generation models",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available models",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.models.Refresh(cmd.Context()); err != nil {
			printWarning("Could not refresh models; showing last known state.")
		}

		available := e.models.Available()
		if len(available) == 0 {
			fmt.Println("No models available.")
			return nil
		}

		active := e.models.Active()
		for _, name := range available {
			if name == active {
				fmt.Printf("* %s\n", colorize(colorBold, name))
			} else {
				fmt.Printf("  %s\n", name)
			}
		}
		return nil
	},
}

var modelsSelectCmd = &cobra.Command{
	Use:   "select <name>",
	Short: "Select the active generation model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.models.Select(args[0]); err != nil {
			return err
		}
		printSuccess("Selected model %s", args[0])
		return nil
	},
}

var modelsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the model list from the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.models.Refresh(cmd.Context()); err != nil {
			return err
		}
		printSuccess("%d models available, active: %s", len(e.models.Available()), e.models.Active())
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsSelectCmd)
	modelsCmd.AddCommand(modelsRefreshCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}
		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the astrologer",
	Long: `Interactive chat with the backend astrologer persona. The running
transcript is sent with every turn so the conversation keeps its context.
An empty line or Ctrl-D ends the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		transcript := chat.NewTranscript()
		scanner := bufio.NewScanner(os.Stdin)

		fmt.Fprintln(os.Stderr, "Ask the astrologer. Empty line to quit.")
		for {
			fmt.Fprint(os.Stderr, colorize(colorBold, "you> "))
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				break
			}

			transcript.Append(chat.AuthorUser, line)
			reply, err := e.client.Chat(cmd.Context(), e.models.Active(), chatMessages(transcript))
			if err != nil {
				// The envelope already rendered the failure; the turn is
				// lost but the session continues.
				continue
			}
			transcript.Append(chat.AuthorAssistant, reply)
			fmt.Printf("%s %s\n", colorize(colorCyan, "astrologer>"), reply)
		}
		return scanner.Err()
	},
}

func chatMessages(t *chat.Transcript) []backend.ChatMessage {
	entries := t.Entries()
	msgs := make([]backend.ChatMessage, len(entries))
	for i, e := range entries {
		msgs[i] = backend.ChatMessage{Role: string(e.Author), Content: e.Content}
	}
	return msgs
}
