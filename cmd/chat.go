package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rekabot/rekabot/internal/config"
	"github.com/rekabot/rekabot/internal/container"
	"github.com/rekabot/rekabot/internal/schema"
	"github.com/rekabot/rekabot/internal/session"
	"github.com/rekabot/rekabot/internal/shared/llmutils"
)

var (
	chatMessage string
	chatSession string
	chatNoTools bool
	chatDocPath string
	chatWindow  int
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with rekabot",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Send a single message and exit")
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "cli:default", "Session key")
	chatCmd.Flags().BoolVar(&chatNoTools, "no-tools", false, "Disable the tool protocol for this chat")
	chatCmd.Flags().StringVar(&chatDocPath, "document", "", "Ground answers on this text file")
	chatCmd.Flags().IntVar(&chatWindow, "window", 50, "How many history messages to send per turn")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}

	var document string
	if chatDocPath != "" {
		data, err := os.ReadFile(chatDocPath)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		document = string(data)
	}

	sess := c.Sessions().GetOrCreate(chatSession)

	if chatMessage != "" {
		return runOneShot(c, sess, document)
	}
	return runInteractive(c, sess, document)
}

// runOneShot sends one message and prints the reply.
func runOneShot(c *container.Container, sess *session.Session, document string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	out, err := sendTurn(ctx, c, sess, chatMessage, document)
	if err != nil {
		return err
	}
	printTurn(out)
	return nil
}

// runInteractive reads lines from stdin and runs one turn per line.
func runInteractive(c *container.Container, sess *session.Session, document string) error {
	fmt.Printf("%s Interactive mode (type 'exit' or Ctrl+C to quit)\n\n", logo)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if exitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}
		if line == "/new" {
			sess.Clear()
			fmt.Println("Session cleared.")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		out, err := sendTurn(ctx, c, sess, line, document)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		printTurn(out)
	}
}

// sendTurn appends the user message, runs a turn, records the outcome, and
// persists the session.
func sendTurn(ctx context.Context, c *container.Container, sess *session.Session, message, document string) (schema.TurnOutput, error) {
	sess.AddUser(message)

	out, err := c.Agent().Turn(ctx, sess.GetHistory(chatWindow), !chatNoTools, document)
	if err != nil {
		return schema.TurnOutput{}, err
	}

	sess.AddTurn(out)
	if saveErr := c.Sessions().Save(sess); saveErr != nil {
		fmt.Fprintf(os.Stderr, "warning: session not saved: %v\n", saveErr)
	}
	return out, nil
}

func printTurn(out schema.TurnOutput) {
	fmt.Printf("\nReka: %s\n", out.Text)
	for _, tr := range out.ToolResults {
		status := "✓"
		detail := ""
		if !tr.Result.Success() {
			status = "✗"
			detail = " — " + llmutils.Truncate(tr.Result.ErrorMessage(), 120)
		} else if f, ok := tr.Result["formatted"].(string); ok {
			detail = " — " + llmutils.Truncate(f, 120)
		}
		fmt.Printf("  %s %s%s\n", status, tr.ToolName, detail)
	}
	fmt.Println()
}
