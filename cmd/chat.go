package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"toolbelt/internal/chatbot"
	"toolbelt/internal/config"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to a pattern-matching chatbot that learns new responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		know, err := chatbot.LoadKnowledge(filepath.Join(cfg.DataDir, "knowledge.json"))
		if err != nil {
			return err
		}
		bot := chatbot.New(know)

		fmt.Println("════════ CHATBOT ════════")
		fmt.Println("Commands: 'learn' to teach me, 'stats' for statistics, 'quit' or 'exit' to leave.")
		fmt.Println("\nBot: Hello! I'm a learning chatbot. What's your name?")

		for {
			input := readLine("\nYou: ")
			if input == "" {
				continue
			}

			switch strings.ToLower(input) {
			case "quit", "exit":
				fmt.Printf("\nBot: %s\n", bot.Respond("goodbye"))
				printChatStats(bot)
				return nil
			case "learn":
				chatTeach(know)
				continue
			case "stats":
				printChatStats(bot)
				continue
			}

			fmt.Printf("\nBot: %s\n", bot.Respond(input))
		}
	},
}

// chatTeach captures the next two inputs as a pattern→response pair.
func chatTeach(know *chatbot.Knowledge) {
	fmt.Println("\n--- TEACHING MODE ---")
	pattern := readLine("What should I respond to? ")
	response := readLine("What should I say? ")

	if err := know.Learn(pattern, response); err != nil {
		fmt.Printf("Not saved: %v\n", err)
		return
	}
	fmt.Println("Thanks! I've learned something new.")
}

func printChatStats(bot *chatbot.Bot) {
	s := bot.Stats()
	fmt.Println("\n════════ CONVERSATION STATISTICS ════════")
	fmt.Printf("Total messages:   %d\n", s.Turns)
	fmt.Printf("Learned patterns: %d\n", s.LearnedPatterns)
	if len(s.TopIntents) > 0 {
		fmt.Println("Top intents:")
		for _, ic := range s.TopIntents {
			fmt.Printf("  %-12s %d\n", ic.Name, ic.N)
		}
	}
}
