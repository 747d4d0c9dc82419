package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a merit question from the terminal",
	Long:  "Runs one conversation in the terminal. With a question argument the first turn is taken from it; follow-up answers are read from stdin until the question resolves.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		scanner := bufio.NewScanner(os.Stdin)
		message := strings.Join(args, " ")
		sessionID := ""

		for {
			if message == "" {
				fmt.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				message = strings.TrimSpace(scanner.Text())
				if message == "" || message == "exit" || message == "quit" {
					return nil
				}
			}

			reply := env.Engine.Turn(ctx, model.TurnRequest{SessionID: sessionID, Message: message})
			sessionID = reply.SessionID
			message = ""

			fmt.Println(reply.Reply)
			if !awaitingAnswer(reply) {
				return nil
			}
		}
	},
}

func awaitingAnswer(reply model.TurnReply) bool {
	for _, out := range reply.Outcomes {
		if out.Kind == model.OutcomeAskSlot {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(askCmd)
}
