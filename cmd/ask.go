package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/versely/internal/chat"
	"github.com/abhisek/versely/internal/reply"
	"github.com/abhisek/versely/internal/ui/markdown"
)

const askWidth = 100

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one study question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("question is required")
		}

		text, err := askReply(cmd, question)
		if err != nil {
			return err
		}

		parsed := reply.ParseFollowUps(text)
		if isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(markdown.New("").Render(parsed.Body, askWidth))
		} else {
			fmt.Println(parsed.Body)
		}

		if len(parsed.FollowUps) > 0 {
			fmt.Println()
			color.New(color.FgYellow, color.Bold).Println(reply.FollowUpMarker + ":")
			cyan := color.New(color.FgCyan)
			for _, q := range parsed.FollowUps {
				cyan.Printf("  • %s\n", q)
			}
		}
		return nil
	},
}

// askReply answers through the server with --remote, otherwise directly
// with the local provider.
func askReply(cmd *cobra.Command, question string) (string, error) {
	ctx := cmd.Context()
	id := chat.NewMessageID()

	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		resp, err := chat.NewHTTPClient(cfg.ServerURL, nil).Send(ctx, chat.Request{Message: question, MessageID: id})
		if err != nil {
			return "", err
		}
		return resp.Reply, nil
	}

	st, err := openStore(cmd)
	if err != nil {
		log.Warn().Err(err).Msg("not recording this question")
	} else {
		defer st.Close()
	}

	svc, _, err := buildServices(ctx, st, log.Logger)
	if err != nil {
		return "", err
	}
	return svc.Reply(ctx, id, question), nil
}

func init() {
	askCmd.Flags().Bool("remote", false, "Ask the server at --server instead of calling the LLM directly")
}
