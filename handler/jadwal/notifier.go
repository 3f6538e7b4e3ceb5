package jadwal

import (
	"fmt"
	"log"
	"os"

	"jadwalbot/config"
	"jadwalbot/review"

	"github.com/bwmarrin/discordgo"
)

// discordNotifier delivers review prompts and outcome messages over Discord
// DMs. It carries no business logic; failures after a committed state change
// are logged or reported to the admin, never rolled back.
type discordNotifier struct {
	session *discordgo.Session
}

func (n *discordNotifier) adminChannel() (*discordgo.Channel, error) {
	return n.session.UserChannelCreate(config.Cfg.Commands.Auth.AdminID)
}

// PromptAdmin DMs the admin the staged image with the approve/reject buttons
// for this request.
func (n *discordNotifier) PromptAdmin(req *review.Request) error {
	dm, err := n.adminChannel()
	if err != nil {
		return fmt.Errorf("create admin DM channel: %w", err)
	}

	preview, err := os.Open(req.StagedPath)
	if err != nil {
		return fmt.Errorf("open staged file for preview: %w", err)
	}
	defer preview.Close()

	msg := BuildReviewPrompt(req, preview)
	if _, err := n.session.ChannelMessageSendComplex(dm.ID, msg); err != nil {
		return fmt.Errorf("send review prompt: %w", err)
	}
	return nil
}

// SendReasonMenu DMs the admin the rejection reason menu for this request.
func (n *discordNotifier) SendReasonMenu(req *review.Request) error {
	dm, err := n.adminChannel()
	if err != nil {
		return fmt.Errorf("create admin DM channel: %w", err)
	}

	if _, err := n.session.ChannelMessageSendComplex(dm.ID, BuildReasonMenu(req)); err != nil {
		return fmt.Errorf("send reason menu: %w", err)
	}
	return nil
}

// NotifySubmitter DMs the submitting user. A user with closed DMs only
// produces a log line; the workflow outcome stands.
func (n *discordNotifier) NotifySubmitter(userID, content string) {
	dm, err := n.session.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Could not create DM channel for user %s: %v", userID, err)
		return
	}
	if _, err := n.session.ChannelMessageSend(dm.ID, content); err != nil {
		log.Printf("Could not send DM to user %s: %v", userID, err)
	}
}

// NotifyAdmin DMs the admin a plain status message.
func (n *discordNotifier) NotifyAdmin(content string) {
	dm, err := n.adminChannel()
	if err != nil {
		log.Printf("Could not create admin DM channel: %v", err)
		return
	}
	if _, err := n.session.ChannelMessageSend(dm.ID, content); err != nil {
		log.Printf("Could not send DM to admin: %v", err)
	}
}
