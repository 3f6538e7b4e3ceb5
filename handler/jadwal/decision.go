package jadwal

import (
	"errors"
	"fmt"
	"log"

	"jadwalbot/review"
	"jadwalbot/utils"

	"github.com/bwmarrin/discordgo"
)

// DecisionButtonHandler handles the approve and reject buttons on the
// admin's review prompt. Every press is authenticated against the configured
// admin before it can touch the session.
func DecisionButtonHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	decision, err := review.ParseDecision(i.MessageComponentData().CustomID)
	if err != nil {
		log.Printf("Ignoring malformed decision custom ID: %v", err)
		return
	}

	if !authorize(s, i) {
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("Error sending deferred response: %v", err)
		return
	}

	go func() {
		var actErr error
		switch decision.Kind {
		case review.KindApprove:
			actErr = manager.Approve(decision.RequestID)
		case review.KindReject:
			actErr = manager.BeginReject(decision.RequestID)
		default:
			return
		}
		if actErr != nil {
			reportDecisionError(s, i, decision.RequestID, actErr)
		}
	}()
}

// ReasonSelectHandler handles the rejection reason menu.
func ReasonSelectHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	decision, err := review.ParseDecision(data.CustomID)
	if err != nil || decision.Kind != review.KindReason {
		log.Printf("Ignoring malformed reason custom ID: %v", err)
		return
	}

	if !authorize(s, i) {
		return
	}

	if len(data.Values) == 0 {
		return
	}
	reason := data.Values[0]

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("Error sending deferred response: %v", err)
		return
	}

	// Confirm only once the transition actually happened; a late selection
	// on a resolved session must not look like a rejection.
	go func() {
		if err := manager.Reject(decision.RequestID, reason); err != nil {
			reportDecisionError(s, i, decision.RequestID, err)
			return
		}
		_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: fmt.Sprintf("⛔ Ditolak: %s", reason),
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		if err != nil {
			log.Printf("Error sending rejection confirmation: %v", err)
		}
	}()
}

// authorize rejects decision events from anyone but the configured admin.
// Unauthorized actors get a visible notice and the session is left untouched.
func authorize(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	user := interactionUser(i)
	if user != nil && utils.CheckAuth(user.ID) {
		return true
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "⛔ Kamu tidak punya izin untuk meninjau request ini.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending unauthorized response: %v", err)
	}
	return false
}

// reportDecisionError tells the admin why a decision did nothing. Late
// events on resolved or expired sessions are expected and get a short note;
// real failures are logged by the manager and surfaced here too.
func reportDecisionError(s *discordgo.Session, i *discordgo.InteractionCreate, requestID string, err error) {
	content := fmt.Sprintf("⚠️ Gagal memproses keputusan untuk request %s: %v", requestID, err)
	if errors.Is(err, review.ErrUnknownSession) || errors.Is(err, review.ErrAlreadyResolved) {
		content = "ℹ️ Request ini sudah diproses atau kedaluwarsa."
	} else {
		log.Printf("Decision on request %s failed: %v", requestID, err)
	}

	_, followErr := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if followErr != nil {
		log.Printf("Error sending decision followup: %v", followErr)
	}
}
