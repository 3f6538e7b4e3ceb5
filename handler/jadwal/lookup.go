package jadwal

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"jadwalbot/storage"
	"jadwalbot/utils"

	"github.com/bwmarrin/discordgo"
)

// JadwalCommandHandler handles the /jadwal command: it fetches the stored
// schedule image for a class and replies with it privately.
func JadwalCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// 立即响应交互
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral, // 结果仅对用户可见
		},
	})
	if err != nil {
		log.Printf("Error sending deferred response: %v", err)
		return
	}

	go func() {
		options := i.ApplicationCommandData().Options
		if len(options) == 0 {
			return
		}
		kelas := storage.NormalizeClassName(options[0].StringValue())
		if err := storage.ValidateClassName(kelas); err != nil {
			s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
				Content: utils.StringPtr("❌ Nama kelas tidak valid."),
			})
			return
		}

		data, err := store.Fetch(kelas)
		if err != nil {
			content := fmt.Sprintf("❌ Jadwal untuk kelas `%s` tidak ditemukan.", kelas)
			if !errors.Is(err, storage.ErrNotFound) {
				log.Printf("Error fetching schedule for %s: %v", kelas, err)
				content = "❌ Terjadi kesalahan saat mengambil jadwal."
			}
			s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
				Content: utils.StringPtr(content),
			})
			return
		}

		s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: utils.StringPtr(fmt.Sprintf("📅 Jadwal untuk kelas **%s**", kelas)),
			Files: []*discordgo.File{
				{
					Name:        kelas + ".jpg",
					ContentType: "image/jpeg",
					Reader:      bytes.NewReader(data),
				},
			},
		})
	}()
}
