package jadwal

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"jadwalbot/db"
	"jadwalbot/model"
	"jadwalbot/review"
	"jadwalbot/storage"
	"jadwalbot/utils"

	"github.com/bwmarrin/discordgo"
)

// maxImageSize caps how much of an attachment we are willing to download.
const maxImageSize = 8 << 20

// UploadCommandHandler handles the /upload command: it validates the
// submission, checks the cooldown ledger, stages the image and opens a
// review session for the admin.
func UploadCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending deferred response: %v", err)
		return
	}

	go func() {
		user := interactionUser(i)

		data := i.ApplicationCommandData()
		var kelas string
		var attachment *discordgo.MessageAttachment
		for _, opt := range data.Options {
			switch opt.Name {
			case "kelas":
				kelas = storage.NormalizeClassName(opt.StringValue())
			case "image":
				if id, ok := opt.Value.(string); ok && data.Resolved != nil {
					attachment = data.Resolved.Attachments[id]
				}
			}
		}
		if kelas == "" || attachment == nil {
			editReply(s, i, "❌ Perintah tidak lengkap.")
			return
		}
		if err := storage.ValidateClassName(kelas); err != nil {
			editReply(s, i, "❌ Nama kelas tidak valid.")
			return
		}

		if err := storage.ValidateImageName(attachment.Filename); err != nil {
			editReply(s, i, "❌ File harus berformat `.jpg`.")
			return
		}

		now := time.Now()
		eligible, err := db.IsEligible(user.ID, now)
		if err != nil {
			log.Printf("Error checking cooldown for user %s: %v", user.ID, err)
			editReply(s, i, "❌ Terjadi kesalahan saat memeriksa cooldown. Coba lagi nanti.")
			return
		}
		if !eligible {
			remaining, err := db.TimeRemaining(user.ID, now)
			if err != nil {
				log.Printf("Error reading cooldown for user %s: %v", user.ID, err)
				editReply(s, i, "❌ Terjadi kesalahan saat memeriksa cooldown. Coba lagi nanti.")
				return
			}
			countdown := model.NewCountdown(remaining)
			editReply(s, i, fmt.Sprintf("⛔ Kamu sudah upload minggu ini. Coba lagi dalam %s.", countdown))
			return
		}

		imageData, err := downloadAttachment(attachment.URL)
		if err != nil {
			log.Printf("Error downloading attachment for user %s: %v", user.ID, err)
			editReply(s, i, "❌ Gagal mengunduh gambar. Coba lagi nanti.")
			return
		}

		req := &review.Request{
			ID:          review.NewRequestID(now),
			SubmitterID: user.ID,
			ClassName:   kelas,
			FileName:    attachment.Filename,
			CreatedAt:   now,
		}
		req.StagedPath, err = store.Stage(req.ID, kelas, imageData)
		if err != nil {
			log.Printf("Error staging upload %s: %v", req.ID, err)
			editReply(s, i, "❌ Gagal menyimpan gambar. Coba lagi nanti.")
			return
		}

		if err := manager.Open(req); err != nil {
			log.Printf("Error opening review session %s: %v", req.ID, err)
			if discardErr := store.Discard(req.StagedPath); discardErr != nil {
				log.Printf("Error discarding staged file %s: %v", req.StagedPath, discardErr)
			}
			editReply(s, i, "❌ Gagal mengirim request ke admin. Coba lagi nanti.")
			return
		}

		editReply(s, i, "✅ Request berhasil dikirim ke admin.")
	}()
}

func editReply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: utils.StringPtr(content),
	})
	if err != nil {
		log.Printf("Error editing interaction response: %v", err)
	}
}

// downloadAttachment fetches the submitted image from Discord's CDN.
func downloadAttachment(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageSize {
		return nil, errors.New("attachment exceeds size limit")
	}
	return data, nil
}
