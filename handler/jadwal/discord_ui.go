package jadwal

import (
	"fmt"
	"io"

	"jadwalbot/review"

	"github.com/bwmarrin/discordgo"
)

// BuildReviewPrompt 创建并返回发送给管理员的审核消息
func BuildReviewPrompt(req *review.Request, preview io.Reader) *discordgo.MessageSend {
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Approve",
					Style:    discordgo.SuccessButton,
					CustomID: review.Decision{Kind: review.KindApprove, RequestID: req.ID}.CustomID(),
					Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
				},
				discordgo.Button{
					Label:    "Reject",
					Style:    discordgo.DangerButton,
					CustomID: review.Decision{Kind: review.KindReject, RequestID: req.ID}.CustomID(),
					Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
				},
			},
		},
	}

	return &discordgo.MessageSend{
		Content: fmt.Sprintf(
			"📥 **Request jadwal oleh <@%s>**\nKelas: `%s`\nNama file: `%s`\nRequest: `%s`",
			req.SubmitterID, req.ClassName, req.FileName, req.ID,
		),
		Files: []*discordgo.File{
			{
				Name:        req.ClassName + ".jpg",
				ContentType: "image/jpeg",
				Reader:      preview,
			},
		},
		Components: components,
	}
}

// BuildReasonMenu 创建并返回拒绝理由选择菜单
func BuildReasonMenu(req *review.Request) *discordgo.MessageSend {
	options := make([]discordgo.SelectMenuOption, 0, len(review.Reasons))
	for _, r := range review.Reasons {
		options = append(options, discordgo.SelectMenuOption{
			Label: r.Label,
			Value: r.Value,
		})
	}

	return &discordgo.MessageSend{
		Content: fmt.Sprintf("❌ Pilih alasan penolakan untuk request `%s`:", req.ID),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						MenuType:    discordgo.StringSelectMenu,
						CustomID:    review.Decision{Kind: review.KindReason, RequestID: req.ID}.CustomID(),
						Placeholder: "Pilih alasan penolakan",
						Options:     options,
					},
				},
			},
		},
	}
}
