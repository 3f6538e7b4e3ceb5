package command

import (
	"jadwalbot/command/def"

	"github.com/bwmarrin/discordgo"
)

// AllCommands contains all of the commands
var AllCommands = []*discordgo.ApplicationCommand{
	def.JadwalCommand,
	def.UploadCommand,
}
