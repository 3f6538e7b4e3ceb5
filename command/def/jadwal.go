package def

import "github.com/bwmarrin/discordgo"

var JadwalCommand = &discordgo.ApplicationCommand{
	Name:        "jadwal",
	Description: "Menampilkan jadwal pelajaran untuk kelas tertentu.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "kelas",
			Description: "Nama kelas (contoh: ximipa2, xiisoshum1, dll)",
			Required:    true,
		},
	},
}
