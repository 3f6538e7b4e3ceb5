package def

import "github.com/bwmarrin/discordgo"

// classChoices is the fixed list of classes a schedule can be uploaded for.
var classChoices = []struct {
	Name  string
	Value string
}{
	{"X-1", "x1"},
	{"X-2", "x2"},
	{"X-3", "x3"},
	{"X-4", "x4"},
	{"X-5", "x5"},
	{"X-6", "x6"},
	{"X-7", "x7"},

	{"XI MIPA 1", "ximipa1"},
	{"XI MIPA 2", "ximipa2"},
	{"XI MIPA 3", "ximipa3"},
	{"XI MIPA 4", "ximipa4"},

	{"XI SOSHUM 5", "xisoshum5"},
	{"XI SOSHUM 6", "xisoshum6"},
	{"XI SOSHUM 7", "xisoshum7"},

	{"XII SOSHUM 1", "xiisoshum1"},
	{"XII SOSHUM 2", "xiisoshum2"},

	{"XII MIPA 1", "xiimipa1"},
	{"XII MIPA 2", "xiimipa2"},

	{"XII TERAPAN 1", "xiiterapan1"},
	{"XII TERAPAN 2", "xiiterapan2"},

	{"XII FORMAL 1", "xiiformal1"},
	{"XII FORMAL 2", "xiiformal2"},
}

var UploadCommand = &discordgo.ApplicationCommand{
	Name:        "upload",
	Description: "Upload gambar jadwal baru",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionAttachment,
			Name:        "image",
			Description: "Gambar jadwal (.jpg)",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "kelas",
			Description: "Pilih kelas kamu",
			Required:    true,
			Choices:     uploadClassChoices(),
		},
	},
}

func uploadClassChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(classChoices))
	for _, c := range classChoices {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  c.Name,
			Value: c.Value,
		})
	}
	return choices
}
