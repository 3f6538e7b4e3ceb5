package bot

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"jadwalbot/command"
	"jadwalbot/config"
	"jadwalbot/db"
	"jadwalbot/handler/jadwal"

	"github.com/bwmarrin/discordgo"
)

var dg *discordgo.Session

// Start 启动机器人
func Start() {
	err := config.LoadConfig()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		return
	}

	if config.Cfg.Token == "" {
		log.Printf("Warning: Token is empty!")
	}

	db.InitDB(config.Cfg.Jadwal.DatabasePath)

	// 使用提供的机器人令牌创建一个新的 Discord 会话
	dg, err = discordgo.New("Bot " + config.Cfg.Token)
	if err != nil {
		log.Printf("Error creating Discord session: %v", err)
		return
	}

	jadwal.Setup(dg)
	registerEventHandlers(dg)

	err = dg.Open()
	if err != nil {
		log.Printf("error opening connection, %v", err)
		return
	}

	// 全局注册斜杠命令
	appID := config.Cfg.AppID
	if appID == "" {
		appID = dg.State.User.ID
	}
	for _, cmd := range command.AllCommands {
		_, err := dg.ApplicationCommandCreate(appID, "", cmd)
		if err != nil {
			log.Fatalf("Cannot create '%v' command: %v", cmd.Name, err)
		}
	}

	log.Printf("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	dg.Close()
}

// GetSession 返回当前的 Discord 会话
func GetSession() *discordgo.Session {
	return dg
}
