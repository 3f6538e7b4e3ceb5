package jadwal

import (
	"log"
	"time"

	"jadwalbot/command/def"
	"jadwalbot/config"
	"jadwalbot/db"
	"jadwalbot/handler"
	"jadwalbot/review"
	"jadwalbot/storage"

	"github.com/bwmarrin/discordgo"
)

var (
	store   *storage.Store
	manager *review.Manager
)

// ledgerAdapter exposes the db package to the review manager.
type ledgerAdapter struct{}

func (ledgerAdapter) RecordApproval(userID string, now time.Time) error {
	return db.RecordApproval(userID, now)
}

// Setup builds the staging store, the review session manager and the Discord
// notifier, then registers all handlers for the jadwal package.
func Setup(s *discordgo.Session) {
	cfg := config.Cfg.Jadwal

	var err error
	store, err = storage.New(cfg.CatalogDir, cfg.TempDir)
	if err != nil {
		log.Fatalf("Failed to set up storage: %v", err)
	}

	manager = review.NewManager(
		&discordNotifier{session: s},
		store,
		ledgerAdapter{},
		time.Duration(cfg.DecisionTimeoutSeconds)*time.Second,
		time.Duration(cfg.ReasonTimeoutSeconds)*time.Second,
	)

	handler.AddCommandHandler(def.JadwalCommand.Name, JadwalCommandHandler)
	handler.AddCommandHandler(def.UploadCommand.Name, UploadCommandHandler)

	// 审核相关处理器
	handler.AddComponentHandler("jadwal_approve", DecisionButtonHandler)
	handler.AddComponentHandler("jadwal_reject", DecisionButtonHandler)
	handler.AddComponentHandler("jadwal_reason", ReasonSelectHandler)
}

// interactionUser returns the invoking user for both guild and DM
// interactions. Decision buttons live in the admin's DM, where Member is nil.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
