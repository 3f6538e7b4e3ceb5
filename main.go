package main

import (
	"jadwalbot/bot"
)

func main() {
	bot.Start()
}
