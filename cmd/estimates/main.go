package main

import (
	"context"
	"fmt"
	"os"

	"managrr/internal/adapter/client"
	"managrr/internal/config"
	"managrr/internal/domain/entities"
	"managrr/internal/infrastructure/httpclient"
	"managrr/internal/logging"
	"managrr/internal/ui/tui"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = logging.Discard
	}
	closer, err := logging.Setup(cfg.LogLevel, logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	transport := httpclient.New(cfg.APIBaseURL,
		httpclient.WithTimeout(cfg.HTTPTimeout),
		httpclient.WithToken(cfg.APIToken),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.New(ctx, client.NewEstimateClient(transport),
		entities.Contract{ID: cfg.ContractID},
		entities.UserType(cfg.UserType),
	)

	log.WithFields(log.Fields{"contract_id": cfg.ContractID, "user_type": cfg.UserType}).Info("[estimates] starting")
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.WithError(err).Error("[estimates] program exited with error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
