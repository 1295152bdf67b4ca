package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"recruitment-backend/config"
)

var rootCmd = &cobra.Command{
	Use:   "recruitment-backend",
	Short: "Воронка подбора: кандидаты, собеседования, визовый процесс",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(setupPipelinesCmd)

	rootCmd.PersistentFlags().StringVarP(&config.File, "config", "c", config.File, "Path to configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
