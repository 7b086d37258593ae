package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/consultmatch/consultmatch/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects available for staffing",
	Run: func(_ *cobra.Command, _ []string) {
		listProjects()
	},
}

var consultantsCmd = &cobra.Command{
	Use:   "consultants",
	Short: "List consultant profiles",
	Run: func(_ *cobra.Command, _ []string) {
		listConsultants()
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(consultantsCmd)
}

func listProjects() {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	client := newBackendClient(context.Background(), config, zlog)

	projects, err := client.GetProjects()
	if err != nil {
		zlog.Fatal("getting projects", zap.Error(err))
	}

	for _, project := range projects.Items {
		fmt.Printf("%d\t%s\t%s\t%s\n",
			project.ID, project.Name, project.Difficulty,
			strings.Join(project.RequiredSkills(), ", "))
	}

	zlog.Info("listed projects", zap.Int("count", projects.Len()))
}

func listConsultants() {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	client := newBackendClient(context.Background(), config, zlog)

	consultants, err := client.GetConsultants()
	if err != nil {
		zlog.Fatal("getting consultants", zap.Error(err))
	}

	for _, consultant := range consultants.Items {
		fmt.Printf("%d\t%s\t%s\t%d years\t%s\n",
			consultant.ID, consultant.DisplayName(), consultant.SeniorityLevel,
			consultant.YearsOfExperience, consultant.Availability())
	}

	zlog.Info("listed consultants", zap.Int("count", consultants.Len()))
}
