package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/consultmatch/consultmatch/internal/ai"
	"github.com/consultmatch/consultmatch/internal/ai/gemini"
	"github.com/consultmatch/consultmatch/internal/ai/ollama"
	"github.com/consultmatch/consultmatch/internal/consultmatch"
	"github.com/consultmatch/consultmatch/internal/logger"
	"github.com/consultmatch/consultmatch/internal/score"
	"github.com/consultmatch/consultmatch/internal/secrets"
	"github.com/consultmatch/consultmatch/internal/staffing"
	"github.com/consultmatch/consultmatch/internal/utils"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptConfirmStaffing  = "Confirm staffing"
	PromptAskFollowUp      = "Ask a follow-up question"
	PromptShowConversation = "Show conversation"
	PromptQuit             = "Quit"

	// The wizard pauses briefly after a successful commit before
	// returning to the shell.
	postStaffingDelay = 2 * time.Second

	replyPreviewLength = 200
)

var errQuit = errors.New("quit requested")

var staffCmd = &cobra.Command{
	Use:   "staff <project-id>",
	Short: "Run the AI-assisted staffing workflow for a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		staff(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(staffCmd)

	staffCmd.Flags().String("score-strategy", score.StrategyRemapped, "score display strategy: remapped or linear")
}

func staff(cmd *cobra.Command, rawProjectID string) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	projectID, err := strconv.Atoi(rawProjectID)
	if err != nil {
		zlog.Fatal("project id must be numeric", zap.String("project_id", rawProjectID))
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	normalizer, err := score.ByName(cmd.Flag("score-strategy").Value.String())
	if err != nil {
		zlog.Fatal("resolving score strategy", zap.Error(err))
	}

	backend := newBackendClient(ctx, config, zlog)

	generator, err := newGenerator(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("building AI generator", zap.Error(err))
	}

	workflow := staffing.NewWorkflow(backend, generator, logger.WithAIFields(zlog, providerName(config), generator.Model()))

	session, err := workflow.Start(projectID)
	if err != nil {
		zlog.Fatal("starting staffing session", zap.Error(err))
	}

	printProject(session.Project)

	if !confirm("Generate recommendations for this project?") {
		zlog.Info("exiting", zap.String("reason", "declined at project review"))
		return
	}

	if err := workflow.FetchRecommendations(session); err != nil {
		zlog.Fatal("fetching recommendations", zap.Error(err))
	}

	if session.Recommendations.Len() == 0 {
		zlog.Info("exiting", zap.String("reason", "no matches found for this project"))
		return
	}

	printRecommendations(session.Recommendations, normalizer)

	if !confirm("Request AI analysis for the top candidates?") {
		zlog.Info("exiting", zap.String("reason", "declined at candidate review"))
		return
	}

	if err := workflow.Analyze(ctx, session); err != nil {
		zlog.Fatal("AI analysis failed", zap.Error(err))
	}

	if reply, ok := session.FirstReply(); ok {
		fmt.Printf("\n%s\n\n", reply)
	}

	for {
		if err := handleReplyAction(ctx, workflow, session, zlog); err != nil {
			if errors.Is(err, errQuit) {
				return
			}
			// Step errors are terminal for the step, not the wizard:
			// surface them inline and let the user decide.
			fmt.Printf("error: %v\n", err)
		}

		if outcome, _ := session.Outcome(); outcome == staffing.OutcomeSuccess {
			if err := utils.WaitFor(ctx, postStaffingDelay); err != nil {
				return
			}
			return
		}
	}
}

func handleReplyAction(ctx context.Context, workflow *staffing.Workflow, session *staffing.Session, zlog *zap.Logger) error {
	action := promptui.Select{
		Label: "Next step",
		Items: []string{PromptConfirmStaffing, PromptAskFollowUp, PromptShowConversation, PromptQuit},
	}

	_, selected, err := action.Run()
	if err != nil {
		return errQuit
	}

	switch selected {
	case PromptConfirmStaffing:
		team, err := workflow.Confirm(session)
		if err != nil {
			return err
		}

		fmt.Println("Project staffed with:")
		for i, consultant := range team {
			fmt.Printf("  %d. %s (%s)\n", i+1, consultant.DisplayName(), consultant.SeniorityLevel)
		}
		return nil

	case PromptAskFollowUp:
		input := promptui.Prompt{Label: "Your question"}
		question, err := input.Run()
		if err != nil {
			return errQuit
		}

		if err := workflow.Ask(ctx, session, question); err != nil {
			return err
		}

		turns := session.Conversation()
		fmt.Printf("\n%s\n\n", turns[len(turns)-1].Content)

		zlog.Debug("follow-up answered",
			zap.String(logger.FieldSession, session.ID),
			zap.String("reply_preview", utils.TruncateForLog(turns[len(turns)-1].Content, replyPreviewLength)),
		)
		return nil

	case PromptShowConversation:
		for _, turn := range session.Conversation() {
			fmt.Printf("[%s]\n%s\n\n", turn.Role, turn.Content)
		}
		return nil

	case PromptQuit:
		zlog.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errQuit

	default:
		return fmt.Errorf("invalid action: %s", selected)
	}
}

func confirm(label string) bool {
	prompt := promptui.Select{
		Label: label,
		Items: []string{"Yes", "No"},
	}

	_, answer, err := prompt.Run()
	return err == nil && answer == "Yes"
}

func printProject(project *consultmatch.Project) {
	fmt.Printf("\n%s\n", project.Name)
	fmt.Printf("  Difficulty: %s\n", project.Difficulty)
	fmt.Printf("  Industry:   %s\n", project.PreferredIndustry)
	fmt.Printf("  Skills:     %s\n", strings.Join(project.RequiredSkills(), ", "))
	fmt.Printf("  Timeline:   %s - %s\n\n", project.StartDate, project.EndDate)
}

func printRecommendations(recommendations *consultmatch.Recommendations, normalizer score.Normalizer) {
	fmt.Printf("Top recommended consultants (%d):\n", recommendations.Len())

	for i, match := range recommendations.Items {
		percentage := normalizer.Percentage(match.MatchScore)
		severity := normalizer.Classify(percentage)

		fmt.Printf("  %d. %s - %s, %d years - %d%% match (%s)\n",
			i+1, match.Consultant.DisplayName(), match.Consultant.SeniorityLevel,
			match.Consultant.YearsOfExperience, percentage, severity)

		for _, reason := range match.MatchReasons {
			fmt.Printf("     - %s\n", reason)
		}
	}

	fmt.Println()
}

func newBackendClient(ctx context.Context, config *Config, zlog *zap.Logger) *consultmatch.Client {
	token, err := resolveToken(config)
	if err != nil {
		zlog.Warn("no backend token configured, proceeding unauthenticated",
			zap.String("hint", "set CONSULTMATCH_TOKEN_FILE or the 'token-file' key in the configuration file"),
		)
	}

	client := consultmatch.New(ctx, zlog, token)

	if config.Backend != nil && config.Backend.URL != "" {
		client.APIURL = config.Backend.URL
	}
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return client
}

func providerName(config *Config) string {
	if config.AI == nil {
		return "ollama"
	}

	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider == "" {
		return "ollama"
	}

	return provider
}

func newGenerator(ctx context.Context, config *Config, zlog *zap.Logger) (ai.Generator, error) {
	aiConfig := config.AI
	if aiConfig == nil {
		aiConfig = &AIConfig{}
	}

	provider := providerName(config)

	switch provider {
	case "ollama":
		var url, model string
		if aiConfig.Ollama != nil {
			url = aiConfig.Ollama.URL
			model = aiConfig.Ollama.Model
		}

		generator := ollama.NewGenerator(zlog, url, model)
		zlog.Debug("using local inference endpoint",
			logger.StringFields(
				logger.StringField{Key: logger.FieldProvider, Value: "ollama"},
				logger.StringField{Key: logger.FieldModel, Value: generator.Model()},
			)...)

		return generator, nil

	case "gemini":
		if aiConfig.Gemini == nil {
			return nil, fmt.Errorf("gemini configuration is required when the gemini provider is selected")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: aiConfig.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file)", err)
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, aiConfig.Gemini.Model)
		if err != nil {
			return nil, err
		}

		zlog.Debug("using gemini inference",
			logger.StringFields(
				logger.StringField{Key: logger.FieldProvider, Value: "gemini"},
				logger.StringField{Key: logger.FieldModel, Value: generator.Model()},
			)...)

		return generator, nil

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", aiConfig.Provider)
	}
}

func resolveToken(config *Config) (string, error) {
	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "backend token",
		File: tokenFile,
		Env:  "CONSULTMATCH_TOKEN",
	})
}
