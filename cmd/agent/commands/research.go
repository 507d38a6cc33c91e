package commands

import (
	"fmt"

	"github.com/dentaltrack/student-progress/internal/client/api"
	"github.com/dentaltrack/student-progress/internal/client/pending"
	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	researchTitle       string
	researchType        string
	researchDescription string
	researchStatus      string
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Record a research entry",
	RunE:  runResearch,
}

func init() {
	researchCmd.Flags().StringVar(&researchTitle, "title", "", "research title")
	researchCmd.Flags().StringVar(&researchType, "type", "project", "research type (project, patent, yukti, research-paper)")
	researchCmd.Flags().StringVar(&researchDescription, "description", "", "description")
	researchCmd.Flags().StringVar(&researchStatus, "status", "ongoing", "status (ongoing, completed, published)")
	researchCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	req := &models.CreateResearchRequest{
		Title:       researchTitle,
		Type:        researchType,
		Description: researchDescription,
		Status:      researchStatus,
		ClientRef:   uuid.New().String(),
	}

	resp, err := a.client.CreateResearch(cmd.Context(), req)
	if err != nil {
		if api.IsOffline(err) {
			if _, qErr := a.queue.Enqueue(pending.KindResearch, req, req.ClientRef); qErr != nil {
				return qErr
			}
			fmt.Println("Saved offline. Will sync when online.")
			return nil
		}
		return err
	}

	fmt.Printf("Research recorded: %s\n", resp.Research.ID)
	return nil
}
