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
	caseProcedure string
	casePatient   int
	caseNotes     string
)

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Record a clinical case",
	RunE:  runCase,
}

func init() {
	caseCmd.Flags().StringVar(&caseProcedure, "procedure", "cavity", "procedure type (cavity, scaling, extraction, crown)")
	caseCmd.Flags().IntVar(&casePatient, "age", 0, "patient age")
	caseCmd.Flags().StringVar(&caseNotes, "notes", "", "case notes")
	rootCmd.AddCommand(caseCmd)
}

func runCase(cmd *cobra.Command, args []string) error {
	req := &models.CreateCaseRequest{
		Procedure:  caseProcedure,
		PatientAge: casePatient,
		Notes:      caseNotes,
		ClientRef:  uuid.New().String(),
	}

	resp, err := a.client.CreateCase(cmd.Context(), req)
	if err != nil {
		if api.IsOffline(err) {
			if _, qErr := a.queue.Enqueue(pending.KindCase, req, req.ClientRef); qErr != nil {
				return qErr
			}
			fmt.Println("Saved offline. Will sync when online.")
			return nil
		}
		return err
	}

	fmt.Printf("Case recorded: %s\n", resp.Case.ID)
	if len(resp.NewBadges) > 0 {
		fmt.Printf("New badges earned: %v!\n", resp.NewBadges)
	}
	return nil
}
