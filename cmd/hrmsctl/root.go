package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aadesh1214/hrms-lite/internal/hrmsclient"
	"github.com/aadesh1214/hrms-lite/internal/workflow"
)

var (
	flagAPIURL  string
	flagTimeout time.Duration
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hrmsctl",
		Short:         "Terminal client for the HRMS Lite record service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "record service base URL (defaults to HRMS_API_URL or "+hrmsclient.DefaultBaseURL+")")
	cmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "per-request timeout (defaults to HRMS_API_TIMEOUT)")

	cmd.AddCommand(employeesCmd())
	cmd.AddCommand(attendanceCmd())
	return cmd
}

// cliApp wires the client and the two workflows for one command run.
type cliApp struct {
	client     *hrmsclient.Client
	directory  *workflow.EmployeeDirectory
	status     *workflow.StatusBoard
	employees  *workflow.EmployeeWorkflow
	attendance *workflow.AttendanceWorkflow
}

func buildApp() *cliApp {
	cfg := hrmsclient.ConfigFromEnv()
	if flagAPIURL != "" {
		cfg.BaseURL = flagAPIURL
	}
	if flagTimeout > 0 {
		cfg.Timeout = flagTimeout
	}
	cfg.Logger = zap.L()

	client := hrmsclient.New(cfg)
	directory := workflow.NewEmployeeDirectory(client)
	status := workflow.NewStatusBoard(0)
	return &cliApp{
		client:     client,
		directory:  directory,
		status:     status,
		employees:  workflow.NewEmployeeWorkflow(client, directory, status, confirmOnStdin),
		attendance: workflow.NewAttendanceWorkflow(client, directory, status),
	}
}

// printStatus writes the current banners: success to stdout, failure to
// stderr.
func (a *cliApp) printStatus() {
	success, failure := a.status.Messages()
	if success != "" {
		fmt.Println(success)
	}
	if failure != "" {
		fmt.Fprintln(os.Stderr, failure)
	}
}

func confirmOnStdin(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
