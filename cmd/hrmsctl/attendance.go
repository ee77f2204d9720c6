package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aadesh1214/hrms-lite/internal/hrmsclient"
	"github.com/aadesh1214/hrms-lite/internal/workflow"
)

func attendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attendance",
		Aliases: []string{"att"},
		Short:   "View and mark attendance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [employee_id]",
		Short: "List attendance records, optionally for one employee",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := buildApp()

			var (
				records []hrmsclient.Attendance
				err     error
			)
			if len(args) == 1 {
				records, err = app.client.ListEmployeeAttendance(cmd.Context(), args[0])
			} else {
				records, err = app.client.ListAttendance(cmd.Context())
			}
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No attendance records found.")
				return nil
			}

			// Resolve names from the directory; a failed refresh just
			// leaves raw identifiers in the output.
			_ = app.directory.Refresh(cmd.Context())

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tEMPLOYEE\tSTATUS\tMARKED AT")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Date, app.directory.DisplayName(r.EmployeeID), r.Status, r.CreatedAt)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "mark <employee_id> <date> <status>",
		Short: "Mark attendance for an employee (date YYYY-MM-DD, status Present|Absent)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := buildApp()

			// Best effort; the success banner falls back to the raw
			// identifier when the directory cannot be loaded.
			_ = app.directory.Refresh(cmd.Context())

			app.attendance.Candidate = workflow.AttendanceCandidate{
				EmployeeID: args[0],
				Date:       args[1],
				Status:     args[2],
			}
			err := app.attendance.Mark(cmd.Context())
			app.printStatus()
			return err
		},
	})

	return cmd
}
