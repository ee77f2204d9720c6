package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aadesh1214/hrms-lite/internal/workflow"
)

func employeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "Manage the employee directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := buildApp()
			if err := app.employees.Refresh(cmd.Context()); err != nil {
				app.printStatus()
				return err
			}

			employees := app.directory.Employees()
			if len(employees) == 0 {
				fmt.Println("No employees found. Add your first employee to get started.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EMPLOYEE ID\tFULL NAME\tEMAIL\tDEPARTMENT")
			for _, e := range employees {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.EmployeeID, e.FullName, e.Email, e.Department)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <employee_id> <full_name> <email> <department>",
		Short: "Add a new employee",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := buildApp()
			app.employees.Candidate = workflow.EmployeeCandidate{
				EmployeeID: args[0],
				FullName:   args[1],
				Email:      args[2],
				Department: args[3],
			}
			err := app.employees.Add(cmd.Context())
			app.printStatus()
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <employee_id>",
		Aliases: []string{"delete"},
		Short:   "Delete an employee and all their attendance records",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := buildApp()
			err := app.employees.Delete(cmd.Context(), args[0])
			if errors.Is(err, workflow.ErrDeleteCancelled) {
				fmt.Println("Aborted.")
				return nil
			}
			app.printStatus()
			return err
		},
	})

	return cmd
}
