package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"jobboard/internal/access"
	"jobboard/internal/core/database"
	"jobboard/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.Migrate(a.c.DB); err != nil {
				return err
			}
			a.success("schema up to date")
			return nil
		},
	}
}

func (a *app) accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.c.Accounts.ListAccounts(cmd.Context(), access.Operator())
			if err != nil {
				return err
			}
			data := pterm.TableData{{"ID", "Username", "Email", "Role", "Created"}}
			for _, p := range list {
				data = append(data, []string{p.ID, p.Username, p.Email, string(p.Role), p.CreatedAt.Format(timeLayout)})
			}
			return a.table(data)
		},
	}
}

func (a *app) jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List all jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.c.Admin.ListJobs(cmd.Context(), access.Operator())
			if err != nil {
				return err
			}
			data := pterm.TableData{{"ID", "Title", "Company", "Status", "Recruiter", "Created"}}
			for _, j := range list {
				recruiter := "-"
				if j.Recruiter != nil {
					recruiter = j.Recruiter.Username
				}
				data = append(data, []string{j.ID, j.Title, j.Company, string(j.Status), recruiter, j.CreatedAt.Format(timeLayout)})
			}
			return a.table(data)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status <id> <active|closed>",
		Short: "Force-set a job's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var s domain.JobStatus
			if err := s.UnmarshalText([]byte(args[1])); err != nil {
				return err
			}
			j, err := a.c.Admin.SetJobStatus(cmd.Context(), access.Operator(), args[0], s)
			if err != nil {
				return err
			}
			a.success("job %s is now %s", j.ID, j.Status)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a job and all of its applications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.c.Admin.DeleteJob(cmd.Context(), access.Operator(), args[0]); err != nil {
				return err
			}
			a.success("job %s deleted", args[0])
			return nil
		},
	})
	return cmd
}

func (a *app) applicationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "applications",
		Short: "List all applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.c.Admin.ListApplications(cmd.Context(), access.Operator())
			if err != nil {
				return err
			}
			data := pterm.TableData{{"ID", "Job", "Applicant", "Recruiter", "Status"}}
			for _, r := range list {
				data = append(data, []string{r.ID, r.Job.Title, r.Applicant.Username, r.Recruiter.Username, string(r.Status)})
			}
			if err := a.table(data); err != nil {
				return err
			}
			a.success("%d applications", len(list))
			return nil
		},
	}
}
